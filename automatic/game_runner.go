// Package automatic referees computer-vs-computer games: it keeps the
// authoritative board, checks every move, and collects the results.
package automatic

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/turnplayer"
	"github.com/domino14/connect6/zobrist"
)

// Winner values in a GameResult.
const (
	Draw = -1
)

// GameResult is one finished game. Player indexes refer to the runner's
// players, not to colors.
type GameResult struct {
	GameID  int
	Black   int
	Winner  int
	Forfeit bool
	Reason  string
	Moves   []*move.Move
	// MoveTimes is parallel to Moves.
	MoveTimes []time.Duration
	Board     string
	// Final is the position the game ended in.
	Final *board.Board
}

// Fingerprint identifies the game's move sequence.
func (g GameResult) Fingerprint() uint64 {
	var sb strings.Builder
	for _, m := range g.Moves {
		sb.WriteString(m.String())
		sb.WriteByte(';')
	}
	return xxhash.Sum64String(sb.String())
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	board   *board.Board
	players [2]turnplayer.TurnPlayer
	logchan chan string
}

// NewGameRunner pairs two players. Each runner needs its own player
// instances; players are not safe to share between runners.
func NewGameRunner(logchan chan string, p1, p2 turnplayer.TurnPlayer) *GameRunner {
	return &GameRunner{
		board:   board.NewBoard(zobrist.New(board.NumCells, 0)),
		players: [2]turnplayer.TurnPlayer{p1, p2},
		logchan: logchan,
	}
}

func (r *GameRunner) Players() [2]turnplayer.TurnPlayer {
	return r.players
}

// Board returns a snapshot of the referee's board.
func (r *GameRunner) Board() *board.Board {
	return r.board.Copy()
}

// PlayGame plays one game to the end. Player 0 is black in even-numbered
// games and white in odd-numbered ones.
func (r *GameRunner) PlayGame(gameID int) GameResult {
	r.board.Reset()
	for _, p := range r.players {
		p.NewGame()
	}
	black := gameID % 2
	res := GameResult{GameID: gameID, Black: black, Winner: Draw}

	var last *move.Move
	onTurn := black
	for turn := 0; ; turn++ {
		p := r.players[onTurn]
		color := r.board.ToMove()

		tstart := time.Now()
		m, err := p.NextMove(last)
		elapsed := time.Since(tstart)
		if err == nil {
			err = r.board.Validate(m)
		}
		if err != nil {
			log.Debug().Err(err).Str("player", p.Name()).Int("game", gameID).Msg("forfeit")
			res.Winner = 1 - onTurn
			res.Forfeit = true
			res.Reason = fmt.Sprintf("%s forfeits: %v", p.Name(), err)
			break
		}
		r.board.Apply(m, color)
		res.Moves = append(res.Moves, m)
		res.MoveTimes = append(res.MoveTimes, elapsed)

		if r.logchan != nil {
			r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v\n",
				gameID, turn, p.Name(), color, m, elapsed.Milliseconds())
		}

		if r.board.HasSix(m) {
			res.Winner = onTurn
			res.Reason = fmt.Sprintf("%s made six", p.Name())
			break
		}
		if r.board.Full() {
			res.Reason = "board full"
			break
		}
		last = m
		onTurn = 1 - onTurn
	}
	res.Final = r.Board()
	res.Board = res.Final.ToDisplayText()
	return res
}
