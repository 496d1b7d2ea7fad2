package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/connect6/automatic"
	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/config"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/pattern"
	"github.com/domino14/connect6/threat"
	"github.com/domino14/connect6/turnplayer"
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) setOpponent(strategy string) error {
	p, err := turnplayer.New(sc.config, strategy, "")
	if err != nil {
		return err
	}
	sc.strategy = strategy
	sc.opponent = p
	return nil
}

func (sc *ShellController) boardText() string {
	var sb strings.Builder
	sb.WriteString(sc.board.ToDisplayText())
	switch {
	case sc.gameOver:
		sb.WriteString("game over")
	default:
		fmt.Fprintf(&sb, "%s to move (%d stones); you are %s, %s is %s",
			sc.board.ToMove(), sc.board.StonesRequired(), sc.userColor,
			sc.opponent.Name(), sc.userColor.Opponent())
	}
	return sb.String()
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	color := board.Black
	if len(cmd.args) > 0 {
		switch strings.ToLower(cmd.args[0]) {
		case "black", "b", "x":
		case "white", "w", "o":
			color = board.White
		default:
			return nil, fmt.Errorf("unknown color %q", cmd.args[0])
		}
	}
	// rebuild the opponent so that any `set` changes apply to this game.
	if err := sc.setOpponent(sc.strategy); err != nil {
		return nil, err
	}
	sc.board.Reset()
	sc.history = nil
	sc.gameOver = false
	sc.userColor = color
	sc.opponent.NewGame()

	if color == board.White {
		status, err := sc.opponentMove(nil)
		if err != nil {
			return nil, err
		}
		return msg(status + "\n" + sc.boardText()), nil
	}
	return msg(sc.boardText()), nil
}

// commit applies a validated move to the authoritative board and reports
// whether it ended the game.
func (sc *ShellController) commit(m *move.Move, c board.Color) (string, bool) {
	sc.board.Apply(m, c)
	sc.history = append(sc.history, m)
	if sc.board.HasSix(m) {
		sc.gameOver = true
		return fmt.Sprintf("%s wins with %s", c, m), true
	}
	if sc.board.Full() {
		sc.gameOver = true
		return "the board is full; draw", true
	}
	return "", false
}

func (sc *ShellController) opponentMove(last *move.Move) (string, error) {
	m, err := sc.opponent.NextMove(last)
	if err != nil {
		return "", err
	}
	if err := sc.board.Validate(m); err != nil {
		sc.gameOver = true
		log.Error().Err(err).Str("move", m.String()).Msg("illegal-opponent-move")
		return "", fmt.Errorf("%s played an illegal move %s: %w", sc.opponent.Name(), m, err)
	}
	color := sc.board.ToMove()
	status, _ := sc.commit(m, color)
	reply := fmt.Sprintf("%s plays %s", sc.opponent.Name(), m)
	if status != "" {
		reply += "\n" + status
	}
	return reply, nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.gameOver {
		return nil, errGameOver
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <coord> [<coord>]")
	}
	if sc.board.ToMove() != sc.userColor {
		return nil, errors.New("it is not your turn")
	}
	m, err := move.FromString(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	if err := sc.board.Validate(m); err != nil {
		return nil, err
	}
	if status, over := sc.commit(m, sc.userColor); over {
		return msg(sc.board.ToDisplayText() + status), nil
	}
	reply, err := sc.opponentMove(m)
	if err != nil {
		return nil, err
	}
	return msg(reply + "\n" + sc.boardText()), nil
}

func (sc *ShellController) moves() (*Response, error) {
	if len(sc.history) == 0 {
		return msg("no moves yet"), nil
	}
	lines := lo.Map(sc.history, func(m *move.Move, i int) string {
		// the first stone of the game is black's.
		c := board.Black
		if i%2 == 1 {
			c = board.White
		}
		return fmt.Sprintf("%3d. %-5s %s", i+1, c, m)
	})
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) eval() (*Response, error) {
	ev := pattern.NewLineEvaluator(sc.config.GetFloat64(config.ConfigDefenseWeight))
	black, white := ev.Totals(sc.board)
	mover := sc.board.ToMove()
	block := threat.Analyze(sc.board, mover)

	var sb strings.Builder
	fmt.Fprintf(&sb, "pattern totals: black %d, white %d\n", black, white)
	fmt.Fprintf(&sb, "best shape: black %s, white %s\n",
		sc.bestShape(board.Black), sc.bestShape(board.White))
	fmt.Fprintf(&sb, "threat windows: black %d, white %d\n",
		len(threat.Windows(sc.board, board.Black)), len(threat.Windows(sc.board, board.White)))
	if cells, ok := threat.FindWin(sc.board, mover); ok {
		fmt.Fprintf(&sb, "%s wins at %s\n", mover,
			strings.Join(lo.Map(cells, func(c int, _ int) string { return move.ToCoord(c) }), " "))
	}
	fmt.Fprintf(&sb, "%s must block: %s", mover, block.Kind)
	if block.Kind == threat.Single {
		fmt.Fprintf(&sb, " (%s)", strings.Join(lo.Map(block.Singles, func(c int, _ int) string {
			return move.ToCoord(c)
		}), " "))
	}
	return msg(sb.String()), nil
}

// bestShape is the strongest pattern category any stone of c is part of.
func (sc *ShellController) bestShape(c board.Color) pattern.Category {
	best := pattern.None
	for idx := range board.NumCells {
		if sc.board.At(idx) != c {
			continue
		}
		best = max(best, pattern.Best(pattern.PointCategories(sc.board, idx, c)))
	}
	return best
}

func (sc *ShellController) setStrategy(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg("opponent strategy: " + sc.strategy + "; available: " +
			strings.Join(lo.Map(turnplayer.Strategies, func(s turnplayer.Strategy, _ int) string {
				return string(s)
			}), ", ")), nil
	}
	if len(sc.history) > 0 && !sc.gameOver {
		return nil, errors.New("finish the current game or start a new one first")
	}
	if err := sc.setOpponent(cmd.args[0]); err != nil {
		return nil, err
	}
	sc.opponent.NewGame()
	return msg("opponent strategy set to " + sc.strategy), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	if !lo.Contains(sc.config.AllKeys(), key) {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	sc.config.Set(key, value)
	return msg("set " + key + " to " + value + "; it applies from the next `new`"), nil
}

func (sc *ShellController) autoplaying() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		if !sc.autoplaying() {
			return nil, errors.New("no autoplay is running")
		}
		sc.autoplayCancel()
		<-sc.autoplayDone
		return msg("autoplay stopped"), nil
	}
	if sc.autoplaying() {
		return nil, errors.New("autoplay is already running; `autoplay stop` first")
	}
	p1, p2 := sc.strategy, string(turnplayer.StrategyRandom)
	switch len(cmd.args) {
	case 0:
	case 2:
		p1, p2 = cmd.args[0], cmd.args[1]
	default:
		return nil, errors.New("autoplay takes either no strategies or two")
	}
	games, threads := sc.config.GetInt(config.ConfigAutoplayGames), sc.config.GetInt(config.ConfigAutoplayThreads)
	var err error
	if v, ok := cmd.options["games"]; ok {
		if games, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}
	if v, ok := cmd.options["threads"]; ok {
		if threads, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}
	if games < 1 || threads < 1 {
		return nil, errors.New("games and threads must be positive")
	}
	for _, p := range []string{p1, p2} {
		if _, err := turnplayer.ParseStrategy(p); err != nil {
			return nil, err
		}
	}

	var logfile io.WriteCloser
	if path := cmd.options["file"]; path != "" {
		if logfile, err = os.Create(path); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		defer cancel()
		var w io.Writer
		if logfile != nil {
			defer logfile.Close()
			w = logfile
		}
		report, err := automatic.CompVsComp(ctx, sc.config, p1, p2, games, threads, w)
		if err != nil {
			log.Error().Err(err).Msg("autoplay-failed")
			return
		}
		sc.showMessage(report.String())
		if err := report.WriteHistogram(sc.out); err != nil {
			log.Error().Err(err).Msg("histogram-failed")
		}
	}(sc.autoplayDone)

	return msg(fmt.Sprintf("autoplay started: %s vs %s, %d games on %d threads", p1, p2, games, threads)), nil
}
