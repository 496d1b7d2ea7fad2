package automatic

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/config"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/turnplayer"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// cheater always plays the corner, which is illegal from its second turn.
type cheater struct{}

func (cheater) Name() string { return "cheater" }
func (cheater) NewGame()     {}
func (cheater) NextMove(opp *move.Move) (*move.Move, error) {
	if opp == nil {
		return move.NewSingle(0), nil
	}
	return move.NewPair(0, 1), nil
}

func TestPlayGameIsLegalAndFinishes(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string)
	var lines []string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range logchan {
			lines = append(lines, msg)
		}
	}()

	r := NewGameRunner(logchan,
		turnplayer.NewRandomTurnPlayer("random", 1),
		turnplayer.NewShuffleTurnPlayer("shuffle", 1))
	res := r.PlayGame(0)
	close(logchan)
	wg.Wait()

	is.Equal(res.Black, 0)
	is.True(len(res.Moves) > 0)
	is.Equal(len(res.Moves), len(res.MoveTimes))
	is.Equal(len(lines), len(res.Moves))
	is.True(!res.Forfeit)
	is.True(res.Moves[0].IsSingle())
	if res.Winner == Draw {
		is.Equal(res.Reason, "board full")
	} else {
		is.True(strings.Contains(res.Reason, "made six"))
	}
	is.True(res.Board != "")
	stones := 0
	for _, m := range res.Moves {
		stones += m.Len()
	}
	is.Equal(res.Final.Stones(), stones)
}

func TestColorsAlternate(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(nil,
		turnplayer.NewRandomTurnPlayer("random", 1),
		turnplayer.NewShuffleTurnPlayer("shuffle", 1))
	res := r.PlayGame(1)
	is.Equal(res.Black, 1)
	// the first stone belongs to player 1.
	first := res.Moves[0].First()
	snap := r.Board()
	is.True(snap.At(first) == board.Black)
	// the snapshot is detached from the referee.
	stones := 0
	for _, m := range res.Moves {
		stones += m.Len()
	}
	r.PlayGame(2)
	is.Equal(snap.Stones(), stones)
}

func TestForfeitOnIllegalMove(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(nil, cheater{}, turnplayer.NewShuffleTurnPlayer("shuffle", 1))
	res := r.PlayGame(0)
	is.True(res.Forfeit)
	is.Equal(res.Winner, 1)
	is.True(strings.Contains(res.Reason, "cheater forfeits"))
}

func TestFingerprintDependsOnMoves(t *testing.T) {
	is := is.New(t)
	a := GameResult{Moves: []*move.Move{move.NewSingle(180), move.NewPair(1, 2)}}
	b := GameResult{Moves: []*move.Move{move.NewSingle(180), move.NewPair(1, 2)}}
	c := GameResult{Moves: []*move.Move{move.NewSingle(180), move.NewPair(1, 3)}}
	is.Equal(a.Fingerprint(), b.Fingerprint())
	is.True(a.Fingerprint() != c.Fingerprint())
}

func TestReport(t *testing.T) {
	is := is.New(t)
	r := NewReport("a", "b")
	r.Add(GameResult{Black: 0, Winner: 0, Moves: []*move.Move{move.NewSingle(1)},
		MoveTimes: []time.Duration{time.Millisecond}})
	r.Add(GameResult{Black: 1, Winner: 0, Moves: []*move.Move{move.NewSingle(2), move.NewPair(3, 4)},
		MoveTimes: []time.Duration{2 * time.Millisecond, 4 * time.Millisecond}})
	r.Add(GameResult{Black: 0, Winner: Draw, Moves: []*move.Move{move.NewSingle(2), move.NewPair(3, 4)}})
	r.Add(GameResult{Black: 1, Winner: 0, Forfeit: true, Moves: []*move.Move{move.NewSingle(5)}})

	is.Equal(r.Games, 4)
	is.Equal(r.Draws, 1)
	is.Equal(r.Players[0].Wins, 3)
	is.Equal(r.Players[0].WinsAsBlack, 1)
	is.Equal(r.Players[0].WinsAsWhite, 2)
	is.Equal(r.Players[1].Forfeits, 1)
	is.Equal(r.DistinctGames, 3)
	is.Equal(r.MinLength, 1.0)
	is.Equal(r.MaxLength, 2.0)
	is.True(r.Players[0].ScoreRate > r.Players[1].ScoreRate)
	// player 1 (index 1) was black in game two, so it played the second move.
	is.Equal(r.Players[1].MeanMoveMs, 2.0)

	out, err := r.YAML()
	is.NoErr(err)
	var back map[string]any
	is.NoErr(yaml.Unmarshal(out, &back))
	is.Equal(back["games"], 4)
	is.Equal(back["distinct_games"], 3)

	var buf bytes.Buffer
	is.NoErr(r.WriteHistogram(&buf))
	is.True(buf.Len() > 0)
	is.True(strings.Contains(r.String(), "4 games"))
}

func TestCompVsComp(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	var logbuf bytes.Buffer
	report, err := CompVsComp(context.Background(), cfg, "random", "center-random", 6, 3, &logbuf)
	is.NoErr(err)
	is.Equal(report.Games, 6)
	is.Equal(report.Players[0].Wins+report.Players[1].Wins+report.Draws, 6)
	is.True(strings.HasPrefix(logbuf.String(), "gameID,turn,player"))
	is.True(report.MeanStones > 0)
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestCompVsCompRejectsConcurrentRuns(t *testing.T) {
	is := is.New(t)
	// hold the guard as a running batch would.
	is.True(playing.CompareAndSwap(false, true))
	_, err := CompVsComp(context.Background(), config.DefaultConfig(), "random", "random", 2, 1, nil)
	is.Equal(err, ErrAlreadyPlaying)
	playing.Store(false)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = CompVsComp(context.Background(), config.DefaultConfig(), "random", "shuffle", 20, 2, nil)
		}()
	}
	wg.Wait()
	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			is.Equal(err, ErrAlreadyPlaying)
		}
	}
	is.True(ok >= 1)
	is.True(!playing.Load())
}

func TestCompVsCompRejectsUnknownStrategy(t *testing.T) {
	is := is.New(t)
	_, err := CompVsComp(context.Background(), config.DefaultConfig(), "random", "oracle", 2, 1, nil)
	is.True(err != nil)
	// a failed start releases the guard.
	is.True(!playing.Load())
}

func TestCompVsCompStopsOnCancel(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := CompVsComp(ctx, config.DefaultConfig(), "random", "random", 1000, 2, nil)
	is.NoErr(err)
	is.True(report.Games < 1000)
}
