package turnplayer

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/config"
	"github.com/domino14/connect6/engine"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/zobrist"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTimeBudget, 200*time.Millisecond)
	cfg.Set(config.ConfigTTCapacity, 1<<16)
	return cfg
}

func TestParseStrategy(t *testing.T) {
	is := is.New(t)
	st, err := ParseStrategy(" Center-Random ")
	is.NoErr(err)
	is.Equal(st, StrategyCenterRandom)
	_, err = ParseStrategy("minimax")
	is.True(err != nil)
}

func TestRegistryBuildsEveryStrategy(t *testing.T) {
	is := is.New(t)
	for _, st := range Strategies {
		p, err := New(testConfig(), string(st), "")
		is.NoErr(err)
		is.Equal(p.Name(), string(st))
	}
	p, err := New(testConfig(), "greedy", "bob")
	is.NoErr(err)
	is.Equal(p.Name(), "bob")
	_, ok := p.(*engine.Engine)
	is.True(ok)
	_, err = New(testConfig(), "nope", "")
	is.True(err != nil)
}

// playOut alternates two players on a referee board until someone makes six
// or the board fills, checking every move for legality.
func playOut(t *testing.T, a, b TurnPlayer, maxTurns int) {
	is := is.New(t)
	ref := board.NewBoard(engineZobrist())
	players := []TurnPlayer{a, b}
	var last *move.Move
	for turn := 0; turn < maxTurns && ref.NumEmpty() > 0; turn++ {
		p := players[turn%2]
		m, err := p.NextMove(last)
		is.NoErr(err)
		is.NoErr(ref.Validate(m))
		c := ref.ToMove()
		ref.Apply(m, c)
		if ref.HasSix(m) {
			return
		}
		last = m
	}
}

func TestBaselinePlayersMakeLegalMoves(t *testing.T) {
	players := []TurnPlayer{
		NewRandomTurnPlayer("random", 1),
		NewShuffleTurnPlayer("shuffle", 1),
		NewCenterRandomTurnPlayer("center-random", 1),
	}
	for _, a := range players {
		for _, b := range players {
			if a == b {
				continue
			}
			a.NewGame()
			b.NewGame()
			playOut(t, a, b, 200)
		}
	}
}

func TestFirstMoveIsASingleStone(t *testing.T) {
	is := is.New(t)
	for _, p := range []TurnPlayer{
		NewRandomTurnPlayer("random", 1),
		NewShuffleTurnPlayer("shuffle", 1),
		NewCenterRandomTurnPlayer("center-random", 1),
	} {
		m, err := p.NextMove(nil)
		is.NoErr(err)
		is.True(m.IsSingle())
	}
}

func TestCenterRandomStaysCentralEarly(t *testing.T) {
	is := is.New(t)
	p := NewCenterRandomTurnPlayer("center-random", 1)
	m, err := p.NextMove(nil)
	is.NoErr(err)
	r, c := board.RowCol(m.First())
	is.True(r >= centerLow && r <= centerHigh)
	is.True(c >= centerLow && c <= centerHigh)
}

func TestBaselineRejectsIllegalMove(t *testing.T) {
	is := is.New(t)
	p := NewRandomTurnPlayer("random", 1)
	m, err := p.NextMove(nil)
	is.NoErr(err)
	_, err = p.NextMove(move.NewPair(m.First(), 0))
	is.True(errors.Is(err, board.ErrOccupied))
}

func TestEngineAgainstBaseline(t *testing.T) {
	cfg := testConfig()
	e, err := New(cfg, "greedy", "")
	if err != nil {
		t.Fatal(err)
	}
	playOut(t, e, NewShuffleTurnPlayer("shuffle", 2), 40)
}

func engineZobrist() *zobrist.Zobrist {
	return zobrist.New(board.NumCells, config.DefaultZobristSeed)
}
