package movegen

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/pattern"
	"github.com/domino14/connect6/zobrist"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newGen() *Generator {
	return NewGenerator(pattern.NewLineEvaluator(pattern.DefaultDefenseWeight),
		DefaultRadius, DefaultLimit, DefaultPairLimit)
}

func newBoard() *board.Board {
	return board.NewBoard(zobrist.New(board.NumCells, 3))
}

func TestEmptyBoardYieldsCenter(t *testing.T) {
	is := is.New(t)
	g := newGen()
	b := newBoard()
	r := g.Ranked(b, board.Black)
	is.Equal(len(r), 1)
	is.Equal(r[0].Index, board.Center)
	// two candidates are still available for pairing.
	c := g.Candidates(b, board.Black)
	is.Equal(len(c), 2)
	is.Equal(c[0].Index, board.Center)
	is.True(c[1].Index != board.Center)
}

func TestNeighborhoodRadius(t *testing.T) {
	is := is.New(t)
	g := newGen()
	b := newBoard()
	b.SetStones(board.Black, "J10")
	n := g.Neighborhood(b)
	is.Equal(len(n), 24)
	for _, idx := range n {
		is.True(board.Chebyshev(idx, board.Center) <= 2)
		is.Equal(b.At(idx), board.Empty)
	}

	// a stone in the corner only has the in-bounds part of its neighborhood.
	b.Reset()
	b.SetStones(board.White, "A1")
	is.Equal(len(g.Neighborhood(b)), 8)
}

func TestCandidatesAreSortedAndCapped(t *testing.T) {
	is := is.New(t)
	g := newGen()
	b := newBoard()
	b.SetStones(board.Black, "J10", "K10", "L10")
	b.SetStones(board.White, "J11", "K11")
	c := g.Candidates(b, board.White)
	is.Equal(len(c), DefaultLimit)
	seen := map[int]bool{}
	for i, cand := range c {
		is.Equal(b.At(cand.Index), board.Empty)
		is.True(!seen[cand.Index])
		seen[cand.Index] = true
		if i > 0 {
			is.True(c[i-1].Score >= cand.Score)
		}
	}
	// extending black's three is the most urgent point for either side.
	top := c[0].Index
	is.True(top == board.Index(9, 8) || top == board.Index(9, 12))
}

func TestPairs(t *testing.T) {
	is := is.New(t)
	g := newGen()
	b := newBoard()
	b.SetStones(board.Black, "J10")
	pairs := g.Pairs(b, board.White)
	is.Equal(len(pairs), DefaultPairLimit)
	for i, p := range pairs {
		is.True(p.A != p.B)
		is.Equal(b.At(p.A), board.Empty)
		is.Equal(b.At(p.B), board.Empty)
		is.NoErr(b.Validate(p.Move()))
		if i > 0 {
			is.True(pairs[i-1].Score >= p.Score)
		}
	}
}

func TestPairsFromSmallShortlist(t *testing.T) {
	is := is.New(t)
	pairs := PairsFrom([]Candidate{{1, 5}, {2, 3}, {3, 1}}, 30)
	is.Equal(len(pairs), 3)
	is.Equal(pairs[0], Pair{A: 1, B: 2, Score: 8})
	is.Equal(len(PairsFrom([]Candidate{{1, 5}}, 30)), 0)
}

func TestBestSecondSkipsExcluded(t *testing.T) {
	is := is.New(t)
	g := newGen()
	b := newBoard()
	b.SetStones(board.Black, "J10", "K10", "L10")
	first := g.Ranked(b, board.White)[0].Index
	second, ok := g.BestSecond(b, board.White, first)
	is.True(ok)
	is.True(second != first)
	is.Equal(b.At(second), board.Empty)
}

func TestFallbackOnCrowdedBoard(t *testing.T) {
	is := is.New(t)
	g := newGen()
	b := newBoard()
	// fill everything but two far-apart cells.
	keep := map[int]bool{0: true, board.NumCells - 1: true}
	color := board.Black
	for i := 0; i < board.NumCells; i++ {
		if keep[i] {
			continue
		}
		b.Place(i, color)
		color = color.Opponent()
	}
	c := g.Candidates(b, board.Black)
	is.Equal(len(c), 2)
	pairs := g.Pairs(b, board.Black)
	is.Equal(len(pairs), 1)
	is.True(pairs[0].Move().Equals(move.NewPair(0, board.NumCells-1)))

	idx, ok := g.BestSecond(b, board.Black, 0)
	is.True(ok)
	is.Equal(idx, board.NumCells-1)
	is.Equal(Fallback(b, 5), []int{0, board.NumCells - 1})
}
