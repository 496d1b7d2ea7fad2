package threat

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/zobrist"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newBoard() *board.Board {
	return board.NewBoard(zobrist.New(board.NumCells, 11))
}

func idx(coord string) int {
	i, err := move.FromCoord(coord)
	if err != nil {
		panic(err)
	}
	return i
}

func TestFindWinWithFive(t *testing.T) {
	is := is.New(t)
	b := newBoard()
	b.SetStones(board.Black, "C3", "D3", "E3", "F3", "G3")
	b.SetStones(board.White, "B3")
	pts, ok := FindWin(b, board.Black)
	is.True(ok)
	is.Equal(pts, []int{idx("H3")})
	_, ok = FindWin(b, board.White)
	is.True(!ok)
}

func TestFindWinWithGappedFour(t *testing.T) {
	is := is.New(t)
	b := newBoard()
	b.SetStones(board.White, "K4", "K5", "K7", "K8")
	b.SetStones(board.Black, "K3", "K10")
	pts, ok := FindWin(b, board.White)
	is.True(ok)
	is.Equal(len(pts), 2)
	b.TryMove(move.NewPair(pts[0], pts[1]), board.White, func() {
		is.True(b.MakesSix(idx("K4")))
	})
}

func TestAnalyzeSingleBlock(t *testing.T) {
	is := is.New(t)
	b := newBoard()
	// black five on row 10 fenced on the left by white.
	b.SetStones(board.Black, "B10", "C10", "D10", "E10", "F10")
	b.SetStones(board.White, "A10")
	blk := Analyze(b, board.White)
	is.Equal(blk.Kind, Single)
	is.Equal(blk.Singles, []int{idx("G10")})
}

func TestAnalyzeOpenFourNeedsPair(t *testing.T) {
	is := is.New(t)
	b := newBoard()
	b.SetStones(board.Black, "F10", "G10", "H10", "I10")
	blk := Analyze(b, board.White)
	is.Equal(blk.Kind, Pair)
	is.True(len(blk.Pairs) > 0)
	// every listed pair stops every window.
	for _, p := range blk.Pairs {
		b.TryMove(move.NewPair(p[0], p[1]), board.White, func() {
			is.True(!HasThreat(b, board.Black))
		})
	}
	is.Equal(Analyze(b, board.Black).Kind, NoThreat)
}

func TestAnalyzeUnblockable(t *testing.T) {
	is := is.New(t)
	b := newBoard()
	// three separate fives, far apart: A6, S6 and the row-15 line need four cells.
	b.SetStones(board.Black, "A1", "A2", "A3", "A4", "A5")
	b.SetStones(board.Black, "S1", "S2", "S3", "S4", "S5")
	b.SetStones(board.Black, "J15", "K15", "L15", "M15", "N15")
	blk := Analyze(b, board.White)
	is.Equal(blk.Kind, Unblockable)
	is.True(len(blk.Windows) >= 3)
	is.Equal(len(blk.Singles), 0)
	is.Equal(len(blk.Pairs), 0)
}

func TestWindowsThrough(t *testing.T) {
	is := is.New(t)
	b := newBoard()
	b.SetStones(board.Black, "F10", "G10", "H10", "I10")
	ws := WindowsThrough(b, idx("H10"), board.Black)
	is.True(len(ws) > 0)
	for _, w := range ws {
		is.True(len(w.Empties) == 2)
	}
	is.Equal(len(WindowsThrough(b, idx("A1"), board.Black)), 0)
	is.Equal(Unblockable.String(), "unblockable")
}
