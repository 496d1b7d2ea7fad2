// Package threat finds immediate wins and mandatory blocks. It scans every
// six-cell window once and never recurses.
package threat

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/connect6/board"
)

// MinThreatStones is how many stones a window needs before its empties can
// be filled in one turn.
const MinThreatStones = board.WinLength - 2

// Window is a threat window: a six-cell window holding at least four stones
// of one color and none of the other. Empties lists the cells that complete it.
type Window struct {
	Index   int
	Empties []int
}

// Windows returns every threat window for c.
func Windows(b board.View, c board.Color) []Window {
	var out []Window
	for wi := range board.Windows {
		if w, ok := threatWindow(b, wi, c); ok {
			out = append(out, w)
		}
	}
	return out
}

// WindowsThrough is Windows restricted to windows containing idx.
func WindowsThrough(b board.View, idx int, c board.Color) []Window {
	var out []Window
	for _, wi := range board.WindowsThrough(idx) {
		if w, ok := threatWindow(b, int(wi), c); ok {
			out = append(out, w)
		}
	}
	return out
}

func threatWindow(b board.View, wi int, c board.Color) (Window, bool) {
	var empties [2]int
	ne := 0
	for _, cell := range board.Windows[wi].Cells {
		switch b.At(cell) {
		case c:
		case board.Empty:
			if ne == 2 {
				return Window{}, false
			}
			empties[ne] = cell
			ne++
		default:
			return Window{}, false
		}
	}
	if ne == 0 {
		// already six; the game is over.
		return Window{}, false
	}
	return Window{Index: wi, Empties: slices.Clone(empties[:ne])}, true
}

// HasThreat reports whether c has any threat window.
func HasThreat(b board.View, c board.Color) bool {
	for wi := range board.Windows {
		if _, ok := threatWindow(b, wi, c); ok {
			return true
		}
	}
	return false
}

// FindWin returns the cells that complete six for c this turn. A single
// cell is returned when some window already holds five.
func FindWin(b board.View, c board.Color) ([]int, bool) {
	ws := Windows(b, c)
	if len(ws) == 0 {
		return nil, false
	}
	best := ws[0]
	for _, w := range ws[1:] {
		if len(w.Empties) < len(best.Empties) {
			best = w
		}
	}
	return best.Empties, true
}

// BlockKind says what the side to move has to do about the opponent's
// threat windows.
type BlockKind int

const (
	NoThreat BlockKind = iota
	// Single means one cell hits every threat window.
	Single
	// Pair means two cells are needed.
	Pair
	// Unblockable means no pair of cells hits every threat window.
	Unblockable
)

func (k BlockKind) String() string {
	switch k {
	case NoThreat:
		return "no-threat"
	case Single:
		return "single"
	case Pair:
		return "pair"
	}
	return "unblockable"
}

// Block describes the hitting sets over the opponent's threat windows.
type Block struct {
	Kind    BlockKind
	Windows []Window
	// Singles are cells that each hit every window on their own.
	Singles []int
	// Pairs are two-cell sets that hit every window. They are only listed
	// when no single cell suffices.
	Pairs [][2]int
}

// Analyze computes how mover can stop the opponent's threat windows.
func Analyze(b board.View, mover board.Color) Block {
	ws := Windows(b, mover.Opponent())
	if len(ws) == 0 {
		return Block{Kind: NoThreat}
	}
	points := lo.Uniq(lo.FlatMap(ws, func(w Window, _ int) []int { return w.Empties }))
	slices.Sort(points)

	hitsAll := func(cells ...int) bool {
		return lo.EveryBy(ws, func(w Window) bool {
			return lo.ContainsBy(cells, func(c int) bool { return slices.Contains(w.Empties, c) })
		})
	}

	singles := lo.Filter(points, func(p int, _ int) bool { return hitsAll(p) })
	if len(singles) > 0 {
		return Block{Kind: Single, Windows: ws, Singles: singles}
	}
	var pairs [][2]int
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if hitsAll(points[i], points[j]) {
				pairs = append(pairs, [2]int{points[i], points[j]})
			}
		}
	}
	if len(pairs) > 0 {
		return Block{Kind: Pair, Windows: ws, Pairs: pairs}
	}
	return Block{Kind: Unblockable, Windows: ws}
}
