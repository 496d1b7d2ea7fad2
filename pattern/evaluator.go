package pattern

import (
	"github.com/domino14/connect6/board"
)

// Evaluator scores points and whole positions for one color.
type Evaluator interface {
	// EvaluatePoint scores a hypothetical stone of color c on idx.
	EvaluatePoint(b board.View, idx int, c board.Color) int
	// EvaluateBoard is positive when attacker is better off.
	EvaluateBoard(b board.View, attacker board.Color) int
}

const DefaultDefenseWeight = 1.2

// LineEvaluator scores six-cell windows along the four axes. Per axis the
// best window counts; the axes are summed so that crossing lines outscore
// either line alone.
type LineEvaluator struct {
	DefenseWeight float64
}

func NewLineEvaluator(defenseWeight float64) *LineEvaluator {
	return &LineEvaluator{DefenseWeight: defenseWeight}
}

type lineShape struct {
	run  int
	open int
}

// shapes computes the run through idx and its open ends on every axis,
// treating idx as holding c.
func shapes(b board.View, idx int, c board.Color) [4]lineShape {
	var out [4]lineShape
	for _, ax := range board.Axes {
		s := lineShape{run: 1}
		for _, dir := range [2]int{1, -1} {
			cur := idx
			for {
				next, ok := board.Step(cur, ax, dir)
				if !ok {
					break
				}
				occ := b.At(next)
				if occ == c {
					s.run++
					cur = next
					continue
				}
				if occ == board.Empty {
					s.open++
				}
				break
			}
		}
		out[ax] = s
	}
	return out
}

// PointCategories returns the best category on each axis for a stone of c
// on idx. A cell held by the other color scores nothing.
func PointCategories(b board.View, idx int, c board.Color) [4]Category {
	var best [4]Category
	if occ := b.At(idx); occ != board.Empty && occ != c {
		return best
	}
	sh := shapes(b, idx, c)
	for _, wi := range board.WindowsThrough(idx) {
		w := &board.Windows[wi]
		count := 0
		blocked := false
		for _, cell := range w.Cells {
			if cell == idx {
				count++
				continue
			}
			switch b.At(cell) {
			case c:
				count++
			case board.Empty:
			default:
				blocked = true
			}
			if blocked {
				break
			}
		}
		if blocked {
			continue
		}
		s := sh[w.Axis]
		if cat := Classify(s.run, s.open, count); cat > best[w.Axis] {
			best[w.Axis] = cat
		}
	}
	return best
}

func (e *LineEvaluator) EvaluatePoint(b board.View, idx int, c board.Color) int {
	total := 0
	for _, cat := range PointCategories(b, idx, c) {
		total += cat.Score()
	}
	return total
}

// Totals sums EvaluatePoint over each color's stones.
func (e *LineEvaluator) Totals(b board.View) (black, white int) {
	for idx := 0; idx < board.NumCells; idx++ {
		switch b.At(idx) {
		case board.Black:
			black += e.EvaluatePoint(b, idx, board.Black)
		case board.White:
			white += e.EvaluatePoint(b, idx, board.White)
		}
	}
	return black, white
}

func (e *LineEvaluator) EvaluateBoard(b board.View, attacker board.Color) int {
	black, white := e.Totals(b)
	own, other := black, white
	if attacker == board.White {
		own, other = white, black
	}
	return own - int(e.DefenseWeight*float64(other))
}

// Best returns the highest category over all axes.
func Best(cats [4]Category) Category {
	best := None
	for _, c := range cats {
		if c > best {
			best = c
		}
	}
	return best
}
