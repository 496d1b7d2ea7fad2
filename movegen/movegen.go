// Package movegen ranks the empty cells near existing stones and pairs them
// into candidate moves.
package movegen

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/pattern"
)

const (
	DefaultRadius    = 2
	DefaultLimit     = 12
	DefaultPairLimit = 30
	maxCentrality    = 18
)

// Candidate is a ranked empty cell. The score is only used for ordering.
type Candidate struct {
	Index int
	Score int
}

// Pair is a candidate two-stone move with its combined score.
type Pair struct {
	A, B  int
	Score int
}

func (p Pair) Move() *move.Move {
	return move.NewPair(p.A, p.B)
}

type Generator struct {
	radius    int
	limit     int
	pairLimit int
	eval      pattern.Evaluator
}

func NewGenerator(eval pattern.Evaluator, radius, limit, pairLimit int) *Generator {
	return &Generator{
		radius:    radius,
		limit:     limit,
		pairLimit: pairLimit,
		eval:      eval,
	}
}

func (g *Generator) PairLimit() int {
	return g.pairLimit
}

// Centrality is 18 at J10 and 0 in the corners.
func Centrality(idx int) int {
	return maxCentrality - board.ManhattanToCenter(idx)
}

// Neighborhood returns the empty cells within the generator's Chebyshev
// radius of any stone, in index order.
func (g *Generator) Neighborhood(b *board.Board) []int {
	var marked [board.NumCells]bool
	for idx := 0; idx < board.NumCells; idx++ {
		if b.At(idx) == board.Empty {
			continue
		}
		r, c := board.RowCol(idx)
		for dr := -g.radius; dr <= g.radius; dr++ {
			for dc := -g.radius; dc <= g.radius; dc++ {
				nr, nc := r+dr, c+dc
				if nr < 0 || nr >= board.Dim || nc < 0 || nc >= board.Dim {
					continue
				}
				n := board.Index(nr, nc)
				if b.At(n) == board.Empty {
					marked[n] = true
				}
			}
		}
	}
	out := []int{}
	for idx, m := range marked {
		if m {
			out = append(out, idx)
		}
	}
	return out
}

// Score combines the attack value for mover, the defensive value of denying
// the cell to the opponent, and a small pull toward the center.
func (g *Generator) Score(b board.View, idx int, mover board.Color) int {
	return g.eval.EvaluatePoint(b, idx, mover) +
		g.eval.EvaluatePoint(b, idx, mover.Opponent()) +
		Centrality(idx)
}

func sortCandidates(cands []Candidate) {
	slices.SortFunc(cands, func(a, b Candidate) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.Index - b.Index
	})
}

// Ranked scores every cell in the neighborhood, best first. An empty board
// yields just the center.
func (g *Generator) Ranked(b *board.Board, mover board.Color) []Candidate {
	if b.IsEmpty() {
		return []Candidate{{Index: board.Center, Score: Centrality(board.Center)}}
	}
	cands := lo.Map(g.Neighborhood(b), func(idx int, _ int) Candidate {
		return Candidate{Index: idx, Score: g.Score(b, idx, mover)}
	})
	sortCandidates(cands)
	return cands
}

// Candidates returns the top cells for mover. When the neighborhood holds
// fewer than two cells it is topped up with empty cells nearest the center.
func (g *Generator) Candidates(b *board.Board, mover board.Color) []Candidate {
	cands := g.Ranked(b, mover)
	if len(cands) > g.limit {
		cands = cands[:g.limit]
	}
	if len(cands) < 2 {
		have := lo.SliceToMap(cands, func(c Candidate) (int, bool) { return c.Index, true })
		for _, idx := range Fallback(b, 2) {
			if len(cands) >= 2 {
				break
			}
			if !have[idx] {
				cands = append(cands, Candidate{Index: idx, Score: 0})
			}
		}
	}
	return cands
}

// PairsFrom combines every two candidates and keeps the best pairLimit by
// combined score.
func PairsFrom(cands []Candidate, pairLimit int) []Pair {
	pairs := make([]Pair, 0, len(cands)*(len(cands)-1)/2)
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			pairs = append(pairs, Pair{
				A:     cands[i].Index,
				B:     cands[j].Index,
				Score: cands[i].Score + cands[j].Score,
			})
		}
	}
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		return b.Score - a.Score
	})
	if len(pairs) > pairLimit {
		pairs = pairs[:pairLimit]
	}
	return pairs
}

func (g *Generator) Pairs(b *board.Board, mover board.Color) []Pair {
	return PairsFrom(g.Candidates(b, mover), g.pairLimit)
}

// BestSecond returns the best candidate cell that is not in exclude. It
// falls back to any empty cell and reports false only on a full board.
func (g *Generator) BestSecond(b *board.Board, mover board.Color, exclude ...int) (int, bool) {
	for _, c := range g.Ranked(b, mover) {
		if !lo.Contains(exclude, c.Index) {
			return c.Index, true
		}
	}
	for _, idx := range Fallback(b, len(exclude)+1) {
		if !lo.Contains(exclude, idx) {
			return idx, true
		}
	}
	return 0, false
}

// Fallback returns up to n empty cells ordered by distance to the center.
func Fallback(b *board.Board, n int) []int {
	empties := b.EmptyCells()
	slices.SortStableFunc(empties, func(x, y int) int {
		return board.ManhattanToCenter(x) - board.ManhattanToCenter(y)
	})
	if len(empties) > n {
		empties = empties[:n]
	}
	return empties
}
