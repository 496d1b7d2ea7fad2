// Package negamax is a time-bounded alpha-beta search over candidate pairs,
// backed by a zobrist-keyed transposition table.
package negamax

import (
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/budget"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/movegen"
	"github.com/domino14/connect6/pattern"
	"github.com/domino14/connect6/threat"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
(* Initial call for Player A's root node *)
negamax(rootNode, depth, −∞, +∞, 1)
**/

const HugeNumber = 1 << 62
const DefaultDepth = 2

type PVLine struct {
	Moves []*move.Move
	score int
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
}

// Update the principal variation line with a new best move and the new
// line that follows it.
func (pvLine *PVLine) Update(m *move.Move, newPVLine PVLine, score int) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

func (pvLine PVLine) String() string {
	parts := make([]string, len(pvLine.Moves))
	for i, m := range pvLine.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " / ")
}

type Solver struct {
	eval   pattern.Evaluator
	gen    *movegen.Generator
	ttable *TranspositionTable

	maxDepth                int
	iterativeDeepeningOptim bool
	transpositionTableOptim bool
	forcedMoveOptim         bool

	solvingPlayer board.Color
	monitor       *budget.Monitor
	aborted       bool
	nodes         uint64

	principalVariation PVLine
	bestPVValue        int
	completedDepth     int
}

func NewSolver(eval pattern.Evaluator, gen *movegen.Generator, tt *TranspositionTable, depth int) *Solver {
	return &Solver{
		eval:                    eval,
		gen:                     gen,
		ttable:                  tt,
		maxDepth:                depth,
		iterativeDeepeningOptim: true,
		transpositionTableOptim: tt != nil,
		forcedMoveOptim:         true,
	}
}

func (s *Solver) SetIterativeDeepening(id bool) {
	s.iterativeDeepeningOptim = id
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt && s.ttable != nil
}

func (s *Solver) SetForcedMoveOptim(f bool) {
	s.forcedMoveOptim = f
}

func (s *Solver) Nodes() uint64 {
	return s.nodes
}

// CompletedDepth is the deepest iteration of the last Solve that finished
// without running out of time.
func (s *Solver) CompletedDepth() int {
	return s.completedDepth
}

func (s *Solver) PrincipalVariation() PVLine {
	return s.principalVariation
}

// staticValue is the position's value for side, from the solving player's
// evaluation.
func (s *Solver) staticValue(b *board.Board, side board.Color) int {
	e := s.eval.EvaluateBoard(b, s.solvingPlayer)
	if side != s.solvingPlayer {
		return -e
	}
	return e
}

func terminal(v int) bool {
	return v > pattern.WinScore/2 || v < -pattern.WinScore/2
}

// generateSTMPlays returns the side to move's children. With forced-move
// pruning, a win is the only child, and a blockable threat restricts the
// children to blocks.
func (s *Solver) generateSTMPlays(b *board.Board, side board.Color) []*move.Move {
	switch {
	case b.NumEmpty() == 0:
		return nil
	case b.IsEmpty():
		return []*move.Move{move.NewSingle(board.Center)}
	case b.StonesRequired() == 1:
		return []*move.Move{move.NewSingle(b.EmptyCells()[0])}
	}
	if s.forcedMoveOptim {
		if pts, ok := threat.FindWin(b, side); ok {
			if len(pts) == 2 {
				return []*move.Move{move.NewPair(pts[0], pts[1])}
			}
			if second, ok := s.gen.BestSecond(b, side, pts[0]); ok {
				return []*move.Move{move.NewPair(pts[0], second)}
			}
		}
		blk := threat.Analyze(b, side)
		switch blk.Kind {
		case threat.Single:
			var plays []*move.Move
			for _, p := range blk.Singles {
				b.TryPlace(p, side, func() {
					for _, c := range s.gen.Candidates(b, side) {
						plays = append(plays, move.NewPair(p, c.Index))
					}
				})
			}
			return s.dedupe(plays)
		case threat.Pair:
			plays := make([]*move.Move, 0, len(blk.Pairs))
			for _, p := range blk.Pairs {
				plays = append(plays, move.NewPair(p[0], p[1]))
			}
			return s.dedupe(plays)
		}
	}
	pairs := s.gen.Pairs(b, side)
	plays := make([]*move.Move, len(pairs))
	for i, p := range pairs {
		plays[i] = p.Move()
	}
	return plays
}

// dedupe drops repeated pairs and caps the list at the generator's pair
// budget.
func (s *Solver) dedupe(plays []*move.Move) []*move.Move {
	out := plays[:0]
	for _, m := range plays {
		if !slices.ContainsFunc(out, m.Equals) {
			out = append(out, m)
		}
	}
	if limit := s.gen.PairLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Solver) negamax(b *board.Board, depth int, α, β int, side board.Color, pv *PVLine) int {
	if depth < 0 {
		panic("negamax: negative depth")
	}
	s.nodes++
	value := s.staticValue(b, side)
	if s.monitor != nil && s.monitor.Expired() {
		s.aborted = true
		return value
	}
	if terminal(value) {
		// prefer quicker wins and slower losses.
		if value > 0 {
			return value + depth
		}
		return value - depth
	}
	if depth == 0 || b.NumEmpty() == 0 {
		return value
	}

	alphaOrig := α
	if s.transpositionTableOptim {
		if ttEntry, ok := s.ttable.lookup(b.Hash()); ok && int(ttEntry.depth) >= depth {
			score := int(ttEntry.score)
			switch ttEntry.flag {
			case TTExact:
				return score
			case TTLower:
				α = max(α, score)
			case TTUpper:
				β = min(β, score)
			}
			if α >= β {
				return score
			}
		}
	}

	childPV := PVLine{}
	bestValue := -HugeNumber
	for _, child := range s.generateSTMPlays(b, side) {
		var v int
		b.TryMove(child, side, func() {
			v = -s.negamax(b, depth-1, -β, -α, side.Opponent(), &childPV)
		})
		if s.aborted {
			break
		}
		if v > bestValue {
			bestValue = v
			pv.Update(child, childPV, v)
		}
		α = max(α, bestValue)
		if bestValue >= β {
			break // beta cut-off
		}
		childPV.Clear()
	}
	if bestValue == -HugeNumber {
		// out of time before any child finished.
		return value
	}

	if s.transpositionTableOptim && !s.aborted {
		var flag uint8
		if bestValue <= alphaOrig {
			flag = TTUpper
		} else if bestValue >= β {
			flag = TTLower
		} else {
			flag = TTExact
		}
		s.ttable.store(b.Hash(), TableEntry{
			score: int64(bestValue),
			flag:  flag,
			depth: uint8(depth),
		})
	}
	return bestValue
}

// searchRoot runs one iteration at the given depth over the ordered root
// plays. Only children whose subtree finished count toward the result.
func (s *Solver) searchRoot(b *board.Board, plays []*move.Move, depth int) (*move.Move, int, PVLine, []int) {
	α, β := -HugeNumber, HugeNumber
	side := s.solvingPlayer
	values := make([]int, len(plays))
	for i := range values {
		values[i] = -HugeNumber
	}
	var best *move.Move
	bestValue := -HugeNumber
	pv := PVLine{}
	childPV := PVLine{}
	for i, child := range plays {
		var v int
		b.TryMove(child, side, func() {
			v = -s.negamax(b, depth-1, -β, -α, side.Opponent(), &childPV)
		})
		if s.aborted {
			break
		}
		values[i] = v
		if v > bestValue {
			bestValue = v
			best = child
			pv.Update(child, childPV, v)
		}
		α = max(α, bestValue)
		childPV.Clear()
	}
	return best, bestValue, pv, values
}

// iterativelyDeepen searches depth 1, 2, ... and keeps the result of the
// deepest iteration that produced a move. Root plays are re-sorted by value
// after each iteration so the previous best is searched first.
func (s *Solver) iterativelyDeepen(b *board.Board, plays []*move.Move, depth int) (*move.Move, int) {
	start := 1
	if !s.iterativeDeepeningOptim {
		start = depth
	}
	var best *move.Move
	bestValue := -HugeNumber
	for d := start; d <= depth; d++ {
		log.Debug().Int("depth", d).Int("plays", len(plays)).Msg("deepening-iteratively")
		m, val, pv, values := s.searchRoot(b, plays, d)
		if m != nil {
			best, bestValue = m, val
			s.principalVariation = pv
			s.bestPVValue = val
		}
		if s.aborted {
			log.Debug().Int("depth", d).Msg("budget-expired")
			break
		}
		s.completedDepth = d
		log.Debug().Int("value", val).Int("depth", d).Str("pv", pv.String()).Msg("best-val")
		if terminal(val) && val > 0 {
			// a forced win has been found; deeper searches cannot improve it.
			break
		}
		order := make([]int, len(plays))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(x, y int) int {
			switch {
			case values[x] > values[y]:
				return -1
			case values[x] < values[y]:
				return 1
			}
			return 0
		})
		sorted := make([]*move.Move, len(plays))
		for i, o := range order {
			sorted[i] = plays[o]
		}
		plays = sorted
	}
	return best, bestValue
}

// Solve searches for the side to move's best play. The board is unchanged
// on return. When the budget runs out the best play of the deepest
// iteration is returned; the first root play is returned if no iteration
// finished a single child.
func (s *Solver) Solve(b *board.Board, mon *budget.Monitor) (*move.Move, int) {
	tstart := time.Now()
	s.solvingPlayer = b.ToMove()
	s.monitor = mon
	s.aborted = false
	s.nodes = 0
	s.completedDepth = 0
	s.principalVariation.Clear()
	if s.transpositionTableOptim && s.ttable.Size() == 0 {
		s.ttable.Reset(0, 0)
	}

	plays := s.generateSTMPlays(b, s.solvingPlayer)
	if len(plays) == 0 {
		return nil, 0
	}
	var best *move.Move
	var bestValue int
	if len(plays) == 1 {
		best = plays[0]
		b.TryMove(best, s.solvingPlayer, func() {
			bestValue = s.staticValue(b, s.solvingPlayer)
		})
	} else {
		best, bestValue = s.iterativelyDeepen(b, plays, s.maxDepth)
		if best == nil {
			best = plays[0]
		}
	}

	ev := log.Debug()
	if s.transpositionTableOptim {
		created, lookups, hits, t2 := s.ttable.Stats()
		ev = ev.Uint64("ttable-created", created).
			Uint64("ttable-lookups", lookups).
			Uint64("ttable-hits", hits).
			Uint64("ttable-t2collisions", t2)
	}
	ev.Uint64("nodes", s.nodes).
		Int("completed-depth", s.completedDepth).
		Bool("aborted", s.aborted).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return best, bestValue
}
