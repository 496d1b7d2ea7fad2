// Package tss proves forced wins by searching only threat moves: pairs that
// leave the attacker one turn from six, answered by the defender's best blocks.
package tss

import (
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/budget"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/movegen"
	"github.com/domino14/connect6/pattern"
	"github.com/domino14/connect6/threat"
)

const (
	DefaultDepth        = 4
	DefaultWidth        = 6
	DefaultDefenseWidth = 3
)

// ThreatMove is an attacking pair with its aggregate point score.
type ThreatMove struct {
	Move  *move.Move
	Score int
}

type Solver struct {
	eval         pattern.Evaluator
	gen          *movegen.Generator
	depth        int
	width        int
	defenseWidth int

	nodes   int
	monitor *budget.Monitor
}

func NewSolver(eval pattern.Evaluator, gen *movegen.Generator, depth, width, defenseWidth int) *Solver {
	return &Solver{
		eval:         eval,
		gen:          gen,
		depth:        depth,
		width:        width,
		defenseWidth: defenseWidth,
	}
}

func (s *Solver) Nodes() int {
	return s.nodes
}

// Solve looks for a forced win for the side to move. It returns false when
// no win was proven within the depth or the budget; that is not an error.
// The board is unchanged on return.
func (s *Solver) Solve(b *board.Board, mon *budget.Monitor) (*move.Move, bool) {
	if b.StonesRequired() != 2 {
		return nil, false
	}
	s.nodes = 0
	s.monitor = mon
	attacker := b.ToMove()
	m, ok := s.attack(b, attacker, s.depth)
	log.Debug().Int("nodes", s.nodes).Bool("proven", ok).Str("attacker", attacker.String()).
		Msg("tss-done")
	return m, ok
}

func (s *Solver) expired() bool {
	return s.monitor != nil && s.monitor.Expired()
}

func (s *Solver) attack(b *board.Board, attacker board.Color, depth int) (*move.Move, bool) {
	s.nodes++
	if pts, ok := threat.FindWin(b, attacker); ok {
		return s.complete(b, attacker, pts)
	}
	defender := attacker.Opponent()
	if threat.HasThreat(b, defender) {
		// the defender gets a tempo; not a pure threat sequence.
		return nil, false
	}
	if depth <= 0 || s.expired() {
		return nil, false
	}

	for _, tm := range s.ThreatMoves(b, attacker) {
		if s.expired() {
			return nil, false
		}
		proven := false
		b.TryMove(tm.Move, attacker, func() {
			proven = s.defend(b, attacker, depth)
		})
		if proven {
			return tm.Move, true
		}
	}
	return nil, false
}

// defend reports whether every considered defender reply still loses.
func (s *Solver) defend(b *board.Board, attacker board.Color, depth int) bool {
	defender := attacker.Opponent()
	blk := threat.Analyze(b, defender)
	switch blk.Kind {
	case threat.NoThreat:
		return false
	case threat.Unblockable:
		return true
	}
	if b.NumEmpty() < 2 {
		return false
	}
	for _, reply := range s.responses(b, defender, blk) {
		if s.expired() {
			return false
		}
		lost := false
		b.TryMove(reply, defender, func() {
			_, lost = s.attack(b, attacker, depth-1)
		})
		if !lost {
			return false
		}
	}
	return true
}

// complete turns winning cells into a legal pair.
func (s *Solver) complete(b *board.Board, attacker board.Color, pts []int) (*move.Move, bool) {
	if len(pts) == 2 {
		return move.NewPair(pts[0], pts[1]), true
	}
	second, ok := s.gen.BestSecond(b, attacker, pts[0])
	if !ok {
		return nil, false
	}
	return move.NewPair(pts[0], second), true
}

// ThreatMoves lists the attacker's pairs from its best points that put one of
// their stones in a threat window, strongest first. It assumes the attacker
// has no threat window yet.
func (s *Solver) ThreatMoves(b *board.Board, attacker board.Color) []ThreatMove {
	pts := lo.Map(s.gen.Neighborhood(b), func(idx int, _ int) movegen.Candidate {
		return movegen.Candidate{Index: idx, Score: s.eval.EvaluatePoint(b, idx, attacker)}
	})
	slices.SortFunc(pts, func(x, y movegen.Candidate) int {
		if x.Score != y.Score {
			return y.Score - x.Score
		}
		return x.Index - y.Index
	})
	if len(pts) > s.width {
		pts = pts[:s.width]
	}
	var out []ThreatMove
	for _, p := range movegen.PairsFrom(pts, len(pts)*len(pts)) {
		m := p.Move()
		makesThreat := false
		// the attacker has no threat window before the pair, so any new one
		// runs through one of its stones.
		b.TryMove(m, attacker, func() {
			makesThreat = len(threat.WindowsThrough(b, m.First(), attacker)) > 0 ||
				len(threat.WindowsThrough(b, m.Second(), attacker)) > 0
		})
		if makesThreat {
			out = append(out, ThreatMove{Move: m, Score: p.Score})
		}
	}
	return out
}

// responses returns the defender's top blocking pairs by the defender's own
// point scores.
func (s *Solver) responses(b *board.Board, defender board.Color, blk threat.Block) []*move.Move {
	var replies []ThreatMove
	for _, p := range blk.Singles {
		b.TryPlace(p, defender, func() {
			second, ok := s.gen.BestSecond(b, defender)
			if ok {
				replies = append(replies, ThreatMove{Move: move.NewPair(p, second)})
			}
		})
	}
	for _, p := range blk.Pairs {
		replies = append(replies, ThreatMove{Move: move.NewPair(p[0], p[1])})
	}
	for i := range replies {
		cells := replies[i].Move.Cells()
		replies[i].Score = s.eval.EvaluatePoint(b, cells[0], defender) +
			s.eval.EvaluatePoint(b, cells[1], defender)
	}
	slices.SortStableFunc(replies, func(x, y ThreatMove) int {
		return y.Score - x.Score
	})
	if len(replies) > s.defenseWidth {
		replies = replies[:s.defenseWidth]
	}
	return lo.Map(replies, func(r ThreatMove, _ int) *move.Move { return r.Move })
}
