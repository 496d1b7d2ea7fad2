// Package engine ties the evaluator, threat detector and both searches into
// a player that answers one move per turn.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/budget"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/movegen"
	"github.com/domino14/connect6/pattern"
	"github.com/domino14/connect6/search/negamax"
	"github.com/domino14/connect6/search/tss"
	"github.com/domino14/connect6/threat"
	"github.com/domino14/connect6/zobrist"
)

var ErrNoEmptyCells = errors.New("no empty cells left")

// Engine is a single-game, single-goroutine player. It mirrors the game on
// its own board, which the host keeps in sync by passing in the opponent's
// moves.
type Engine struct {
	name     string
	settings Settings

	board  *board.Board
	eval   pattern.Evaluator
	gen    *movegen.Generator
	tss    *tss.Solver
	solver *negamax.Solver
	ttable *negamax.TranspositionTable

	color board.Color
}

func New(name string, s Settings) *Engine {
	return NewWithEvaluator(name, s, pattern.NewLineEvaluator(s.DefenseWeight))
}

// NewWithEvaluator builds an engine around a custom evaluator.
func NewWithEvaluator(name string, s Settings, eval pattern.Evaluator) *Engine {
	e := &Engine{
		name:     name,
		settings: s,
		board:    board.NewBoard(zobrist.New(board.NumCells, s.ZobristSeed)),
		eval:     eval,
		gen:      movegen.NewGenerator(eval, s.NeighborhoodRadius, s.CandidateLimit, s.PairLimit),
	}
	e.tss = tss.NewSolver(eval, e.gen, s.TSSDepth, s.TSSWidth, s.TSSDefenseWidth)
	if s.TranspositionTable {
		e.ttable = negamax.NewTranspositionTable()
	}
	e.solver = negamax.NewSolver(eval, e.gen, e.ttable, s.SearchDepth)
	e.solver.SetIterativeDeepening(s.IterativeDeepening)
	e.solver.SetTranspositionTableOptim(s.TranspositionTable)
	e.solver.SetForcedMoveOptim(s.ForcedMoves)
	log.Debug().Str("player", name).Uint64("zobrist-seed", e.board.Zobrist().Seed()).
		Bool("forced-moves", s.ForcedMoves).Msg("engine-created")
	e.NewGame()
	return e
}

func (e *Engine) Name() string {
	return e.name
}

func (e *Engine) Settings() Settings {
	return e.settings
}

// Board exposes the engine's mirror of the game.
func (e *Engine) Board() board.View {
	return e.board
}

// Color is the color the engine played last; it is Empty before the first
// move of a game.
func (e *Engine) Color() board.Color {
	return e.color
}

// NewGame clears the board and the transposition table.
func (e *Engine) NewGame() {
	e.board.Reset()
	e.color = board.Empty
	if e.ttable != nil {
		e.ttable.Reset(e.settings.TTCapacity, e.settings.TTMemoryFraction)
	}
}

func (e *Engine) NextMove(opp *move.Move) (*move.Move, error) {
	return e.NextMoveContext(context.Background(), opp)
}

// NextMoveContext applies the opponent's move, if any, then picks and
// commits the engine's own. Cancelling ctx acts like running out of time.
func (e *Engine) NextMoveContext(ctx context.Context, opp *move.Move) (*move.Move, error) {
	if opp != nil {
		if err := e.board.Validate(opp); err != nil {
			return nil, fmt.Errorf("opponent move %s: %w", opp, err)
		}
		e.board.Apply(opp, e.board.ToMove())
	}
	if e.board.NumEmpty() == 0 {
		return nil, ErrNoEmptyCells
	}
	e.color = e.board.ToMove()

	mon := budget.New(ctx, e.settings.TimeBudget)
	defer mon.Release()

	m := e.choose(mon)
	if err := e.board.Validate(m); err != nil {
		// a bug upstream; never hand the host an illegal move.
		log.Error().Err(err).Str("move", m.String()).Msg("illegal-engine-move")
		m = e.fallback()
	}
	e.board.Apply(m, e.color)
	log.Debug().Str("player", e.name).Str("color", e.color.String()).Str("move", m.String()).
		Dur("elapsed", mon.Elapsed()).Msg("engine-move")
	return m, nil
}

func (e *Engine) choose(mon *budget.Monitor) *move.Move {
	b := e.board
	mover := e.color
	switch {
	case b.IsEmpty():
		return move.NewSingle(board.Center)
	case b.StonesRequired() == 1:
		return e.fallback()
	}

	if m := e.winningMove(mover); m != nil {
		log.Debug().Str("move", m.String()).Msg("threat-win")
		return m
	}
	if m := e.blockingMove(mover); m != nil {
		log.Debug().Str("move", m.String()).Msg("threat-block")
		return m
	}

	if e.settings.TSSEnabled && !mon.Expired() {
		sub := mon.Sub(e.settings.TSSBudgetFraction)
		m, ok := e.tss.Solve(b, sub)
		sub.Release()
		if ok {
			log.Debug().Str("move", m.String()).Int("nodes", e.tss.Nodes()).Msg("tss-found")
			return m
		}
	}

	if e.settings.SearchEnabled {
		if m, _ := e.solver.Solve(b, mon); m != nil {
			return m
		}
	}
	if pairs := e.gen.Pairs(b, mover); len(pairs) > 0 {
		return pairs[0].Move()
	}
	return e.fallback()
}

// winningMove completes six if some window already allows it.
func (e *Engine) winningMove(mover board.Color) *move.Move {
	pts, ok := threat.FindWin(e.board, mover)
	if !ok {
		return nil
	}
	if len(pts) == 2 {
		return move.NewPair(pts[0], pts[1])
	}
	return e.completeWith(pts[0], mover)
}

// blockingMove answers the opponent's threat windows when one cell or one
// pair covers them all.
func (e *Engine) blockingMove(mover board.Color) *move.Move {
	blk := threat.Analyze(e.board, mover)
	switch blk.Kind {
	case threat.Single:
		best, bestScore := blk.Singles[0], -1
		for _, p := range blk.Singles {
			if sc := e.gen.Score(e.board, p, mover); sc > bestScore {
				best, bestScore = p, sc
			}
		}
		return e.completeWith(best, mover)
	case threat.Pair:
		best, bestScore := blk.Pairs[0], -1
		for _, p := range blk.Pairs {
			sc := e.gen.Score(e.board, p[0], mover) + e.gen.Score(e.board, p[1], mover)
			if sc > bestScore {
				best, bestScore = p, sc
			}
		}
		return move.NewPair(best[0], best[1])
	case threat.Unblockable:
		log.Debug().Int("windows", len(blk.Windows)).Msg("threat-unblockable")
	}
	return nil
}

// completeWith pairs a forced cell with the mover's best second cell,
// ranked with the forced stone already down.
func (e *Engine) completeWith(first int, mover board.Color) *move.Move {
	var second int
	ok := false
	e.board.TryPlace(first, mover, func() {
		second, ok = e.gen.BestSecond(e.board, mover)
	})
	if !ok {
		return move.NewSingle(first)
	}
	return move.NewPair(first, second)
}

// fallback picks the empty cells closest to the center.
func (e *Engine) fallback() *move.Move {
	cells := movegen.Fallback(e.board, e.board.StonesRequired())
	if len(cells) == 1 {
		return move.NewSingle(cells[0])
	}
	return move.NewPair(cells[0], cells[1])
}
