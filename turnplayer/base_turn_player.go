package turnplayer

import (
	"fmt"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/engine"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/zobrist"
)

// BaseTurnPlayer keeps a mirror of the game for players that do not search.
type BaseTurnPlayer struct {
	name  string
	board *board.Board
}

func newBaseTurnPlayer(name string, seed uint64) BaseTurnPlayer {
	return BaseTurnPlayer{
		name:  name,
		board: board.NewBoard(zobrist.New(board.NumCells, seed)),
	}
}

func (p *BaseTurnPlayer) Name() string {
	return p.name
}

func (p *BaseTurnPlayer) Board() board.View {
	return p.board
}

func (p *BaseTurnPlayer) NewGame() {
	p.board.Reset()
}

// sync validates and applies the opponent's move.
func (p *BaseTurnPlayer) sync(opp *move.Move) error {
	if opp != nil {
		if err := p.board.Validate(opp); err != nil {
			return fmt.Errorf("opponent move %s: %w", opp, err)
		}
		p.board.Apply(opp, p.board.ToMove())
	}
	if p.board.NumEmpty() == 0 {
		return engine.ErrNoEmptyCells
	}
	return nil
}

// commit plays cells for the side to move, as a single stone or a pair
// depending on the turn.
func (p *BaseTurnPlayer) commit(cells []int) *move.Move {
	var m *move.Move
	if p.board.StonesRequired() == 1 {
		m = move.NewSingle(cells[0])
	} else {
		m = move.NewPair(cells[0], cells[1])
	}
	p.board.Apply(m, p.board.ToMove())
	return m
}
