package turnplayer

import (
	"lukechampine.com/frand"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/move"
)

// RandomTurnPlayer plays uniformly random empty cells.
type RandomTurnPlayer struct {
	BaseTurnPlayer
}

func NewRandomTurnPlayer(name string, seed uint64) *RandomTurnPlayer {
	return &RandomTurnPlayer{newBaseTurnPlayer(name, seed)}
}

func (p *RandomTurnPlayer) NextMove(opp *move.Move) (*move.Move, error) {
	if err := p.sync(opp); err != nil {
		return nil, err
	}
	empties := p.board.EmptyCells()
	frand.Shuffle(len(empties), func(i, j int) {
		empties[i], empties[j] = empties[j], empties[i]
	})
	return p.commit(empties), nil
}

// ShuffleTurnPlayer walks a permutation of the board drawn at the start of
// each game, skipping cells that are already taken.
type ShuffleTurnPlayer struct {
	BaseTurnPlayer
	order []int
	pos   int
}

func NewShuffleTurnPlayer(name string, seed uint64) *ShuffleTurnPlayer {
	p := &ShuffleTurnPlayer{BaseTurnPlayer: newBaseTurnPlayer(name, seed)}
	p.NewGame()
	return p
}

func (p *ShuffleTurnPlayer) NewGame() {
	p.BaseTurnPlayer.NewGame()
	p.order = frand.Perm(board.NumCells)
	p.pos = 0
}

func (p *ShuffleTurnPlayer) NextMove(opp *move.Move) (*move.Move, error) {
	if err := p.sync(opp); err != nil {
		return nil, err
	}
	var cells []int
	for len(cells) < p.board.StonesRequired() {
		idx := p.order[p.pos]
		p.pos++
		if p.board.At(idx) == board.Empty {
			cells = append(cells, idx)
		}
	}
	return p.commit(cells), nil
}

const (
	centerLow  = 3
	centerHigh = 15
	// centerTries bounds the rejection sampling in the central area.
	centerTries = 64
)

// CenterRandomTurnPlayer samples the central 13x13 area first and only
// then the rest of the board.
type CenterRandomTurnPlayer struct {
	BaseTurnPlayer
}

func NewCenterRandomTurnPlayer(name string, seed uint64) *CenterRandomTurnPlayer {
	return &CenterRandomTurnPlayer{newBaseTurnPlayer(name, seed)}
}

func (p *CenterRandomTurnPlayer) NextMove(opp *move.Move) (*move.Move, error) {
	if err := p.sync(opp); err != nil {
		return nil, err
	}
	need := p.board.StonesRequired()
	var cells []int
	span := centerHigh - centerLow + 1
	for try := 0; try < centerTries && len(cells) < need; try++ {
		idx := board.Index(centerLow+frand.Intn(span), centerLow+frand.Intn(span))
		if p.board.At(idx) == board.Empty && (len(cells) == 0 || cells[0] != idx) {
			cells = append(cells, idx)
		}
	}
	if len(cells) < need {
		empties := p.board.EmptyCells()
		frand.Shuffle(len(empties), func(i, j int) {
			empties[i], empties[j] = empties[j], empties[i]
		})
		for _, idx := range empties {
			if len(cells) == need {
				break
			}
			if len(cells) == 0 || cells[0] != idx {
				cells = append(cells, idx)
			}
		}
	}
	return p.commit(cells), nil
}
