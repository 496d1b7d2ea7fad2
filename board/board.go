package board

import (
	"errors"
	"fmt"

	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/zobrist"
)

const (
	Dim      = move.Dim
	NumCells = move.NumCells
	// Center is J10.
	Center = (Dim/2)*Dim + Dim/2
	// WinLength is the number of stones in a row that wins.
	WinLength = 6
)

var (
	ErrOutOfRange      = errors.New("cell out of range")
	ErrOccupied        = errors.New("cell is occupied")
	ErrDuplicateCell   = errors.New("move places two stones on the same cell")
	ErrWrongStoneCount = errors.New("wrong number of stones for this turn")
	errNilMove         = errors.New("nil move")
)

type Color uint8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// View is the read-only query a host exposes to a player.
type View interface {
	At(idx int) Color
}

// Board is the 19x19 grid plus an incrementally kept zobrist hash.
// It is owned by a single goroutine.
type Board struct {
	cells   [NumCells]Color
	hash    uint64
	stones  int
	zobrist *zobrist.Zobrist
}

func NewBoard(z *zobrist.Zobrist) *Board {
	if z.NumCells() != NumCells {
		panic(fmt.Sprintf("zobrist table covers %d cells, board has %d", z.NumCells(), NumCells))
	}
	return &Board{zobrist: z}
}

func (b *Board) Reset() {
	b.cells = [NumCells]Color{}
	b.hash = 0
	b.stones = 0
}

// Copy returns a deep copy sharing the (immutable) zobrist table.
func (b *Board) Copy() *Board {
	n := *b
	return &n
}

func (b *Board) At(idx int) Color {
	return b.cells[idx]
}

func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) Stones() int {
	return b.stones
}

func (b *Board) IsEmpty() bool {
	return b.stones == 0
}

func (b *Board) Full() bool {
	return b.stones == NumCells
}

func (b *Board) NumEmpty() int {
	return NumCells - b.stones
}

func (b *Board) Zobrist() *zobrist.Zobrist {
	return b.zobrist
}

// ToMove infers the side to move from the stone count. Black opens with one
// stone and every later turn places two, so stone counts 1-2 belong to
// White's turn, 3-4 to Black's, and so on.
func (b *Board) ToMove() Color {
	if ((b.stones+1)/2)%2 == 1 {
		return White
	}
	return Black
}

// StonesRequired is the number of stones the side to move must place.
func (b *Board) StonesRequired() int {
	if b.stones == 0 || b.NumEmpty() == 1 {
		return 1
	}
	return 2
}

// Place puts a stone down. Placing on an occupied or invalid cell is a bug
// in the caller and panics.
func (b *Board) Place(idx int, c Color) {
	if idx < 0 || idx >= NumCells {
		panic(fmt.Sprintf("place: cell %d out of range", idx))
	}
	if c != Black && c != White {
		panic(fmt.Sprintf("place: invalid color %d", c))
	}
	if b.cells[idx] != Empty {
		panic(fmt.Sprintf("place: cell %s already holds %s", move.ToCoord(idx), b.cells[idx]))
	}
	b.cells[idx] = c
	b.hash = b.zobrist.Toggle(b.hash, idx, int(c))
	b.stones++
}

// Remove takes a stone of color c off idx and panics if it is not there.
func (b *Board) Remove(idx int, c Color) {
	if idx < 0 || idx >= NumCells {
		panic(fmt.Sprintf("remove: cell %d out of range", idx))
	}
	if b.cells[idx] != c || c == Empty {
		panic(fmt.Sprintf("remove: cell %s holds %s, not %s", move.ToCoord(idx), b.cells[idx], c))
	}
	b.cells[idx] = Empty
	b.hash = b.zobrist.Toggle(b.hash, idx, int(c))
	b.stones--
}

func (b *Board) Apply(m *move.Move, c Color) {
	for _, idx := range m.Cells() {
		b.Place(idx, c)
	}
}

// Undo reverses Apply.
func (b *Board) Undo(m *move.Move, c Color) {
	cells := m.Cells()
	for i := len(cells) - 1; i >= 0; i-- {
		b.Remove(cells[i], c)
	}
}

// TryMove applies m for c, runs fn, and undoes m on every exit path,
// including a panic inside fn.
func (b *Board) TryMove(m *move.Move, c Color, fn func()) {
	b.Apply(m, c)
	defer b.Undo(m, c)
	fn()
}

// TryPlace is TryMove for a single stone.
func (b *Board) TryPlace(idx int, c Color, fn func()) {
	b.Place(idx, c)
	defer b.Remove(idx, c)
	fn()
}

// Validate checks a move from an outside source against the current
// position. It never panics.
func (b *Board) Validate(m *move.Move) error {
	if m == nil {
		return errNilMove
	}
	if m.Len() != b.StonesRequired() {
		return fmt.Errorf("%w: got %d, need %d", ErrWrongStoneCount, m.Len(), b.StonesRequired())
	}
	for _, idx := range m.Cells() {
		if idx < 0 || idx >= NumCells {
			return fmt.Errorf("%w: %d", ErrOutOfRange, idx)
		}
		if b.cells[idx] != Empty {
			return fmt.Errorf("%w: %s", ErrOccupied, move.ToCoord(idx))
		}
	}
	if m.Len() == 2 && m.First() == m.Second() {
		return fmt.Errorf("%w: %s", ErrDuplicateCell, move.ToCoord(m.First()))
	}
	return nil
}

// EmptyCells lists empty cells in index order.
func (b *Board) EmptyCells() []int {
	out := make([]int, 0, b.NumEmpty())
	for i, c := range b.cells {
		if c == Empty {
			out = append(out, i)
		}
	}
	return out
}

// RunThrough is the length of the contiguous line of idx's color through idx
// along axis.
func (b *Board) RunThrough(idx int, axis Axis) int {
	c := b.cells[idx]
	if c == Empty {
		return 0
	}
	n := 1
	for _, dir := range [2]int{1, -1} {
		cur := idx
		for {
			next, ok := Step(cur, axis, dir)
			if !ok || b.cells[next] != c {
				break
			}
			n++
			cur = next
		}
	}
	return n
}

// MakesSix reports whether the stone on idx is part of six or more in a row.
func (b *Board) MakesSix(idx int) bool {
	for _, ax := range Axes {
		if b.RunThrough(idx, ax) >= WinLength {
			return true
		}
	}
	return false
}

// HasSix reports whether any stone of m completes a line for its owner.
func (b *Board) HasSix(m *move.Move) bool {
	for _, idx := range m.Cells() {
		if b.MakesSix(idx) {
			return true
		}
	}
	return false
}
