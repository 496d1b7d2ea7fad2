package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Dim is the side length of the board.
	Dim = 19
	// NumCells is the number of cells on the board.
	NumCells = Dim * Dim
)

var ErrBadCoordinate = errors.New("bad coordinate")

// Move is either a single stone (only legal as the opening ply) or an
// unordered pair of stones.
type Move struct {
	cells [2]int
	n     int
}

var reCoord *regexp.Regexp

func init() {
	reCoord = regexp.MustCompile(`^(?P<col>[A-Sa-s])(?P<row>[0-9]+)$`)
}

func NewSingle(idx int) *Move {
	return &Move{cells: [2]int{idx, -1}, n: 1}
}

func NewPair(a, b int) *Move {
	return &Move{cells: [2]int{a, b}, n: 2}
}

// Len is the number of stones in the move.
func (m *Move) Len() int {
	return m.n
}

func (m *Move) IsSingle() bool {
	return m.n == 1
}

// Cells returns the placed cells in the order they were given.
func (m *Move) Cells() []int {
	return m.cells[:m.n]
}

func (m *Move) First() int {
	return m.cells[0]
}

// Second returns the second cell, or -1 for a single-stone move.
func (m *Move) Second() int {
	if m.n < 2 {
		return -1
	}
	return m.cells[1]
}

// Contains reports whether idx is one of the move's cells.
func (m *Move) Contains(idx int) bool {
	for _, c := range m.Cells() {
		if c == idx {
			return true
		}
	}
	return false
}

// Equals compares moves without regard to stone order.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	if m.n == 1 {
		return m.cells[0] == o.cells[0]
	}
	return (m.cells[0] == o.cells[0] && m.cells[1] == o.cells[1]) ||
		(m.cells[0] == o.cells[1] && m.cells[1] == o.cells[0])
}

func (m *Move) String() string {
	if m == nil {
		return "<nil>"
	}
	parts := make([]string, m.n)
	for i, c := range m.Cells() {
		parts[i] = ToCoord(c)
	}
	return strings.Join(parts, " ")
}

// ToCoord turns a cell index into board notation, e.g. 180 -> "J10".
// Columns are lettered A through S; rows are numbered from 1.
func ToCoord(idx int) string {
	if idx < 0 || idx >= NumCells {
		return "??"
	}
	row, col := idx/Dim, idx%Dim
	return string(rune('A'+col)) + strconv.Itoa(row+1)
}

// FromCoord parses board notation into a cell index.
func FromCoord(coord string) (int, error) {
	m := reCoord.FindStringSubmatch(strings.TrimSpace(coord))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadCoordinate, coord)
	}
	col := int(strings.ToUpper(m[1])[0] - 'A')
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 || row > Dim {
		return 0, fmt.Errorf("%w: %q", ErrBadCoordinate, coord)
	}
	return (row-1)*Dim + col, nil
}

// FromString parses one or two coordinates separated by spaces or commas.
func FromString(s string) (*Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	switch len(fields) {
	case 1:
		a, err := FromCoord(fields[0])
		if err != nil {
			return nil, err
		}
		return NewSingle(a), nil
	case 2:
		a, err := FromCoord(fields[0])
		if err != nil {
			return nil, err
		}
		b, err := FromCoord(fields[1])
		if err != nil {
			return nil, err
		}
		return NewPair(a, b), nil
	}
	return nil, fmt.Errorf("%w: expected one or two coordinates, got %q", ErrBadCoordinate, s)
}
