package board

import (
	"fmt"
	"strings"

	"github.com/domino14/connect6/move"
)

func (c Color) DisplayString() string {
	switch c {
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "."
}

func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	header := "   "
	for i := 0; i < Dim; i++ {
		header += fmt.Sprintf("%c ", 'A'+i)
	}
	sb.WriteString(header + "\n")
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	for r := 0; r < Dim; r++ {
		sb.WriteString(fmt.Sprintf("%2d|", r+1))
		for c := 0; c < Dim; c++ {
			sb.WriteString(b.cells[Index(r, c)].DisplayString() + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	return "\n" + sb.String()
}

// SetStones places stones of color c on the given coordinates, e.g. "J10".
// It is meant for setting up positions and panics on bad input.
func (b *Board) SetStones(c Color, coords ...string) {
	for _, coord := range coords {
		idx, err := move.FromCoord(coord)
		if err != nil {
			panic(err)
		}
		b.Place(idx, c)
	}
}

// Equals compares cells and hash.
func (b *Board) Equals(o *Board) bool {
	return b.cells == o.cells && b.hash == o.hash && b.stones == o.stones
}
