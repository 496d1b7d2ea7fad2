package board

// Axis is one of the four line directions.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
	Diagonal
	AntiDiagonal
)

var Axes = [4]Axis{Horizontal, Vertical, Diagonal, AntiDiagonal}

var axisDelta = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Window is a run of six consecutive cells along one axis.
type Window struct {
	Cells [WinLength]int
	Axis  Axis
}

var (
	// Windows holds every in-bounds six-cell window on the board.
	Windows []Window
	// windowsThrough[idx] lists indexes into Windows of the windows containing idx.
	windowsThrough [NumCells][]int32
)

func init() {
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			for _, ax := range Axes {
				dr, dc := axisDelta[ax][0], axisDelta[ax][1]
				er, ec := r+dr*(WinLength-1), c+dc*(WinLength-1)
				if er < 0 || er >= Dim || ec < 0 || ec >= Dim {
					continue
				}
				var w Window
				w.Axis = ax
				for k := 0; k < WinLength; k++ {
					w.Cells[k] = (r+dr*k)*Dim + (c + dc*k)
				}
				Windows = append(Windows, w)
			}
		}
	}
	for wi, w := range Windows {
		for _, idx := range w.Cells {
			windowsThrough[idx] = append(windowsThrough[idx], int32(wi))
		}
	}
}

// WindowsThrough returns the indexes into Windows of every window that
// contains idx. The slice must not be modified.
func WindowsThrough(idx int) []int32 {
	return windowsThrough[idx]
}

// Step moves dir (+1 or -1) cells from idx along axis.
func Step(idx int, axis Axis, dir int) (int, bool) {
	r := idx/Dim + axisDelta[axis][0]*dir
	c := idx%Dim + axisDelta[axis][1]*dir
	if r < 0 || r >= Dim || c < 0 || c >= Dim {
		return 0, false
	}
	return r*Dim + c, true
}

// RowCol splits a cell index.
func RowCol(idx int) (int, int) {
	return idx / Dim, idx % Dim
}

func Index(row, col int) int {
	return row*Dim + col
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Chebyshev is the king-move distance between two cells.
func Chebyshev(a, b int) int {
	ar, ac := RowCol(a)
	br, bc := RowCol(b)
	return max(abs(ar-br), abs(ac-bc))
}

// ManhattanToCenter ranges from 0 at J10 to 18 in the corners.
func ManhattanToCenter(idx int) int {
	r, c := RowCol(idx)
	return abs(r-Dim/2) + abs(c-Dim/2)
}
