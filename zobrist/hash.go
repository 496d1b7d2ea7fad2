package zobrist

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// NumColors is the number of stone colors that can occupy a cell.
const NumColors = 2

// Zobrist holds the per-(cell, color) random values for one engine.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	posTable [][NumColors]uint64
	seed     uint64
}

// New builds a table for numCells cells. The values are drawn from a ChaCha
// stream keyed by seed, so two tables built with the same seed are identical.
func New(numCells int, seed uint64) *Zobrist {
	var key [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], seed^(uint64(i)*0x9e3779b97f4a7c15))
	}
	rng := frand.NewCustom(key[:], 1024, 12)

	z := &Zobrist{seed: seed}
	z.posTable = make([][NumColors]uint64, numCells)
	for i := range z.posTable {
		for j := 0; j < NumColors; j++ {
			z.posTable[i][j] = rng.Uint64n(bignum) + 1
		}
	}
	return z
}

// Seed returns the seed the table was built from.
func (z *Zobrist) Seed() uint64 {
	return z.seed
}

// NumCells returns the number of cells the table covers.
func (z *Zobrist) NumCells() int {
	return len(z.posTable)
}

// Value returns the random value for a stone of color (1-based) on cell idx.
func (z *Zobrist) Value(idx int, color int) uint64 {
	return z.posTable[idx][color-1]
}

// Toggle adds or removes a stone from key. XOR is its own inverse, so the
// same call undoes itself.
func (z *Zobrist) Toggle(key uint64, idx int, color int) uint64 {
	return key ^ z.posTable[idx][color-1]
}

// Hash computes a key from scratch. cells holds 0 for empty and 1 or 2 for
// the two colors.
func (z *Zobrist) Hash(cells []uint8) uint64 {
	key := uint64(0)
	for i, c := range cells {
		if c == 0 {
			continue
		}
		key ^= z.posTable[i][c-1]
	}
	return key
}
