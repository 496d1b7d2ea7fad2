package negamax

import (
	"testing"

	"github.com/matryer/is"
)

func TestStoreAndLookup(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	tt.Reset(1024, 0)
	is.Equal(tt.Size(), 1024)

	_, ok := tt.lookup(12345)
	is.True(!ok)
	tt.store(12345, TableEntry{score: -77, depth: 2, flag: TTLower})
	e, ok := tt.lookup(12345)
	is.True(ok)
	is.Equal(e.score, int64(-77))
	is.Equal(e.depth, uint8(2))
	is.Equal(e.flag, uint8(TTLower))

	created, lookups, hits, t2 := tt.Stats()
	is.Equal(created, uint64(1))
	is.Equal(lookups, uint64(2))
	is.Equal(hits, uint64(1))
	is.Equal(t2, uint64(0))
}

func TestReplacementPolicy(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	tt.Reset(1024, 0)

	// same key: a shallower result does not replace a deeper one.
	tt.store(5, TableEntry{score: 10, depth: 3, flag: TTExact})
	tt.store(5, TableEntry{score: 20, depth: 1, flag: TTExact})
	e, _ := tt.lookup(5)
	is.Equal(e.score, int64(10))
	tt.store(5, TableEntry{score: 30, depth: 3, flag: TTUpper})
	e, _ = tt.lookup(5)
	is.Equal(e.score, int64(30))

	// a different key in the same slot always replaces, and is told apart
	// on lookup.
	other := uint64(5 + 1024)
	tt.store(other, TableEntry{score: 40, depth: 0, flag: TTExact})
	_, ok := tt.lookup(5)
	is.True(!ok)
	_, _, _, t2 := tt.Stats()
	is.Equal(t2, uint64(1))
	e, ok = tt.lookup(other)
	is.True(ok)
	is.Equal(e.score, int64(40))
}

func TestResetSizing(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	tt.Reset(3000, 0)
	// rounded down to a power of two.
	is.Equal(tt.Size(), 2048)
	tt.store(1, TableEntry{score: 1, depth: 1, flag: TTExact})
	tt.Reset(2048, 0)
	_, ok := tt.lookup(1)
	is.True(!ok)

	// derived from memory: at least the floor, at most the cap.
	tt.Reset(0, 0.0001)
	is.True(tt.Size() >= 1<<minSizePowerOf2)
	is.True(tt.Size() <= 1<<maxSizePowerOf2)
}
