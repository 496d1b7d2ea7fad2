package negamax

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 24

const (
	minSizePowerOf2 = 16
	maxSizePowerOf2 = 24
)

// 24 bytes (entrySize)
type TableEntry struct {
	// The full key is stored; two positions that share a slot are told apart
	// by it. Two positions that share the full key are not.
	key   uint64
	score int64
	depth uint8
	flag  uint8
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

// TranspositionTable is a fixed-size, power-of-two array indexed by the low
// bits of the zobrist key. It belongs to one engine and is not safe for
// concurrent use.
type TranspositionTable struct {
	table        []TableEntry
	created      uint64
	lookups      uint64
	hits         uint64
	sizePowerOf2 int
	sizeMask     uint64
	// a "type 2" collision is two positions landing in the same slot.
	t2collisions uint64
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{}
}

func (t *TranspositionTable) lookup(zval uint64) (TableEntry, bool) {
	t.lookups++
	idx := zval & t.sizeMask
	entry := t.table[idx]
	if !entry.valid() {
		return TableEntry{}, false
	}
	if entry.key != zval {
		// There is another unrelated node at this position.
		t.t2collisions++
		return TableEntry{}, false
	}
	t.hits++
	return entry, true
}

// store replaces an unrelated entry outright and the same position's entry
// only when the new search was at least as deep.
func (t *TranspositionTable) store(zval uint64, tentry TableEntry) {
	idx := zval & t.sizeMask
	old := t.table[idx]
	if old.valid() && old.key == zval && old.depth > tentry.depth {
		return
	}
	tentry.key = zval
	t.table[idx] = tentry
	t.created++
}

// Reset clears the table, resizing it if needed. A positive capacity is
// rounded down to a power of two; otherwise the size is derived from
// fractionOfMemory of the system's total memory.
func (t *TranspositionTable) Reset(capacity int, fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := float64(capacity)
	if capacity <= 0 {
		desiredNElems = fractionOfMemory * (float64(totalMem) / float64(entrySize))
	}
	// find biggest power of 2 lower than desired. An explicit capacity is
	// honored even below the floor.
	pow := int(math.Log2(max(desiredNElems, 1)))
	if capacity <= 0 {
		pow = max(pow, minSizePowerOf2)
	}
	pow = min(pow, maxSizePowerOf2)
	t.sizePowerOf2 = pow

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created = 0
	t.lookups = 0
	t.hits = 0
	t.t2collisions = 0
}

// Size is the number of slots.
func (t *TranspositionTable) Size() int {
	return len(t.table)
}

// Stats returns the created, lookups, hits and slot-collision counters.
func (t *TranspositionTable) Stats() (created, lookups, hits, t2collisions uint64) {
	return t.created, t.lookups, t.hits, t.t2collisions
}
