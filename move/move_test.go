package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

type coordTestStruct struct {
	idx    int
	output string
}

var coordTests = []coordTestStruct{
	{0, "A1"},
	{18, "S1"},
	{19, "A2"},
	{180, "J10"},
	{360, "S19"},
	{9*19 + 2, "C10"},
}

func TestToCoord(t *testing.T) {
	for _, tc := range coordTests {
		calc := ToCoord(tc.idx)
		if calc != tc.output {
			t.Errorf("For idx=%v got %v, expected %v", tc.idx, calc, tc.output)
		}
	}
}

func TestFromCoord(t *testing.T) {
	for _, tc := range coordTests {
		idx, err := FromCoord(tc.output)
		if err != nil {
			t.Errorf("For %v got error %v", tc.output, err)
		}
		if idx != tc.idx {
			t.Errorf("For %v got %v, expected %v", tc.output, idx, tc.idx)
		}
	}
}

func TestFromCoordErrors(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"", "T1", "A0", "A20", "10J", "J", "JJ10"} {
		_, err := FromCoord(s)
		is.True(errors.Is(err, ErrBadCoordinate))
	}
}

func TestFromString(t *testing.T) {
	is := is.New(t)
	m, err := FromString("J10")
	is.NoErr(err)
	is.True(m.IsSingle())
	is.Equal(m.First(), 180)
	is.Equal(m.Second(), -1)

	m, err = FromString("j10, k11")
	is.NoErr(err)
	is.Equal(m.Len(), 2)
	is.Equal(m.String(), "J10 K11")

	_, err = FromString("A1 A2 A3")
	is.True(errors.Is(err, ErrBadCoordinate))
}

func TestEqualsUnordered(t *testing.T) {
	is := is.New(t)
	is.True(NewPair(3, 4).Equals(NewPair(4, 3)))
	is.True(!NewPair(3, 4).Equals(NewPair(3, 5)))
	is.True(!NewSingle(3).Equals(NewPair(3, 4)))
	is.True(NewSingle(7).Equals(NewSingle(7)))
	is.True(NewPair(1, 2).Contains(2))
	is.True(!NewSingle(1).Contains(-1))
}
