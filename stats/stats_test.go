package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		lengths []int
		mean    float64
		stdev   float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, l := range c.lengths {
			s.Push(float64(l))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.lengths))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{7, 3, 11, 5} {
		s.Push(v)
	}
	is.Equal(s.Min(), 3.0)
	is.Equal(s.Max(), 11.0)
	is.Equal(s.Last(), 5.0)
	is.True(s.StandardError() > 0)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489004))
}

func TestWinRate(t *testing.T) {
	is := is.New(t)
	p, m := WinRate(0, 0, 0, 95)
	is.Equal(p, 0.0)
	is.Equal(m, 0.0)

	p, m = WinRate(60, 20, 100, 95)
	is.True(FuzzyEqual(p, 0.7))
	is.True(FuzzyEqual(m, 1.959963984540054*0.0458257569495584))

	p, m = WinRate(10, 0, 10, 95)
	is.Equal(p, 1.0)
	is.Equal(m, 0.0)
}

func TestSignificant(t *testing.T) {
	is := is.New(t)
	is.True(!Significant(0.55, 100, 95))
	is.True(Significant(0.7, 100, 95))
	is.True(!Significant(1, 0, 95))
}
