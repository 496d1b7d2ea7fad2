package pattern

// Category is the shape a stone makes along one axis.
type Category int8

const (
	None Category = iota
	LiveTwo
	DeadThree
	LiveThree
	DeadFour
	LiveFour
	Five
	Win
)

// WinScore is large enough that no position without a six can reach half of
// it on the board total, so |eval| > WinScore/2 is an exact terminal test.
const WinScore = 1_000_000_000

// Each weight exceeds twice the one below it.
var weights = [...]int{
	None:      0,
	LiveTwo:   100,
	DeadThree: 300,
	LiveThree: 1_000,
	DeadFour:  3_000,
	LiveFour:  10_000,
	Five:      50_000,
	Win:       WinScore,
}

var names = [...]string{
	None:      "none",
	LiveTwo:   "live-two",
	DeadThree: "dead-three",
	LiveThree: "live-three",
	DeadFour:  "dead-four",
	LiveFour:  "live-four",
	Five:      "five",
	Win:       "win",
}

func (c Category) Score() int {
	return weights[c]
}

func (c Category) String() string {
	if c < None || c > Win {
		return "unknown"
	}
	return names[c]
}

// Classify names the shape given the contiguous run through the point, the
// number of open ends of that run (0-2), and the number of own stones in the
// six-window being considered. A window holding five stones is one move from
// six regardless of where the gap is.
func Classify(run, open, windowCount int) Category {
	switch {
	case run >= 6:
		return Win
	case windowCount >= 5:
		return Five
	case windowCount == 4:
		if run == 4 && open == 2 {
			return LiveFour
		}
		return DeadFour
	case windowCount == 3:
		if run == 3 && open == 2 {
			return LiveThree
		}
		return DeadThree
	case windowCount == 2 && open == 2:
		return LiveTwo
	}
	return None
}
