package automatic

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/connect6/stats"
)

const (
	confidence    = 95
	histogramBins = 10
)

type PlayerSummary struct {
	Name        string  `yaml:"name"`
	Wins        int     `yaml:"wins"`
	WinsAsBlack int     `yaml:"wins_as_black"`
	WinsAsWhite int     `yaml:"wins_as_white"`
	Forfeits    int     `yaml:"forfeits"`
	ScoreRate   float64 `yaml:"score_rate"`
	Margin95    float64 `yaml:"margin_95"`
	Significant bool    `yaml:"significant"`
	MeanMoveMs  float64 `yaml:"mean_move_ms"`
	MaxMoveMs   float64 `yaml:"max_move_ms"`
}

// Report summarizes a batch of games. Lengths are counted in turns.
type Report struct {
	Games         int              `yaml:"games"`
	Draws         int              `yaml:"draws"`
	Players       [2]PlayerSummary `yaml:"players"`
	MeanLength    float64          `yaml:"mean_length"`
	StdevLength   float64          `yaml:"stdev_length"`
	MinLength     float64          `yaml:"min_length"`
	MaxLength     float64          `yaml:"max_length"`
	MeanStones    float64          `yaml:"mean_stones"`
	DistinctGames int              `yaml:"distinct_games"`

	lengths      []float64
	lengthStat   stats.Statistic
	stoneStat    stats.Statistic
	moveStats    [2]stats.Statistic
	fingerprints map[uint64]struct{}
}

func NewReport(name1, name2 string) *Report {
	return &Report{
		Players: [2]PlayerSummary{
			{Name: name1},
			{Name: name2},
		},
		fingerprints: map[uint64]struct{}{},
	}
}

// Add folds a game into the report. It is not safe for concurrent use.
func (r *Report) Add(g GameResult) {
	r.Games++
	turns := float64(len(g.Moves))
	r.lengths = append(r.lengths, turns)
	r.lengthStat.Push(turns)
	if g.Final != nil {
		r.stoneStat.Push(float64(g.Final.Stones()))
	}
	r.fingerprints[g.Fingerprint()] = struct{}{}

	for i, d := range g.MoveTimes {
		// turn i was played by black when i is even.
		p := g.Black
		if i%2 == 1 {
			p = 1 - g.Black
		}
		r.moveStats[p].Push(float64(d.Microseconds()) / 1000)
	}

	switch {
	case g.Winner == Draw:
		r.Draws++
	default:
		ps := &r.Players[g.Winner]
		ps.Wins++
		if g.Winner == g.Black {
			ps.WinsAsBlack++
		} else {
			ps.WinsAsWhite++
		}
		if g.Forfeit {
			r.Players[1-g.Winner].Forfeits++
		}
	}
	r.summarize()
}

func (r *Report) summarize() {
	r.MeanLength = r.lengthStat.Mean()
	r.StdevLength = r.lengthStat.Stdev()
	r.MinLength = r.lengthStat.Min()
	r.MaxLength = r.lengthStat.Max()
	r.MeanStones = r.stoneStat.Mean()
	r.DistinctGames = len(r.fingerprints)
	for i := range r.Players {
		ps := &r.Players[i]
		ps.ScoreRate, ps.Margin95 = stats.WinRate(ps.Wins, r.Draws, r.Games, confidence)
		ps.Significant = stats.Significant(ps.ScoreRate, r.Games, confidence)
		ps.MeanMoveMs = r.moveStats[i].Mean()
		ps.MaxMoveMs = r.moveStats[i].Max()
	}
}

func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// String is a short human-readable summary.
func (r *Report) String() string {
	p1, p2 := r.Players[0], r.Players[1]
	return fmt.Sprintf("%d games: %s %d (%.1f%% ± %.1f) - %s %d (%.1f%% ± %.1f), %d draws, %d distinct",
		r.Games, p1.Name, p1.Wins, 100*p1.ScoreRate, 100*p1.Margin95,
		p2.Name, p2.Wins, 100*p2.ScoreRate, 100*p2.Margin95, r.Draws, r.DistinctGames)
}

// WriteHistogram prints a histogram of game lengths.
func (r *Report) WriteHistogram(w io.Writer) error {
	if len(r.lengths) == 0 {
		return nil
	}
	bins := min(histogramBins, len(lo.Uniq(r.lengths)))
	hist := histogram.Hist(max(bins, 1), r.lengths)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
