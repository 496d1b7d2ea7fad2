package engine

import (
	"time"

	"github.com/domino14/connect6/config"
	"github.com/domino14/connect6/movegen"
	"github.com/domino14/connect6/pattern"
	"github.com/domino14/connect6/search/negamax"
	"github.com/domino14/connect6/search/tss"
)

// Settings is the plain-value form of the engine's configuration.
type Settings struct {
	TimeBudget         time.Duration
	SearchEnabled      bool
	SearchDepth        int
	NeighborhoodRadius int
	CandidateLimit     int
	PairLimit          int
	DefenseWeight      float64

	TSSEnabled        bool
	TSSDepth          int
	TSSWidth          int
	TSSDefenseWidth   int
	TSSBudgetFraction float64

	ZobristSeed        uint64
	TTCapacity         int
	TTMemoryFraction   float64
	IterativeDeepening bool
	TranspositionTable bool
	ForcedMoves        bool
}

func DefaultSettings() Settings {
	return Settings{
		TimeBudget:         4500 * time.Millisecond,
		SearchEnabled:      true,
		SearchDepth:        negamax.DefaultDepth,
		NeighborhoodRadius: movegen.DefaultRadius,
		CandidateLimit:     movegen.DefaultLimit,
		PairLimit:          movegen.DefaultPairLimit,
		DefenseWeight:      pattern.DefaultDefenseWeight,
		TSSEnabled:         true,
		TSSDepth:           tss.DefaultDepth,
		TSSWidth:           tss.DefaultWidth,
		TSSDefenseWidth:    tss.DefaultDefenseWidth,
		TSSBudgetFraction:  0.4,
		ZobristSeed:        config.DefaultZobristSeed,
		TTCapacity:         0,
		TTMemoryFraction:   0.01,
		IterativeDeepening: true,
		TranspositionTable: true,
		ForcedMoves:        true,
	}
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		TimeBudget:         cfg.GetDuration(config.ConfigTimeBudget),
		SearchEnabled:      true,
		SearchDepth:        cfg.GetInt(config.ConfigSearchDepth),
		NeighborhoodRadius: cfg.GetInt(config.ConfigNeighborhoodRadius),
		CandidateLimit:     cfg.GetInt(config.ConfigCandidateLimit),
		PairLimit:          cfg.GetInt(config.ConfigPairLimit),
		DefenseWeight:      cfg.GetFloat64(config.ConfigDefenseWeight),
		TSSEnabled:         cfg.GetBool(config.ConfigTSSEnabled),
		TSSDepth:           cfg.GetInt(config.ConfigTSSDepth),
		TSSWidth:           cfg.GetInt(config.ConfigTSSWidth),
		TSSDefenseWidth:    cfg.GetInt(config.ConfigTSSDefenseWidth),
		TSSBudgetFraction:  cfg.GetFloat64(config.ConfigTSSBudgetFraction),
		ZobristSeed:        cfg.GetUint64(config.ConfigZobristSeed),
		TTCapacity:         cfg.GetInt(config.ConfigTTCapacity),
		TTMemoryFraction:   cfg.GetFloat64(config.ConfigTTMemoryFraction),
		IterativeDeepening: cfg.GetBool(config.ConfigIterativeDeepening),
		TranspositionTable: cfg.GetBool(config.ConfigTranspositionTable),
		ForcedMoves:        cfg.GetBool(config.ConfigForcedMoves),
	}
}

// Greedy turns off both searches: the engine plays forced moves and
// otherwise the top-ranked candidate pair.
func (s Settings) Greedy() Settings {
	s.SearchEnabled = false
	s.TSSEnabled = false
	return s
}
