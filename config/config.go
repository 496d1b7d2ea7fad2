package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigStrategy           = "strategy"
	ConfigTimeBudget         = "time-budget"
	ConfigSearchDepth        = "search-depth"
	ConfigNeighborhoodRadius = "neighborhood-radius"
	ConfigCandidateLimit     = "candidate-limit"
	ConfigPairLimit          = "pair-limit"
	ConfigDefenseWeight      = "defense-weight"
	ConfigTSSEnabled         = "tss-enabled"
	ConfigTSSDepth           = "tss-depth"
	ConfigTSSWidth           = "tss-width"
	ConfigTSSDefenseWidth    = "tss-defense-width"
	ConfigTSSBudgetFraction  = "tss-budget-fraction"
	ConfigZobristSeed        = "zobrist-seed"
	ConfigTTCapacity         = "tt-capacity"
	ConfigTTMemoryFraction   = "tt-memory-fraction"
	ConfigIterativeDeepening = "iterative-deepening"
	ConfigTranspositionTable = "transposition-table"
	ConfigForcedMoves        = "forced-moves"
	ConfigAutoplayGames      = "autoplay-games"
	ConfigAutoplayThreads    = "autoplay-threads"
	ConfigAutoplayReport     = "autoplay-report"
	ConfigAutoplayLog        = "autoplay-log"
	ConfigCPUProfile         = "cpu-profile"
)

// DefaultZobristSeed is the seed every engine uses unless configured otherwise.
// A fixed seed keeps hashes, and therefore search traces, reproducible.
const DefaultZobristSeed uint64 = 0x5eed_c6c6_0d15_ea5e

type Config struct {
	viper.Viper
	args []string
}

func defaultThreads() int {
	return max(1, runtime.NumCPU()-1)
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigStrategy, "search")
	c.SetDefault(ConfigTimeBudget, 4500*time.Millisecond)
	c.SetDefault(ConfigSearchDepth, 2)
	c.SetDefault(ConfigNeighborhoodRadius, 2)
	c.SetDefault(ConfigCandidateLimit, 12)
	c.SetDefault(ConfigPairLimit, 30)
	c.SetDefault(ConfigDefenseWeight, 1.2)
	c.SetDefault(ConfigTSSEnabled, true)
	c.SetDefault(ConfigTSSDepth, 4)
	c.SetDefault(ConfigTSSWidth, 6)
	c.SetDefault(ConfigTSSDefenseWidth, 3)
	c.SetDefault(ConfigTSSBudgetFraction, 0.4)
	c.SetDefault(ConfigZobristSeed, DefaultZobristSeed)
	c.SetDefault(ConfigTTCapacity, 0)
	c.SetDefault(ConfigTTMemoryFraction, 0.01)
	c.SetDefault(ConfigIterativeDeepening, true)
	c.SetDefault(ConfigTranspositionTable, true)
	c.SetDefault(ConfigForcedMoves, true)
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayThreads, defaultThreads())
	c.SetDefault(ConfigAutoplayReport, "")
	c.SetDefault(ConfigAutoplayLog, "")
	c.SetDefault(ConfigCPUProfile, "")
}

// DefaultConfig returns a config with every key at its default value.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

// Load reads flags from args, then CONNECT6_* environment variables, then
// defaults, in that order of precedence.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()

	fs := pflag.NewFlagSet("connect6", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigStrategy, "search", "strategy: search, greedy, random, shuffle, center-random")
	fs.Duration(ConfigTimeBudget, 4500*time.Millisecond, "wall-clock budget per move")
	fs.Int(ConfigSearchDepth, 2, "alpha-beta depth in turns")
	fs.Int(ConfigNeighborhoodRadius, 2, "candidate neighborhood radius")
	fs.Int(ConfigCandidateLimit, 12, "number of candidate points kept for pairing")
	fs.Int(ConfigPairLimit, 30, "maximum candidate pairs per node")
	fs.Float64(ConfigDefenseWeight, 1.2, "weight applied to the opponent's pattern total")
	fs.Bool(ConfigTSSEnabled, true, "run threat-space search before alpha-beta")
	fs.Int(ConfigTSSDepth, 4, "threat-space search depth in attacker turns")
	fs.Int(ConfigTSSWidth, 6, "attacker points considered per threat-space node")
	fs.Int(ConfigTSSDefenseWidth, 3, "defender replies considered per threat")
	fs.Float64(ConfigTSSBudgetFraction, 0.4, "fraction of the move budget given to threat-space search")
	fs.Uint64(ConfigZobristSeed, DefaultZobristSeed, "seed for the zobrist table")
	fs.Int(ConfigTTCapacity, 0, "transposition table entries (0 derives it from system memory)")
	fs.Float64(ConfigTTMemoryFraction, 0.01, "fraction of system memory for the transposition table")
	fs.Bool(ConfigIterativeDeepening, true, "use iterative deepening")
	fs.Bool(ConfigTranspositionTable, true, "use the transposition table")
	fs.Bool(ConfigForcedMoves, true, "only expand wins and blocks when a side faces a threat")
	fs.Int(ConfigAutoplayGames, 100, "number of autoplay games")
	fs.Int(ConfigAutoplayThreads, defaultThreads(), "number of autoplay workers")
	fs.String(ConfigAutoplayReport, "", "path for the autoplay YAML report")
	fs.String(ConfigAutoplayLog, "", "path for the autoplay per-turn CSV log")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("CONNECT6")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	c.setDefaults()
	return c.validate()
}

func (c *Config) validate() error {
	if c.GetDuration(ConfigTimeBudget) <= 0 {
		return fmt.Errorf("%s must be positive", ConfigTimeBudget)
	}
	if c.GetInt(ConfigSearchDepth) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigSearchDepth)
	}
	if c.GetInt(ConfigCandidateLimit) < 2 {
		return fmt.Errorf("%s must be at least 2", ConfigCandidateLimit)
	}
	if f := c.GetFloat64(ConfigTSSBudgetFraction); f < 0 || f > 1 {
		return fmt.Errorf("%s must be within [0, 1]", ConfigTSSBudgetFraction)
	}
	return nil
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings is what commands log at startup.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
