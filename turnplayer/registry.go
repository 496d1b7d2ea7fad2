package turnplayer

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect6/config"
	"github.com/domino14/connect6/engine"
)

// New builds a player for the named strategy. The player's display name is
// name, or the strategy itself when name is empty.
func New(cfg *config.Config, strategy string, name string) (TurnPlayer, error) {
	st, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = string(st)
	}
	seed := cfg.GetUint64(config.ConfigZobristSeed)
	log.Debug().Str("strategy", string(st)).Str("name", name).Msg("creating-player")

	switch st {
	case StrategySearch:
		return engine.New(name, engine.SettingsFromConfig(cfg)), nil
	case StrategyGreedy:
		return engine.New(name, engine.SettingsFromConfig(cfg).Greedy()), nil
	case StrategyRandom:
		return NewRandomTurnPlayer(name, seed), nil
	case StrategyShuffle:
		return NewShuffleTurnPlayer(name, seed), nil
	}
	return NewCenterRandomTurnPlayer(name, seed), nil
}
