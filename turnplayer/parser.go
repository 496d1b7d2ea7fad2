package turnplayer

import (
	"fmt"
	"strings"
)

type Strategy string

const (
	StrategySearch       Strategy = "search"
	StrategyGreedy       Strategy = "greedy"
	StrategyRandom       Strategy = "random"
	StrategyShuffle      Strategy = "shuffle"
	StrategyCenterRandom Strategy = "center-random"
)

// Strategies lists every strategy the registry can build.
var Strategies = []Strategy{
	StrategySearch, StrategyGreedy, StrategyRandom, StrategyShuffle, StrategyCenterRandom,
}

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategySearch, StrategyGreedy, StrategyRandom, StrategyShuffle, StrategyCenterRandom:
		return st, nil
	}
	names := make([]string, len(Strategies))
	for i, st := range Strategies {
		names[i] = string(st)
	}
	return "", fmt.Errorf("unknown strategy %q; valid options: %s", s, strings.Join(names, ", "))
}
