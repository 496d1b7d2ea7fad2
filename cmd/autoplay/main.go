// autoplay pits two strategies against each other and prints a report.
//
//	autoplay --autoplay-games 200 --autoplay-threads 4 search random
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect6/automatic"
	"github.com/domino14/connect6/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	p1, p2 := cfg.GetString(config.ConfigStrategy), "random"
	switch args := cfg.Args(); len(args) {
	case 0:
	case 2:
		p1, p2 = args[0], args[1]
	default:
		log.Fatal().Strs("args", args).Msg("expected two strategies")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var logfile io.Writer
	if path := cfg.GetString(config.ConfigAutoplayLog); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-create-log")
		}
		defer f.Close()
		logfile = f
	}

	report, err := automatic.CompVsComp(ctx, cfg, p1, p2,
		cfg.GetInt(config.ConfigAutoplayGames), cfg.GetInt(config.ConfigAutoplayThreads), logfile)
	if err != nil {
		log.Fatal().Err(err).Msg("autoplay-failed")
	}

	fmt.Println(report.String())
	if err := report.WriteHistogram(os.Stdout); err != nil {
		log.Error().Err(err).Msg("histogram-failed")
	}
	if path := cfg.GetString(config.ConfigAutoplayReport); path != "" {
		out, err := report.YAML()
		if err != nil {
			log.Fatal().Err(err).Msg("report-marshal-failed")
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			log.Fatal().Err(err).Msg("report-write-failed")
		}
		log.Info().Str("path", path).Msg("wrote-report")
	}
}
