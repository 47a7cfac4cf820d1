package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hundred/config"
	"hundred/persist"
	"hundred/report"
	"hundred/searcher"
	"hundred/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	writer, err := persist.NewGridWriter(cfg.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare output directory")
	}

	global := stats.NewGlobal(writer)
	pool := searcher.NewPool(global,
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithFlushEvery(cfg.FlushEvery),
		searcher.WithSampleInterval(cfg.SampleInterval),
		searcher.WithReportInterval(cfg.ReportInterval),
		searcher.WithReporter(report.LogReporter{}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pool.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("search aborted")
	}

	snap := global.Snapshot()
	log.Info().
		Uint64("games", snap.TotalGames).
		Uint32("best_score", snap.BestScore).
		Uint64("solutions", snap.SolutionsFound).
		Msg("search stopped")
}
