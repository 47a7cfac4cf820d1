package report

import (
	"github.com/rs/zerolog/log"

	"hundred/stats"
)

// Reporter renders periodic search progress. Publish is called from a single
// goroutine; implementations do not need to be concurrency-safe.
type Reporter interface {
	Publish(r stats.Report)
}

// LogReporter emits progress through the global structured logger.
type LogReporter struct{}

func (LogReporter) Publish(r stats.Report) {
	log.Info().
		Float64("games_per_second", r.RatePerSecond).
		Uint32("best_score", r.BestScore).
		Uint64("solutions", r.SolutionsFound).
		Msg("search progress")
}

// Discard swallows every report. Useful in tests and benchmarks.
type Discard struct{}

func (Discard) Publish(stats.Report) {}
