package searcher

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hundred/game"
	"hundred/report"
	"hundred/stats"
)

// FallbackGoroutines is used when CPU core detection reports nothing usable.
const FallbackGoroutines = 4

const (
	defaultSampleInterval = 250 * time.Millisecond
	defaultReportInterval = 5 * time.Second
)

// Option configures a Pool.
type Option func(p *Pool)

// WithGoroutines sets the number of worker goroutines.
func WithGoroutines(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.goroutines = n
		}
	}
}

// WithFlushEvery sets how many games a worker plays between flushes of its
// local statistics into the shared counters.
func WithFlushEvery(n uint64) Option {
	return func(p *Pool) {
		if n > 0 {
			p.flushEvery = n
		}
	}
}

// WithSampleInterval sets how often the reporter wakes to check the clock.
func WithSampleInterval(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.sampleInterval = d
		}
	}
}

// WithReportInterval sets how often the reporter publishes a throughput
// sample.
func WithReportInterval(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.reportInterval = d
		}
	}
}

// WithReporter sets the progress reporter.
func WithReporter(r report.Reporter) Option {
	return func(p *Pool) {
		if r != nil {
			p.reporter = r
		}
	}
}

// Pool runs the unbounded concurrent search: N worker goroutines each loop
// fresh-board → random walk → record, flushing into the shared counters in
// batches, while one reporter goroutine periodically publishes throughput.
type Pool struct {
	goroutines     int
	flushEvery     uint64
	sampleInterval time.Duration
	reportInterval time.Duration
	global         *stats.Global
	reporter       report.Reporter
}

// NewPool returns a pool flushing into global. Worker count defaults to the
// detected CPU core count.
func NewPool(global *stats.Global, options ...Option) *Pool {
	p := &Pool{
		goroutines:     runtime.NumCPU(),
		flushEvery:     stats.FlushBatchSize,
		sampleInterval: defaultSampleInterval,
		reportInterval: defaultReportInterval,
		global:         global,
		reporter:       report.Discard{},
	}
	if p.goroutines < 1 {
		p.goroutines = FallbackGoroutines
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Run spawns the workers plus the reporter and blocks until ctx is
// cancelled. The search itself is unbounded; cancellation is the only way
// out, and every worker flushes its remaining local statistics on the way.
func (p *Pool) Run(ctx context.Context) error {
	log.Info().
		Int("goroutines", p.goroutines).
		Uint64("flush_every", p.flushEvery).
		Msg("starting search")

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.goroutines; i++ {
		g.Go(func() error {
			return p.work(ctx)
		})
	}
	g.Go(func() error {
		return p.sample(ctx)
	})
	return g.Wait()
}

func (p *Pool) work(ctx context.Context) error {
	walker := NewWalker(nil)
	local := stats.NewLocal(p.flushEvery)
	board := game.NewBoard()

	for {
		select {
		case <-ctx.Done():
			p.global.Flush(local)
			return ctx.Err()
		default:
		}

		board.Reset()
		score := walker.PlayRandomGame(board)
		local.Record(score, board)
		if local.ShouldFlush() {
			p.global.Flush(local)
		}
	}
}

// sample wakes on the short interval and publishes a throughput report once
// the longer report interval has elapsed. Read-only against the shared
// counters.
func (p *Pool) sample(ctx context.Context) error {
	ticker := time.NewTicker(p.sampleInterval)
	defer ticker.Stop()

	prev := p.global.Snapshot()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if time.Since(prev.Taken) < p.reportInterval {
				continue
			}
			cur := p.global.Snapshot()
			p.reporter.Publish(stats.DeltaReport(prev, cur))
			prev = cur
		}
	}
}
