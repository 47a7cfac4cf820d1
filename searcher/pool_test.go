package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hundred/stats"
)

// countingReporter records each published report. Publish runs on the
// reporter goroutine only; reads happen after Run returns.
type countingReporter struct {
	reports []stats.Report
}

func (r *countingReporter) Publish(report stats.Report) {
	r.reports = append(r.reports, report)
}

func TestPoolRunUntilCancelled(t *testing.T) {
	global := stats.NewGlobal(nil)
	pool := NewPool(global,
		WithGoroutines(2),
		WithFlushEvery(100),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := pool.Run(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded, "cancellation is the only way out")

	snap := global.Snapshot()
	require.Positive(t, snap.TotalGames, "workers should have played games")
	require.Positive(t, snap.BestScore, "every game scores at least one cell")
}

func TestPoolFinalFlushOnShutdown(t *testing.T) {
	global := stats.NewGlobal(nil)
	// A huge batch size: the only flush can be the shutdown flush.
	pool := NewPool(global,
		WithGoroutines(1),
		WithFlushEvery(1<<40),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_ = pool.Run(ctx)

	require.Positive(t, global.Snapshot().TotalGames,
		"in-flight local statistics should be flushed on shutdown")
}

func TestPoolReports(t *testing.T) {
	global := stats.NewGlobal(nil)
	reporter := &countingReporter{}
	pool := NewPool(global,
		WithGoroutines(1),
		WithFlushEvery(50),
		WithSampleInterval(5*time.Millisecond),
		WithReportInterval(20*time.Millisecond),
		WithReporter(reporter),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_ = pool.Run(ctx)

	require.NotEmpty(t, reporter.reports, "the reporter should have published at least once")
	for _, r := range reporter.reports {
		require.GreaterOrEqual(t, r.RatePerSecond, 0.0, "throughput can never be negative")
	}
}

func TestPoolDefaults(t *testing.T) {
	pool := NewPool(stats.NewGlobal(nil))

	require.Positive(t, pool.goroutines, "worker count should default to the CPU count or the fallback")
	require.Equal(t, uint64(stats.FlushBatchSize), pool.flushEvery, "batch size should default to the named constant")
}
