package scheduler

import (
	"context"
	"io"
	"math"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"PoolSentinel/internal/collector"
	"PoolSentinel/internal/model"
	"PoolSentinel/internal/monitor"
	"PoolSentinel/internal/notifier"
	"PoolSentinel/internal/pairs"
	"PoolSentinel/internal/recorder"
	"PoolSentinel/internal/report"
)

// PairSource returns the pairs to poll in the next cycle.
type PairSource func() ([]model.Pair, error)

// FileSource reloads pairs from path before every cycle.
func FileSource(path string) PairSource {
	return func() ([]model.Pair, error) { return pairs.Load(path) }
}

// Options configures a Scheduler.
type Options struct {
	PairPause  time.Duration
	CyclePause time.Duration
	// Digest, when set, sends a status digest at the scheduled times. It is
	// checked between cycles, never concurrently with polling.
	Digest cron.Schedule
	// Status receives the end-of-cycle table. Defaults to stdout.
	Status io.Writer
}

// CycleStats summarises one pass over the pairs list.
type CycleStats struct {
	Polled  int
	Skipped int
	Alerts  int
}

// Scheduler runs the sequential polling loop.
type Scheduler struct {
	Source   PairSource
	Fetcher  collector.Fetcher
	Monitor  *monitor.Monitor
	Notifier notifier.Sender
	Recorder recorder.Recorder
	Log      *zap.Logger
	Opts     Options

	latest     *report.Latest
	nextDigest time.Time
	now        func() time.Time
}

// NewScheduler creates a new Scheduler with a fresh Monitor.
func NewScheduler(src PairSource, f collector.Fetcher, n notifier.Sender, rec recorder.Recorder, log *zap.Logger, opts Options) *Scheduler {
	if opts.Status == nil {
		opts.Status = os.Stdout
	}
	return &Scheduler{
		Source:   src,
		Fetcher:  f,
		Monitor:  monitor.New(),
		Notifier: n,
		Recorder: rec,
		Log:      log,
		Opts:     opts,
		latest:   report.NewLatest(),
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled. It always returns nil on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Opts.Digest != nil {
		s.nextDigest = s.Opts.Digest.Next(s.now())
	}

	for {
		list, err := s.Source()
		if err != nil {
			s.Log.Warn("failed to read pairs", zap.Error(err))
		}
		if len(list) > 0 {
			stats := s.RunCycle(ctx, list)
			s.Log.Info("cycle finished",
				zap.Int("polled", stats.Polled),
				zap.Int("skipped", stats.Skipped),
				zap.Int("alerts", stats.Alerts))
			report.RenderTable(s.Opts.Status, s.latest.Readings())
		} else {
			s.Log.Warn("no valid pairs found")
		}
		if ctx.Err() != nil {
			return nil
		}

		s.maybeSendDigest(ctx)

		s.Log.Info("waiting for next cycle", zap.Duration("pause", s.Opts.CyclePause))
		if !sleep(ctx, s.Opts.CyclePause) {
			return nil
		}
	}
}

// RunCycle polls every pair once, in order.
func (s *Scheduler) RunCycle(ctx context.Context, list []model.Pair) CycleStats {
	s.Log.Info("checking RSI", zap.Int("pairs", len(list)))

	var stats CycleStats
	for _, pair := range list {
		if ctx.Err() != nil {
			break
		}
		if s.processPair(ctx, pair, &stats) {
			stats.Alerts++
		}
		if !sleep(ctx, s.Opts.PairPause) {
			break
		}
	}
	return stats
}

// processPair returns true when an alert was raised for pair.
func (s *Scheduler) processPair(ctx context.Context, pair model.Pair, stats *CycleStats) bool {
	log := s.Log.With(zap.String("chain", pair.Chain), zap.String("pool", pair.Pool))

	price, err := s.Fetcher.FetchPrice(ctx, pair.Chain, pair.Pool)
	if err != nil {
		log.Warn("skipping pair", zap.Error(err))
		stats.Skipped++
		return false
	}
	stats.Polled++

	key := pair.Key()
	if !s.Monitor.Seen(key) {
		log.Info("preloaded closes", zap.Int("count", monitor.Window-1))
	}
	rsi, ok := s.Monitor.Observe(key, price)
	if !ok {
		return false
	}

	now := s.now()
	alert, fired := monitor.Evaluate(pair, rsi, now)
	reading := model.Reading{Pair: pair, Price: price, RSI: rsi, Oversold: fired, At: now}
	s.latest.Put(reading)
	log.Info("RSI", zap.String("pair", pair.Short()), zap.Float64("rsi", round2(rsi)))

	if err := s.Recorder.RecordReading(&reading); err != nil {
		log.Error("record reading", zap.Error(err))
	}
	if !fired {
		return false
	}

	if err := s.Notifier.Send(ctx, notifier.FormatRSIAlert(alert)); err != nil {
		log.Error("send alert", zap.Error(err))
	}
	if err := s.Recorder.RecordAlert(&alert); err != nil {
		log.Error("record alert", zap.Error(err))
	}
	return true
}

func (s *Scheduler) maybeSendDigest(ctx context.Context) {
	if s.Opts.Digest == nil {
		return
	}
	now := s.now()
	if now.Before(s.nextDigest) {
		return
	}
	s.nextDigest = s.Opts.Digest.Next(now)
	if err := s.Notifier.Send(ctx, notifier.FormatDigest(s.latest.Readings(), now)); err != nil {
		s.Log.Error("send digest", zap.Error(err))
	}
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
