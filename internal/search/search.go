// Package search drives concurrent schedule trials: generate, validate,
// score, insert. Workers run independently and share only two atomic
// counters and the leaderboard.
package search

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/derekprior/ssgen/internal/config"
	"github.com/derekprior/ssgen/internal/schedule"
	"github.com/derekprior/ssgen/internal/score"
	"github.com/derekprior/ssgen/internal/validator"
)

// Progress is an advisory snapshot of the run, safe to poll at any time.
// Readers tolerate slight staleness between the two counters.
type Progress struct {
	TotalAttempts int64
	ValidAttempts int64
	Elapsed       time.Duration
}

// Stats summarizes a finished run.
type Stats struct {
	TotalAttempts int64
	ValidAttempts int64
	Elapsed       time.Duration
}

// Outcome carries the ranked results and final run statistics.
type Outcome struct {
	Results []Result
	Stats   Stats
}

// Searcher runs the trial pipeline across a fixed-size worker pool until the
// valid-attempts counter reaches the configured target or the context is
// cancelled.
type Searcher struct {
	cfg    *config.Config
	logger *zap.Logger

	total atomic.Int64
	valid atomic.Int64
	seeds atomic.Int64
	start time.Time
}

func New(cfg *config.Config, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{cfg: cfg, logger: logger}
}

// Progress returns the current counters and elapsed time without blocking or
// perturbing the workers.
func (s *Searcher) Progress() Progress {
	return Progress{
		TotalAttempts: s.total.Load(),
		ValidAttempts: s.valid.Load(),
		Elapsed:       time.Since(s.start),
	}
}

// Run searches until the target number of valid schedules is found or ctx is
// cancelled, then returns whatever the leaderboard holds. Workers may
// slightly overshoot the target under races; that is accepted.
func (s *Searcher) Run(ctx context.Context) *Outcome {
	s.start = time.Now()
	board := NewLeaderboard(s.cfg.Search.SaveTop)

	s.logger.Info("search started",
		zap.Int("workers", s.cfg.Search.MaxWorkers),
		zap.Int("target", s.cfg.Search.TargetValidSchedules),
		zap.Int("save_top", s.cfg.Search.SaveTop),
		zap.Int("min_score", s.cfg.Search.MinScore))

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Search.MaxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, board)
		}()
	}
	wg.Wait()

	stats := Stats{
		TotalAttempts: s.total.Load(),
		ValidAttempts: s.valid.Load(),
		Elapsed:       time.Since(s.start),
	}

	s.logger.Info("search finished",
		zap.Int64("total_attempts", stats.TotalAttempts),
		zap.Int64("valid_attempts", stats.ValidAttempts),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Int("retained", board.Len()))

	return &Outcome{Results: board.Results(), Stats: stats}
}

// worker loops trials until the stop condition holds. Each worker owns its
// random source, seeded from a monotonic counter combined with the clock so
// no two workers replay the same sequence.
func (s *Searcher) worker(ctx context.Context, board *Leaderboard) {
	filler := schedule.NewFiller(s.cfg)
	rng := newWorkerRand(s.seeds.Add(1))

	target := int64(s.cfg.Search.TargetValidSchedules)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if s.valid.Load() >= target {
			return
		}
		s.runTrial(filler, rng, board)
	}
}

// runTrial executes one generate -> validate -> score -> insert pass.
func (s *Searcher) runTrial(filler *schedule.Filler, rng *rand.Rand, board *Leaderboard) {
	s.total.Add(1)

	games, ok := filler.Fill(rng)
	if !ok {
		return // retry bound exhausted; expected, discard
	}
	if !validator.Valid(s.cfg, games) {
		return
	}

	// The candidate counts as valid regardless of score; the minimum score
	// gates only leaderboard insertion.
	s.valid.Add(1)

	sc := score.Score(s.cfg, games)
	if sc < s.cfg.Search.MinScore {
		return
	}
	board.Insert(Result{Games: games, Score: sc})
}

func newWorkerRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + time.Now().UnixNano()))
}
