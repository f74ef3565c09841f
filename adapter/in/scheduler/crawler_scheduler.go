// Package scheduler wires up the cron job that periodically runs a crawl
// cycle over all registered listing sites.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crawler_server/adapter/out/cache"
	"crawler_server/core/port/in"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler wraps robfig/cron and manages the periodic crawl loop.
type Scheduler struct {
	cron       *cron.Cron
	ingest     in.IngestService
	lock       *cache.RunLock
	mode       in.IngestMode
	spec       string // cron spec, e.g. "@every 6h"
	runTimeout time.Duration
	zlog       zerolog.Logger

	wg sync.WaitGroup // tracks the immediate startup run
}

// New creates a Scheduler that fires every intervalHours hours. Each run is
// bounded by runTimeout.
func New(ingest in.IngestService, lock *cache.RunLock, mode in.IngestMode, intervalHours int, runTimeout time.Duration, zlog zerolog.Logger) *Scheduler {
	if intervalHours <= 0 {
		intervalHours = 6
	}
	if runTimeout <= 0 {
		runTimeout = 30 * time.Minute
	}
	return &Scheduler{
		cron:       cron.New(),
		ingest:     ingest,
		lock:       lock,
		mode:       mode,
		spec:       fmt.Sprintf("@every %dh", intervalHours),
		runTimeout: runTimeout,
		zlog:       zlog.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the job and starts the scheduler. Also runs one crawl
// immediately so the dataset is populated without waiting for the first tick.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runCycle)
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.zlog.Info().Str("spec", s.spec).Msg("cron started")

	// Run immediately on startup (non-blocking)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runCycle()
	}()

	return nil
}

// Stop gracefully shuts down the scheduler. Waits for a running job,
// including the immediate startup run.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.wg.Wait()
	s.zlog.Info().Msg("cron stopped")
}

func (s *Scheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	acquired, err := s.lock.Acquire(ctx)
	if err != nil {
		s.zlog.Error().Err(err).Msg("run lock acquire failed")
		return
	}
	if !acquired {
		s.zlog.Info().Msg("crawl run already in progress, skipping cycle")
		return
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.zlog.Warn().Err(err).Msg("run lock release failed")
		}
	}()

	report, err := s.ingest.Run(ctx, s.mode)
	if err != nil {
		s.zlog.Error().Err(err).Msg("scheduled crawl run failed")
		return
	}
	s.zlog.Info().
		Str("run_id", report.RunID).
		Str("mode", string(report.Mode)).
		Int("stored", report.Stored).
		Int("expired", report.Expired).
		Dur("duration", report.Duration).
		Msg("scheduled crawl run finished")
}
