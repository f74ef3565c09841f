package ingest

import (
	"context"
	"sync/atomic"

	"crawler_server/core/domain"

	"github.com/go-pkgz/pool"
)

// =============================================================================
// Detail-Page Enrichment
// =============================================================================

// enrichWorker implements pool.Worker for one detail-page fetch. Each
// campaign pointer is submitted at most once, so in-place mutation needs no
// locking.
type enrichWorker struct {
	svc      *Service
	enriched *atomic.Int64
}

// Do implements pool.Worker.
func (w *enrichWorker) Do(ctx context.Context, c *domain.StandardizedCampaign) error {
	days, err := w.svc.enricher.ReviewPeriod(ctx, c.URL, c.Source)
	if err != nil {
		w.svc.log.WithField("campaign", c.Key().String()).WithError(err).
			Warn("detail enrichment failed")
		return err
	}
	if days != nil {
		c.ReviewDeadlineDays = days
		w.enriched.Add(1)
	}
	return nil
}

// enrichAll fills missing ReviewDeadlineDays via detail pages, at most
// cfg.EnrichWorkers pages in flight. Failures leave the field nil; the run
// never fails here. Returns how many campaigns were actually filled.
func (s *Service) enrichAll(ctx context.Context, batch []*domain.StandardizedCampaign) int {
	if s.enricher == nil || len(batch) == 0 {
		return 0
	}

	var enriched atomic.Int64
	worker := &enrichWorker{svc: s, enriched: &enriched}

	p := pool.New[*domain.StandardizedCampaign](s.cfg.EnrichWorkers, worker).
		WithBatchSize(1).
		WithContinueOnError()
	if err := p.Go(ctx); err != nil {
		s.log.WithError(err).Error("enrichment pool failed to start")
		return 0
	}

	submitted := 0
	for _, c := range batch {
		if c.ReviewDeadlineDays != nil {
			continue
		}
		if !s.enricher.Supports(c.Source) {
			continue
		}
		p.Submit(c)
		submitted++
	}

	if err := p.Close(ctx); err != nil {
		// 개별 페이지 실패는 위에서 이미 로그됨
		s.log.WithError(err).Warn("enrichment finished with failures")
	}

	s.log.WithFields(map[string]any{
		"submitted": submitted,
		"filled":    enriched.Load(),
	}).Debug("detail enrichment pass complete")

	return int(enriched.Load())
}
