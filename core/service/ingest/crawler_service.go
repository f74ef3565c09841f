package ingest

import (
	"context"
	"time"

	"crawler_server/core/domain"
	"crawler_server/core/port/in"
	"crawler_server/core/port/out"
	"crawler_server/core/service/normalize"
	"crawler_server/pkg/apperr"
	"crawler_server/pkg/logger"

	"github.com/google/uuid"
)

// upsertChunkSize bounds statement size; postgres handles 100-row inserts
// comfortably and partial progress survives a late failure.
const upsertChunkSize = 100

// Config tunes one ingest service instance.
type Config struct {
	EnrichWorkers int // bounded concurrency for detail-page fetches
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{EnrichWorkers: 10}
}

// Service implements in.IngestService: one crawl run end to end.
type Service struct {
	sources  []out.Source
	repo     out.CampaignRepository
	enricher out.DetailEnricher
	snapshot out.SnapshotWriter
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a new IngestService. enricher and snapshot may be nil;
// the corresponding steps are then skipped.
func NewService(
	sources []out.Source,
	repo out.CampaignRepository,
	enricher out.DetailEnricher,
	snapshot out.SnapshotWriter,
	cfg Config,
) in.IngestService {
	if cfg.EnrichWorkers <= 0 {
		cfg.EnrichWorkers = DefaultConfig().EnrichWorkers
	}
	return &Service{
		sources:  sources,
		repo:     repo,
		enricher: enricher,
		snapshot: snapshot,
		cfg:      cfg,
		log:      logger.WithField("component", "ingest"),
		now:      time.Now,
	}
}

// Run executes one crawl run. Per-source fetch failures, enrichment failures
// and snapshot failures degrade the run; only a store write failure fails it.
func (s *Service) Run(ctx context.Context, mode in.IngestMode) (*in.RunReport, error) {
	report := &in.RunReport{
		RunID:        uuid.NewString(),
		StartedAt:    s.now(),
		SourceErrors: map[string]string{},
		BySource:     map[string]int{},
	}
	log := s.log.WithField("run_id", report.RunID)

	// 1. Flip the active flag on anything whose deadline has passed. This is
	// maintenance, not ingestion: it must happen even when every source is
	// down, so it runs before collection.
	expired, err := s.repo.MarkExpired(ctx, report.StartedAt)
	if err != nil {
		log.WithError(err).Warn("expiry sweep failed, continuing")
	}
	report.Expired = expired

	// 2. Resolve auto mode against the store's current contents.
	report.Mode, err = s.resolveMode(ctx, mode)
	if err != nil {
		log.WithError(err).Warn("mode resolution fell back to full")
	}

	// 3. Collect from every source, failure-isolated.
	collected := s.collect(ctx, report)
	report.Collected = len(collected)

	// 4. Standardize and dedup within the batch, last write wins.
	batch := s.standardize(collected, report.StartedAt)
	report.Deduplicated = len(collected) - len(batch)

	// 5. Incremental runs skip keys the store already has.
	if report.Mode == in.ModeIncremental {
		batch, report.Skipped = s.filterExisting(ctx, batch, log)
	}

	// 6. Detail-page enrichment, bounded concurrency, best effort.
	report.Enriched = s.enrichAll(ctx, batch)

	// 7. Snapshot before touching the store; a run that dies mid-upsert can
	// be replayed from the file.
	if s.snapshot != nil && len(batch) > 0 {
		path, err := s.snapshot.Write(ctx, report.RunID, batch)
		if err != nil {
			log.WithError(err).Warn("snapshot write failed, continuing")
		}
		report.SnapshotPath = path
	}

	// 8. Upsert in chunks. This is the only fatal step.
	if err := s.upsert(ctx, batch); err != nil {
		return report, err
	}
	report.Stored = len(batch)

	report.Duration = s.now().Sub(report.StartedAt)
	log.WithFields(map[string]any{
		"mode":      report.Mode,
		"collected": report.Collected,
		"deduped":   report.Deduplicated,
		"skipped":   report.Skipped,
		"enriched":  report.Enriched,
		"expired":   report.Expired,
		"stored":    report.Stored,
	}).WithDuration(report.Duration).Info("crawl run finished")

	return report, nil
}

// resolveMode turns auto into full or incremental. A store that cannot be
// counted is treated as empty: better to redo work than to silently skip it.
func (s *Service) resolveMode(ctx context.Context, mode in.IngestMode) (in.IngestMode, error) {
	if mode != in.ModeAuto {
		return mode, nil
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return in.ModeFull, err
	}
	if n == 0 {
		return in.ModeFull, nil
	}
	return in.ModeIncremental, nil
}

// collect fans out to all sources concurrently and reassembles the results in
// registration order, so one slow or broken site neither blocks nor reorders
// the rest.
func (s *Service) collect(ctx context.Context, report *in.RunReport) []*domain.Campaign {
	type result struct {
		campaigns []*domain.Campaign
		err       error
	}
	results := make([]result, len(s.sources))

	done := make(chan int, len(s.sources))
	for i, src := range s.sources {
		go func(i int, src out.Source) {
			defer func() { done <- i }()
			campaigns, err := src.Fetch(ctx)
			results[i] = result{campaigns: campaigns, err: err}
		}(i, src)
	}
	for range s.sources {
		<-done
	}

	var all []*domain.Campaign
	for i, src := range s.sources {
		r := results[i]
		if r.err != nil {
			s.log.WithField("source", src.ID()).WithError(r.err).Error("source fetch failed")
			report.SourceErrors[string(src.ID())] = r.err.Error()
			continue
		}
		report.BySource[string(src.ID())] = len(r.campaigns)
		all = append(all, r.campaigns...)
	}
	return all
}

// standardize fingerprints, classifies and dedups one collected batch.
// Within a batch the last occurrence of a key wins; iteration order is the
// deterministic collection order, so reruns produce identical output.
func (s *Service) standardize(collected []*domain.Campaign, at time.Time) []*domain.StandardizedCampaign {
	index := make(map[domain.Fingerprint]int, len(collected))
	var ordered []*domain.StandardizedCampaign

	for _, c := range collected {
		std := Standardize(c, at)
		key := std.Key()
		if pos, seen := index[key]; seen {
			// Later listing of the same campaign replaces the earlier one in
			// place, keeping first-seen position.
			ordered[pos] = std
			continue
		}
		index[key] = len(ordered)
		ordered = append(ordered, std)
	}
	return ordered
}

// Standardize derives identity and the three classified fields for one raw
// campaign. Exposed for adapter tests.
func Standardize(c *domain.Campaign, at time.Time) *domain.StandardizedCampaign {
	fp := Fingerprint(c.Source, c.URL)
	category := normalize.Category(c.Source, c.RawCategory, c.Title)
	region := normalize.Region(c.Location)

	std := &domain.StandardizedCampaign{
		Campaign:      *c,
		SourceLocalID: fp.SourceID,
		Category:      category,
		Region:        region,
		Type:          normalize.InferType(c.Title, category, region, c.TypeHint),
		SelectionRate: selectionRate(c.RecruitCount, c.ApplicantCount),
		IsActive:      true,
		CrawledAt:     at,
	}
	return std
}

// selectionRate is recruit/applicant as a percentage, capped at 100 because
// under-subscribed campaigns would otherwise report rates in the thousands.
func selectionRate(recruit, applicant *int) *float64 {
	if recruit == nil || applicant == nil || *applicant <= 0 {
		return nil
	}
	rate := float64(*recruit) / float64(*applicant) * 100
	if rate > 100 {
		rate = 100
	}
	return &rate
}

// filterExisting drops campaigns whose key the store already holds. A failed
// key fetch degrades to a full run rather than losing data.
func (s *Service) filterExisting(ctx context.Context, batch []*domain.StandardizedCampaign, log *logger.Logger) ([]*domain.StandardizedCampaign, int) {
	existing, err := s.repo.ExistingKeys(ctx)
	if err != nil {
		log.WithError(err).Warn("existing-key fetch failed, keeping full batch")
		return batch, 0
	}

	kept := batch[:0]
	skipped := 0
	for _, c := range batch {
		if _, ok := existing[c.Key()]; ok {
			skipped++
			continue
		}
		kept = append(kept, c)
	}
	return kept, skipped
}

// upsert writes the batch in fixed-size chunks so one oversized statement
// cannot take down the whole run's progress.
func (s *Service) upsert(ctx context.Context, batch []*domain.StandardizedCampaign) error {
	for start := 0; start < len(batch); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(batch) {
			end = len(batch)
		}
		if err := s.repo.Upsert(ctx, batch[start:end]); err != nil {
			return apperr.DatabaseError("upsert campaigns", err).
				WithDetail("offset", start).
				WithDetail("batch_size", len(batch))
		}
	}
	return nil
}
