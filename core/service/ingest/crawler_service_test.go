package ingest

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"crawler_server/core/domain"
	"crawler_server/core/port/in"
	"crawler_server/core/port/out"
	"crawler_server/pkg/apperr"
)

// =============================================================================
// Fakes
// =============================================================================

type fakeSource struct {
	id        domain.SourceID
	campaigns []*domain.Campaign
	err       error
}

func (f *fakeSource) ID() domain.SourceID { return f.id }

func (f *fakeSource) Fetch(ctx context.Context) ([]*domain.Campaign, error) {
	return f.campaigns, f.err
}

type fakeRepo struct {
	existing    map[domain.Fingerprint]struct{}
	existingErr error
	count       int
	countErr    error
	expired     int
	upserted    []*domain.StandardizedCampaign
	upsertCalls int
	upsertErr   error
}

func (f *fakeRepo) ExistingKeys(ctx context.Context) (map[domain.Fingerprint]struct{}, error) {
	return f.existing, f.existingErr
}

func (f *fakeRepo) Upsert(ctx context.Context, campaigns []*domain.StandardizedCampaign) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, campaigns...)
	return nil
}

func (f *fakeRepo) MarkExpired(ctx context.Context, today time.Time) (int, error) {
	return f.expired, nil
}

func (f *fakeRepo) List(ctx context.Context, filter *domain.CampaignFilter) ([]*domain.StandardizedCampaign, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return f.count, f.countErr
}

func (f *fakeRepo) CountBySource(ctx context.Context) (map[domain.SourceID]int, error) {
	return nil, nil
}

func (f *fakeRepo) CountByCategory(ctx context.Context) (map[domain.Category]int, error) {
	return nil, nil
}

type fakeEnricher struct {
	days map[string]int // url -> review period
	errs map[string]error
}

func (f *fakeEnricher) ReviewPeriod(ctx context.Context, url string, source domain.SourceID) (*int, error) {
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	if d, ok := f.days[url]; ok {
		return &d, nil
	}
	return nil, nil
}

func (f *fakeEnricher) Supports(source domain.SourceID) bool { return true }

// =============================================================================
// Helpers
// =============================================================================

func listing(source domain.SourceID, id, title string) *domain.Campaign {
	return &domain.Campaign{
		Title:  title,
		URL:    "https://www.seoulouba.co.kr/campaign/?number=" + id,
		Source: source,
	}
}

func newTestService(sources []out.Source, repo out.CampaignRepository, enricher out.DetailEnricher) *Service {
	svc := NewService(sources, repo, enricher, nil, Config{EnrichWorkers: 2}).(*Service)
	return svc
}

// =============================================================================
// Tests
// =============================================================================

func TestRunDeduplicatesLastWriteWins(t *testing.T) {
	first := listing(domain.SourceSeoulOuba, "100", "성수동 카페 (old)")
	second := listing(domain.SourceSeoulOuba, "100", "성수동 카페 (new)")
	other := listing(domain.SourceSeoulOuba, "200", "강남 미용실")

	repo := &fakeRepo{}
	svc := newTestService([]out.Source{
		&fakeSource{id: domain.SourceSeoulOuba, campaigns: []*domain.Campaign{first, second, other}},
	}, repo, nil)

	report, err := svc.Run(context.Background(), in.ModeFull)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Collected != 3 {
		t.Errorf("Collected = %d, want 3", report.Collected)
	}
	if report.Deduplicated != 1 {
		t.Errorf("Deduplicated = %d, want 1", report.Deduplicated)
	}
	if len(repo.upserted) != 2 {
		t.Fatalf("stored %d campaigns, want 2", len(repo.upserted))
	}
	// The duplicate keeps its first-seen position but carries the later data.
	if repo.upserted[0].Title != "성수동 카페 (new)" {
		t.Errorf("duplicate resolved to %q, want the later title", repo.upserted[0].Title)
	}
	if repo.upserted[1].SourceLocalID != "200" {
		t.Errorf("second stored id = %q, want 200", repo.upserted[1].SourceLocalID)
	}
}

func TestRunIncrementalSkipsExistingKeys(t *testing.T) {
	known := listing(domain.SourceSeoulOuba, "100", "이미 저장된 캠페인")
	fresh := listing(domain.SourceSeoulOuba, "300", "새 캠페인")

	repo := &fakeRepo{
		existing: map[domain.Fingerprint]struct{}{
			{Source: domain.SourceSeoulOuba, SourceID: "100"}: {},
		},
	}
	svc := newTestService([]out.Source{
		&fakeSource{id: domain.SourceSeoulOuba, campaigns: []*domain.Campaign{known, fresh}},
	}, repo, nil)

	report, err := svc.Run(context.Background(), in.ModeIncremental)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", report.Skipped)
	}
	if len(repo.upserted) != 1 || repo.upserted[0].SourceLocalID != "300" {
		t.Fatalf("stored = %+v, want only id 300", repo.upserted)
	}
}

func TestRunAutoModeResolution(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		countErr error
		want     in.IngestMode
	}{
		{name: "empty store runs full", count: 0, want: in.ModeFull},
		{name: "populated store runs incremental", count: 42, want: in.ModeIncremental},
		{name: "count failure falls back to full", countErr: errors.New("conn refused"), want: in.ModeFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{count: tt.count, countErr: tt.countErr}
			svc := newTestService([]out.Source{
				&fakeSource{id: domain.SourceSeoulOuba, campaigns: []*domain.Campaign{
					listing(domain.SourceSeoulOuba, "1", "캠페인"),
				}},
			}, repo, nil)

			report, err := svc.Run(context.Background(), in.ModeAuto)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if report.Mode != tt.want {
				t.Errorf("resolved mode = %q, want %q", report.Mode, tt.want)
			}
		})
	}
}

func TestRunIsolatesSourceFailures(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService([]out.Source{
		&fakeSource{id: domain.SourceReviewNote, err: errors.New("503 from origin")},
		&fakeSource{id: domain.SourceSeoulOuba, campaigns: []*domain.Campaign{
			listing(domain.SourceSeoulOuba, "1", "살아남은 캠페인"),
		}},
	}, repo, nil)

	report, err := svc.Run(context.Background(), in.ModeFull)
	if err != nil {
		t.Fatalf("Run() error = %v, want nil: a down source must not fail the run", err)
	}

	if len(repo.upserted) != 1 {
		t.Errorf("stored %d campaigns, want 1 from the healthy source", len(repo.upserted))
	}
	if _, ok := report.SourceErrors[string(domain.SourceReviewNote)]; !ok {
		t.Error("report is missing the failed source's error")
	}
	if report.BySource[string(domain.SourceSeoulOuba)] != 1 {
		t.Errorf("BySource[seoulouba] = %d, want 1", report.BySource[string(domain.SourceSeoulOuba)])
	}
}

func TestRunStoreFailureIsFatal(t *testing.T) {
	repo := &fakeRepo{upsertErr: errors.New("deadlock detected")}
	svc := newTestService([]out.Source{
		&fakeSource{id: domain.SourceSeoulOuba, campaigns: []*domain.Campaign{
			listing(domain.SourceSeoulOuba, "1", "캠페인"),
		}},
	}, repo, nil)

	_, err := svc.Run(context.Background(), in.ModeFull)
	if err == nil {
		t.Fatal("Run() = nil error, want store failure to propagate")
	}
	if !apperr.IsAppError(err) {
		t.Errorf("store failure not wrapped as app error: %v", err)
	}
}

func TestRunChunksUpserts(t *testing.T) {
	var campaigns []*domain.Campaign
	for i := 0; i < upsertChunkSize*2+5; i++ {
		campaigns = append(campaigns, &domain.Campaign{
			Title:  "캠페인",
			URL:    "https://www.seoulouba.co.kr/campaign/?number=" + strconv.Itoa(i),
			Source: domain.SourceSeoulOuba,
		})
	}

	repo := &fakeRepo{}
	svc := newTestService([]out.Source{
		&fakeSource{id: domain.SourceSeoulOuba, campaigns: campaigns},
	}, repo, nil)

	if _, err := svc.Run(context.Background(), in.ModeFull); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if repo.upsertCalls != 3 {
		t.Errorf("upsert calls = %d, want 3 chunks", repo.upsertCalls)
	}
	if len(repo.upserted) != len(campaigns) {
		t.Errorf("stored %d, want %d", len(repo.upserted), len(campaigns))
	}
}

func TestRunEnrichment(t *testing.T) {
	filled := listing(domain.SourceSeoulOuba, "1", "리뷰기간 있는 캠페인")
	broken := listing(domain.SourceSeoulOuba, "2", "페이지 깨진 캠페인")

	enricher := &fakeEnricher{
		days: map[string]int{filled.URL: 14},
		errs: map[string]error{broken.URL: errors.New("parse failed")},
	}
	repo := &fakeRepo{}
	svc := newTestService([]out.Source{
		&fakeSource{id: domain.SourceSeoulOuba, campaigns: []*domain.Campaign{filled, broken}},
	}, repo, enricher)

	report, err := svc.Run(context.Background(), in.ModeFull)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Enriched != 1 {
		t.Errorf("Enriched = %d, want 1", report.Enriched)
	}
	for _, c := range repo.upserted {
		switch c.SourceLocalID {
		case "1":
			if c.ReviewDeadlineDays == nil || *c.ReviewDeadlineDays != 14 {
				t.Errorf("campaign 1 ReviewDeadlineDays = %v, want 14", c.ReviewDeadlineDays)
			}
		case "2":
			if c.ReviewDeadlineDays != nil {
				t.Errorf("failed enrichment must leave nil, got %v", *c.ReviewDeadlineDays)
			}
		}
	}
}

func TestStandardizeClassifies(t *testing.T) {
	recruit, applicant := 5, 200
	c := &domain.Campaign{
		Title:          "[서울 강남] 삼겹살 맛집",
		URL:            "https://www.seoulouba.co.kr/campaign/?number=77",
		Source:         domain.SourceSeoulOuba,
		RawCategory:    "맛집",
		Location:       "서울 강남구",
		RecruitCount:   &recruit,
		ApplicantCount: &applicant,
	}

	at := time.Date(2025, 11, 3, 4, 0, 0, 0, time.UTC)
	std := Standardize(c, at)

	if std.SourceLocalID != "77" {
		t.Errorf("SourceLocalID = %q, want 77", std.SourceLocalID)
	}
	if std.Category != domain.CategoryFood {
		t.Errorf("Category = %q, want 맛집", std.Category)
	}
	if std.Region != "서울" {
		t.Errorf("Region = %q, want 서울", std.Region)
	}
	if std.Type != domain.TypeVisit {
		t.Errorf("Type = %q, want visit", std.Type)
	}
	if std.SelectionRate == nil || *std.SelectionRate != 2.5 {
		t.Errorf("SelectionRate = %v, want 2.5", std.SelectionRate)
	}
	if !std.IsActive {
		t.Error("new campaign must be active")
	}
	if !std.CrawledAt.Equal(at) {
		t.Errorf("CrawledAt = %v, want %v", std.CrawledAt, at)
	}
}

func TestSelectionRate(t *testing.T) {
	five, two, zero := 5, 2, 0

	tests := []struct {
		name      string
		recruit   *int
		applicant *int
		want      *float64
	}{
		{name: "missing recruit", recruit: nil, applicant: &five, want: nil},
		{name: "missing applicant", recruit: &five, applicant: nil, want: nil},
		{name: "zero applicants", recruit: &five, applicant: &zero, want: nil},
		{name: "normal rate", recruit: &two, applicant: &five, want: f64(40)},
		{name: "oversubscribed capped at 100", recruit: &five, applicant: &two, want: f64(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectionRate(tt.recruit, tt.applicant)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("selectionRate = %v, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("selectionRate = nil, want %v", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("selectionRate = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func f64(v float64) *float64 { return &v }
