package in

import (
	"context"
	"time"

	"crawler_server/core/domain"
)

// IngestMode selects how a crawl run reconciles against the store.
type IngestMode string

const (
	// ModeFull re-processes every collected campaign.
	ModeFull IngestMode = "full"
	// ModeIncremental skips campaigns whose key already exists in the store.
	ModeIncremental IngestMode = "incremental"
	// ModeAuto picks incremental when the store has data, full otherwise.
	ModeAuto IngestMode = "auto"
)

// RunReport summarizes one completed crawl run.
type RunReport struct {
	RunID        string            `json:"run_id"`
	Mode         IngestMode        `json:"mode"`
	StartedAt    time.Time         `json:"started_at"`
	Duration     time.Duration     `json:"duration"`
	Collected    int               `json:"collected"`
	Deduplicated int               `json:"deduplicated"`
	Skipped      int               `json:"skipped"`
	Enriched     int               `json:"enriched"`
	Expired      int               `json:"expired"`
	Stored       int               `json:"stored"`
	SnapshotPath string            `json:"snapshot_path,omitempty"`
	SourceErrors map[string]string `json:"source_errors,omitempty"`
	BySource     map[string]int    `json:"by_source,omitempty"`
}

// IngestService defines the interface for crawl-run orchestration
type IngestService interface {
	// Run executes one crawl run end to end. Only a store write failure
	// returns a non-nil error; per-source and per-page failures are recorded
	// in the report.
	Run(ctx context.Context, mode IngestMode) (*RunReport, error)
}

// CampaignService defines the interface for read-side campaign queries
type CampaignService interface {
	ListCampaigns(ctx context.Context, filter *domain.CampaignFilter) (*CampaignListResponse, error)
	GetStats(ctx context.Context) (*CampaignStats, error)
}

// CampaignListResponse wraps one page of campaigns.
type CampaignListResponse struct {
	Campaigns []*domain.StandardizedCampaign `json:"campaigns"`
	Total     int                            `json:"total"`
	Offset    int                            `json:"offset"`
	Limit     int                            `json:"limit"`
}

// CampaignStats aggregates the stored dataset for the stats endpoint.
type CampaignStats struct {
	Total      int                     `json:"total"`
	BySource   map[domain.SourceID]int `json:"by_source"`
	ByCategory map[domain.Category]int `json:"by_category"`
}
