package out

import (
	"context"
	"time"

	"crawler_server/core/domain"
)

// CampaignRepository defines the interface for campaign persistence
type CampaignRepository interface {
	// Ingestion
	ExistingKeys(ctx context.Context) (map[domain.Fingerprint]struct{}, error)
	Upsert(ctx context.Context, campaigns []*domain.StandardizedCampaign) error
	MarkExpired(ctx context.Context, today time.Time) (int, error)

	// Read side
	List(ctx context.Context, filter *domain.CampaignFilter) ([]*domain.StandardizedCampaign, int, error)
	Count(ctx context.Context) (int, error)
	CountBySource(ctx context.Context) (map[domain.SourceID]int, error)
	CountByCategory(ctx context.Context) (map[domain.Category]int, error)
}
