package campaign

import (
	"context"
	"fmt"

	"crawler_server/core/domain"
	"crawler_server/core/port/in"
	"crawler_server/core/port/out"
)

// Service implements in.CampaignService
type Service struct {
	repo out.CampaignRepository
}

// NewService creates a new CampaignService
func NewService(repo out.CampaignRepository) in.CampaignService {
	return &Service{repo: repo}
}

func (s *Service) ListCampaigns(ctx context.Context, filter *domain.CampaignFilter) (*in.CampaignListResponse, error) {
	if filter == nil {
		filter = &domain.CampaignFilter{}
	}

	campaigns, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return &in.CampaignListResponse{
		Campaigns: campaigns,
		Total:     total,
		Offset:    filter.Page.Offset(),
		Limit:     filter.Page.Limit(),
	}, nil
}

func (s *Service) GetStats(ctx context.Context) (*in.CampaignStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count campaigns: %w", err)
	}
	bySource, err := s.repo.CountBySource(ctx)
	if err != nil {
		return nil, fmt.Errorf("count campaigns by source: %w", err)
	}
	byCategory, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count campaigns by category: %w", err)
	}
	return &in.CampaignStats{Total: total, BySource: bySource, ByCategory: byCategory}, nil
}
