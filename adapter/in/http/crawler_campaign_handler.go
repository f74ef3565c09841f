package http

import (
	"crawler_server/core/domain"
	"crawler_server/core/port/in"

	"github.com/gofiber/fiber/v2"
)

// CampaignHandler handles campaign query API endpoints.
type CampaignHandler struct {
	svc in.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(svc in.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// Register registers campaign routes.
func (h *CampaignHandler) Register(app fiber.Router) {
	campaigns := app.Group("/campaigns")
	campaigns.Get("/", h.ListCampaigns) // 캠페인 목록 (필터/페이징)
	campaigns.Get("/stats", h.GetStats) // 사이트/카테고리별 통계
}

// ListCampaigns returns a filtered page of campaigns.
// GET /api/campaigns?source=reviewnote&category=맛집&region=서울&type=visit&active=true&page=1&page_size=20
func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	filter := &domain.CampaignFilter{
		Source:     domain.SourceID(c.Query("source")),
		Category:   domain.Category(c.Query("category")),
		Region:     domain.Region(c.Query("region")),
		Type:       domain.CampaignType(c.Query("type")),
		ActiveOnly: c.QueryBool("active", false),
		Page: domain.PageRequest{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", 20),
		},
	}

	res, err := h.svc.ListCampaigns(c.Context(), filter)
	if err != nil {
		return InternalErrorResponse(c, err, "list campaigns")
	}

	return c.JSON(fiber.Map{
		"campaigns": res.Campaigns,
		"total":     res.Total,
		"offset":    res.Offset,
		"limit":     res.Limit,
	})
}

// GetStats returns stored campaign counts by source and category.
// GET /api/campaigns/stats
func (h *CampaignHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.Context())
	if err != nil {
		return InternalErrorResponse(c, err, "get campaign stats")
	}
	return c.JSON(stats)
}
