package http

import (
	"context"
	"time"

	"crawler_server/adapter/out/cache"
	"crawler_server/core/port/in"
	"crawler_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// CrawlHandler exposes the manual crawl trigger.
type CrawlHandler struct {
	ingest  in.IngestService
	lock    *cache.RunLock
	timeout time.Duration
}

// NewCrawlHandler creates a new CrawlHandler. timeout bounds a triggered run.
func NewCrawlHandler(ingest in.IngestService, lock *cache.RunLock, timeout time.Duration) *CrawlHandler {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &CrawlHandler{ingest: ingest, lock: lock, timeout: timeout}
}

// Register registers crawl routes.
func (h *CrawlHandler) Register(app fiber.Router) {
	app.Post("/crawl", h.TriggerCrawl)
}

// TriggerCrawl starts one crawl run in the background. A run already in
// progress (scheduled or manual) answers 409.
// POST /api/crawl?mode=auto
func (h *CrawlHandler) TriggerCrawl(c *fiber.Ctx) error {
	mode := in.IngestMode(c.Query("mode", string(in.ModeAuto)))
	switch mode {
	case in.ModeFull, in.ModeIncremental, in.ModeAuto:
	default:
		return ErrorResponse(c, fiber.StatusBadRequest, "mode must be full, incremental or auto")
	}

	acquired, err := h.lock.Acquire(c.Context())
	if err != nil {
		return InternalErrorResponse(c, err, "acquire run lock")
	}
	if !acquired {
		return ErrorResponse(c, fiber.StatusConflict, "a crawl run is already in progress")
	}

	// 요청 컨텍스트와 분리해서 백그라운드 실행
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		defer func() {
			if err := h.lock.Release(ctx); err != nil {
				logger.WithError(err).Warn("run lock release failed")
			}
		}()

		report, err := h.ingest.Run(ctx, mode)
		if err != nil {
			logger.WithError(err).Error("manual crawl run failed")
			return
		}
		logger.WithFields(map[string]any{
			"run_id": report.RunID, "stored": report.Stored,
		}).Info("manual crawl run finished")
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "started",
		"mode":   string(mode),
	})
}
