package bootstrap

import (
	"strings"

	"crawler_server/adapter/in/http"
	"crawler_server/config"
	"crawler_server/infra/middleware"
	"crawler_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewAPI builds the fiber app around an already-wired dependency set so the
// API and the scheduler can share one ingest service.
func NewAPI(cfg *config.Config, deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		ReadBufferSize:        16384,
		WriteBufferSize:       16384,

		// go-json: 표준 encoding/json 대비 빠른 JSON 직렬화
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 1 * 1024 * 1024,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Request-ID",
		ExposeHeaders: "X-Request-ID",
	}))

	// Health check
	healthHandler := http.NewHealthHandler(deps.DB, deps.Redis)
	healthHandler.Register(app)

	// API routes
	api := app.Group("/api")

	campaignHandler := http.NewCampaignHandler(deps.CampaignService)
	campaignHandler.Register(api)

	crawlHandler := http.NewCrawlHandler(deps.IngestService, deps.RunLock, cfg.CrawlTimeout)
	crawlHandler.Register(api)

	logger.Info("API routes registered")
	return app
}
