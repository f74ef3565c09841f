package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crawler_server/config"
	"crawler_server/internal/bootstrap"
	"crawler_server/pkg/logger"

	"github.com/joho/godotenv"
)

const (
	shutdownTimeout = 30 * time.Second // Maximum time to wait for graceful shutdown
)

func main() {
	// Initialize logger early
	logger.Init(logger.Config{
		Level:   logger.LevelInfo,
		Service: "crawler",
	})

	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	mode := flag.String("mode", "all", "Run mode: api, crawl, all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	deps, cleanup, err := bootstrap.NewDependencies(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies: %v", err)
	}
	defer cleanup()

	switch *mode {
	case "api":
		runAPI(cfg, deps)
	case "crawl":
		runCrawler(cfg, deps)
	case "all":
		if cfg.SchedulerEnabled {
			crawler := startCrawler(cfg, deps)
			defer stopCrawler(crawler)
		}
		runAPI(cfg, deps)
	default:
		logger.Fatal("Unknown mode: %s", *mode)
	}
}

func runAPI(cfg *config.Config, deps *bootstrap.Dependencies) {
	app := bootstrap.NewAPI(cfg, deps)

	// Graceful shutdown with timeout
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server (timeout: %v)...", shutdownTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- app.Shutdown()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Error("Error shutting down: %v", err)
			} else {
				logger.Info("API server shut down gracefully")
			}
		case <-ctx.Done():
			logger.Warn("API shutdown timed out, forcing exit")
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("Starting API server on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// runCrawler executes a single ingestion cycle and exits (batch mode).
func runCrawler(cfg *config.Config, deps *bootstrap.Dependencies) {
	report, err := bootstrap.RunOnce(cfg, deps)
	if err != nil {
		logger.Fatal("Crawl run failed: %v", err)
	}
	logger.Info("Crawl run %s finished: collected=%d stored=%d expired=%d (%v)",
		report.RunID, report.Collected, report.Stored, report.Expired, report.Duration)
}

func startCrawler(cfg *config.Config, deps *bootstrap.Dependencies) *bootstrap.Crawler {
	crawler, err := bootstrap.NewCrawler(cfg, deps)
	if err != nil {
		logger.Fatal("Failed to initialize crawler: %v", err)
	}
	if err := crawler.Start(); err != nil {
		logger.Fatal("Failed to start crawler: %v", err)
	}
	logger.Info("Crawler started")
	return crawler
}

func stopCrawler(crawler *bootstrap.Crawler) {
	logger.Info("Shutting down crawler (timeout: %v)...", shutdownTimeout)

	done := make(chan struct{})
	go func() {
		crawler.Stop()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Crawler shut down gracefully")
	case <-time.After(shutdownTimeout):
		logger.Warn("Crawler shutdown timed out, forcing exit")
	}
}
