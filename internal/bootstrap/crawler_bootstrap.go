package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"crawler_server/adapter/in/scheduler"
	"crawler_server/config"
	"crawler_server/core/port/in"

	"github.com/rs/zerolog"
)

// Crawler bundles the periodic crawl loop for the worker mode.
type Crawler struct {
	scheduler *scheduler.Scheduler
}

// NewCrawler wires the crawl scheduler on top of an existing dependency set.
func NewCrawler(cfg *config.Config, deps *Dependencies) (*Crawler, error) {
	mode, err := crawlMode(cfg)
	if err != nil {
		return nil, err
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Str("component", "crawler").Logger()

	sched := scheduler.New(deps.IngestService, deps.RunLock, mode,
		cfg.CrawlIntervalHours, cfg.CrawlTimeout, zlog)
	return &Crawler{scheduler: sched}, nil
}

// Start launches the scheduler, including the immediate first run.
func (c *Crawler) Start() error {
	return c.scheduler.Start()
}

// Stop shuts the scheduler down and waits for an in-flight run.
func (c *Crawler) Stop() {
	c.scheduler.Stop()
}

// RunOnce executes a single ingestion cycle under the run lock and returns
// its report. Batch mode (-mode crawl) calls this and exits.
func RunOnce(cfg *config.Config, deps *Dependencies) (*in.RunReport, error) {
	mode, err := crawlMode(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.CrawlTimeout
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	acquired, err := deps.RunLock.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("a crawl run is already in progress")
	}
	defer deps.RunLock.Release(ctx)

	return deps.IngestService.Run(ctx, mode)
}

func crawlMode(cfg *config.Config) (in.IngestMode, error) {
	mode := in.IngestMode(cfg.CrawlMode)
	switch mode {
	case in.ModeFull, in.ModeIncremental, in.ModeAuto:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid CRAWL_MODE %q", cfg.CrawlMode)
	}
}
