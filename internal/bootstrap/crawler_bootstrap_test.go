package bootstrap

import (
	"context"
	"testing"
	"time"

	outcache "crawler_server/adapter/out/cache"
	"crawler_server/config"
	"crawler_server/core/port/in"
)

type stubIngest struct {
	runs int
	mode in.IngestMode
}

func (s *stubIngest) Run(ctx context.Context, mode in.IngestMode) (*in.RunReport, error) {
	s.runs++
	s.mode = mode
	return &in.RunReport{RunID: "run-1", Mode: mode, Stored: 3}, nil
}

func TestRunOnceSingleCycle(t *testing.T) {
	ingest := &stubIngest{}
	deps := &Dependencies{
		IngestService: ingest,
		RunLock:       outcache.NewLocalRunLock(time.Minute),
	}
	cfg := &config.Config{CrawlMode: "incremental", CrawlTimeout: time.Minute}

	report, err := RunOnce(cfg, deps)
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if ingest.runs != 1 {
		t.Errorf("runs = %d, want exactly one cycle", ingest.runs)
	}
	if report.Mode != in.ModeIncremental {
		t.Errorf("mode = %q, want incremental", report.Mode)
	}

	// The lock must be released on return so a later batch invocation works.
	if _, err := RunOnce(cfg, deps); err != nil {
		t.Fatalf("second RunOnce() error = %v", err)
	}
	if ingest.runs != 2 {
		t.Errorf("runs = %d after second call, want 2", ingest.runs)
	}
}

func TestRunOnceHeldLock(t *testing.T) {
	lock := outcache.NewLocalRunLock(time.Minute)
	acquired, err := lock.Acquire(context.Background())
	if err != nil || !acquired {
		t.Fatalf("pre-acquire lock: acquired=%v err=%v", acquired, err)
	}

	ingest := &stubIngest{}
	deps := &Dependencies{IngestService: ingest, RunLock: lock}
	cfg := &config.Config{CrawlMode: "auto"}

	if _, err := RunOnce(cfg, deps); err == nil {
		t.Fatal("RunOnce() with held lock = nil error, want error")
	}
	if ingest.runs != 0 {
		t.Errorf("runs = %d, want 0 while lock is held", ingest.runs)
	}
}

func TestRunOnceInvalidMode(t *testing.T) {
	cfg := &config.Config{CrawlMode: "hourly"}
	if _, err := RunOnce(cfg, &Dependencies{}); err == nil {
		t.Fatal("RunOnce() with invalid mode = nil error, want error")
	}
}
