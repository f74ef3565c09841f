package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"crawler_server/adapter/out/cache"
	"crawler_server/core/port/in"

	"github.com/rs/zerolog"
)

type blockingIngest struct {
	started  chan struct{}
	release  chan struct{}
	finished atomic.Bool
}

func (f *blockingIngest) Run(ctx context.Context, mode in.IngestMode) (*in.RunReport, error) {
	close(f.started)
	<-f.release
	f.finished.Store(true)
	return &in.RunReport{RunID: "run-1", Mode: mode}, nil
}

func TestStopWaitsForStartupRun(t *testing.T) {
	ingest := &blockingIngest{started: make(chan struct{}), release: make(chan struct{})}
	s := New(ingest, cache.NewLocalRunLock(time.Minute), in.ModeFull, 6, time.Minute, zerolog.Nop())

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-ingest.started:
	case <-time.After(time.Second):
		t.Fatal("startup run never began")
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(ingest.release)
	}()

	s.Stop()

	if !ingest.finished.Load() {
		t.Error("Stop() returned before the startup run finished")
	}
}
