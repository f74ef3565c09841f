package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestFileWriterWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWriter(filepath.Join(dir, "snapshots"))
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	w.now = func() time.Time { return time.Date(2025, 11, 3, 4, 0, 0, 0, time.UTC) }

	data := []map[string]string{{"title": "성수동 카페"}}
	path, err := w.Write(context.Background(), "run-1", data)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !strings.HasSuffix(path, "campaigns_20251103_040000_run-1.json") {
		t.Errorf("snapshot path = %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var decoded []map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("snapshot is not valid json: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["title"] != "성수동 카페" {
		t.Errorf("decoded = %+v", decoded)
	}

	// No temp file left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestFileWriterLatestTracksNewestRun(t *testing.T) {
	w, err := NewFileWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}

	at := time.Date(2025, 11, 3, 4, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return at }

	if _, err := w.Write(context.Background(), "run-1", []string{"old"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	at = at.Add(time.Hour)
	path, err := w.Write(context.Background(), "run-2", []string{"new"})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	latest, err := os.ReadFile(filepath.Join(filepath.Dir(path), "latest.json"))
	if err != nil {
		t.Fatalf("read latest.json: %v", err)
	}
	newest, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(latest) != string(newest) {
		t.Errorf("latest.json = %s, want the run-2 snapshot", latest)
	}
}
