package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// latestName is a stable alias for the most recent snapshot.
const latestName = "latest.json"

// FileWriter implements out.SnapshotWriter on the local filesystem. One file
// per run, named by timestamp and run id, pretty-printed for manual replay.
// A latest.json copy always points at the most recent run.
type FileWriter struct {
	dir string
	now func() time.Time
}

// NewFileWriter creates a FileWriter rooted at dir, creating it if needed.
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileWriter{dir: dir, now: time.Now}, nil
}

func (w *FileWriter) Write(ctx context.Context, runID string, data any) (string, error) {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	name := fmt.Sprintf("campaigns_%s_%s.json", w.now().Format("20060102_150405"), runID)
	path := filepath.Join(w.dir, name)
	if err := writeAtomic(path, encoded); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := writeAtomic(filepath.Join(w.dir, latestName), encoded); err != nil {
		return "", fmt.Errorf("update latest snapshot: %w", err)
	}
	return path, nil
}

// writeAtomic writes via a temp file and rename so a crash mid-write never
// leaves a half snapshot with the final name.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
