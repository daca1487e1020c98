// Package snapshot reads and writes the columnar surveillance snapshot
// files that bound the pipeline: a raw extract on the way in, a smoothed
// analysis table on the way out. Both are Parquet; output columns are
// gzip-compressed via the row struct tags.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/couchcryptid/flu-surveillance-etl/internal/domain"
)

// Reader reads the raw extract snapshot once.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the given snapshot path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Read loads every raw observation row from the snapshot.
func (r *Reader) Read(ctx context.Context) ([]domain.RawObservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := parquet.ReadFile[domain.RawObservation](r.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", r.path, err)
	}

	r.logger.Debug("snapshot read", "path", r.path, "rows", len(rows))
	return rows, nil
}

// Writer writes the smoothed analysis snapshot once.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer for the given output path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Write persists the smoothed rows as a new snapshot, creating parent
// directories as needed. A failed write does not leave a previous snapshot
// behind: the file is replaced wholesale.
func (w *Writer) Write(ctx context.Context, rows []domain.SmoothedRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	if err := parquet.WriteFile(w.path, rows); err != nil {
		return fmt.Errorf("write snapshot %s: %w", w.path, err)
	}

	w.logger.Debug("snapshot written", "path", w.path, "rows", len(rows))
	return nil
}
