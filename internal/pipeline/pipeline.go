package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/flu-surveillance-etl/internal/domain"
	"github.com/couchcryptid/flu-surveillance-etl/internal/observability"
)

// SnapshotReader reads all raw observation rows from the input snapshot.
type SnapshotReader interface {
	Read(ctx context.Context) ([]domain.RawObservation, error)
}

// Transformer converts raw rows into the smoothed analysis table.
type Transformer interface {
	Transform(ctx context.Context, raw []domain.RawObservation) ([]domain.SmoothedRow, error)
}

// SnapshotWriter persists the smoothed analysis table.
type SnapshotWriter interface {
	Write(ctx context.Context, rows []domain.SmoothedRow) error
}

// Pipeline orchestrates one extract-transform-load pass. The run is
// synchronous and single-shot: the first stage failure aborts it, and there
// is no retry or partial output.
type Pipeline struct {
	reader      SnapshotReader
	transformer Transformer
	writer      SnapshotWriter
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(r SnapshotReader, t Transformer, w SnapshotWriter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		reader:      r,
		transformer: t,
		writer:      w,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run executes the batch pass to completion.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("pipeline started")

	extractStart := time.Now()
	raw, err := p.reader.Read(ctx)
	if err != nil {
		return err
	}
	p.observeStage("extract", extractStart)
	p.metrics.RowsRead.Add(float64(len(raw)))

	if len(raw) == 0 {
		return errors.New("input snapshot contains no rows")
	}

	transformStart := time.Now()
	rows, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		return err
	}
	p.observeStage("transform", transformStart)

	loadStart := time.Now()
	if err := p.writer.Write(ctx, rows); err != nil {
		return err
	}
	p.observeStage("load", loadStart)
	p.metrics.RowsWritten.Add(float64(len(rows)))
	p.metrics.LastSuccess.SetToCurrentTime()

	p.logger.Info("pipeline completed",
		"rows_in", len(raw),
		"rows_out", len(rows),
		"duration", time.Since(start),
	)
	return nil
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
