package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/flu-surveillance-etl/internal/domain"
	"github.com/couchcryptid/flu-surveillance-etl/internal/observability"
	"github.com/couchcryptid/flu-surveillance-etl/internal/smoothing"
)

// SmoothingTransformer implements Transformer: normalize rows, aggregate
// onto the epidemiological calendar, scale per group, fit both smoothers,
// clamp and round.
type SmoothingTransformer struct {
	minGroupWeeks int
	bandwidth     float64
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// NewTransformer creates a SmoothingTransformer. Groups with fewer than
// minGroupWeeks observed weeks are emitted unsmoothed; the floor is the
// spline's minimum of three points. A bandwidth of zero uses the kernel
// smoother's fixed default.
func NewTransformer(minGroupWeeks int, bandwidth float64, logger *slog.Logger, metrics *observability.Metrics) *SmoothingTransformer {
	if minGroupWeeks < smoothing.MinSplinePoints {
		minGroupWeeks = smoothing.MinSplinePoints
	}
	return &SmoothingTransformer{
		minGroupWeeks: minGroupWeeks,
		bandwidth:     bandwidth,
		logger:        logger,
		metrics:       metrics,
	}
}

func (t *SmoothingTransformer) Transform(ctx context.Context, raw []domain.RawObservation) ([]domain.SmoothedRow, error) {
	obs := make([]domain.Observation, 0, len(raw))
	for i := range raw {
		o, err := domain.ParseRawObservation(raw[i])
		if err != nil {
			t.logger.Warn("skipping invalid row", "row", i, "error", err)
			t.metrics.RowsSkipped.Inc()
			continue
		}
		obs = append(obs, o)
	}

	series := domain.Aggregate(obs)

	var out []domain.SmoothedRow
	processedAt := domain.Now()
	for _, s := range series {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := t.smoothSeries(s, processedAt)
		if err != nil {
			return nil, err
		}
		t.metrics.WeeksAggregated.Add(float64(len(s.Weeks)))
		out = append(out, rows...)
	}
	return out, nil
}

// smoothSeries fits one (region, level, season) group. Under-threshold
// groups pass the scaled series through verbatim as both predictions.
func (t *SmoothingTransformer) smoothSeries(s domain.Series, processedAt time.Time) ([]domain.SmoothedRow, error) {
	n := len(s.Weeks)

	if n < t.minGroupWeeks {
		t.logger.Warn("group below fitting threshold, passing through",
			"region", s.Key.Region,
			"level", s.Key.Level,
			"season", s.Key.SeasonYear,
			"weeks", n,
		)
		t.metrics.GroupsPassedThrough.Inc()
		return t.buildRows(s, s.Scaled, s.Scaled, false, processedAt), nil
	}

	x := make([]float64, n)
	for i, w := range s.Weeks {
		x[i] = float64(w.SeasonWeek)
	}

	spline, err := smoothing.FitSpline(x, s.Scaled)
	if err != nil {
		return nil, fmt.Errorf("smooth group %s/%s season %d: %w",
			s.Key.Region, s.Key.Level, s.Key.SeasonYear, err)
	}
	kernel := smoothing.FitKernel(x, s.Scaled, t.bandwidth)

	t.metrics.GroupsSmoothed.Inc()
	return t.buildRows(s, spline, kernel, true, processedAt), nil
}

func (t *SmoothingTransformer) buildRows(s domain.Series, spline, kernel []float64, smoothed bool, processedAt time.Time) []domain.SmoothedRow {
	rows := make([]domain.SmoothedRow, len(s.Weeks))
	for i, w := range s.Weeks {
		rows[i] = domain.SmoothedRow{
			Program:     w.Program,
			Region:      w.Region,
			Level:       w.Level,
			EpiYear:     int32(w.EpiYear),
			EpiWeek:     int32(w.EpiWeek),
			SeasonYear:  int32(w.SeasonYear),
			SeasonWeek:  int32(w.SeasonWeek),
			WeekStart:   w.WeekStart.Format("2006-01-02"),
			Positives:   w.Positives,
			Total:       w.Total,
			Scaled:      s.Scaled[i],
			Spline:      t.clampRound(spline[i]),
			Kernel:      t.clampRound(kernel[i]),
			Smoothed:    smoothed,
			ProcessedAt: processedAt,
		}
	}
	return rows
}

// clampRound applies the edge-case policy: counts cannot be negative, so
// negative predictions clamp to zero; values persist as whole counts.
func (t *SmoothingTransformer) clampRound(v float64) int64 {
	if v < 0 {
		t.metrics.PredictionsClamped.Inc()
		v = 0
	}
	return int64(math.Round(v))
}
