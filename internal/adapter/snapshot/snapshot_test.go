package snapshot_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flu-surveillance-etl/internal/adapter/snapshot"
	"github.com/couchcryptid/flu-surveillance-etl/internal/domain"
)

func TestReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.parquet")
	want := []domain.RawObservation{
		{Program: "NREVSS", Region: "Region 1", Level: "0-4 yr", Date: "2023-11-15", Positives: 42, Total: 310},
		{Program: "NREVSS", Region: "Region 2", Level: "5-17 yr", Date: "2023-11-16", Positives: 7, Total: 120},
	}
	require.NoError(t, parquet.WriteFile(path, want))

	got, err := snapshot.NewReader(path, slog.Default()).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReader_MissingFile(t *testing.T) {
	r := snapshot.NewReader(filepath.Join(t.TempDir(), "absent.parquet"), slog.Default())
	_, err := r.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read snapshot")
}

func TestReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := snapshot.NewReader("unused.parquet", slog.Default())
	_, err := r.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "smoothed.parquet")
	processedAt := time.Date(2024, time.February, 10, 6, 0, 0, 0, time.UTC)

	rows := []domain.SmoothedRow{
		{
			Program: "NREVSS", Region: "Region 1", Level: "0-4 yr",
			EpiYear: 2023, EpiWeek: 45, SeasonYear: 2023, SeasonWeek: 19,
			WeekStart: "2023-11-05", Positives: 42, Total: 310,
			Scaled: 52.5, Spline: 50, Kernel: 49, Smoothed: true,
			ProcessedAt: processedAt,
		},
		{
			Program: "NREVSS", Region: "Region 1", Level: "0-4 yr",
			EpiYear: 2023, EpiWeek: 46, SeasonYear: 2023, SeasonWeek: 20,
			WeekStart: "2023-11-12", Positives: 80, Total: 290,
			Scaled: 100, Spline: 97, Kernel: 95, Smoothed: true,
			ProcessedAt: processedAt,
		},
	}

	// Writer creates the parent directory.
	require.NoError(t, snapshot.NewWriter(path, slog.Default()).Write(context.Background(), rows))

	got, err := parquet.ReadFile[domain.SmoothedRow](path)
	require.NoError(t, err)
	require.Len(t, got, len(rows))

	for i := range rows {
		assert.Equal(t, rows[i].Region, got[i].Region)
		assert.Equal(t, rows[i].EpiYear, got[i].EpiYear)
		assert.Equal(t, rows[i].EpiWeek, got[i].EpiWeek)
		assert.Equal(t, rows[i].WeekStart, got[i].WeekStart)
		assert.Equal(t, rows[i].Positives, got[i].Positives)
		assert.InEpsilon(t, rows[i].Scaled, got[i].Scaled, 1e-9)
		assert.Equal(t, rows[i].Spline, got[i].Spline)
		assert.Equal(t, rows[i].Kernel, got[i].Kernel)
		assert.Equal(t, rows[i].Smoothed, got[i].Smoothed)
		assert.WithinDuration(t, rows[i].ProcessedAt, got[i].ProcessedAt, time.Second)
	}
}

func TestWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := snapshot.NewWriter(filepath.Join(t.TempDir(), "out.parquet"), slog.Default())
	err := w.Write(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
