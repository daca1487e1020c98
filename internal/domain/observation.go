package domain

import (
	"time"
)

// RawObservation is one row of the raw surveillance snapshot. Counts arrive
// as int64 columns; the date is an ISO "2006-01-02" string, matching the
// upstream extract schema.
type RawObservation struct {
	Program   string `parquet:"program,dict"`
	Region    string `parquet:"region,dict"`
	Level     string `parquet:"level,dict"` // demographic stratum, e.g. "0-4 yr"
	Date      string `parquet:"date"`
	Positives int64  `parquet:"positives"`
	Total     int64  `parquet:"total"`
}

// Observation is the parsed, normalized form of a raw row.
type Observation struct {
	Program   string
	Region    string
	Level     string
	Date      time.Time
	Positives int64
	Total     int64
}

// GroupKey identifies one smoothing group: a (region, level) series within
// a single surveillance season.
type GroupKey struct {
	Region     string
	Level      string
	SeasonYear int
}

// WeeklyCount is one aggregated cell of the analysis table, uniquely keyed
// by (region, level, epi-year, epi-week).
type WeeklyCount struct {
	Program    string
	Region     string
	Level      string
	EpiYear    int
	EpiWeek    int
	SeasonYear int
	SeasonWeek int
	WeekStart  time.Time
	Positives  int64
	Total      int64
}

// Series is the ordered weekly series for one smoothing group. Scaled is
// parallel to Weeks and holds the 0-100 scaled positives.
type Series struct {
	Key    GroupKey
	Weeks  []WeeklyCount
	Scaled []float64
}

// SmoothedRow is one row of the output snapshot. Spline and Kernel carry
// the clamped, rounded predictions for the week. Columns are gzip-compressed
// in the persisted file.
type SmoothedRow struct {
	Program     string    `parquet:"program,dict,gzip"`
	Region      string    `parquet:"region,dict,gzip"`
	Level       string    `parquet:"level,dict,gzip"`
	EpiYear     int32     `parquet:"epi_year,gzip"`
	EpiWeek     int32     `parquet:"epi_week,gzip"`
	SeasonYear  int32     `parquet:"season_year,gzip"`
	SeasonWeek  int32     `parquet:"season_week,gzip"`
	WeekStart   string    `parquet:"week_start,gzip"`
	Positives   int64     `parquet:"positives,gzip"`
	Total       int64     `parquet:"total,gzip"`
	Scaled      float64   `parquet:"scaled,gzip"`
	Spline      int64     `parquet:"spline,gzip"`
	Kernel      int64     `parquet:"kernel,gzip"`
	Smoothed    bool      `parquet:"smoothed,gzip"` // false when the group was below the fitting threshold
	ProcessedAt time.Time `parquet:"processed_at,timestamp,gzip"`
}
