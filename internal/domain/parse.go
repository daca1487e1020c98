package domain

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the ISO date format used by the upstream extract.
const dateLayout = "2006-01-02"

// ParseRawObservation normalizes one raw snapshot row. Text fields are
// trimmed; region, level, and date are required and produce an error when
// empty or malformed (the caller skips the row). Negative counts are an
// upstream encoding artifact and are replaced with zero, mirroring the ad
// hoc handling in the original cleaning workflow.
func ParseRawObservation(raw RawObservation) (Observation, error) {
	region := strings.TrimSpace(raw.Region)
	level := strings.TrimSpace(raw.Level)
	dateStr := strings.TrimSpace(raw.Date)

	if region == "" {
		return Observation{}, fmt.Errorf("parse observation: empty region")
	}
	if level == "" {
		return Observation{}, fmt.Errorf("parse observation: empty level")
	}

	date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return Observation{}, fmt.Errorf("parse observation: date %q: %w", dateStr, err)
	}

	return Observation{
		Program:   strings.TrimSpace(raw.Program),
		Region:    region,
		Level:     level,
		Date:      date,
		Positives: clampCount(raw.Positives),
		Total:     clampCount(raw.Total),
	}, nil
}

// clampCount replaces negative counts with zero. Counts cannot be negative;
// negatives appear in some extracts as suppression sentinels.
func clampCount(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
