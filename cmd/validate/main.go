// Command validate performs integrity checks on a smoothed surveillance
// snapshot against the raw extract it was produced from: schema and
// required fields, key uniqueness, scaled-value reproducibility from the
// raw counts, and smoothing bounds.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw data/raw_surveillance.parquet \
//	  -smoothed data/smoothed_surveillance.parquet
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/couchcryptid/flu-surveillance-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawPath := flag.String("raw", "", "path to the raw extract snapshot")
	smoothedPath := flag.String("smoothed", "", "path to the smoothed snapshot")
	flag.Parse()

	if *rawPath == "" || *smoothedPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawPath, *smoothedPath); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, smoothedPath string) int {
	fmt.Println("=== Surveillance Snapshot Validation ===")
	fmt.Println()

	raw, err := parquet.ReadFile[domain.RawObservation](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw snapshot: %v\n", err)
		return 1
	}
	smoothed, err := parquet.ReadFile[domain.SmoothedRow](smoothedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load smoothed snapshot: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(smoothed),
		validateKeyUniqueness(smoothed),
		validateScaled(raw, smoothed),
		validateSmoothingBounds(smoothed),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw, %d smoothed\n", len(raw), len(smoothed))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Schema ──
// Required fields present and calendar columns internally consistent.

func validateSchema(rows []domain.SmoothedRow) *phase {
	p := &phase{name: "Phase 1: Schema and required fields"}

	for i := range rows {
		r := &rows[i]
		if r.Region == "" {
			p.errorf("row %d: region is empty", i)
		}
		if r.Level == "" {
			p.errorf("row %d: level is empty", i)
		}
		if r.EpiWeek < 1 || r.EpiWeek > 53 {
			p.errorf("row %d: epi_week %d out of range 1..53", i, r.EpiWeek)
		}
		if r.SeasonWeek < 1 || r.SeasonWeek > 54 {
			p.errorf("row %d: season_week %d out of range 1..54", i, r.SeasonWeek)
		}
		if r.Positives < 0 || r.Total < 0 {
			p.errorf("row %d: negative counts (positives=%d, total=%d)", i, r.Positives, r.Total)
		}
		if r.ProcessedAt.IsZero() {
			p.errorf("row %d: processed_at is zero", i)
		}

		ws, err := time.ParseInLocation("2006-01-02", r.WeekStart, time.UTC)
		if err != nil {
			p.errorf("row %d: week_start %q: %v", i, r.WeekStart, err)
			continue
		}
		if expected := domain.WeekStart(int(r.EpiYear), int(r.EpiWeek)); !ws.Equal(expected) {
			p.errorf("row %d: week_start %s does not match epi week %d/%d (expected %s)",
				i, r.WeekStart, r.EpiYear, r.EpiWeek, expected.Format("2006-01-02"))
		}
	}
	return p
}

// ── Phase 2: Key uniqueness ──
// Output rows are uniquely keyed by (region, level, epi-year, epi-week).

func validateKeyUniqueness(rows []domain.SmoothedRow) *phase {
	p := &phase{name: "Phase 2: Key uniqueness"}

	type key struct {
		region, level    string
		epiYear, epiWeek int32
	}
	seen := map[key]int{}
	for i := range rows {
		k := key{rows[i].Region, rows[i].Level, rows[i].EpiYear, rows[i].EpiWeek}
		if first, dup := seen[k]; dup {
			p.errorf("row %d duplicates row %d: key (%s, %s, %d, %d)",
				i, first, k.region, k.level, k.epiYear, k.epiWeek)
			continue
		}
		seen[k] = i
	}
	return p
}

// ── Phase 3: Scaled values ──
// Scaled values must sit in [0,100] and be reproducible: re-running the
// aggregation and scaling over the raw extract must land within rounding
// tolerance of the persisted values.

func validateScaled(raw []domain.RawObservation, rows []domain.SmoothedRow) *phase {
	p := &phase{name: "Phase 3: Scaled-value round trip"}

	for i := range rows {
		if rows[i].Scaled < 0 || rows[i].Scaled > 100 {
			p.errorf("row %d: scaled %g out of [0,100]", i, rows[i].Scaled)
		}
	}

	obs := make([]domain.Observation, 0, len(raw))
	for i := range raw {
		o, err := domain.ParseRawObservation(raw[i])
		if err != nil {
			continue // the pipeline skips these rows too
		}
		obs = append(obs, o)
	}

	type key struct {
		region, level    string
		epiYear, epiWeek int
	}
	recomputed := map[key]struct {
		positives int64
		scaled    float64
	}{}
	for _, s := range domain.Aggregate(obs) {
		for i, w := range s.Weeks {
			recomputed[key{w.Region, w.Level, w.EpiYear, w.EpiWeek}] = struct {
				positives int64
				scaled    float64
			}{w.Positives, s.Scaled[i]}
		}
	}

	for i := range rows {
		r := &rows[i]
		want, ok := recomputed[key{r.Region, r.Level, int(r.EpiYear), int(r.EpiWeek)}]
		if !ok {
			p.errorf("row %d: key (%s, %s, %d, %d) not reproducible from raw extract",
				i, r.Region, r.Level, r.EpiYear, r.EpiWeek)
			continue
		}
		if r.Positives != want.positives {
			p.errorf("row %d: positives %d, recomputed %d", i, r.Positives, want.positives)
		}
		if math.Abs(r.Scaled-want.scaled) > 0.5 {
			p.errorf("row %d: scaled %g, recomputed %g", i, r.Scaled, want.scaled)
		}
	}
	return p
}

// ── Phase 4: Smoothing bounds ──
// Predictions are clamped non-negative; pass-through rows carry the scaled
// value rounded.

func validateSmoothingBounds(rows []domain.SmoothedRow) *phase {
	p := &phase{name: "Phase 4: Smoothing bounds"}

	for i := range rows {
		r := &rows[i]
		if r.Spline < 0 {
			p.errorf("row %d: spline %d is negative", i, r.Spline)
		}
		if r.Kernel < 0 {
			p.errorf("row %d: kernel %d is negative", i, r.Kernel)
		}
		if !r.Smoothed {
			if want := int64(math.Round(r.Scaled)); r.Spline != want || r.Kernel != want {
				p.errorf("row %d: pass-through row has spline=%d kernel=%d, expected %d",
					i, r.Spline, r.Kernel, want)
			}
		}
	}
	return p
}
