// Command genfixture writes a deterministic synthetic raw surveillance
// snapshot for tests and workshop material: a seasonal bell curve of
// positive tests per (region, level), with reproducible noise.
//
// Usage:
//
//	go run ./cmd/genfixture -out data/raw_surveillance.parquet -seasons 2
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/couchcryptid/flu-surveillance-etl/internal/domain"
)

const weeksPerSeason = 52

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the raw snapshot")
	seasons := flag.Int("seasons", 2, "number of surveillance seasons to generate")
	firstSeason := flag.Int("first-season", 2022, "season year of the first generated season")
	regions := flag.String("regions", "Region 1,Region 2", "comma-separated region names")
	levels := flag.String("levels", "0-4 yr,5-17 yr,18-49 yr", "comma-separated demographic levels")
	seed := flag.Int64("seed", 42, "random seed")
	dirty := flag.Bool("dirty", false, "append a few malformed rows to exercise row skipping")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	var rows []domain.RawObservation
	for s := 0; s < *seasons; s++ {
		seasonYear := *firstSeason + s
		for _, region := range splitList(*regions) {
			for li, level := range splitList(*levels) {
				rows = append(rows, seasonRows(rng, seasonYear, region, level, li)...)
			}
		}
	}

	if *dirty {
		rows = append(rows,
			domain.RawObservation{Program: "NREVSS", Region: "", Level: "0-4 yr", Date: "2023-01-01", Positives: 3, Total: 40},
			domain.RawObservation{Program: "NREVSS", Region: "Region 1", Level: "0-4 yr", Date: "not-a-date", Positives: 3, Total: 40},
			domain.RawObservation{Program: "NREVSS", Region: "Region 1", Level: "0-4 yr", Date: "2023-01-01", Positives: -7, Total: 40},
		)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := parquet.WriteFile(*out, rows); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	log.Printf("wrote %d rows to %s", len(rows), *out)
	return nil
}

// seasonRows generates one (region, level) series for a season: a bell
// curve peaking in mid-season (late winter) with Poisson-ish noise, plus a
// flat background of tests.
func seasonRows(rng *rand.Rand, seasonYear int, region, level string, levelIndex int) []domain.RawObservation {
	amplitude := 80.0 / float64(levelIndex+1) // younger strata test positive more often

	rows := make([]domain.RawObservation, 0, weeksPerSeason)
	for sw := 1; sw <= weeksPerSeason; sw++ {
		epiYear, epiWeek := seasonToEpi(seasonYear, sw)
		date := domain.WeekStart(epiYear, epiWeek).AddDate(0, 0, 3) // mid-week specimen date

		curve := amplitude * math.Exp(-math.Pow(float64(sw)-28, 2)/(2*math.Pow(6, 2)))
		positives := int64(math.Round(curve + rng.NormFloat64()*math.Sqrt(curve+1)))
		if positives < 0 {
			positives = 0
		}
		total := positives + 150 + rng.Int63n(80)

		rows = append(rows, domain.RawObservation{
			Program:   "NREVSS",
			Region:    region,
			Level:     level,
			Date:      date.Format("2006-01-02"),
			Positives: positives,
			Total:     total,
		})
	}
	return rows
}

// seasonToEpi maps a week-in-season back to its MMWR (year, week): season
// week 1 is MMWR week 27 of the season year.
func seasonToEpi(seasonYear, seasonWeek int) (epiYear, epiWeek int) {
	if seasonWeek <= 26 {
		return seasonYear, seasonWeek + 26
	}
	return seasonYear + 1, seasonWeek - 26
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
