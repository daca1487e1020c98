package domain

import (
	"sort"
)

// Aggregate builds the analysis table from normalized observations: rows
// are bucketed by (region, level, epi-year, epi-week) with counts summed,
// then grouped into per-(region, level, season) series ordered by week.
// Output ordering is deterministic.
func Aggregate(obs []Observation) []Series {
	type weekKey struct {
		epiYear, epiWeek int
	}

	cells := make(map[GroupKey]map[weekKey]*WeeklyCount)
	for _, o := range obs {
		epiYear, epiWeek := EpiWeek(o.Date)
		seasonYear, seasonWeek := SeasonWeek(epiYear, epiWeek)

		gk := GroupKey{Region: o.Region, Level: o.Level, SeasonYear: seasonYear}
		wk := weekKey{epiYear: epiYear, epiWeek: epiWeek}

		group, ok := cells[gk]
		if !ok {
			group = make(map[weekKey]*WeeklyCount)
			cells[gk] = group
		}

		cell, ok := group[wk]
		if !ok {
			cell = &WeeklyCount{
				Program:    o.Program,
				Region:     o.Region,
				Level:      o.Level,
				EpiYear:    epiYear,
				EpiWeek:    epiWeek,
				SeasonYear: seasonYear,
				SeasonWeek: seasonWeek,
				WeekStart:  WeekStart(epiYear, epiWeek),
			}
			group[wk] = cell
		}
		if cell.Program == "" {
			cell.Program = o.Program
		}
		cell.Positives += o.Positives
		cell.Total += o.Total
	}

	series := make([]Series, 0, len(cells))
	for gk, group := range cells {
		weeks := make([]WeeklyCount, 0, len(group))
		for _, cell := range group {
			weeks = append(weeks, *cell)
		}
		sort.Slice(weeks, func(i, j int) bool {
			return weeks[i].SeasonWeek < weeks[j].SeasonWeek
		})
		series = append(series, Series{Key: gk, Weeks: weeks, Scaled: ScaleSeries(weeks)})
	}

	sort.Slice(series, func(i, j int) bool {
		a, b := series[i].Key, series[j].Key
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return a.SeasonYear < b.SeasonYear
	})
	return series
}

// ScaleSeries normalizes weekly positive counts to a 0-100 scale relative
// to the group's maximum. A group whose maximum is zero scales to all zeros
// so a zero denominator never produces NaN.
func ScaleSeries(weeks []WeeklyCount) []float64 {
	var groupMax int64
	for _, w := range weeks {
		if w.Positives > groupMax {
			groupMax = w.Positives
		}
	}

	scaled := make([]float64, len(weeks))
	if groupMax == 0 {
		return scaled
	}
	for i, w := range weeks {
		scaled[i] = 100 * float64(w.Positives) / float64(groupMax)
	}
	return scaled
}
