package domain

import "time"

// EpiWeek maps a date to its MMWR epidemiological (year, week). MMWR weeks
// run Sunday through Saturday; a week belongs to the year holding at least
// four of its seven days, which is the year its Wednesday falls in.
func EpiWeek(date time.Time) (year, week int) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := d.AddDate(0, 0, -int(d.Weekday()))

	year = weekStart.AddDate(0, 0, 3).Year()
	week = weeksBetween(mmwrWeekOneStart(year), weekStart) + 1
	return year, week
}

// WeekStart returns the Sunday beginning the given MMWR week.
func WeekStart(epiYear, epiWeek int) time.Time {
	return mmwrWeekOneStart(epiYear).AddDate(0, 0, 7*(epiWeek-1))
}

// SeasonWeek re-indexes an MMWR (year, week) onto the surveillance season:
// season week 1 is MMWR week 27, and MMWR weeks 1-26 belong to the prior
// year's season. The offset is computed against the season's anchor week so
// that 53-week MMWR years stay strictly ordered instead of colliding at the
// season boundary.
func SeasonWeek(epiYear, epiWeek int) (seasonYear, seasonWeek int) {
	seasonYear = epiYear
	if epiWeek <= 26 {
		seasonYear--
	}
	anchor := WeekStart(seasonYear, 27)
	seasonWeek = weeksBetween(anchor, WeekStart(epiYear, epiWeek)) + 1
	return seasonYear, seasonWeek
}

// mmwrWeekOneStart returns the Sunday starting MMWR week 1 of a year: the
// Sunday on or before January 4.
func mmwrWeekOneStart(year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return jan4.AddDate(0, 0, -int(jan4.Weekday()))
}

func weeksBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / (24 * 7))
}
