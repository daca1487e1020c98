// Package domain models respiratory virus surveillance data.
//
// # Data Source
//
// Observations originate from a weekly surveillance extract: one row per
// (program, region, demographic level, specimen date) carrying the count of
// positive tests and the total specimens tested. The extract arrives as a
// columnar snapshot file produced upstream; this service reads it once,
// derives the analysis table, and writes a new snapshot.
//
// # MMWR Calendar
//
// Dates are mapped onto the CDC MMWR epidemiological calendar:
//
//	Weeks run Sunday through Saturday.
//	Week 1 of a year is the week containing at least four days of January,
//	equivalently the Sunday-to-Saturday week containing January 4.
//	Years have 52 or 53 MMWR weeks (e.g. 2014 has 53).
//
// See [EpiWeek]. The mapping is pure: the same date always yields the same
// (epi-year, epi-week) pair.
//
// # Season Indexing
//
// Surveillance seasons straddle the calendar year, so MMWR weeks are
// re-indexed with season week 1 at MMWR week 27 (early July):
//
//	season week = weeks since the season anchor (MMWR week 27) + 1
//	weeks <= 26 roll into the prior year's season
//
// For 52-week MMWR years this is a plain shift by 26. Computing the offset
// against the anchor week keeps 53-week years strictly ordered: week 53
// lands at season week 27 and week 1 of the next MMWR year at season week
// 28, instead of colliding. See [SeasonWeek].
//
// # Scaled Positives
//
// Raw positive counts are normalized to a 0-100 scale relative to the
// group's maximum over the season:
//
//	scaled = 100 * positives / max(positives in group)
//
// A group whose maximum is zero scales to all zeros rather than NaN; a zero
// count with any non-zero maximum scales to exactly 0. See [ScaleSeries].
//
// # Grouping
//
// The analysis table is keyed uniquely by (region, level, epi-year,
// epi-week). Multiple specimen dates falling in the same week are summed
// during aggregation. Smoothing operates on one (region, level, season)
// group at a time, indexed by week-in-season. See [Aggregate].
package domain
