/*
grid.go - Month coverage grid for the leave timeline

PURPOSE:
  Produces the full rendering grid for one visible month: the ordered day
  list and, for every (subject, day) pair, the covering approved interval
  if any. The grid is total - renderers never see a missing cell, only
  "no coverage".

ALGORITHM:
  1. Enumerate the days of the month (calendar order, inclusive).
  2. One Overlapping call for the whole month range, building a per-month
     sub-index so per-day lookups touch only intervals in view.
  3. Covering per (subject, day) cell.
  4. Mark each day with two orthogonal facets, Weekend and Today, computed
     purely from the calendar so a day can be both weekend and covered.

SEE ALSO:
  - interval.go: Overlapping / Covering semantics, including the
    first-match tie-break
*/
package schedule

import (
	"time"
)

// =============================================================================
// GRID TYPES
// =============================================================================

// GridSubject is one row of the timeline. Callers supply subjects in the
// order they should render (the directory sorts by display name).
type GridSubject struct {
	ID          string
	DisplayName string
}

// GridDay is one column header: a day of the month with its facets.
type GridDay struct {
	Date    Date
	Weekend bool
	Today   bool
}

// GridCell is the coverage state of one (subject, day) pair. Interval is
// nil for an uncovered cell.
type GridCell struct {
	Interval *LeaveInterval
}

// GridRow is one subject's cells, aligned with MonthGrid.Days.
type GridRow struct {
	Subject GridSubject
	Cells   []GridCell
}

// MonthGrid is the complete coverage grid for one month.
type MonthGrid struct {
	Year  int
	Month time.Month
	Days  []GridDay
	Rows  []GridRow
}

// =============================================================================
// BUILDER
// =============================================================================

// BuildMonthGrid assembles the grid for the given month. The today
// parameter is caller-supplied so the Today facet stays deterministic
// under test.
func BuildMonthGrid(year int, month time.Month, subjects []GridSubject, index *IntervalIndex, today Date) *MonthGrid {
	first := StartOfMonth(year, month)
	last := EndOfMonth(year, month)

	// Pre-filter once for the whole month; the sub-index preserves source
	// order so the first-match tie-break is unchanged.
	monthIndex := &IntervalIndex{intervals: index.Overlapping(first, last)}

	dates := DaysOfMonth(year, month)
	days := make([]GridDay, len(dates))
	for i, d := range dates {
		days[i] = GridDay{
			Date:    d,
			Weekend: d.IsWeekend(),
			Today:   d.Equal(today),
		}
	}

	rows := make([]GridRow, len(subjects))
	for si, subject := range subjects {
		cells := make([]GridCell, len(dates))
		for di, d := range dates {
			cells[di] = GridCell{Interval: monthIndex.Covering(subject.ID, d)}
		}
		rows[si] = GridRow{Subject: subject, Cells: cells}
	}

	return &MonthGrid{Year: year, Month: month, Days: days, Rows: rows}
}
