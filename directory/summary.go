/*
summary.go - Per-employee leave usage totals

PURPOSE:
  Aggregates one employee's approved intervals for a calendar year into
  per-category totals: calendar days taken and workdays taken (weekends
  inside an interval do not consume working time). Totals are decimal
  quantities so a later half-day feature does not force a type change.

SEE ALSO:
  - schedule/interval.go: The approved-only interval snapshot
*/
package directory

import (
	"github.com/shopspring/decimal"

	"github.com/pixup/hr-engine/schedule"
)

// =============================================================================
// LEAVE SUMMARY
// =============================================================================

// CategoryUsage is the usage of one leave category within the year.
type CategoryUsage struct {
	Category     schedule.LeaveCategory
	CalendarDays decimal.Decimal
	Workdays     decimal.Decimal
}

// LeaveSummary is one employee's usage for one calendar year.
type LeaveSummary struct {
	EmployeeID   string
	Year         int
	CalendarDays decimal.Decimal
	Workdays     decimal.Decimal
	ByCategory   []CategoryUsage
}

// Summarize aggregates the employee's approved intervals over the year.
// Intervals reaching past the year boundary are clipped to it; only the
// days inside the year count. Category buckets appear in a fixed order
// regardless of input order.
func Summarize(employeeID string, year int, index *schedule.IntervalIndex) LeaveSummary {
	yearStart := schedule.NewDate(year, 1, 1)
	yearEnd := schedule.NewDate(year, 12, 31)

	byCategory := map[schedule.LeaveCategory]*CategoryUsage{}
	totalCalendar := decimal.Zero
	totalWork := decimal.Zero

	for _, iv := range index.Overlapping(yearStart, yearEnd) {
		if iv.SubjectID != employeeID {
			continue
		}

		start := iv.Start
		if start.Before(yearStart) {
			start = yearStart
		}
		end := iv.End
		if end.After(yearEnd) {
			end = yearEnd
		}

		calendar := 0
		work := 0
		for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
			calendar++
			if d.IsWorkday() {
				work++
			}
		}

		usage, ok := byCategory[iv.Category]
		if !ok {
			usage = &CategoryUsage{Category: iv.Category}
			byCategory[iv.Category] = usage
		}
		usage.CalendarDays = usage.CalendarDays.Add(decimal.NewFromInt(int64(calendar)))
		usage.Workdays = usage.Workdays.Add(decimal.NewFromInt(int64(work)))
		totalCalendar = totalCalendar.Add(decimal.NewFromInt(int64(calendar)))
		totalWork = totalWork.Add(decimal.NewFromInt(int64(work)))
	}

	summary := LeaveSummary{
		EmployeeID:   employeeID,
		Year:         year,
		CalendarDays: totalCalendar,
		Workdays:     totalWork,
	}
	for _, cat := range []schedule.LeaveCategory{
		schedule.CategoryVacation,
		schedule.CategorySick,
		schedule.CategoryPersonal,
		schedule.CategoryOther,
	} {
		if usage, ok := byCategory[cat]; ok {
			summary.ByCategory = append(summary.ByCategory, *usage)
		}
	}
	return summary
}
