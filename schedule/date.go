/*
Package schedule provides the pure date-matching core of the HR engine.

PURPOSE:
  This package contains the calendar logic shared by the leave timeline
  and the birthday/anniversary notifier: interval containment over a date
  axis, day-of-year matching, and month grid construction. It performs no
  I/O, holds no mutable global state, and is safe to call concurrently
  with independent inputs.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A calendar day (UTC-normalized, day granularity)
  - Month helpers: StartOfMonth, EndOfMonth, DaysOfMonth

DESIGN PRINCIPLES:
  1. Purity: every function is deterministic for a given input
  2. Snapshots: callers fetch data once and pass it in; nothing here
     reaches out to a store or the network
  3. Return values only: failures are reported as errors or skip counts,
     never logged or retried here

SEE ALSO:
  - interval.go: Leave intervals and the interval index
  - matcher.go: Birthday / work-anniversary day-of-year matching
  - grid.go: Month coverage grid for the timeline view
*/
package schedule

import (
	"time"
)

// =============================================================================
// DATE - Calendar day abstraction
// =============================================================================

// Date is a calendar day. The zero value is "no date".
type Date struct {
	Time time.Time
}

// NewDate constructs a Date at day granularity in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &InvalidDateError{Value: s, Reason: "unparseable date"}
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return DateOf(d.Time.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.Time.AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return DateOf(d.Time.AddDate(n, 0, 0)) }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

// IsWeekend reports whether the day is a Saturday or Sunday. This is a pure
// function of the weekday, independent of locale and of any leave data.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) IsWorkday() bool { return !d.IsWeekend() }

// SameMonthDay reports whether two dates share month and day, ignoring year.
// A Feb-29 anchor matches only on Feb 29; there is no proxy-date
// substitution in non-leap years.
func (d Date) SameMonthDay(other Date) bool {
	return d.Month() == other.Month() && d.Day() == other.Day()
}

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// MONTH HELPERS
// =============================================================================

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return DateOf(t)
}

// DaysOfMonth enumerates every day of the month in ascending calendar
// order, first to last inclusive. The result has 28, 29, 30, or 31 entries
// depending on month and leap-year status.
func DaysOfMonth(year int, month time.Month) []Date {
	first := StartOfMonth(year, month)
	last := EndOfMonth(year, month)

	days := make([]Date, 0, 31)
	for d := first; d.BeforeOrEqual(last); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// DaysBetween returns the number of calendar days from one date to another.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// SpanDays returns the inclusive length of a date range in days
// (start == end counts as one day).
func SpanDays(start, end Date) int {
	return DaysBetween(start, end) + 1
}
