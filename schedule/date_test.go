package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pixup/hr-engine/schedule"
)

func TestParseDate(t *testing.T) {
	d, err := schedule.ParseDate("2024-03-12")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 12 {
		t.Errorf("Parsed wrong date: %s", d)
	}
}

func TestParseDate_Unparseable(t *testing.T) {
	for _, s := range []string{"", "12.03.2024", "2024-13-01", "not-a-date"} {
		_, err := schedule.ParseDate(s)
		if err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
			continue
		}
		if !errors.Is(err, schedule.ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error does not unwrap to ErrInvalidDate", s)
		}
	}
}

func TestSpanDays(t *testing.T) {
	start := schedule.NewDate(2024, time.March, 10)
	if got := schedule.SpanDays(start, start); got != 1 {
		t.Errorf("Single day span = %d, want 1", got)
	}
	if got := schedule.SpanDays(start, schedule.NewDate(2024, time.March, 14)); got != 5 {
		t.Errorf("5-day span = %d, want 5", got)
	}
}

func TestEndOfMonth_YearRollover(t *testing.T) {
	d := schedule.EndOfMonth(2024, time.December)
	if d.String() != "2024-12-31" {
		t.Errorf("EndOfMonth(Dec 2024) = %s", d)
	}
}
