/*
interval_test.go - Specification tests for the interval index

PURPOSE:
  These tests are executable specifications of the coverage queries. Each
  test has GIVEN/WHEN/THEN comments and asserts one documented behavior:
  containment, range overlap, the approved-only filter, the first-match
  tie-break, and ingestion rejection of malformed ranges.
*/
package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pixup/hr-engine/schedule"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func approved(id, subject string, start, end schedule.Date, cat schedule.LeaveCategory) schedule.LeaveInterval {
	return schedule.LeaveInterval{
		ID:        id,
		SubjectID: subject,
		Start:     start,
		End:       end,
		Category:  cat,
		Status:    schedule.StatusApproved,
	}
}

func mustIndex(t *testing.T, intervals []schedule.LeaveInterval) *schedule.IntervalIndex {
	t.Helper()
	idx, err := schedule.NewIntervalIndex(intervals)
	if err != nil {
		t.Fatalf("Failed to build index: %v", err)
	}
	return idx
}

// =============================================================================
// COVERING
// =============================================================================

func TestCovering_InsideInterval(t *testing.T) {
	// GIVEN: An approved vacation for subject A, 2024-03-10 .. 2024-03-14
	idx := mustIndex(t, []schedule.LeaveInterval{
		approved("req-1", "A",
			schedule.NewDate(2024, time.March, 10),
			schedule.NewDate(2024, time.March, 14),
			schedule.CategoryVacation),
	})

	// WHEN: Querying a day inside the interval
	iv := idx.Covering("A", schedule.NewDate(2024, time.March, 12))

	// THEN: The interval is returned
	if iv == nil {
		t.Fatal("Expected covering interval for 2024-03-12, got none")
	}
	if iv.ID != "req-1" {
		t.Errorf("Expected req-1, got %s", iv.ID)
	}
}

func TestCovering_EveryDayOfInterval(t *testing.T) {
	// GIVEN: An approved interval
	start := schedule.NewDate(2024, time.March, 10)
	end := schedule.NewDate(2024, time.March, 14)
	idx := mustIndex(t, []schedule.LeaveInterval{
		approved("req-1", "A", start, end, schedule.CategoryVacation),
	})

	// THEN: Every day from start to end inclusive is covered
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if idx.Covering("A", d) == nil {
			t.Errorf("Day %s inside interval reported uncovered", d)
		}
	}
}

func TestCovering_OutsideInterval(t *testing.T) {
	// GIVEN: An approved interval 2024-03-10 .. 2024-03-14
	idx := mustIndex(t, []schedule.LeaveInterval{
		approved("req-1", "A",
			schedule.NewDate(2024, time.March, 10),
			schedule.NewDate(2024, time.March, 14),
			schedule.CategoryVacation),
	})

	// THEN: The day before the start is not covered
	if idx.Covering("A", schedule.NewDate(2024, time.March, 9)) != nil {
		t.Error("2024-03-09 is outside the interval but reported covered")
	}
	// AND: The day after the end is not covered
	if idx.Covering("A", schedule.NewDate(2024, time.March, 15)) != nil {
		t.Error("2024-03-15 is outside the interval but reported covered")
	}
	// AND: Another subject is never covered
	if idx.Covering("B", schedule.NewDate(2024, time.March, 12)) != nil {
		t.Error("Subject B has no intervals but reported covered")
	}
}

func TestCovering_SingleDayInterval(t *testing.T) {
	// GIVEN: A one-day interval (start == end)
	day := schedule.NewDate(2024, time.June, 3)
	idx := mustIndex(t, []schedule.LeaveInterval{
		approved("req-1", "A", day, day, schedule.CategorySick),
	})

	// THEN: That day is covered and its neighbors are not
	if idx.Covering("A", day) == nil {
		t.Error("Single-day interval does not cover its own day")
	}
	if idx.Covering("A", day.AddDays(-1)) != nil || idx.Covering("A", day.AddDays(1)) != nil {
		t.Error("Single-day interval covers a neighboring day")
	}
}

func TestCovering_FirstMatchWinsOnOverlap(t *testing.T) {
	// GIVEN: Two overlapping approved intervals for the same subject, an
	// upstream anomaly the index must tolerate without reconciling
	idx := mustIndex(t, []schedule.LeaveInterval{
		approved("req-1", "A",
			schedule.NewDate(2024, time.May, 1),
			schedule.NewDate(2024, time.May, 10),
			schedule.CategoryVacation),
		approved("req-2", "A",
			schedule.NewDate(2024, time.May, 5),
			schedule.NewDate(2024, time.May, 15),
			schedule.CategorySick),
	})

	// WHEN: Querying a day both intervals cover
	iv := idx.Covering("A", schedule.NewDate(2024, time.May, 7))

	// THEN: The first interval in source order wins
	if iv == nil {
		t.Fatal("Expected a covering interval")
	}
	if iv.ID != "req-1" {
		t.Errorf("Expected first interval in source order (req-1), got %s", iv.ID)
	}
}

// =============================================================================
// STATUS FILTER
// =============================================================================

func TestIndex_OnlyApprovedIntervalsParticipate(t *testing.T) {
	// GIVEN: Pending and rejected intervals alongside an approved one
	pending := approved("req-p", "A",
		schedule.NewDate(2024, time.April, 1),
		schedule.NewDate(2024, time.April, 5),
		schedule.CategoryVacation)
	pending.Status = schedule.StatusPending

	rejected := approved("req-r", "A",
		schedule.NewDate(2024, time.April, 10),
		schedule.NewDate(2024, time.April, 15),
		schedule.CategoryVacation)
	rejected.Status = schedule.StatusRejected

	idx := mustIndex(t, []schedule.LeaveInterval{
		pending,
		rejected,
		approved("req-a", "A",
			schedule.NewDate(2024, time.April, 20),
			schedule.NewDate(2024, time.April, 22),
			schedule.CategoryPersonal),
	})

	// THEN: Only the approved interval is indexed
	if idx.Len() != 1 {
		t.Fatalf("Expected 1 indexed interval, got %d", idx.Len())
	}
	if idx.Covering("A", schedule.NewDate(2024, time.April, 3)) != nil {
		t.Error("Pending interval participates in coverage queries")
	}
	if idx.Covering("A", schedule.NewDate(2024, time.April, 12)) != nil {
		t.Error("Rejected interval participates in coverage queries")
	}
	if idx.Covering("A", schedule.NewDate(2024, time.April, 21)) == nil {
		t.Error("Approved interval does not participate in coverage queries")
	}
}

// =============================================================================
// OVERLAPPING
// =============================================================================

func TestOverlapping_PartialOverlapAtRangeStart(t *testing.T) {
	// GIVEN: An interval spanning 2024-02-25 .. 2024-03-05
	idx := mustIndex(t, []schedule.LeaveInterval{
		approved("req-1", "A",
			schedule.NewDate(2024, time.February, 25),
			schedule.NewDate(2024, time.March, 5),
			schedule.CategoryVacation),
	})

	// WHEN: Querying the March range
	got := idx.Overlapping(
		schedule.NewDate(2024, time.March, 1),
		schedule.NewDate(2024, time.March, 31))

	// THEN: The partially overlapping interval is included
	if len(got) != 1 {
		t.Fatalf("Expected 1 overlapping interval, got %d", len(got))
	}
}

func TestOverlapping_Boundaries(t *testing.T) {
	// GIVEN: Intervals touching the query range only at its endpoints
	idx := mustIndex(t, []schedule.LeaveInterval{
		approved("ends-at-start", "A",
			schedule.NewDate(2024, time.February, 20),
			schedule.NewDate(2024, time.March, 1),
			schedule.CategoryVacation),
		approved("starts-at-end", "B",
			schedule.NewDate(2024, time.March, 31),
			schedule.NewDate(2024, time.April, 10),
			schedule.CategorySick),
		approved("before", "C",
			schedule.NewDate(2024, time.February, 1),
			schedule.NewDate(2024, time.February, 29),
			schedule.CategoryPersonal),
		approved("after", "D",
			schedule.NewDate(2024, time.April, 1),
			schedule.NewDate(2024, time.April, 5),
			schedule.CategoryPersonal),
	})

	// WHEN: Querying March
	got := idx.Overlapping(
		schedule.NewDate(2024, time.March, 1),
		schedule.NewDate(2024, time.March, 31))

	// THEN: Both endpoint-touching intervals match, the others do not
	if len(got) != 2 {
		t.Fatalf("Expected 2 overlapping intervals, got %d", len(got))
	}
	if got[0].ID != "ends-at-start" || got[1].ID != "starts-at-end" {
		t.Errorf("Unexpected overlap result order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestOverlapping_EmptyResultIsNotNilPath(t *testing.T) {
	// GIVEN: An empty index
	idx := mustIndex(t, nil)

	// WHEN: Querying any range
	got := idx.Overlapping(
		schedule.NewDate(2024, time.March, 1),
		schedule.NewDate(2024, time.March, 31))

	// THEN: The result is an empty list, not an error
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty slice, got %v", got)
	}
}

// =============================================================================
// INGESTION
// =============================================================================

func TestIngestion_RejectsInvertedRange(t *testing.T) {
	// GIVEN: An approved interval whose end precedes its start
	_, err := schedule.NewIntervalIndex([]schedule.LeaveInterval{
		approved("req-1", "A",
			schedule.NewDate(2024, time.March, 14),
			schedule.NewDate(2024, time.March, 10),
			schedule.CategoryVacation),
	})

	// THEN: Ingestion fails with an InvalidDateError
	if err == nil {
		t.Fatal("Expected ingestion error for inverted range")
	}
	var invalid *schedule.InvalidDateError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected *InvalidDateError, got %T", err)
	}
	if !errors.Is(err, schedule.ErrInvalidDate) {
		t.Error("InvalidDateError does not unwrap to ErrInvalidDate")
	}
}

func TestIngestion_RejectsMissingDates(t *testing.T) {
	// GIVEN: An approved interval with a zero end date
	_, err := schedule.NewIntervalIndex([]schedule.LeaveInterval{
		{
			ID:        "req-1",
			SubjectID: "A",
			Start:     schedule.NewDate(2024, time.March, 10),
			Status:    schedule.StatusApproved,
		},
	})

	// THEN: No partial record is admitted
	if err == nil {
		t.Fatal("Expected ingestion error for missing end date")
	}
}

func TestIngestion_IgnoresMalformedNonApproved(t *testing.T) {
	// GIVEN: A pending interval with an inverted range; it never reaches
	// the index so it cannot poison ingestion
	pending := approved("req-p", "A",
		schedule.NewDate(2024, time.March, 14),
		schedule.NewDate(2024, time.March, 10),
		schedule.CategoryVacation)
	pending.Status = schedule.StatusPending

	idx, err := schedule.NewIntervalIndex([]schedule.LeaveInterval{pending})
	if err != nil {
		t.Fatalf("Non-approved malformed interval should be dropped, got error: %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Expected empty index, got %d intervals", idx.Len())
	}
}

// =============================================================================
// CATEGORY NORMALIZATION
// =============================================================================

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want schedule.LeaveCategory
	}{
		{"vacation", schedule.CategoryVacation},
		{"sick", schedule.CategorySick},
		{"personal", schedule.CategoryPersonal},
		{"sabbatical", schedule.CategoryOther},
		{"", schedule.CategoryOther},
	}
	for _, c := range cases {
		if got := schedule.NormalizeCategory(c.in); got != c.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
