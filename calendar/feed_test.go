package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pixup/hr-engine/directory"
	"github.com/pixup/hr-engine/schedule"
)

func testEmployees() []directory.Employee {
	return []directory.Employee{
		{
			ID:        "emp-1",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Birthday:  schedule.NewDate(1990, time.July, 4),
		},
		{
			ID:        "emp-2",
			FirstName: "Grace",
			LastName:  "Hopper",
		},
	}
}

func TestBuildRendersLeaveAndBirthdays(t *testing.T) {
	// GIVEN one approved interval and one employee with a birthday
	index, err := schedule.NewIntervalIndex([]schedule.LeaveInterval{
		{
			ID:        "req-1",
			SubjectID: "emp-1",
			Start:     schedule.NewDate(2024, time.March, 4),
			End:       schedule.NewDate(2024, time.March, 8),
			Category:  schedule.CategoryVacation,
			Status:    schedule.StatusApproved,
		},
	})
	if err != nil {
		t.Fatalf("NewIntervalIndex: %v", err)
	}

	// WHEN the feed is built
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	data, err := Build(testEmployees(), index, now)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	feed := string(data)

	// THEN the leave event spans the interval with an exclusive DTEND
	if !strings.Contains(feed, "Ada Lovelace - vacation leave") {
		t.Errorf("feed missing leave summary:\n%s", feed)
	}
	if !strings.Contains(feed, "20240304") {
		t.Errorf("feed missing leave start date:\n%s", feed)
	}
	if !strings.Contains(feed, "20240309") {
		t.Errorf("feed missing exclusive leave end date:\n%s", feed)
	}

	// AND birthday events exist for the surrounding years
	if !strings.Contains(feed, "Ada Lovelace's birthday (34)") {
		t.Errorf("feed missing current-year birthday:\n%s", feed)
	}
	if !strings.Contains(feed, "Ada Lovelace's birthday (33)") {
		t.Errorf("feed missing previous-year birthday:\n%s", feed)
	}
	if !strings.Contains(feed, "Ada Lovelace's birthday (35)") {
		t.Errorf("feed missing next-year birthday:\n%s", feed)
	}

	// AND the employee without a birthday contributes no event
	if strings.Contains(feed, "Grace Hopper") {
		t.Errorf("unexpected event for employee without birthday:\n%s", feed)
	}
}

func TestBuildEmptyDirectory(t *testing.T) {
	// GIVEN no employees and no intervals
	index, err := schedule.NewIntervalIndex(nil)
	if err != nil {
		t.Fatalf("NewIntervalIndex: %v", err)
	}

	// WHEN the feed is built
	data, err := Build(nil, index, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// THEN a valid empty calendar is returned
	feed := string(data)
	if !strings.HasPrefix(feed, "BEGIN:VCALENDAR") {
		t.Errorf("empty feed is not a calendar:\n%s", feed)
	}
	if !strings.Contains(feed, "END:VCALENDAR") {
		t.Errorf("empty feed is not terminated:\n%s", feed)
	}
}

func TestBuildOutOfWindowLeaveExcluded(t *testing.T) {
	// GIVEN an approved interval far outside the feed window
	index, err := schedule.NewIntervalIndex([]schedule.LeaveInterval{
		{
			ID:        "req-old",
			SubjectID: "emp-1",
			Start:     schedule.NewDate(2019, time.March, 4),
			End:       schedule.NewDate(2019, time.March, 8),
			Category:  schedule.CategoryVacation,
			Status:    schedule.StatusApproved,
		},
	})
	if err != nil {
		t.Fatalf("NewIntervalIndex: %v", err)
	}

	// WHEN the feed is built for 2024
	data, err := Build(nil, index, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// THEN the stale interval is not rendered
	if strings.Contains(string(data), "req-old") {
		t.Errorf("out-of-window interval rendered:\n%s", string(data))
	}
}
