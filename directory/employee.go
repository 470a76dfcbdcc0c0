/*
Package directory defines the people domain of the HR engine.

PURPOSE:
  Employee records, their anniversary anchors (birthday, job entry date),
  and the time-off request lifecycle. The schedule package stays fully
  generic over "subjects"; this package is where subjects become
  employees.

KEY CONCEPTS IN THIS FILE (employee.go):
  - Employee: One directory entry
  - AnniversaryRecords: Projection of an employee snapshot onto the
    schedule matcher's input

SEE ALSO:
  - request.go: Time-off request lifecycle
  - summary.go: Per-employee leave usage totals
  - schedule: The date-matching core these records feed
*/
package directory

import (
	"sort"
	"time"

	"github.com/pixup/hr-engine/schedule"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is one directory entry. JobEntryDate and Birthday are the two
// anniversary anchors; either may be zero when unknown.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Position     string
	JobEntryDate schedule.Date
	Birthday     schedule.Date
	AvatarURL    string
	CreatedAt    time.Time
}

// DisplayName renders "First Last" for lists and emails.
func (e Employee) DisplayName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// SortByName orders employees by display name (stable secondary sort key
// for deterministic timeline rendering), ID as tiebreaker.
func SortByName(employees []Employee) {
	sort.SliceStable(employees, func(i, j int) bool {
		a, b := employees[i].DisplayName(), employees[j].DisplayName()
		if a != b {
			return a < b
		}
		return employees[i].ID < employees[j].ID
	})
}

// GridSubjects projects employees onto timeline rows, preserving order.
func GridSubjects(employees []Employee) []schedule.GridSubject {
	subjects := make([]schedule.GridSubject, len(employees))
	for i, e := range employees {
		subjects[i] = schedule.GridSubject{ID: e.ID, DisplayName: e.DisplayName()}
	}
	return subjects
}

// =============================================================================
// ANNIVERSARY PROJECTION
// =============================================================================

// AnniversaryRecords assembles the matcher input for one notification
// cycle: a birthday record and a work-anniversary record per employee,
// omitting anchors the directory does not know. Sourced fresh per run;
// the matcher itself counts zero anchors, but omitting them here keeps
// the skip count meaning "present but unusable".
func AnniversaryRecords(employees []Employee) []schedule.AnniversaryRecord {
	records := make([]schedule.AnniversaryRecord, 0, 2*len(employees))
	for _, e := range employees {
		if !e.Birthday.IsZero() {
			records = append(records, schedule.AnniversaryRecord{
				SubjectID:   e.ID,
				Kind:        schedule.KindBirthday,
				Anchor:      e.Birthday,
				DisplayName: e.DisplayName(),
				Email:       e.Email,
				Position:    e.Position,
			})
		}
		if !e.JobEntryDate.IsZero() {
			records = append(records, schedule.AnniversaryRecord{
				SubjectID:   e.ID,
				Kind:        schedule.KindWorkAnniversary,
				Anchor:      e.JobEntryDate,
				DisplayName: e.DisplayName(),
				Email:       e.Email,
				Position:    e.Position,
			})
		}
	}
	return records
}
