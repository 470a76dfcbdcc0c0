/*
request.go - Time-off request lifecycle

PURPOSE:
  A request is created pending, decided exactly once (approved or
  rejected, both terminal), and never mutated again. Only approved
  requests become intervals visible to the timeline.

SEE ALSO:
  - schedule/interval.go: IntervalStatus and the approved-only index
*/
package directory

import (
	"errors"
	"fmt"
	"time"

	"github.com/pixup/hr-engine/schedule"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrAlreadyDecided is returned when a second decision is attempted on
	// a request that already left the pending state.
	ErrAlreadyDecided = errors.New("request already decided")

	// ErrNotFound is returned for lookups of unknown records.
	ErrNotFound = errors.New("record not found")
)

// =============================================================================
// TIME-OFF REQUEST
// =============================================================================

// TimeOffRequest is one submitted leave request.
type TimeOffRequest struct {
	ID            string
	EmployeeID    string
	RequestType   string // free-form; normalized to a category for display
	StartDate     schedule.Date
	EndDate       schedule.Date
	DaysRequested int
	Reason        string
	Status        schedule.IntervalStatus
	ApprovedAt    *time.Time
	CreatedAt     time.Time
}

// NewTimeOffRequest validates and builds a pending request. The requested
// day count is the inclusive span, never below one.
func NewTimeOffRequest(id, employeeID, requestType string, start, end schedule.Date, reason string, now time.Time) (TimeOffRequest, error) {
	if employeeID == "" {
		return TimeOffRequest{}, fmt.Errorf("employee id is required")
	}
	if requestType == "" {
		return TimeOffRequest{}, fmt.Errorf("request type is required")
	}
	if start.IsZero() || end.IsZero() {
		return TimeOffRequest{}, &schedule.InvalidDateError{SubjectID: employeeID, Reason: "missing start or end date"}
	}
	if end.Before(start) {
		return TimeOffRequest{}, &schedule.InvalidDateError{
			SubjectID: employeeID,
			Value:     start.String() + ".." + end.String(),
			Reason:    schedule.ErrInvertedRange.Error(),
		}
	}

	days := schedule.SpanDays(start, end)
	if days < 1 {
		days = 1
	}

	return TimeOffRequest{
		ID:            id,
		EmployeeID:    employeeID,
		RequestType:   requestType,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: days,
		Reason:        reason,
		Status:        schedule.StatusPending,
		CreatedAt:     now,
	}, nil
}

// Category maps the free-form request type onto a display category.
func (r TimeOffRequest) Category() schedule.LeaveCategory {
	return schedule.NormalizeCategory(r.RequestType)
}

// Interval projects the request onto the schedule core's interval type.
func (r TimeOffRequest) Interval() schedule.LeaveInterval {
	return schedule.LeaveInterval{
		ID:        r.ID,
		SubjectID: r.EmployeeID,
		Start:     r.StartDate,
		End:       r.EndDate,
		Category:  r.Category(),
		Status:    r.Status,
	}
}

// Decide applies the single allowed status transition. A second decision
// returns ErrAlreadyDecided regardless of direction.
func (r *TimeOffRequest) Decide(approve bool, now time.Time) error {
	if r.Status != schedule.StatusPending {
		return fmt.Errorf("%w: %s is %s", ErrAlreadyDecided, r.ID, r.Status)
	}
	if approve {
		r.Status = schedule.StatusApproved
		r.ApprovedAt = &now
	} else {
		r.Status = schedule.StatusRejected
	}
	return nil
}

// Intervals projects a request snapshot onto intervals, preserving order.
func Intervals(requests []TimeOffRequest) []schedule.LeaveInterval {
	intervals := make([]schedule.LeaveInterval, len(requests))
	for i, r := range requests {
		intervals[i] = r.Interval()
	}
	return intervals
}
