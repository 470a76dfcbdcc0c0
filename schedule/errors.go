/*
errors.go - Error types for the schedule core

PURPOSE:
  All error types of the date-matching core in one place. Errors here are
  local, recoverable-by-exclusion conditions: a bad record is rejected or
  skipped, never escalated to process termination.

USAGE:
  Callers can test with errors.Is / errors.As:

    var invalid *schedule.InvalidDateError
    if errors.As(err, &invalid) { ... }

SEE ALSO:
  - interval.go: Rejects malformed intervals at ingestion
  - matcher.go: Skips (and counts) records with missing anchors
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is wrapped by every InvalidDateError.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvertedRange is returned when an interval ends before it starts.
	ErrInvertedRange = errors.New("interval end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports a date that could not be admitted: unparseable,
// zero, or part of an inverted range. Records carrying one are rejected at
// ingestion; no partial records enter the index.
type InvalidDateError struct {
	SubjectID string
	Value     string
	Reason    string
}

func (e *InvalidDateError) Error() string {
	if e.SubjectID != "" {
		return fmt.Sprintf("invalid date for subject %s: %s (%s)", e.SubjectID, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid date: %s (%s)", e.Value, e.Reason)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }
