/*
interval.go - Leave intervals and the interval index

PURPOSE:
  Answers the two queries the timeline needs over a snapshot of leave
  intervals: "which approved intervals overlap this range" and "which
  interval covers this subject on this day".

INGESTION RULES:
  - Only approved intervals are indexed; pending and rejected ones are
    invisible to coverage queries.
  - An inverted range (end before start) or a zero date is rejected with
    an InvalidDateError and nothing from that record is admitted.

TIE-BREAK:
  If two approved intervals for the same subject cover the same day (an
  upstream data anomaly this core tolerates), the first one in source
  order wins. Covering never fails on overlap.

SEE ALSO:
  - grid.go: Uses Overlapping once per month, then Covering per cell
*/
package schedule

// =============================================================================
// LEAVE INTERVAL
// =============================================================================

// LeaveCategory tags an interval for display. Unrecognized source values
// map to CategoryOther.
type LeaveCategory string

const (
	CategoryVacation LeaveCategory = "vacation"
	CategorySick     LeaveCategory = "sick"
	CategoryPersonal LeaveCategory = "personal"
	CategoryOther    LeaveCategory = "other"
)

// NormalizeCategory maps a free-form request type onto a known category.
func NormalizeCategory(s string) LeaveCategory {
	switch LeaveCategory(s) {
	case CategoryVacation, CategorySick, CategoryPersonal:
		return LeaveCategory(s)
	default:
		return CategoryOther
	}
}

// IntervalStatus is the lifecycle state of a leave interval. A pending
// interval is mutated exactly once by an approval decision; approved and
// rejected are terminal.
type IntervalStatus string

const (
	StatusPending  IntervalStatus = "pending"
	StatusApproved IntervalStatus = "approved"
	StatusRejected IntervalStatus = "rejected"
)

// LeaveInterval is one leave date range, inclusive on both ends.
type LeaveInterval struct {
	ID        string
	SubjectID string
	Start     Date
	End       Date
	Category  LeaveCategory
	Status    IntervalStatus
}

// Covers reports whether the interval contains the given day.
func (iv LeaveInterval) Covers(day Date) bool {
	return iv.Start.BeforeOrEqual(day) && iv.End.AfterOrEqual(day)
}

// Overlaps reports whether the interval intersects [rangeStart, rangeEnd].
func (iv LeaveInterval) Overlaps(rangeStart, rangeEnd Date) bool {
	return iv.Start.BeforeOrEqual(rangeEnd) && iv.End.AfterOrEqual(rangeStart)
}

// =============================================================================
// INTERVAL INDEX
// =============================================================================

// IntervalIndex holds the approved intervals of one snapshot and answers
// point and range queries. It is immutable after construction.
type IntervalIndex struct {
	intervals []LeaveInterval // approved only, source order preserved
}

// NewIntervalIndex builds an index from a snapshot. Non-approved intervals
// are dropped silently; malformed approved intervals abort ingestion with
// an InvalidDateError so no partial record is admitted.
func NewIntervalIndex(intervals []LeaveInterval) (*IntervalIndex, error) {
	idx := &IntervalIndex{}
	for _, iv := range intervals {
		if iv.Status != StatusApproved {
			continue
		}
		if iv.Start.IsZero() || iv.End.IsZero() {
			return nil, &InvalidDateError{SubjectID: iv.SubjectID, Value: "", Reason: "missing start or end date"}
		}
		if iv.End.Before(iv.Start) {
			return nil, &InvalidDateError{
				SubjectID: iv.SubjectID,
				Value:     iv.Start.String() + ".." + iv.End.String(),
				Reason:    ErrInvertedRange.Error(),
			}
		}
		idx.intervals = append(idx.intervals, iv)
	}
	return idx, nil
}

// Len returns the number of indexed (approved) intervals.
func (x *IntervalIndex) Len() int { return len(x.intervals) }

// Overlapping returns every indexed interval intersecting the inclusive
// range [rangeStart, rangeEnd], in source order. The result is empty, not
// nil-checked, when nothing matches. Callers use it to pre-filter a month
// before per-day evaluation, bounding work to the intervals in view.
func (x *IntervalIndex) Overlapping(rangeStart, rangeEnd Date) []LeaveInterval {
	matched := []LeaveInterval{}
	for _, iv := range x.intervals {
		if iv.Overlaps(rangeStart, rangeEnd) {
			matched = append(matched, iv)
		}
	}
	return matched
}

// Covering returns the interval covering the subject on the given day, or
// nil. On overlapping approved intervals for one subject the first match
// in source order wins; reconciliation is an upstream concern.
func (x *IntervalIndex) Covering(subjectID string, day Date) *LeaveInterval {
	for i := range x.intervals {
		iv := &x.intervals[i]
		if iv.SubjectID == subjectID && iv.Covers(day) {
			return iv
		}
	}
	return nil
}
