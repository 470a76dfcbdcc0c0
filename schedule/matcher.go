/*
matcher.go - Day-of-year matching for birthdays and work anniversaries

PURPOSE:
  Given "today" and a snapshot of anniversary records, return the subjects
  whose anchor month and day equal today's month and day, independent of
  year and of leap-year alignment. Drives the daily notification cycle.

SEMANTICS:
  - elapsedYears = today.year - anchor.year. The year of the anchor is
    retained only for this computation, never used as a match key.
  - A negative elapsedYears (anchor in the future) is surfaced unmodified;
    clamping would hide a data-quality defect upstream.
  - A Feb-29 anchor matches only on Feb 29. In non-leap years it simply
    never matches.
  - Records with a zero anchor date are skipped and counted, not fatal.

SEE ALSO:
  - date.go: SameMonthDay
*/
package schedule

// =============================================================================
// ANNIVERSARY RECORDS
// =============================================================================

// AnniversaryKind distinguishes the two notification streams.
type AnniversaryKind string

const (
	KindBirthday        AnniversaryKind = "birthday"
	KindWorkAnniversary AnniversaryKind = "work_anniversary"
)

// AnniversaryRecord is one (subject, anchor date) pair. Records are
// immutable for the duration of a cycle; the caller sources them fresh
// from the directory on each run.
type AnniversaryRecord struct {
	SubjectID   string
	Kind        AnniversaryKind
	Anchor      Date
	DisplayName string
	Email       string
	Position    string
}

// Match pairs a matched record with the years elapsed since its anchor.
type Match struct {
	Record       AnniversaryRecord
	ElapsedYears int
}

// =============================================================================
// MATCHER
// =============================================================================

// MatchToday returns the records whose anchor month and day equal today's,
// plus the count of records skipped for lacking an anchor date. Pure and
// deterministic for a given (today, records) pair.
func MatchToday(today Date, records []AnniversaryRecord) (matches []Match, skipped int) {
	for _, rec := range records {
		if rec.Anchor.IsZero() {
			skipped++
			continue
		}
		if !rec.Anchor.SameMonthDay(today) {
			continue
		}
		matches = append(matches, Match{
			Record:       rec,
			ElapsedYears: today.Year() - rec.Anchor.Year(),
		})
	}
	return matches, skipped
}
