/*
Package calendar renders the company feed as iCalendar data.

PURPOSE:
  Exports approved leave and employee birthdays as an ICS feed that staff
  can subscribe to from any calendar client. Leave intervals become
  all-day events spanning their range; birthdays become all-day events
  for the previous, current, and next year so clients scrolled away from
  today still see them without a re-sync.

SEE ALSO:
  - schedule: The approved-only interval snapshot the feed renders
  - api/handlers.go: The /api/calendar.ics endpoint
*/
package calendar

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/pixup/hr-engine/directory"
	"github.com/pixup/hr-engine/schedule"
)

const (
	productID    = "-//PIXUP//HR Engine//EN"
	calendarName = "PIXUP Team Calendar"
	uidDomain    = "hr.pixup.example"
)

// emptyFeed is a valid empty VCALENDAR, returned when there is nothing to
// render so subscribed clients don't flag the feed as broken.
const emptyFeed = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + productID + "\r\nEND:VCALENDAR\r\n"

// Build renders the feed for the given directory snapshot. The now
// parameter anchors the birthday year window and the DTSTAMP.
func Build(employees []directory.Employee, index *schedule.IntervalIndex, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", calendarName)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(now.UTC())

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.DisplayName()
	}

	// Leave events: one per approved interval in a three-year window
	// around now, matching the birthday window.
	windowStart := schedule.NewDate(now.Year()-1, time.January, 1)
	windowEnd := schedule.NewDate(now.Year()+1, time.December, 31)
	for _, iv := range index.Overlapping(windowStart, windowEnd) {
		event := leaveEvent(iv, names[iv.SubjectID])
		event.Props.Set(dtStamp)
		cal.Children = append(cal.Children, event.Component)
	}

	// Birthday events for previous, current, and next year.
	for _, e := range employees {
		if e.Birthday.IsZero() {
			continue
		}
		for _, year := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
			if year < e.Birthday.Year() {
				continue
			}
			event := birthdayEvent(e, year)
			event.Props.Set(dtStamp)
			cal.Children = append(cal.Children, event.Component)
		}
	}

	if len(cal.Children) == 0 {
		return []byte(emptyFeed), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("calendar: encode feed: %w", err)
	}
	return buf.Bytes(), nil
}

func leaveEvent(iv schedule.LeaveInterval, name string) *ical.Event {
	if name == "" {
		name = iv.SubjectID
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("leave-%s@%s", iv.ID, uidDomain))
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s - %s leave", name, iv.Category))

	dtStart := ical.NewProp(ical.PropDateTimeStart)
	dtStart.SetDate(iv.Start.Time)
	event.Props.Set(dtStart)

	// DTEND is exclusive for all-day events.
	dtEnd := ical.NewProp(ical.PropDateTimeEnd)
	dtEnd.SetDate(iv.End.AddDays(1).Time)
	event.Props.Set(dtEnd)

	return event
}

func birthdayEvent(e directory.Employee, year int) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("bday-%s-%d@%s", e.ID, year, uidDomain))

	summary := fmt.Sprintf("%s's birthday", e.DisplayName())
	if age := year - e.Birthday.Year(); age > 0 {
		summary = fmt.Sprintf("%s's birthday (%d)", e.DisplayName(), age)
	}
	event.Props.SetText(ical.PropSummary, summary)

	// time.Date normalizes Feb 29 to Mar 1 in non-leap years, which is
	// the desired behavior for an annual event.
	day := time.Date(year, e.Birthday.Month(), e.Birthday.Day(), 0, 0, 0, 0, time.UTC)
	dtStart := ical.NewProp(ical.PropDateTimeStart)
	dtStart.SetDate(day)
	event.Props.Set(dtStart)

	return event
}
