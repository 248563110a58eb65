package calendar

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/pfrederiksen/event-reminder/internal/event"
	"github.com/pfrederiksen/event-reminder/internal/filter"
)

const (
	productID   = "-//Event Reminder//event-reminder//EN"
	uidDomain   = "event-reminder"
	untitled    = "Event"
	calendarKey = "X-WR-CALNAME"
)

// GenerateICS builds an iCalendar document with one all-day VEVENT per
// event. Cycle events repeat yearly.
func GenerateICS(events []event.Event, name string, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")
	if name != "" {
		// X- properties carry no VALUE parameter
		calName := ical.NewProp(calendarKey)
		calName.Value = name
		cal.Props.Set(calName)
	}

	for _, evt := range events {
		cal.Children = append(cal.Children, newVEvent(evt, now))
	}

	return cal
}

func newVEvent(evt event.Event, now time.Time) *ical.Component {
	vevent := ical.NewComponent(ical.CompEvent)

	// UID - stable across exports
	vevent.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", event.GenerateID(evt), uidDomain))

	// DTSTAMP - when this entry was generated
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())

	// DTSTART/DTEND - all-day, end is exclusive
	start := evt.Date.Time()
	dtstart := ical.NewProp(ical.PropDateTimeStart)
	dtstart.SetDate(start)
	vevent.Props.Set(dtstart)

	dtend := ical.NewProp(ical.PropDateTimeEnd)
	dtend.SetDate(start.AddDate(0, 0, 1))
	vevent.Props.Set(dtend)

	summary := evt.LabelText()
	if summary == "" {
		summary = untitled
	}
	vevent.Props.SetText(ical.PropSummary, summary)

	if evt.Cycle {
		vevent.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.YEARLY})
	}

	vevent.Props.SetText(ical.PropTransparency, "TRANSPARENT")

	return vevent
}

// WriteICS encodes the events as iCalendar to w.
func WriteICS(w io.Writer, events []event.Event, name string, now time.Time) error {
	if err := ical.NewEncoder(w).Encode(GenerateICS(events, name, now)); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

// ExportICS returns the current event list as an iCalendar document. A nil
// filter exports every event.
func (c *Calendar) ExportICS(name string, f *filter.Filter) ([]byte, error) {
	events, err := c.Events()
	if err != nil {
		return nil, err
	}
	if f != nil {
		events = f.Apply(events)
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, events, name, c.now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
