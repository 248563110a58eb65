package event

import (
	"sort"

	"github.com/google/uuid"
)

// namespace scopes the name-based UUIDs generated by GenerateID.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pfrederiksen/event-reminder"))

// Event is a single reminder entry
type Event struct {
	Date  Date    `json:"date"`
	Label *string `json:"label"` // nil when the user gave no label
	Cycle bool    `json:"cycle"` // repeats every year
}

// NewEvent creates an Event. An empty label is stored as null.
func NewEvent(date Date, label string, cycle bool) Event {
	evt := Event{Date: date, Cycle: cycle}
	if label != "" {
		evt.Label = &label
	}
	return evt
}

// LabelText returns the label, or "" when none was set.
func (e Event) LabelText() string {
	if e.Label == nil {
		return ""
	}
	return *e.Label
}

// DaysRemaining returns the number of days from today until the event.
// Negative values mean the event has passed.
func (e Event) DaysRemaining(today Date) int {
	return e.Date.DaysSince(today)
}

// IsPast reports whether the event date is before today.
func (e Event) IsPast(today Date) bool {
	return e.Date.Before(today)
}

// NextOccurrence returns a copy of the event moved forward by one year.
func (e Event) NextOccurrence() Event {
	next := e
	next.Date = e.Date.AddYears(1)
	return next
}

// GenerateID creates a deterministic ID for an event based on its date and label
func GenerateID(e Event) string {
	return uuid.NewSHA1(namespace, []byte(e.Date.String()+"|"+e.LabelText())).String()
}

// Sort orders events ascending by date. Events on the same day keep their
// relative order.
func Sort(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

// IsSorted reports whether events are in ascending date order.
func IsSorted(events []Event) bool {
	return sort.SliceIsSorted(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
