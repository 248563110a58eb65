// Package filter narrows an event listing.
//
// Criteria combine with AND:
//   - Date range (from/to dates, inclusive)
//   - Labels (substring matching, case-insensitive, any of)
//   - Weekends only (Saturday/Sunday)
//   - Yearly only (cycle events)
//
// Example usage:
//
//	// Yearly events in March that mention a birthday
//	f := filter.NewFilter()
//	f.CycleOnly = true
//	f.Labels = []string{"birthday"}
//	f.DateFrom, f.DateTo, _ = filter.ParseDateRange("March", today)
//
//	filtered := f.Apply(events)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Date range filtering
	DateFrom *event.Date `json:"date_from,omitempty"`
	DateTo   *event.Date `json:"date_to,omitempty"`

	// Label filtering (case-insensitive substring match)
	Labels []string `json:"labels,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`

	// Only events that repeat every year
	CycleOnly bool `json:"cycle_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all events until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Labels: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Labels) == 0 &&
		!f.WeekendsOnly &&
		!f.CycleOnly
}

// Matches checks if an event matches all active filter criteria.
// An empty filter matches all events. Events without a label never match
// a label filter.
func (f *Filter) Matches(evt event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DateFrom != nil && evt.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && evt.Date.After(*f.DateTo) {
		return false
	}

	if f.WeekendsOnly {
		weekday := evt.Date.Time().Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	if f.CycleOnly && !evt.Cycle {
		return false
	}

	if len(f.Labels) > 0 {
		matched := false
		labelLower := strings.ToLower(evt.LabelText())
		for _, label := range f.Labels {
			if labelLower != "" && strings.Contains(labelLower, strings.ToLower(label)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns only matching events, in their original order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(events []event.Event) []event.Event {
	if f.IsEmpty() {
		return events
	}

	var filtered []event.Event
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: Mar 1, 2027 | To: Mar 31, 2027 | Labels: birthday | Yearly only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Time().Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Time().Format("Jan 2, 2006")))
	}

	if len(f.Labels) > 0 {
		parts = append(parts, fmt.Sprintf("Labels: %s", strings.Join(f.Labels, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	if f.CycleOnly {
		parts = append(parts, "Yearly only")
	}

	return strings.Join(parts, " | ")
}
