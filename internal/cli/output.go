package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/calendar"
	"github.com/pfrederiksen/event-reminder/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ruleLine separates events in text listings.
const ruleLine = "----------------------------------------"

// EventView is an event as shown to the user, with its position in the
// stored list.
type EventView struct {
	Index         int        `json:"index"`
	Date          event.Date `json:"date"`
	Label         *string    `json:"label"`
	Cycle         bool       `json:"cycle"`
	DaysRemaining int        `json:"days_remaining"`
}

func newEventView(index int, evt event.Event, today event.Date) EventView {
	return EventView{
		Index:         index,
		Date:          evt.Date,
		Label:         evt.Label,
		Cycle:         evt.Cycle,
		DaysRemaining: evt.DaysRemaining(today),
	}
}

// ListResult contains the event list to be output
type ListResult struct {
	CheckedAt  time.Time   `json:"checked_at"`
	Today      event.Date  `json:"today"`
	EventCount int         `json:"event_count"`
	Events     []EventView `json:"events"`
}

// NewListResult builds a listing. Indexes follow the stored order so they
// can be passed to delete.
func NewListResult(events []event.Event, today event.Date, now time.Time) *ListResult {
	views := make([]EventView, 0, len(events))
	for i, evt := range events {
		views = append(views, newEventView(i, evt, today))
	}
	return &ListResult{
		CheckedAt:  now,
		Today:      today,
		EventCount: len(views),
		Events:     views,
	}
}

// Keep drops the events for which keep returns false.
func (r *ListResult) Keep(keep func(EventView) bool) {
	kept := r.Events[:0]
	for _, v := range r.Events {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	r.Events = kept
	r.EventCount = len(kept)
}

// WriteList writes the listing in the specified format
func WriteList(w io.Writer, result *ListResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		writeListText(w, result.Events)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeListText(w io.Writer, views []EventView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	for _, v := range views {
		fmt.Fprintf(w, "%d: %s\n", v.Index, describeView(v))
		fmt.Fprintln(w, ruleLine)
	}
}

func describeView(v EventView) string {
	label := "(no label)"
	if v.Label != nil && *v.Label != "" {
		label = *v.Label
	}
	s := fmt.Sprintf("%s  %s  (%s)", v.Date, label, daysText(v.DaysRemaining))
	if v.Cycle {
		s += "  [yearly]"
	}
	return s
}

// describe renders a single event on one line.
func describe(evt event.Event, today event.Date) string {
	return describeView(newEventView(0, evt, today))
}

func daysText(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	}
	return fmt.Sprintf("in %d days", days)
}

// ReminderView is a reminder produced by a verify pass.
type ReminderView struct {
	Date    event.Date `json:"date"`
	Label   *string    `json:"label"`
	Days    int        `json:"days"`
	Message string     `json:"message"`
}

// AdvanceView is a cycle event moved to next year.
type AdvanceView struct {
	From  event.Date `json:"from"`
	To    event.Date `json:"to"`
	Label *string    `json:"label"`
}

// VerifyResult contains a verify report to be output
type VerifyResult struct {
	CheckedAt time.Time      `json:"checked_at"`
	Reminders []ReminderView `json:"reminders"`
	Advanced  []AdvanceView  `json:"advanced"`
	Removed   []event.Event  `json:"removed"`
	Failed    int            `json:"failed"`
	Stopped   bool           `json:"stopped,omitempty"`
}

// NewVerifyResult converts a calendar report for output.
func NewVerifyResult(report *calendar.Report, now time.Time) *VerifyResult {
	result := &VerifyResult{
		CheckedAt: now,
		Reminders: make([]ReminderView, 0, len(report.Reminders)),
		Advanced:  make([]AdvanceView, 0, len(report.Advanced)),
		Removed:   append([]event.Event{}, report.Removed...),
		Failed:    report.Failed,
		Stopped:   report.Stopped,
	}
	for _, r := range report.Reminders {
		result.Reminders = append(result.Reminders, ReminderView{
			Date:    r.Event.Date,
			Label:   r.Event.Label,
			Days:    r.Days,
			Message: r.Message,
		})
	}
	for _, a := range report.Advanced {
		result.Advanced = append(result.Advanced, AdvanceView{
			From:  a.From,
			To:    a.Event.Date,
			Label: a.Event.Label,
		})
	}
	return result
}

// WriteReport writes a verify result in the specified format
func WriteReport(w io.Writer, result *VerifyResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		writeReportText(w, result)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeReportText(w io.Writer, result *VerifyResult) {
	for _, r := range result.Reminders {
		fmt.Fprintf(w, "REMINDER (%s): %s\n", r.Date, r.Message)
	}
	for _, a := range result.Advanced {
		fmt.Fprintf(w, "MOVED: %s -> %s %s\n", a.From, a.To, labelOf(a.Label))
	}
	for _, e := range result.Removed {
		fmt.Fprintf(w, "REMOVED: %s %s\n", e.Date, e.LabelText())
	}
	if result.Stopped {
		fmt.Fprintln(w, "Scan stopped at the first event with nothing to do.")
	}

	fmt.Fprintf(w, "\nTotal: %d reminders, %d moved, %d removed", len(result.Reminders), len(result.Advanced), len(result.Removed))
	if result.Failed > 0 {
		fmt.Fprintf(w, ", %d failed", result.Failed)
	}
	fmt.Fprintln(w)
}

func labelOf(label *string) string {
	if label == nil {
		return ""
	}
	return *label
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
