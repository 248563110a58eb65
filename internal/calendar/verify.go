package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/event"
	"github.com/pfrederiksen/event-reminder/internal/logger"
	"github.com/pfrederiksen/event-reminder/internal/notifier"
)

// Reminder phrases keyed by days remaining.
const (
	PhraseToday    = "today"
	PhraseTomorrow = "tomorrow"
	PhraseNextWeek = "next week"
)

// Phrase returns the reminder phrase for the given number of days remaining.
// Only 0, 1 and 7 days trigger a reminder.
func Phrase(days int) (string, bool) {
	switch days {
	case 0:
		return PhraseToday, true
	case 1:
		return PhraseTomorrow, true
	case 7:
		return PhraseNextWeek, true
	}
	return "", false
}

// VerifyOptions tunes a verify pass.
type VerifyOptions struct {
	Icon     string
	Duration time.Duration

	// StopAtFirstMiss ends the scan at the first event that has not passed
	// and is not on a reminder threshold. Later events are left untouched.
	StopAtFirstMiss bool
}

// Advance records a cycle event moved to its next occurrence.
type Advance struct {
	From  event.Date
	Event event.Event // with the new date
}

// Report is the outcome of a verify pass.
type Report struct {
	Reminders []notifier.Reminder
	Advanced  []Advance
	Removed   []event.Event
	Failed    int  // reminders the notifier could not deliver
	Stopped   bool // the scan ended early (StopAtFirstMiss)
}

// Changed reports whether the pass modified the event list.
func (r *Report) Changed() bool {
	return len(r.Advanced) > 0 || len(r.Removed) > 0
}

// Verify checks every event against today. Passed cycle events move forward
// one year, passed one-off events are removed, and events 0, 1 or 7 days
// away produce a reminder. Changes are saved before any reminder is sent.
// Delivery failures are logged and counted but do not fail the pass.
func (c *Calendar) Verify(ctx context.Context, n notifier.Notifier, opts VerifyOptions) (*Report, error) {
	today := c.Today()
	report := &Report{}

	events := c.store.Events
	kept := make([]event.Event, 0, len(events))

	for i, evt := range events {
		days := evt.DaysRemaining(today)
		advanced := false

		if evt.IsPast(today) {
			if !evt.Cycle {
				report.Removed = append(report.Removed, evt)
				logger.Info("Expired event removed", logger.Fields{
					"date":  evt.Date.String(),
					"label": evt.LabelText(),
				})
				continue
			}

			next := evt.NextOccurrence()
			report.Advanced = append(report.Advanced, Advance{From: evt.Date, Event: next})
			logger.Info("Cycle event rolled forward", logger.Fields{
				"from":  evt.Date.String(),
				"to":    next.Date.String(),
				"label": evt.LabelText(),
			})
			evt = next
			days = evt.DaysRemaining(today)
			advanced = true
		}

		kept = append(kept, evt)

		phrase, ok := Phrase(days)
		if !ok {
			if opts.StopAtFirstMiss && !advanced {
				kept = append(kept, events[i+1:]...)
				report.Stopped = true
				logger.Debug("Verify stopped at first miss", logger.Fields{
					"date": evt.Date.String(),
					"days": days,
				})
				break
			}
			continue
		}

		report.Reminders = append(report.Reminders,
			notifier.NewReminder(evt, days, phrase, opts.Icon, opts.Duration))
	}

	if report.Changed() {
		event.Sort(kept)
		c.store.Events = kept
		if err := c.repo.Save(c.store); err != nil {
			return nil, fmt.Errorf("saving events: %w", err)
		}
	}

	for _, r := range report.Reminders {
		if err := n.Notify(ctx, r); err != nil {
			report.Failed++
			logger.Error("Reminder delivery failed", logger.Fields{
				"date":  r.Event.Date.String(),
				"label": r.Event.LabelText(),
				"days":  r.Days,
			}, err)
			continue
		}
		logger.Info("Reminder sent", logger.Fields{
			"date":  r.Event.Date.String(),
			"label": r.Event.LabelText(),
			"days":  r.Days,
		})
	}

	return report, nil
}
