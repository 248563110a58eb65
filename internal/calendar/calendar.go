// Package calendar manages the reminder list: adding, deleting and listing
// events, the verify pass that fires reminders and rolls events forward, and
// iCalendar export.
package calendar

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/event"
	"github.com/pfrederiksen/event-reminder/internal/logger"
)

// Repository loads and saves the whole event list.
type Repository interface {
	Load() (*event.Store, error)
	Save(store *event.Store) error
}

// Calendar holds the event list in memory and persists every change.
type Calendar struct {
	repo  Repository
	store *event.Store
	now   func() time.Time
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		c.now = now
	}
}

// Open loads the event list from repo.
func Open(repo Repository, opts ...Option) (*Calendar, error) {
	c := &Calendar{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	store, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	c.store = store

	return c, nil
}

// Today returns the current local date.
func (c *Calendar) Today() event.Date {
	return event.DateOf(c.now())
}

// AddRequest describes an event entered by the user. Nil Month and Year
// default to the current month and year.
type AddRequest struct {
	Day   int
	Month *int
	Year  *int
	Label string
	Cycle bool
}

// Add validates the request, inserts the event in date order and saves.
// A date that is not strictly after today is rejected with KindExpired.
func (c *Calendar) Add(req AddRequest) (event.Event, error) {
	today := c.Today()

	date, err := event.ValidateParts(req.Day, req.Month, req.Year, today)
	if err != nil {
		return event.Event{}, err
	}

	if !date.After(today) {
		return event.Event{}, &event.Error{
			Kind: event.KindExpired,
			Msg:  fmt.Sprintf("%s has passed", date),
		}
	}

	evt := event.NewEvent(date, req.Label, req.Cycle)
	c.store.Insert(evt)

	if err := c.repo.Save(c.store); err != nil {
		return event.Event{}, fmt.Errorf("saving events: %w", err)
	}

	logger.Info("Event added", logger.Fields{
		"date":  date.String(),
		"label": evt.LabelText(),
		"cycle": evt.Cycle,
	})

	return evt, nil
}

// Delete removes the event at index and saves.
func (c *Calendar) Delete(index int) (event.Event, error) {
	removed, err := c.store.RemoveAt(index)
	if err != nil {
		return event.Event{}, err
	}

	if err := c.repo.Save(c.store); err != nil {
		return event.Event{}, fmt.Errorf("saving events: %w", err)
	}

	logger.Info("Event deleted", logger.Fields{
		"index": index,
		"date":  removed.Date.String(),
		"label": removed.LabelText(),
	})

	return removed, nil
}

// Events reads the list fresh from the repository.
func (c *Calendar) Events() ([]event.Event, error) {
	store, err := c.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	return store.Events, nil
}

// Len returns the number of events held in memory.
func (c *Calendar) Len() int {
	return c.store.Len()
}
