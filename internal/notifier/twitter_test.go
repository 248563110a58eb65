package notifier

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
)

type fakeStatuses struct {
	posted []string
	err    error
}

func (f *fakeStatuses) Update(status string, _ *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.posted = append(f.posted, status)
	return &twitter.Tweet{Text: status}, nil, nil
}

func TestFormatTweet(t *testing.T) {
	tests := []struct {
		name        string
		reminder    Reminder
		contains    []string
		notContains []string
	}{
		{
			name:     "cycle event",
			reminder: NewReminder(testEvent("Birthday", true), 7, "next week", "", DefaultDuration),
			contains: []string{
				"Event Reminder!",
				"Message: Birthday, next week!",
				"2026-10-26",
				"Every year",
			},
		},
		{
			name:        "one-off event",
			reminder:    NewReminder(testEvent("Dentist", false), 1, "tomorrow", "", DefaultDuration),
			contains:    []string{"Message: Dentist, tomorrow!"},
			notContains: []string{"Every year"},
		},
		{
			name:     "very long label gets truncated",
			reminder: NewReminder(testEvent(strings.Repeat("very long label ", 30), false), 0, "today", "", DefaultDuration),
			contains: []string{"..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTweet(tt.reminder)

			if n := utf8.RuneCountInString(got); n > tweetLimit {
				t.Errorf("formatTweet() length = %d, want <= %d", n, tweetLimit)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatTweet() missing %q in tweet:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("formatTweet() unexpectedly contains %q:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestTwitterNotifier_Notify(t *testing.T) {
	statuses := &fakeStatuses{}
	n := newTwitterNotifier(statuses)

	r := NewReminder(testEvent("Dentist", false), 1, "tomorrow", "", DefaultDuration)
	if err := n.Notify(context.Background(), r); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if len(statuses.posted) != 1 || !strings.Contains(statuses.posted[0], "Dentist") {
		t.Errorf("posted = %v", statuses.posted)
	}
}

func TestTwitterNotifier_Errors(t *testing.T) {
	r := NewReminder(testEvent("Dentist", false), 1, "tomorrow", "", DefaultDuration)

	failing := newTwitterNotifier(&fakeStatuses{err: errors.New("rate limited")})
	if err := failing.Notify(context.Background(), r); err == nil {
		t.Error("Notify() expected error from API")
	}

	// The first call consumes the only token; a cancelled context must not wait.
	statuses := &fakeStatuses{}
	n := newTwitterNotifier(statuses)
	if err := n.Notify(context.Background(), r); err != nil {
		t.Fatalf("first Notify() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Notify(ctx, r); err == nil {
		t.Error("Notify() with cancelled context expected error")
	}
	if len(statuses.posted) != 1 {
		t.Errorf("posted %d tweets, want 1", len(statuses.posted))
	}
}

func TestNewTwitterNotifier_MissingCredentials(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "")
	t.Setenv("TWITTER_API_SECRET", "")
	t.Setenv("TWITTER_ACCESS_TOKEN", "")
	t.Setenv("TWITTER_ACCESS_SECRET", "")

	if _, err := NewTwitterNotifier(); err == nil {
		t.Error("NewTwitterNotifier() expected error without credentials")
	}
}
