package notifier

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/event"
)

// DefaultTitle is the title of every reminder.
const DefaultTitle = "Event Reminder!"

// DefaultDuration is how long a desktop notification stays visible.
const DefaultDuration = 20 * time.Second

// Kind names a notifier implementation.
type Kind string

const (
	KindDesktop  Kind = "desktop"
	KindTwitter  Kind = "twitter"
	KindTelegram Kind = "telegram"
	KindDryRun   Kind = "dry-run"
)

// Reminder is a single notification about an upcoming event
type Reminder struct {
	Title    string
	Message  string
	Icon     string
	Duration time.Duration

	Event event.Event
	Days  int // days remaining when the reminder was built
}

// NewReminder builds the reminder for evt with the threshold phrase.
func NewReminder(evt event.Event, days int, phrase, icon string, duration time.Duration) Reminder {
	return Reminder{
		Title:    DefaultTitle,
		Message:  FormatMessage(evt.LabelText(), phrase),
		Icon:     icon,
		Duration: duration,
		Event:    evt,
		Days:     days,
	}
}

// FormatMessage composes the reminder body.
func FormatMessage(label, phrase string) string {
	if label == "" {
		label = "(no label)"
	}
	return fmt.Sprintf("Message: %s, %s!", label, phrase)
}

// Notifier defines the interface for delivering reminders
type Notifier interface {
	// Notify delivers a single reminder
	Notify(ctx context.Context, r Reminder) error
}

// ParseKind converts a notifier name, defaulting to desktop.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindDesktop, nil
	case KindDesktop, KindTwitter, KindTelegram, KindDryRun:
		return k, nil
	}
	return "", fmt.Errorf("unknown notifier: %s (must be 'desktop', 'twitter', 'telegram' or 'dry-run')", s)
}

// New creates the notifier of the given kind. appName is used by the desktop
// notifier and out by the dry-run notifier.
func New(kind Kind, appName string, out io.Writer) (Notifier, error) {
	switch kind {
	case KindDesktop:
		return NewDesktopNotifier(appName), nil
	case KindTwitter:
		return NewTwitterNotifier()
	case KindTelegram:
		return NewTelegramNotifier()
	case KindDryRun:
		return NewDryRunNotifier(out), nil
	}
	return nil, fmt.Errorf("unknown notifier: %s", kind)
}
