package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsMethod = notificationsDest + ".Notify"
)

// DefaultAppName is reported to the notification daemon.
const DefaultAppName = "event-reminder"

// busObject is the part of a D-Bus object used to send a notification.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DesktopNotifier shows reminders through the freedesktop notification
// service on the session bus.
type DesktopNotifier struct {
	appName string
	// connect opens the bus and returns the notifications object and a
	// function that releases the connection.
	connect func(ctx context.Context) (busObject, func() error, error)
}

// NewDesktopNotifier creates a notifier that talks to the session bus.
func NewDesktopNotifier(appName string) *DesktopNotifier {
	if appName == "" {
		appName = DefaultAppName
	}
	return &DesktopNotifier{appName: appName, connect: sessionBus}
}

func sessionBus(ctx context.Context) (busObject, func() error, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return conn.Object(notificationsDest, notificationsPath), conn.Close, nil
}

// Notify shows the reminder and returns once the daemon has accepted it.
func (n *DesktopNotifier) Notify(ctx context.Context, r Reminder) error {
	obj, closeBus, err := n.connect(ctx)
	if err != nil {
		return err
	}
	defer closeBus() //nolint:errcheck

	call := obj.CallWithContext(ctx, notificationsMethod, 0,
		n.appName,
		uint32(0), // replaces_id
		r.Icon,
		r.Title,
		r.Message,
		[]string{},                // actions
		map[string]dbus.Variant{}, // hints
		expireTimeout(r.Duration),
	)
	if call.Err != nil {
		return fmt.Errorf("sending desktop notification: %w", call.Err)
	}

	return nil
}

// expireTimeout converts a duration to the milliseconds the daemon expects.
// Zero or less lets the daemon choose.
func expireTimeout(d time.Duration) int32 {
	if d <= 0 {
		return -1
	}
	return int32(d / time.Millisecond)
}
