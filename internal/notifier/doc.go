// Package notifier delivers event reminders.
//
// A Reminder is a title, a composed message, an icon path and a display
// duration. Notifier implementations hand it to a desktop notification
// daemon over D-Bus, post it to Twitter, or print it (dry run). Delivery is
// fire-and-forget: there is no retry and no delivery confirmation.
package notifier
