// Package cli implements the command-line interface for event-reminder.
//
// The cli package provides the Cobra-based commands: an interactive menu
// (the default when no subcommand is given), list/add/delete for scripting,
// verify for the one-shot reminder pass, and export to iCalendar. It wires
// config, storage, calendar and notifier together and formats output as
// text or JSON.
package cli
