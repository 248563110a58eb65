// Package storage provides JSON-based persistence for the event list.
//
// The whole list lives in a single document ({"event": [...]}) that is read
// fully on load and rewritten on every save. Files are accessed through a
// go-billy filesystem so tests can run against an in-memory one. The default
// location is ~/.local/share/event-reminder/dates.json.
package storage
