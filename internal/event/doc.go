// Package event provides the types and date logic for the reminder list.
//
// An Event is a civil date, an optional label and a yearly-repeat flag (cycle).
// The package validates user-supplied date parts, builds concrete dates, keeps
// the list sorted ascending by date and computes how many days remain before
// an event. Faults are reported as *Error values carrying a closed Kind so
// callers can tell bad input apart from a date that has already passed.
package event
