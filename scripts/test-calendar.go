package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/calendar"
	"github.com/pfrederiksen/event-reminder/internal/event"
)

func main() {
	// Sample events one month and one year out
	today := event.DateOf(time.Now())
	events := []event.Event{
		event.NewEvent(event.DateOf(today.Time().AddDate(0, 1, 0)), "Dentist appointment", false),
		event.NewEvent(today.AddYears(1), "Birthday", true),
	}

	var buf bytes.Buffer
	if err := calendar.WriteICS(&buf, events, "Event Reminder test", time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating calendar: %v\n", err)
		os.Exit(1)
	}

	// Write to file (owner read/write only)
	filename := "test-event-reminder.ics"
	if err := os.WriteFile(filename, buf.Bytes(), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(buf.String())
}
