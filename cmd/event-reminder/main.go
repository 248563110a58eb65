// Command event-reminder manages the event list: interactive menu, list,
// add, delete, verify and iCalendar export.
package main

import "github.com/pfrederiksen/event-reminder/internal/cli"

func main() {
	cli.Execute()
}
