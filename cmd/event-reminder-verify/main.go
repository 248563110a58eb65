// Command event-reminder-verify runs one verify pass over the event list and
// exits. Schedule it once a day with cron, a systemd timer or the Windows
// task scheduler.
package main

import "github.com/pfrederiksen/event-reminder/internal/cli"

func main() {
	cli.ExecuteVerify()
}
