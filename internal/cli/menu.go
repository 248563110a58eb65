package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pfrederiksen/event-reminder/internal/calendar"
	"github.com/pfrederiksen/event-reminder/internal/event"
	"github.com/pfrederiksen/event-reminder/internal/logger"
	"github.com/spf13/cobra"
)

const menuPrompt = "Show upcoming events, add one or delete one? (s/a/d)"

var (
	// errQuit ends the menu session.
	errQuit = errors.New("quit")
	// errInput wraps a failure to read from the terminal.
	errInput = errors.New("reading input")
)

func runMenu(cmd *cobra.Command, args []string) error {
	if !flagNoTTYCheck && !isTerminal() {
		return &usageError{msg: "stdin is not a terminal; use a subcommand or --no-tty-check"}
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}

	return NewMenu(a.cal, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
}

// Menu is the interactive single-character session.
type Menu struct {
	cal *calendar.Calendar
	in  *bufio.Scanner
	out io.Writer
}

// NewMenu creates a menu reading answers from in.
func NewMenu(cal *calendar.Calendar, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		cal: cal,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run loops on the main prompt until a blank answer or end of input.
// Faults in a single action are reported and the session continues; a
// failure to read input ends it with an error.
func (m *Menu) Run() error {
	for {
		choice, err := m.ask(menuPrompt)
		if errors.Is(err, errQuit) || (err == nil && choice == "") {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "s":
			err = m.show()
		case "a":
			err = m.add()
		case "d":
			err = m.remove()
		default:
			fmt.Fprintf(m.out, "Unknown choice %q\n", choice)
			continue
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if errors.Is(err, errInput) {
			return err
		}
		if err != nil {
			m.report(err)
		}
	}
}

// ask prints a prompt and reads one trimmed line. End of input returns errQuit.
func (m *Menu) ask(prompt string) (string, error) {
	fmt.Fprintln(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", errInput, err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) show() error {
	events, err := m.cal.Events()
	if err != nil {
		return err
	}
	writeListText(m.out, NewListResult(events, m.cal.Today(), clock()).Events)
	return nil
}

func (m *Menu) add() error {
	answer, err := m.ask("Which day?")
	if err != nil {
		return err
	}
	day, err := strconv.Atoi(answer)
	if err != nil {
		return &event.Error{Kind: event.KindUsage, Msg: "day must be a number"}
	}

	month, err := m.askOptionalInt("Which month? (blank for the current one)", "month")
	if err != nil {
		return err
	}
	year, err := m.askOptionalInt("Which year? (blank for the current one)", "year")
	if err != nil {
		return err
	}

	label, err := m.ask("Enter a message (optional)")
	if err != nil {
		return err
	}

	cycle, err := m.askFlag("Do you want to repeat the event every year? (0/1)")
	if err != nil {
		return err
	}

	req := calendar.AddRequest{Day: day, Month: month, Year: year, Label: label, Cycle: cycle}
	fmt.Fprintln(m.out, describeRequest(req))

	ok, err := m.askFlag("Is it good for you? (0/1)")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, "Event not added")
		return nil
	}

	if _, err := m.cal.Add(req); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Event added!")
	return nil
}

func (m *Menu) remove() error {
	if err := m.show(); err != nil {
		return err
	}

	answer, err := m.ask("Which event do you want to delete? (Index starts at 0)")
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintln(m.out, "Index must be a number")
		return nil
	}

	removed, err := m.cal.Delete(index)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Event deleted: %s\n", describe(removed, m.cal.Today()))
	return nil
}

// askOptionalInt returns nil for a blank answer.
func (m *Menu) askOptionalInt(prompt, part string) (*int, error) {
	answer, err := m.ask(prompt)
	if err != nil || answer == "" {
		return nil, err
	}
	v, err := strconv.Atoi(answer)
	if err != nil {
		return nil, &event.Error{Kind: event.KindUsage, Msg: part + " must be a number"}
	}
	return &v, nil
}

// askFlag reads a 0/1 answer. Blank counts as 0.
func (m *Menu) askFlag(prompt string) (bool, error) {
	answer, err := m.ask(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "1", "y", "yes":
		return true, nil
	case "", "0", "n", "no":
		return false, nil
	}
	return false, &event.Error{Kind: event.KindUsage, Msg: "answer 0 or 1"}
}

func (m *Menu) report(err error) {
	if event.IsUsage(err) {
		fmt.Fprintf(m.out, "Invalid input: %v\n", err)
		return
	}
	switch event.KindOf(err) {
	case event.KindExpired:
		fmt.Fprintf(m.out, "%v, choose a later date\n", err)
	case event.KindInvalidDate:
		fmt.Fprintln(m.out, "This date does not exist")
	default:
		logger.Error("Menu action failed", nil, err)
		fmt.Fprintf(m.out, "Unknown error: %v\n", err)
	}
}

func describeRequest(req calendar.AddRequest) string {
	part := func(p *int) string {
		if p == nil {
			return "current"
		}
		return strconv.Itoa(*p)
	}
	label := req.Label
	if label == "" {
		label = "(no label)"
	}
	repeat := "once"
	if req.Cycle {
		repeat = "every year"
	}
	return fmt.Sprintf("day %d, month %s, year %s: %s (%s)", req.Day, part(req.Month), part(req.Year), label, repeat)
}
