package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
)

// DryRunNotifier prints what would be shown without delivering anything
type DryRunNotifier struct {
	out   io.Writer
	count int
}

// NewDryRunNotifier creates a new dry-run notifier writing to out, or stdout if nil.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Notify prints the reminder that would be delivered
func (n *DryRunNotifier) Notify(_ context.Context, r Reminder) error {
	n.count++
	fmt.Fprintf(n.out, "--- Reminder %d ---\n", n.count)
	fmt.Fprintln(n.out, r.Title)
	fmt.Fprintln(n.out, r.Message)
	if r.Icon != "" {
		fmt.Fprintf(n.out, "(icon: %s, duration: %s)\n", r.Icon, r.Duration)
	} else {
		fmt.Fprintf(n.out, "(duration: %s)\n", r.Duration)
	}
	fmt.Fprintln(n.out)
	return nil
}
