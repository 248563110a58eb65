package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pfrederiksen/event-reminder/internal/calendar"
	"github.com/pfrederiksen/event-reminder/internal/event"
	"github.com/pfrederiksen/event-reminder/internal/filter"
	"github.com/pfrederiksen/event-reminder/internal/logger"
	"github.com/pfrederiksen/event-reminder/internal/notifier"
	"github.com/spf13/cobra"
)

var (
	flagDay      int
	flagMonth    int
	flagYear     int
	flagLabel    string
	flagCycle    bool
	flagSort     string
	flagRange    string
	flagMatch    []string
	flagWeekends bool
	flagYearly   bool
	flagOutput   string
	flagCalendar string
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show all events",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort order: date or label")
	addFilterFlags(cmd)
	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagRange, "range", "", "Only events in this date range ('Mar 1-15', 'March', '2026-11-01..2026-12-31')")
	cmd.Flags().StringSliceVar(&flagMatch, "match", nil, "Only events whose label contains one of these words")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Only events on a Saturday or Sunday")
	cmd.Flags().BoolVar(&flagYearly, "yearly", false, "Only events that repeat every year")
}

// listFilter builds the filter described by the list flags.
func listFilter(today event.Date) (*filter.Filter, error) {
	f := filter.NewFilter()
	if flagRange != "" {
		from, to, err := filter.ParseDateRange(flagRange, today)
		if err != nil {
			return nil, &usageError{msg: err.Error()}
		}
		f.DateFrom, f.DateTo = from, to
	}
	f.Labels = append(f.Labels, flagMatch...)
	f.WeekendsOnly = flagWeekends
	f.CycleOnly = flagYearly
	return f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	order := SortOrder(flagSort)
	if order != SortByDate && order != SortByLabel {
		return &usageError{msg: fmt.Sprintf("invalid sort order: %s (must be 'date' or 'label')", flagSort)}
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}

	f, err := listFilter(a.cal.Today())
	if err != nil {
		return err
	}

	events, err := a.cal.Events()
	if err != nil {
		return err
	}

	result := NewListResult(events, a.cal.Today(), clock())
	if !f.IsEmpty() {
		result.Keep(func(v EventView) bool { return f.Matches(events[v.Index]) })
		logger.Debug("Listing filtered", logger.Fields{
			"filter":  f.String(),
			"matched": result.EventCount,
		})
	}
	sortViews(result.Events, order)

	return WriteList(cmd.OutOrStdout(), result, format)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Long: `Add an event. Month and year default to the current ones.
The date must be after today.`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}
	cmd.Flags().IntVar(&flagDay, "day", 0, "Day of the month (required)")
	cmd.Flags().IntVar(&flagMonth, "month", 0, "Month, 1-12 (default current month)")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Year (default current year)")
	cmd.Flags().StringVar(&flagLabel, "label", "", "Message shown in the reminder")
	cmd.Flags().BoolVar(&flagCycle, "cycle", false, "Repeat the event every year")
	cmd.MarkFlagRequired("day") //nolint:errcheck
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	req := calendar.AddRequest{
		Day:   flagDay,
		Label: flagLabel,
		Cycle: flagCycle,
	}
	if cmd.Flags().Changed("month") {
		m := flagMonth
		req.Month = &m
	}
	if cmd.Flags().Changed("year") {
		y := flagYear
		req.Year = &y
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}

	evt, err := a.cal.Add(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Event added: %s\n", describe(evt, a.cal.Today()))
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the event at INDEX (as shown by list, starting at 0)",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return &usageError{msg: "index must be a number"}
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}

	removed, err := a.cal.Delete(index)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Event deleted: %s\n", describe(removed, a.cal.Today()))
	return nil
}

func newVerifyCmd(use string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Send due reminders and roll over passed events",
		Long: `Check every event once: send a reminder for events one week away,
one day away or due today, move passed yearly events to next year and
remove other passed events. Meant to be run once a day by a scheduler.`,
		Args: cobra.NoArgs,
		RunE: runVerify,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagStopAtFirstMiss, "stop-at-first-miss", false, "Stop at the first event that is neither passed nor due for a reminder")
	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}

	duration, err := a.cfg.DisplayDuration()
	if err != nil {
		return err
	}

	n, err := newNotifier(a, cmd)
	if err != nil {
		return fmt.Errorf("initializing notifier: %w", err)
	}

	report, err := a.cal.Verify(cmd.Context(), n, calendar.VerifyOptions{
		Icon:            a.cfg.IconPath,
		Duration:        duration,
		StopAtFirstMiss: a.cfg.Verify.StopAtFirstMiss,
	})
	if err != nil {
		return err
	}

	logger.Info("Verify complete", logger.Fields{
		"reminders": len(report.Reminders),
		"advanced":  len(report.Advanced),
		"removed":   len(report.Removed),
		"failed":    report.Failed,
	})

	return WriteReport(cmd.OutOrStdout(), NewVerifyResult(report, clock()), format)
}

func newNotifier(a *app, cmd *cobra.Command) (notifier.Notifier, error) {
	return notifier.New(a.cfg.NotifierKind(), a.cfg.Notifier.AppName, cmd.OutOrStdout())
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events as an iCalendar (.ics) file",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&flagCalendar, "name", "Event Reminders", "Calendar name")
	addFilterFlags(cmd)
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	f, err := listFilter(a.cal.Today())
	if err != nil {
		return err
	}

	data, err := a.cal.ExportICS(flagCalendar, f)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(flagOutput, data, 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}

	logger.Info("Calendar exported", logger.Fields{
		"path":   flagOutput,
		"filter": f.String(),
	})
	return nil
}
