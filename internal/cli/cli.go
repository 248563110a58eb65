package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/calendar"
	"github.com/pfrederiksen/event-reminder/internal/config"
	"github.com/pfrederiksen/event-reminder/internal/event"
	"github.com/pfrederiksen/event-reminder/internal/logger"
	"github.com/pfrederiksen/event-reminder/internal/notifier"
	"github.com/pfrederiksen/event-reminder/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

var (
	flagConfig          string
	flagDataFile        string
	flagIcon            string
	flagNotifier        string
	flagDryRun          bool
	flagVerbose         bool
	flagLogLevel        string
	flagFormat          string
	flagNoTTYCheck      bool
	flagStopAtFirstMiss bool
)

// clock is the time source for every command.
var clock = time.Now

// isTerminal reports whether stdin is interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-reminder",
		Short: "Keep a list of dates and get reminded before they come up",
		Long: `A small personal calendar. Events are stored in a JSON file and
"event-reminder verify" (or the event-reminder-verify binary), run once a day
by cron or a task scheduler, sends a notification one week before, one day
before and on the day of each event.

Run without a subcommand for the interactive menu.`,
		RunE:          runMenu,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	addPersistentFlags(cmd)
	cmd.Flags().BoolVar(&flagNoTTYCheck, "no-tty-check", false, "Run the menu even when stdin is not a terminal")

	cmd.AddCommand(
		newListCmd(),
		newAddCmd(),
		newDeleteCmd(),
		newVerifyCmd("verify"),
		newExportCmd(),
	)

	return cmd
}

// NewVerifyRootCmd creates the standalone verify command used by the
// event-reminder-verify binary.
func NewVerifyRootCmd() *cobra.Command {
	cmd := newVerifyCmd("event-reminder-verify")
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	addPersistentFlags(cmd)
	return cmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/event-reminder/config.yaml)")
	cmd.PersistentFlags().StringVar(&flagDataFile, "data-file", "", "Path to the events JSON file")
	cmd.PersistentFlags().StringVar(&flagIcon, "icon", "", "Icon shown with notifications")
	cmd.PersistentFlags().StringVar(&flagNotifier, "notifier", "", "Notification sink: desktop, twitter, telegram or dry-run")
	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of sending them")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// app is everything a command needs, built from flags and config.
type app struct {
	cfg *config.Config
	cal *calendar.Calendar
}

// setup loads config, configures logging and opens the event list.
func setup(cmd *cobra.Command) (*app, error) {
	overrides := config.Overrides{
		DataFile: flagDataFile,
		IconPath: flagIcon,
		Notifier: flagNotifier,
		LogLevel: flagLogLevel,
	}
	if flagDryRun {
		overrides.Notifier = string(notifier.KindDryRun)
	}
	if f := cmd.Flags().Lookup("stop-at-first-miss"); f != nil && f.Changed {
		v := flagStopAtFirstMiss
		overrides.StopAtFirstMiss = &v
	}

	cfg, err := config.Load(flagConfig, overrides)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.SetDefault(cfg.Logger(flagVerbose))

	logger.Debug("Configuration loaded", logger.Fields{
		"data_file": cfg.DataFile,
		"notifier":  cfg.Notifier.Kind,
	})

	store, err := storage.New(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	cal, err := calendar.Open(store, calendar.WithClock(clock))
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, cal: cal}, nil
}

// outputFormat validates the --format flag.
func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if event.IsUsage(err) {
		return ExitUsage
	}
	switch event.KindOf(err) {
	case event.KindExpired, event.KindInvalidDate:
		return ExitUsage
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitError
}

// usageError is a bad command-line argument.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(NewRootCmd()))
}

// ExecuteVerify runs the one-shot verify command
func ExecuteVerify() {
	os.Exit(run(NewVerifyRootCmd()))
}
