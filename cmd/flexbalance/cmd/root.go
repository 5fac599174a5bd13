// Package cmd contains all CLI commands for flexbalance.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lan-dot-party/flexbalance/internal/config"
	"github.com/lan-dot-party/flexbalance/internal/flex"
	"github.com/lan-dot-party/flexbalance/internal/harvest"
	"github.com/lan-dot-party/flexbalance/internal/logger"
	"github.com/lan-dot-party/flexbalance/internal/report"
	"github.com/lan-dot-party/flexbalance/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	verbose    bool
	jsonOutput bool

	// Loaded configuration (available to subcommands)
	cfg *config.Config

	// now is swapped out by tests.
	now = time.Now
)

// rootCmd computes the flex balance when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "flexbalance [start_date] [end_date]",
	Short: "flexbalance - Harvest hours versus expected working hours",
	Long: `flexbalance compares the hours you logged in Harvest with the hours
you were expected to work (Monday to Friday) and prints the difference.

Dates are YYYY-MM-DD. Without arguments the range is January 1 of the
current year up to today. The end date is not counted as a working day
until you have logged time on it.

Environment:
  HARVEST_ACCESS_TOKEN   personal access token (required)
  HARVEST_ACCOUNT_ID     Harvest account id (required)
  HOURS_PER_DAY          expected hours per weekday (default: 7.5)

Examples:
  # Year to date
  flexbalance

  # Since a given date
  flexbalance 2024-03-01

  # A closed range, as JSON
  flexbalance 2024-01-01 2024-06-30 --json`,
	Args:         cobra.MaximumNArgs(2),
	Version:      version.GetVersion(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for certain commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" && cmd.Name() == "init" {
			return nil
		}

		// Initialize logger based on verbose flag
		development := logger.IsDevelopment()
		logLevel := config.DefaultLogLevel
		if verbose {
			logLevel = "debug"
		}
		if err := logger.Init(logLevel, development); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Reinitialize logger with config settings (verbose flag takes precedence)
		finalLogLevel := cfg.General.LogLevel
		if verbose {
			finalLogLevel = "debug"
		}
		if err := logger.Init(finalLogLevel, development); err != nil {
			return fmt.Errorf("failed to reinitialize logger: %w", err)
		}

		return nil
	},
	RunE: runBalance,
}

// entryLister is the part of the Harvest client the balance needs.
type entryLister interface {
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]flex.TimeEntry, error)
}

func runBalance(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	var startArg, endArg string
	if len(args) > 0 {
		startArg = args[0]
	}
	if len(args) > 1 {
		endArg = args[1]
	}

	client, err := harvest.NewClient(cfg, logger.Named("harvest"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rep, err := buildReport(ctx, client, cfg, startArg, endArg, now())
	if err != nil {
		return err
	}

	if jsonOutput {
		return rep.WriteJSON(cmd.OutOrStdout())
	}
	return rep.WriteText(cmd.OutOrStdout())
}

// buildReport resolves the date range, fetches entries for it and computes
// the balance. Any failure aborts the whole report.
func buildReport(ctx context.Context, lister entryLister, cfg *config.Config, startArg, endArg string, today time.Time) (report.Report, error) {
	rng, notices, err := flex.ResolveRange(startArg, endArg, today)
	if err != nil {
		return report.Report{}, err
	}
	if cfg.HoursPerDayDefaulted() {
		notices = append(notices, fmt.Sprintf("%s is not set, using the default of %s hours per day.",
			config.EnvHoursPerDay, report.Hours(cfg.Balance.HoursPerDay)))
	}

	logger.Debug("Resolved date range",
		zap.String("start", rng.Start.Format(flex.DateLayout)),
		zap.String("end", rng.End.Format(flex.DateLayout)),
		zap.Float64("hours_per_day", cfg.Balance.HoursPerDay),
	)

	entries, err := lister.ListTimeEntries(ctx, rng.Start, rng.End)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	balance, err := flex.Compute(rng, entries, cfg.Balance.HoursPerDay)
	if err != nil {
		return report.Report{}, err
	}
	if !balance.CountedEnd.Equal(rng.End) {
		logger.Debug("Counting end date as a working day, time was logged on it",
			zap.String("end", rng.End.Format(flex.DateLayout)))
	}

	return report.Report{Balance: balance, Notices: notices}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/flexbalance/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose/debug output")

	rootCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"output the balance as JSON")

	// Version template
	rootCmd.SetVersionTemplate(`{{printf "flexbalance %s\n" .Version}}`)
}

// GetConfig returns the loaded configuration.
// Returns nil if config hasn't been loaded yet.
func GetConfig() *config.Config {
	return cfg
}

// SetConfig sets the configuration (useful for testing).
func SetConfig(c *config.Config) {
	cfg = c
}
