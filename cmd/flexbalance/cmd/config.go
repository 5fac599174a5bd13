package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lan-dot-party/flexbalance/internal/config"
	"github.com/lan-dot-party/flexbalance/internal/report"
)

var configInitOutput string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Commands for managing flexbalance configuration.`,
}

// configValidateCmd validates the configuration
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Check the configuration file and environment for errors,
including the Harvest credentials.

Examples:
  flexbalance config validate
  flexbalance config validate --config /path/to/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		if err := cfg.RequireCredentials(); err != nil {
			return err
		}

		hoursSource := "configured"
		if cfg.HoursPerDayDefaulted() {
			hoursSource = "default"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✅ Configuration is valid!")
		fmt.Fprintf(out, "   Harvest: account %s at %s\n", cfg.Harvest.AccountID, cfg.Harvest.BaseURL)
		fmt.Fprintf(out, "   Hours per day: %s (%s)\n", report.Hours(cfg.Balance.HoursPerDay), hoursSource)
		fmt.Fprintf(out, "   Log level: %s\n", cfg.General.LogLevel)

		return nil
	},
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Long: `Display the current configuration with all defaults and environment
overrides applied. The access token is masked.

Examples:
  flexbalance config show`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}

		data, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "# Current flexbalance Configuration")
		fmt.Fprintln(out, "# (with defaults applied)")
		fmt.Fprintln(out)
		fmt.Fprint(out, string(data))

		return nil
	},
}

// configInitCmd generates an example configuration
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate an example configuration",
	Long: `Generate an example configuration file.

Examples:
  # Print example config to stdout
  flexbalance config init

  # Save example config to a file
  flexbalance config init --output ~/.config/flexbalance/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configInitOutput != "" {
			if err := config.WriteExample(configInitOutput); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", configInitOutput)
			return nil
		}

		data, err := config.Example()
		if err != nil {
			return fmt.Errorf("failed to generate config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "# flexbalance Configuration")
		fmt.Fprintln(out, "# Generated from defaults")
		fmt.Fprintln(out)
		fmt.Fprint(out, string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "",
		"write the example to this file instead of stdout")
}
