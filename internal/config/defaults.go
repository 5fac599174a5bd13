package config

import (
	"time"

	"github.com/lan-dot-party/flexbalance/internal/flex"
)

// Default values for configuration
const (
	DefaultLogLevel       = "warn"
	DefaultHarvestBaseURL = "https://api.harvestapp.com"
	DefaultUserAgent      = "flexbalance (https://github.com/lan-dot-party/flexbalance)"
	DefaultTimeout        = 30 * time.Second
	DefaultHoursPerDay    = flex.DefaultHoursPerDay
)

// NewDefault creates a new Config with all default values applied.
func NewDefault() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: DefaultLogLevel,
		},
		Harvest: HarvestConfig{
			BaseURL:   DefaultHarvestBaseURL,
			UserAgent: DefaultUserAgent,
			Timeout:   DefaultTimeout,
		},
		Balance: BalanceConfig{
			HoursPerDay: DefaultHoursPerDay,
		},
	}
}

// ApplyDefaults fills in default values for any unset configuration options.
func ApplyDefaults(cfg *Config) {
	if cfg.General.LogLevel == "" {
		cfg.General.LogLevel = DefaultLogLevel
	}

	if cfg.Harvest.BaseURL == "" {
		cfg.Harvest.BaseURL = DefaultHarvestBaseURL
	}
	if cfg.Harvest.UserAgent == "" {
		cfg.Harvest.UserAgent = DefaultUserAgent
	}
	if cfg.Harvest.Timeout == 0 {
		cfg.Harvest.Timeout = DefaultTimeout
	}

	if cfg.Balance.HoursPerDay == 0 {
		cfg.Balance.HoursPerDay = DefaultHoursPerDay
		cfg.hoursPerDayDefaulted = true
	}
}
