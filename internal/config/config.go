// Package config provides configuration structures and loading for flexbalance.
package config

import (
	"errors"
	"time"
)

// ErrInvalidConfig is wrapped by every validation and parse failure in this package.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the main configuration structure for flexbalance.
type Config struct {
	General GeneralConfig `yaml:"general"`
	Harvest HarvestConfig `yaml:"harvest"`
	Balance BalanceConfig `yaml:"balance"`

	// hoursPerDayDefaulted is set when neither HOURS_PER_DAY nor the config
	// file supplied a value.
	hoursPerDayDefaulted bool
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	// LogLevel sets the logging verbosity: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// HarvestConfig holds the Harvest API v2 credentials and client settings.
type HarvestConfig struct {
	AccountID   string `yaml:"account_id"`
	AccessToken string `yaml:"access_token"`
	// BaseURL defaults to https://api.harvestapp.com
	BaseURL string `yaml:"base_url"`
	// UserAgent is required by Harvest to identify the integration
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// BalanceConfig controls how expected hours are computed.
type BalanceConfig struct {
	// HoursPerDay is the expected length of a working day (Mon-Fri)
	HoursPerDay float64 `yaml:"hours_per_day"`
}

// HoursPerDayDefaulted reports whether HoursPerDay fell back to the built-in default.
func (c *Config) HoursPerDayDefaulted() bool {
	return c.hoursPerDayDefaulted
}

// Redacted returns a copy of the configuration with secrets masked.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Harvest.AccessToken != "" {
		cp.Harvest.AccessToken = "********"
	}
	return &cp
}
