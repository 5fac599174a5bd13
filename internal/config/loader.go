package config

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath  = "FLEXBALANCE_CONFIG"
	EnvAccessToken = "HARVEST_ACCESS_TOKEN"
	EnvAccountID   = "HARVEST_ACCOUNT_ID"
	EnvBaseURL     = "HARVEST_BASE_URL"
	EnvHoursPerDay = "HOURS_PER_DAY"
)

// DefaultConfigPaths returns the search order for configuration files.
func DefaultConfigPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "flexbalance", "config.yaml"))
	}
	return append(paths,
		"./flexbalance.yaml",
		"./flexbalance.yml",
	)
}

// Load builds the configuration from an optional YAML file and the
// environment. If path is empty, FLEXBALANCE_CONFIG and then
// DefaultConfigPaths are tried; finding no file is not an error.
// Environment variables override values from the file.
func Load(path string) (*Config, error) {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config file %s: %v", ErrInvalidConfig, configPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath determines which config file to use.
// Priority: explicit path > FLEXBALANCE_CONFIG env > default paths > none
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file not found: %s", path)
		}
		return path, nil
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("config file from %s not found: %s", EnvConfigPath, envPath)
		}
		return envPath, nil
	}

	for _, p := range DefaultConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnv(EnvAccessToken); ok {
		cfg.Harvest.AccessToken = v
	}
	if v, ok := lookupEnv(EnvAccountID); ok {
		cfg.Harvest.AccountID = v
	}
	if v, ok := lookupEnv(EnvBaseURL); ok {
		cfg.Harvest.BaseURL = v
	}
	if v, ok := lookupEnv(EnvHoursPerDay); ok {
		hours, err := ParseHoursPerDay(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHoursPerDay, err)
		}
		cfg.Balance.HoursPerDay = hours
	}
	return nil
}

// lookupEnv treats a variable that is set but blank as unset.
func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// ParseHoursPerDay parses a working day length, which must be a positive
// finite number.
func ParseHoursPerDay(s string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: hours per day %q is not a number", ErrInvalidConfig, s)
	}
	if err := checkHoursPerDay(hours); err != nil {
		return 0, err
	}
	return hours, nil
}

func checkHoursPerDay(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return fmt.Errorf("%w: hours per day must be a positive number, got %v", ErrInvalidConfig, hours)
	}
	return nil
}

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.General.LogLevel] {
		return fmt.Errorf("%w: invalid log_level %q (must be debug, info, warn, or error)",
			ErrInvalidConfig, cfg.General.LogLevel)
	}

	u, err := url.Parse(cfg.Harvest.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: invalid harvest base_url %q", ErrInvalidConfig, cfg.Harvest.BaseURL)
	}

	if cfg.Harvest.Timeout < 0 {
		return fmt.Errorf("%w: harvest timeout must not be negative", ErrInvalidConfig)
	}

	return checkHoursPerDay(cfg.Balance.HoursPerDay)
}

// RequireCredentials checks that the Harvest account id and access token are set.
func (c *Config) RequireCredentials() error {
	if c.Harvest.AccessToken == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, EnvAccessToken)
	}
	if c.Harvest.AccountID == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, EnvAccountID)
	}
	return nil
}

// WriteExample writes an example configuration to the given path.
func WriteExample(path string) error {
	data, err := Example()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Contains credentials once filled in.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}

	return nil
}

// Example renders a default configuration with placeholder credentials as YAML.
func Example() ([]byte, error) {
	cfg := NewDefault()
	cfg.Harvest.AccountID = "123456"
	cfg.Harvest.AccessToken = "your-personal-access-token"

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal example config: %w", err)
	}
	return data, nil
}
