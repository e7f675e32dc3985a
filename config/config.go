// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/payperiod-ledger/generic"
)

type Config struct {
	App     AppConfig
	Payroll PayrollConfig
}

// AppConfig holds server settings.
type AppConfig struct {
	Port            int
	LogLevel        string
	CORSOrigins     []string
	AdvanceInterval time.Duration
}

// PayrollConfig holds ledger settings. AnchorDate and PeriodLength stay raw
// strings so a bad value degrades the ledger instead of stopping the process.
type PayrollConfig struct {
	AnchorDate   string
	PeriodLength string
	RosterPath   string
}

const (
	DefaultPort            = 8080
	DefaultAnchorDate      = "05/27/2024"
	DefaultAdvanceInterval = time.Hour
)

// Load reads the given .env files (".env" when none are given; missing files
// are skipped), then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}

	port, err := strconv.Atoi(getEnv("PAYROLL_PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_PORT: %w", err)
	}
	interval, err := time.ParseDuration(getEnv("PAYROLL_ADVANCE_INTERVAL", DefaultAdvanceInterval.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_ADVANCE_INTERVAL: %w", err)
	}
	cfg.App = AppConfig{
		Port:            port,
		LogLevel:        getEnv("PAYROLL_LOG_LEVEL", "info"),
		CORSOrigins:     getEnvSlice("PAYROLL_CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		AdvanceInterval: interval,
	}

	cfg.Payroll = PayrollConfig{
		AnchorDate:   getEnv("PAYROLL_ANCHOR", DefaultAnchorDate),
		PeriodLength: getEnv("PAYROLL_PERIOD_LENGTH", strconv.Itoa(generic.DefaultPayPeriodLength)),
		RosterPath:   getEnv("PAYROLL_ROSTER", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that must be right for the process to start.
// Payroll settings are checked by the ledger itself.
func (c *Config) Validate() error {
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("PAYROLL_PORT out of range: %d", c.App.Port)
	}
	if c.App.AdvanceInterval < 0 {
		return fmt.Errorf("PAYROLL_ADVANCE_INTERVAL must not be negative")
	}
	return nil
}

// PayPeriod parses the anchor and length and builds the window config. On
// error the fields that did parse are still set.
func (p PayrollConfig) PayPeriod() (generic.PayPeriodConfig, error) {
	var pc generic.PayPeriodConfig
	length, lengthErr := strconv.Atoi(strings.TrimSpace(p.PeriodLength))
	if lengthErr == nil {
		pc.Length = length
	}
	anchor, err := generic.ParseDate(p.AnchorDate)
	if err != nil {
		return pc, fmt.Errorf("invalid PAYROLL_ANCHOR: %w", err)
	}
	pc.Anchor = anchor
	if lengthErr != nil {
		return pc, fmt.Errorf("%w: invalid PAYROLL_PERIOD_LENGTH %q", generic.ErrInvalidPeriod, p.PeriodLength)
	}
	return pc, pc.Validate()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
