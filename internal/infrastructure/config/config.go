package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Store  StoreConfig
	Log    LogConfig
	Policy PolicyConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// StoreConfig holds document store connection settings
type StoreConfig struct {
	Driver string // sqlite
	DSN    string // file path or :memory:
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// PolicyConfig holds tunable business policy knobs
type PolicyConfig struct {
	GateErrorThreshold float64 // minimum task/document completion ratio before a stage advance is blocked
	GateWarnThreshold  float64 // ratio below which a stage advance carries a warning
	DueDaysBooking     int
	DueDaysHalfPaid    int
	DueDaysPossession  int
	DueDaysFullPayment int
	DueDaysDefault     int
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with DEALDESK_ prefix (e.g., DEALDESK_STORE_DSN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("DEALDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Store: StoreConfig{
			Driver: v.GetString("store.driver"),
			DSN:    v.GetString("store.dsn"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Policy: PolicyConfig{
			GateErrorThreshold: v.GetFloat64("policy.gate_error_threshold"),
			GateWarnThreshold:  v.GetFloat64("policy.gate_warn_threshold"),
			DueDaysBooking:     v.GetInt("policy.due_days_booking"),
			DueDaysHalfPaid:    v.GetInt("policy.due_days_half_paid"),
			DueDaysPossession:  v.GetInt("policy.due_days_possession"),
			DueDaysFullPayment: v.GetInt("policy.due_days_full_payment"),
			DueDaysDefault:     v.GetInt("policy.due_days_default"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dealdesk-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "sqlite"
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "dealdesk.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Policy.GateErrorThreshold == 0 {
		cfg.Policy.GateErrorThreshold = 0.5
	}
	if cfg.Policy.GateWarnThreshold == 0 {
		cfg.Policy.GateWarnThreshold = 0.8
	}
	if cfg.Policy.DueDaysBooking == 0 {
		cfg.Policy.DueDaysBooking = 7
	}
	if cfg.Policy.DueDaysHalfPaid == 0 {
		cfg.Policy.DueDaysHalfPaid = 14
	}
	if cfg.Policy.DueDaysPossession == 0 {
		cfg.Policy.DueDaysPossession = 30
	}
	if cfg.Policy.DueDaysFullPayment == 0 {
		cfg.Policy.DueDaysFullPayment = 7
	}
	if cfg.Policy.DueDaysDefault == 0 {
		cfg.Policy.DueDaysDefault = 30
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	if c.Store.Driver != "sqlite" {
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
	if c.Policy.GateErrorThreshold < 0 || c.Policy.GateErrorThreshold > 1 {
		return fmt.Errorf("gate_error_threshold must be within [0,1], got %v", c.Policy.GateErrorThreshold)
	}
	if c.Policy.GateWarnThreshold < c.Policy.GateErrorThreshold || c.Policy.GateWarnThreshold > 1 {
		return fmt.Errorf("gate_warn_threshold must be within [%v,1], got %v",
			c.Policy.GateErrorThreshold, c.Policy.GateWarnThreshold)
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
