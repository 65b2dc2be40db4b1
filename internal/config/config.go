// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"

	"github.com/shopspring/decimal"
)

// Database driver names selectable via HESAB_DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Invoice  InvoiceConfig
	Log      LogConfig
	Seed     bool
}

// DatabaseConfig holds local store settings.
type DatabaseConfig struct {
	Driver string // sqlite (default) or postgres
	Path   string // sqlite file path; empty means the user data directory
	DSN    string // postgres connection string
	Debug  bool
}

// InvoiceConfig holds invoicing defaults used before company settings exist.
type InvoiceConfig struct {
	DefaultVATPercent decimal.Decimal
	CurrencySymbol    string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
	Output string // stdout, stderr, or a file path
}

// Load reads configuration from environment variables with local defaults.
// Fresh installs default to 9% VAT and the rial currency symbol.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: getEnv("HESAB_DB_DRIVER", DriverSQLite),
			Path:   getEnv("HESAB_DB_PATH", ""),
			DSN:    getEnv("DATABASE_DSN", ""),
			Debug:  getEnvBool("DB_DEBUG", false),
		},
		Invoice: InvoiceConfig{
			DefaultVATPercent: getEnvDecimal("HESAB_VAT_PERCENT", decimal.NewFromInt(9)),
			CurrencySymbol:    getEnv("HESAB_CURRENCY", "ریال"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stderr"),
		},
		Seed: getEnvBool("DB_SEED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultValue
	}
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
