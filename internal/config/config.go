package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the kiosk configuration
type Config struct {
	Kiosk     KioskConfig     `yaml:"kiosk"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Admin     AdminConfig     `yaml:"admin"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// KioskConfig contains borrowing policy settings
type KioskConfig struct {
	LoanLimit         int     `yaml:"loan_limit"`
	FineLimit         float64 `yaml:"fine_limit"`
	LoanPeriodDays    int     `yaml:"loan_period_days"`
	OverdueFinePerDay float64 `yaml:"overdue_fine_per_day"`
}

// StorageConfig selects the repository backend
type StorageConfig struct {
	Type string `yaml:"type"` // "memory" or "postgres"
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// AdminConfig contains the local maintenance HTTP server settings
type AdminConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkOverdueLoans string `yaml:"mark_overdue_loans"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}

	// Admin server
	if val := os.Getenv("ADMIN_HOST"); val != "" {
		c.Admin.Host = val
	}
	if val := os.Getenv("ADMIN_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Admin.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Kiosk policy defaults
	if c.Kiosk.LoanLimit == 0 {
		c.Kiosk.LoanLimit = 5
	}
	if c.Kiosk.LoanLimit < 1 {
		return fmt.Errorf("invalid loan limit: %d", c.Kiosk.LoanLimit)
	}
	if c.Kiosk.FineLimit == 0 {
		c.Kiosk.FineLimit = 20.0
	}
	if c.Kiosk.FineLimit < 0 {
		return fmt.Errorf("invalid fine limit: %.2f", c.Kiosk.FineLimit)
	}
	if c.Kiosk.LoanPeriodDays == 0 {
		c.Kiosk.LoanPeriodDays = 14
	}
	if c.Kiosk.LoanPeriodDays < 1 {
		return fmt.Errorf("invalid loan period: %d days", c.Kiosk.LoanPeriodDays)
	}
	if c.Kiosk.OverdueFinePerDay < 0 {
		return fmt.Errorf("invalid overdue fine per day: %.2f", c.Kiosk.OverdueFinePerDay)
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = "memory"
	}
	if c.Storage.Type != "memory" && c.Storage.Type != "postgres" {
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	// Database validation (only when the postgres backend is selected)
	if c.Storage.Type == "postgres" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// Admin server validation
	if c.Admin.Host == "" {
		c.Admin.Host = "127.0.0.1"
	}
	if c.Admin.Port == 0 {
		c.Admin.Port = 8089
	}
	if c.Admin.Port < 0 || c.Admin.Port > 65535 {
		return fmt.Errorf("invalid admin port: %d", c.Admin.Port)
	}

	// Scheduler defaults
	if c.Scheduler.MarkOverdueLoans == "" {
		c.Scheduler.MarkOverdueLoans = "0 0 2 * * *" // 2 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetAdminAddress returns the maintenance HTTP server address
func (c *Config) GetAdminAddress() string {
	return fmt.Sprintf("%s:%d", c.Admin.Host, c.Admin.Port)
}
