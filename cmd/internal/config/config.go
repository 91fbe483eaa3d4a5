package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	DBDriver          string   `mapstructure:"DB_DRIVER"`
	DBDSN             string   `mapstructure:"DB_DSN"`
	DBMaxOpenConns    int      `mapstructure:"DB_MAX_OPEN_CONNS"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	StrictTransitions bool     `mapstructure:"STRICT_TRANSITIONS"`
	Timezone          string   `mapstructure:"TIMEZONE"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DB_DRIVER", "DB_DSN", "DB_MAX_OPEN_CONNS",
	"CORS_ORIGINS", "STRICT_TRANSITIONS", "TIMEZONE",
}

// Load reads the process environment, after merging in a .env file from the
// working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "6060")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_DSN", "./database.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("STRICT_TRANSITIONS", false)
	v.SetDefault("TIMEZONE", "Local")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration can be used to start the server.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when DB_DRIVER is %q", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %q, %q or %q, got %q", DriverSQLite, DriverMySQL, DriverMemory, c.DBDriver)
	}

	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", c.DBMaxOpenConns)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the time zone used to decide which calendar day is "today".
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
