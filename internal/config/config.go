package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned when a server database is selected without a URL
var ErrMissingDatabaseURL = errors.New("database url is required for postgres and mysql")

// Config holds application configuration
type Config struct {
	Env                   string   `mapstructure:"env"`
	Database              Database `mapstructure:"database"`
	DisplayUTCOffsetHours int      `mapstructure:"display_utc_offset_hours"`
	Export                Export   `mapstructure:"export"`
	Streak                Streak   `mapstructure:"streak"`
	Backup                Backup   `mapstructure:"backup"`
}

// Database selects the store backend
type Database struct {
	Type string `mapstructure:"type"` // sqlite, postgres or mysql
	Path string `mapstructure:"path"` // sqlite file, ":memory:" allowed
	URL  string `mapstructure:"url"`  // postgres/mysql connection URL
}

// Export holds defaults for export commands
type Export struct {
	Dir string `mapstructure:"dir"`
}

// Streak configures the activity window
type Streak struct {
	WindowDays int `mapstructure:"window_days"`
}

// Backup configures the scheduled backup job
type Backup struct {
	Every time.Duration `mapstructure:"every"`
}

// Load reads configuration from an optional .env file, an optional config.yaml and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("database.type", "DATABASE_TYPE")
	_ = v.BindEnv("database.path", "DB_PATH")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("export.dir", "EXPORT_DIR")
	_ = v.BindEnv("display_utc_offset_hours", "DISPLAY_UTC_OFFSET_HOURS")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./data/mastery-learning.db")
	v.SetDefault("database.url", "")
	v.SetDefault("display_utc_offset_hours", 7)
	v.SetDefault("export.dir", ".")
	v.SetDefault("streak.window_days", 365)
	v.SetDefault("backup.every", "24h")
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Type) {
	case "sqlite", "sqlite3", "":
	case "postgres", "postgresql", "mysql":
		if c.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.DisplayUTCOffsetHours < -12 || c.DisplayUTCOffsetHours > 14 {
		return fmt.Errorf("display_utc_offset_hours out of range: %d", c.DisplayUTCOffsetHours)
	}
	if c.Streak.WindowDays <= 0 {
		return fmt.Errorf("streak.window_days must be positive")
	}
	return nil
}

// DisplayLocation returns the fixed zone used to render timestamps and derive calendar dates
func (c *Config) DisplayLocation() *time.Location {
	return DisplayZone(c.DisplayUTCOffsetHours)
}

// DisplayZone builds a fixed zone named after its offset, e.g. "GMT+7"
func DisplayZone(offsetHours int) *time.Location {
	name := fmt.Sprintf("GMT%+d", offsetHours)
	if offsetHours == 0 {
		name = "GMT"
	}
	return time.FixedZone(name, offsetHours*3600)
}
