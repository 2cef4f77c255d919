// Package config provides configuration utilities for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/expense-tracker/internal/common"
)

// Configuration keys.
const (
	KeyDatabasePath   = "database.path"
	KeyDatabaseDriver = "database.driver"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// Defaults.
const (
	DefaultDatabasePath   = "expenses.db"
	DefaultDatabaseDriver = "sqlite3"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"
	EnvPrefix             = "EXPENSES"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	DatabasePath   string
	DatabaseDriver string
	LogLevel       string
	LogFormat      string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyDatabaseDriver, DefaultDatabaseDriver)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// ReadIn wires up environment lookup and reads the config file into v.
// cfgFile takes precedence; otherwise config.yaml is searched for in
// $HOME/.config/expenses and the working directory. A missing file is fine.
// Variables from a .env file in the working directory are loaded first and
// never override the real environment.
func ReadIn(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "expenses"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// Load resolves Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		DatabaseDriver: v.GetString(KeyDatabaseDriver),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}

	if s.DatabasePath == "" {
		return Settings{}, fmt.Errorf("%w: %s must not be empty", common.ErrInvalidConfig, KeyDatabasePath)
	}

	switch s.DatabaseDriver {
	case "sqlite3", "sqlite":
	default:
		return Settings{}, fmt.Errorf("%w: %s must be sqlite3 or sqlite, got %q",
			common.ErrInvalidConfig, KeyDatabaseDriver, s.DatabaseDriver)
	}

	return s, nil
}
