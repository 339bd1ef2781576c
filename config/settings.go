package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// AppSettings aggregates the settings of a single database binding together
// with the server port and logger configuration
type AppSettings struct {
	Port     string            `mapstructure:"port" env:"PORT"`
	Database *DatabaseSettings `mapstructure:"database"`
	Session  *SessionSettings  `mapstructure:"session"`
	Logger   *LoggerSettings   `mapstructure:"logger"`
}

// NewAppSettings returns application settings populated with defaults
func NewAppSettings() *AppSettings {
	return &AppSettings{
		Port:     "8080",
		Database: NewDatabaseSettings(),
		Session:  NewSessionSettings(),
		Logger:   NewLoggerSettings(),
	}
}

// Validate checks every settings section
func (s *AppSettings) Validate() error {
	if s.Database == nil || s.Session == nil || s.Logger == nil {
		return fmt.Errorf("settings sections must not be nil")
	}
	if s.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if err := s.Database.Validate(); err != nil {
		return err
	}
	if err := s.Session.Validate(); err != nil {
		return err
	}
	if err := s.Logger.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads application settings from a YAML file at path. Sections missing
// from the file keep their defaults
func Load(path string) (*AppSettings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	settings := NewAppSettings()
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// FromEnv loads application settings from environment variables. Variables
// that are not set keep their defaults
func FromEnv() (*AppSettings, error) {
	settings := NewAppSettings()
	if err := env.Parse(settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings from environment: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
