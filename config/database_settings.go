package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Database driver constants
const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
	DBTypeMySQL    = "mysql"
)

// DatabaseSettings holds configuration settings for a database engine,
// including the driver type, connection string and pool sizing
type DatabaseSettings struct {
	Type            string        `mapstructure:"type" env:"DB_TYPE" validate:"required,oneof=postgres sqlite mysql"`
	DSN             string        `mapstructure:"dsn" env:"DB_DSN" validate:"required"`
	DBName          string        `mapstructure:"db_name" env:"DB_NAME"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" env:"DB_MAX_OPEN_CONNS" validate:"omitempty,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" validate:"omitempty,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold" env:"DB_SLOW_THRESHOLD"`
	PrepareStmt     bool          `mapstructure:"prepare_stmt" env:"DB_PREPARE_STMT"`
	SkipDefaultTx   bool          `mapstructure:"skip_default_tx" env:"DB_SKIP_DEFAULT_TX"`
	RawErrors       bool          `mapstructure:"raw_errors" env:"DB_RAW_ERRORS"`
}

// NewDatabaseSettings returns database settings with an in-memory SQLite engine.
// The shared cache keeps every connection of the pool on the same database
func NewDatabaseSettings() *DatabaseSettings {
	return &DatabaseSettings{
		Type: DBTypeSQLite,
		DSN:  "file::memory:?cache=shared",
	}
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	if s.Type == DBTypePostgres && s.DBName == "" {
		return fmt.Errorf("db name is required for postgres")
	}
	if s.MaxIdleConns > 0 && s.MaxOpenConns > 0 && s.MaxIdleConns > s.MaxOpenConns {
		return fmt.Errorf("max idle conns must not exceed max open conns")
	}

	return nil
}
