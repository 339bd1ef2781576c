package session

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/logger"
)

// Open creates a database engine based on settings.
// Supports both production and test environments
func Open(settings *config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var db *gorm.DB
	var err error

	switch settings.Type {
	case config.DBTypePostgres:
		db, err = connectPostgres(settings, log)
	case config.DBTypeSQLite:
		db, err = connectSQLite(settings, log)
	case config.DBTypeMySQL:
		db, err = connectMySQL(settings, log)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}

	if err != nil {
		return nil, err
	}

	if err := applyPoolSettings(db, settings); err != nil {
		return nil, err
	}

	return db, nil
}

func gormConfig(settings *config.DatabaseSettings, log logger.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError:         !settings.RawErrors,
		PrepareStmt:            settings.PrepareStmt,
		SkipDefaultTransaction: settings.SkipDefaultTx,
		Logger:                 newGormLogger(log, settings.SlowThreshold),
	}
}

// connectPostgres establishes a PostgreSQL connection with optional database creation
func connectPostgres(settings *config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	// Connect to the server first
	db, err := gorm.Open(postgres.Open(settings.DSN), gormConfig(settings, log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}

	// Try to create the database (idempotent - ignore if exists)
	_, _ = sqlDB.Exec(fmt.Sprintf("CREATE DATABASE %q", settings.DBName))

	// Close initial connection
	if err := sqlDB.Close(); err != nil {
		return nil, fmt.Errorf("failed to close initial DB connection: %w", err)
	}

	// Reconnect to the specific database
	dsn := fmt.Sprintf("%s dbname=%s", settings.DSN, settings.DBName)
	db, err = gorm.Open(postgres.Open(dsn), gormConfig(settings, log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database '%s': %w", settings.DBName, err)
	}

	return db, nil
}

// connectSQLite establishes a SQLite connection
func connectSQLite(settings *config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	// Use DSN if provided, otherwise default to in-memory
	dsn := settings.DSN
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(settings, log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	return db, nil
}

// connectMySQL establishes a MySQL connection
func connectMySQL(settings *config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(settings.DSN), gormConfig(settings, log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	return db, nil
}

func applyPoolSettings(db *gorm.DB, settings *config.DatabaseSettings) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if settings.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}
	if settings.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(settings.ConnMaxIdleTime)
	}
	return nil
}

// Close closes the engine's underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// DropDatabase drops a PostgreSQL database (test cleanup utility)
func DropDatabase(adminDSN string, dbName string, log logger.Logger) error {
	db, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer func() {
		if err := Close(db); err != nil {
			// Cleanup path, log and move on
			log.Warn(fmt.Sprintf("failed to close database connection: %v", err))
		}
	}()

	if err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %q", dbName)).Error; err != nil {
		return fmt.Errorf("failed to drop database '%s': %w", dbName, err)
	}

	return nil
}
