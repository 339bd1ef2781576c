package session

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/internal/testutil"
)

// SetupTestDB opens an isolated in-memory engine with automatic cleanup and
// migrates the given models. Each call gets its own named in-memory database
// so pooled connections share state without leaking across tests
func SetupTestDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	settings := &config.DatabaseSettings{
		Type: config.DBTypeSQLite,
		DSN:  fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}

	db, err := Open(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = Close(db)
	})

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...), "Failed to migrate schema")
	}

	return db
}
