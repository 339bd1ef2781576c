// Package testutil provides shared helpers for package tests.
package testutil

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/logger"
)

// SetupTestLogger sets up a logger for testing purposes.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	log, err := logger.New(&config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	})
	require.NoError(t, err)

	return log
}

// DecodeJSON decodes a JSON response body into out, failing the test on
// malformed payloads.
func DecodeJSON(t *testing.T, body io.Reader, out any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(body).Decode(out))
}
