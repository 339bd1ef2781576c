package config

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Commit mode constants
const (
	CommitModeManual             = "manual"
	CommitModeAutocommit         = "autocommit"
	CommitModeAutocommitRedirect = "autocommit_include_redirect"
)

// Default request context keys
const (
	DefaultSessionKey = "db_session"
	DefaultEngineKey  = "db_engine"
)

// SessionSettings holds configuration settings for request-scoped database
// sessions: how transactions are resolved once a response status is known,
// and under which context keys the session and engine are published
type SessionSettings struct {
	CommitMode            string `mapstructure:"commit_mode" env:"SESSION_COMMIT_MODE" validate:"required,oneof=manual autocommit autocommit_include_redirect"`
	SessionKey            string `mapstructure:"session_key" env:"SESSION_KEY" validate:"required"`
	EngineKey             string `mapstructure:"engine_key" env:"SESSION_ENGINE_KEY" validate:"required"`
	ExtraCommitStatuses   []int  `mapstructure:"extra_commit_statuses" env:"SESSION_EXTRA_COMMIT_STATUSES" validate:"omitempty,dive,min=100,max=599"`
	ExtraRollbackStatuses []int  `mapstructure:"extra_rollback_statuses" env:"SESSION_EXTRA_ROLLBACK_STATUSES" validate:"omitempty,dive,min=100,max=599"`
	CreateAll             bool   `mapstructure:"create_all" env:"SESSION_CREATE_ALL"`
}

// NewSessionSettings returns session settings with manual commit mode and
// the default context keys
func NewSessionSettings() *SessionSettings {
	return &SessionSettings{
		CommitMode: CommitModeManual,
		SessionKey: DefaultSessionKey,
		EngineKey:  DefaultEngineKey,
	}
}

// Validate checks that all fields in SessionSettings are valid
func (s *SessionSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SessionSettings: %w", err)
	}

	for _, status := range s.ExtraCommitStatuses {
		if slices.Contains(s.ExtraRollbackStatuses, status) {
			return fmt.Errorf("status %d cannot appear in both extra_commit_statuses and extra_rollback_statuses", status)
		}
	}

	return nil
}

// Autocommit reports whether the commit mode resolves transactions from the
// response status rather than leaving them to the handler
func (s *SessionSettings) Autocommit() bool {
	return s.CommitMode == CommitModeAutocommit || s.CommitMode == CommitModeAutocommitRedirect
}
