package session

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/dberrors"
)

// Maker creates request-scoped sessions on an engine and resolves them once
// the response status is known.
//
// In the autocommit modes every session is a transaction: Finalize commits it
// when the status says the request succeeded and rolls it back otherwise. In
// manual mode sessions are plain pooled handles whose statements commit on
// their own, and transaction control stays with the handler.
type Maker struct {
	db       *gorm.DB
	settings *config.SessionSettings
}

// NewMaker creates a session maker for an engine
func NewMaker(db *gorm.DB, settings *config.SessionSettings) (*Maker, error) {
	if db == nil {
		return nil, fmt.Errorf("db must not be nil")
	}
	if settings == nil {
		settings = config.NewSessionSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Maker{db: db, settings: settings}, nil
}

// Engine returns the engine sessions are created on
func (m *Maker) Engine() *gorm.DB {
	return m.db
}

// Settings returns the session settings the maker was built with
func (m *Maker) Settings() *config.SessionSettings {
	return m.settings
}

// Autocommit reports whether sessions are resolved from the response status
func (m *Maker) Autocommit() bool {
	return m.settings.Autocommit()
}

// Session creates a session bound to ctx. In the autocommit modes the session
// is an open transaction whose Error field carries any begin failure
func (m *Maker) Session(ctx context.Context) *gorm.DB {
	if m.settings.Autocommit() {
		return m.db.WithContext(ctx).Begin()
	}
	return m.db.WithContext(ctx)
}

// Finalize resolves a session against the response status. Manual sessions
// need no resolution. Transactions commit when the status is in the commit
// range or the extra commit set and roll back otherwise, with the extra
// rollback set taking precedence
func (m *Maker) Finalize(tx *gorm.DB, status int) error {
	if !m.settings.Autocommit() {
		return nil
	}
	if tx.Error != nil {
		// The transaction never began, nothing to resolve
		return dberrors.Translate(tx.Error)
	}

	if m.shouldCommit(status) {
		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit session: %w", dberrors.Translate(err))
		}
		return nil
	}

	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back session: %w", dberrors.Translate(err))
	}
	return nil
}

func (m *Maker) shouldCommit(status int) bool {
	if slices.Contains(m.settings.ExtraRollbackStatuses, status) {
		return false
	}
	if slices.Contains(m.settings.ExtraCommitStatuses, status) {
		return true
	}

	upper := 300
	if m.settings.CommitMode == config.CommitModeAutocommitRedirect {
		upper = 400
	}
	return status >= 200 && status < upper
}
