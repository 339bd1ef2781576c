package base

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// DefaultBindKey groups models that belong to the default engine binding
const DefaultBindKey = ""

// Registry collects models per engine binding so schema creation can find
// them at startup
type Registry struct {
	mu     sync.RWMutex
	models map[string][]any
}

// NewRegistry creates an empty model registry
func NewRegistry() *Registry {
	return &Registry{models: make(map[string][]any)}
}

// Register adds models under a bind key
func (r *Registry) Register(bindKey string, models ...any) {
	if len(models) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[bindKey] = append(r.models[bindKey], models...)
}

// Models returns a copy of the models registered under a bind key
func (r *Registry) Models(bindKey string) []any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registered := r.models[bindKey]
	out := make([]any, len(registered))
	copy(out, registered)
	return out
}

// CreateAll creates the tables for every model registered under a bind key
func (r *Registry) CreateAll(db *gorm.DB, bindKey string) error {
	models := r.Models(bindKey)
	if len(models) == 0 {
		return nil
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds models to the process-wide registry under the default bind key
func Register(models ...any) {
	defaultRegistry.Register(DefaultBindKey, models...)
}

// RegisterTo adds models to the process-wide registry under a bind key
func RegisterTo(bindKey string, models ...any) {
	defaultRegistry.Register(bindKey, models...)
}
