package ginext

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Harshal6927/advanced-alchemy/base"
	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/logger"
	"github.com/Harshal6927/advanced-alchemy/session"
)

// Config binds one database engine into the request lifecycle
type Config struct {
	Database config.DatabaseSettings
	Session  config.SessionSettings

	// BindKey selects which registered models CreateAll migrates for this
	// engine. The default bind key covers models registered without one
	BindKey string

	// Registry overrides the process-wide model registry
	Registry *base.Registry
}

func (c *Config) registry() *base.Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return base.DefaultRegistry()
}

// Plugin owns the database engines of an application and wires their request
// lifecycle into a gin router
type Plugin struct {
	log      logger.Logger
	configs  []*Config
	bindings []*binding
}

type binding struct {
	cfg   *Config
	maker *session.Maker
}

// New validates the configs and creates a plugin. Session and engine context
// keys must be unique across configs so bindings cannot shadow each other
func New(log logger.Logger, configs ...*Config) (*Plugin, error) {
	if log == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: at least one config is required", dberrors.ErrImproperConfiguration)
	}

	seen := make(map[string]struct{}, len(configs)*2)
	for _, cfg := range configs {
		if err := cfg.Database.Validate(); err != nil {
			return nil, err
		}
		if err := cfg.Session.Validate(); err != nil {
			return nil, err
		}
		for _, key := range []string{cfg.Session.SessionKey, cfg.Session.EngineKey} {
			if _, ok := seen[key]; ok {
				return nil, fmt.Errorf("%w: context key %q is used more than once", dberrors.ErrImproperConfiguration, key)
			}
			seen[key] = struct{}{}
		}
	}

	return &Plugin{log: log, configs: configs}, nil
}

// Start opens every engine, creates registered tables where configured and
// prepares the session makers
func (p *Plugin) Start(ctx context.Context) error {
	for _, cfg := range p.configs {
		db, err := session.Open(&cfg.Database, p.log)
		if err != nil {
			return fmt.Errorf("failed to open engine %q: %w", cfg.Session.EngineKey, err)
		}

		if cfg.Session.CreateAll {
			// Startup survives migration failures, the engine stays usable
			// for tables that already exist
			if err := cfg.registry().CreateAll(db.WithContext(ctx), cfg.BindKey); err != nil {
				p.log.Error("Failed to create tables for engine ", cfg.Session.EngineKey, ": ", err)
			} else {
				p.log.Info("Created tables for engine ", cfg.Session.EngineKey)
			}
		}

		maker, err := session.NewMaker(db, &cfg.Session)
		if err != nil {
			return err
		}
		p.bindings = append(p.bindings, &binding{cfg: cfg, maker: maker})
	}

	return nil
}

// Apply registers the session lifecycle middleware for every binding followed
// by the error handler middleware, so handler errors are turned into
// responses before the sessions are resolved. Call after Start
func (p *Plugin) Apply(r *gin.Engine) error {
	if len(p.bindings) == 0 {
		return fmt.Errorf("%w: plugin has not been started", dberrors.ErrImproperConfiguration)
	}

	for _, b := range p.bindings {
		r.Use(p.sessionMiddleware(b))
	}
	r.Use(ErrorHandler(p.log))
	return nil
}

// Engine returns the engine opened for the binding registered under the
// engine context key, or nil before Start
func (p *Plugin) Engine(engineKey string) *gorm.DB {
	for _, b := range p.bindings {
		if b.cfg.Session.EngineKey == engineKey {
			return b.maker.Engine()
		}
	}
	return nil
}

// Maker returns the session maker for the binding registered under the
// session context key, or nil before Start
func (p *Plugin) Maker(sessionKey string) *session.Maker {
	for _, b := range p.bindings {
		if b.cfg.Session.SessionKey == sessionKey {
			return b.maker
		}
	}
	return nil
}

// Shutdown closes every engine opened by Start
func (p *Plugin) Shutdown() error {
	var errs []error
	for _, b := range p.bindings {
		if err := session.Close(b.maker.Engine()); err != nil {
			errs = append(errs, err)
		}
	}
	p.bindings = nil
	return errors.Join(errs...)
}
