package ginext

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/filters"
	"github.com/Harshal6927/advanced-alchemy/logger"
	"github.com/Harshal6927/advanced-alchemy/repository"
	"github.com/Harshal6927/advanced-alchemy/session"
)

// Session returns the request session under the default session key, creating
// it on first access. Returns nil when no plugin middleware is installed
func Session(c *gin.Context) *gorm.DB {
	return SessionByKey(c, config.DefaultSessionKey)
}

// SessionByKey returns the request session stored under key, creating it on
// first access. Every access within one request returns the same session
func SessionByKey(c *gin.Context, key string) *gorm.DB {
	if v, ok := c.Get(key); ok {
		tx, _ := v.(*gorm.DB)
		return tx
	}

	v, ok := c.Get(makerKey(key))
	if !ok {
		return nil
	}
	maker, ok := v.(*session.Maker)
	if !ok {
		return nil
	}

	tx := maker.Session(c.Request.Context())
	c.Set(key, tx)
	return tx
}

// Engine returns the engine under the default engine key, or nil when no
// plugin middleware is installed
func Engine(c *gin.Context) *gorm.DB {
	return EngineByKey(c, config.DefaultEngineKey)
}

// EngineByKey returns the engine stored under key
func EngineByKey(c *gin.Context, key string) *gorm.DB {
	v, ok := c.Get(key)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// BoundFilters returns the filter list stored by the filter middleware, or
// nil when none ran
func BoundFilters(c *gin.Context) []filters.StatementFilter {
	v, ok := c.Get(DefaultFiltersKey)
	if !ok {
		return nil
	}
	fs, ok := v.([]filters.StatementFilter)
	if !ok {
		return nil
	}
	return fs
}

// Error attaches err to the context and aborts the handler chain, leaving the
// response to the error handler middleware
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// RequestRepository creates a repository bound to the request session under
// the default session key
func RequestRepository[T any](c *gin.Context, log logger.Logger) (*repository.Repository[T], error) {
	return RequestRepositoryByKey[T](c, config.DefaultSessionKey, log)
}

// RequestRepositoryByKey creates a repository bound to the request session
// stored under key
func RequestRepositoryByKey[T any](c *gin.Context, key string, log logger.Logger) (*repository.Repository[T], error) {
	tx := SessionByKey(c, key)
	if tx == nil {
		return nil, fmt.Errorf("%w: no session middleware registered for key %q", dberrors.ErrImproperConfiguration, key)
	}
	return repository.New[T](tx, log)
}
