package grpcext

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/session"
)

type holderKey string

// sessionHolder carries the maker into the handler context and caches the
// session once a handler asks for it
type sessionHolder struct {
	mu    sync.Mutex
	maker *session.Maker
	tx    *gorm.DB
}

func (h *sessionHolder) get(ctx context.Context) *gorm.DB {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tx == nil {
		h.tx = h.maker.Session(ctx)
	}
	return h.tx
}

// take returns the cached session and clears it, so it is resolved once
func (h *sessionHolder) take() *gorm.DB {
	h.mu.Lock()
	defer h.mu.Unlock()

	tx := h.tx
	h.tx = nil
	return tx
}

// Session returns the request session under the default session key, creating
// it on first access. Returns nil when no session interceptor is installed
func Session(ctx context.Context) *gorm.DB {
	return SessionByKey(ctx, config.DefaultSessionKey)
}

// SessionByKey returns the request session stored under key, creating it on
// first access. Every access within one call returns the same session
func SessionByKey(ctx context.Context, key string) *gorm.DB {
	h, ok := ctx.Value(holderKey(key)).(*sessionHolder)
	if !ok {
		return nil
	}
	return h.get(ctx)
}
