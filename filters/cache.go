package filters

import "sync"

var binderCache = struct {
	sync.RWMutex
	binders map[string]*Binder
}{binders: make(map[string]*Binder)}

// For returns the compiled binder for cfg, building and caching it on first
// use. Configs with equal settings share one binder
func For(cfg Config) (*Binder, error) {
	key := cfg.fingerprint()

	binderCache.RLock()
	b, ok := binderCache.binders[key]
	binderCache.RUnlock()
	if ok {
		return b, nil
	}

	b, err := NewBinder(cfg)
	if err != nil {
		return nil, err
	}

	binderCache.Lock()
	if cached, ok := binderCache.binders[key]; ok {
		b = cached
	} else {
		binderCache.binders[key] = b
	}
	binderCache.Unlock()

	return b, nil
}
