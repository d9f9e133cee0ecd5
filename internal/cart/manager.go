package cart

import (
	"context"
	"log"
	"sync"

	"storefront/internal/repository/kv"
)

// maxStores caps the per-session store cache. Session ids arrive from
// clients, so an unbounded cache would let anyone grow the map at will.
const maxStores = 1024

// Manager hands out one Store per session. Stores are created lazily and
// rehydrated from the slot keyed by the session id, so a returning session
// gets its saved cart back. The cache is bounded: evicting a store loses
// only the ephemeral isOpen flag, the cart itself lives in the slot.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	slot      kv.Repository
	keyPrefix string
	logger    *log.Logger
	notify    Notifier
}

func NewManager(slot kv.Repository, keyPrefix string, logger *log.Logger) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		slot:      slot,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// SetNotifier applies to stores created after the call.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = n
}

// ForSession returns the session's store, creating and rehydrating it on
// first use.
func (m *Manager) ForSession(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	if len(m.stores) >= maxStores {
		m.evictOne()
	}

	opts := []Option{}
	if m.logger != nil {
		opts = append(opts, WithLogger(m.logger))
	}
	if m.notify != nil {
		opts = append(opts, WithNotifier(m.notify))
	}
	store := NewStore(ctx, m.slot, m.keyPrefix+":"+sessionID, opts...)
	m.stores[sessionID] = store
	return store
}

// evictOne drops an arbitrary cached store. Callers hold m.mu.
func (m *Manager) evictOne() {
	for id := range m.stores {
		delete(m.stores, id)
		return
	}
}
