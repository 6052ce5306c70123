package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/identity"
)

// Sessions keys live sessions by id.  Sessions idle for longer than the
// configured TTL are dropped by Sweep.
type Sessions struct {
	gate   identity.Gate
	engine *Engine
	idle   time.Duration
	log    *zap.Logger

	mu   sync.RWMutex
	byID map[string]*Session
}

// NewSessions builds a registry.  A non-positive idle TTL disables expiry.
func NewSessions(gate identity.Gate, engine *Engine, idle time.Duration, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{gate: gate, engine: engine, idle: idle, log: log, byID: make(map[string]*Session)}
}

// Open creates an anonymous session with a fresh id.
func (r *Sessions) Open() *Session {
	s := NewSession(uuid.NewString(), r.gate, r.engine)
	r.mu.Lock()
	r.byID[s.id] = s
	r.mu.Unlock()
	return s
}

// Get returns the session and marks it as used.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(r.engine.clock.Now())
	return s, nil
}

// Close logs the session out and forgets it.
func (r *Sessions) Close(id string) {
	r.mu.Lock()
	s, ok := r.byID[id]
	delete(r.byID, id)
	r.mu.Unlock()
	if ok {
		s.Logout()
	}
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Sweep drops idle sessions and returns how many were removed.
func (r *Sessions) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.engine.clock.Now().Add(-r.idle)
	r.mu.Lock()
	var stale []*Session
	for id, s := range r.byID {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(r.byID, id)
		}
	}
	r.mu.Unlock()
	for _, s := range stale {
		s.Logout()
	}
	return len(stale)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Sessions) RunSweeper(ctx context.Context, every time.Duration) {
	if every <= 0 || r.idle <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				r.log.Info("expired idle sessions", zap.Int("count", n), zap.Int("live", r.Len()))
			}
		}
	}
}
