// Package session keeps one cart ledger per browser session in memory.
// Nothing here survives a restart.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"techstore/ledger"
	"techstore/models"
)

// Session is a point-in-time copy; ExpiresAt moves forward on every Touch
// while Ledger is shared by all copies.
type Session struct {
	ID        string
	Ledger    *ledger.Ledger
	CreatedAt time.Time
	ExpiresAt time.Time
}

// EndHook runs after a session has been removed from the store.
type EndHook func(sessionID string)

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	hooks    []EndHook

	pricing ledger.Pricing
	seed    func() []models.LineItem
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

type Option func(*Store)

// WithSeed makes every new session start with the line items seed returns.
func WithSeed(seed func() []models.LineItem) Option {
	return func(s *Store) { s.seed = seed }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(pricing ledger.Pricing, ttl time.Duration, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		pricing:  pricing,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) OnEnd(hook EndHook) {
	s.mu.Lock()
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()
}

func (s *Store) Create() *Session {
	var seed []models.LineItem
	if s.seed != nil {
		seed = s.seed()
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Ledger:    ledger.New(s.pricing, seed...),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	out := *sess
	s.mu.Unlock()

	s.logger.Debug("Session created", zap.String("session_id", sess.ID))
	return &out
}

// Get returns a live session without extending it. Expired sessions are
// ended on the spot.
func (s *Store) Get(id string) (*Session, bool) {
	return s.lookup(id, false)
}

// Touch is Get for a request made on behalf of the session: the expiry slides
// to a full TTL from now.
func (s *Store) Touch(id string) (*Session, bool) {
	return s.lookup(id, true)
}

func (s *Store) lookup(id string, slide bool) (*Session, bool) {
	now := s.now()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	if !now.Before(sess.ExpiresAt) {
		s.mu.Unlock()
		s.End(id)
		return nil, false
	}
	if slide {
		sess.ExpiresAt = now.Add(s.ttl)
	}
	out := *sess
	s.mu.Unlock()

	return &out, true
}

// End discards the session and its cart. Ending an unknown session is a no-op.
func (s *Store) End(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	hooks := append([]EndHook(nil), s.hooks...)
	s.mu.Unlock()

	if !ok {
		return false
	}
	for _, hook := range hooks {
		hook(id)
	}
	s.logger.Debug("Session ended", zap.String("session_id", id))
	return true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep ends every expired session and reports how many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	var expired []string
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.End(id)
	}
	return len(expired)
}

// Run sweeps on every tick until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("Expired sessions swept", zap.Int("count", n))
			}
		}
	}
}
