package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pmportal/internal/model"
	"pmportal/internal/pubsub"
	"pmportal/internal/storage"
)

// Store holds the currently authenticated principal. Login checks the fixed
// credential table; there is no hashing, lockout or rate limiting, and a
// corrupt persisted session is silently treated as "not logged in".
type Store struct {
	logger      *slog.Logger
	storage     storage.Storage
	hub         *pubsub.Hub
	credentials []model.Credential

	mu        sync.RWMutex
	principal *model.Principal
	loading   bool
}

type Config struct {
	// Credentials overrides the fixed table; nil means the mock table.
	Credentials []model.Credential

	// LoadDelay simulates the original's artificial startup latency.
	LoadDelay time.Duration
}

func NewStore(ctx context.Context, logger *slog.Logger, store storage.Storage, cfg Config) *Store {
	creds := cfg.Credentials
	if creds == nil {
		creds = model.MockCredentials
	}

	s := &Store{
		logger:      logger,
		storage:     store,
		hub:         pubsub.NewHub(),
		credentials: creds,
		loading:     true,
	}

	if cfg.LoadDelay > 0 {
		time.Sleep(cfg.LoadDelay)
	}
	s.restore(ctx)

	return s
}

// restore reads a persisted principal back into memory. Anything that does
// not parse is discarded, including the stored copy.
func (s *Store) restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	data, err := s.storage.Load(ctx, storage.KeySession)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("failed to load persisted session", "error", err)
		}
		return
	}

	var principal model.Principal
	if err := json.Unmarshal(data, &principal); err != nil || principal.ID == "" {
		s.logger.Warn("discarding corrupt persisted session")
		if err := s.storage.Delete(ctx, storage.KeySession); err != nil {
			s.logger.Warn("failed to remove corrupt session", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.principal = &principal
	s.mu.Unlock()
}

// Login matches email+password against the credential table. On a match the
// principal (without password) becomes the current session and is persisted.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	for _, cred := range s.credentials {
		if cred.Email != email || cred.Password != password {
			continue
		}

		principal := cred.Principal

		data, err := json.Marshal(principal)
		if err != nil {
			s.logger.Error("failed to encode session", "error", err)
			return false
		}
		if err := s.storage.Save(ctx, storage.KeySession, data); err != nil {
			s.logger.Error("failed to persist session", "error", err)
			return false
		}

		s.mu.Lock()
		s.principal = &principal
		s.mu.Unlock()

		s.logger.Info("user logged in", "user_id", principal.ID, "role", principal.Role)
		s.hub.Publish()
		return true
	}

	return false
}

// Logout clears the session and its persisted copy.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.principal = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, storage.KeySession); err != nil {
		s.logger.Warn("failed to remove persisted session", "error", err)
	}
	s.hub.Publish()
}

// Current returns a copy of the authenticated principal, if any.
func (s *Store) Current() (model.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.principal == nil {
		return model.Principal{}, false
	}
	return *s.principal, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Loading is true only during the initial storage read on startup.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Subscribe(fn func()) (cancel func()) {
	return s.hub.Subscribe(fn)
}
