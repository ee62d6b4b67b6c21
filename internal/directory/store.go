package directory

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

// Store owns the account roster and exposes the fixed unit catalog.
type Store struct {
	logger  *slog.Logger
	storage storage.Storage
	hub     *pubsub.Hub

	mu       sync.RWMutex
	accounts []model.Account
}

func NewStore(ctx context.Context, logger *slog.Logger, store storage.Storage) *Store {
	s := &Store{
		logger:  logger,
		storage: store,
		hub:     pubsub.NewHub(),
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, err := s.storage.Load(ctx, storage.KeyAccounts)
	if err == nil {
		var accounts []model.Account
		if jsonErr := json.Unmarshal(data, &accounts); jsonErr == nil {
			s.accounts = accounts
			return
		}
		s.logger.Warn("discarding corrupt account collection")
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		s.logger.Warn("failed to load accounts", "error", err)
	}

	// First run (or corrupt data): seed the mock roster.
	s.accounts = model.MockAccounts()
	s.persist(ctx)
}

// persist writes the whole collection. Callers hold the write lock.
func (s *Store) persist(ctx context.Context) bool {
	data, err := json.Marshal(s.accounts)
	if err != nil {
		s.logger.Error("failed to encode accounts", "error", err)
		return false
	}
	if err := s.storage.Save(ctx, storage.KeyAccounts, data); err != nil {
		s.logger.Error("failed to persist accounts", "error", err)
		return false
	}
	return true
}

// AddParams carries the admin-entered fields of a new account.
type AddParams struct {
	Name   string
	Email  string
	Role   model.Role
	Unit   model.Unit
	Active bool
}

// AddAccount appends a new account unless the email is already taken.
// Email comparison is exact (case-sensitive), matching the original.
func (s *Store) AddAccount(ctx context.Context, params AddParams) bool {
	s.mu.Lock()

	for _, account := range s.accounts {
		if account.Email == params.Email {
			s.mu.Unlock()
			return false
		}
	}

	account := model.Account{
		ID:        model.NewID(),
		Name:      params.Name,
		Email:     params.Email,
		Role:      params.Role,
		Unit:      params.Unit,
		CreatedAt: model.ISOTime(time.Now()),
		Active:    params.Active,
	}
	prev := s.accounts
	s.accounts = append(s.accounts, account)
	ok := s.persist(ctx)
	if !ok {
		s.accounts = prev
	}
	s.mu.Unlock()

	if ok {
		s.hub.Publish()
	}
	return ok
}

// Patch holds partial account updates; nil fields are left untouched.
type Patch struct {
	Name      *string
	Email     *string
	Role      *model.Role
	Unit      *model.Unit
	LastLogin *string
	Active    *bool
}

// UpdateAccount merges patch into the matching account. A patched email
// that another account already holds rejects the whole update.
func (s *Store) UpdateAccount(ctx context.Context, id string, patch Patch) bool {
	s.mu.Lock()

	if patch.Email != nil {
		for _, account := range s.accounts {
			if account.Email == *patch.Email && account.ID != id {
				s.mu.Unlock()
				return false
			}
		}
	}

	idx := -1
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	prev := s.accounts[idx]
	if patch.Name != nil {
		s.accounts[idx].Name = *patch.Name
	}
	if patch.Email != nil {
		s.accounts[idx].Email = *patch.Email
	}
	if patch.Role != nil {
		s.accounts[idx].Role = *patch.Role
	}
	if patch.Unit != nil {
		s.accounts[idx].Unit = *patch.Unit
	}
	if patch.LastLogin != nil {
		s.accounts[idx].LastLogin = *patch.LastLogin
	}
	if patch.Active != nil {
		s.accounts[idx].Active = *patch.Active
	}

	ok := s.persist(ctx)
	if !ok {
		s.accounts[idx] = prev
	}
	s.mu.Unlock()

	if ok {
		s.hub.Publish()
	}
	return ok
}

// ToggleActive flips the account's active flag.
func (s *Store) ToggleActive(ctx context.Context, id string) bool {
	s.mu.Lock()

	idx := -1
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	s.accounts[idx].Active = !s.accounts[idx].Active
	ok := s.persist(ctx)
	if !ok {
		s.accounts[idx].Active = !s.accounts[idx].Active
	}
	s.mu.Unlock()

	if ok {
		s.hub.Publish()
	}
	return ok
}

// DeleteAccount removes the account permanently. No soft delete, no audit
// trail; removing an unknown id is a no-op that still reports success.
func (s *Store) DeleteAccount(ctx context.Context, id string) bool {
	s.mu.Lock()

	prev := s.accounts
	kept := make([]model.Account, 0, len(prev))
	for _, account := range prev {
		if account.ID != id {
			kept = append(kept, account)
		}
	}
	s.accounts = kept

	ok := s.persist(ctx)
	if !ok {
		s.accounts = prev
	}
	s.mu.Unlock()

	if ok {
		s.hub.Publish()
	}
	return ok
}

// AccountByID returns a copy of the matching account.
func (s *Store) AccountByID(id string) (model.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.ID == id {
			return account, true
		}
	}
	return model.Account{}, false
}

// Accounts returns a copy of the whole roster.
func (s *Store) Accounts() []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Units returns the fixed unit catalog. It never depends on store state.
func (s *Store) Units() []model.Unit {
	out := make([]model.Unit, len(model.MockUnits))
	copy(out, model.MockUnits)
	return out
}

func (s *Store) Subscribe(fn func()) (cancel func()) {
	return s.hub.Subscribe(fn)
}
