// Package directory owns the persisted account list: create, list, update,
// delete, and the credential scan used by login. The list is stored under a
// single key as a JSON array and replaced whole on every mutation, so all
// read-modify-write cycles run under the service mutex.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/akozyrev/userdir/internal/common"
	"github.com/akozyrev/userdir/internal/credentials"
	"github.com/akozyrev/userdir/internal/kvstore"
	"github.com/akozyrev/userdir/internal/logging"
	"github.com/akozyrev/userdir/internal/models"
)

const usersKey = "users"

// SessionReader resolves the active identity. Satisfied by session.Manager.
type SessionReader interface {
	Current(ctx context.Context) (*models.User, error)
}

// Gate is the deletion confirmation collaborator. A false answer means
// "do not mutate".
type Gate interface {
	Confirm(prompt string) bool
}

// GateFunc adapts a plain function to the Gate interface.
type GateFunc func(prompt string) bool

func (f GateFunc) Confirm(prompt string) bool { return f(prompt) }

type Service struct {
	mu       sync.Mutex
	store    kvstore.Store
	checker  credentials.Checker
	gate     Gate
	sessions SessionReader
	log      logging.Logger
}

func NewService(store kvstore.Store, checker credentials.Checker, gate Gate, log logging.Logger) *Service {
	return &Service{store: store, checker: checker, gate: gate, log: log}
}

// AttachSessions wires the session reader after both components exist.
// Until it is called, every operation behaves as if nobody is logged in.
func (s *Service) AttachSessions(r SessionReader) {
	s.sessions = r
}

// load reads the stored account list. An absent key is an empty list.
func (s *Service) load(ctx context.Context) ([]models.User, error) {
	data, err := s.store.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("loading user list: %w", err)
	}
	if data == nil {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: corrupt user list: %v", common.ErrStoreUnavailable, err)
	}
	return users, nil
}

func (s *Service) save(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encoding user list: %w", err)
	}
	if err := s.store.Set(ctx, usersKey, data); err != nil {
		return fmt.Errorf("saving user list: %w", err)
	}
	return nil
}

func (s *Service) currentID(ctx context.Context) (int64, bool) {
	if s.sessions == nil {
		return 0, false
	}
	u, err := s.sessions.Current(ctx)
	if err != nil || u == nil {
		return 0, false
	}
	return u.ID, true
}

// List returns every stored account in insertion order.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ListOthers returns every account except the one matching the active
// session's ID. It never returns nil: a store or parse failure is logged
// and reported as an empty directory.
func (s *Service) ListOthers(ctx context.Context) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read user list, returning empty", "error", err)
		return []models.User{}
	}

	id, ok := s.currentID(ctx)
	if !ok {
		return users
	}

	others := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			others = append(others, u)
		}
	}
	return others
}

// Create appends the account and persists the full list. When u.ID is zero
// the next free ID is assigned. The password is stored in the checker's
// form. Duplicate usernames are not rejected; login resolves them by first
// stored match.
func (s *Service) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}

	if u.ID == 0 {
		u.ID = nextID(users)
	}

	hashed, err := s.checker.Hash(u.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	u.Password = hashed

	users = append(users, *u)
	if err := s.save(ctx, users); err != nil {
		return err
	}

	s.log.Info(ctx, "user created", "id", u.ID, "username", u.Username)
	return nil
}

func nextID(users []models.User) int64 {
	var max int64
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

// Update merge-patches the account with the given ID: fields present in
// the patch override, absent fields are preserved. Returns
// common.ErrorNotFound when no account matches.
func (s *Service) Update(ctx context.Context, id int64, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrorNotFound
	}

	if patch.Password != nil {
		hashed, err := s.checker.Hash(*patch.Password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		patch.Password = &hashed
	}

	patch.Apply(&users[idx])
	if err := s.save(ctx, users); err != nil {
		return err
	}

	s.log.Info(ctx, "user updated", "id", id)
	return nil
}

// Delete removes the account with the given ID after the confirmation gate
// agrees. Deleting the active session's account fails with
// common.ErrSelfDeletion and never mutates. Deleting an ID that does not
// exist succeeds as a no-op, so delete is idempotent.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.currentID(ctx); ok && cur == id {
		return common.ErrSelfDeletion
	}

	if s.gate == nil || !s.gate.Confirm("Are you sure you want to delete this user?") {
		return common.ErrConfirmationDeclined
	}

	users, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if err := s.save(ctx, kept); err != nil {
		return err
	}

	s.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// FindByCredentials scans the stored list in insertion order and returns
// the first account whose username matches and whose password verifies.
// With duplicate usernames the first stored match wins.
func (s *Service) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username && s.checker.Verify(users[i].Password, password) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}
