// Package session tracks the single active identity. The session is a copy
// of one account record persisted under its own key; it is created on
// successful login, removed on logout, and never expires by time.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akozyrev/userdir/internal/kvstore"
	"github.com/akozyrev/userdir/internal/logging"
	"github.com/akozyrev/userdir/internal/models"
)

const currentUserKey = "currentUser"

// CredentialFinder performs the login scan. Satisfied by directory.Service.
type CredentialFinder interface {
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
}

type Manager struct {
	store kvstore.Store
	users CredentialFinder
	log   logging.Logger
}

func NewManager(store kvstore.Store, users CredentialFinder, log logging.Logger) *Manager {
	return &Manager{store: store, users: users, log: log}
}

// Login authenticates against the directory and persists the matched
// account as the current session. On failure the session slot is left
// untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := m.users.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	if err := m.store.Set(ctx, currentUserKey, data); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	m.log.Info(ctx, "user logged in", "id", u.ID, "username", u.Username)
	return u, nil
}

// Current returns the active account, or nil when nobody is logged in.
// An unreadable or unparsable session slot is logged and reported as
// logged out; it never surfaces as a failure to the caller.
func (m *Manager) Current(ctx context.Context) (*models.User, error) {
	data, err := m.store.Get(ctx, currentUserKey)
	if err != nil {
		m.log.Error(ctx, "failed to read session slot, treating as logged out", "error", err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		m.log.Error(ctx, "corrupt session slot, treating as logged out", "error", err)
		return nil, nil
	}
	return &u, nil
}

// Logout removes the session slot. Calling it with no active session is a
// successful no-op.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, currentUserKey); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	m.log.Info(ctx, "user logged out")
	return nil
}
