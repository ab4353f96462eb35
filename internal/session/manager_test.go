package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyrev/userdir/internal/common"
	"github.com/akozyrev/userdir/internal/credentials"
	"github.com/akozyrev/userdir/internal/directory"
	"github.com/akozyrev/userdir/internal/kvstore"
	"github.com/akozyrev/userdir/internal/logging"
	"github.com/akozyrev/userdir/internal/models"
)

var allow = directory.GateFunc(func(string) bool { return true })

// newManager wires a directory service and a session manager over one shared
// store, seeded with the given accounts.
func newManager(t *testing.T, users ...models.User) (*Manager, *directory.Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	log := logging.New(io.Discard, "error")

	dir := directory.NewService(store, credentials.PlainChecker{}, allow, log)
	mgr := NewManager(store, dir, log)
	dir.AttachSessions(mgr)

	ctx := context.Background()
	for i := range users {
		require.NoError(t, dir.Create(ctx, &users[i]))
	}
	return mgr, dir, store
}

func TestLogin_ValidCredentials_CurrentReturnsThatAccount(t *testing.T) {
	mgr, _, _ := newManager(t, models.User{Username: "a", Password: "p", Email: "a@x.com"})
	ctx := context.Background()

	u, err := mgr.Login(ctx, "a", "p")
	require.NoError(t, err)
	require.NotNil(t, u)

	cur, err := mgr.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, *u, *cur)
	assert.Equal(t, "a@x.com", cur.Email)
}

func TestLogin_InvalidCredentials_SessionUnchanged(t *testing.T) {
	mgr, _, _ := newManager(t, models.User{Username: "a", Password: "p", Email: "a@x.com"})
	ctx := context.Background()

	_, err := mgr.Login(ctx, "a", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	cur, err := mgr.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur, "failed login must leave the session logged out")
}

func TestLogin_InvalidCredentials_DoesNotReplaceExistingSession(t *testing.T) {
	mgr, _, _ := newManager(t,
		models.User{Username: "a", Password: "p"},
		models.User{Username: "b", Password: "q"},
	)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "a", "p")
	require.NoError(t, err)

	_, err = mgr.Login(ctx, "b", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	cur, err := mgr.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "a", cur.Username, "failed login must not disturb the active session")
}

func TestLogout_ThenCurrentIsNil(t *testing.T) {
	mgr, _, _ := newManager(t, models.User{Username: "a", Password: "p"})
	ctx := context.Background()

	_, err := mgr.Login(ctx, "a", "p")
	require.NoError(t, err)

	require.NoError(t, mgr.Logout(ctx))

	cur, err := mgr.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLogout_IsIdempotent(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Logout(ctx))
	require.NoError(t, mgr.Logout(ctx))
}

func TestCurrent_NoSession_ReturnsNilNil(t *testing.T) {
	mgr, _, _ := newManager(t)

	cur, err := mgr.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestCurrent_CorruptSlot_TreatedAsLoggedOut(t *testing.T) {
	mgr, _, store := newManager(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "currentUser", []byte("{broken")))

	cur, err := mgr.Current(ctx)
	require.NoError(t, err, "a corrupt slot must never surface as a failure")
	assert.Nil(t, cur)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store down")
}
func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("store down")
}
func (failingStore) Remove(context.Context, string) error {
	return errors.New("store down")
}

type staticFinder struct {
	user *models.User
}

func (f staticFinder) FindByCredentials(context.Context, string, string) (*models.User, error) {
	if f.user == nil {
		return nil, common.ErrInvalidCredentials
	}
	return f.user, nil
}

func TestCurrent_StoreFailure_TreatedAsLoggedOut(t *testing.T) {
	log := logging.New(io.Discard, "error")
	mgr := NewManager(failingStore{}, staticFinder{}, log)

	cur, err := mgr.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLogin_StoreFailure_ReturnsError(t *testing.T) {
	log := logging.New(io.Discard, "error")
	u := &models.User{ID: 1, Username: "a"}
	mgr := NewManager(failingStore{}, staticFinder{user: u}, log)

	_, err := mgr.Login(context.Background(), "a", "p")
	require.Error(t, err)
}

func TestListOthers_AfterLogin_ExcludesSelf(t *testing.T) {
	mgr, dir, _ := newManager(t,
		models.User{Username: "one", Password: "p"},
		models.User{Username: "two", Password: "p"},
	)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "one", "p")
	require.NoError(t, err)

	got := dir.ListOthers(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "two", got[0].Username)
}
