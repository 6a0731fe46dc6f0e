package localstore

import (
	"context"
	"testing"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token(context.Context) string {
	return s.token
}

func newTestStore(t *testing.T) (*Store, *staticTokens) {
	t.Helper()
	tokens := &staticTokens{}
	return New(NewFileStorage(t.TempDir()), tokens), tokens
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage := NewFileStorage(t.TempDir())
	ctx := context.Background()

	var missing string
	require.ErrorIs(t, storage.Get(ctx, "token", &missing), ErrNoSlot)

	require.NoError(t, storage.Set(ctx, "token", "abc123"))

	var token string
	require.NoError(t, storage.Get(ctx, "token", &token))
	assert.Equal(t, "abc123", token)

	require.NoError(t, storage.Remove(ctx, "token"))
	require.ErrorIs(t, storage.Get(ctx, "token", &token), ErrNoSlot)

	// removing an absent slot is not an error
	require.NoError(t, storage.Remove(ctx, "token"))
}

func TestRegisterAndLogin(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	resp, err := store.Register(ctx, models.RegisterRequest{
		UserName:        "alice",
		Email:           "alice@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Alice",
		LastName:        "Smith",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, []string{"User"}, resp.Roles)

	login, err := store.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, login.UserID)

	_, err = store.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	_, err = store.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret"})
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestRegisterDuplicate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	req := models.RegisterRequest{
		UserName:        "bob",
		Email:           "bob@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Bob",
		LastName:        "Jones",
	}
	_, err := store.Register(ctx, req)
	require.NoError(t, err)

	_, err = store.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// same username, different email
	req.Email = "bob2@example.com"
	_, err = store.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCurrentUserByToken(t *testing.T) {
	store, tokens := newTestStore(t)
	ctx := context.Background()

	resp, err := store.Register(ctx, models.RegisterRequest{
		UserName:        "carol",
		Email:           "carol@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Carol",
		LastName:        "White",
	})
	require.NoError(t, err)

	user, err := store.CurrentUserByToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "carol", user.UserName)

	// the ambient token source resolves the same identity
	tokens.token = resp.Token
	user, err = store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, user.ID)

	_, err = store.CurrentUserByToken(ctx, "bogus")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = store.CurrentUserByToken(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogoutDropsSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	resp, err := store.Register(ctx, models.RegisterRequest{
		UserName:        "dave",
		Email:           "dave@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Dave",
		LastName:        "Black",
	})
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx, resp.RefreshToken))

	_, err = store.CurrentUserByToken(ctx, resp.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSeedUsersDefaultsRole(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedUsers(ctx, []SeedUser{
		{UserName: "admin", Email: "admin@example.com", Password: "pw", Roles: []string{"Admin", "User"}},
		{UserName: "plain", Email: "plain@example.com", Password: "pw"},
	}))

	admin, err := store.Login(ctx, models.LoginRequest{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Contains(t, admin.Roles, "Admin")

	plain, err := store.Login(ctx, models.LoginRequest{Email: "plain@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, plain.Roles)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, paginate(items, models.Page{Number: 1, Size: 2}))
	assert.Equal(t, []int{3, 4}, paginate(items, models.Page{Number: 2, Size: 2}))
	assert.Equal(t, []int{5}, paginate(items, models.Page{Number: 3, Size: 2}))
	assert.Empty(t, paginate(items, models.Page{Number: 4, Size: 2}))

	// zero values normalize to the defaults
	assert.Equal(t, items, paginate(items, models.Page{}))
}
