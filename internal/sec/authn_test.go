package sec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/melete/internal/storage"
	"github.com/stolasapp/melete/internal/storage/db"
)

// fakeUsers is a [storage.Users] with a single known user.
type fakeUsers struct {
	user db.User
}

func (f fakeUsers) CreateUser(context.Context, *db.User) error { return storage.ErrInternal }
func (f fakeUsers) DeleteUser(context.Context, uint64) error   { return storage.ErrInternal }

func (f fakeUsers) GetUser(_ context.Context, id uint64) (db.User, error) {
	if id != f.user.ID {
		return db.User{}, storage.ErrNotFound
	}
	return f.user, nil
}

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (db.User, error) {
	if email != f.user.EmailAddress {
		return db.User{}, storage.ErrNotFound
	}
	return f.user, nil
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	const password = "opensesame"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	users := fakeUsers{user: db.User{
		ID:           42,
		FirstName:    "Joe",
		LastName:     "Smith",
		EmailAddress: "joe@smith.com",
		PasswordHash: hash,
	}}

	request := func(setAuth func(*http.Request)) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		if setAuth != nil {
			setAuth(req)
		}
		return req
	}

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		_, err := Authenticate(t.Context(), request(nil), users)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Authorization header not found.", authErr.Msg)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()
		req := request(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer sometoken")
		})
		_, err := Authenticate(t.Context(), req, users)
		require.ErrorIs(t, err, ErrNoAuthHeader)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		req := request(func(r *http.Request) {
			r.SetBasicAuth("stranger@smith.com", password)
		})
		_, err := Authenticate(t.Context(), req, users)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Username not found for stranger@smith.com", authErr.Msg)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		req := request(func(r *http.Request) {
			r.SetBasicAuth(users.user.EmailAddress, "letmein")
		})
		_, err := Authenticate(t.Context(), req, users)
		require.ErrorIs(t, err, ErrBadPassword)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		req := request(func(r *http.Request) {
			r.SetBasicAuth(users.user.EmailAddress, password)
		})
		user, err := Authenticate(t.Context(), req, users)
		require.NoError(t, err)
		assert.Equal(t, users.user.ID, user.ID)
	})
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	assert.Zero(t, CurrentUser(t.Context()))

	user := db.User{ID: 7, EmailAddress: "joe@smith.com"}
	ctx := WithUser(t.Context(), user)
	assert.Equal(t, user, CurrentUser(ctx))
}
