package sec

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/melete/internal/storage"
	"github.com/stolasapp/melete/internal/storage/db"
)

// AuthError is an authentication failure with the message returned to the
// client in the 401 body.
type AuthError struct {
	Msg string `json:"msg"`
}

// Error satisfies [error].
func (e *AuthError) Error() string { return e.Msg }

// ErrNoAuthHeader is returned when the Authorization header is missing or is
// not a parseable Basic credential pair.
var ErrNoAuthHeader = &AuthError{Msg: "Authorization header not found."}

// ErrBadPassword is returned when the presented password does not match the
// stored hash.
var ErrBadPassword = &AuthError{Msg: "Access denied"}

// errUnknownUser reports that no user exists for the presented name. Note
// that this deliberately mirrors the upstream API contract even though it
// leaks account existence to unauthenticated callers.
func errUnknownUser(name string) *AuthError {
	return &AuthError{Msg: "Username not found for " + name}
}

// Authenticate resolves the requesting user from the Basic Auth credentials
// on req. The name half of the pair is the user's email address. An
// [*AuthError] is returned if the credentials are missing or invalid.
func Authenticate(ctx context.Context, req *http.Request, users storage.Users) (db.User, error) {
	email, password, ok := req.BasicAuth()
	if !ok {
		return db.User{}, ErrNoAuthHeader
	}
	user, err := users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return db.User{}, errUnknownUser(email)
	} else if err != nil {
		return db.User{}, err
	}
	if err = ComparePassword(password, user.PasswordHash); err != nil {
		return db.User{}, ErrBadPassword
	}
	return user, nil
}

// Middleware returns an echo middleware that authenticates the request and
// stores the resolved user in the request context. Authentication failures
// short-circuit with a 401 and the failure message; other errors propagate to
// the server error handler.
func Middleware(users storage.Users) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			user, err := Authenticate(req.Context(), req, users)
			var authErr *AuthError
			if errors.As(err, &authErr) {
				return c.JSON(http.StatusUnauthorized, authErr)
			} else if err != nil {
				return err
			}
			c.SetRequest(req.WithContext(WithUser(req.Context(), user)))
			return next(c)
		}
	}
}

type userKey struct{}

// WithUser stores the authenticated user on the context. The [Middleware]
// does this automatically; this function is provided as a convenience for
// testing.
func WithUser(ctx context.Context, user db.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// CurrentUser returns the authenticated user for the request. Returns a
// zero-value User if the context has no authenticated user (should only
// happen if middleware is misconfigured).
func CurrentUser(ctx context.Context) db.User {
	if user, ok := ctx.Value(userKey{}).(db.User); ok {
		return user
	}
	return db.User{}
}
