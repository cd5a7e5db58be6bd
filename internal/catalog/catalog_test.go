package catalog

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/melete/internal/sec"
	"github.com/stolasapp/melete/internal/storage"
)

func newCatalog(t *testing.T) (*Catalog, storage.Store) {
	t.Helper()
	store, err := storage.NewDB(t.Context(), slog.Default(), filepath.Join(t.TempDir(), "db.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store), store
}

func signup(t *testing.T, c *Catalog) NewUser {
	t.Helper()
	input := NewUser{
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		EmailAddress: gofakeit.Email(),
		Password:     "correct horse battery staple",
	}
	_, err := c.CreateUser(t.Context(), input)
	require.NoError(t, err)
	return input
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	catalog, store := newCatalog(t)

	t.Run("stores hash, never plaintext", func(t *testing.T) {
		input := signup(t, catalog)

		stored, err := store.GetUserByEmail(t.Context(), input.EmailAddress)
		require.NoError(t, err)
		assert.NotContains(t, string(stored.PasswordHash), input.Password)
		assert.NoError(t, sec.ComparePassword(input.Password, stored.PasswordHash))
	})

	t.Run("collects all violations", func(t *testing.T) {
		_, err := catalog.CreateUser(t.Context(), NewUser{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []FieldViolation{
			{Field: "firstName", Message: "Please enter a value for 'firstName'"},
			{Field: "lastName", Message: "Please enter a value for 'lastName'"},
			{Field: "emailAddress", Message: "Please enter a value for 'email'"},
			{Field: "password", Message: "Please enter a value for 'password'"},
		}, verr.Violations)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := catalog.CreateUser(t.Context(), NewUser{
			FirstName:    "Joe",
			LastName:     "Smith",
			EmailAddress: "not-an-email",
			Password:     "secret1",
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "Please enter a valid 'email'", verr.Violations[0].Message)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		input := signup(t, catalog)

		input.Password = "another password"
		_, err := catalog.CreateUser(t.Context(), input)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "emailAddress", verr.Violations[0].Field)

		// the failed write must not have replaced the original row
		stored, err := store.GetUserByEmail(t.Context(), input.EmailAddress)
		require.NoError(t, err)
		assert.NoError(t, sec.ComparePassword("correct horse battery staple", stored.PasswordHash))
	})
}

func TestCourseOwnership(t *testing.T) {
	t.Parallel()

	catalog, store := newCatalog(t)

	ownerInput := signup(t, catalog)
	intruderInput := signup(t, catalog)
	owner, err := store.GetUserByEmail(t.Context(), ownerInput.EmailAddress)
	require.NoError(t, err)
	intruder, err := store.GetUserByEmail(t.Context(), intruderInput.EmailAddress)
	require.NoError(t, err)

	course, err := catalog.CreateCourse(t.Context(), owner.ID, CourseInput{
		Title:       "Learn How to Program",
		Description: "In this course, you'll learn how to write code.",
	})
	require.NoError(t, err)
	require.Equal(t, owner.ID, course.UserID)

	t.Run("update by non-owner is forbidden", func(t *testing.T) {
		err := catalog.UpdateCourse(t.Context(), intruder.ID, course.ID, CourseInput{
			Title:       "Hijacked",
			Description: "x",
		})
		require.ErrorIs(t, err, ErrForbidden)

		unchanged, err := catalog.GetCourse(t.Context(), course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Learn How to Program", unchanged.Title)
	})

	t.Run("delete by non-owner is forbidden", func(t *testing.T) {
		err := catalog.DeleteCourse(t.Context(), intruder.ID, course.ID)
		require.ErrorIs(t, err, ErrForbidden)

		_, err = catalog.GetCourse(t.Context(), course.ID)
		require.NoError(t, err)
	})

	t.Run("update validates before writing", func(t *testing.T) {
		err := catalog.UpdateCourse(t.Context(), owner.ID, course.ID, CourseInput{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []FieldViolation{
			{Field: "title", Message: "Please enter a value for 'title'"},
			{Field: "description", Message: "Please enter a value for 'description'"},
		}, verr.Violations)
	})

	t.Run("unknown course is not found", func(t *testing.T) {
		err := catalog.UpdateCourse(t.Context(), owner.ID, 0, CourseInput{Title: "x", Description: "y"})
		require.ErrorIs(t, err, storage.ErrNotFound)

		err = catalog.DeleteCourse(t.Context(), owner.ID, 0)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("owner can update and delete", func(t *testing.T) {
		err := catalog.UpdateCourse(t.Context(), owner.ID, course.ID, CourseInput{
			Title:         "Learn How to Program, 2nd Edition",
			Description:   "Now with tests.",
			EstimatedTime: "14 hours",
		})
		require.NoError(t, err)

		updated, err := catalog.GetCourse(t.Context(), course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Learn How to Program, 2nd Edition", updated.Title)
		assert.Equal(t, "14 hours", updated.EstimatedTime)

		err = catalog.DeleteCourse(t.Context(), owner.ID, course.ID)
		require.NoError(t, err)
		_, err = catalog.GetCourse(t.Context(), course.ID)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
