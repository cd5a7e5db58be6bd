// Package catalog implements the domain operations on users and courses:
// field validation, password hashing on signup, and ownership checks on
// course mutation. Handlers translate its errors into HTTP responses.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/stolasapp/melete/internal/sec"
	"github.com/stolasapp/melete/internal/storage"
	"github.com/stolasapp/melete/internal/storage/db"
)

// ErrForbidden is returned when the acting user does not own the course being
// mutated. It carries no detail about why access was denied.
var ErrForbidden = errors.New("forbidden")

// Catalog wires the validation rules to the persistence handle. All methods
// run within the scope of a single request.
type Catalog struct {
	store    storage.Store
	validate *validator.Validate
}

// New creates a Catalog backed by the given store.
func New(store storage.Store) *Catalog {
	return &Catalog{
		store:    store,
		validate: newValidator(),
	}
}

// CreateUser validates input, hashes the password, and persists the new user.
// A duplicate email address is reported as a [*ValidationError] like any
// other field violation.
func (c *Catalog) CreateUser(ctx context.Context, input NewUser) (db.User, error) {
	if err := c.check(input); err != nil {
		return db.User{}, err
	}
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return db.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := db.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		EmailAddress: input.EmailAddress,
		PasswordHash: hash,
	}
	if err := c.store.CreateUser(ctx, &user); errors.Is(err, storage.ErrAlreadyExists) {
		return db.User{}, duplicateEmailError()
	} else if err != nil {
		return db.User{}, err
	}
	return user, nil
}

// CreateCourse validates input and persists a new course owned by ownerID.
func (c *Catalog) CreateCourse(ctx context.Context, ownerID uint64, input CourseInput) (db.Course, error) {
	if err := c.check(input); err != nil {
		return db.Course{}, err
	}
	course := db.Course{
		Title:           input.Title,
		Description:     input.Description,
		EstimatedTime:   input.EstimatedTime,
		MaterialsNeeded: input.MaterialsNeeded,
		UserID:          ownerID,
	}
	if err := c.store.CreateCourse(ctx, &course); err != nil {
		return db.Course{}, err
	}
	return course, nil
}

// GetCourse returns a single course with its owner summary.
func (c *Catalog) GetCourse(ctx context.Context, courseID uint64) (db.CourseWithOwner, error) {
	return c.store.GetCourse(ctx, courseID)
}

// ListCourses returns all courses with their owner summaries.
func (c *Catalog) ListCourses(ctx context.Context) ([]db.CourseWithOwner, error) {
	return c.store.ListCourses(ctx)
}

// UpdateCourse overwrites the mutable fields of the course if actorID owns
// it. It returns [storage.ErrNotFound] for an unknown course, [ErrForbidden]
// for an ownership mismatch, and a [*ValidationError] for field violations;
// in all three cases the course is left unchanged.
func (c *Catalog) UpdateCourse(ctx context.Context, actorID, courseID uint64, input CourseInput) error {
	course, err := c.store.GetCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if course.UserID != actorID {
		return ErrForbidden
	}
	if err := c.check(input); err != nil {
		return err
	}
	return c.store.UpdateCourse(ctx, db.Course{
		ID:              courseID,
		Title:           input.Title,
		Description:     input.Description,
		EstimatedTime:   input.EstimatedTime,
		MaterialsNeeded: input.MaterialsNeeded,
		UserID:          course.UserID,
	})
}

// DeleteCourse removes the course if actorID owns it, with the same error
// contract as [Catalog.UpdateCourse].
func (c *Catalog) DeleteCourse(ctx context.Context, actorID, courseID uint64) error {
	course, err := c.store.GetCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if course.UserID != actorID {
		return ErrForbidden
	}
	return c.store.DeleteCourse(ctx, courseID)
}
