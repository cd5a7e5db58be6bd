// Package storage provides the state management for users and courses.
package storage

import (
	"context"

	"github.com/stolasapp/melete/internal/storage/db"
)

const (
	// ErrNotFound is returned when a user or course cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a user with the same email address
	// already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Users are the methods on a storage implementation that are responsible for
// accessing and modifying users.
type Users interface {
	// CreateUser persists a new user and assigns its ID. An [ErrAlreadyExists]
	// is returned if the email address is already in use.
	CreateUser(ctx context.Context, user *db.User) error
	// GetUser returns a single user with the specified ID. An [ErrNotFound] is
	// returned if the user ID does not exist.
	GetUser(ctx context.Context, userID uint64) (db.User, error)
	// GetUserByEmail returns a single user with the specified email address,
	// matched case-insensitively. An [ErrNotFound] is returned if no user has
	// that address.
	GetUserByEmail(ctx context.Context, email string) (db.User, error)
	// DeleteUser removes a user and all courses they own. Note that this is a
	// hard delete; data is not recoverable. It is exposed to the operator CLI
	// only, never over HTTP.
	DeleteUser(ctx context.Context, userID uint64) error
}

// Courses are the methods on a storage implementation that are responsible
// for accessing and modifying courses.
type Courses interface {
	// CreateCourse persists a new course and assigns its ID. The caller sets
	// the owning user ID.
	CreateCourse(ctx context.Context, course *db.Course) error
	// GetCourse returns a single course with its owner summary attached. An
	// [ErrNotFound] is returned if the course ID does not exist.
	GetCourse(ctx context.Context, courseID uint64) (db.CourseWithOwner, error)
	// ListCourses returns all courses with their owner summaries attached.
	ListCourses(ctx context.Context) ([]db.CourseWithOwner, error)
	// UpdateCourse overwrites the title, description, estimated time, and
	// materials of an existing course. An [ErrNotFound] is returned if the
	// course ID does not exist.
	UpdateCourse(ctx context.Context, course db.Course) error
	// DeleteCourse removes a course. An [ErrNotFound] is returned if the
	// course ID does not exist. This is a hard delete.
	DeleteCourse(ctx context.Context, courseID uint64) error
}

// Store is the combination interface for [Users] and [Courses].
type Store interface {
	Users
	Courses
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
