package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/influxdata/influxdb/pkg/snowflake"

	"github.com/stolasapp/melete/internal/storage/db"
)

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
}

// NewDB initializes a DB at the given file path. Pass ":memory:" for an
// ephemeral store.
func NewDB(ctx context.Context, logger *slog.Logger, dbPath string) (*DB, error) {
	handle, err := db.Open(ctx, logger, dbPath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     snowflake.New(rand.IntN(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// CreateUser satisfies the [Users] interface.
func (d *DB) CreateUser(ctx context.Context, user *db.User) error {
	if user.ID == 0 {
		user.ID = d.ids.Next()
	}
	err := d.queries.InsertUser(ctx, *user)
	if db.IsUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

// GetUser satisfies the [Users] interface.
func (d *DB) GetUser(ctx context.Context, userID uint64) (db.User, error) {
	user, err := d.queries.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// GetUserByEmail satisfies the [Users] interface.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	user, err := d.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// DeleteUser satisfies the [Users] interface. Courses owned by the user are
// removed by the schema's cascade rule.
func (d *DB) DeleteUser(ctx context.Context, userID uint64) error {
	return d.queries.DeleteUser(ctx, userID)
}

// CreateCourse satisfies the [Courses] interface.
func (d *DB) CreateCourse(ctx context.Context, course *db.Course) error {
	if course.ID == 0 {
		course.ID = d.ids.Next()
	}
	return d.queries.InsertCourse(ctx, *course)
}

// GetCourse satisfies the [Courses] interface.
func (d *DB) GetCourse(ctx context.Context, courseID uint64) (db.CourseWithOwner, error) {
	course, err := d.queries.GetCourse(ctx, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return course, ErrNotFound
	}
	return course, err
}

// ListCourses satisfies the [Courses] interface.
func (d *DB) ListCourses(ctx context.Context) ([]db.CourseWithOwner, error) {
	return d.queries.ListCourses(ctx)
}

// UpdateCourse satisfies the [Courses] interface.
func (d *DB) UpdateCourse(ctx context.Context, course db.Course) error {
	err := d.queries.UpdateCourse(ctx, course)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// DeleteCourse satisfies the [Courses] interface.
func (d *DB) DeleteCourse(ctx context.Context, courseID uint64) error {
	err := d.queries.DeleteCourse(ctx, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

var _ Store = (*DB)(nil)
