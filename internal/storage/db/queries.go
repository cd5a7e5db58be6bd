package db

import (
	"context"
	"database/sql"
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Queries wraps a database handle with the statements used by the storage
// layer. All methods operate on single statements; there are no
// multi-statement transactions.
type Queries struct {
	db *sql.DB
}

// New binds the query methods to a database handle.
func New(handle *sql.DB) *Queries {
	return &Queries{db: handle}
}

// IsUniqueViolation reports whether err was caused by a unique constraint,
// keeping the driver error types out of the storage package.
func IsUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

const insertUser = `
insert into users (id, first_name, last_name, email_address, password_hash)
values (?, ?, ?, ?, ?)`

// InsertUser creates a user row. The caller assigns the ID.
func (q *Queries) InsertUser(ctx context.Context, user User) error {
	_, err := q.db.ExecContext(ctx, insertUser,
		user.ID, user.FirstName, user.LastName, user.EmailAddress, user.PasswordHash)
	return err
}

const selectUser = `
select id, first_name, last_name, email_address, password_hash, created_at, updated_at
from users`

// GetUser returns the user row with the given ID.
func (q *Queries) GetUser(ctx context.Context, id uint64) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, selectUser+" where id = ?", id))
}

// GetUserByEmail returns the user row with the given email address. The
// lookup is case-insensitive per the column collation.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, selectUser+" where email_address = ?", email))
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.EmailAddress,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// DeleteUser removes a user row. Deleting an unknown ID is a no-op.
func (q *Queries) DeleteUser(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, "delete from users where id = ?", id)
	return err
}

const insertCourse = `
insert into courses (id, title, description, estimated_time, materials_needed, user_id)
values (?, ?, ?, nullif(?, ''), nullif(?, ''), ?)`

// InsertCourse creates a course row. The caller assigns the ID and owner.
func (q *Queries) InsertCourse(ctx context.Context, course Course) error {
	_, err := q.db.ExecContext(ctx, insertCourse,
		course.ID, course.Title, course.Description,
		course.EstimatedTime, course.MaterialsNeeded, course.UserID)
	return err
}

const selectCourse = `
select c.id, c.title, c.description,
       coalesce(c.estimated_time, ''), coalesce(c.materials_needed, ''),
       c.user_id, c.created_at, c.updated_at,
       u.id, u.first_name, u.last_name, u.email_address
from courses c
join users u on u.id = c.user_id`

// GetCourse returns a course row joined with its owner summary.
func (q *Queries) GetCourse(ctx context.Context, id uint64) (CourseWithOwner, error) {
	row := q.db.QueryRowContext(ctx, selectCourse+" where c.id = ?", id)
	var c CourseWithOwner
	err := row.Scan(&c.ID, &c.Title, &c.Description,
		&c.EstimatedTime, &c.MaterialsNeeded,
		&c.UserID, &c.CreatedAt, &c.UpdatedAt,
		&c.Owner.ID, &c.Owner.FirstName, &c.Owner.LastName, &c.Owner.EmailAddress)
	return c, err
}

// ListCourses returns every course joined with its owner summary, ordered by
// course ID.
func (q *Queries) ListCourses(ctx context.Context) ([]CourseWithOwner, error) {
	rows, err := q.db.QueryContext(ctx, selectCourse+" order by c.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []CourseWithOwner
	for rows.Next() {
		var c CourseWithOwner
		if err := rows.Scan(&c.ID, &c.Title, &c.Description,
			&c.EstimatedTime, &c.MaterialsNeeded,
			&c.UserID, &c.CreatedAt, &c.UpdatedAt,
			&c.Owner.ID, &c.Owner.FirstName, &c.Owner.LastName, &c.Owner.EmailAddress,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

const updateCourse = `
update courses
set title = ?, description = ?,
    estimated_time = nullif(?, ''), materials_needed = nullif(?, ''),
    updated_at = current_timestamp
where id = ?`

// UpdateCourse overwrites the mutable columns of a course row. It returns
// [sql.ErrNoRows] if no row has the given ID.
func (q *Queries) UpdateCourse(ctx context.Context, course Course) error {
	res, err := q.db.ExecContext(ctx, updateCourse,
		course.Title, course.Description,
		course.EstimatedTime, course.MaterialsNeeded, course.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteCourse removes a course row. It returns [sql.ErrNoRows] if no row has
// the given ID.
func (q *Queries) DeleteCourse(ctx context.Context, id uint64) error {
	res, err := q.db.ExecContext(ctx, "delete from courses where id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
