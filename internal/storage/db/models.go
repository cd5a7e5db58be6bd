package db

import "time"

// User is a row in the users table. PasswordHash is the bcrypt hash of the
// signup password; the plaintext is never stored.
type User struct {
	ID           uint64
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Course is a row in the courses table. EstimatedTime and MaterialsNeeded are
// free-form optional text.
type Course struct {
	ID              uint64
	Title           string
	Description     string
	EstimatedTime   string
	MaterialsNeeded string
	UserID          uint64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CourseWithOwner is a course row joined with the summary columns of its
// owning user.
type CourseWithOwner struct {
	Course
	Owner UserSummary
}

// UserSummary is the subset of user columns that may appear inside other
// representations. It deliberately has no password or timestamp fields.
type UserSummary struct {
	ID           uint64
	FirstName    string
	LastName     string
	EmailAddress string
}

// Summary projects a user row down to its embeddable representation.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}
