package models

import "time"

// User represents the single FortiFile account. The application enforces
// that at most one row ever exists in the users table; every file and event
// in the system belongs to this user.
//
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login identifier chosen at registration.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a salted one-way hash, never plaintext.
	PasswordHash string `json:"-"`

	// FailedAttempts is the persisted count of consecutive failed login
	// attempts. It is reset to zero on every successful authentication.
	FailedAttempts int `json:"-"`

	// Locked reports whether the account has been locked after reaching
	// the failed-attempt threshold. A locked account rejects every
	// authentication attempt until an operator resets it.
	Locked bool `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
