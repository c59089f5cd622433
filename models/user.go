package models

import "time"

// User represents a chat user tracked by the access ledger.
// A record exists only for users who have passed the verification
// challenge at least once.
type User struct {
	// UserID is the unique identifier assigned by the chat transport.
	// It is the primary key of the "users" table.
	UserID int64 `json:"user_id"`

	// Username is the optional public handle of the user (without "@").
	// Last write wins on re-registration.
	Username string `json:"username,omitempty"`

	// FirstName is the user's first name as reported by the transport.
	FirstName string `json:"first_name,omitempty"`

	// LastName is the user's last name as reported by the transport.
	LastName string `json:"last_name,omitempty"`

	// RegisteredAt is the timestamp of the first successful verification.
	// Assigned by the database on insert.
	RegisteredAt time.Time `json:"registered_at"`

	// LastAccess is the timestamp of the most recent successful
	// verification. Nil until the first success is recorded.
	LastAccess *time.Time `json:"last_access,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
