package store

import (
	"context"

	"github.com/MKhiriev/go-captcha-gate/models"
)

// UserRepository is the access ledger: the durable record of which users
// have passed verification and when they last did.
type UserRepository interface {
	// IsRegistered reports whether a ledger record exists for the user.
	IsRegistered(ctx context.Context, userID int64) (bool, error)

	// CanAccess reports whether the user is outside the cooldown window:
	// true if no record exists, the record has no last_access yet, or the
	// configured cooldown has elapsed since last_access.
	CanAccess(ctx context.Context, userID int64) (bool, error)

	// Register upserts the user's ledger record, setting last_access to
	// the current time and overwriting display metadata. The write is a
	// single atomic statement.
	Register(ctx context.Context, user models.User) error
}
