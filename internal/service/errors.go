package service

import "errors"

// Sentinel errors returned by the verification flow. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrLedgerRead is returned when the access ledger cannot be read.
	// The flow fails closed on this class: no challenge is issued when
	// the cooldown decision cannot be made.
	ErrLedgerRead = errors.New("access ledger read failed")

	// ErrLedgerWrite is returned when committing a successful
	// verification to the ledger fails. The protected link is not
	// revealed in that case.
	ErrLedgerWrite = errors.New("access ledger write failed")

	// ErrChallengeDelivery is returned when the challenge message could
	// not be sent; without a delivered message there is no session to
	// track.
	ErrChallengeDelivery = errors.New("challenge delivery failed")
)
