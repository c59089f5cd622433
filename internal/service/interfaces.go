package service

import (
	"context"

	"github.com/MKhiriev/go-captcha-gate/models"
)

// VerificationService orchestrates the challenge lifecycle: it decides
// whether a user may start a challenge, issues and refreshes challenges,
// checks answers, and commits successful verifications to the ledger.
type VerificationService interface {
	// HandleEntry processes an access request (the /start command).
	HandleEntry(ctx context.Context, user models.User, chatID int64) error

	// HandleRefresh processes a challenge-refresh callback anchored to the
	// challenge message messageID. callbackID is acknowledged best-effort.
	HandleRefresh(ctx context.Context, user models.User, chatID int64, messageID int, callbackID string) error

	// HandleText processes a plain text reply. messageID identifies the
	// user's own message so it can be retracted.
	HandleText(ctx context.Context, user models.User, chatID int64, messageID int, text string) error
}

// Messenger is the outbound side of the chat transport. Send methods
// return the id of the created message so the flow can retract it later.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, buttons ...models.Button) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string, buttons ...models.Button) (int, error)
	EditPhoto(ctx context.Context, chatID int64, messageID int, photo []byte, caption string, buttons ...models.Button) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// ChallengeGenerator produces a challenge text together with its rendered
// image.
type ChallengeGenerator interface {
	Generate() (text string, image []byte, err error)
}

// SessionStore tracks outstanding challenge sessions and provides the
// per-user serialization the flow runs its transitions under.
type SessionStore interface {
	Lock(userID int64)
	Unlock(userID int64)

	StartOrReplace(userID int64, text string, initialMessageID int, chatID int64) models.ChallengeSession
	RefreshText(userID int64, newText string, messageID int, chatID int64) models.ChallengeSession
	AppendMessage(userID int64, messageID int)
	Get(userID int64) (models.ChallengeSession, bool)
	Clear(userID int64)
}
