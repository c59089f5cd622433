// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-captcha-gate/internal/captcha"
	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/internal/store"
	"github.com/MKhiriev/go-captcha-gate/models"
)

// verificationService is the concrete implementation of
// [VerificationService]. It runs the per-user state machine:
//
//	Idle → (entry) → Challenge-Issued → (correct answer) → Idle
//
// A refresh or a wrong answer keeps the user in Challenge-Issued. Every
// transition for one user runs under that user's session lock, so
// overlapping updates for the same user cannot interleave; unrelated
// users never contend.
//
// Failure policy, by class:
//   - transport failures during cleanup (delete/edit/answer) are logged
//     and discarded, and never stop sibling cleanup steps;
//   - ledger failures propagate: a gating decision is never assumed on
//     a read fault, and the link is never revealed on a write fault.
type verificationService struct {
	users     store.UserRepository
	sessions  SessionStore
	generator ChallengeGenerator
	messenger Messenger

	link     models.Button
	cooldown config.Access

	logger *logger.Logger
}

// NewVerificationService constructs a [VerificationService] wired to the
// given ledger, session store, challenge generator and transport.
func NewVerificationService(
	users store.UserRepository,
	sessions SessionStore,
	generator ChallengeGenerator,
	messenger Messenger,
	appCfg config.App,
	accessCfg config.Access,
	logger *logger.Logger,
) VerificationService {
	logger.Debug().Msg("creating verification service")
	return &verificationService{
		users:     users,
		sessions:  sessions,
		generator: generator,
		messenger: messenger,
		link:      models.Button{Text: appCfg.LinkTitle, URL: appCfg.LinkURL},
		cooldown:  accessCfg,
		logger:    logger,
	}
}

// HandleEntry processes an access request. A registered user still inside
// the cooldown window gets a rejection notice and no session; everyone
// else gets a fresh challenge photo with a refresh button, and a session
// tracking that message.
func (v *verificationService) HandleEntry(ctx context.Context, user models.User, chatID int64) error {
	v.sessions.Lock(user.UserID)
	defer v.sessions.Unlock(user.UserID)

	log := logger.FromContext(ctx)

	registered, err := v.users.IsRegistered(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerRead, err)
	}

	if registered {
		allowed, err := v.users.CanAccess(ctx, user.UserID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLedgerRead, err)
		}
		if !allowed {
			if _, err := v.messenger.SendText(ctx, chatID, cooldownNotice(v.cooldown.Cooldown)); err != nil {
				log.Warn().Err(err).Int64("user_id", user.UserID).Msg("failed to send cooldown notice")
			}
			return nil
		}
	}

	text, image, err := v.generator.Generate()
	if err != nil {
		return fmt.Errorf("challenge generation failed: %w", err)
	}

	messageID, err := v.messenger.SendPhoto(ctx, chatID, image, challengeCaption, v.refreshButton())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrChallengeDelivery, err)
	}

	sess := v.sessions.StartOrReplace(user.UserID, text, messageID, chatID)
	log.Debug().
		Str("session_id", sess.SessionID).
		Int64("user_id", user.UserID).
		Msg("challenge issued")

	return nil
}

// HandleRefresh regenerates the challenge in place: the existing challenge
// message is edited with a new image and the session's expected text is
// replaced. Tracked message ids stay unchanged since the edited message
// keeps its id. A refresh without a session starts one anchored to the
// triggering message.
func (v *verificationService) HandleRefresh(ctx context.Context, user models.User, chatID int64, messageID int, callbackID string) error {
	v.sessions.Lock(user.UserID)
	defer v.sessions.Unlock(user.UserID)

	log := logger.FromContext(ctx)

	if err := v.messenger.AnswerCallback(ctx, callbackID); err != nil {
		log.Warn().Err(err).Int64("user_id", user.UserID).Msg("failed to answer refresh callback")
	}

	text, image, err := v.generator.Generate()
	if err != nil {
		return fmt.Errorf("challenge generation failed: %w", err)
	}

	if err := v.messenger.EditPhoto(ctx, chatID, messageID, image, challengeCaption, v.refreshButton()); err != nil {
		// the old image is still on screen and its text still matches
		log.Error().Err(err).Int64("user_id", user.UserID).Msg("failed to refresh challenge message")
		return nil
	}

	sess := v.sessions.RefreshText(user.UserID, text, messageID, chatID)
	log.Debug().
		Str("session_id", sess.SessionID).
		Int64("user_id", user.UserID).
		Msg("challenge refreshed")

	return nil
}

// HandleText checks a reply against the user's outstanding challenge.
// Replies from users with no session are ignored.
func (v *verificationService) HandleText(ctx context.Context, user models.User, chatID int64, messageID int, text string) error {
	v.sessions.Lock(user.UserID)
	defer v.sessions.Unlock(user.UserID)

	sess, ok := v.sessions.Get(user.UserID)
	if !ok {
		return nil
	}

	if captcha.Normalize(text) == sess.Expected {
		return v.handleSuccess(ctx, user, sess, messageID)
	}

	v.handleWrongAnswer(ctx, user, sess, messageID)
	return nil
}

// handleSuccess runs the success path: retract every tracked message and
// the user's reply (each attempt independent, failures logged and
// discarded), commit the registration, drop the session, and reveal the
// link.
func (v *verificationService) handleSuccess(ctx context.Context, user models.User, sess models.ChallengeSession, replyID int) error {
	log := logger.FromContext(ctx)

	for _, id := range sess.MessageIDs {
		if err := v.messenger.DeleteMessage(ctx, sess.ChatID, id); err != nil {
			log.Warn().Err(err).Int("message_id", id).Msg("failed to delete challenge message")
		}
	}
	if err := v.messenger.DeleteMessage(ctx, sess.ChatID, replyID); err != nil {
		log.Warn().Err(err).Int("message_id", replyID).Msg("failed to delete user reply")
	}

	if err := v.users.Register(ctx, user); err != nil {
		// without a committed record the link stays hidden; the session
		// survives so the user can answer again
		return fmt.Errorf("%w: %w", ErrLedgerWrite, err)
	}

	v.sessions.Clear(user.UserID)

	if _, err := v.messenger.SendText(ctx, sess.ChatID, successText(v.cooldown.Cooldown), v.link); err != nil {
		log.Warn().Err(err).Int64("user_id", user.UserID).Msg("failed to send link message")
	}

	log.Info().
		Str("session_id", sess.SessionID).
		Int64("user_id", user.UserID).
		Msg("verification succeeded")

	return nil
}

// handleWrongAnswer runs the failure path: retract the wrong reply, send
// a retry prompt, and track it for later cleanup. Retries are unlimited.
func (v *verificationService) handleWrongAnswer(ctx context.Context, user models.User, sess models.ChallengeSession, replyID int) {
	log := logger.FromContext(ctx)

	if err := v.messenger.DeleteMessage(ctx, sess.ChatID, replyID); err != nil {
		log.Warn().Err(err).Int("message_id", replyID).Msg("failed to delete wrong reply")
	}

	promptID, err := v.messenger.SendText(ctx, sess.ChatID, wrongAnswerText)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", user.UserID).Msg("failed to send retry prompt")
		return
	}

	v.sessions.AppendMessage(user.UserID, promptID)

	log.Debug().
		Str("session_id", sess.SessionID).
		Int64("user_id", user.UserID).
		Msg("wrong answer")
}

func (v *verificationService) refreshButton() models.Button {
	return models.Button{Text: refreshLabel, CallbackData: RefreshCallback}
}
