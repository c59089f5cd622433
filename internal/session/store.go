// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the in-memory store of outstanding verification
// challenges, keyed by user id.
//
// The store is process memory only. A restart drops every session; that is
// accepted data loss, not a bug: an affected user simply requests access
// again and receives a fresh challenge.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/models"
)

// Store maps user ids to their active [models.ChallengeSession].
//
// Two locking layers exist with different jobs:
//   - mu guards the session map itself, so individual operations are safe
//     to call from any goroutine;
//   - Lock/Unlock expose a per-user mutex so the verification flow can
//     serialize a whole read-modify-write transition for one user without
//     blocking transitions for unrelated users.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*models.ChallengeSession

	// userLocks maps user id to *sync.Mutex. Entries are never removed:
	// the set is bounded by the user population and a stale mutex costs
	// a few dozen bytes.
	userLocks sync.Map

	logger *logger.Logger
}

// NewStore constructs an empty session store.
func NewStore(logger *logger.Logger) *Store {
	logger.Debug().Msg("creating challenge session store")
	return &Store{
		sessions: make(map[int64]*models.ChallengeSession),
		logger:   logger,
	}
}

// Lock acquires the serialization mutex for the given user. Every flow
// transition for a user must run between Lock and Unlock.
func (s *Store) Lock(userID int64) {
	s.userMutex(userID).Lock()
}

// Unlock releases the serialization mutex for the given user.
func (s *Store) Unlock(userID int64) {
	s.userMutex(userID).Unlock()
}

func (s *Store) userMutex(userID int64) *sync.Mutex {
	m, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// StartOrReplace creates a new session for the user, discarding any prior
// session for the same id. The new session tracks initialMessageID as its
// first outbound message and returns a copy of the stored session.
func (s *Store) StartOrReplace(userID int64, text string, initialMessageID int, chatID int64) models.ChallengeSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &models.ChallengeSession{
		SessionID:  uuid.NewString(),
		UserID:     userID,
		ChatID:     chatID,
		Expected:   text,
		MessageIDs: []int{initialMessageID},
	}
	s.sessions[userID] = sess

	return *sess
}

// RefreshText replaces the expected text of the user's session in place,
// keeping the tracked message ids. If the user has no session, it behaves
// as StartOrReplace anchored to messageID and chatID.
func (s *Store) RefreshText(userID int64, newText string, messageID int, chatID int64) models.ChallengeSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &models.ChallengeSession{
			SessionID:  uuid.NewString(),
			UserID:     userID,
			ChatID:     chatID,
			Expected:   newText,
			MessageIDs: []int{messageID},
		}
		s.sessions[userID] = sess
		return *sess
	}

	sess.Expected = newText
	return *sess
}

// AppendMessage records an additional outbound message id on the user's
// session so it can be retracted later. No-op if the user has no active
// session (the session may have concluded concurrently).
func (s *Store) AppendMessage(userID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return
	}

	sess.MessageIDs = append(sess.MessageIDs, messageID)
}

// Get returns a copy of the user's active session and whether one exists.
func (s *Store) Get(userID int64) (models.ChallengeSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return models.ChallengeSession{}, false
	}

	out := *sess
	out.MessageIDs = append([]int(nil), sess.MessageIDs...)
	return out, true
}

// Clear deletes the user's session, if any.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
