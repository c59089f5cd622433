// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ChallengeSession is the ephemeral state of one user's outstanding
// verification challenge. It lives only in process memory: a restart
// drops all sessions and affected users simply request access again.
//
// At most one session exists per user at any time. A new entry request
// while a session is active replaces it rather than being rejected.
type ChallengeSession struct {
	// SessionID is a random identifier used to correlate log entries
	// belonging to one challenge lifecycle. It has no other meaning.
	SessionID string

	// UserID is the identity of the user this session belongs to.
	UserID int64

	// ChatID is the conversation all of the session's messages live in.
	ChatID int64

	// Expected is the text the user must transcribe from the challenge
	// image. Replaced in place when the user refreshes the challenge.
	Expected string

	// MessageIDs are the outbound messages issued during this session,
	// in send order: the challenge prompt first, then one entry per
	// failed attempt. All of them are retracted together on success.
	MessageIDs []int
}
