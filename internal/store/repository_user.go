// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It works against either supported driver; the placeholder format is
// taken from the wrapped [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, event-level tracing of database interactions.
type userRepository struct {
	db       *DB
	builder  sq.StatementBuilderType
	cooldown time.Duration

	// now is the clock used for cooldown math and last_access stamping.
	// Overridable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection, with the cooldown window taken from cfg.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, cfg config.Access, logger *logger.Logger) UserRepository {
	logger.Debug().Dur("cooldown", cfg.Cooldown).Msg("creating user repository")
	return &userRepository{
		db:       db,
		builder:  sq.StatementBuilder.PlaceholderFormat(db.placeholder),
		cooldown: cfg.Cooldown,
		now:      time.Now,
		logger:   logger,
	}
}

// IsRegistered reports whether a ledger record exists for the user.
//
// Error handling: any driver-level failure is wrapped in
// [ErrExecutingQuery] and propagated: a read fault is never treated as
// "no record".
func (r *userRepository) IsRegistered(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("1").
		From("users").
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.IsRegistered").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.IsRegistered").Msg("error querying user existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// CanAccess reports whether the user may start a new challenge: true if no
// ledger record exists, the record has never been accessed, or at least the
// cooldown window has elapsed since last_access.
//
// Error handling mirrors [userRepository.IsRegistered]: read faults
// propagate so the caller can fail closed.
func (r *userRepository) CanAccess(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("last_access").
		From("users").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CanAccess").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var lastAccess sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&lastAccess)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CanAccess").Msg("error querying last access")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !lastAccess.Valid {
		return true, nil
	}

	return r.now().Sub(lastAccess.Time) >= r.cooldown, nil
}

// Register upserts the user's ledger record in a single atomic statement:
// insert on first success, overwrite display metadata and last_access on
// every subsequent one.
//
// Under PostgreSQL, two concurrent first-time upserts for the same user can
// race into a unique violation; that case is retried once since the second
// attempt takes the update arm of the conflict clause.
func (r *userRepository) Register(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert("users").
		Columns("user_id", "username", "first_name", "last_name", "last_access").
		Values(user.UserID, user.Username, user.FirstName, user.LastName, r.now()).
		Suffix(`ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			last_access = excluded.last_access`).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Register").Msg("error building upsert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil && postgresError(err) == pgerrcode.UniqueViolation {
		log.Warn().Int64("user_id", user.UserID).Msg("concurrent registration race, retrying upsert")
		_, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Str("func", "*userRepository.Register").Msg("error upserting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
