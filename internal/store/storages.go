package store

import (
	"context"

	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
)

// Storages aggregates all persistence-layer components for injection into
// the service layer.
type Storages struct {
	UserRepository UserRepository

	db *DB
}

// NewStorages opens the configured database, applies migrations, and wires
// up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, accessCfg config.Access, log *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, accessCfg, log),
		db:             db,
	}, nil
}

// Ping reports database liveness; used by the ops readiness endpoint.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
