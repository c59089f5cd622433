package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/migrations"
)

// DB wraps the raw database handle together with the driver-specific bits
// the repositories need: the squirrel placeholder format and the goose
// migration dialect.
type DB struct {
	*sql.DB
	placeholder sq.PlaceholderFormat
	dialect     string
	logger      *logger.Logger
}

// NewDB opens a database connection for the configured driver.
// Supported drivers: "sqlite3" and "pgx".
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "sqlite3":
		return NewConnectSQLite(ctx, cfg, log)
	case "pgx":
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies all embedded schema migrations to the database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
