package postgres

import (
	"context"
	"database/sql"

	"github.com/scms-platform/identity-service/internal/domain"
)

// Schema is applied at startup when the postgres driver is selected. Both
// statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id               TEXT PRIMARY KEY,
    email                 TEXT NOT NULL UNIQUE,
    password_hash         TEXT NOT NULL,
    role                  TEXT NOT NULL,
    created_at            TIMESTAMPTZ NOT NULL,
    is_active             BOOLEAN NOT NULL DEFAULT TRUE,
    failed_login_attempts INTEGER NOT NULL DEFAULT 0,
    mfa_enabled           BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS user_id_counters (
    year INTEGER PRIMARY KEY,
    seq  INTEGER NOT NULL
);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}
