package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/scms-platform/identity-service/internal/domain"
)

const uniqueViolation = "23505"

type UserStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, now: time.Now}
}

const userColumns = `user_id, email, password_hash, role, created_at, is_active, failed_login_attempts, mfa_enabled`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.IsActive,
		&u.FailedLoginAttempts,
		&u.MFAEnabled,
	)
	return u, err
}

func (r *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = lower($1)
LIMIT 1;
`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrStoreUnavailable(err)
	}
	return u, nil
}

func (r *UserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE user_id = $1
LIMIT 1;
`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrStoreUnavailable(err)
	}
	return u, nil
}

// Create allocates the next id from the per-year counter row and inserts the
// user in one transaction. The counter upsert takes a row lock, so concurrent
// registrations serialize on it and can never share an id; the unique index
// on email backs up the service-level duplicate check.
func (r *UserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, domain.ErrStoreUnavailable(err)
	}
	defer tx.Rollback()

	year := r.now().Year()

	const counterQ = `
INSERT INTO user_id_counters (year, seq)
VALUES ($1, 1)
ON CONFLICT (year) DO UPDATE SET seq = user_id_counters.seq + 1
RETURNING seq;
`
	var seq int
	if err := tx.QueryRowContext(ctx, counterQ, year).Scan(&seq); err != nil {
		return domain.User{}, domain.ErrStoreUnavailable(err)
	}
	u.ID = domain.FormatUserID(year, seq)

	const insertQ = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8);
`
	if _, err := tx.ExecContext(ctx, insertQ,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt,
		u.IsActive, u.FailedLoginAttempts, u.MFAEnabled,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailExists()
		}
		return domain.User{}, domain.ErrStoreUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, domain.ErrStoreUnavailable(err)
	}
	return u, nil
}

func (r *UserStore) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY user_id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.ErrStoreUnavailable(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return out, nil
}
