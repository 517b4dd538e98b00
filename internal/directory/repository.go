package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Repo is the Postgres-backed directory.
//
// Assumed schema:
//
//	CREATE TABLE users (
//	    id            uuid PRIMARY KEY,
//	    username      text NOT NULL,
//	    password_hash text NOT NULL,
//	    roles         jsonb NOT NULL DEFAULT '["Employee"]',
//	    active        boolean NOT NULL DEFAULT true,
//	    created_at    timestamptz NOT NULL,
//	    updated_at    timestamptz NOT NULL
//	);
//	CREATE UNIQUE INDEX users_username_ci ON users (LOWER(username));
//
// The LOWER(...) unique index is the collation rule every lookup below
// mirrors; FindByUsername must never use plain equality.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const userColumns = `id, username, password_hash, roles, active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var roles []byte
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&roles,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if err := json.Unmarshal(roles, &u.Roles); err != nil {
		return User{}, fmt.Errorf("decode roles for user %s: %w", u.ID, err)
	}
	return u, nil
}

func encodeRoles(roles []string) ([]byte, error) {
	if roles == nil {
		roles = []string{}
	}
	return json.Marshal(roles)
}

func (r *Repo) FindByUsername(ctx context.Context, username string) (User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE LOWER(username) = LOWER($1)
`
	return scanUser(r.db.QueryRowContext(ctx, q, username))
}

func (r *Repo) FindByID(ctx context.Context, id string) (User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY username
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, u User) (User, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	roles, err := encodeRoles(u.Roles)
	if err != nil {
		return User{}, err
	}

	const q = `
INSERT INTO users (id, username, password_hash, roles, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	if _, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, roles, u.Active, u.CreatedAt, u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return u, nil
}

func (r *Repo) Update(ctx context.Context, u User) (User, error) {
	u.UpdatedAt = time.Now().UTC()

	roles, err := encodeRoles(u.Roles)
	if err != nil {
		return User{}, err
	}

	const q = `
UPDATE users
SET username = $2, password_hash = $3, roles = $4, active = $5, updated_at = $6
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, roles, u.Active, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if n == 0 {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (User, error) {
	const q = `
DELETE FROM users
WHERE id = $1
RETURNING ` + userColumns + `
`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
