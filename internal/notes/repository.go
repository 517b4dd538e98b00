package notes

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Repo is the Postgres-backed notes store.
//
// Assumed schema:
//
//	CREATE TABLE notes (
//	    id         uuid PRIMARY KEY,
//	    user_id    uuid NOT NULL REFERENCES users(id),
//	    title      text NOT NULL,
//	    body       text NOT NULL,
//	    completed  boolean NOT NULL DEFAULT false,
//	    created_at timestamptz NOT NULL,
//	    updated_at timestamptz NOT NULL
//	);
//	CREATE UNIQUE INDEX notes_title_ci ON notes (LOWER(title));
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const noteColumns = `id, user_id, title, body, completed, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var n Note
	if err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Body,
		&n.Completed,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return n, nil
}

func (r *Repo) List(ctx context.Context) ([]Note, error) {
	const q = `
SELECT ` + noteColumns + `
FROM notes
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) FindByID(ctx context.Context, id string) (Note, error) {
	const q = `
SELECT ` + noteColumns + `
FROM notes
WHERE id = $1
`
	return scanNote(r.db.QueryRowContext(ctx, q, id))
}

func (r *Repo) FindByTitle(ctx context.Context, title string) (Note, error) {
	const q = `
SELECT ` + noteColumns + `
FROM notes
WHERE LOWER(title) = LOWER($1)
`
	return scanNote(r.db.QueryRowContext(ctx, q, title))
}

func (r *Repo) Create(ctx context.Context, n Note) (Note, error) {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	const q = `
INSERT INTO notes (id, user_id, title, body, completed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	if _, err := r.db.ExecContext(ctx, q, n.ID, n.UserID, n.Title, n.Body, n.Completed, n.CreatedAt, n.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return Note{}, ErrDuplicateTitle
		}
		return Note{}, err
	}
	return n, nil
}

func (r *Repo) Update(ctx context.Context, n Note) (Note, error) {
	n.UpdatedAt = time.Now().UTC()

	const q = `
UPDATE notes
SET user_id = $2, title = $3, body = $4, completed = $5, updated_at = $6
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, n.ID, n.UserID, n.Title, n.Body, n.Completed, n.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Note{}, ErrDuplicateTitle
		}
		return Note{}, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return Note{}, err
	}
	if count == 0 {
		return Note{}, ErrNotFound
	}
	return n, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (Note, error) {
	const q = `
DELETE FROM notes
WHERE id = $1
RETURNING ` + noteColumns + `
`
	return scanNote(r.db.QueryRowContext(ctx, q, id))
}

func (r *Repo) CountByUser(ctx context.Context, userID string) (int, error) {
	const q = `
SELECT COUNT(*)
FROM notes
WHERE user_id = $1
`
	var n int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
