package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts the user or refreshes profile fields on conflict.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, given_name, family_name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
ON CONFLICT (id) DO UPDATE SET
    email = EXCLUDED.email,
    full_name = EXCLUDED.full_name,
    given_name = EXCLUDED.given_name,
    family_name = EXCLUDED.family_name,
    picture_url = EXCLUDED.picture_url,
    updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.GivenName,
		user.FamilyName,
		user.PictureURL,
		now,
	)
	return err
}

// GetByID fetches a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, given_name, family_name, picture_url, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.GivenName,
		&user.FamilyName,
		&user.PictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// Delete removes a user row.
func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM users WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
