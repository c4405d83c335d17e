package versions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// maxNumberRetries bounds how often Create re-runs the insert when two
// concurrent creates for one resume computed the same next number.
const maxNumberRetries = 3

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a version record, assigning the next version number in
// the same statement. The unique index on (resume_id, version_number)
// turns a concurrent double-assignment into a conflict, which is retried.
func (r *PGRepo) Create(ctx context.Context, v Version) (Version, error) {
	const query = `
INSERT INTO resume_versions (id, resume_id, version_number, title, changes, snapshot, created_by, created_at)
SELECT $1, $2, next.n,
       CASE WHEN $3 = '' THEN 'Version ' || next.n::text ELSE $3 END,
       $4, $5, $6, $7
FROM (
    SELECT COALESCE(MAX(version_number), 0) + 1 AS n
    FROM resume_versions
    WHERE resume_id = $2
) AS next
RETURNING version_number, title`

	snapshotJSON, err := json.Marshal(v.Snapshot)
	if err != nil {
		return Version{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		err = r.DB.QueryRowContext(ctx, query,
			v.ID,
			v.ResumeID,
			v.Title,
			v.Changes,
			snapshotJSON,
			v.CreatedBy,
			v.CreatedAt,
		).Scan(&v.VersionNumber, &v.Title)
		if err == nil {
			return v, nil
		}
		if !isUniqueViolation(err) {
			return Version{}, err
		}
	}
	return Version{}, ErrConflict
}

// GetByID returns the full record including the snapshot.
func (r *PGRepo) GetByID(ctx context.Context, versionID string) (Version, error) {
	const query = `
SELECT id, resume_id, version_number, title, changes, snapshot, created_by, created_at
FROM resume_versions
WHERE id = $1
LIMIT 1`
	var v Version
	var snapshotJSON []byte
	err := r.DB.QueryRowContext(ctx, query, versionID).Scan(
		&v.ID,
		&v.ResumeID,
		&v.VersionNumber,
		&v.Title,
		&v.Changes,
		&snapshotJSON,
		&v.CreatedBy,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Version{}, ErrNotFound
		}
		return Version{}, err
	}
	if err := json.Unmarshal(snapshotJSON, &v.Snapshot); err != nil {
		return Version{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return v, nil
}

// ListByResume lists versions newest-number-first. The snapshot column is
// deliberately not selected; list responses stay small no matter how
// large the documents grow.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string, limit, offset int) ([]Version, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM resume_versions WHERE resume_id = $1`, resumeID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT id, resume_id, version_number, title, changes, created_by, created_at
FROM resume_versions
WHERE resume_id = $1
ORDER BY version_number DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, resumeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Version
	for rows.Next() {
		var v Version
		if err := rows.Scan(
			&v.ID,
			&v.ResumeID,
			&v.VersionNumber,
			&v.Title,
			&v.Changes,
			&v.CreatedBy,
			&v.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// Delete removes one version record. Sibling numbers are untouched, so
// gaps in the sequence are a legal post-condition.
func (r *PGRepo) Delete(ctx context.Context, versionID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_versions WHERE id = $1`, versionID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByResume removes all versions of a resume.
func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resume_versions WHERE resume_id = $1`, resumeID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ Repo = (*PGRepo)(nil)
