package imports

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an imported file record.
func (r *PGRepo) Create(ctx context.Context, file ImportedFile) error {
	const query = `
INSERT INTO imported_files (id, user_id, resume_id, file_name, mime_type, size_bytes, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var resumeID sql.NullString
	if file.ResumeID != "" {
		resumeID = sql.NullString{String: file.ResumeID, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		file.ID,
		file.UserID,
		resumeID,
		file.FileName,
		file.MimeType,
		file.SizeBytes,
		file.StorageKey,
		file.CreatedAt,
	)
	return err
}

// ListByUser lists imported files ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]ImportedFile, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, resume_id, file_name, mime_type, size_bytes, storage_key, created_at
FROM imported_files
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ImportedFile
	for rows.Next() {
		var file ImportedFile
		var resumeID sql.NullString
		if err := rows.Scan(
			&file.ID,
			&file.UserID,
			&resumeID,
			&file.FileName,
			&file.MimeType,
			&file.SizeBytes,
			&file.StorageKey,
			&file.CreatedAt,
		); err != nil {
			return nil, err
		}
		if resumeID.Valid {
			file.ResumeID = resumeID.String
		}
		out = append(out, file)
	}
	return out, rows.Err()
}

// DeleteByUser removes every imported file record owned by a user.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM imported_files WHERE user_id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
