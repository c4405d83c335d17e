package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, title, content, tags, last_modified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	contentJSON, err := json.Marshal(resume.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	tagsJSON, err := marshalTags(resume.Tags)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		contentJSON,
		tagsJSON,
		resume.LastModified,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

// GetByID fetches a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, title, content, tags, last_modified, created_at, updated_at
FROM resumes
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, resumeID)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByUser lists resumes newest-modified-first with an optional title
// search and tag filter, returning the total match count for pagination.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Resume, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	const where = `
WHERE user_id = $1
  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
  AND ($3 = '' OR EXISTS (
      SELECT 1 FROM jsonb_array_elements_text(tags) t WHERE t = $3))`

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes`+where, userID, filter.Search, filter.Tag).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
SELECT id, user_id, title, content, tags, last_modified, created_at, updated_at
FROM resumes` + where + `
ORDER BY last_modified DESC
LIMIT $4 OFFSET $5`

	rows, err := r.DB.QueryContext(ctx, query, userID, filter.Search, filter.Tag, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, resume)
	}
	return out, total, rows.Err()
}

// Update overwrites the mutable fields of a resume.
func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes
SET title = $2, content = $3, tags = $4, last_modified = $5, updated_at = $6
WHERE id = $1`

	contentJSON, err := json.Marshal(resume.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	tagsJSON, err := marshalTags(resume.Tags)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.Title,
		contentJSON,
		tagsJSON,
		resume.LastModified,
		resume.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a resume. Versions go with it via the FK cascade.
func (r *PGRepo) Delete(ctx context.Context, resumeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var contentJSON, tagsJSON []byte
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&contentJSON,
		&tagsJSON,
		&resume.LastModified,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if err := json.Unmarshal(contentJSON, &resume.Content); err != nil {
		return Resume{}, fmt.Errorf("unmarshal content: %w", err)
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &resume.Tags); err != nil {
			return Resume{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	return resume, nil
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	out, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
