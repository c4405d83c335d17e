package imports

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo implements Repo in memory for dev and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	files map[string]ImportedFile
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{files: make(map[string]ImportedFile)}
}

// Create stores an imported file record.
func (r *MemoryRepo) Create(ctx context.Context, file ImportedFile) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[file.ID] = file
	return nil
}

// ListByUser lists imported files ordered newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]ImportedFile, error) {
	_ = ctx
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ImportedFile
	for _, file := range r.files {
		if file.UserID == userID {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteByUser removes every imported file record owned by a user.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, file := range r.files {
		if file.UserID == userID {
			delete(r.files, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
