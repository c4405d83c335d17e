package resumes

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo stores resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

// Create stores the resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = cloneResume(resume)
	return nil
}

// GetByID returns a resume by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return cloneResume(resume), nil
}

// ListByUser returns resumes for a user, newest-modified-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Resume, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var matches []Resume
	for _, resume := range r.byID {
		if resume.UserID != userID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(resume.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Tag != "" && !hasTag(resume.Tags, filter.Tag) {
			continue
		}
		matches = append(matches, cloneResume(resume))
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].LastModified.After(matches[j].LastModified)
	})

	total := len(matches)
	if offset >= total {
		return []Resume{}, total, nil
	}
	end := total
	if offset+limit < end {
		end = offset + limit
	}
	return matches[offset:end], total, nil
}

// Update overwrites the stored resume.
func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[resume.ID]; !ok {
		return ErrNotFound
	}
	r.byID[resume.ID] = cloneResume(resume)
	return nil
}

// Delete removes the resume.
func (r *MemoryRepo) Delete(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[resumeID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, resumeID)
	return nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func cloneResume(r Resume) Resume {
	out := r
	out.Content = r.Content.Clone()
	out.Tags = append([]string(nil), r.Tags...)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
