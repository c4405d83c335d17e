package versions

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepo stores version records in memory and is safe for concurrent
// use. Number assignment happens under the lock, so concurrent creates
// for one resume serialize instead of colliding.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Version
	byResume map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Version),
		byResume: make(map[string][]string),
	}
}

// Create stores the version with the next number for its resume.
func (r *MemoryRepo) Create(ctx context.Context, v Version) (Version, error) {
	if err := ctx.Err(); err != nil {
		return Version{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	max := 0
	for _, id := range r.byResume[v.ResumeID] {
		if n := r.byID[id].VersionNumber; n > max {
			max = n
		}
	}
	v.VersionNumber = max + 1
	if v.Title == "" {
		v.Title = fmt.Sprintf("Version %d", v.VersionNumber)
	}

	v.Snapshot.Content = v.Snapshot.Content.Clone()
	v.Snapshot.Tags = append([]string(nil), v.Snapshot.Tags...)
	r.byID[v.ID] = v
	r.byResume[v.ResumeID] = append(r.byResume[v.ResumeID], v.ID)
	return v, nil
}

// GetByID returns the full record including the snapshot.
func (r *MemoryRepo) GetByID(ctx context.Context, versionID string) (Version, error) {
	if err := ctx.Err(); err != nil {
		return Version{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[versionID]
	if !ok {
		return Version{}, ErrNotFound
	}
	v.Snapshot.Content = v.Snapshot.Content.Clone()
	v.Snapshot.Tags = append([]string(nil), v.Snapshot.Tags...)
	return v, nil
}

// ListByResume returns versions newest-number-first without snapshots.
func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string, limit, offset int) ([]Version, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	ids := r.byResume[resumeID]
	matches := make([]Version, 0, len(ids))
	for _, id := range ids {
		v := r.byID[id]
		v.Snapshot = Snapshot{}
		matches = append(matches, v)
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].VersionNumber > matches[j].VersionNumber
	})

	total := len(matches)
	if offset >= total {
		return []Version{}, total, nil
	}
	end := total
	if offset+limit < end {
		end = offset + limit
	}
	return matches[offset:end], total, nil
}

// Delete removes one version record.
func (r *MemoryRepo) Delete(ctx context.Context, versionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[versionID]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, versionID)
	ids := r.byResume[v.ResumeID]
	for i, id := range ids {
		if id == versionID {
			r.byResume[v.ResumeID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteByResume removes all versions of a resume.
func (r *MemoryRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.byResume[resumeID] {
		delete(r.byID, id)
	}
	delete(r.byResume, resumeID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
