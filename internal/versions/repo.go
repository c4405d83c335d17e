package versions

import "context"

// Repo defines persistence operations for version records. Create
// assigns the next version number atomically with respect to other
// creates for the same resume; two concurrent calls never both get the
// same number.
type Repo interface {
	Create(ctx context.Context, v Version) (Version, error)
	GetByID(ctx context.Context, versionID string) (Version, error)
	ListByResume(ctx context.Context, resumeID string, limit, offset int) ([]Version, int, error)
	Delete(ctx context.Context, versionID string) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
