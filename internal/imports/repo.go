package imports

import "context"

// Repo defines persistence operations for imported files.
type Repo interface {
	Create(ctx context.Context, file ImportedFile) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]ImportedFile, error)
	DeleteByUser(ctx context.Context, userID string) error
}
