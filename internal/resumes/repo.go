package resumes

import "context"

// ListFilter narrows ListByUser results.
type ListFilter struct {
	Search string
	Tag    string
	Limit  int
	Offset int
}

// Repo defines persistence operations for resumes. Ownership is checked
// by the service layer; repos return whatever row matches the ID.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Resume, int, error)
	Update(ctx context.Context, r Resume) error
	Delete(ctx context.Context, resumeID string) error
}
