package resumes

import (
	"time"

	"resume-builder-backend/resume/model"
)

// Resume is the current, mutable working state of one resume. Version
// snapshots are stored separately and never change when this does.
type Resume struct {
	ID           string
	UserID       string
	Title        string
	Content      model.Content
	Tags         []string
	LastModified time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
