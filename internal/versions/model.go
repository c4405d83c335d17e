package versions

import (
	"time"

	"resume-builder-backend/resume/model"
)

// Snapshot is the full value copy of a resume's mutable fields at the
// moment a version was taken. SchemaVersion tags the shape so old
// snapshots stay readable if the content model evolves.
type Snapshot struct {
	SchemaVersion int           `json:"schemaVersion"`
	Title         string        `json:"title"`
	Content       model.Content `json:"content"`
	Tags          []string      `json:"tags,omitempty"`
}

// Version is an immutable numbered snapshot of a resume. Records are
// never mutated after creation; they disappear only with their resume
// or by explicit deletion.
type Version struct {
	ID            string
	ResumeID      string
	VersionNumber int
	Title         string
	Changes       string
	Snapshot      Snapshot
	CreatedBy     string
	CreatedAt     time.Time
}
