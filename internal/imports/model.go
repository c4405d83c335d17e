package imports

import "time"

// ImportedFile records an uploaded resume file and the resume seeded
// from it.
type ImportedFile struct {
	ID         string
	UserID     string
	ResumeID   string
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	CreatedAt  time.Time
}
