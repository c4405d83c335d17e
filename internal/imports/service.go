package imports

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder-backend/internal/resumes"
	"resume-builder-backend/internal/shared/storage/object"
	"resume-builder-backend/resume/model"
)

// Service imports an uploaded resume file: the original is kept in object
// storage, its text is extracted, and a new resume is seeded from it.
type Service struct {
	Store   object.ObjectStore
	Repo    Repo
	Resumes *resumes.Service
}

// Import stores the file and creates a resume seeded from its text.
func (s *Service) Import(ctx context.Context, userID, fileName string, r io.Reader) (resumes.Resume, ImportedFile, error) {
	if fileName == "" {
		return resumes.Resume{}, ImportedFile{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return resumes.Resume{}, ImportedFile{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return resumes.Resume{}, ImportedFile{}, err
	}

	text, err := ExtractText(data, mimeType, fileName)
	if err != nil {
		return resumes.Resume{}, ImportedFile{}, err
	}
	if strings.TrimSpace(text) == "" {
		return resumes.Resume{}, ImportedFile{}, ErrEmptyDocument
	}

	title := titleFromFileName(fileName)
	resume, err := s.Resumes.Create(ctx, userID, title, seedContent(text), []string{"imported"})
	if err != nil {
		return resumes.Resume{}, ImportedFile{}, err
	}

	file := ImportedFile{
		ID:         uuid.NewString(),
		UserID:     userID,
		ResumeID:   resume.ID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, file); err != nil {
		return resumes.Resume{}, ImportedFile{}, err
	}

	return resume, file, nil
}

// List returns the caller's import history.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]ImportedFile, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?[0-9][0-9()\-. ]{7,}[0-9]`)
)

// seedContent builds a starting resume from extracted text. Only contact
// details are picked out; the rest lands in a custom section so nothing
// the document said is lost.
func seedContent(text string) model.Content {
	var content model.Content

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			content.PersonalInfo.FullName = trimmed
			break
		}
	}
	if email := emailRe.FindString(text); email != "" {
		content.PersonalInfo.Email = email
	}
	if phone := phoneRe.FindString(text); phone != "" {
		content.PersonalInfo.Phone = strings.TrimSpace(phone)
	}

	content.CustomSections = []model.CustomSection{{
		ID:    uuid.NewString(),
		Title: "Imported Content",
		Items: []model.CustomItem{{
			ID:   uuid.NewString(),
			Body: strings.TrimSpace(text),
		}},
	}}
	return content
}

func titleFromFileName(fileName string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Imported Resume"
	}
	return base
}
