package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-builder-backend/internal/imports"
	"resume-builder-backend/internal/resumes"
	"resume-builder-backend/internal/users"
	"resume-builder-backend/internal/versions"
	"resume-builder-backend/resume/model"
)

const exportPageSize = 100

// Service handles whole-account operations: exporting everything the
// user owns and deleting it all.
type Service struct {
	Resumes  *resumes.Service
	Versions *versions.Service
	Imports  imports.Repo
	Users    *users.Service
}

// NewService constructs a Service.
func NewService(resumeSvc *resumes.Service, versionSvc *versions.Service, importRepo imports.Repo, userSvc *users.Service) *Service {
	return &Service{Resumes: resumeSvc, Versions: versionSvc, Imports: importRepo, Users: userSvc}
}

// ExportedResume is one resume plus its version history.
type ExportedResume struct {
	ResumeID     string            `json:"resumeId"`
	Title        string            `json:"title"`
	Content      model.Content     `json:"content"`
	Tags         []string          `json:"tags"`
	LastModified time.Time         `json:"lastModified"`
	CreatedAt    time.Time         `json:"createdAt"`
	Versions     []ExportedVersion `json:"versions"`
}

// ExportedVersion is one version entry in an export.
type ExportedVersion struct {
	VersionID     string    `json:"versionId"`
	VersionNumber int       `json:"versionNumber"`
	Title         string    `json:"title"`
	Changes       string    `json:"changes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ExportBundle is everything the account owns, in one JSON document.
type ExportBundle struct {
	UserID     string           `json:"userId"`
	Email      string           `json:"email,omitempty"`
	ExportedAt time.Time        `json:"exportedAt"`
	Resumes    []ExportedResume `json:"resumes"`
}

// DeleteResult reports what a full account deletion removed.
type DeleteResult struct {
	DeletedResumes int  `json:"deletedResumes"`
	DeletedUser    bool `json:"deletedUser"`
}

// Export collects the user's resumes and version histories.
func (s *Service) Export(ctx context.Context, userID string) (ExportBundle, error) {
	if strings.TrimSpace(userID) == "" {
		return ExportBundle{}, errors.New("user id is required")
	}

	bundle := ExportBundle{
		UserID:     userID,
		ExportedAt: time.Now().UTC(),
		Resumes:    []ExportedResume{},
	}
	if user, err := s.Users.GetByID(ctx, userID); err == nil {
		bundle.Email = user.Email
	}

	all, err := s.listAllResumes(ctx, userID)
	if err != nil {
		return ExportBundle{}, err
	}

	for _, r := range all {
		history, _, err := s.Versions.List(ctx, userID, r.ID, exportPageSize, 0)
		if err != nil {
			return ExportBundle{}, err
		}
		exported := ExportedResume{
			ResumeID:     r.ID,
			Title:        r.Title,
			Content:      r.Content,
			Tags:         r.Tags,
			LastModified: r.LastModified,
			CreatedAt:    r.CreatedAt,
			Versions:     make([]ExportedVersion, 0, len(history)),
		}
		for _, v := range history {
			exported.Versions = append(exported.Versions, ExportedVersion{
				VersionID:     v.ID,
				VersionNumber: v.VersionNumber,
				Title:         v.Title,
				Changes:       v.Changes,
				CreatedAt:     v.CreatedAt,
			})
		}
		bundle.Resumes = append(bundle.Resumes, exported)
	}
	return bundle, nil
}

// DeleteAll removes every resume, version, import record, and finally
// the user row itself.
func (s *Service) DeleteAll(ctx context.Context, userID string) (DeleteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return DeleteResult{}, errors.New("user id is required")
	}

	all, err := s.listAllResumes(ctx, userID)
	if err != nil {
		return DeleteResult{}, err
	}

	var result DeleteResult
	for _, r := range all {
		if err := s.Resumes.Delete(ctx, userID, r.ID); err != nil {
			return result, err
		}
		result.DeletedResumes++
	}

	if s.Imports != nil {
		if err := s.Imports.DeleteByUser(ctx, userID); err != nil {
			return result, err
		}
	}

	if err := s.Users.Delete(ctx, userID); err != nil {
		return result, err
	}
	result.DeletedUser = true
	return result, nil
}

func (s *Service) listAllResumes(ctx context.Context, userID string) ([]resumes.Resume, error) {
	var all []resumes.Resume
	for offset := 0; ; offset += exportPageSize {
		page, _, err := s.Resumes.List(ctx, userID, resumes.ListFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}
