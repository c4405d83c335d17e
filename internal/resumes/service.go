package resumes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder-backend/internal/shared/authz"
	"resume-builder-backend/resume/model"
)

// Versioner records immutable snapshots of resumes. Implemented by the
// version store; wired through an adapter in bootstrap.
type Versioner interface {
	WriteSnapshot(ctx context.Context, r Resume, title, changes, authorID string) error
	PurgeByResume(ctx context.Context, resumeID string) error
}

// UpdateInput carries the mutable fields of an update. Nil pointers leave
// the corresponding field untouched.
type UpdateInput struct {
	Title   *string
	Content *model.Content
	Tags    *[]string

	// CreateVersion snapshots the post-update state as a new version.
	CreateVersion  bool
	VersionTitle   string
	VersionChanges string
}

// Service contains business logic for resumes.
type Service struct {
	Repo     Repo
	Versions Versioner
	Authz    authz.Authorizer
}

// Create stores a new resume and snapshots it as version 1.
func (s *Service) Create(ctx context.Context, userID, title string, content model.Content, tags []string) (Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, ErrInvalidInput
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Resume{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		Content:      content.Clone(),
		Tags:         normalizeTags(tags),
		LastModified: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	if err := s.Versions.WriteSnapshot(ctx, resume, "Initial Version", "Resume created", userID); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Get returns a resume after verifying ownership.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.authorized(ctx, userID, resumeID)
}

// List returns the caller's resumes plus the total match count.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Resume, int, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, 0, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, filter)
}

// Update overwrites the mutable fields of a resume and optionally
// snapshots the updated state as a new version.
func (s *Service) Update(ctx context.Context, userID, resumeID string, in UpdateInput) (Resume, error) {
	resume, err := s.authorized(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Resume{}, ErrInvalidInput
		}
		resume.Title = title
	}
	if in.Content != nil {
		resume.Content = in.Content.Clone()
	}
	if in.Tags != nil {
		resume.Tags = normalizeTags(*in.Tags)
	}

	now := time.Now().UTC()
	resume.LastModified = now
	resume.UpdatedAt = now

	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}

	if in.CreateVersion {
		if err := s.Versions.WriteSnapshot(ctx, resume, in.VersionTitle, in.VersionChanges, userID); err != nil {
			return Resume{}, err
		}
	}
	return resume, nil
}

// Delete removes a resume and all of its versions.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if _, err := s.authorized(ctx, userID, resumeID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, resumeID); err != nil {
		return err
	}
	// Postgres cascades via FK; the purge keeps the memory repo in step.
	return s.Versions.PurgeByResume(ctx, resumeID)
}

// Duplicate copies a resume into a new one owned by the same user. The
// copy starts its own version history at version 1.
func (s *Service) Duplicate(ctx context.Context, userID, resumeID string) (Resume, error) {
	src, err := s.authorized(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	copyResume := Resume{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        src.Title + " (Copy)",
		Content:      src.Content.Clone(),
		Tags:         append([]string(nil), src.Tags...),
		LastModified: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, copyResume); err != nil {
		return Resume{}, err
	}
	if err := s.Versions.WriteSnapshot(ctx, copyResume, "Initial Version", "Duplicated from "+src.Title, userID); err != nil {
		return Resume{}, err
	}
	return copyResume, nil
}

func (s *Service) authorized(ctx context.Context, userID, resumeID string) (Resume, error) {
	if strings.TrimSpace(resumeID) == "" {
		return Resume{}, ErrInvalidInput
	}
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if err := s.Authz.CanAccess(ctx, userID, authz.Resource{Kind: "resume", ID: resume.ID, OwnerID: resume.UserID}); err != nil {
		if errors.Is(err, authz.ErrDenied) {
			return Resume{}, ErrForbidden
		}
		return Resume{}, err
	}
	return resume, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
