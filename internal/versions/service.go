package versions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder-backend/internal/shared/authz"
	"resume-builder-backend/resume/model"
)

// ResumeRecord is the version store's view of a resume's current state.
type ResumeRecord struct {
	ID           string
	UserID       string
	Title        string
	Content      model.Content
	Tags         []string
	LastModified time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResumeStore is the current-state persistence the version store reads
// from and restores into. Implemented by an adapter over the resumes
// repo in bootstrap; errors are mapped to this package's sentinels.
type ResumeStore interface {
	GetByID(ctx context.Context, resumeID string) (ResumeRecord, error)
	Overwrite(ctx context.Context, resumeID string, snap Snapshot, now time.Time) (ResumeRecord, error)
}

// CreateInput describes a version to record. A nil Snapshot means
// "snapshot the resume's current persisted state". An empty Title gets
// the "Version {n}" default for the assigned number.
type CreateInput struct {
	ResumeID string
	Title    string
	Changes  string
	Snapshot *Snapshot
}

// Service implements the version store operations.
type Service struct {
	Repo    Repo
	Resumes ResumeStore
	Authz   authz.Authorizer
}

// Create records a new version for a resume owned by the caller.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Version, error) {
	if strings.TrimSpace(in.ResumeID) == "" {
		return Version{}, ErrInvalidInput
	}

	rec, err := s.ownedResume(ctx, userID, in.ResumeID)
	if err != nil {
		return Version{}, err
	}

	snap := SnapshotOf(rec)
	if in.Snapshot != nil {
		snap = *in.Snapshot
		if snap.SchemaVersion == 0 {
			snap.SchemaVersion = model.ContentSchemaVersion
		}
	}

	return s.Repo.Create(ctx, Version{
		ID:        uuid.NewString(),
		ResumeID:  in.ResumeID,
		Title:     strings.TrimSpace(in.Title),
		Changes:   in.Changes,
		Snapshot:  snap,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	})
}

// List returns versions of a resume, newest first, without snapshots,
// plus the total count.
func (s *Service) List(ctx context.Context, userID, resumeID string, limit, offset int) ([]Version, int, error) {
	if strings.TrimSpace(resumeID) == "" {
		return nil, 0, ErrInvalidInput
	}
	if _, err := s.ownedResume(ctx, userID, resumeID); err != nil {
		return nil, 0, err
	}
	return s.Repo.ListByResume(ctx, resumeID, limit, offset)
}

// Get returns the full record including the snapshot. Ownership is
// re-derived through the parent resume; the record itself carries no
// user reference.
func (s *Service) Get(ctx context.Context, userID, versionID string) (Version, error) {
	v, err := s.Repo.GetByID(ctx, versionID)
	if err != nil {
		return Version{}, err
	}
	if _, err := s.ownedResume(ctx, userID, v.ResumeID); err != nil {
		return Version{}, err
	}
	return v, nil
}

// Restore overwrites the resume's current state with the target
// version's snapshot. The pre-restore state is always recorded as a new
// version first, so a restore can itself be undone; if that backup
// cannot be written, the resume is left untouched.
func (s *Service) Restore(ctx context.Context, userID, versionID string) (Version, ResumeRecord, error) {
	target, err := s.Repo.GetByID(ctx, versionID)
	if err != nil {
		return Version{}, ResumeRecord{}, err
	}

	rec, err := s.ownedResume(ctx, userID, target.ResumeID)
	if err != nil {
		return Version{}, ResumeRecord{}, err
	}

	backup, err := s.Repo.Create(ctx, Version{
		ID:        uuid.NewString(),
		ResumeID:  rec.ID,
		Title:     fmt.Sprintf("Before restore to v%d", target.VersionNumber),
		Changes:   fmt.Sprintf("Backup before restoring to version %d", target.VersionNumber),
		Snapshot:  SnapshotOf(rec),
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Version{}, ResumeRecord{}, fmt.Errorf("backup before restore: %w", err)
	}

	updated, err := s.Resumes.Overwrite(ctx, rec.ID, target.Snapshot, time.Now().UTC())
	if err != nil {
		return Version{}, ResumeRecord{}, err
	}
	return backup, updated, nil
}

// Delete removes one version record. Sibling records keep their numbers.
func (s *Service) Delete(ctx context.Context, userID, versionID string) error {
	v, err := s.Repo.GetByID(ctx, versionID)
	if err != nil {
		return err
	}
	if _, err := s.ownedResume(ctx, userID, v.ResumeID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, versionID)
}

// SnapshotOf copies a resume record into a snapshot value.
func SnapshotOf(rec ResumeRecord) Snapshot {
	return Snapshot{
		SchemaVersion: model.ContentSchemaVersion,
		Title:         rec.Title,
		Content:       rec.Content.Clone(),
		Tags:          append([]string(nil), rec.Tags...),
	}
}

func (s *Service) ownedResume(ctx context.Context, userID, resumeID string) (ResumeRecord, error) {
	rec, err := s.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		return ResumeRecord{}, err
	}
	if err := s.Authz.CanAccess(ctx, userID, authz.Resource{Kind: "resume", ID: rec.ID, OwnerID: rec.UserID}); err != nil {
		if errors.Is(err, authz.ErrDenied) {
			return ResumeRecord{}, ErrForbidden
		}
		return ResumeRecord{}, err
	}
	return rec, nil
}
