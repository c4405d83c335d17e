package resumes

import (
	"context"
	"errors"
	"sync"
	"testing"

	"resume-builder-backend/internal/shared/authz"
	"resume-builder-backend/resume/model"
)

type snapshotCall struct {
	Resume   Resume
	Title    string
	Changes  string
	AuthorID string
}

// fakeVersioner records snapshot requests instead of persisting them.
type fakeVersioner struct {
	mu     sync.Mutex
	calls  []snapshotCall
	purged []string
	err    error
}

func (f *fakeVersioner) WriteSnapshot(ctx context.Context, r Resume, title, changes, authorID string) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, snapshotCall{Resume: r, Title: title, Changes: changes, AuthorID: authorID})
	return nil
}

func (f *fakeVersioner) PurgeByResume(ctx context.Context, resumeID string) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purged = append(f.purged, resumeID)
	return nil
}

func newTestService(t *testing.T) (*Service, *MemoryRepo, *fakeVersioner) {
	t.Helper()
	repo := NewMemoryRepo()
	vers := &fakeVersioner{}
	svc := &Service{Repo: repo, Versions: vers, Authz: authz.OwnerOnly{}}
	return svc, repo, vers
}

func sampleContent() model.Content {
	return model.Content{
		PersonalInfo: model.PersonalInfo{FullName: "Dana Smith", Email: "dana@example.com"},
		Skills:       model.Skills{Technical: []string{"Go"}},
	}
}

func TestCreateSnapshotsInitialVersion(t *testing.T) {
	svc, _, vers := newTestService(t)

	r, err := svc.Create(context.Background(), "user-1", "Backend Engineer", sampleContent(), []string{"backend"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ID == "" || r.UserID != "user-1" {
		t.Fatalf("unexpected resume: %+v", r)
	}
	if len(vers.calls) != 1 {
		t.Fatalf("snapshot calls = %d, want 1", len(vers.calls))
	}
	call := vers.calls[0]
	if call.Title != "Initial Version" || call.Changes != "Resume created" {
		t.Fatalf("snapshot metadata = %q / %q", call.Title, call.Changes)
	}
	if call.AuthorID != "user-1" {
		t.Fatalf("snapshot author = %q", call.AuthorID)
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.Create(context.Background(), "user-1", "   ", sampleContent(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateStoresDeepCopyOfContent(t *testing.T) {
	svc, repo, _ := newTestService(t)

	content := sampleContent()
	r, err := svc.Create(context.Background(), "user-1", "Backend Engineer", content, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	content.Skills.Technical[0] = "COBOL"
	stored, err := repo.GetByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got := stored.Content.Skills.Technical[0]; got != "Go" {
		t.Fatalf("caller mutation leaked into stored content: %q", got)
	}
}

func TestUpdateVersionFlagSnapshotsPostUpdateState(t *testing.T) {
	svc, _, vers := newTestService(t)
	r, _ := svc.Create(context.Background(), "user-1", "Backend Engineer", sampleContent(), nil)

	newTitle := "Staff Engineer"
	updated, err := svc.Update(context.Background(), "user-1", r.ID, UpdateInput{
		Title:          &newTitle,
		CreateVersion:  true,
		VersionTitle:   "Promotion draft",
		VersionChanges: "retitled",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Staff Engineer" {
		t.Fatalf("title = %q", updated.Title)
	}
	if !updated.LastModified.After(r.LastModified) && !updated.LastModified.Equal(r.LastModified) {
		t.Fatalf("last modified went backwards")
	}

	if len(vers.calls) != 2 {
		t.Fatalf("snapshot calls = %d, want 2 (create + update)", len(vers.calls))
	}
	last := vers.calls[1]
	if last.Title != "Promotion draft" || last.Changes != "retitled" {
		t.Fatalf("snapshot metadata = %q / %q", last.Title, last.Changes)
	}
	if last.Resume.Title != "Staff Engineer" {
		t.Fatalf("snapshot captured pre-update state: %q", last.Resume.Title)
	}
}

func TestUpdateWithoutFlagDoesNotSnapshot(t *testing.T) {
	svc, _, vers := newTestService(t)
	r, _ := svc.Create(context.Background(), "user-1", "Backend Engineer", sampleContent(), nil)

	newTitle := "Renamed"
	if _, err := svc.Update(context.Background(), "user-1", r.ID, UpdateInput{Title: &newTitle}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(vers.calls) != 1 {
		t.Fatalf("snapshot calls = %d, want 1 (create only)", len(vers.calls))
	}
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	r, _ := svc.Create(context.Background(), "user-1", "Backend Engineer", sampleContent(), nil)

	newTitle := "Hijacked"
	if _, err := svc.Update(context.Background(), "intruder", r.ID, UpdateInput{Title: &newTitle}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestDuplicateStartsFreshHistory(t *testing.T) {
	svc, _, vers := newTestService(t)
	src, _ := svc.Create(context.Background(), "user-1", "Backend Engineer", sampleContent(), []string{"backend"})

	dup, err := svc.Duplicate(context.Background(), "user-1", src.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == src.ID {
		t.Fatalf("duplicate shares the source ID")
	}
	if dup.Title != "Backend Engineer (Copy)" {
		t.Fatalf("duplicate title = %q", dup.Title)
	}

	if len(vers.calls) != 2 {
		t.Fatalf("snapshot calls = %d, want 2", len(vers.calls))
	}
	last := vers.calls[1]
	if last.Resume.ID != dup.ID {
		t.Fatalf("duplicate snapshot targets resume %q", last.Resume.ID)
	}
	if last.Title != "Initial Version" || last.Changes != "Duplicated from Backend Engineer" {
		t.Fatalf("snapshot metadata = %q / %q", last.Title, last.Changes)
	}
}

func TestDeletePurgesVersions(t *testing.T) {
	svc, repo, vers := newTestService(t)
	r, _ := svc.Create(context.Background(), "user-1", "Backend Engineer", sampleContent(), nil)

	if err := svc.Delete(context.Background(), "user-1", r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("resume still present after delete")
	}
	if len(vers.purged) != 1 || vers.purged[0] != r.ID {
		t.Fatalf("version purge calls = %v", vers.purged)
	}
}

func TestTagsAreTrimmedAndDeduplicated(t *testing.T) {
	svc, _, _ := newTestService(t)

	r, err := svc.Create(context.Background(), "user-1", "Backend Engineer", sampleContent(),
		[]string{" backend ", "backend", "", "remote"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := []string{"backend", "remote"}
	if len(r.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", r.Tags, want)
	}
	for i := range want {
		if r.Tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", r.Tags, want)
		}
	}
}
