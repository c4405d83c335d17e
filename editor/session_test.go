package editor

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"resume-builder-backend/resume/model"
)

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

// timerRecorder captures debounce timers so tests fire them by hand.
type timerRecorder struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (r *timerRecorder) factory(d time.Duration, fn func()) timerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &fakeTimer{fn: fn}
	r.timers = append(r.timers, t)
	return t
}

func (r *timerRecorder) fireLast() {
	r.mu.Lock()
	t := r.timers[len(r.timers)-1]
	r.mu.Unlock()
	t.fn()
}

func (r *timerRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

type fakeSaver struct {
	mu    sync.Mutex
	calls []Document
	err   error
}

func (s *fakeSaver) SaveCurrent(ctx context.Context, resumeID string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, doc)
	return s.err
}

func (s *fakeSaver) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestSession(t *testing.T, doc Document) (*Session, *fakeSaver, *timerRecorder) {
	t.Helper()
	saver := &fakeSaver{}
	rec := &timerRecorder{}
	sess := NewSession("resume-1", doc, saver, Options{
		Debounce: 50 * time.Millisecond,
		newTimer: rec.factory,
	})
	return sess, saver, rec
}

func sampleDoc() Document {
	return Document{
		Title: "Backend Engineer",
		Content: model.Content{
			PersonalInfo: model.PersonalInfo{FullName: "Dana Smith", Email: "dana@example.com"},
			Skills:       model.Skills{Technical: []string{"Go", "Postgres"}},
		},
		Tags: []string{"backend"},
	}
}

func TestSessionStartsIdle(t *testing.T) {
	sess, saver, rec := newTestSession(t, sampleDoc())
	if got := sess.State(); got != StateIdle {
		t.Fatalf("state = %q, want %q", got, StateIdle)
	}
	if saver.callCount() != 0 || rec.count() != 0 {
		t.Fatalf("expected no saves or timers before any mutation")
	}
	sess.Close()
}

func TestMutationMarksDirtyAndResetsDebounce(t *testing.T) {
	sess, saver, rec := newTestSession(t, sampleDoc())
	defer sess.Close()

	sess.SetTitle("Backend Engineer v2")
	if got := sess.State(); got != StateDirty {
		t.Fatalf("state = %q, want %q", got, StateDirty)
	}
	sess.UpdateSkills(model.Skills{Technical: []string{"Go"}})

	if rec.count() != 2 {
		t.Fatalf("timer count = %d, want 2 (one per mutation)", rec.count())
	}
	if !rec.timers[0].stopped {
		t.Fatalf("first debounce timer should be stopped by the second mutation")
	}

	rec.fireLast()
	if saver.callCount() != 1 {
		t.Fatalf("save count = %d, want 1", saver.callCount())
	}
	if got := sess.State(); got != StateIdle {
		t.Fatalf("state after autosave = %q, want %q", got, StateIdle)
	}
	if saver.calls[0].Title != "Backend Engineer v2" {
		t.Fatalf("autosave persisted title %q", saver.calls[0].Title)
	}
}

func TestAutosaveFailureSetsSaveErrorAndRetries(t *testing.T) {
	sess, saver, rec := newTestSession(t, sampleDoc())
	defer sess.Close()

	saver.err = errors.New("boom")
	sess.SetTitle("draft")
	rec.fireLast()

	if got := sess.State(); got != StateSaveError {
		t.Fatalf("state = %q, want %q", got, StateSaveError)
	}
	if sess.Err() == nil {
		t.Fatalf("Err() should surface the save failure")
	}

	// The next mutation re-arms the debounce and a later save clears the error.
	saver.err = nil
	sess.SetTitle("draft 2")
	if got := sess.State(); got != StateDirty {
		t.Fatalf("state = %q, want %q", got, StateDirty)
	}
	rec.fireLast()
	if got := sess.State(); got != StateIdle {
		t.Fatalf("state = %q, want %q", got, StateIdle)
	}
	if sess.Err() != nil {
		t.Fatalf("Err() should clear after a successful save")
	}
}

func TestManualSaveBypassesDebounce(t *testing.T) {
	sess, saver, rec := newTestSession(t, sampleDoc())
	defer sess.Close()

	sess.SetTitle("manual")
	if err := sess.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saver.callCount() != 1 {
		t.Fatalf("save count = %d, want 1", saver.callCount())
	}
	if got := sess.State(); got != StateIdle {
		t.Fatalf("state = %q, want %q", got, StateIdle)
	}
	if !rec.timers[0].stopped {
		t.Fatalf("manual save should cancel the pending autosave")
	}

	// A stale timer firing afterwards must not save again.
	rec.fireLast()
	if saver.callCount() != 1 {
		t.Fatalf("stale timer fired a save; count = %d", saver.callCount())
	}
}

func TestManualSaveErrorState(t *testing.T) {
	sess, saver, _ := newTestSession(t, sampleDoc())
	defer sess.Close()

	saver.err = errors.New("disk full")
	sess.SetTitle("doomed")
	if err := sess.Save(context.Background()); err == nil {
		t.Fatalf("Save should return the persistence error")
	}
	if got := sess.State(); got != StateSaveError {
		t.Fatalf("state = %q, want %q", got, StateSaveError)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	sess, _, _ := newTestSession(t, sampleDoc())
	defer sess.Close()

	sess.AddExperience(model.Experience{Company: "Acme", Position: "Engineer", Bullets: []string{"Built things"}})
	sess.AddProject(model.Project{Name: "CLI", Technologies: []string{"Go"}})
	before := sess.Document()

	if !sess.Undo() {
		t.Fatalf("Undo returned false with history available")
	}
	if !sess.Redo() {
		t.Fatalf("Redo returned false after an undo")
	}

	after := sess.Document()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("undo+redo round trip changed the document:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUndoRemovesAddedExperience(t *testing.T) {
	sess, _, _ := newTestSession(t, sampleDoc())
	defer sess.Close()

	initial := sess.Document()
	sess.AddExperience(model.Experience{Company: "Acme", Position: "Engineer"})
	if n := len(sess.Document().Content.Experience); n != 1 {
		t.Fatalf("experience count = %d, want 1", n)
	}

	if !sess.Undo() {
		t.Fatalf("Undo returned false")
	}
	got := sess.Document()
	if n := len(got.Content.Experience); n != 0 {
		t.Fatalf("experience count after undo = %d, want 0", n)
	}
	if !reflect.DeepEqual(initial.Content, got.Content) {
		t.Fatalf("undo did not restore the pre-add state")
	}
}

func TestFieldEditsAreNotUndoable(t *testing.T) {
	sess, _, _ := newTestSession(t, sampleDoc())
	defer sess.Close()

	id := sess.AddExperience(model.Experience{Company: "Acme", Position: "Engineer"})
	sess.SetTitle("renamed")
	sess.UpdatePersonalInfo(model.PersonalInfo{FullName: "Dana S."})
	sess.UpdateExperience(model.Experience{ID: id, Company: "Acme", Position: "Staff Engineer"})

	// Only the structural add is on the stack; one undo rewinds past all
	// field edits' structure.
	if !sess.Undo() {
		t.Fatalf("Undo returned false")
	}
	if sess.CanUndo() {
		t.Fatalf("field edits must not push undo snapshots")
	}
	if n := len(sess.Document().Content.Experience); n != 0 {
		t.Fatalf("experience count after undo = %d, want 0", n)
	}
}

func TestStructuralEditClearsRedo(t *testing.T) {
	sess, _, _ := newTestSession(t, sampleDoc())
	defer sess.Close()

	sess.AddEducation(model.Education{Institution: "State U"})
	sess.Undo()
	if !sess.CanRedo() {
		t.Fatalf("redo should be available after undo")
	}

	sess.AddCertification(model.Certification{Name: "CKA"})
	if sess.CanRedo() {
		t.Fatalf("a new structural edit must clear the redo stack")
	}
}

func TestUndoRedoNoOpOnEmptyStacks(t *testing.T) {
	sess, _, rec := newTestSession(t, sampleDoc())
	defer sess.Close()

	if sess.Undo() {
		t.Fatalf("Undo on empty stack should be a no-op")
	}
	if sess.Redo() {
		t.Fatalf("Redo on empty stack should be a no-op")
	}
	if got := sess.State(); got != StateIdle {
		t.Fatalf("no-op undo/redo changed state to %q", got)
	}
	if rec.count() != 0 {
		t.Fatalf("no-op undo/redo armed the debounce timer")
	}
}

func TestUndoMarksDirtyAndTriggersAutosave(t *testing.T) {
	sess, saver, rec := newTestSession(t, sampleDoc())
	defer sess.Close()

	sess.AddExperience(model.Experience{Company: "Acme"})
	rec.fireLast()
	if got := sess.State(); got != StateIdle {
		t.Fatalf("state = %q, want %q", got, StateIdle)
	}

	sess.Undo()
	if got := sess.State(); got != StateDirty {
		t.Fatalf("state after undo = %q, want %q", got, StateDirty)
	}
	rec.fireLast()
	if saver.callCount() != 2 {
		t.Fatalf("save count = %d, want 2", saver.callCount())
	}
	last := saver.calls[len(saver.calls)-1]
	if n := len(last.Content.Experience); n != 0 {
		t.Fatalf("autosaved document should reflect the undone state")
	}
}

func TestRemoveByIDKeepsSiblings(t *testing.T) {
	sess, _, _ := newTestSession(t, sampleDoc())
	defer sess.Close()

	keep := sess.AddExperience(model.Experience{Company: "Keep"})
	drop := sess.AddExperience(model.Experience{Company: "Drop"})
	sess.RemoveExperience(drop)

	exps := sess.Document().Content.Experience
	if len(exps) != 1 || exps[0].ID != keep {
		t.Fatalf("remove deleted the wrong entry: %+v", exps)
	}
}

func TestCloseStopsPendingAutosave(t *testing.T) {
	sess, saver, rec := newTestSession(t, sampleDoc())

	sess.SetTitle("about to close")
	sess.Close()
	if !rec.timers[0].stopped {
		t.Fatalf("Close should stop the pending debounce timer")
	}
	rec.fireLast()
	if saver.callCount() != 0 {
		t.Fatalf("autosave ran after Close")
	}
}

func TestDocumentReturnsDeepCopy(t *testing.T) {
	sess, _, _ := newTestSession(t, sampleDoc())
	defer sess.Close()

	sess.AddExperience(model.Experience{Company: "Acme", Bullets: []string{"original"}})
	doc := sess.Document()
	doc.Content.Experience[0].Bullets[0] = "mutated"

	if got := sess.Document().Content.Experience[0].Bullets[0]; got != "original" {
		t.Fatalf("external mutation leaked into the session: %q", got)
	}
}
