// Package editor holds the in-memory working copy of a resume while it
// is being edited: a debounced autosave loop against the resume's
// current state, and undo/redo over structural changes. It never talks
// to the version store; snapshotting is the server's concern.
package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder-backend/resume/model"
)

// State is the save status of the session.
type State string

const (
	// StateIdle means the in-memory document matches the last persisted state.
	StateIdle State = "idle"
	// StateDirty means there are unsaved in-memory changes.
	StateDirty State = "dirty"
	// StateAutosaving means a debounced save is in flight.
	StateAutosaving State = "autosaving"
	// StateSaveError means the last save failed; the next mutation or
	// manual save retries.
	StateSaveError State = "save-error"
)

// DefaultDebounce is the autosave delay used when none is configured.
const DefaultDebounce = 2 * time.Second

// Document is the editable resume state the session works on.
type Document struct {
	Title   string
	Content model.Content
	Tags    []string
}

// Clone returns a deep copy. Undo history must never alias the live
// document.
func (d Document) Clone() Document {
	return Document{
		Title:   d.Title,
		Content: d.Content.Clone(),
		Tags:    append([]string(nil), d.Tags...),
	}
}

// Saver persists the document as the resume's current state. Implemented
// by the HTTP client in the real editor and by fakes in tests.
type Saver interface {
	SaveCurrent(ctx context.Context, resumeID string, doc Document) error
}

type timerHandle interface {
	Stop() bool
}

type timerFactory func(d time.Duration, fn func()) timerHandle

func realTimer(d time.Duration, fn func()) timerHandle {
	return time.AfterFunc(d, fn)
}

// Options tunes a session. Zero values get defaults.
type Options struct {
	// Debounce is the delay between the last mutation and the autosave.
	Debounce time.Duration

	// newTimer lets tests fire the debounce deterministically.
	newTimer timerFactory
}

// Session is the editor state machine for one open resume. Safe for
// concurrent use; the debounce timer fires on its own goroutine.
type Session struct {
	resumeID string
	saver    Saver
	debounce time.Duration
	newTimer timerFactory

	mu      sync.Mutex
	doc     Document
	state   State
	lastErr error
	undo    []Document
	redo    []Document
	timer   timerHandle
	closed  bool
}

// NewSession opens a session over a loaded document. The session starts
// idle: the document is assumed to match persisted state.
func NewSession(resumeID string, doc Document, saver Saver, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.newTimer == nil {
		opts.newTimer = realTimer
	}
	return &Session{
		resumeID: resumeID,
		saver:    saver,
		debounce: opts.Debounce,
		newTimer: opts.newTimer,
		doc:      doc.Clone(),
		state:    StateIdle,
	}
}

// State returns the current save status.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error from the most recent failed save, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Document returns a deep copy of the working document.
func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// CanUndo reports whether an undo snapshot is available.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether a redo snapshot is available.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// SetTitle edits the resume title. Field edits are not undoable.
func (s *Session) SetTitle(title string) {
	s.fieldEdit(func(d *Document) { d.Title = title })
}

// SetTags replaces the tag list.
func (s *Session) SetTags(tags []string) {
	s.fieldEdit(func(d *Document) { d.Tags = append([]string(nil), tags...) })
}

// UpdatePersonalInfo replaces the contact block.
func (s *Session) UpdatePersonalInfo(p model.PersonalInfo) {
	s.fieldEdit(func(d *Document) { d.Content.PersonalInfo = p })
}

// UpdateSkills replaces the skills block.
func (s *Session) UpdateSkills(sk model.Skills) {
	s.fieldEdit(func(d *Document) { d.Content.Skills = sk })
}

// UpdateExperience edits the entry with a matching ID in place. Unknown
// IDs are ignored.
func (s *Session) UpdateExperience(exp model.Experience) {
	s.fieldEdit(func(d *Document) {
		for i := range d.Content.Experience {
			if d.Content.Experience[i].ID == exp.ID {
				d.Content.Experience[i] = exp
				return
			}
		}
	})
}

// UpdateEducation edits the entry with a matching ID in place.
func (s *Session) UpdateEducation(edu model.Education) {
	s.fieldEdit(func(d *Document) {
		for i := range d.Content.Education {
			if d.Content.Education[i].ID == edu.ID {
				d.Content.Education[i] = edu
				return
			}
		}
	})
}

// AddExperience appends a work-history entry. Structural change: the
// pre-mutation state becomes undoable.
func (s *Session) AddExperience(exp model.Experience) string {
	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	s.structuralEdit(func(d *Document) {
		d.Content.Experience = append(d.Content.Experience, exp)
	})
	return exp.ID
}

// RemoveExperience deletes the entry with a matching ID.
func (s *Session) RemoveExperience(id string) {
	s.structuralEdit(func(d *Document) {
		d.Content.Experience = removeByID(d.Content.Experience, id, func(e model.Experience) string { return e.ID })
	})
}

// AddEducation appends an education entry.
func (s *Session) AddEducation(edu model.Education) string {
	if edu.ID == "" {
		edu.ID = uuid.NewString()
	}
	s.structuralEdit(func(d *Document) {
		d.Content.Education = append(d.Content.Education, edu)
	})
	return edu.ID
}

// RemoveEducation deletes the entry with a matching ID.
func (s *Session) RemoveEducation(id string) {
	s.structuralEdit(func(d *Document) {
		d.Content.Education = removeByID(d.Content.Education, id, func(e model.Education) string { return e.ID })
	})
}

// AddProject appends a project entry.
func (s *Session) AddProject(p model.Project) string {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.structuralEdit(func(d *Document) {
		d.Content.Projects = append(d.Content.Projects, p)
	})
	return p.ID
}

// RemoveProject deletes the entry with a matching ID.
func (s *Session) RemoveProject(id string) {
	s.structuralEdit(func(d *Document) {
		d.Content.Projects = removeByID(d.Content.Projects, id, func(p model.Project) string { return p.ID })
	})
}

// AddCertification appends a certification entry.
func (s *Session) AddCertification(c model.Certification) string {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.structuralEdit(func(d *Document) {
		d.Content.Certifications = append(d.Content.Certifications, c)
	})
	return c.ID
}

// RemoveCertification deletes the entry with a matching ID.
func (s *Session) RemoveCertification(id string) {
	s.structuralEdit(func(d *Document) {
		d.Content.Certifications = removeByID(d.Content.Certifications, id, func(c model.Certification) string { return c.ID })
	})
}

// AddCustomSection appends a custom section.
func (s *Session) AddCustomSection(sec model.CustomSection) string {
	if sec.ID == "" {
		sec.ID = uuid.NewString()
	}
	s.structuralEdit(func(d *Document) {
		d.Content.CustomSections = append(d.Content.CustomSections, sec)
	})
	return sec.ID
}

// RemoveCustomSection deletes the section with a matching ID.
func (s *Session) RemoveCustomSection(id string) {
	s.structuralEdit(func(d *Document) {
		d.Content.CustomSections = removeByID(d.Content.CustomSections, id, func(c model.CustomSection) string { return c.ID })
	})
}

// Undo adopts the previous structural state. The current state moves to
// the redo stack. No-op when nothing is undoable.
func (s *Session) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.doc.Clone())
	s.doc = prev
	s.markDirtyLocked()
	s.mu.Unlock()
	return true
}

// Redo reverses the most recent Undo. No-op when nothing is redoable.
func (s *Session) Redo() bool {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return false
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, s.doc.Clone())
	s.doc = next
	s.markDirtyLocked()
	s.mu.Unlock()
	return true
}

// Save persists immediately, bypassing the debounce. Usable in any state.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	doc := s.doc.Clone()
	s.mu.Unlock()

	err := s.saver.SaveCurrent(ctx, s.resumeID, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateSaveError
		s.lastErr = err
		return err
	}
	s.state = StateIdle
	s.lastErr = nil
	return nil
}

// Close stops the pending autosave. Unsaved changes are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) fieldEdit(fn func(*Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.doc)
	s.markDirtyLocked()
}

func (s *Session) structuralEdit(fn func(*Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = append(s.undo, s.doc.Clone())
	s.redo = nil
	fn(&s.doc)
	s.markDirtyLocked()
}

// markDirtyLocked flags unsaved changes and restarts the debounce timer.
// Caller holds s.mu.
func (s *Session) markDirtyLocked() {
	if s.closed {
		return
	}
	s.state = StateDirty
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.newTimer(s.debounce, s.autosave)
}

// autosave runs when the debounce timer fires.
func (s *Session) autosave() {
	s.mu.Lock()
	if s.closed || s.state != StateDirty {
		s.mu.Unlock()
		return
	}
	s.state = StateAutosaving
	s.timer = nil
	doc := s.doc.Clone()
	s.mu.Unlock()

	err := s.saver.SaveCurrent(context.Background(), s.resumeID, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAutosaving {
		// A mutation or manual save intervened; its state wins.
		return
	}
	if err != nil {
		s.state = StateSaveError
		s.lastErr = err
		return
	}
	s.state = StateIdle
	s.lastErr = nil
}

func removeByID[T any](in []T, id string, idOf func(T) string) []T {
	out := in[:0]
	for _, item := range in {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
