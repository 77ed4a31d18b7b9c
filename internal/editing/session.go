// Package editing binds a document model to an interactive editing surface.
// A session owns exactly one model, never shares it with another surface,
// and is the only place where user edits, template protection,
// debounced auto-save and externally applied updates meet.
package editing

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/parse"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/serialize"
)

const (
	autoSaveDelay    = 2500 * time.Millisecond
	autoCompileDelay = 2 * time.Second
)

// Callbacks receive the serialized LaTeX of the session's document. OnChange
// fires synchronously on every user edit; AutoSave and AutoCompile fire
// after the debounce quiet period with the last-settled content.
type Callbacks struct {
	OnChange    func(latex string)
	AutoSave    func(latex string)
	AutoCompile func(latex string)
}

// Session is the editing-surface adapter for one open document.
type Session struct {
	mu        sync.Mutex
	doc       *document.Document
	protected bool
	closed    bool

	callbacks       Callbacks
	debounceSave    func(func())
	debounceCompile func(func())
}

// NewSession parses the given LaTeX source into a fresh model. protected
// marks the document as derived from a protected template, making its
// heading blocks read-only.
func NewSession(src string, protected bool, cb Callbacks) *Session {
	return newSession(src, protected, cb, autoSaveDelay, autoCompileDelay)
}

// newSession lets tests shorten the debounce windows.
func newSession(src string, protected bool, cb Callbacks, saveDelay, compileDelay time.Duration) *Session {
	return &Session{
		doc:             parse.Parse(src),
		protected:       protected,
		callbacks:       cb,
		debounceSave:    debounce.New(saveDelay),
		debounceCompile: debounce.New(compileDelay),
	}
}

// Document returns the session's model. The model is owned by this session
// and must not be handed to another surface.
func (s *Session) Document() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Latex serializes the current model.
func (s *Session) Latex() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return serialize.Serialize(s.doc)
}

// Edit applies a user edit to the model, fires the change notification and
// arms the auto-save and auto-recompile timers. A new edit before either
// timer fires restarts it, so the debounced callbacks always see the
// last-settled content, never an intermediate keystroke.
func (s *Session) Edit(apply func(*document.Document)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	apply(s.doc)
	latex := serialize.Serialize(s.doc)
	cb := s.callbacks
	s.mu.Unlock()

	if cb.OnChange != nil {
		cb.OnChange(latex)
	}
	if cb.AutoSave != nil {
		s.debounceSave(func() { s.fire(cb.AutoSave) })
	}
	if cb.AutoCompile != nil {
		s.debounceCompile(func() { s.fire(cb.AutoCompile) })
	}
}

// ApplyExternal replaces the session content from outside the surface, e.g.
// a revert to an older version. It must not echo back as a user edit: the
// change notification is suppressed for exactly this update and no
// auto-save or version tracking is armed, otherwise a revert would
// immediately spawn a near-duplicate version.
func (s *Session) ApplyExternal(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.doc = parse.Parse(src)
}

// Close cancels any pending debounced work for this session. Switching the
// editing surface or the open document must close the session being left so
// stale content is never written after the user moved on.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// fire runs a debounced callback unless the session was closed while the
// timer was pending.
func (s *Session) fire(cb func(string)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	latex := serialize.Serialize(s.doc)
	s.mu.Unlock()
	cb(latex)
}
