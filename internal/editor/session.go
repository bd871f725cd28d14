// Package editor holds the state of one editing session: the document, the
// selection and the preview toggle. Every document change is written through
// to the text store.
package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-mdpad/internal/inserter"
	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/internal/toolbar"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// TextStore persists the document.
type TextStore interface {
	Read(ctx context.Context) string
	Write(ctx context.Context, value string)
}

// Surface is the widget displaying the document. SetText replaces the visible
// text; SetCursor places the caret once that text has been committed.
type Surface interface {
	SetText(text string)
	SetCursor(pos int)
}

// Normalizer is implemented by surfaces that rewrite text on the way in, such
// as expanding tabs. The session stores the rewritten text so its offsets
// match the surface. Normalize must work rune by rune so that normalizing a
// prefix yields a prefix of the normalized whole.
type Normalizer interface {
	Normalize(text string) string
}

// Source identifies what produced a document change.
type Source string

const (
	SourceKeystroke Source = "keystroke"
	SourceInsert    Source = "insert"
	SourceFile      Source = "file"
	SourceSurface   Source = "surface"
)

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		s.logger = logging.Ensure(logger)
	}
}

// WithSurface attaches the display surface at construction.
func WithSurface(surface Surface) Option {
	return func(s *Session) {
		s.surface = surface
	}
}

// Session is the editor state for a single user.
type Session struct {
	store   TextStore
	surface Surface
	logger  interfaces.Logger

	mu        sync.Mutex
	text      string
	length    int
	selection inserter.Selection
	pending   *int
	preview   bool
}

// NewSession loads the document from store and places the cursor at its end.
func NewSession(ctx context.Context, store TextStore, opts ...Option) *Session {
	s := &Session{
		store:  store,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.text = store.Read(ctx)
	s.length = inserter.Len(s.text)
	s.selection = inserter.Collapsed(s.length)
	if s.surface != nil {
		s.pushSurface(ctx)
	}
	return s
}

// AttachSurface binds the display surface and pushes the current text to it.
// Text the surface would rewrite is rewritten and stored first.
func (s *Session) AttachSurface(ctx context.Context, surface Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
	if surface != nil {
		s.pushSurface(ctx)
	}
}

func (s *Session) pushSurface(ctx context.Context) {
	text, cursor := s.normalize(s.text, s.selection.End)
	if text != s.text {
		s.apply(ctx, text, SourceSurface)
		s.selection = inserter.Collapsed(clamp(cursor, s.length))
	}
	s.surface.SetText(text)
}

// Text returns the current document.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Selection returns the current selection.
func (s *Session) Selection() inserter.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// SetSelection records the selection reported by the surface.
func (s *Session) SetSelection(sel inserter.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := sel.Validate(s.length); err != nil {
		return err
	}
	s.selection = sel
	return nil
}

// SetText records text typed into the surface. The surface already shows it,
// so nothing is pushed back.
func (s *Session) SetText(ctx context.Context, text string, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, text, SourceKeystroke)
	s.selection = inserter.Collapsed(clamp(cursor, s.length))
	s.pending = nil
}

// Insert replaces the selection with snippet. The text is handed to the
// surface now; the cursor waits for Committed.
func (s *Session) Insert(ctx context.Context, snippet string, cursorOffset int) (inserter.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := inserter.InsertAt(s.text, s.selection, snippet, cursorOffset)
	if err != nil {
		return inserter.Result{}, err
	}
	result.Text, result.Cursor = s.normalize(result.Text, result.Cursor)
	s.apply(ctx, result.Text, SourceInsert)
	if s.surface != nil {
		s.surface.SetText(result.Text)
	}
	cursor := result.Cursor
	s.pending = &cursor
	s.selection = inserter.Collapsed(clamp(cursor, s.length))
	return result, nil
}

// Indent applies the tab key policy at the selection.
func (s *Session) Indent(ctx context.Context) (inserter.Result, error) {
	return s.Insert(ctx, inserter.IndentSnippet, inserter.IndentOffset)
}

// ApplyToolbar wraps the selection in the markup for action.
func (s *Session) ApplyToolbar(ctx context.Context, action toolbar.Action) (inserter.Result, error) {
	markup, ok := toolbar.Lookup(action)
	if !ok {
		return inserter.Result{}, fmt.Errorf("editor: unknown toolbar action %q", action)
	}
	s.mu.Lock()
	selected := inserter.Selected(s.text, s.selection)
	s.mu.Unlock()

	snippet, offset := markup.Snippet(selected)
	return s.Insert(ctx, snippet, offset)
}

// Replace swaps the whole document, as when a file is loaded. The cursor
// moves to the end of the new text.
func (s *Session) Replace(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, _ = s.normalize(text, 0)
	s.apply(ctx, text, SourceFile)
	if s.surface != nil {
		s.surface.SetText(text)
	}
	end := s.length
	s.pending = &end
	s.selection = inserter.Collapsed(end)
}

// Committed is called once the surface has rendered the text from the last
// Insert or Replace. It applies the pending cursor, if any, and reports
// whether one was applied.
func (s *Session) Committed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return false
	}
	cursor := clamp(*s.pending, s.length)
	s.pending = nil
	if s.surface != nil {
		s.surface.SetCursor(cursor)
	}
	return true
}

// PendingCursor returns the cursor waiting for Committed.
func (s *Session) PendingCursor() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return 0, false
	}
	return *s.pending, true
}

// TogglePreview flips the preview pane and returns the new state.
func (s *Session) TogglePreview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = !s.preview
	s.logger.Debug("editor.preview.toggled", "visible", s.preview)
	return s.preview
}

// PreviewVisible reports whether the preview pane is shown.
func (s *Session) PreviewVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

func (s *Session) apply(ctx context.Context, text string, source Source) {
	s.text = text
	s.length = inserter.Len(text)
	s.store.Write(ctx, text)
	s.logger.Trace("editor.document.changed", "source", source, "runes", s.length)
}

// normalize rewrites text the way the surface will show it and maps cursor
// onto the rewritten text.
func (s *Session) normalize(text string, cursor int) (string, int) {
	n, ok := s.surface.(Normalizer)
	if !ok {
		return text, cursor
	}
	runes := []rune(text)
	prefix := clamp(cursor, len(runes))
	mapped := inserter.Len(n.Normalize(string(runes[:prefix])))
	return n.Normalize(text), mapped + (cursor - prefix)
}

func clamp(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
