package render

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// DefaultTerminalStyle is the glamour style used when none is configured.
const DefaultTerminalStyle = "dark"

// TerminalRenderer renders markdown as ANSI text for the preview pane.
// Glamour renderers are cached per wrap width. A glamour renderer keeps
// per-render state, so renders are serialised.
type TerminalRenderer struct {
	style  string
	logger interfaces.Logger

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

// TerminalOption customises a TerminalRenderer.
type TerminalOption func(*TerminalRenderer)

// WithTerminalLogger sets the renderer logger.
func WithTerminalLogger(logger interfaces.Logger) TerminalOption {
	return func(r *TerminalRenderer) {
		r.logger = logging.Ensure(logger)
	}
}

// NewTerminalRenderer uses the named glamour style; "auto" detects the
// terminal background.
func NewTerminalRenderer(style string, opts ...TerminalOption) *TerminalRenderer {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = DefaultTerminalStyle
	}
	r := &TerminalRenderer{
		style:  style,
		logger: logging.NoOp(),
		cache:  map[int]*glamour.TermRenderer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var _ interfaces.Renderer = (*TerminalRenderer)(nil)

// Render converts markdown to ANSI text wrapped at opts.Width.
func (r *TerminalRenderer) Render(ctx context.Context, markdown []byte, opts interfaces.RenderOptions) (*interfaces.Rendered, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	meta, body := SplitFrontMatter(markdown)

	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.renderer(opts.Width)
	if err != nil {
		return nil, err
	}
	out, err := term.Render(string(body))
	if err != nil {
		r.logger.Warn("render.terminal.failed", "error", err, "width", opts.Width)
		return nil, fmt.Errorf("render terminal: %w", err)
	}
	return &interfaces.Rendered{
		Output: []byte(out),
		Title:  titleFrom(meta),
		Meta:   meta,
	}, nil
}

// renderer must be called with r.mu held.
func (r *TerminalRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if width < 0 {
		width = 0
	}
	if term, ok := r.cache[width]; ok {
		return term, nil
	}

	styleOpt := glamour.WithStandardStyle(r.style)
	if r.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("render terminal: style %q: %w", r.style, err)
	}
	r.cache[width] = term
	return term, nil
}
