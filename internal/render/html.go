// Package render turns the document into HTML for export and preview pages
// and into ANSI text for the terminal preview pane.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// DefaultHighlightStyle is used when RenderOptions leaves the style empty.
const DefaultHighlightStyle = "monokai"

// HTMLRenderer renders markdown to an HTML fragment. Raw HTML in the source
// is not passed through. It is stateless and safe for concurrent use.
type HTMLRenderer struct {
	defaults interfaces.RenderOptions
	logger   interfaces.Logger
}

// HTMLOption customises an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithHTMLLogger sets the renderer logger.
func WithHTMLLogger(logger interfaces.Logger) HTMLOption {
	return func(r *HTMLRenderer) {
		r.logger = logging.Ensure(logger)
	}
}

// NewHTMLRenderer constructs a renderer whose defaults fill unset options.
func NewHTMLRenderer(defaults interfaces.RenderOptions, opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{defaults: defaults, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var _ interfaces.Renderer = (*HTMLRenderer)(nil)

// Render converts markdown into HTML. Leading front matter is stripped and
// its title reported on the result.
func (r *HTMLRenderer) Render(ctx context.Context, markdown []byte, opts interfaces.RenderOptions) (*interfaces.Rendered, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = r.merge(opts)

	meta, body := SplitFrontMatter(markdown)

	engine := newEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(body, &buf); err != nil {
		r.logger.Warn("render.html.failed", "error", err)
		return nil, fmt.Errorf("render html: %w", err)
	}

	return &interfaces.Rendered{
		Output: buf.Bytes(),
		Title:  titleFrom(meta),
		Meta:   meta,
	}, nil
}

func (r *HTMLRenderer) merge(opts interfaces.RenderOptions) interfaces.RenderOptions {
	if strings.TrimSpace(opts.HighlightStyle) == "" {
		opts.HighlightStyle = r.defaults.HighlightStyle
	}
	if strings.TrimSpace(opts.HighlightStyle) == "" {
		opts.HighlightStyle = DefaultHighlightStyle
	}
	if opts.Tables == nil {
		opts.Tables = r.defaults.Tables
	}
	return opts
}

func newEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(collectExtensions(opts)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(newCodeRenderer(opts.HighlightStyle), 100),
				util.Prioritized(linkRenderer{}, 100),
			),
		),
	)
}

func collectExtensions(opts interfaces.RenderOptions) []goldmark.Extender {
	exts := []goldmark.Extender{
		extension.Strikethrough,
		extension.Linkify,
		extension.TaskList,
	}
	if opts.TablesEnabled() {
		exts = append(exts, extension.Table)
	}
	return exts
}

func titleFrom(meta map[string]any) string {
	if meta == nil {
		return ""
	}
	if title, ok := meta["title"].(string); ok {
		return strings.TrimSpace(title)
	}
	return ""
}
