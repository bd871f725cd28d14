package interfaces

import "context"

// RenderOptions controls how a document is turned into displayable output.
type RenderOptions struct {
	// Tables enables the GFM table extension. Nil leaves the choice to the
	// renderer defaults.
	Tables *bool
	// HighlightStyle names the chroma style used for fenced code blocks.
	HighlightStyle string
	// Width is the wrap width used by terminal renderers. Zero disables wrapping.
	Width int
}

// TablesEnabled reports whether tables are switched on.
func (o RenderOptions) TablesEnabled() bool {
	return o.Tables != nil && *o.Tables
}

// Bool returns a pointer to v, for optional option fields.
func Bool(v bool) *bool {
	return &v
}

// Rendered is the output of a renderer plus metadata lifted from the document.
type Rendered struct {
	Output []byte
	Title  string
	Meta   map[string]any
}

// Renderer turns markdown source into displayable output (HTML, ANSI, ...).
type Renderer interface {
	Render(ctx context.Context, markdown []byte, opts RenderOptions) (*Rendered, error)
}
