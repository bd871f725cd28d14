// Package mdpad is a terminal markdown editor core: a persistent text store
// for the document, a cursor-aware inserter for formatting snippets, file
// import and export, and HTML and terminal rendering.
package mdpad

import (
	"context"

	editorcmd "github.com/goliatone/go-mdpad/internal/commands/editor"
	"github.com/goliatone/go-mdpad/internal/di"
	"github.com/goliatone/go-mdpad/internal/editor"
	"github.com/goliatone/go-mdpad/internal/files"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// Artifact describes an exported document.
type Artifact = files.Artifact

// Session is an editing session over the stored document.
type Session = editor.Session

// Module is the top level mdpad façade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg with optional DI overrides.
func New(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// StorageErr reports why durable storage is unavailable, if it is.
func (m *Module) StorageErr() error {
	return m.container.StorageErr()
}

// Document returns the stored document, or the default content.
func (m *Module) Document(ctx context.Context) string {
	return m.container.TextStore().Read(ctx)
}

// NewSession opens an editing session.
func (m *Module) NewSession(ctx context.Context, opts ...editor.Option) *Session {
	return m.container.NewSession(ctx, opts...)
}

// ImportFile replaces the stored document with the file at path. A failed
// read leaves the document unchanged.
func (m *Module) ImportFile(ctx context.Context, path string) error {
	set, err := m.container.EditorCommands(nil, m.NewSession(ctx), editorcmd.Hooks{})
	if err != nil {
		return err
	}
	return set.Load.Execute(ctx, editorcmd.LoadFileCommand{Path: path})
}

// ExportDocument writes the stored document to dir, or to the configured
// export directory when dir is empty.
func (m *Module) ExportDocument(ctx context.Context, dir string) (*Artifact, error) {
	var artifact *Artifact
	set, err := m.container.EditorCommands(nil, m.NewSession(ctx), editorcmd.Hooks{
		OnExported: func(a *files.Artifact) { artifact = a },
	})
	if err != nil {
		return nil, err
	}
	if err := set.Export.Execute(ctx, editorcmd.ExportFileCommand{Dir: dir}); err != nil {
		return nil, err
	}
	return artifact, nil
}

// RenderHTML renders the stored document as an HTML fragment.
func (m *Module) RenderHTML(ctx context.Context) (*interfaces.Rendered, error) {
	return m.container.HTMLRenderer().Render(ctx, []byte(m.Document(ctx)), m.container.RenderOptions(0))
}

// Close releases storage and log resources.
func (m *Module) Close() error {
	return m.container.Close()
}
