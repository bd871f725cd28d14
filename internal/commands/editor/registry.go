package editorcmd

import (
	"github.com/goliatone/go-mdpad/internal/commands"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract used when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Dependencies are the services the editor handlers act on.
type Dependencies struct {
	Editor   Editor
	Importer Importer
	Exporter Exporter
	Hooks    Hooks
}

// HandlerSet groups the handlers built by RegisterEditorCommands.
type HandlerSet struct {
	Insert  *InsertSnippetHandler
	Toolbar *ApplyToolbarHandler
	Indent  *IndentHandler
	Load    *LoadFileHandler
	Replace *ReplaceDocumentHandler
	Export  *ExportFileHandler
	Preview *TogglePreviewHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	insertOpts  []commands.HandlerOption[InsertSnippetCommand]
	toolbarOpts []commands.HandlerOption[ApplyToolbarCommand]
	loadOpts    []commands.HandlerOption[LoadFileCommand]
	exportOpts  []commands.HandlerOption[ExportFileCommand]
}

// WithInsertHandlerOptions forwards options to the InsertSnippetHandler.
func WithInsertHandlerOptions(opts ...commands.HandlerOption[InsertSnippetCommand]) Option {
	return func(cfg *options) {
		cfg.insertOpts = append(cfg.insertOpts, opts...)
	}
}

// WithToolbarHandlerOptions forwards options to the ApplyToolbarHandler.
func WithToolbarHandlerOptions(opts ...commands.HandlerOption[ApplyToolbarCommand]) Option {
	return func(cfg *options) {
		cfg.toolbarOpts = append(cfg.toolbarOpts, opts...)
	}
}

// WithLoadHandlerOptions forwards options to the LoadFileHandler.
func WithLoadHandlerOptions(opts ...commands.HandlerOption[LoadFileCommand]) Option {
	return func(cfg *options) {
		cfg.loadOpts = append(cfg.loadOpts, opts...)
	}
}

// WithExportHandlerOptions forwards options to the ExportFileHandler.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportFileCommand]) Option {
	return func(cfg *options) {
		cfg.exportOpts = append(cfg.exportOpts, opts...)
	}
}

// RegisterEditorCommands builds the editor handlers and registers them with
// reg when it is non-nil. Importer and Exporter are optional; the matching
// handlers are left nil without them.
func RegisterEditorCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if deps.Editor == nil {
		return nil, ErrEditorRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "editor")
	set := &HandlerSet{
		Insert:  NewInsertSnippetHandler(deps.Editor, logger, deps.Hooks, cfg.insertOpts...),
		Toolbar: NewApplyToolbarHandler(deps.Editor, logger, deps.Hooks, cfg.toolbarOpts...),
		Indent:  NewIndentHandler(deps.Editor, logger, deps.Hooks),
		Replace: NewReplaceDocumentHandler(deps.Editor, logger, deps.Hooks),
		Preview: NewTogglePreviewHandler(deps.Editor, logger, deps.Hooks),
	}
	if deps.Importer != nil {
		set.Load = NewLoadFileHandler(deps.Editor, deps.Importer, logger, deps.Hooks, cfg.loadOpts...)
	}
	if deps.Exporter != nil {
		set.Export = NewExportFileHandler(deps.Editor, deps.Exporter, logger, deps.Hooks, cfg.exportOpts...)
	}

	if reg != nil {
		for _, handler := range set.all() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func (s *HandlerSet) all() []any {
	out := []any{s.Insert, s.Toolbar, s.Indent, s.Replace, s.Preview}
	if s.Load != nil {
		out = append(out, s.Load)
	}
	if s.Export != nil {
		out = append(out, s.Export)
	}
	return out
}
