package editorcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdpad/internal/commands"
	"github.com/goliatone/go-mdpad/internal/files"
	"github.com/goliatone/go-mdpad/internal/inserter"
	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/internal/toolbar"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

const (
	insertOperation  = "editor.insert_snippet"
	toolbarOperation = "editor.apply_toolbar"
	indentOperation  = "editor.indent"
	loadOperation    = "editor.load_file"
	replaceOperation = "editor.replace_document"
	exportOperation  = "editor.export_file"
	previewOperation = "editor.toggle_preview"
)

// ErrEditorRequired is returned when handlers are built without a session.
var ErrEditorRequired = errors.New("editor command: session is nil")

// Editor is the session surface the handlers drive.
type Editor interface {
	Text() string
	Insert(ctx context.Context, snippet string, cursorOffset int) (inserter.Result, error)
	Indent(ctx context.Context) (inserter.Result, error)
	ApplyToolbar(ctx context.Context, action toolbar.Action) (inserter.Result, error)
	Replace(ctx context.Context, text string)
	TogglePreview() bool
}

// Importer reads a file into document text.
type Importer interface {
	Read(ctx context.Context, path string) (string, error)
}

// Exporter writes document text to a file.
type Exporter interface {
	ExportTo(ctx context.Context, dir, content string) (*files.Artifact, error)
}

// Hooks receive handler outcomes. Every field is optional.
type Hooks struct {
	OnInserted       func(inserter.Result)
	OnLoaded         func(path string, runes int)
	OnExported       func(*files.Artifact)
	OnPreviewToggled func(visible bool)
}

var (
	_ command.Commander[InsertSnippetCommand]   = (*InsertSnippetHandler)(nil)
	_ command.Commander[ApplyToolbarCommand]    = (*ApplyToolbarHandler)(nil)
	_ command.Commander[IndentCommand]          = (*IndentHandler)(nil)
	_ command.Commander[LoadFileCommand]        = (*LoadFileHandler)(nil)
	_ command.Commander[ReplaceDocumentCommand] = (*ReplaceDocumentHandler)(nil)
	_ command.Commander[ExportFileCommand]      = (*ExportFileHandler)(nil)
	_ command.Commander[TogglePreviewCommand]   = (*TogglePreviewHandler)(nil)
)

func baseOptions[T command.Message](logger interfaces.Logger, operation string) []commands.HandlerOption[T] {
	return []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithTelemetry(commands.DefaultTelemetry[T](logger)),
	}
}

func (h Hooks) inserted(result inserter.Result) {
	if h.OnInserted != nil {
		h.OnInserted(result)
	}
}

// InsertSnippetHandler inserts raw snippets at the selection.
type InsertSnippetHandler struct {
	inner *commands.Handler[InsertSnippetCommand]
}

// NewInsertSnippetHandler binds the handler to editor.
func NewInsertSnippetHandler(editor Editor, logger interfaces.Logger, hooks Hooks, opts ...commands.HandlerOption[InsertSnippetCommand]) *InsertSnippetHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg InsertSnippetCommand) error {
		result, err := editor.Insert(ctx, msg.Snippet, msg.CursorOffset)
		if err != nil {
			return err
		}
		hooks.inserted(result)
		return nil
	}
	handlerOpts := baseOptions[InsertSnippetCommand](logger, insertOperation)
	handlerOpts = append(handlerOpts, commands.WithMessageFields(func(msg InsertSnippetCommand) map[string]any {
		return map[string]any{
			"snippet_runes": inserter.Len(msg.Snippet),
			"cursor_offset": msg.CursorOffset,
		}
	}))
	return &InsertSnippetHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[InsertSnippetCommand].
func (h *InsertSnippetHandler) Execute(ctx context.Context, msg InsertSnippetCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ApplyToolbarHandler runs toolbar actions.
type ApplyToolbarHandler struct {
	inner *commands.Handler[ApplyToolbarCommand]
}

// NewApplyToolbarHandler binds the handler to editor.
func NewApplyToolbarHandler(editor Editor, logger interfaces.Logger, hooks Hooks, opts ...commands.HandlerOption[ApplyToolbarCommand]) *ApplyToolbarHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg ApplyToolbarCommand) error {
		result, err := editor.ApplyToolbar(ctx, msg.Action)
		if err != nil {
			return err
		}
		hooks.inserted(result)
		return nil
	}
	handlerOpts := baseOptions[ApplyToolbarCommand](logger, toolbarOperation)
	handlerOpts = append(handlerOpts, commands.WithMessageFields(func(msg ApplyToolbarCommand) map[string]any {
		return map[string]any{"action": string(msg.Action)}
	}))
	return &ApplyToolbarHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ApplyToolbarCommand].
func (h *ApplyToolbarHandler) Execute(ctx context.Context, msg ApplyToolbarCommand) error {
	return h.inner.Execute(ctx, msg)
}

// IndentHandler applies the tab key policy.
type IndentHandler struct {
	inner *commands.Handler[IndentCommand]
}

// NewIndentHandler binds the handler to editor.
func NewIndentHandler(editor Editor, logger interfaces.Logger, hooks Hooks, opts ...commands.HandlerOption[IndentCommand]) *IndentHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, _ IndentCommand) error {
		result, err := editor.Indent(ctx)
		if err != nil {
			return err
		}
		hooks.inserted(result)
		return nil
	}
	handlerOpts := baseOptions[IndentCommand](logger, indentOperation)
	return &IndentHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[IndentCommand].
func (h *IndentHandler) Execute(ctx context.Context, msg IndentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LoadFileHandler replaces the document with a file's contents. On failure
// the document is left untouched.
type LoadFileHandler struct {
	inner *commands.Handler[LoadFileCommand]
}

// NewLoadFileHandler binds the handler to editor and importer.
func NewLoadFileHandler(editor Editor, importer Importer, logger interfaces.Logger, hooks Hooks, opts ...commands.HandlerOption[LoadFileCommand]) *LoadFileHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg LoadFileCommand) error {
		text, err := importer.Read(ctx, msg.Path)
		if err != nil {
			return err
		}
		editor.Replace(ctx, text)
		if hooks.OnLoaded != nil {
			hooks.OnLoaded(msg.Path, inserter.Len(text))
		}
		return nil
	}
	handlerOpts := baseOptions[LoadFileCommand](logger, loadOperation)
	handlerOpts = append(handlerOpts, commands.WithMessageFields(func(msg LoadFileCommand) map[string]any {
		return map[string]any{"file_path": msg.Path}
	}))
	return &LoadFileHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[LoadFileCommand].
func (h *LoadFileHandler) Execute(ctx context.Context, msg LoadFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReplaceDocumentHandler swaps the document for already loaded text.
type ReplaceDocumentHandler struct {
	inner *commands.Handler[ReplaceDocumentCommand]
}

// NewReplaceDocumentHandler binds the handler to editor.
func NewReplaceDocumentHandler(editor Editor, logger interfaces.Logger, hooks Hooks, opts ...commands.HandlerOption[ReplaceDocumentCommand]) *ReplaceDocumentHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg ReplaceDocumentCommand) error {
		editor.Replace(ctx, msg.Content)
		if hooks.OnLoaded != nil {
			hooks.OnLoaded(msg.Source, inserter.Len(msg.Content))
		}
		return nil
	}
	handlerOpts := baseOptions[ReplaceDocumentCommand](logger, replaceOperation)
	handlerOpts = append(handlerOpts, commands.WithMessageFields(func(msg ReplaceDocumentCommand) map[string]any {
		return map[string]any{
			"source": msg.Source,
			"runes":  inserter.Len(msg.Content),
		}
	}))
	return &ReplaceDocumentHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ReplaceDocumentCommand].
func (h *ReplaceDocumentHandler) Execute(ctx context.Context, msg ReplaceDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportFileHandler writes the document out.
type ExportFileHandler struct {
	inner *commands.Handler[ExportFileCommand]
}

// NewExportFileHandler binds the handler to editor and exporter.
func NewExportFileHandler(editor Editor, exporter Exporter, logger interfaces.Logger, hooks Hooks, opts ...commands.HandlerOption[ExportFileCommand]) *ExportFileHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg ExportFileCommand) error {
		artifact, err := exporter.ExportTo(ctx, msg.Dir, editor.Text())
		if err != nil {
			return err
		}
		if hooks.OnExported != nil {
			hooks.OnExported(artifact)
		}
		return nil
	}
	handlerOpts := baseOptions[ExportFileCommand](logger, exportOperation)
	handlerOpts = append(handlerOpts, commands.WithMessageFields(func(msg ExportFileCommand) map[string]any {
		if msg.Dir == "" {
			return nil
		}
		return map[string]any{"export_dir": msg.Dir}
	}))
	return &ExportFileHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ExportFileCommand].
func (h *ExportFileHandler) Execute(ctx context.Context, msg ExportFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// TogglePreviewHandler flips the preview pane.
type TogglePreviewHandler struct {
	inner *commands.Handler[TogglePreviewCommand]
}

// NewTogglePreviewHandler binds the handler to editor.
func NewTogglePreviewHandler(editor Editor, logger interfaces.Logger, hooks Hooks, opts ...commands.HandlerOption[TogglePreviewCommand]) *TogglePreviewHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, _ TogglePreviewCommand) error {
		visible := editor.TogglePreview()
		if hooks.OnPreviewToggled != nil {
			hooks.OnPreviewToggled(visible)
		}
		return nil
	}
	handlerOpts := baseOptions[TogglePreviewCommand](logger, previewOperation)
	return &TogglePreviewHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[TogglePreviewCommand].
func (h *TogglePreviewHandler) Execute(ctx context.Context, msg TogglePreviewCommand) error {
	return h.inner.Execute(ctx, msg)
}
