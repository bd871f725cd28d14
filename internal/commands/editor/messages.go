package editorcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdpad/internal/toolbar"
)

const (
	insertSnippetMessageType = "mdpad.editor.insert_snippet"
	applyToolbarMessageType  = "mdpad.editor.apply_toolbar"
	indentMessageType        = "mdpad.editor.indent"
	loadFileMessageType      = "mdpad.editor.load_file"
	replaceMessageType       = "mdpad.editor.replace_document"
	exportFileMessageType    = "mdpad.editor.export_file"
	togglePreviewMessageType = "mdpad.editor.toggle_preview"
)

// InsertSnippetCommand replaces the current selection with Snippet and
// places the cursor CursorOffset runes after the selection start.
type InsertSnippetCommand struct {
	Snippet      string `json:"snippet"`
	CursorOffset int    `json:"cursor_offset"`
}

// Type implements command.Message.
func (InsertSnippetCommand) Type() string { return insertSnippetMessageType }

// Validate implements command.Message. An empty snippet is allowed and only
// clears the selection. CursorOffset is taken as given, negative values
// included; the cursor is clamped when it is applied.
func (InsertSnippetCommand) Validate() error { return nil }

// ApplyToolbarCommand runs a toolbar action against the selection.
type ApplyToolbarCommand struct {
	Action toolbar.Action `json:"action"`
}

// Type implements command.Message.
func (ApplyToolbarCommand) Type() string { return applyToolbarMessageType }

// Validate implements command.Message.
func (cmd ApplyToolbarCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Action, validation.Required, validation.By(func(value any) error {
			if _, ok := toolbar.Lookup(value.(toolbar.Action)); !ok {
				return validation.NewError("mdpad.editor.apply_toolbar.unknown_action", "unknown toolbar action")
			}
			return nil
		})),
	)
}

// IndentCommand applies the tab key policy at the selection.
type IndentCommand struct{}

// Type implements command.Message.
func (IndentCommand) Type() string { return indentMessageType }

// Validate implements command.Message.
func (IndentCommand) Validate() error { return nil }

// LoadFileCommand replaces the document with the contents of Path.
type LoadFileCommand struct {
	Path string `json:"path"`
}

// Type implements command.Message.
func (LoadFileCommand) Type() string { return loadFileMessageType }

// Validate implements command.Message.
func (cmd LoadFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("mdpad.editor.load_file.path_required", "path is required")
			}
			return nil
		})),
	)
}

// ReplaceDocumentCommand swaps the whole document for Content, as when a
// file read finished elsewhere. Source names where the text came from.
type ReplaceDocumentCommand struct {
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// Type implements command.Message.
func (ReplaceDocumentCommand) Type() string { return replaceMessageType }

// Validate implements command.Message. Empty content is a valid document.
func (ReplaceDocumentCommand) Validate() error { return nil }

// ExportFileCommand writes the document to a timestamped file. An empty Dir
// uses the configured export directory.
type ExportFileCommand struct {
	Dir string `json:"dir,omitempty"`
}

// Type implements command.Message.
func (ExportFileCommand) Type() string { return exportFileMessageType }

// Validate implements command.Message.
func (ExportFileCommand) Validate() error { return nil }

// TogglePreviewCommand shows or hides the preview pane.
type TogglePreviewCommand struct{}

// Type implements command.Message.
func (TogglePreviewCommand) Type() string { return togglePreviewMessageType }

// Validate implements command.Message.
func (TogglePreviewCommand) Validate() error { return nil }
