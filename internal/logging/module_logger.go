package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

const (
	rootModule   = "mdpad"
	storeModule  = "mdpad.store"
	slotsModule  = "mdpad.slots"
	editorModule = "mdpad.editor"
	filesModule  = "mdpad.files"
	renderModule = "mdpad.render"
	tuiModule    = "mdpad.tui"
)

const (
	fieldSlotKey    = "slot_key"
	fieldFilePath   = "file_path"
	fieldFileAction = "file_action"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields a
// no-op logger. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StoreLogger returns the logger for the persistent text store.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// SlotsLogger returns the logger for slot repositories.
func SlotsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, slotsModule)
}

// EditorLogger returns the logger for the editor session.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// FilesLogger returns the logger for file import and export.
func FilesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, filesModule)
}

// RenderLogger returns the logger for markdown renderers.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// TUILogger returns the logger for the terminal program.
func TUILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tuiModule)
}

// WithSlotContext tags entries with the durable slot key.
func WithSlotContext(logger interfaces.Logger, key string) interfaces.Logger {
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		return WithFields(logger, map[string]any{fieldSlotKey: trimmed})
	}
	return logger
}

// WithFileContext tags entries with a file path and the action (import,
// export) being performed on it. Empty values are skipped.
func WithFileContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFilePath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldFileAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
