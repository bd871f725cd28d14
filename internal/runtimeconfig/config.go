package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrStorageDriverUnknown   = errors.New("mdpad config: storage driver is invalid")
	ErrStorageDSNRequired     = errors.New("mdpad config: storage dsn is required for this driver")
	ErrStorageKeyRequired     = errors.New("mdpad config: storage key is required")
	ErrLoggingProviderUnknown = errors.New("mdpad config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("mdpad config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("mdpad config: logging format is invalid")
)

const (
	// DefaultSlotKey is the durable slot holding the document.
	DefaultSlotKey = "markdown-content"
	// DefaultContent seeds the editor when nothing was stored yet.
	DefaultContent = "# Welcome to mdpad\n\nStart typing your content..."
)

// Config aggregates the settings of an mdpad instance.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Editor  EditorConfig  `json:"editor"`
	Preview PreviewConfig `json:"preview"`
	Export  ExportConfig  `json:"export"`
	Logging LoggingConfig `json:"logging"`
}

// StorageConfig selects where the document is persisted.
type StorageConfig struct {
	// Driver is one of memory, sqlite or postgres.
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
	Key    string `json:"key"`
}

// EditorConfig controls the editing session.
type EditorConfig struct {
	DefaultContent string `json:"default_content"`
}

// PreviewConfig controls rendering.
type PreviewConfig struct {
	Tables         bool   `json:"tables"`
	HighlightStyle string `json:"highlight_style"`
	TerminalStyle  string `json:"terminal_style"`
}

// ExportConfig controls where exported documents land.
type ExportConfig struct {
	Dir string `json:"dir"`
}

// LoggingConfig captures provider-specific options for runtime logging.
// File redirects the console provider away from the terminal.
type LoggingConfig struct {
	Provider  string   `json:"provider"`
	Level     string   `json:"level"`
	Format    string   `json:"format"`
	File      string   `json:"file"`
	AddSource bool     `json:"add_source"`
	Focus     []string `json:"focus"`
}

// DefaultConfig returns a SQLite-backed configuration under the user config
// directory.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(DataDir(), "mdpad.db"),
			Key:    DefaultSlotKey,
		},
		Editor: EditorConfig{
			DefaultContent: DefaultContent,
		},
		Preview: PreviewConfig{
			Tables:         true,
			HighlightStyle: "monokai",
			TerminalStyle:  "dark",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "console",
			File:     filepath.Join(DataDir(), "mdpad.log"),
		},
	}
}

// DataDir is the directory holding the database and log file.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "mdpad")
}

// Validate checks cross-field constraints.
func (cfg Config) Validate() error {
	driver := normalize(cfg.Storage.Driver)
	switch driver {
	case "memory":
	case "sqlite", "sqlite3", "postgres", "postgresql", "pg":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %q", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		return ErrStorageKeyRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
