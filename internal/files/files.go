// Package files reads user-selected text files into the editor and writes
// the document out as timestamped markdown artifacts.
package files

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// MediaType is the media type of exported documents.
const MediaType = "text/markdown"

// TimestampLayout formats export timestamps as YYYY-MM-DD_HH-mm-ss.
const TimestampLayout = "2006-01-02_15-04-05"

const (
	unsupportedExtensionCode = "FILE_EXTENSION_UNSUPPORTED"
	notTextCode              = "FILE_NOT_TEXT"
	readFailedCode           = "FILE_READ_FAILED"
	pathRequiredCode         = "FILE_PATH_REQUIRED"
)

var (
	// ErrPathRequired is returned when no file was chosen.
	ErrPathRequired = errors.New("files: path is required")
	// ErrUnsupportedExtension is returned for files outside AllowedExtensions.
	ErrUnsupportedExtension = errors.New("files: unsupported file extension")
	// ErrNotText is returned when a file cannot be decoded as text.
	ErrNotText = errors.New("files: file is not valid text")
)

// AllowedExtensions lists the extensions accepted for import.
var AllowedExtensions = []string{".md", ".markdown", ".txt"}

// Allowed reports whether path carries one of AllowedExtensions.
func Allowed(path string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(path)))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// FileName returns the export file name for the moment t.
func FileName(t time.Time) string {
	return "markdown_" + t.Format(TimestampLayout) + ".md"
}

func validationError(err error, message, code string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).WithTextCode(code)
}
