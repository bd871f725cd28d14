package files

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// Importer turns a chosen file into document text.
type Importer struct {
	logger  interfaces.Logger
	maxSize int64
}

// ImporterOption customises an Importer.
type ImporterOption func(*Importer)

// WithImportLogger sets the importer logger.
func WithImportLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		i.logger = logging.Ensure(logger)
	}
}

// WithMaxSize rejects files larger than n bytes. Zero disables the limit.
func WithMaxSize(n int64) ImporterOption {
	return func(i *Importer) {
		i.maxSize = n
	}
}

// NewImporter constructs an Importer.
func NewImporter(opts ...ImporterOption) *Importer {
	i := &Importer{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Read returns the full text of the file at path. UTF-16 files with a byte
// order mark are transcoded, a UTF-8 BOM is dropped and CRLF line endings are
// folded to LF. Any failure leaves nothing for the caller to apply.
func (i *Importer) Read(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	logger := logging.WithFileContext(i.logger, path, "import")

	if path == "" {
		return "", validationError(ErrPathRequired, "no file selected", pathRequiredCode)
	}
	if !Allowed(path) {
		return "", validationError(
			fmt.Errorf("%w: %s", ErrUnsupportedExtension, path),
			"only .md, .markdown and .txt files can be loaded",
			unsupportedExtensionCode,
		)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if i.maxSize > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > i.maxSize {
			return "", validationError(
				fmt.Errorf("%w: %d bytes exceeds %d", ErrNotText, info.Size(), i.maxSize),
				"file is too large to load",
				notTextCode,
			)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("files.import.read_failed", "error", err)
		return "", validationError(fmt.Errorf("files: read %s: %w", path, err), "error reading file", readFailedCode)
	}

	text, err := decodeText(data)
	if err != nil {
		logger.Warn("files.import.decode_failed", "error", err)
		return "", validationError(err, "error reading file", notTextCode)
	}

	logger.Info("files.import.completed", "bytes", len(data))
	return text, nil
}

func decodeText(data []byte) (string, error) {
	if hasUTF16BOM(data) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotText, err)
		}
		data = decoded
	} else {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: invalid UTF-8", ErrNotText)
		}
		data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	}

	if bytes.IndexByte(data, 0) >= 0 {
		return "", fmt.Errorf("%w: binary content", ErrNotText)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 &&
		((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF))
}
