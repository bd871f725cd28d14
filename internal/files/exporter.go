package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// Artifact describes an exported document.
type Artifact struct {
	Name      string
	Path      string
	MediaType string
	Size      int
	CreatedAt time.Time
}

// Exporter writes documents into a directory.
type Exporter struct {
	dir    string
	clock  func() time.Time
	logger interfaces.Logger
}

// ExporterOption customises an Exporter.
type ExporterOption func(*Exporter)

// WithClock overrides the clock used for export timestamps.
func WithClock(clock func() time.Time) ExporterOption {
	return func(e *Exporter) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithExportLogger sets the exporter logger.
func WithExportLogger(logger interfaces.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logging.Ensure(logger)
	}
}

// NewExporter writes into dir; an empty dir means the working directory.
func NewExporter(dir string, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		dir:    strings.TrimSpace(dir),
		clock:  time.Now,
		logger: logging.NoOp(),
	}
	if e.dir == "" {
		e.dir = "."
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Dir returns the export directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes content to markdown_<timestamp>.md. An existing file is never
// replaced: a -1, -2, ... suffix is added instead.
func (e *Exporter) Export(ctx context.Context, content string) (*Artifact, error) {
	return e.ExportTo(ctx, e.dir, content)
}

// ExportTo is Export into an explicit directory.
func (e *Exporter) ExportTo(ctx context.Context, dir, content string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		dir = e.dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("files: create export dir: %w", err)
	}

	now := e.clock()
	base := strings.TrimSuffix(FileName(now), ".md")

	for attempt := 0; attempt < 1000; attempt++ {
		name := base + ".md"
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d.md", base, attempt)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("files: create %s: %w", path, err)
		}

		n, writeErr := f.WriteString(content)
		closeErr := f.Close()
		if writeErr != nil {
			return nil, fmt.Errorf("files: write %s: %w", path, writeErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("files: close %s: %w", path, closeErr)
		}

		logging.WithFileContext(e.logger, path, "export").Info("files.export.completed", "bytes", n)
		return &Artifact{
			Name:      name,
			Path:      path,
			MediaType: MediaType,
			Size:      n,
			CreatedAt: now,
		}, nil
	}
	return nil, fmt.Errorf("files: no free export name for %s in %s", base, dir)
}
