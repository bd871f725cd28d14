// Package di wires the mdpad services from a runtime configuration.
package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uptrace/bun"

	editorcmd "github.com/goliatone/go-mdpad/internal/commands/editor"
	"github.com/goliatone/go-mdpad/internal/editor"
	"github.com/goliatone/go-mdpad/internal/files"
	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/internal/logging/console"
	"github.com/goliatone/go-mdpad/internal/logging/gologger"
	"github.com/goliatone/go-mdpad/internal/render"
	"github.com/goliatone/go-mdpad/internal/runtimeconfig"
	"github.com/goliatone/go-mdpad/internal/slots"
	"github.com/goliatone/go-mdpad/internal/textstore"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// Container holds the services of one mdpad instance.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	closers        []io.Closer

	bunDB      *bun.DB
	ownsDB     bool
	repo       slots.Repository
	storageErr error

	store    *textstore.Store
	importer *files.Importer
	exporter *files.Exporter
	html     *render.HTMLRenderer
	terminal *render.TerminalRenderer
	clock    func() time.Time
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter sends console provider output to w instead of the
// configured log file.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithBunDB uses db for durable slots. The caller keeps ownership.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSlotRepository bypasses database wiring entirely.
func WithSlotRepository(repo slots.Repository) Option {
	return func(c *Container) {
		c.repo = repo
	}
}

// WithClock overrides the clock used for export names.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates cfg and builds every service. Storage failures do
// not fail construction: the text store runs from memory instead and
// StorageErr reports why.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{
		Config: cfg,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureStorage(ctx)

	c.store = textstore.New(
		c.repo,
		cfg.Storage.Key,
		cfg.Editor.DefaultContent,
		textstore.WithLogger(logging.StoreLogger(c.loggerProvider)),
	)
	c.importer = files.NewImporter(files.WithImportLogger(logging.FilesLogger(c.loggerProvider)))
	c.exporter = files.NewExporter(
		cfg.Export.Dir,
		files.WithClock(c.clock),
		files.WithExportLogger(logging.FilesLogger(c.loggerProvider)),
	)
	renderLogger := logging.RenderLogger(c.loggerProvider)
	c.html = render.NewHTMLRenderer(c.RenderOptions(0), render.WithHTMLLogger(renderLogger))
	c.terminal = render.NewTerminalRenderer(cfg.Preview.TerminalStyle, render.WithTerminalLogger(renderLogger))
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
		return nil
	default:
		writer := c.logWriter
		if writer == nil {
			w, err := openLogFile(cfg.File)
			if err != nil {
				return err
			}
			if w != nil {
				c.closers = append(c.closers, w)
				writer = w
			} else {
				writer = os.Stderr
			}
		}
		opts := console.Options{Writer: writer}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
		return nil
	}
}

func openLogFile(path string) (*os.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("di: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("di: open log file: %w", err)
	}
	return f, nil
}

func (c *Container) configureStorage(ctx context.Context) {
	if c.repo != nil {
		return
	}
	logger := logging.SlotsLogger(c.loggerProvider)
	driver := slots.NormalizeDriver(c.Config.Storage.Driver)

	if driver == slots.DriverMemory && c.bunDB == nil {
		c.repo = slots.NewMemoryRepository()
		return
	}

	db := c.bunDB
	if db == nil {
		opened, err := slots.Open(ctx, driver, c.Config.Storage.DSN)
		if err != nil {
			c.storageFailed(logger, err)
			return
		}
		db = opened
		c.bunDB = opened
		c.ownsDB = true
	}

	repo := slots.NewBunRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		c.storageFailed(logger, err)
		return
	}
	c.repo = repo
	logger.Info("slots.storage.ready", "driver", driver)
}

func (c *Container) storageFailed(logger interfaces.Logger, err error) {
	c.storageErr = err
	logger.Warn("slots.storage.unavailable", "error", err, "fallback", "memory")
}

// LoggerProvider returns the configured provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// SlotRepository returns the durable repository, or nil when storage is
// unavailable.
func (c *Container) SlotRepository() slots.Repository {
	return c.repo
}

// StorageErr reports why durable storage could not be opened.
func (c *Container) StorageErr() error {
	return c.storageErr
}

// TextStore returns the persistent text store for the configured key.
func (c *Container) TextStore() *textstore.Store {
	return c.store
}

// Importer returns the file importer.
func (c *Container) Importer() *files.Importer {
	return c.importer
}

// Exporter returns the file exporter.
func (c *Container) Exporter() *files.Exporter {
	return c.exporter
}

// HTMLRenderer returns the HTML renderer.
func (c *Container) HTMLRenderer() *render.HTMLRenderer {
	return c.html
}

// TerminalRenderer returns the terminal preview renderer.
func (c *Container) TerminalRenderer() *render.TerminalRenderer {
	return c.terminal
}

// RenderOptions returns the configured render options at width.
func (c *Container) RenderOptions(width int) interfaces.RenderOptions {
	return interfaces.RenderOptions{
		Tables:         interfaces.Bool(c.Config.Preview.Tables),
		HighlightStyle: c.Config.Preview.HighlightStyle,
		Width:          width,
	}
}

// NewSession opens an editing session over the text store.
func (c *Container) NewSession(ctx context.Context, opts ...editor.Option) *editor.Session {
	all := append([]editor.Option{editor.WithLogger(logging.EditorLogger(c.loggerProvider))}, opts...)
	return editor.NewSession(ctx, c.store, all...)
}

// EditorCommands builds the editor command handlers for session.
func (c *Container) EditorCommands(reg editorcmd.CommandRegistry, session *editor.Session, hooks editorcmd.Hooks, opts ...editorcmd.Option) (*editorcmd.HandlerSet, error) {
	if session == nil {
		return nil, editorcmd.ErrEditorRequired
	}
	return editorcmd.RegisterEditorCommands(reg, editorcmd.Dependencies{
		Editor:   session,
		Importer: c.importer,
		Exporter: c.exporter,
		Hooks:    hooks,
	}, c.loggerProvider, opts...)
}

// Close releases the database and log file opened by the container.
func (c *Container) Close() error {
	var errs []error
	if c.ownsDB && c.bunDB != nil {
		if err := c.bunDB.Close(); err != nil {
			errs = append(errs, err)
		}
		c.bunDB = nil
	}
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
