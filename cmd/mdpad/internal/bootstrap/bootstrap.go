package bootstrap

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-mdpad"
	"github.com/goliatone/go-mdpad/internal/di"
	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// Options captures the settings shared by the mdpad CLIs. Empty values keep
// whatever the config file or the defaults provide.
type Options struct {
	ConfigPath  string
	Driver      string
	DSN         string
	Key         string
	ExportDir   string
	LogLevel    string
	LogProvider string
	LogFile     string

	LoggerProvider interfaces.LoggerProvider
	LogWriter      io.Writer
}

// Module wraps the mdpad module and the CLI logger.
type Module struct {
	Module *mdpad.Module
	Logger interfaces.Logger
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *flag.FlagSet) *Options {
	opts := &Options{}
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a JSON config file")
	fs.StringVar(&opts.Driver, "driver", "", "Storage driver (sqlite, postgres, memory)")
	fs.StringVar(&opts.DSN, "dsn", "", "Storage DSN (sqlite file path or postgres URL)")
	fs.StringVar(&opts.Key, "key", "", "Slot key holding the document")
	fs.StringVar(&opts.ExportDir, "export-dir", "", "Directory for exported files")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&opts.LogProvider, "log-provider", "", "Logging provider (console, gologger)")
	fs.StringVar(&opts.LogFile, "log-file", "", "Console log file")
	return opts
}

// Config resolves the effective configuration: defaults, then the config
// file, then flags.
func Config(opts Options) (mdpad.Config, error) {
	cfg := mdpad.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := mdpad.LoadConfigFile(path, cfg)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	override(&cfg.Storage.Driver, opts.Driver)
	override(&cfg.Storage.DSN, opts.DSN)
	override(&cfg.Storage.Key, opts.Key)
	override(&cfg.Export.Dir, opts.ExportDir)
	override(&cfg.Logging.Level, opts.LogLevel)
	override(&cfg.Logging.Provider, opts.LogProvider)
	override(&cfg.Logging.File, opts.LogFile)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BuildModule constructs the mdpad module for a CLI run.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg, err := Config(opts)
	if err != nil {
		return nil, err
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.LogWriter != nil {
		diOpts = append(diOpts, di.WithLogWriter(opts.LogWriter))
	}

	module, err := mdpad.New(ctx, cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise mdpad module: %w", err)
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "mdpad.cli")
	if storageErr := module.StorageErr(); storageErr != nil {
		logger.Warn("cli.storage.degraded", "error", storageErr)
	}

	return &Module{
		Module: module,
		Logger: logger,
	}, nil
}

func override(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}
