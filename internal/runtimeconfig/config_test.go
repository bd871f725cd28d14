package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-mdpad/internal/runtimeconfig"
	"github.com/goliatone/go-mdpad/internal/validation"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Storage.Key != "markdown-content" {
		t.Fatalf("unexpected default key %q", cfg.Storage.Key)
	}
	if cfg.Editor.DefaultContent != runtimeconfig.DefaultContent {
		t.Fatalf("unexpected default content %q", cfg.Editor.DefaultContent)
	}
}

func TestConfigValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "redis"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestConfigValidate_MemoryNeedsNoDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate_SQLiteNeedsDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.DSN = " "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresKey(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Key = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageKeyRequired) {
		t.Fatalf("expected ErrStorageKeyRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	base := runtimeconfig.DefaultConfig()
	cfg, err := runtimeconfig.Decode([]byte(`{"storage":{"driver":"memory"},"preview":{"tables":false}}`), base)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("driver not applied: %q", cfg.Storage.Driver)
	}
	if cfg.Preview.Tables {
		t.Fatal("expected tables disabled")
	}
	if cfg.Storage.Key != base.Storage.Key || cfg.Preview.HighlightStyle != base.Preview.HighlightStyle {
		t.Fatal("unset keys should keep base values")
	}
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	_, err := runtimeconfig.Decode([]byte(`{"storage":{"driver":"redis"},"unknown":1}`), runtimeconfig.DefaultConfig())
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	if len(validation.Issues(err)) < 2 {
		t.Fatalf("expected an issue per violation, got %#v", validation.Issues(err))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdpad.json")
	if err := os.WriteFile(path, []byte(`{"export":{"dir":"out"},"logging":{"level":"debug"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := runtimeconfig.LoadFile(path, runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Export.Dir != "out" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := runtimeconfig.LoadFile(filepath.Join(t.TempDir(), "none.json"), runtimeconfig.DefaultConfig()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
