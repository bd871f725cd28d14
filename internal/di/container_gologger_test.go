package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-mdpad/internal/logging/gologger"
	"github.com/goliatone/go-mdpad/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	defer container.Close()

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if logger := provider.GetLogger("mdpad.test"); logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
	if len(container.closers) != 0 {
		t.Fatal("go-logger provider should not open the log file")
	}
}
