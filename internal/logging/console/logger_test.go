package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("mdpad.files")
	logger = logging.WithFields(logger, map[string]any{"module": "mdpad.files"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"session": "s-1",
	})
	logger = logger.WithContext(ctx)

	logger.Info("files.export.completed",
		"file_path", "/tmp/markdown_2024-03-14_15-09-26.md",
		"bytes", 42,
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO files.export.completed bytes=42 file_path=/tmp/markdown_2024-03-14_15-09-26.md logger=mdpad.files module=mdpad.files session=s-1"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &minLevel})

	logger := provider.GetLogger("mdpad.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_QuotesValuesAndPositionalArgs(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return time.Unix(0, 0) },
	})

	provider.GetLogger("mdpad.store").Warn("store.write.failed", "error", errors.New("disk full"), "dangling")

	got := buf.String()
	if !strings.Contains(got, `error="disk full"`) {
		t.Fatalf("expected quoted error value, got %s", got)
	}
	if !strings.Contains(got, "field_1=dangling") {
		t.Fatalf("expected positional field for trailing arg, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		" info ":  console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
		"fatal":   console.LevelFatal,
	}
	for name, want := range cases {
		got, ok := console.ParseLevel(name)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}
