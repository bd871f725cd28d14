package di_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-mdpad/internal/di"
	"github.com/goliatone/go-mdpad/internal/runtimeconfig"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

func TestContainerLogsStorageFallback(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "postgres"
	cfg.Storage.DSN = "postgres://mdpad@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	rec := newRecordingProvider()
	container, err := di.NewContainer(context.Background(), cfg, di.WithLoggerProvider(rec))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	defer container.Close()

	entry := rec.find("slots.storage.unavailable")
	if entry == nil {
		t.Fatalf("expected slots.storage.unavailable log entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "mdpad.slots" {
		t.Fatalf("expected module field mdpad.slots, got %v", got)
	}
	if got := entry.fields["fallback"]; got != "memory" {
		t.Fatalf("expected fallback field memory, got %v", got)
	}
}

func TestContainerLogsStorageReady(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.DSN = filepath.Join(t.TempDir(), "mdpad.db")

	rec := newRecordingProvider()
	container, err := di.NewContainer(context.Background(), cfg, di.WithLoggerProvider(rec))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	defer container.Close()

	entry := rec.find("slots.storage.ready")
	if entry == nil {
		t.Fatalf("expected slots.storage.ready log entry, got %#v", rec.entries)
	}
	if got := entry.fields["driver"]; got != "sqlite" {
		t.Fatalf("expected driver sqlite, got %v", got)
	}
}

type recordingProvider struct {
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{entries: []recordedEntry{}}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{
		provider: p,
		fields: map[string]any{
			"logger": name,
		},
	}
}

func (p *recordingProvider) record(entry recordedEntry) {
	p.entries = append(p.entries, entry)
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

var _ interfaces.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &recordingLogger{
		provider: l.provider,
		fields:   merged,
	}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return &recordingLogger{
		provider: l.provider,
		fields:   cloneFields(l.fields),
	}
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := cloneFields(l.fields)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			break
		}
		key, _ := args[i].(string)
		if key == "" {
			continue
		}
		fields[key] = args[i+1]
	}
	l.provider.record(recordedEntry{
		level:  level,
		msg:    msg,
		fields: fields,
	})
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}
