package editorcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-mdpad/internal/files"
	"github.com/goliatone/go-mdpad/internal/toolbar"
)

type flakyExporter struct {
	failures int
	calls    int
}

func (f *flakyExporter) ExportTo(_ context.Context, dir, content string) (*files.Artifact, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("disk busy")
	}
	return &files.Artifact{Name: "markdown_test.md", Path: dir + "/markdown_test.md", Size: len(content)}, nil
}

func TestDispatcherRoutesToolbarCommand(t *testing.T) {
	session, store := newEditor(t, "word")
	handler := NewApplyToolbarHandler(session, nil, Hooks{})

	sub := dispatcher.SubscribeCommand(handler)
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), ApplyToolbarCommand{Action: toolbar.Heading1}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if session.Text() != "word# " {
		t.Fatalf("unexpected text %q", session.Text())
	}
	if got := store.Read(context.Background()); got != "word# " {
		t.Fatalf("store not updated, got %q", got)
	}
}

func TestDispatcherRetriesExport(t *testing.T) {
	session, _ := newEditor(t, "body")
	exporter := &flakyExporter{failures: 1}

	var artifact *files.Artifact
	handler := NewExportFileHandler(session, exporter, nil, Hooks{OnExported: func(a *files.Artifact) { artifact = a }})

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), ExportFileCommand{Dir: "out"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if exporter.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", exporter.calls)
	}
	if artifact == nil || artifact.Size != 4 {
		t.Fatalf("unexpected artifact %+v", artifact)
	}
}

func TestDispatcherPropagatesExhaustedRetries(t *testing.T) {
	session, _ := newEditor(t, "body")
	exporter := &flakyExporter{failures: 10}
	handler := NewExportFileHandler(session, exporter, nil, Hooks{})

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), ExportFileCommand{Dir: "out"}); err == nil {
		t.Fatalf("expected error after retries")
	}
	if exporter.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", exporter.calls)
	}
}
