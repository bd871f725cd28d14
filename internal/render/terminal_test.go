package render

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

func TestTerminalRendererRendersText(t *testing.T) {
	r := NewTerminalRenderer("notty")
	out, err := r.Render(context.Background(), []byte("# Title\n\nsome words"), interfaces.RenderOptions{Width: 40})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out.Output), "some words") {
		t.Fatalf("expected body text, got %q", out.Output)
	}
}

func TestTerminalRendererCachesPerWidth(t *testing.T) {
	r := NewTerminalRenderer("notty")
	first, err := r.renderer(30)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	second, _ := r.renderer(30)
	if first != second {
		t.Fatal("expected cached renderer for same width")
	}
	other, _ := r.renderer(50)
	if other == first {
		t.Fatal("expected distinct renderer for different width")
	}
}

func TestTerminalRendererUnknownStyle(t *testing.T) {
	r := NewTerminalRenderer("no-such-style")
	if _, err := r.Render(context.Background(), []byte("x"), interfaces.RenderOptions{}); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestTerminalRendererConcurrentRenders(t *testing.T) {
	r := NewTerminalRenderer("notty")
	doc := []byte("# Title\n\n- one\n- two\n\n```go\nfunc main() {}\n```\n\nsome **bold** words")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := r.Render(context.Background(), doc, interfaces.RenderOptions{Width: 40})
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(string(out.Output), "words") {
				errs <- fmt.Errorf("missing body text in %q", out.Output)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent render: %v", err)
	}
}
