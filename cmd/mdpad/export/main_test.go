package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mdpad"
)

func TestRunExportWritesDefaultDocument(t *testing.T) {
	dir := t.TempDir()
	args := []string{"-driver", "memory", "-log-file", filepath.Join(dir, "mdpad.log"), "-dir", dir}

	var out bytes.Buffer
	if err := runExport(context.Background(), args, &out); err != nil {
		t.Fatalf("runExport returned error: %v", err)
	}
	path := strings.TrimSpace(out.String())
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "markdown_") {
		t.Fatalf("unexpected export path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != mdpad.DefaultConfig().Editor.DefaultContent {
		t.Fatalf("unexpected export content %q", data)
	}
}
