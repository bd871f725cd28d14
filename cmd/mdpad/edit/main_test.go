package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-mdpad/internal/tui"
)

func TestRunEditBuildsModel(t *testing.T) {
	original := runProgram
	defer func() { runProgram = original }()

	var got tea.Model
	runProgram = func(model tea.Model) error {
		got = model
		return nil
	}

	logFile := filepath.Join(t.TempDir(), "mdpad.log")
	if err := runEdit(context.Background(), []string{"-driver", "memory", "-log-file", logFile}); err != nil {
		t.Fatalf("runEdit returned error: %v", err)
	}
	model, ok := got.(*tui.Model)
	if !ok || model == nil {
		t.Fatalf("expected *tui.Model, got %T", got)
	}
	if view := model.View(); view == "" {
		t.Fatalf("expected a rendered view")
	}
}

func TestRunEditWithUnreachableStorage(t *testing.T) {
	original := runProgram
	defer func() { runProgram = original }()

	var got tea.Model
	runProgram = func(model tea.Model) error {
		got = model
		return nil
	}

	args := []string{
		"-driver", "postgres",
		"-dsn", "postgres://nobody@127.0.0.1:1/mdpad?sslmode=disable&connect_timeout=1",
		"-log-file", filepath.Join(t.TempDir(), "mdpad.log"),
	}
	if err := runEdit(context.Background(), args); err != nil {
		t.Fatalf("runEdit returned error: %v", err)
	}
	model, ok := got.(*tui.Model)
	if !ok || model == nil {
		t.Fatalf("expected *tui.Model, got %T", got)
	}
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(model.View(), "memory only") {
		t.Fatalf("expected degraded storage notice in view")
	}
}
