package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdpad/cmd/mdpad/internal/bootstrap"
	editorcmd "github.com/goliatone/go-mdpad/internal/commands/editor"
	"github.com/goliatone/go-mdpad/internal/editor"
	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/internal/slots"
	"github.com/goliatone/go-mdpad/internal/tui"
)

var (
	moduleBuilder = bootstrap.BuildModule
	runProgram    = func(model tea.Model) error {
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := runEdit(ctx, os.Args[1:]); err != nil {
		log.Fatalf("mdpad edit: %v", err)
	}
}

func runEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mdpad-edit", flag.ExitOnError)
	opts := bootstrap.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(ctx, *opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctx = logging.ContextWithFields(ctx, map[string]any{"session_id": uuid.NewString()})

	container := module.Module.Container()
	provider := container.LoggerProvider()

	var events <-chan slots.ChangeEvent
	if repo := container.SlotRepository(); repo != nil {
		subscribed, err := repo.Subscribe(ctx)
		if err != nil {
			module.Logger.Warn("cli.edit.subscribe_failed", "error", err)
		} else {
			events = subscribed
		}
	}

	model, err := tui.New(ctx, tui.Config{
		Session:       module.Module.NewSession(ctx),
		Importer:      container.Importer(),
		Renderer:      container.TerminalRenderer(),
		RenderOptions: container.RenderOptions(0),
		Events:        events,
		Degraded:      module.Module.StorageErr() != nil || container.TextStore().Degraded(),
		Logger:        logging.TUILogger(provider),
		Register: func(session *editor.Session, hooks editorcmd.Hooks) (*editorcmd.HandlerSet, error) {
			return container.EditorCommands(nil, session, hooks)
		},
	})
	if err != nil {
		return fmt.Errorf("build editor: %w", err)
	}

	module.Logger.Info("cli.edit.started", "slot_key", container.Config.Storage.Key)
	if err := runProgram(model); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
