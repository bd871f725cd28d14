package commands

import (
	"strings"

	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

const commandModuleRoot = "mdpad.commands"

// CommandLogger returns a logger for the mdpad.commands.<module> module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
