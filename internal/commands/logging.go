package commands

import (
	"strings"

	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// CommandLogger returns a module-scoped logger for command handlers, tagged so
// command executions can be filtered apart from field activity.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, logging.CommandsModule+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
