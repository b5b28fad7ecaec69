// Package logging scopes loggers to the modules of the asset field engine.
package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// Module names handed to interfaces.LoggerProvider.
const (
	RootModule      = "assetfield"
	StoreModule     = RootModule + ".store"
	FieldsModule    = RootModule + ".fields"
	CommandsModule  = RootModule + ".commands"
	ContainerModule = RootModule + ".di"
)

// ModuleLogger asks provider for module and tags every entry with it. A nil
// provider, or one that returns nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}
	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	return WithFields(Ensure(logger), map[string]any{"module": module})
}

func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, StoreModule)
}

func FieldLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, FieldsModule)
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns logger unchanged otherwise. The map is copied.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(interfaces.FieldsLogger); ok {
		return fl.WithFields(maps.Clone(fields))
	}
	return logger
}

// Ensure substitutes NoOp for a nil logger.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}
