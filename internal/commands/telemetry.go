package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus classifies a command outcome.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
	// TelemetryStatusNotFound marks commands whose block or asset target
	// does not exist. It is a caller problem rather than an engine fault.
	TelemetryStatusNotFound TelemetryStatus = "not_found"
)

// TelemetryInfo describes one command execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked after every execution in place of the built-in
// outcome logging.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes with timing through logger.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.Ensure(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		info.Logger = logging.WithFields(logger, info.Fields)
		logOutcome(info, "duration_ms", info.Duration.Milliseconds())
	}
}

func logOutcome(info TelemetryInfo, args ...any) {
	logger := logging.Ensure(info.Logger)
	switch info.Status {
	case TelemetryStatusSuccess:
		logger.Info("command.execute.success", args...)
	case TelemetryStatusNotFound:
		logger.Warn("command.execute.not_found", append(args, "error", info.Error)...)
	case TelemetryStatusContextError:
		logger.Error("command.execute.context_error", append(args, "error", info.Error)...)
	default:
		logger.Error("command.execute.failed", append(args, "error", info.Error)...)
	}
}
