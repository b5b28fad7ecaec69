package fieldscmd

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/commands"
	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/internal/store"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	undoOperation          = "fields.undo"
	redoOperation          = "fields.redo"
	disposeBlockOperation  = "fields.dispose_block"
	persistAssetsOperation = "fields.assets.persist"
	loadAssetsOperation    = "fields.assets.load"
)

var (
	// ErrPersistenceFeatureDisabled is returned when the persistence feature flag is off.
	ErrPersistenceFeatureDisabled = errors.New("fields command: persistence feature disabled")
	// ErrBlockRemoverRequired is returned for permanent disposal without a workspace.
	ErrBlockRemoverRequired = errors.New("fields command: block remover not configured")
)

var (
	_ command.Commander[UndoCommand]          = (*UndoHandler)(nil)
	_ command.Commander[RedoCommand]          = (*RedoHandler)(nil)
	_ command.Commander[DisposeBlockCommand]  = (*DisposeBlockHandler)(nil)
	_ command.Commander[PersistAssetsCommand] = (*PersistAssetsHandler)(nil)
	_ command.Commander[LoadAssetsCommand]    = (*LoadAssetsHandler)(nil)
)

// History is the workspace undo stack.
type History interface {
	Undo() bool
	Redo() bool
}

// BindingDisposer disposes every field binding on a block.
type BindingDisposer interface {
	DisposeBlock(blockID string) int
}

// BlockRemover deletes blocks from the workspace, disposing their fields.
type BlockRemover interface {
	DeleteBlock(id string) error
}

// AssetPersister saves and loads persisted assets.
type AssetPersister interface {
	Save(ctx context.Context, repo store.RecordRepository) (int, error)
	Load(ctx context.Context, repo store.RecordRepository) (int, error)
	LoadType(ctx context.Context, repo store.RecordRepository, t assets.Type) (int, error)
}

// UndoHandler steps the workspace history backwards.
type UndoHandler struct {
	inner *commands.Handler[UndoCommand]
}

// NewUndoHandler creates a handler bound to history.
func NewUndoHandler(history History, logger interfaces.Logger, opts ...commands.HandlerOption[UndoCommand]) *UndoHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, _ UndoCommand) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !history.Undo() {
			baseLogger.Debug("fields.command.undo.empty")
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[UndoCommand]{
		commands.WithLogger[UndoCommand](baseLogger),
		commands.WithOperation[UndoCommand](undoOperation),
	}
	return &UndoHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[UndoCommand].
func (h *UndoHandler) Execute(ctx context.Context, msg UndoCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RedoHandler steps the workspace history forwards.
type RedoHandler struct {
	inner *commands.Handler[RedoCommand]
}

// NewRedoHandler creates a handler bound to history.
func NewRedoHandler(history History, logger interfaces.Logger, opts ...commands.HandlerOption[RedoCommand]) *RedoHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, _ RedoCommand) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !history.Redo() {
			baseLogger.Debug("fields.command.redo.empty")
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[RedoCommand]{
		commands.WithLogger[RedoCommand](baseLogger),
		commands.WithOperation[RedoCommand](redoOperation),
	}
	return &RedoHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[RedoCommand].
func (h *RedoHandler) Execute(ctx context.Context, msg RedoCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DisposeBlockHandler tears down the fields of one block.
type DisposeBlockHandler struct {
	inner *commands.Handler[DisposeBlockCommand]
}

// NewDisposeBlockHandler creates a handler. blocks may be nil when permanent
// disposal is not supported.
func NewDisposeBlockHandler(bindings BindingDisposer, blocks BlockRemover, logger interfaces.Logger, opts ...commands.HandlerOption[DisposeBlockCommand]) *DisposeBlockHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg DisposeBlockCommand) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		blockID := strings.TrimSpace(msg.BlockID)
		if msg.Permanent {
			if blocks == nil {
				return ErrBlockRemoverRequired
			}
			if err := blocks.DeleteBlock(blockID); err != nil {
				return &store.NotFoundError{Resource: "block", Key: blockID}
			}
		}
		// deleting the block already disposed its fields; this forgets them
		disposed := 0
		if bindings != nil {
			disposed = bindings.DisposeBlock(blockID)
		}
		logging.WithFields(baseLogger, map[string]any{
			"block_id":  blockID,
			"permanent": msg.Permanent,
			"disposed":  disposed,
		}).Info("fields.command.dispose_block.completed")
		return nil
	}
	handlerOpts := []commands.HandlerOption[DisposeBlockCommand]{
		commands.WithLogger[DisposeBlockCommand](baseLogger),
		commands.WithOperation[DisposeBlockCommand](disposeBlockOperation),
		commands.WithMessageFields(func(msg DisposeBlockCommand) map[string]any {
			fields := map[string]any{"block_id": msg.BlockID}
			if msg.Permanent {
				fields["permanent"] = true
			}
			return fields
		}),
	}
	return &DisposeBlockHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[DisposeBlockCommand].
func (h *DisposeBlockHandler) Execute(ctx context.Context, msg DisposeBlockCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DefaultAutosaveExpression schedules PersistAssetsHandler when it is
// registered with a cron runner.
const DefaultAutosaveExpression = "@every 5m"

// PersistAssetsHandler saves persisted assets through a record repository.
type PersistAssetsHandler struct {
	inner      *commands.Handler[PersistAssetsCommand]
	cronConfig command.HandlerConfig
}

// NewPersistAssetsHandler creates a handler writing assets to repo.
func NewPersistAssetsHandler(persister AssetPersister, repo store.RecordRepository, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PersistAssetsCommand]) *PersistAssetsHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, _ PersistAssetsCommand) error {
		if !gates.persistenceEnabled() {
			return ErrPersistenceFeatureDisabled
		}
		written, err := persister.Save(ctx, repo)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"written_count": written,
		}).Info("fields.command.assets.persist.completed")
		return nil
	}
	handlerOpts := []commands.HandlerOption[PersistAssetsCommand]{
		commands.WithLogger[PersistAssetsCommand](baseLogger),
		commands.WithOperation[PersistAssetsCommand](persistAssetsOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[PersistAssetsCommand](baseLogger)),
	}
	return &PersistAssetsHandler{
		inner:      commands.NewHandler(exec, append(handlerOpts, opts...)...),
		cronConfig: command.HandlerConfig{Expression: DefaultAutosaveExpression},
	}
}

// Execute satisfies command.Commander[PersistAssetsCommand].
func (h *PersistAssetsHandler) Execute(ctx context.Context, msg PersistAssetsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SetCronExpression overrides the autosave schedule. Blank expressions are ignored.
func (h *PersistAssetsHandler) SetCronExpression(expression string) *PersistAssetsHandler {
	if trimmed := strings.TrimSpace(expression); trimmed != "" {
		h.cronConfig.Expression = trimmed
	}
	return h
}

// CronHandler satisfies command.CronCommand by binding autosave to a cron runner.
func (h *PersistAssetsHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), PersistAssetsCommand{})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *PersistAssetsHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the persist handler to CLI integrations.
func (h *PersistAssetsHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for asset persistence.
func (h *PersistAssetsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"assets", "persist"},
		Group:       "assets",
		Description: "Write every persisted asset to the record repository",
	}
}

// LoadAssetsHandler registers stored asset records with the asset store.
type LoadAssetsHandler struct {
	inner *commands.Handler[LoadAssetsCommand]
}

// NewLoadAssetsHandler creates a handler reading assets from repo.
func NewLoadAssetsHandler(persister AssetPersister, repo store.RecordRepository, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[LoadAssetsCommand]) *LoadAssetsHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg LoadAssetsCommand) error {
		if !gates.persistenceEnabled() {
			return ErrPersistenceFeatureDisabled
		}
		var (
			loaded int
			err    error
		)
		if msg.AssetType == "" {
			loaded, err = persister.Load(ctx, repo)
		} else {
			t, parseErr := assets.ParseType(msg.AssetType)
			if parseErr != nil {
				return parseErr
			}
			loaded, err = persister.LoadType(ctx, repo, t)
		}
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"loaded_count": loaded,
		}).Info("fields.command.assets.load.completed")
		return nil
	}
	handlerOpts := []commands.HandlerOption[LoadAssetsCommand]{
		commands.WithLogger[LoadAssetsCommand](baseLogger),
		commands.WithOperation[LoadAssetsCommand](loadAssetsOperation),
		commands.WithMessageFields(func(msg LoadAssetsCommand) map[string]any {
			if msg.AssetType == "" {
				return nil
			}
			return map[string]any{"asset_type": msg.AssetType}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LoadAssetsCommand](baseLogger)),
	}
	return &LoadAssetsHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[LoadAssetsCommand].
func (h *LoadAssetsHandler) Execute(ctx context.Context, msg LoadAssetsCommand) error {
	return h.inner.Execute(ctx, msg)
}
