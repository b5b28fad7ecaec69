package fieldscmd

import (
	"errors"

	"github.com/goliatone/go-assetfield/internal/commands"
	"github.com/goliatone/go-assetfield/internal/store"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Dependencies are the collaborators the field command handlers drive.
// Persister and Records are optional; without them no persistence handlers
// are built.
type Dependencies struct {
	History   History
	Bindings  BindingDisposer
	Blocks    BlockRemover
	Persister AssetPersister
	Records   store.RecordRepository
	// AutosaveCron overrides DefaultAutosaveExpression.
	AutosaveCron string
}

// HandlerSet groups the handlers produced by RegisterFieldCommands.
type HandlerSet struct {
	Undo         *UndoHandler
	Redo         *RedoHandler
	DisposeBlock *DisposeBlockHandler
	Persist      *PersistAssetsHandler
	Load         *LoadAssetsHandler
}

// RegisterFieldCommands builds the field command handlers and registers them
// with reg when it is non-nil.
func RegisterFieldCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, gates FeatureGates) (*HandlerSet, error) {
	if deps.History == nil {
		return nil, errors.New("fields command registration: history is nil")
	}
	logger := commands.CommandLogger(provider, "fields")

	set := &HandlerSet{
		Undo:         NewUndoHandler(deps.History, logger),
		Redo:         NewRedoHandler(deps.History, logger),
		DisposeBlock: NewDisposeBlockHandler(deps.Bindings, deps.Blocks, logger),
	}
	if deps.Persister != nil && deps.Records != nil {
		set.Persist = NewPersistAssetsHandler(deps.Persister, deps.Records, logger, gates).
			SetCronExpression(deps.AutosaveCron)
		set.Load = NewLoadAssetsHandler(deps.Persister, deps.Records, logger, gates)
	}

	if reg != nil {
		for _, handler := range set.Handlers() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// Handlers lists the built handlers in registration order.
func (s *HandlerSet) Handlers() []any {
	out := []any{s.Undo, s.Redo, s.DisposeBlock}
	if s.Persist != nil {
		out = append(out, s.Persist)
	}
	if s.Load != nil {
		out = append(out, s.Load)
	}
	return out
}
