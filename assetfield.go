package assetfield

import (
	"context"
	"errors"

	"github.com/goliatone/go-assetfield/internal/assets"
	fieldscmd "github.com/goliatone/go-assetfield/internal/commands/fields"
	"github.com/goliatone/go-assetfield/internal/di"
	"github.com/goliatone/go-assetfield/internal/fields"
	"github.com/goliatone/go-assetfield/internal/store"
	"github.com/goliatone/go-assetfield/internal/workspace"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// Binding exports the field binding of one asset field on one block.
type Binding = fields.Binding

// FieldOptions exports the parsed block-definition options of a field.
type FieldOptions = fields.FieldOptions

// Asset exports the asset value type.
type Asset = assets.Asset

// AssetType exports the closed set of asset kinds.
type AssetType = assets.Type

const (
	AssetImage     = assets.TypeImage
	AssetTile      = assets.TypeTile
	AssetAnimation = assets.TypeAnimation
	AssetTilemap   = assets.TypeTilemap
	AssetSong      = assets.TypeSong
)

// Block exports the host block contract bindings attach to.
type Block = interfaces.Block

// CommandHandlers exports the handlers built when commands are enabled.
type CommandHandlers = fieldscmd.HandlerSet

// ErrPersistenceDisabled is returned by Persist and Load when the
// persistence feature is off.
var ErrPersistenceDisabled = errors.New("assetfield: persistence feature disabled")

// Module is the top level asset field runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Store returns the revisioned asset store.
func (m *Module) Store() *store.Store {
	return m.container.Store()
}

// Workspace returns the block host.
func (m *Module) Workspace() *workspace.Workspace {
	return m.container.Workspace()
}

// Commands returns the command handlers, or nil when commands are disabled.
func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

// Bind attaches an asset field to block and resolves its initial text.
func (m *Module) Bind(block Block, name string, t AssetType, text string, options map[string]any) (*Binding, error) {
	return m.container.Fields().Bind(block, name, t, text, options)
}

// Binding returns the live binding of field name on blockID.
func (m *Module) Binding(blockID, name string) (*Binding, bool) {
	return m.container.Fields().Binding(blockID, name)
}

// Undo steps the workspace history back. It reports whether anything was undone.
func (m *Module) Undo() bool {
	return m.container.Workspace().Events().Undo()
}

// Redo steps the workspace history forward.
func (m *Module) Redo() bool {
	return m.container.Workspace().Events().Redo()
}

// Persist writes every persisted asset to the configured record repository.
func (m *Module) Persist(ctx context.Context) (int, error) {
	if !m.container.Config.Features.Persistence {
		return 0, ErrPersistenceDisabled
	}
	return m.container.Store().Save(ctx, m.container.Records())
}

// Load registers stored asset records with the store.
func (m *Module) Load(ctx context.Context) (int, error) {
	if !m.container.Config.Features.Persistence {
		return 0, ErrPersistenceDisabled
	}
	return m.container.Store().Load(ctx, m.container.Records())
}

// Close releases resources held by the container.
func (m *Module) Close() error {
	return m.container.Close()
}
