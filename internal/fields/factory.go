package fields

import (
	"sort"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// FactoryConfig carries the collaborators shared by every binding.
type FactoryConfig struct {
	Store     interfaces.AssetStore
	Workspace interfaces.Workspace
	Events    interfaces.EventSink
	Editors   interfaces.EditorCatalog
	Logger    interfaces.Logger
	Defaults  FieldOptions
	Preview   func(*Binding)
	// StrictOptions rejects block options with unknown keys.
	StrictOptions bool
}

// Factory creates bindings from one FactoryConfig and remembers them by
// block.
type Factory struct {
	cfg      FactoryConfig
	defaults FieldOptions
	logger   interfaces.Logger
	bindings map[string][]*Binding
}

// NewFactory constructs a factory.
func NewFactory(cfg FactoryConfig) *Factory {
	return &Factory{
		cfg:      cfg,
		defaults: cfg.Defaults.normalized(),
		logger:   logging.Ensure(cfg.Logger),
		bindings: make(map[string][]*Binding),
	}
}

// Defaults returns the option defaults applied before block options.
func (f *Factory) Defaults() FieldOptions {
	return f.defaults
}

// Bind creates a binding for the field name on block and resolves text.
// raw holds the block definition options.
func (f *Factory) Bind(block interfaces.Block, name string, t assets.Type, text string, raw map[string]any) (*Binding, error) {
	kind, err := KindFor(t)
	if err != nil {
		return nil, err
	}
	parse := ParseOptions
	if f.cfg.StrictOptions {
		parse = ParseOptionsStrict
	}
	parsed, err := parse(raw, f.defaults)
	if err != nil {
		return nil, err
	}
	b, err := NewBinding(name, kind, f.cfg.Store,
		WithWorkspace(f.cfg.Workspace),
		WithEvents(f.cfg.Events),
		WithEditors(f.cfg.Editors),
		WithLogger(logging.WithFields(f.logger, map[string]any{"field": name})),
		WithPreview(f.cfg.Preview),
		WithFieldOptions(parsed),
	)
	if err != nil {
		return nil, err
	}
	b.Init(block, text)
	f.bindings[block.ID()] = append(f.bindings[block.ID()], b)
	return b, nil
}

// Binding returns the binding of field name on blockID.
func (f *Factory) Binding(blockID, name string) (*Binding, bool) {
	for _, b := range f.bindings[blockID] {
		if b.name == name && !b.disposed {
			return b, true
		}
	}
	return nil, false
}

// Bindings returns the live bindings of blockID.
func (f *Factory) Bindings(blockID string) []*Binding {
	out := make([]*Binding, 0, len(f.bindings[blockID]))
	for _, b := range f.bindings[blockID] {
		if !b.disposed {
			out = append(out, b)
		}
	}
	return out
}

// BlockIDs lists blocks with at least one live binding.
func (f *Factory) BlockIDs() []string {
	ids := make([]string, 0, len(f.bindings))
	for id := range f.bindings {
		if len(f.Bindings(id)) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// DisposeBlock disposes every binding of blockID and forgets them. It
// returns how many bindings were disposed.
func (f *Factory) DisposeBlock(blockID string) int {
	count := 0
	for _, b := range f.bindings[blockID] {
		if !b.disposed {
			b.Dispose()
			count++
		}
	}
	delete(f.bindings, blockID)
	if count > 0 {
		f.logger.Debug("field.block.disposed", "block_id", blockID, "bindings", count)
	}
	return count
}
