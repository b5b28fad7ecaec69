package fields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// Option customises a Binding.
type Option func(*Binding)

// WithWorkspace sets the workspace used for liveness checks.
func WithWorkspace(ws interfaces.Workspace) Option {
	return func(b *Binding) {
		b.workspace = ws
	}
}

// WithEvents sets the sink that receives undo events.
func WithEvents(sink interfaces.EventSink) Option {
	return func(b *Binding) {
		b.events = sink
	}
}

// WithEditors sets the catalog used to open editors.
func WithEditors(catalog interfaces.EditorCatalog) Option {
	return func(b *Binding) {
		b.editors = catalog
	}
}

// WithLogger sets the binding logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(b *Binding) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFieldOptions sets the parsed block options.
func WithFieldOptions(opts FieldOptions) Option {
	return func(b *Binding) {
		b.opts = opts.normalized()
	}
}

// WithPreview registers a callback that runs whenever the preview is stale.
func WithPreview(fn func(*Binding)) Option {
	return func(b *Binding) {
		b.preview = fn
	}
}

// Binding keeps one block field in sync with the asset store.
type Binding struct {
	name string
	kind Kind
	info assets.KindInfo
	opts FieldOptions

	store     interfaces.AssetStore
	workspace interfaces.Workspace
	events    interfaces.EventSink
	editors   interfaces.EditorCatalog
	logger    interfaces.Logger
	preview   func(*Binding)

	block         interfaces.Block
	text          string
	asset         *assets.Asset
	pendingEdit   bool
	isGreyBlock   bool
	undoRedoState any
	subscribed    *assets.Key
	state         SessionState
	renders       int
	disposed      bool
	listener      *assetListener
}

var _ interfaces.Field = (*Binding)(nil)

// NewBinding constructs a binding for the field called name.
func NewBinding(name string, kind Kind, store interfaces.AssetStore, opts ...Option) (*Binding, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if kind == nil {
		return nil, ErrKindRequired
	}
	info, err := assets.Describe(kind.AssetType())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	b := &Binding{
		name:   name,
		kind:   kind,
		info:   info,
		opts:   DefaultFieldOptions(),
		store:  store,
		logger: logging.NoOp(),
	}
	b.listener = &assetListener{binding: b}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Init attaches the binding to block and resolves text. Blocks that host
// fields get the binding attached under the field name.
func (b *Binding) Init(block interfaces.Block, text string) {
	b.block = block
	b.text = text
	if host, ok := block.(interfaces.FieldHost); ok {
		host.AttachField(b.name, b)
	}
	b.resolve(text, true)
	b.redraw()
}

// Name returns the field name.
func (b *Binding) Name() string { return b.name }

// Block returns the block the binding is attached to.
func (b *Binding) Block() interfaces.Block { return b.block }

// Asset returns a copy of the displayed asset, nil for grey blocks.
func (b *Binding) Asset() *assets.Asset { return b.asset.Clone() }

// IsGreyBlock reports whether the field is echoing text it could not parse.
func (b *Binding) IsGreyBlock() bool { return b.isGreyBlock }

// RenderCount reports how many times the preview was marked stale.
func (b *Binding) RenderCount() int { return b.renders }

// State returns the editor session state.
func (b *Binding) State() SessionState { return b.state }

// UndoRedoState returns the editor UI state kept from the last commit.
func (b *Binding) UndoRedoState() any { return b.undoRedoState }

// Disposed reports whether Dispose ran.
func (b *Binding) Disposed() bool { return b.disposed }

// Options returns the parsed field options.
func (b *Binding) Options() FieldOptions { return b.opts }

// Value returns the text the field emits: a by-name reference for persisted
// assets, a literal for temporary ones, the original text for grey blocks.
func (b *Binding) Value() string {
	if b.isGreyBlock || b.asset == nil {
		return b.text
	}
	if b.asset.IsPersisted() {
		return b.info.Reference(b.asset.Meta.DisplayName)
	}
	return b.kind.ValueText(b.asset)
}

// DisplayText is the short label shown on grey blocks, such as "foo(...)".
func (b *Binding) DisplayText() string {
	if !b.isGreyBlock {
		if b.asset != nil {
			return b.asset.Meta.DisplayName
		}
		return ""
	}
	prefix := b.text
	if i := strings.Index(prefix, "("); i >= 0 {
		prefix = prefix[:i]
	} else {
		prefix = ""
	}
	return prefix + "(...)"
}

// SetValue resolves new field text.
func (b *Binding) SetValue(text string) {
	b.text = text
	b.resolve(text, false)
	b.redraw()
}

func (b *Binding) resolve(text string, initial bool) {
	if b.block == nil || b.disposed {
		return
	}
	blockID := b.block.ID()
	res := Resolve(b.store, b.kind, b.opts, ResolveRequest{
		Text:      text,
		BlockID:   blockID,
		BlockData: b.block.Data(b.name),
		Initial:   initial,
	})

	// flyout blocks display without registering anything
	if b.block.InFlyout() {
		b.asset = res.Asset
		b.isGreyBlock = res.Grey()
		return
	}

	if b.asset != nil && (res.Asset == nil || res.Asset.Key() != b.asset.Key()) {
		b.releaseCurrent()
	}

	if res.Grey() {
		b.isGreyBlock = true
		b.asset = nil
		b.block.SetData(b.name, "")
		b.updateAssetListener()
		b.logger.Debug("field.resolve.grey_block", "block_id", blockID, "field", b.name)
		return
	}

	if res.Fresh() {
		// a fresh temporary replaces whatever this block left under its key
		if leftover := b.store.LookupAsset(res.Asset.Type, res.Asset.ID); leftover != nil && leftover.IsTemporary() {
			b.store.RemoveAsset(leftover)
		}
	}

	b.isGreyBlock = false
	b.asset = b.claim(res.Asset)
	b.updateAssetListener()
	b.logger.Debug("field.resolve", "block_id", blockID, "field", b.name, "source", res.Source.String(), "asset", b.asset.Key().String())
}

// claim takes ownership of asset for this block, writes blockData and
// publishes the result.
func (b *Binding) claim(asset *assets.Asset) *assets.Asset {
	claimed, cloned := Claim(asset, b.block.ID(), b.ownerExists)
	if cloned {
		b.logger.Debug("field.claim.cloned", "block_id", b.block.ID(), "from", asset.ID)
	}
	b.block.SetData(b.name, claimed.ID)
	if stored := b.store.UpdateAsset(claimed); stored != nil {
		return stored
	}
	return claimed
}

// releaseCurrent drops this block from the displayed asset's owners. An
// orphaned temporary asset is removed.
func (b *Binding) releaseCurrent() {
	stored := b.store.LookupAsset(b.asset.Type, b.asset.ID)
	if stored == nil || !stored.HasOwner(b.block.ID()) {
		return
	}
	released, orphaned := Release(stored, b.block.ID())
	if orphaned && released.IsTemporary() {
		b.store.RemoveAsset(released)
		return
	}
	b.store.UpdateAsset(released)
}

func (b *Binding) ownerExists(blockID string) bool {
	if b.workspace == nil {
		return true
	}
	_, ok := b.workspace.BlockByID(blockID)
	return ok
}

// updateAssetListener moves the store subscription to the displayed asset.
// Only persisted assets are watched.
func (b *Binding) updateAssetListener() {
	b.store.RemoveChangeListener(b.kind.AssetType(), b.listener)
	b.subscribed = nil
	if b.disposed || b.asset == nil || !b.asset.IsPersisted() {
		return
	}
	b.store.AddChangeListener(b.asset, b.listener)
	key := b.asset.Key()
	b.subscribed = &key
}

// Subscribed returns the key of the watched asset.
func (b *Binding) Subscribed() (assets.Key, bool) {
	if b.subscribed == nil {
		return assets.Key{}, false
	}
	return *b.subscribed, true
}

func (b *Binding) onAssetChanged() {
	if b.pendingEdit || b.disposed || b.block == nil {
		return
	}
	if id := b.block.Data(b.name); id != "" {
		// a deleted asset keeps its last known copy on screen
		if current := b.store.LookupAsset(b.kind.AssetType(), id); current != nil {
			b.asset = current
		}
	}
	b.redraw()
}

func (b *Binding) redraw() {
	b.renders++
	if b.preview != nil {
		b.preview(b)
	}
}

// Dispose unsubscribes the binding and releases its asset. A temporary asset
// left without owners is removed unless the block is still live.
func (b *Binding) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.store.RemoveChangeListener(b.kind.AssetType(), b.listener)
	b.subscribed = nil
	if b.asset == nil || b.block == nil || b.block.InFlyout() {
		return
	}

	blockID := b.block.ID()
	stored := b.store.LookupAsset(b.asset.Type, b.asset.ID)
	if stored == nil {
		return
	}
	released, orphaned := Release(stored, blockID)
	live := b.workspace != nil && b.workspace.IsBlockLive(blockID)
	if orphaned && released.IsTemporary() && !live {
		b.store.RemoveAsset(released)
		b.logger.Debug("field.dispose.removed", "block_id", blockID, "asset", released.Key().String())
		return
	}
	b.store.UpdateAsset(released)
}

func (b *Binding) hookContext() HookContext {
	return HookContext{Block: b.block, Store: b.store, Options: b.opts}
}

// runHook invokes a kind hook and turns errors and panics into ErrHookFailed.
func (b *Binding) runHook(name string, asset *assets.Asset, hook func(HookContext, *assets.Asset) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrHookFailed, name, r)
		}
	}()
	if hookErr := hook(b.hookContext(), asset); hookErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrHookFailed, name, hookErr)
	}
	return nil
}

type assetListener struct {
	binding *Binding
}

func (l *assetListener) OnAssetChanged(assets.Key, *assets.Asset) {
	l.binding.onAssetChanged()
}
