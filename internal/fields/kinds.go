package fields

import (
	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// IntervalInput is the parent block input that owns an animation's frame
// interval.
const IntervalInput = "frameInterval"

// DefaultInterval is the frame interval of a new animation, in milliseconds.
const DefaultInterval = 100

// HookContext is handed to kind hooks.
type HookContext struct {
	Block   interfaces.Block
	Store   interfaces.AssetStore
	Options FieldOptions
}

// Kind is the per asset type behavior a binding delegates to.
type Kind interface {
	AssetType() assets.Type
	// CreateNewAsset parses text into a temporary asset with id blockID.
	// Empty text yields the default asset for the options.
	CreateNewAsset(text, blockID string, opts FieldOptions) (*assets.Asset, error)
	// ValueText renders a temporary asset as literal text.
	ValueText(asset *assets.Asset) string
	BeforeEditorOpen(ctx HookContext, asset *assets.Asset) error
	OnEditorClose(ctx HookContext, asset *assets.Asset) error
}

// KindFor returns the built-in kind for t.
func KindFor(t assets.Type) (Kind, error) {
	switch t {
	case assets.TypeImage:
		return NewImageKind(), nil
	case assets.TypeTile:
		return NewTileKind(), nil
	case assets.TypeAnimation:
		return NewAnimationKind(), nil
	case assets.TypeTilemap:
		return NewTilemapKind(), nil
	case assets.TypeSong:
		return NewSongKind(), nil
	default:
		return nil, ErrUnsupported
	}
}

type baseKind struct {
	t     assets.Type
	blank func(opts FieldOptions) assets.Payload
}

func (k baseKind) AssetType() assets.Type { return k.t }

func (k baseKind) CreateNewAsset(text, blockID string, opts FieldOptions) (*assets.Asset, error) {
	if text == "" {
		return assets.New(k.t, blockID, k.blank(opts))
	}
	payload, err := assets.MustDescribe(k.t).Decode(text)
	if err != nil {
		return nil, err
	}
	return assets.New(k.t, blockID, payload)
}

func (k baseKind) ValueText(asset *assets.Asset) string {
	if asset == nil || asset.Payload == nil {
		return ""
	}
	text, err := assets.MustDescribe(k.t).Encode(asset.Payload)
	if err != nil {
		return ""
	}
	return text
}

func (baseKind) BeforeEditorOpen(HookContext, *assets.Asset) error { return nil }

func (baseKind) OnEditorClose(HookContext, *assets.Asset) error { return nil }

// ImageKind edits sprite images.
type ImageKind struct{ baseKind }

// NewImageKind returns the image kind sized from the field options.
func NewImageKind() ImageKind {
	return ImageKind{baseKind{
		t: assets.TypeImage,
		blank: func(opts FieldOptions) assets.Payload {
			return assets.NewBitmap(opts.InitWidth, opts.InitHeight)
		},
	}}
}

// TileKind edits square tiles.
type TileKind struct{ baseKind }

// NewTileKind returns the tile kind; new tiles are TileWidth square.
func NewTileKind() TileKind {
	return TileKind{baseKind{
		t: assets.TypeTile,
		blank: func(opts FieldOptions) assets.Payload {
			return assets.NewBitmap(opts.TileWidth, opts.TileWidth)
		},
	}}
}

// AnimationKind edits frame animations whose interval lives on the parent
// block.
type AnimationKind struct{ baseKind }

func NewAnimationKind() AnimationKind {
	return AnimationKind{baseKind{
		t: assets.TypeAnimation,
		blank: func(opts FieldOptions) assets.Payload {
			anim := assets.NewAnimation(opts.InitWidth, opts.InitHeight)
			anim.Interval = DefaultInterval
			return anim
		},
	}}
}

// BeforeEditorOpen shows the parent block's interval in the editor.
func (AnimationKind) BeforeEditorOpen(ctx HookContext, asset *assets.Asset) error {
	anim, ok := asset.Payload.(*assets.Animation)
	if !ok || ctx.Block == nil {
		return nil
	}
	if interval, ok := ctx.Block.ParentNumber(IntervalInput); ok && interval > 0 {
		anim.Interval = int(interval)
	}
	return nil
}

// OnEditorClose writes the edited interval back to the parent block.
func (AnimationKind) OnEditorClose(ctx HookContext, asset *assets.Asset) error {
	anim, ok := asset.Payload.(*assets.Animation)
	if !ok || ctx.Block == nil || !anim.HasInterval() {
		return nil
	}
	ctx.Block.SetParentNumber(IntervalInput, float64(anim.Interval))
	return nil
}

// TilemapKind edits tilemaps.
type TilemapKind struct{ baseKind }

func NewTilemapKind() TilemapKind {
	return TilemapKind{baseKind{
		t: assets.TypeTilemap,
		blank: func(opts FieldOptions) assets.Payload {
			return assets.NewTilemap(opts.InitWidth, opts.InitHeight, opts.TileWidth)
		},
	}}
}

// BeforeEditorOpen offers every project tile of the map's tile width in the
// editor's tileset.
func (TilemapKind) BeforeEditorOpen(ctx HookContext, asset *assets.Asset) error {
	tm, ok := asset.Payload.(*assets.Tilemap)
	if !ok {
		return nil
	}
	lister, ok := ctx.Store.(interfaces.AssetLister)
	if !ok {
		return nil
	}
	ids := make([]string, 0)
	for _, tile := range lister.List(assets.TypeTile) {
		bmp, ok := tile.Payload.(*assets.Bitmap)
		if !ok || !tile.IsPersisted() || bmp.Width != tm.Tileset.TileWidth {
			continue
		}
		ids = append(ids, tile.ID)
	}
	tm.MergeTiles(ids)
	return nil
}

// SongKind edits songs.
type SongKind struct{ baseKind }

func NewSongKind() SongKind {
	return SongKind{baseKind{
		t: assets.TypeSong,
		blank: func(opts FieldOptions) assets.Payload {
			return assets.NewSong(opts.Tempo)
		},
	}}
}
