package fields_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/editor"
	"github.com/goliatone/go-assetfield/internal/fields"
	"github.com/goliatone/go-assetfield/internal/store"
	"github.com/goliatone/go-assetfield/internal/workspace"
)

type failingKind struct {
	fields.ImageKind
	panics bool
}

func (k failingKind) OnEditorClose(fields.HookContext, *assets.Asset) error {
	if k.panics {
		panic("editor close exploded")
	}
	return errors.New("tileset missing")
}

func TestHookFailureAbortsCommit(t *testing.T) {
	for _, panics := range []bool{false, true} {
		h := newHarness(t)
		binding, err := fields.NewBinding(fieldName, failingKind{ImageKind: fields.NewImageKind(), panics: panics}, h.store,
			fields.WithWorkspace(h.ws),
			fields.WithEvents(h.ws.Events()),
			fields.WithEditors(h.catalog),
		)
		if err != nil {
			t.Fatalf("new binding: %v", err)
		}
		binding.Init(h.block("a"), "")
		before := binding.Value()

		h.edit(binding, promote("hero", 0, 0, 1))

		if binding.Value() != before || binding.Asset().ID != "a" {
			t.Fatalf("expected field unchanged after a failed hook")
		}
		if h.store.LookupAsset(assets.TypeImage, "a") == nil {
			t.Fatalf("expected temporary asset restored")
		}
		if h.store.LookupAssetByName(assets.TypeImage, "hero") != nil || h.store.Revision() != 0 {
			t.Fatalf("expected no store change")
		}
		if h.ws.Events().UndoDepth() != 0 || binding.State() != fields.StateClosed {
			t.Fatalf("expected no event and a closed session")
		}
		if got, want := h.store.GenerateNewID(assets.TypeImage), store.New().GenerateNewID(assets.TypeImage); got != want {
			t.Fatalf("expected the aborted commit to leave %s free, got %s", want, got)
		}
	}
}

func TestAnimationIntervalLivesOnParent(t *testing.T) {
	h := newHarness(t)
	parent := h.block("p", workspace.WithNumber(fields.IntervalInput, 200))
	binding := h.bindType(h.block("a", workspace.WithParent(parent)), assets.TypeAnimation, "")

	session := h.edit(binding, func(s *editor.Scripted) {
		anim := s.Working().Payload.(*assets.Animation)
		if anim.Interval != 200 {
			t.Fatalf("expected parent interval in the editor, got %d", anim.Interval)
		}
		s.Edit(func(asset *assets.Asset) {
			edited := asset.Payload.(*assets.Animation)
			edited.Interval = 300
			edited.Frames[0].Set(0, 0, 1)
		})
	})
	if !session.Hidden() {
		t.Fatalf("expected session closed")
	}
	if interval, _ := parent.Number(fields.IntervalInput); interval != 300 {
		t.Fatalf("expected interval written back, got %v", interval)
	}
}

func TestTilemapEditorSeesProjectTiles(t *testing.T) {
	h := newHarness(t)
	for _, seed := range []struct {
		id, name string
		width    int
	}{
		{"myTiles.tile1", "grass", 16},
		{"myTiles.tile2", "tiny", 8},
	} {
		tile, err := assets.New(assets.TypeTile, seed.id, assets.NewBitmap(seed.width, seed.width))
		if err != nil {
			t.Fatalf("new tile: %v", err)
		}
		tile.Meta.DisplayName = seed.name
		h.store.UpdateAsset(tile)
	}

	binding := h.bindType(h.block("a"), assets.TypeTilemap, "")
	if !binding.ShowEditor() {
		t.Fatalf("expected tilemap editor")
	}
	tm := h.recorder.Last().Request().Asset.Payload.(*assets.Tilemap)
	if len(tm.Tileset.Tiles) != 1 || tm.Tileset.Tiles[0] != "myTiles.tile1" {
		t.Fatalf("expected matching project tiles merged, got %v", tm.Tileset.Tiles)
	}
	h.recorder.Last().Cancel()
}

func TestKindForCoversEveryType(t *testing.T) {
	for _, typ := range assets.Types() {
		kind, err := fields.KindFor(typ)
		if err != nil || kind.AssetType() != typ {
			t.Fatalf("expected kind for %s", typ)
		}
	}
	if _, err := fields.KindFor(assets.Type(0)); !errors.Is(err, fields.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestNewBindingRequiresCollaborators(t *testing.T) {
	if _, err := fields.NewBinding(fieldName, fields.NewImageKind(), nil); !errors.Is(err, fields.ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
	h := newHarness(t)
	if _, err := fields.NewBinding(fieldName, nil, h.store); !errors.Is(err, fields.ErrKindRequired) {
		t.Fatalf("expected ErrKindRequired, got %v", err)
	}
}
