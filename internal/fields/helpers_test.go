package fields_test

import (
	"testing"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/editor"
	"github.com/goliatone/go-assetfield/internal/fields"
	"github.com/goliatone/go-assetfield/internal/store"
	"github.com/goliatone/go-assetfield/internal/workspace"
)

const fieldName = "sprite"

type harness struct {
	t        *testing.T
	store    *store.Store
	ws       *workspace.Workspace
	catalog  *editor.Catalog
	recorder *editor.Recorder
	factory  *fields.Factory
}

func newHarness(t *testing.T, opts ...workspace.Option) *harness {
	t.Helper()
	s := store.New()
	ws := workspace.New(opts...)
	recorder := &editor.Recorder{}
	catalog := editor.NewCatalog()
	editor.RegisterAll(catalog, recorder.Factory())
	return &harness{
		t:        t,
		store:    s,
		ws:       ws,
		catalog:  catalog,
		recorder: recorder,
		factory: fields.NewFactory(fields.FactoryConfig{
			Store:     s,
			Workspace: ws,
			Events:    ws.Events(),
			Editors:   catalog,
			Defaults:  fields.DefaultFieldOptions(),
		}),
	}
}

func (h *harness) block(id string, opts ...workspace.BlockOption) *workspace.Block {
	h.t.Helper()
	block, err := h.ws.AddBlock(id, opts...)
	if err != nil {
		h.t.Fatalf("add block %s: %v", id, err)
	}
	return block
}

func (h *harness) bindType(block *workspace.Block, t assets.Type, text string) *fields.Binding {
	h.t.Helper()
	binding, err := h.factory.Bind(block, fieldName, t, text, nil)
	if err != nil {
		h.t.Fatalf("bind %s: %v", block.ID(), err)
	}
	return binding
}

func (h *harness) bind(id, text string, opts ...workspace.BlockOption) *fields.Binding {
	h.t.Helper()
	return h.bindType(h.block(id, opts...), assets.TypeImage, text)
}

// edit opens the editor, lets fn change the working copy and closes it.
func (h *harness) edit(binding *fields.Binding, fn func(*editor.Scripted)) *editor.Scripted {
	h.t.Helper()
	if !binding.ShowEditor() {
		h.t.Fatalf("expected editor to open")
	}
	session := h.recorder.Last()
	if fn != nil {
		fn(session)
	}
	session.Close()
	return session
}

func setPixel(x, y int, color uint8) func(*editor.Scripted) {
	return func(s *editor.Scripted) {
		s.Edit(func(asset *assets.Asset) {
			asset.Payload.(*assets.Bitmap).Set(x, y, color)
		})
	}
}

func promote(name string, x, y int, color uint8) func(*editor.Scripted) {
	return func(s *editor.Scripted) {
		setPixel(x, y, color)(s)
		s.Rename(name)
	}
}

func pixel(t *testing.T, asset *assets.Asset, x, y int) uint8 {
	t.Helper()
	if asset == nil {
		t.Fatalf("expected asset")
	}
	bmp, ok := asset.Payload.(*assets.Bitmap)
	if !ok {
		t.Fatalf("expected bitmap payload, got %T", asset.Payload)
	}
	return bmp.Get(x, y)
}

func lastChange(t *testing.T, ws *workspace.Workspace) *fields.AssetChangeEvent {
	t.Helper()
	fired := ws.Events().Fired()
	for i := len(fired) - 1; i >= 0; i-- {
		if ev, ok := fired[i].(*fields.AssetChangeEvent); ok {
			return ev
		}
	}
	t.Fatalf("expected an asset change event")
	return nil
}
