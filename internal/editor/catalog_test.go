package editor_test

import (
	"testing"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/editor"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

func request(t *testing.T) interfaces.EditorRequest {
	t.Helper()
	asset, err := assets.New(assets.TypeImage, "block", assets.NewBitmap(2, 2))
	if err != nil {
		t.Fatalf("new asset: %v", err)
	}
	return interfaces.EditorRequest{Kind: assets.EditorKindImage, Asset: asset}
}

func TestCatalogResolvesRegisteredKinds(t *testing.T) {
	catalog := editor.NewCatalog()
	if _, ok := catalog.Session(request(t)); ok {
		t.Fatalf("expected empty catalog to decline")
	}

	recorder := &editor.Recorder{}
	editor.RegisterAll(catalog, recorder.Factory())
	kinds := catalog.Kinds()
	if len(kinds) != 4 {
		t.Fatalf("expected four editor kinds, got %v", kinds)
	}

	session, ok := catalog.Session(request(t))
	if !ok || session == nil {
		t.Fatalf("expected session for image editor")
	}
	if recorder.Last() != session {
		t.Fatalf("expected recorder to track the session")
	}

	catalog.Unregister(assets.EditorKindImage)
	if _, ok := catalog.Session(request(t)); ok {
		t.Fatalf("expected unregistered kind to decline")
	}
}

func TestScriptedSessionLifecycle(t *testing.T) {
	req := request(t)
	var hides int
	session := editor.NewScripted(req, func(s *editor.Scripted) {
		s.Edit(func(asset *assets.Asset) {
			asset.Payload.(*assets.Bitmap).Set(0, 0, 4)
		})
		s.Rename("player")
	})
	session.OnHide(func() { hides++ })
	session.Show()

	if req.Asset.Payload.(*assets.Bitmap).Get(0, 0) != 0 {
		t.Fatalf("edits must not leak into the request asset")
	}
	if session.Result() != nil {
		t.Fatalf("expected no result before close")
	}

	session.Close()
	session.Close()
	if hides != 1 {
		t.Fatalf("expected hide callbacks to run once, got %d", hides)
	}
	result := session.Result()
	if result.Meta.DisplayName != "player" || result.Payload.(*assets.Bitmap).Get(0, 0) != 4 {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestScriptedCancelHasNoResult(t *testing.T) {
	session := editor.NewScripted(request(t), nil)
	session.Show()
	session.Cancel()
	if session.Result() != nil || !session.Hidden() {
		t.Fatalf("expected cancelled session without result")
	}
}
