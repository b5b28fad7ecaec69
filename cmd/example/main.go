package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-assetfield"
	"github.com/goliatone/go-assetfield/internal/assets"
	fieldscmd "github.com/goliatone/go-assetfield/internal/commands/fields"
	"github.com/goliatone/go-assetfield/internal/di"
	"github.com/goliatone/go-assetfield/internal/editor"
)

func main() {
	ctx := context.Background()

	cfg := assetfield.DefaultConfig()
	if len(os.Args) > 1 {
		loaded, err := assetfield.LoadConfig(os.Args[1])
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	} else {
		cfg.Features.Logger = true
		cfg.Logging.Format = "console"
		cfg.Storage.Provider = "bun"
		cfg.Storage.Dialect = "sqlite"
		cfg.Storage.DSN = "file:assetfield_example?mode=memory&cache=shared"
		cfg.Features.Persistence = true
		cfg.Commands.Enabled = true
	}

	recorder := &editor.Recorder{}
	catalog := editor.NewCatalog()
	editor.RegisterAll(catalog, recorder.Factory())

	module, err := assetfield.New(cfg,
		di.WithEditorCatalog(catalog),
		di.WithPreview(func(b *assetfield.Binding) {
			fmt.Printf("preview %s/%s -> %s\n", b.Block().ID(), b.Name(), b.DisplayText())
		}),
	)
	if err != nil {
		log.Fatalf("new module: %v", err)
	}
	defer module.Close()

	block, err := module.Workspace().AddBlock("block-1")
	if err != nil {
		log.Fatalf("add block: %v", err)
	}
	binding, err := module.Bind(block, "sprite", assetfield.AssetImage, "", map[string]any{"initWidth": "8", "initHeight": "8"})
	if err != nil {
		log.Fatalf("bind: %v", err)
	}
	fmt.Printf("temporary asset %s\n", binding.Asset().ID)

	if !binding.ShowEditor() {
		log.Fatal("editor did not open")
	}
	session := recorder.Last()
	session.Edit(func(asset *assets.Asset) {
		bitmap := asset.Payload.(*assets.Bitmap)
		for i := 0; i < bitmap.Width; i++ {
			bitmap.Set(i, i, 2)
		}
	})
	session.Rename("diagonal")
	session.Close()

	fmt.Printf("promoted to %s (revision %d)\n", binding.Asset().ID, module.Store().Revision())

	if handlers := module.Commands(); handlers != nil && handlers.Persist != nil {
		if err := handlers.Persist.Execute(ctx, fieldscmd.PersistAssetsCommand{}); err != nil {
			log.Fatalf("persist: %v", err)
		}
	} else if cfg.Features.Persistence {
		if _, err := module.Persist(ctx); err != nil {
			log.Fatalf("persist: %v", err)
		}
	}

	module.Undo()
	fmt.Printf("after undo: %s (revision %d)\n", binding.Value(), module.Store().Revision())
	module.Redo()
	fmt.Printf("after redo: %s (revision %d)\n", binding.Value(), module.Store().Revision())
}
