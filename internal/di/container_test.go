package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-assetfield/internal/assets"
	fieldscmd "github.com/goliatone/go-assetfield/internal/commands/fields"
	"github.com/goliatone/go-assetfield/internal/commands/fixtures"
	"github.com/goliatone/go-assetfield/internal/di"
	"github.com/goliatone/go-assetfield/internal/editor"
	"github.com/goliatone/go-assetfield/internal/fields"
	"github.com/goliatone/go-assetfield/internal/runtimeconfig"
	"github.com/goliatone/go-assetfield/internal/store"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/uptrace/bun/dialect"
)

type containerHarness struct {
	container *di.Container
	recorder  *editor.Recorder
}

func newContainerHarness(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *containerHarness {
	t.Helper()
	recorder := &editor.Recorder{}
	catalog := editor.NewCatalog()
	editor.RegisterAll(catalog, recorder.Factory())

	container, err := di.NewContainer(cfg, append([]di.Option{di.WithEditorCatalog(catalog)}, opts...)...)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { container.Close() })
	return &containerHarness{container: container, recorder: recorder}
}

func (h *containerHarness) bind(t *testing.T, blockID string, assetType assets.Type) *fields.Binding {
	t.Helper()
	block, err := h.container.Workspace().AddBlock(blockID)
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	binding, err := h.container.Fields().Bind(block, "sprite", assetType, "", nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return binding
}

func (h *containerHarness) promote(t *testing.T, binding *fields.Binding, name string) {
	t.Helper()
	if !binding.ShowEditor() {
		t.Fatalf("expected editor to open")
	}
	session := h.recorder.Last()
	session.Edit(func(asset *assets.Asset) {
		asset.Payload.(*assets.Bitmap).Set(0, 0, 3)
	})
	session.Rename(name)
	session.Close()
}

func bunConfig(name string) runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.DSN = "file:" + name + "?mode=memory&cache=shared"
	cfg.Features.Persistence = true
	cfg.Commands.Enabled = true
	return cfg
}

func TestNewContainerDefaults(t *testing.T) {
	h := newContainerHarness(t, runtimeconfig.DefaultConfig())
	c := h.container

	if _, ok := c.Records().(*store.MemoryRecordRepository); !ok {
		t.Fatalf("expected memory record repository, got %T", c.Records())
	}
	if c.BunDB() != nil {
		t.Fatalf("expected no database for memory storage")
	}
	if c.Commands() != nil {
		t.Fatalf("expected commands disabled by default")
	}
	if c.LoggerProvider() != nil {
		t.Fatalf("expected logging disabled by default")
	}
	defaults := c.Fields().Defaults()
	if defaults.InitWidth != 16 || defaults.InitHeight != 16 || defaults.Tempo != 120 {
		t.Fatalf("unexpected field defaults %+v", defaults)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Fields.InitWidth = 0

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrFieldSizeInvalid) {
		t.Fatalf("expected ErrFieldSizeInvalid, got %v", err)
	}
}

func TestContainerAppliesFieldConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Fields.InitWidth = 32
	cfg.Fields.StrictOptions = true
	h := newContainerHarness(t, cfg)

	binding := h.bind(t, "block-1", assets.TypeImage)
	bitmap := binding.Asset().Payload.(*assets.Bitmap)
	if bitmap.Width != 32 || bitmap.Height != 16 {
		t.Fatalf("expected 32x16 default bitmap, got %dx%d", bitmap.Width, bitmap.Height)
	}

	block, err := h.container.Workspace().AddBlock("block-2")
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	_, err = h.container.Fields().Bind(block, "sprite", assets.TypeImage, "", map[string]any{"colour": "red"})
	if !errors.Is(err, fields.ErrInvalidOptions) {
		t.Fatalf("expected strict options to reject unknown keys, got %v", err)
	}
}

func TestContainerPersistsThroughSQLite(t *testing.T) {
	ctx := context.Background()
	h := newContainerHarness(t, bunConfig("di_persist"))
	c := h.container
	if c.BunDB() == nil || c.BunDB().Dialect().Name() != dialect.SQLite {
		t.Fatalf("expected sqlite database")
	}
	if _, ok := c.Records().(*store.BunRecordRepository); !ok {
		t.Fatalf("expected bun record repository, got %T", c.Records())
	}

	h.promote(t, h.bind(t, "block-1", assets.TypeImage), "hero")
	if err := c.Commands().Persist.Execute(ctx, fieldscmd.PersistAssetsCommand{}); err != nil {
		t.Fatalf("persist: %v", err)
	}

	reloaded := newContainerHarness(t, bunConfig("di_persist"), di.WithBunDB(c.BunDB()))
	if err := reloaded.container.Commands().Load.Execute(ctx, fieldscmd.LoadAssetsCommand{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	hero := reloaded.container.Store().LookupAssetByName(assets.TypeImage, "hero")
	if hero == nil {
		t.Fatalf("expected persisted asset in the reloaded store")
	}
	if hero.Payload.(*assets.Bitmap).Get(0, 0) != 3 {
		t.Fatalf("expected pixel data to survive persistence")
	}
}

func TestContainerSelectsPostgresDialect(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "postgres"
	cfg.Storage.DSN = "postgres://assetfield@127.0.0.1:1/assetfield?sslmode=disable"
	cfg.Storage.AutoMigrate = false
	cfg.Cache.Enabled = false

	h := newContainerHarness(t, cfg)
	if got := h.container.BunDB().Dialect().Name(); got != dialect.PG {
		t.Fatalf("expected postgres dialect, got %v", got)
	}
}

func TestContainerRegistersCommands(t *testing.T) {
	cfg := bunConfig("di_commands")
	cfg.Commands.AutosaveCron = "@every 1m"

	registry := fixtures.NewRegistry()
	recordingDispatcher := fixtures.NewDispatcher()
	cron := &fixtures.Cron{}

	h := newContainerHarness(t, cfg,
		di.WithCommandRegistry(registry),
		di.WithCommandDispatcher(recordingDispatcher),
		di.WithCronRegistrar(cron.Registrar()),
	)

	if len(registry.Handlers) != 5 || len(recordingDispatcher.Subscriptions) != 5 {
		t.Fatalf("expected five handlers, got registry=%d dispatcher=%d", len(registry.Handlers), len(recordingDispatcher.Subscriptions))
	}
	persist, ok := fixtures.Find[*fieldscmd.PersistAssetsHandler](registry.Handlers)
	if !ok || persist != h.container.Commands().Persist {
		t.Fatalf("expected the registry to receive the persist handler")
	}
	if len(cron.Schedules) != 1 || cron.Schedules[0].Config.Expression != "@every 1m" {
		t.Fatalf("expected autosave cron registration, got %+v", cron.Schedules)
	}
	if len(h.container.Subscriptions()) != 5 {
		t.Fatalf("expected five subscriptions")
	}

	h.container.Close()
	if !recordingDispatcher.Released() {
		t.Fatalf("expected Close to release every subscription")
	}
}

func TestContainerCommandsWithoutPersistence(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	h := newContainerHarness(t, cfg)

	set := h.container.Commands()
	if set == nil || set.Undo == nil || set.DisposeBlock == nil {
		t.Fatalf("expected history handlers")
	}
	if set.Persist != nil || set.Load != nil {
		t.Fatalf("expected persistence handlers to stay unbuilt")
	}
}

func TestContainerRegistrationErrorFailsConstruction(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	registry := fixtures.NewRegistry()
	registry.Err = errors.New("registry offline")

	if _, err := di.NewContainer(cfg, di.WithCommandRegistry(registry)); err == nil {
		t.Fatalf("expected registry failure to surface")
	}
}

func TestContainerAutoRegistersDispatcher(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	cfg.Commands.AutoRegisterDispatcher = true
	h := newContainerHarness(t, cfg)

	binding := h.bind(t, "block-1", assets.TypeImage)
	before := binding.Value()
	h.promote(t, binding, "hero")

	if err := dispatcher.Dispatch(context.Background(), fieldscmd.UndoCommand{}); err != nil {
		t.Fatalf("dispatch undo: %v", err)
	}
	if binding.Value() != before || h.container.Store().Revision() != 0 {
		t.Fatalf("expected dispatched undo to restore field and store")
	}

	h.container.Close()
	if len(h.container.Subscriptions()) != 0 {
		t.Fatalf("expected Close to drop subscriptions")
	}
}
