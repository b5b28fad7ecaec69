package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	fieldscmd "github.com/goliatone/go-assetfield/internal/commands/fields"
	"github.com/goliatone/go-assetfield/internal/editor"
	"github.com/goliatone/go-assetfield/internal/fields"
	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/internal/logging/gologger"
	"github.com/goliatone/go-assetfield/internal/runtimeconfig"
	"github.com/goliatone/go-assetfield/internal/store"
	"github.com/goliatone/go-assetfield/internal/workspace"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const defaultSQLiteDSN = "file::memory:?cache=shared"

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// Container wires the asset store, its persistence, the host workspace and
// the field factory from one runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	records   store.RecordRepository
	store     *store.Store
	workspace *workspace.Workspace
	editors   interfaces.EditorCatalog
	factory   *fields.Factory
	preview   func(*fields.Binding)

	registry      CommandRegistry
	dispatcher    CommandDispatcher
	cronRegistrar CronRegistrar
	commands      *fieldscmd.HandlerSet
	subscriptions []CommandSubscription
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies the database used by the bun storage provider. The
// container does not close databases it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRecordRepository bypasses the storage provider.
func WithRecordRepository(repo store.RecordRepository) Option {
	return func(c *Container) {
		c.records = repo
	}
}

// WithWorkspace binds fields to an existing workspace.
func WithWorkspace(ws *workspace.Workspace) Option {
	return func(c *Container) {
		c.workspace = ws
	}
}

// WithEditorCatalog installs the embedded editors.
func WithEditorCatalog(catalog interfaces.EditorCatalog) Option {
	return func(c *Container) {
		c.editors = catalog
	}
}

// WithPreview registers the callback fired when a field re-renders.
func WithPreview(fn func(*fields.Binding)) Option {
	return func(c *Container) {
		c.preview = fn
	}
}

// WithCommandRegistry registers built command handlers with registry.
func WithCommandRegistry(registry CommandRegistry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithCommandDispatcher subscribes built command handlers to dispatcher.
func WithCommandDispatcher(d CommandDispatcher) Option {
	return func(c *Container) {
		c.dispatcher = d
	}
}

// WithCronRegistrar schedules handlers that implement command.CronCommand.
func WithCronRegistrar(registrar CronRegistrar) Option {
	return func(c *Container) {
		c.cronRegistrar = registrar
	}
}

// NewContainer validates cfg and wires every collaborator.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureFields()
	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}

	c.logger.Info("container.configured",
		"storage", c.storageProvider(),
		"cache", c.cacheService != nil,
		"commands", c.commands != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider == nil && c.Config.Features.Logger {
		switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
		case "gologger":
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     c.Config.Logging.Level,
				Format:    c.Config.Logging.Format,
				AddSource: c.Config.Logging.AddSource,
				Focus:     c.Config.Logging.Focus,
			})
			if err != nil {
				return err
			}
			c.loggerProvider = provider
		case "noop":
		}
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, logging.ContainerModule)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			c.logger.Warn("container.cache.unavailable", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() error {
	if c.records == nil && c.storageProvider() == "bun" {
		if c.bunDB == nil {
			db, err := openBunDB(c.Config.Storage)
			if err != nil {
				return err
			}
			c.bunDB = db
			c.ownsDB = true
		}
		if c.Config.Storage.AutoMigrate {
			if err := store.EnsureSchema(context.Background(), c.bunDB); err != nil {
				c.Close()
				return fmt.Errorf("di: ensure asset schema: %w", err)
			}
		}
		c.records = store.NewBunRecordRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	}
	if c.records == nil {
		c.records = store.NewMemoryRecordRepository()
	}

	c.store = store.New(
		store.WithLogger(logging.StoreLogger(c.loggerProvider)),
		store.WithUndoLimit(c.Config.Store.UndoLimit),
	)
	return nil
}

func openBunDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch strings.ToLower(strings.TrimSpace(cfg.Dialect)) {
	case "postgres":
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	}
}

func (c *Container) configureFields() {
	if c.workspace == nil {
		c.workspace = workspace.New()
	}
	if c.editors == nil {
		c.editors = editor.NewCatalog()
	}

	fieldsCfg := c.Config.Fields
	c.factory = fields.NewFactory(fields.FactoryConfig{
		Store:     c.store,
		Workspace: c.workspace,
		Events:    c.workspace.Events(),
		Editors:   c.editors,
		Logger:    logging.FieldLogger(c.loggerProvider),
		Preview:   c.preview,
		Defaults: fields.FieldOptions{
			InitWidth:     fieldsCfg.InitWidth,
			InitHeight:    fieldsCfg.InitHeight,
			DisableResize: fieldsCfg.DisableResize,
			Filter:        fieldsCfg.Filter,
			TileWidth:     fieldsCfg.TileWidth,
			Tempo:         fieldsCfg.DefaultTempo,
		},
		StrictOptions: fieldsCfg.StrictOptions,
	})
}

func (c *Container) configureCommands() error {
	if !c.Config.Commands.Enabled {
		return nil
	}

	deps := fieldscmd.Dependencies{
		History:      c.workspace.Events(),
		Bindings:     c.factory,
		Blocks:       c.workspace,
		AutosaveCron: c.Config.Commands.AutosaveCron,
	}
	if c.Config.Features.Persistence {
		deps.Persister = c.store
		deps.Records = c.records
	}
	gates := fieldscmd.FeatureGates{
		PersistenceEnabled: func() bool { return c.Config.Features.Persistence },
	}

	set, err := fieldscmd.RegisterFieldCommands(c.registry, deps, c.loggerProvider, gates)
	if err != nil {
		return err
	}
	c.commands = set

	target := c.dispatcher
	if target == nil && c.Config.Commands.AutoRegisterDispatcher {
		target = goCommandDispatcher{}
	}

	var errs error
	for _, handler := range set.Handlers() {
		if target != nil {
			sub, err := target.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if sub != nil {
				c.subscriptions = append(c.subscriptions, sub)
			}
		}
		if c.cronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := c.cronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}
	return errs
}

// goCommandDispatcher subscribes field handlers to the go-command global
// dispatcher.
type goCommandDispatcher struct{}

func (goCommandDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *fieldscmd.UndoHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *fieldscmd.RedoHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *fieldscmd.DisposeBlockHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *fieldscmd.PersistAssetsHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *fieldscmd.LoadAssetsHandler:
		return dispatcher.SubscribeCommand(h), nil
	default:
		return nil, fmt.Errorf("di: unsupported command handler %T", handler)
	}
}

func (c *Container) storageProvider() string {
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "" {
		return "memory"
	}
	return provider
}

// Close releases dispatcher subscriptions and any database the container opened.
func (c *Container) Close() error {
	for _, sub := range c.subscriptions {
		sub.Unsubscribe()
	}
	c.subscriptions = nil
	if c.ownsDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
		return err
	}
	return nil
}

// LoggerProvider exposes the configured provider; nil means logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Store returns the asset store.
func (c *Container) Store() *store.Store {
	return c.store
}

// Records returns the repository persisted assets are saved to.
func (c *Container) Records() store.RecordRepository {
	return c.records
}

// BunDB returns the bun database, if any.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Workspace returns the block host.
func (c *Container) Workspace() *workspace.Workspace {
	return c.workspace
}

// Editors returns the editor catalog.
func (c *Container) Editors() interfaces.EditorCatalog {
	return c.editors
}

// Fields returns the field factory.
func (c *Container) Fields() *fields.Factory {
	return c.factory
}

// Commands returns the built command handlers or nil when commands are disabled.
func (c *Container) Commands() *fieldscmd.HandlerSet {
	return c.commands
}

// Subscriptions lists active dispatcher subscriptions.
func (c *Container) Subscriptions() []CommandSubscription {
	out := make([]CommandSubscription, len(c.subscriptions))
	copy(out, c.subscriptions)
	return out
}
