package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrFieldSizeInvalid = errors.New("assetfield config: field dimensions must be positive")
var ErrTempoInvalid = errors.New("assetfield config: default tempo must be positive")
var ErrUndoLimitInvalid = errors.New("assetfield config: undo limit must be zero or positive")

// ErrStorageProviderUnknown reports a storage provider other than memory or bun.
var ErrStorageProviderUnknown = errors.New("assetfield config: storage provider is invalid")
var ErrStorageDialectUnknown = errors.New("assetfield config: storage dialect is invalid")
var ErrStorageDSNRequired = errors.New("assetfield config: storage dsn is required for the bun provider")

// ErrPersistenceRequiresBun keeps the persistence feature behind a database provider.
var ErrPersistenceRequiresBun = errors.New("assetfield config: persistence feature requires the bun storage provider")
var ErrCacheTTLInvalid = errors.New("assetfield config: cache ttl must be zero or positive")
var ErrLoggingProviderRequired = errors.New("assetfield config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("assetfield config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("assetfield config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("assetfield config: logging format is invalid")

// Config aggregates the knobs of the asset field engine and its adapters.
type Config struct {
	Fields   FieldsConfig   `yaml:"fields"`
	Store    StoreConfig    `yaml:"store"`
	Storage  StorageConfig  `yaml:"storage"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
	Features Features       `yaml:"features"`
	Commands CommandsConfig `yaml:"commands"`
}

// FieldsConfig holds the option defaults applied before block options.
type FieldsConfig struct {
	InitWidth     int    `yaml:"init_width"`
	InitHeight    int    `yaml:"init_height"`
	DisableResize bool   `yaml:"disable_resize"`
	Filter        string `yaml:"filter"`
	TileWidth     int    `yaml:"tile_width"`
	DefaultTempo  int    `yaml:"default_tempo"`
	// StrictOptions rejects unknown block option keys.
	StrictOptions bool `yaml:"strict_options"`
}

// StoreConfig captures asset store behaviour.
type StoreConfig struct {
	// UndoLimit caps the store undo history; zero keeps everything.
	UndoLimit int `yaml:"undo_limit"`
}

// StorageConfig selects where persisted asset records live.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	Dialect  string `yaml:"dialect"`
	DSN      string `yaml:"dsn"`
	// AutoMigrate creates the asset record table on startup.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// CacheConfig captures repository cache toggles.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// Features toggles module functionality.
type Features struct {
	Logger      bool `yaml:"logger"`
	Persistence bool `yaml:"persistence"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool `yaml:"enabled"`
	AutoRegisterDispatcher bool `yaml:"auto_register_dispatcher"`
	// AutosaveCron schedules the persist command when a cron registrar is supplied.
	AutosaveCron string `yaml:"autosave_cron"`
}

// DefaultConfig returns defaults matching a 16x16 sprite editor backed by
// an in-memory store.
func DefaultConfig() Config {
	return Config{
		Fields: FieldsConfig{
			InitWidth:    16,
			InitHeight:   16,
			TileWidth:    16,
			DefaultTempo: 120,
		},
		Store: StoreConfig{},
		Storage: StorageConfig{
			Provider:    "memory",
			Dialect:     "sqlite",
			AutoMigrate: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
		Features: Features{},
		Commands: CommandsConfig{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Fields.InitWidth <= 0 || cfg.Fields.InitHeight <= 0 || cfg.Fields.TileWidth <= 0 {
		return ErrFieldSizeInvalid
	}
	if cfg.Fields.DefaultTempo <= 0 {
		return ErrTempoInvalid
	}
	if cfg.Store.UndoLimit < 0 {
		return ErrUndoLimitInvalid
	}

	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case "memory", "":
	case "bun":
		if !isSupportedDialect(cfg.Storage.Dialect) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if normalize(cfg.Storage.Dialect) == "postgres" && strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Features.Persistence && provider != "bun" {
		return ErrPersistenceRequiresBun
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLoggingProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// ParseYAML overlays the YAML document in data on DefaultConfig and
// validates the result.
func ParseYAML(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("assetfield config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadYAML reads path and parses it with ParseYAML.
func LoadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("assetfield config: read %s: %w", path, err)
	}
	return ParseYAML(data)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDialect(dialect string) bool {
	switch normalize(dialect) {
	case "sqlite", "postgres":
		return true
	default:
		return false
	}
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
