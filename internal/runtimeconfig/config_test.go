package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-assetfield/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"zero width", func(c *runtimeconfig.Config) { c.Fields.InitWidth = 0 }, runtimeconfig.ErrFieldSizeInvalid},
		{"zero tempo", func(c *runtimeconfig.Config) { c.Fields.DefaultTempo = 0 }, runtimeconfig.ErrTempoInvalid},
		{"negative undo limit", func(c *runtimeconfig.Config) { c.Store.UndoLimit = -1 }, runtimeconfig.ErrUndoLimitInvalid},
		{"unknown provider", func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" }, runtimeconfig.ErrStorageProviderUnknown},
		{"unknown dialect", func(c *runtimeconfig.Config) {
			c.Storage.Provider = "bun"
			c.Storage.Dialect = "oracle"
		}, runtimeconfig.ErrStorageDialectUnknown},
		{"postgres without dsn", func(c *runtimeconfig.Config) {
			c.Storage.Provider = "bun"
			c.Storage.Dialect = "postgres"
		}, runtimeconfig.ErrStorageDSNRequired},
		{"persistence on memory", func(c *runtimeconfig.Config) { c.Features.Persistence = true }, runtimeconfig.ErrPersistenceRequiresBun},
		{"negative ttl", func(c *runtimeconfig.Config) { c.Cache.DefaultTTL = -time.Second }, runtimeconfig.ErrCacheTTLInvalid},
		{"logger without provider", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = ""
		}, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown logger provider", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "syslog"
		}, runtimeconfig.ErrLoggingProviderUnknown},
		{"bad level", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Level = "loud"
		}, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad format", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	cfg, err := runtimeconfig.LoadYAML("testdata/assetfield.yaml")
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if cfg.Fields.InitWidth != 32 || cfg.Fields.InitHeight != 24 || !cfg.Fields.StrictOptions {
		t.Fatalf("unexpected fields config %+v", cfg.Fields)
	}
	if cfg.Fields.TileWidth != 16 || cfg.Fields.DefaultTempo != 120 {
		t.Fatalf("expected unset keys to keep defaults, got %+v", cfg.Fields)
	}
	if cfg.Store.UndoLimit != 50 || cfg.Storage.Provider != "bun" {
		t.Fatalf("unexpected store config %+v %+v", cfg.Store, cfg.Storage)
	}
	if cfg.Cache.DefaultTTL != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %s", cfg.Cache.DefaultTTL)
	}
	if len(cfg.Logging.Focus) != 1 || cfg.Logging.Focus[0] != "assetfield.fields" {
		t.Fatalf("unexpected focus %v", cfg.Logging.Focus)
	}
	if !cfg.Commands.Enabled || cfg.Commands.AutosaveCron != "@every 1m" {
		t.Fatalf("unexpected commands config %+v", cfg.Commands)
	}
}

func TestParseYAMLValidates(t *testing.T) {
	_, err := runtimeconfig.ParseYAML([]byte("storage:\n  provider: redis\n"))
	if !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
	if _, err := runtimeconfig.ParseYAML([]byte("fields: [")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadYAMLMissingFile(t *testing.T) {
	if _, err := runtimeconfig.LoadYAML("testdata/missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
