package fields_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/fields"
)

func TestParseOptions(t *testing.T) {
	opts, err := fields.ParseOptions(map[string]any{
		"initWidth":     "32",
		"initHeight":    "abc",
		"tileWidth":     "8px",
		"tempo":         140,
		"disableResize": "true",
		"filter":        " sprites ",
		"unknown":       "kept quiet",
	}, fields.DefaultFieldOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.InitWidth != 32 || opts.InitHeight != fields.DefaultInitHeight {
		t.Fatalf("unexpected size %dx%d", opts.InitWidth, opts.InitHeight)
	}
	if opts.TileWidth != 8 || opts.Tempo != 140 {
		t.Fatalf("unexpected tile width %d or tempo %d", opts.TileWidth, opts.Tempo)
	}
	if !opts.DisableResize || opts.Filter != "sprites" {
		t.Fatalf("unexpected flags %+v", opts)
	}
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := fields.ParseOptions(nil, fields.FieldOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts != fields.DefaultFieldOptions() {
		t.Fatalf("expected defaults, got %+v", opts)
	}
	if opts.Tempo != assets.DefaultTempo {
		t.Fatalf("expected default tempo")
	}
}

func TestParseOptionsRejectsBadTypes(t *testing.T) {
	_, err := fields.ParseOptions(map[string]any{"initWidth": true}, fields.DefaultFieldOptions())
	if !errors.Is(err, fields.ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestParseOptionsStrictRejectsUnknownKeys(t *testing.T) {
	_, err := fields.ParseOptionsStrict(map[string]any{"initWidht": "32"}, fields.DefaultFieldOptions())
	if !errors.Is(err, fields.ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
	if _, err := fields.ParseOptionsStrict(map[string]any{"initWidth": 32}, fields.DefaultFieldOptions()); err != nil {
		t.Fatalf("expected known keys accepted: %v", err)
	}
}
