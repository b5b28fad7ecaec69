package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/validation"
)

const (
	DefaultInitWidth  = 16
	DefaultInitHeight = 16
	DefaultTileWidth  = 16
)

// FieldOptions are the parsed block-definition options of an asset field.
type FieldOptions struct {
	InitWidth     int
	InitHeight    int
	DisableResize bool
	Filter        string
	TileWidth     int
	Tempo         int
}

// DefaultFieldOptions returns the options used when a block definition sets
// none.
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{
		InitWidth:  DefaultInitWidth,
		InitHeight: DefaultInitHeight,
		TileWidth:  DefaultTileWidth,
		Tempo:      assets.DefaultTempo,
	}
}

func optionSchema(strict bool) map[string]any {
	numeric := map[string]any{"type": []any{"string", "integer", "number"}}
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"initWidth":     numeric,
			"initHeight":    numeric,
			"tileWidth":     numeric,
			"tempo":         numeric,
			"disableResize": map[string]any{"type": []any{"string", "boolean"}},
			"filter":        map[string]any{"type": "string"},
		},
	}
	if strict {
		schema["additionalProperties"] = false
	}
	return schema
}

var (
	lenientOptions = validation.MustCompile("field-options", optionSchema(false))
	strictOptions  = validation.MustCompile("field-options-strict", optionSchema(true))
)

// ParseOptions reads raw block options over defaults. Values may be strings
// or numbers; numbers that do not parse keep the default. Unknown keys are
// ignored.
func ParseOptions(raw map[string]any, defaults FieldOptions) (FieldOptions, error) {
	return parseOptions(raw, defaults, lenientOptions)
}

// ParseOptionsStrict is ParseOptions that also rejects unknown keys.
func ParseOptionsStrict(raw map[string]any, defaults FieldOptions) (FieldOptions, error) {
	return parseOptions(raw, defaults, strictOptions)
}

func parseOptions(raw map[string]any, defaults FieldOptions, schema *validation.Schema) (FieldOptions, error) {
	parsed := defaults.normalized()
	if len(raw) == 0 {
		return parsed, nil
	}
	if err := schema.Validate(raw); err != nil {
		return parsed, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	parsed.InitWidth = withDefault(raw["initWidth"], parsed.InitWidth)
	parsed.InitHeight = withDefault(raw["initHeight"], parsed.InitHeight)
	parsed.TileWidth = withDefault(raw["tileWidth"], parsed.TileWidth)
	parsed.Tempo = withDefault(raw["tempo"], parsed.Tempo)

	switch v := raw["disableResize"].(type) {
	case bool:
		parsed.DisableResize = v
	case string:
		parsed.DisableResize = strings.EqualFold(strings.TrimSpace(v), "true") || strings.TrimSpace(v) == "1"
	}
	if filter, ok := raw["filter"].(string); ok {
		parsed.Filter = strings.TrimSpace(filter)
	}
	return parsed.normalized(), nil
}

func (o FieldOptions) normalized() FieldOptions {
	if o.InitWidth <= 0 {
		o.InitWidth = DefaultInitWidth
	}
	if o.InitHeight <= 0 {
		o.InitHeight = DefaultInitHeight
	}
	if o.TileWidth <= 0 {
		o.TileWidth = DefaultTileWidth
	}
	if o.Tempo <= 0 {
		o.Tempo = assets.DefaultTempo
	}
	return o
}

// withDefault mirrors parseInt semantics: leading digits win, anything else
// falls back to def.
func withDefault(raw any, def int) int {
	switch v := raw.(type) {
	case nil:
		return def
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int(v)
	case string:
		trimmed := strings.TrimSpace(v)
		end := 0
		if end < len(trimmed) && (trimmed[end] == '-' || trimmed[end] == '+') {
			end++
		}
		for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
			end++
		}
		n, err := strconv.Atoi(trimmed[:end])
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}
