package assets

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Tileset references the tiles a tilemap indexes into. Tiles holds tile
// asset ids; index 0 is conventionally the transparent tile.
type Tileset struct {
	TileWidth int
	Tiles     []string
}

// Tilemap is a grid of tileset indices plus a wall layer of the same size.
type Tilemap struct {
	Width   int
	Height  int
	Cells   []uint8
	Layers  *Bitmap
	Tileset Tileset
}

var _ Payload = (*Tilemap)(nil)

// NewTilemap returns an empty tilemap using tiles of tileWidth pixels.
func NewTilemap(width, height, tileWidth int) *Tilemap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Tilemap{
		Width:   width,
		Height:  height,
		Cells:   make([]uint8, width*height),
		Layers:  NewBitmap(width, height),
		Tileset: Tileset{TileWidth: tileWidth, Tiles: []string{}},
	}
}

func (t *Tilemap) Kind() Type { return TypeTilemap }

func (t *Tilemap) Clone() Payload {
	if t == nil {
		return (*Tilemap)(nil)
	}
	return &Tilemap{
		Width:  t.Width,
		Height: t.Height,
		Cells:  slices.Clone(t.Cells),
		Layers: t.Layers.CloneBitmap(),
		Tileset: Tileset{
			TileWidth: t.Tileset.TileWidth,
			Tiles:     slices.Clone(t.Tileset.Tiles),
		},
	}
}

func (t *Tilemap) Equal(other Payload) bool {
	o, ok := other.(*Tilemap)
	if !ok || t == nil || o == nil {
		return ok && t == o
	}
	if t.Width != o.Width || t.Height != o.Height || !slices.Equal(t.Cells, o.Cells) {
		return false
	}
	if t.Tileset.TileWidth != o.Tileset.TileWidth || !slices.Equal(t.Tileset.Tiles, o.Tileset.Tiles) {
		return false
	}
	if t.Layers == nil || o.Layers == nil {
		return t.Layers == nil && o.Layers == nil
	}
	return t.Layers.Equal(o.Layers)
}

// Get returns the tile index at x,y.
func (t *Tilemap) Get(x, y int) uint8 {
	if t == nil || x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return 0
	}
	return t.Cells[y*t.Width+x]
}

// Set writes a tile index at x,y.
func (t *Tilemap) Set(x, y int, index uint8) {
	if t == nil || x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Cells[y*t.Width+x] = index
}

// MergeTiles appends tile ids missing from the tileset, preserving order.
func (t *Tilemap) MergeTiles(ids []string) {
	for _, id := range ids {
		if !slices.Contains(t.Tileset.Tiles, id) {
			t.Tileset.Tiles = append(t.Tileset.Tiles, id)
		}
	}
}

var tilemapLiteral = regexp.MustCompile("(?s)^tiles\\.createTilemap\\(\\s*hex`([0-9a-fA-F]*)`\\s*,\\s*(img`[^`]*`)\\s*,\\s*\\[([^\\]]*)\\]\\s*,\\s*(\\d+)\\s*\\)$")

// EncodeTilemapLiteral renders the tilemap as a tiles.createTilemap(...) call.
// The hex blob stores width and height as little endian uint16 followed by
// one byte per cell.
func EncodeTilemapLiteral(t *Tilemap) string {
	if t == nil {
		return ""
	}
	buf := make([]byte, 0, 4+len(t.Cells))
	buf = append(buf, byte(t.Width), byte(t.Width>>8), byte(t.Height), byte(t.Height>>8))
	buf = append(buf, t.Cells...)
	layers := t.Layers
	if layers == nil {
		layers = NewBitmap(t.Width, t.Height)
	}
	return fmt.Sprintf("tiles.createTilemap(hex`%s`, %s, [%s], %d)",
		hex.EncodeToString(buf),
		EncodeImageLiteral(layers),
		strings.Join(t.Tileset.Tiles, ", "),
		t.Tileset.TileWidth,
	)
}

// DecodeTilemapLiteral parses the output of EncodeTilemapLiteral.
func DecodeTilemapLiteral(text string) (*Tilemap, error) {
	match := tilemapLiteral.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return nil, ErrInvalidLiteral
	}
	raw, err := hex.DecodeString(match[1])
	if err != nil || len(raw) < 4 {
		return nil, ErrInvalidLiteral
	}
	width := int(raw[0]) | int(raw[1])<<8
	height := int(raw[2]) | int(raw[3])<<8
	if width == 0 || height == 0 || len(raw)-4 != width*height {
		return nil, ErrInvalidLiteral
	}
	layers, err := DecodeImageLiteral(match[2])
	if err != nil || layers.Width != width || layers.Height != height {
		return nil, ErrInvalidLiteral
	}
	tileWidth, err := strconv.Atoi(match[4])
	if err != nil || tileWidth <= 0 {
		return nil, ErrInvalidLiteral
	}
	tiles := []string{}
	for _, id := range strings.Split(match[3], ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			tiles = append(tiles, trimmed)
		}
	}
	return &Tilemap{
		Width:   width,
		Height:  height,
		Cells:   slices.Clone(raw[4:]),
		Layers:  layers,
		Tileset: Tileset{TileWidth: tileWidth, Tiles: tiles},
	}, nil
}
