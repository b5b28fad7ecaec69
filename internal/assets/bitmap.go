package assets

import (
	"slices"
	"strings"
)

// Bitmap is a palette-indexed image. Pixels holds one color index (0-15)
// per cell in row-major order.
type Bitmap struct {
	Width  int
	Height int
	Pixels []uint8
}

var _ Payload = (*Bitmap)(nil)

// NewBitmap returns a transparent bitmap of the given size.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height),
	}
}

func (b *Bitmap) Kind() Type { return TypeImage }

func (b *Bitmap) Clone() Payload {
	return b.CloneBitmap()
}

// CloneBitmap is Clone without the interface conversion.
func (b *Bitmap) CloneBitmap() *Bitmap {
	if b == nil {
		return nil
	}
	return &Bitmap{Width: b.Width, Height: b.Height, Pixels: slices.Clone(b.Pixels)}
}

func (b *Bitmap) Equal(other Payload) bool {
	o, ok := other.(*Bitmap)
	if !ok || b == nil || o == nil {
		return ok && b == o
	}
	return b.Width == o.Width && b.Height == o.Height && slices.Equal(b.Pixels, o.Pixels)
}

// Get returns the color at x,y or 0 when out of bounds.
func (b *Bitmap) Get(x, y int) uint8 {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.Pixels[y*b.Width+x]
}

// Set writes color at x,y. Out of bounds writes are dropped.
func (b *Bitmap) Set(x, y int, color uint8) {
	if !b.inBounds(x, y) {
		return
	}
	b.Pixels[y*b.Width+x] = color & 0x0f
}

// Valid reports whether the bitmap has a non-empty, consistent shape.
func (b *Bitmap) Valid() bool {
	return b != nil && b.Width > 0 && b.Height > 0 && len(b.Pixels) == b.Width*b.Height
}

func (b *Bitmap) inBounds(x, y int) bool {
	return b != nil && x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

const hexDigits = "0123456789abcdef"

// EncodeImageLiteral renders the bitmap as an img`...` literal, one row per
// line, "." for transparent cells.
func EncodeImageLiteral(b *Bitmap) string {
	var sb strings.Builder
	sb.WriteString("img`\n")
	if b != nil {
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				if x > 0 {
					sb.WriteByte(' ')
				}
				c := b.Get(x, y)
				if c == 0 {
					sb.WriteByte('.')
				} else {
					sb.WriteByte(hexDigits[c])
				}
			}
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('`')
	return sb.String()
}

// DecodeImageLiteral parses an img`...` literal. Rows must all have the same
// width and contain only "." or hex digits.
func DecodeImageLiteral(text string) (*Bitmap, error) {
	body, ok := taggedBody(text, "img")
	if !ok {
		return nil, ErrInvalidLiteral
	}
	return decodeImageRows(body)
}

func decodeImageRows(body string) (*Bitmap, error) {
	var rows [][]uint8
	for _, line := range strings.Split(body, "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line == "" {
			continue
		}
		row := make([]uint8, 0, len(line))
		for _, ch := range strings.ToLower(line) {
			switch {
			case ch == '.':
				row = append(row, 0)
			case ch >= '0' && ch <= '9':
				row = append(row, uint8(ch-'0'))
			case ch >= 'a' && ch <= 'f':
				row = append(row, uint8(ch-'a'+10))
			default:
				return nil, ErrInvalidLiteral
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, ErrInvalidLiteral
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrInvalidLiteral
	}
	bmp := NewBitmap(len(rows[0]), len(rows))
	for y, row := range rows {
		copy(bmp.Pixels[y*bmp.Width:], row)
	}
	return bmp, nil
}

// taggedBody strips a tag`...` template wrapper and returns the body.
func taggedBody(text, tag string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	prefix := tag + "`"
	if !strings.HasPrefix(trimmed, prefix) || !strings.HasSuffix(trimmed, "`") || len(trimmed) < len(prefix)+1 {
		return "", false
	}
	body := trimmed[len(prefix) : len(trimmed)-1]
	if strings.Contains(body, "`") {
		return "", false
	}
	return body, true
}
