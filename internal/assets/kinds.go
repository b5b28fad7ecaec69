package assets

import (
	"strings"
)

// Codec converts between a payload and the literal text emitted into code.
type Codec interface {
	Encode(p Payload) (string, error)
	Decode(text string) (Payload, error)
}

// KindInfo describes how one asset type is encoded, edited and named.
type KindInfo struct {
	Type Type
	// EditorKind selects the embedded editor in the editor catalog.
	EditorKind string
	// IDPrefix is the stem used when the store generates persisted ids.
	IDPrefix string
	// ReferenceTag is the template tag used to reference a persisted asset by name.
	ReferenceTag string
	Codec        Codec
}

const (
	EditorKindImage   = "image-editor"
	EditorKindAnim    = "animation-editor"
	EditorKindTilemap = "tilemap-editor"
	EditorKindMusic   = "music-editor"
)

// Describe returns the kind table entry for t.
func Describe(t Type) (KindInfo, error) {
	switch t {
	case TypeImage:
		return KindInfo{Type: t, EditorKind: EditorKindImage, IDPrefix: "myImages.image", ReferenceTag: "assets.image", Codec: imageCodec{}}, nil
	case TypeTile:
		return KindInfo{Type: t, EditorKind: EditorKindImage, IDPrefix: "myTiles.tile", ReferenceTag: "assets.tile", Codec: imageCodec{}}, nil
	case TypeAnimation:
		return KindInfo{Type: t, EditorKind: EditorKindAnim, IDPrefix: "myAnimations.anim", ReferenceTag: "assets.animation", Codec: animationCodec{}}, nil
	case TypeTilemap:
		return KindInfo{Type: t, EditorKind: EditorKindTilemap, IDPrefix: "myTilemaps.level", ReferenceTag: "tilemap", Codec: tilemapCodec{}}, nil
	case TypeSong:
		return KindInfo{Type: t, EditorKind: EditorKindMusic, IDPrefix: "mySongs.song", ReferenceTag: "assets.song", Codec: songCodec{}}, nil
	default:
		return KindInfo{}, ErrUnknownType
	}
}

// MustDescribe is Describe for callers that have already validated t.
func MustDescribe(t Type) KindInfo {
	info, err := Describe(t)
	if err != nil {
		panic(err)
	}
	return info
}

// Reference renders the by-name reference form for a persisted asset.
func (k KindInfo) Reference(name string) string {
	return k.ReferenceTag + "`" + name + "`"
}

// ParseReference extracts the name from a by-name reference literal.
func (k KindInfo) ParseReference(text string) (string, bool) {
	body, ok := taggedBody(text, k.ReferenceTag)
	if !ok {
		return "", false
	}
	name := strings.TrimSpace(body)
	if name == "" || strings.ContainsAny(name, "\n\r") {
		return "", false
	}
	return name, true
}

// Encode serializes a payload through the kind codec.
func (k KindInfo) Encode(p Payload) (string, error) {
	return k.Codec.Encode(p)
}

// Decode parses literal text through the kind codec.
func (k KindInfo) Decode(text string) (Payload, error) {
	return k.Codec.Decode(text)
}

type imageCodec struct{}

func (imageCodec) Encode(p Payload) (string, error) {
	bmp, ok := p.(*Bitmap)
	if !ok {
		return "", ErrPayloadKind
	}
	return EncodeImageLiteral(bmp), nil
}

func (imageCodec) Decode(text string) (Payload, error) {
	decoded, err := DecodeImageLiteral(text)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

type animationCodec struct{}

func (animationCodec) Encode(p Payload) (string, error) {
	anim, ok := p.(*Animation)
	if !ok {
		return "", ErrPayloadKind
	}
	return EncodeFrameArray(anim), nil
}

func (animationCodec) Decode(text string) (Payload, error) {
	decoded, err := DecodeFrameArray(text)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

type tilemapCodec struct{}

func (tilemapCodec) Encode(p Payload) (string, error) {
	tm, ok := p.(*Tilemap)
	if !ok {
		return "", ErrPayloadKind
	}
	return EncodeTilemapLiteral(tm), nil
}

func (tilemapCodec) Decode(text string) (Payload, error) {
	decoded, err := DecodeTilemapLiteral(text)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

type songCodec struct{}

func (songCodec) Encode(p Payload) (string, error) {
	song, ok := p.(*Song)
	if !ok {
		return "", ErrPayloadKind
	}
	return EncodeSongLiteral(song), nil
}

func (songCodec) Decode(text string) (Payload, error) {
	decoded, err := DecodeSongLiteral(text)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
