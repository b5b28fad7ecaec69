package assets

import (
	"errors"
	"slices"
	"strings"
)

// Type tags the closed set of asset kinds an asset field can bind to.
type Type uint8

const (
	TypeImage Type = iota + 1
	TypeTile
	TypeAnimation
	TypeTilemap
	TypeSong
)

// UnregisteredInternalID marks an asset the store has not registered as persisted.
const UnregisteredInternalID = -1

var (
	ErrUnknownType    = errors.New("assets: unknown asset type")
	ErrPayloadKind    = errors.New("assets: payload kind does not match asset type")
	ErrInvalidLiteral = errors.New("assets: literal text could not be parsed")
)

// Types lists every supported asset kind in declaration order.
func Types() []Type {
	return []Type{TypeImage, TypeTile, TypeAnimation, TypeTilemap, TypeSong}
}

// Valid reports whether t is one of the declared kinds.
func (t Type) Valid() bool {
	switch t {
	case TypeImage, TypeTile, TypeAnimation, TypeTilemap, TypeSong:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t {
	case TypeImage:
		return "image"
	case TypeTile:
		return "tile"
	case TypeAnimation:
		return "animation"
	case TypeTilemap:
		return "tilemap"
	case TypeSong:
		return "song"
	default:
		return "unknown"
	}
}

// ParseType maps the string form produced by String back to a Type.
func ParseType(value string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "image":
		return TypeImage, nil
	case "tile":
		return TypeTile, nil
	case "animation":
		return TypeAnimation, nil
	case "tilemap":
		return TypeTilemap, nil
	case "song":
		return TypeSong, nil
	default:
		return 0, ErrUnknownType
	}
}

// Payload is the type-specific content of an asset. Implementations are value
// types: Clone must return a copy that shares no mutable state.
type Payload interface {
	Kind() Type
	Clone() Payload
	Equal(other Payload) bool
}

// Meta carries the bookkeeping attached to an asset.
type Meta struct {
	// DisplayName is set only for persisted assets.
	DisplayName string
	// BlockIDs lists the blocks currently displaying a temporary asset.
	BlockIDs []string
}

// Asset is the unit stored in the asset store.
type Asset struct {
	ID         string
	Type       Type
	InternalID int
	Meta       Meta
	Payload    Payload
}

// Key identifies an asset within a store.
type Key struct {
	Type Type
	ID   string
}

func (k Key) String() string {
	return k.Type.String() + ":" + k.ID
}

// Key returns the store key of the asset.
func (a *Asset) Key() Key {
	if a == nil {
		return Key{}
	}
	return Key{Type: a.Type, ID: a.ID}
}

// IsPersisted reports whether the asset carries a display name.
func (a *Asset) IsPersisted() bool {
	return a != nil && a.Meta.DisplayName != ""
}

// IsTemporary reports whether the asset is anonymous and block-owned.
func (a *Asset) IsTemporary() bool {
	return a != nil && a.Meta.DisplayName == ""
}

// HasOwner reports whether blockID is listed in the asset's owners.
func (a *Asset) HasOwner(blockID string) bool {
	if a == nil {
		return false
	}
	return slices.Contains(a.Meta.BlockIDs, blockID)
}

// Clone returns a deep copy that keeps the asset identity.
func (a *Asset) Clone() *Asset {
	if a == nil {
		return nil
	}
	cloned := &Asset{
		ID:         a.ID,
		Type:       a.Type,
		InternalID: a.InternalID,
		Meta: Meta{
			DisplayName: a.Meta.DisplayName,
			BlockIDs:    slices.Clone(a.Meta.BlockIDs),
		},
	}
	if cloned.Meta.BlockIDs == nil {
		cloned.Meta.BlockIDs = []string{}
	}
	if a.Payload != nil {
		cloned.Payload = a.Payload.Clone()
	}
	return cloned
}

// CloneFresh returns a deep copy with a new temporary identity: the id is
// replaced, the internal id reset and the owner list emptied.
func (a *Asset) CloneFresh(id string) *Asset {
	cloned := a.Clone()
	if cloned == nil {
		return nil
	}
	cloned.ID = id
	cloned.InternalID = UnregisteredInternalID
	cloned.Meta.DisplayName = ""
	cloned.Meta.BlockIDs = []string{}
	return cloned
}

// Equal compares two assets structurally. Owner lists and internal ids are
// bookkeeping and do not participate.
func Equal(a, b *Asset) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Type != b.Type || a.Meta.DisplayName != b.Meta.DisplayName {
		return false
	}
	if a.Payload == nil || b.Payload == nil {
		return a.Payload == nil && b.Payload == nil
	}
	return a.Payload.Equal(b.Payload)
}

// New builds a temporary, unregistered asset of type t around payload.
func New(t Type, id string, payload Payload) (*Asset, error) {
	asset := &Asset{
		ID:         id,
		Type:       t,
		InternalID: UnregisteredInternalID,
		Meta:       Meta{BlockIDs: []string{}},
		Payload:    payload,
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	return asset, nil
}

// Validate checks that the payload matches the declared type.
func (a *Asset) Validate() error {
	if a == nil || !a.Type.Valid() {
		return ErrUnknownType
	}
	if a.Payload == nil {
		return nil
	}
	kind := a.Payload.Kind()
	if kind == a.Type {
		return nil
	}
	// tiles and images share the bitmap payload
	if (a.Type == TypeTile && kind == TypeImage) || (a.Type == TypeImage && kind == TypeTile) {
		return nil
	}
	return ErrPayloadKind
}
