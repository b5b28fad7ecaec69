package fields

import (
	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// Source tells which resolution rule produced an asset.
type Source int

const (
	SourceNone Source = iota
	// SourceBlockData is an asset named by the block's out-of-band data.
	SourceBlockData
	// SourceReference is a persisted asset referenced by name in the text.
	SourceReference
	// SourceLiteral is a new temporary asset parsed from the text.
	SourceLiteral
	// SourceDefault is a new blank temporary asset.
	SourceDefault
	// SourceGrey means the text could not be understood.
	SourceGrey
)

func (s Source) String() string {
	switch s {
	case SourceBlockData:
		return "block_data"
	case SourceReference:
		return "reference"
	case SourceLiteral:
		return "literal"
	case SourceDefault:
		return "default"
	case SourceGrey:
		return "grey"
	default:
		return "none"
	}
}

// ResolveRequest carries the inputs of one resolution pass.
type ResolveRequest struct {
	Text      string
	BlockID   string
	BlockData string
	// Initial marks the pass that runs when a field first attaches. It honors
	// blockData even when the text is empty.
	Initial bool
}

// Resolution is the asset a field should display, before ownership is
// reconciled.
type Resolution struct {
	Asset  *assets.Asset
	Source Source
}

// Grey reports whether the field must fall back to echoing its text.
func (r Resolution) Grey() bool {
	return r.Source == SourceGrey
}

// Fresh reports whether the asset was synthesized by this pass.
func (r Resolution) Fresh() bool {
	return r.Source == SourceLiteral || r.Source == SourceDefault
}

// Resolve maps field text and blockData to an asset. It only reads from the
// store. Rules apply in order: blockData, by-name reference, literal parse,
// default asset. Unparseable text and references to missing assets resolve
// grey.
func Resolve(store interfaces.AssetStore, kind Kind, opts FieldOptions, req ResolveRequest) Resolution {
	t := kind.AssetType()

	if req.BlockData != "" && (req.Text != "" || req.Initial) && store != nil {
		if asset := store.LookupAsset(t, req.BlockData); asset != nil {
			return Resolution{Asset: asset, Source: SourceBlockData}
		}
	}

	if req.Text != "" {
		if name, ok := assets.MustDescribe(t).ParseReference(req.Text); ok {
			if store != nil {
				if asset := store.LookupAssetByName(t, name); asset != nil {
					return Resolution{Asset: asset, Source: SourceReference}
				}
				if asset := store.LookupAsset(t, name); asset != nil {
					return Resolution{Asset: asset, Source: SourceReference}
				}
			}
			return Resolution{Source: SourceGrey}
		}
		asset, err := kind.CreateNewAsset(req.Text, req.BlockID, opts)
		if err != nil || asset == nil {
			return Resolution{Source: SourceGrey}
		}
		return Resolution{Asset: asset, Source: SourceLiteral}
	}

	asset, err := kind.CreateNewAsset("", req.BlockID, opts)
	if err != nil || asset == nil {
		return Resolution{Source: SourceGrey}
	}
	return Resolution{Asset: asset, Source: SourceDefault}
}
