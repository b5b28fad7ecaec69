package fields

import (
	"slices"

	"github.com/goliatone/go-assetfield/internal/assets"
)

// Claim records blockID as an owner of asset and returns the asset the block
// should display. A temporary asset already owned by another existing block
// is never shared: the claimer gets a fresh clone keyed by its own id.
// exists reports whether an owner block is still present; nil treats every
// listed owner as present.
func Claim(asset *assets.Asset, blockID string, exists func(blockID string) bool) (*assets.Asset, bool) {
	if asset == nil {
		return nil, false
	}
	claimed := asset.Clone()
	if claimed.HasOwner(blockID) {
		return claimed, false
	}
	if claimed.IsTemporary() && slices.ContainsFunc(claimed.Meta.BlockIDs, func(owner string) bool {
		return exists == nil || exists(owner)
	}) {
		clone := claimed.CloneFresh(blockID)
		clone.Meta.BlockIDs = []string{blockID}
		return clone, true
	}
	claimed.Meta.BlockIDs = append(claimed.Meta.BlockIDs, blockID)
	return claimed, false
}

// Release drops blockID from the asset's owners. The boolean reports whether
// no owner remains.
func Release(asset *assets.Asset, blockID string) (*assets.Asset, bool) {
	if asset == nil {
		return nil, false
	}
	released := asset.Clone()
	released.Meta.BlockIDs = slices.DeleteFunc(released.Meta.BlockIDs, func(owner string) bool {
		return owner == blockID
	})
	return released, len(released.Meta.BlockIDs) == 0
}
