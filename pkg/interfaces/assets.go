package interfaces

import "github.com/goliatone/go-assetfield/internal/assets"

// AssetStore is the shared, revision-numbered repository of assets every
// asset field binds to. Assets cross this boundary as snapshots: callers own
// the values they receive and must call UpdateAsset to publish changes.
type AssetStore interface {
	LookupAsset(t assets.Type, id string) *assets.Asset
	LookupAssetByName(t assets.Type, name string) *assets.Asset
	UpdateAsset(asset *assets.Asset) *assets.Asset
	RemoveAsset(asset *assets.Asset)
	GenerateNewID(t assets.Type) string

	// Revision advances on every committed content change and moves back
	// and forth with Undo and Redo.
	Revision() int
	// PushUndo seals the current change set so the next content change
	// starts a new undo step.
	PushUndo()
	Undo()
	Redo()

	AddChangeListener(asset *assets.Asset, listener ChangeListener)
	RemoveChangeListener(t assets.Type, listener ChangeListener)
}

// ChangeListener receives notifications when a subscribed asset changes.
// The asset is nil when it was removed from the store.
type ChangeListener interface {
	OnAssetChanged(key assets.Key, asset *assets.Asset)
}

// AssetLister is implemented by stores that can enumerate assets by type.
type AssetLister interface {
	List(t assets.Type) []*assets.Asset
}
