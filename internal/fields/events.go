package fields

import (
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// AssetChangeEvent is the undo entry for one editor commit. It couples the
// field text with the store revision so both move together.
type AssetChangeEvent struct {
	blockID     string
	field       string
	oldValue    string
	newValue    string
	oldRevision int
	newRevision int
	oldAssetID  string
	newAssetID  string

	store     interfaces.AssetStore
	workspace interfaces.Workspace
	sink      interfaces.EventSink
}

var _ interfaces.Event = (*AssetChangeEvent)(nil)

func (e *AssetChangeEvent) BlockID() string    { return e.blockID }
func (e *AssetChangeEvent) Field() string      { return e.field }
func (e *AssetChangeEvent) OldValue() string   { return e.oldValue }
func (e *AssetChangeEvent) NewValue() string   { return e.newValue }
func (e *AssetChangeEvent) OldRevision() int   { return e.oldRevision }
func (e *AssetChangeEvent) NewRevision() int   { return e.newRevision }
func (e *AssetChangeEvent) OldAssetID() string { return e.oldAssetID }
func (e *AssetChangeEvent) NewAssetID() string { return e.newAssetID }
func (e *AssetChangeEvent) RecordUndo() bool   { return true }

// IdentityChanged reports whether the commit moved the field to another
// persisted id.
func (e *AssetChangeEvent) IdentityChanged() bool {
	return e.oldAssetID != e.newAssetID
}

// IsNull is true only when neither the revision nor the text moved.
func (e *AssetChangeEvent) IsNull() bool {
	return e.oldRevision == e.newRevision && e.oldValue == e.newValue
}

// Run replays the commit in either direction: blockData first, then the
// store revision, then the field text. The store steps even when the block
// is gone so its history stays aligned with the event log. A revision marker
// follows so observers recompile; the marker never enters the undo stack.
func (e *AssetChangeEvent) Run(forward bool) {
	var block interfaces.Block
	if e.workspace != nil {
		if found, ok := e.workspace.BlockByID(e.blockID); ok {
			block = found
		}
	}

	if block != nil && e.IdentityChanged() {
		if forward {
			block.SetData(e.field, e.newAssetID)
		} else {
			block.SetData(e.field, e.oldAssetID)
		}
	}
	if e.store != nil && e.oldRevision != e.newRevision {
		if forward {
			e.store.Redo()
		} else {
			e.store.Undo()
		}
	}
	if block != nil {
		value := e.oldValue
		if forward {
			value = e.newValue
		}
		block.SetFieldValue(e.field, value)
	}

	if e.sink != nil && e.sink.Enabled() {
		revision := 0
		if e.store != nil {
			revision = e.store.Revision()
		}
		e.sink.Fire(&RevisionEvent{blockID: e.blockID, revision: revision})
	}
}

// RevisionEvent announces the store revision after an undo or redo.
type RevisionEvent struct {
	blockID  string
	revision int
}

var _ interfaces.Event = (*RevisionEvent)(nil)

func (e *RevisionEvent) BlockID() string  { return e.blockID }
func (e *RevisionEvent) Revision() int    { return e.revision }
func (e *RevisionEvent) RecordUndo() bool { return false }
func (e *RevisionEvent) IsNull() bool     { return false }
func (e *RevisionEvent) Run(bool)         {}
