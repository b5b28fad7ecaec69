package fields

import (
	"slices"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// SessionState tracks a binding's editor session.
type SessionState int

const (
	StateClosed SessionState = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s SessionState) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "closed"
	}
}

// ShowEditor opens the embedded editor for the displayed asset. It returns
// false when nothing was opened: grey blocks, a session already in progress,
// a missing editor or a failing open hook.
func (b *Binding) ShowEditor() bool {
	if b.disposed || b.isGreyBlock || b.asset == nil || b.block == nil || b.state != StateClosed {
		return false
	}
	b.state = StateOpening

	opened := b.asset.Clone()
	if err := b.runHook("before_editor_open", opened, b.kind.BeforeEditorOpen); err != nil {
		b.state = StateClosed
		b.logger.Warn("field.editor.open_failed", "block_id", b.block.ID(), "field", b.name, "error", err)
		return false
	}

	var session interfaces.EditorSession
	if b.editors != nil {
		session, _ = b.editors.Session(interfaces.EditorRequest{
			Kind:          b.info.EditorKind,
			Asset:         opened.Clone(),
			InitWidth:     b.opts.InitWidth,
			InitHeight:    b.opts.InitHeight,
			DisableResize: b.opts.DisableResize,
			Filter:        b.opts.Filter,
		})
	}
	if session == nil {
		b.state = StateClosed
		b.logger.Debug("field.editor.unavailable", "block_id", b.block.ID(), "kind", b.info.EditorKind)
		return false
	}

	lastRevision := b.store.Revision()
	if b.undoRedoState != nil {
		session.RestorePersistentData(b.undoRedoState)
	}
	b.store.PushUndo()

	b.state = StateOpen
	session.OnHide(func() {
		b.finishEdit(session, opened, lastRevision)
	})
	session.Show()
	return true
}

func (b *Binding) finishEdit(session interfaces.EditorSession, opened *assets.Asset, lastRevision int) {
	if b.state != StateOpen {
		return
	}
	b.state = StateClosing
	defer func() { b.state = StateClosed }()

	if b.disposed {
		return
	}
	result := session.Result()
	if result == nil || assets.Equal(opened, result) {
		return
	}
	if err := b.commit(session, result, lastRevision); err != nil {
		b.logger.Warn("field.commit.aborted", "block_id", b.block.ID(), "field", b.name, "error", err)
	}
}

// commit publishes an edited asset, reconciles ownership and records one
// undo event covering both the field text and the store revision.
func (b *Binding) commit(session interfaces.EditorSession, result *assets.Asset, lastRevision int) error {
	prior := b.asset
	blockID := b.block.ID()
	oldValue := b.Value()
	oldAssetID := persistedID(prior)

	next := result.Clone()
	next.Type = prior.Type
	promoted := next.IsPersisted() && prior.IsTemporary() && next.ID == prior.ID
	if next.IsTemporary() && prior.IsPersisted() {
		// persisted assets cannot be demoted by an editor
		next.ID = prior.ID
		next.Meta.DisplayName = prior.Meta.DisplayName
	}

	b.pendingEdit = true
	defer func() { b.pendingEdit = false }()

	priorStored := b.store.LookupAsset(prior.Type, prior.ID)
	if next.IsPersisted() && prior.IsTemporary() && priorStored != nil {
		b.releaseCurrent()
	}

	if err := b.runHook("on_editor_close", next, b.kind.OnEditorClose); err != nil {
		if priorStored != nil {
			b.store.UpdateAsset(priorStored)
		}
		return err
	}
	if promoted {
		// the block id is not a valid persisted id; reserve one only once
		// the commit can no longer abort
		next.ID = b.store.GenerateNewID(next.Type)
		next.InternalID = assets.UnregisteredInternalID
		next.Meta.BlockIDs = []string{}
	}

	// owners added while the editor was open survive the commit
	if current := b.store.LookupAsset(next.Type, next.ID); current != nil {
		next.Meta.BlockIDs = slices.Clone(current.Meta.BlockIDs)
	}
	b.asset = b.claim(next)
	b.updateAssetListener()
	b.undoRedoState = session.PersistentData()
	b.redraw()

	newRevision := b.store.Revision()
	newValue := b.Value()
	newAssetID := persistedID(b.asset)
	b.logger.Info("field.commit",
		"block_id", blockID,
		"field", b.name,
		"asset", b.asset.Key().String(),
		"old_revision", lastRevision,
		"new_revision", newRevision,
	)

	if b.events != nil && b.events.Enabled() {
		b.events.Fire(&AssetChangeEvent{
			blockID:     blockID,
			field:       b.name,
			oldValue:    oldValue,
			newValue:    newValue,
			oldRevision: lastRevision,
			newRevision: newRevision,
			oldAssetID:  oldAssetID,
			newAssetID:  newAssetID,
			store:       b.store,
			workspace:   b.workspace,
			sink:        b.events,
		})
	}
	return nil
}

func persistedID(asset *assets.Asset) string {
	if asset == nil || asset.IsTemporary() {
		return ""
	}
	return asset.ID
}
