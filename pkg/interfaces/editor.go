package interfaces

import "github.com/goliatone/go-assetfield/internal/assets"

// EditorSession is one showing of an embedded asset editor. Sessions are
// completed through the OnHide callback, never by blocking.
type EditorSession interface {
	Show()
	OnHide(cb func())
	// Result returns the edited asset, or nil when the user cancelled.
	Result() *assets.Asset
	PersistentData() any
	RestorePersistentData(data any)
}

// EditorRequest describes the editor a field wants to open.
type EditorRequest struct {
	Kind          string
	Asset         *assets.Asset
	InitWidth     int
	InitHeight    int
	DisableResize bool
	Filter        string
}

// EditorCatalog resolves editor kinds to sessions. The boolean is false when
// no editor is registered for the requested kind.
type EditorCatalog interface {
	Session(req EditorRequest) (EditorSession, bool)
}
