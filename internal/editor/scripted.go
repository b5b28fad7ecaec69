package editor

import (
	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// Scripted is an EditorSession driven from code instead of a user. It works
// on a private copy of the requested asset; Close publishes that copy as the
// result and Cancel publishes nothing.
type Scripted struct {
	req        interfaces.EditorRequest
	working    *assets.Asset
	result     *assets.Asset
	persistent any
	restored   any
	hooks      []func()
	script     func(*Scripted)
	shown      bool
	hidden     bool
}

var _ interfaces.EditorSession = (*Scripted)(nil)

// NewScripted builds a session for req. script, when set, runs on Show.
func NewScripted(req interfaces.EditorRequest, script func(*Scripted)) *Scripted {
	return &Scripted{
		req:     req,
		working: req.Asset.Clone(),
		script:  script,
	}
}

func (s *Scripted) Show() {
	if s.shown {
		return
	}
	s.shown = true
	if s.script != nil {
		s.script(s)
	}
}

func (s *Scripted) OnHide(cb func()) {
	if cb != nil {
		s.hooks = append(s.hooks, cb)
	}
}

func (s *Scripted) Result() *assets.Asset {
	return s.result.Clone()
}

func (s *Scripted) PersistentData() any {
	return s.persistent
}

func (s *Scripted) RestorePersistentData(data any) {
	s.restored = data
	s.persistent = data
}

// Request returns the request the session was opened with.
func (s *Scripted) Request() interfaces.EditorRequest {
	return s.req
}

// Working exposes the asset under edit.
func (s *Scripted) Working() *assets.Asset {
	return s.working
}

// Edit mutates the asset under edit.
func (s *Scripted) Edit(fn func(asset *assets.Asset)) {
	if fn != nil && s.working != nil {
		fn(s.working)
	}
}

// Rename sets the display name, which promotes a temporary asset on commit.
func (s *Scripted) Rename(name string) {
	if s.working != nil {
		s.working.Meta.DisplayName = name
	}
}

// SetPersistentData records editor UI state to hand back on the next open.
func (s *Scripted) SetPersistentData(data any) {
	s.persistent = data
}

// Restored returns the UI state restored into this session, if any.
func (s *Scripted) Restored() any {
	return s.restored
}

// Shown reports whether Show was called.
func (s *Scripted) Shown() bool { return s.shown }

// Hidden reports whether the session has been closed or cancelled.
func (s *Scripted) Hidden() bool { return s.hidden }

// Close publishes the working copy and hides the session.
func (s *Scripted) Close() {
	s.hide(s.working.Clone())
}

// Cancel hides the session without a result.
func (s *Scripted) Cancel() {
	s.hide(nil)
}

func (s *Scripted) hide(result *assets.Asset) {
	if s.hidden {
		return
	}
	s.hidden = true
	s.result = result
	for _, cb := range s.hooks {
		cb()
	}
}

// Recorder is a factory that remembers every session it builds.
type Recorder struct {
	Script   func(*Scripted)
	Sessions []*Scripted
}

// Factory returns a catalog factory backed by the recorder.
func (r *Recorder) Factory() Factory {
	return func(req interfaces.EditorRequest) interfaces.EditorSession {
		session := NewScripted(req, r.Script)
		r.Sessions = append(r.Sessions, session)
		return session
	}
}

// Last returns the most recent session or nil.
func (r *Recorder) Last() *Scripted {
	if len(r.Sessions) == 0 {
		return nil
	}
	return r.Sessions[len(r.Sessions)-1]
}

// RegisterAll installs factory for every asset editor kind.
func RegisterAll(c *Catalog, factory Factory) {
	for _, t := range assets.Types() {
		info, err := assets.Describe(t)
		if err != nil {
			continue
		}
		c.Register(info.EditorKind, factory)
	}
}
