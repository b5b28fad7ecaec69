package editor

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// Factory builds a session for an editor request.
type Factory func(req interfaces.EditorRequest) interfaces.EditorSession

// Catalog maps editor kinds to session factories.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

var _ interfaces.EditorCatalog = (*Catalog)(nil)

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// Register installs factory for kind, replacing any previous factory.
func (c *Catalog) Register(kind string, factory Factory) {
	if c == nil || factory == nil {
		return
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.factories == nil {
		c.factories = make(map[string]Factory)
	}
	c.factories[kind] = factory
}

// Unregister removes the factory for kind.
func (c *Catalog) Unregister(kind string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.factories, strings.TrimSpace(kind))
}

// Kinds lists the registered editor kinds.
func (c *Catalog) Kinds() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0, len(c.factories))
	for kind := range c.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Session builds a session for req. The boolean is false when no factory is
// registered for req.Kind or the factory declined the request.
func (c *Catalog) Session(req interfaces.EditorRequest) (interfaces.EditorSession, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	factory, ok := c.factories[req.Kind]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	session := factory(req)
	if session == nil {
		return nil, false
	}
	return session, true
}
