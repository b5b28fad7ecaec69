package store

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

var (
	ErrAssetRequired = errors.New("store: asset required")
	ErrAssetInvalid  = errors.New("store: asset type or payload invalid")
)

const defaultUndoLimit = 100

// Option customises a Store.
type Option func(*Store)

// WithLogger injects the logger used for store diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithUndoLimit caps how many change sets are retained. Zero or less keeps
// the default.
func WithUndoLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.undoLimit = limit
		}
	}
}

// Store is an in-memory, revision-numbered asset repository. Content changes
// (payload, display name, persisted assets appearing or disappearing) advance
// the revision and are journaled for Undo/Redo. Owner bookkeeping and the
// registration or removal of temporary assets do not.
type Store struct {
	mu sync.RWMutex

	assets    map[assets.Key]*assets.Asset
	names     map[assets.Type]map[string]string
	listeners map[assets.Key][]interfaces.ChangeListener
	reserved  map[assets.Key]struct{}

	revision       int
	nextRevision   int
	nextInternalID int

	undo      []*changeSet
	redo      []*changeSet
	sealed    bool
	undoLimit int

	logger interfaces.Logger
}

var _ interfaces.AssetStore = (*Store)(nil)

type changeSet struct {
	before    map[assets.Key]*assets.Asset
	after     map[assets.Key]*assets.Asset
	order     []assets.Key
	revBefore int
	revAfter  int
}

type notification struct {
	key       assets.Key
	asset     *assets.Asset
	listeners []interfaces.ChangeListener
}

// New constructs an empty store at revision zero.
func New(opts ...Option) *Store {
	s := &Store{
		assets:    make(map[assets.Key]*assets.Asset),
		names:     make(map[assets.Type]map[string]string),
		listeners: make(map[assets.Key][]interfaces.ChangeListener),
		reserved:  make(map[assets.Key]struct{}),
		sealed:    true,
		undoLimit: defaultUndoLimit,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// LookupAsset returns a snapshot of the asset stored under (t, id).
func (s *Store) LookupAsset(t assets.Type, id string) *assets.Asset {
	if id == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets[assets.Key{Type: t, ID: id}].Clone()
}

// LookupAssetByName finds a persisted asset by display name. Names are
// compared in slug-normalized form.
func (s *Store) LookupAssetByName(t assets.Type, name string) *assets.Asset {
	normalized := normalizeName(name)
	if normalized == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.names[t][normalized]
	if !ok {
		return nil
	}
	return s.assets[assets.Key{Type: t, ID: id}].Clone()
}

// List returns snapshots of every asset of type t, ordered by id.
func (s *Store) List(t assets.Type) []*assets.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*assets.Asset, 0)
	for key, asset := range s.assets {
		if key.Type == t {
			out = append(out, asset.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *assets.Asset) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Revision returns the revision of the current store state.
func (s *Store) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo) > 0
}

// UpdateAsset stores a snapshot of asset and returns the stored copy.
// Persisted assets receive an internal id on first registration; temporary
// assets always keep the unregistered marker.
func (s *Store) UpdateAsset(asset *assets.Asset) *assets.Asset {
	if asset == nil {
		return nil
	}
	if err := asset.Validate(); err != nil || asset.ID == "" {
		s.logger.Warn("store.update.invalid", "asset", asset.Key().String())
		return nil
	}

	s.mu.Lock()
	key := asset.Key()
	existing := s.assets[key]
	stored := asset.Clone()

	if stored.IsPersisted() {
		switch {
		case existing != nil && existing.InternalID != assets.UnregisteredInternalID:
			stored.InternalID = existing.InternalID
		case stored.InternalID == assets.UnregisteredInternalID:
			s.nextInternalID++
			stored.InternalID = s.nextInternalID
		}
		stored.Meta.DisplayName = s.availableName(key, stored.Meta.DisplayName)
	} else {
		stored.InternalID = assets.UnregisteredInternalID
	}

	changed := contentChanged(existing, stored)
	if changed {
		s.record(key, existing, stored)
	}
	s.put(key, existing, stored)

	var notes []notification
	if changed {
		notes = s.collect(key)
	}
	result := stored.Clone()
	s.mu.Unlock()

	s.notify(notes)
	return result
}

// RemoveAsset deletes the asset stored under the same key as asset.
func (s *Store) RemoveAsset(asset *assets.Asset) {
	if asset == nil {
		return
	}
	s.mu.Lock()
	key := asset.Key()
	existing, ok := s.assets[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	changed := existing.IsPersisted()
	if changed {
		s.record(key, existing, nil)
	}
	s.put(key, existing, nil)

	var notes []notification
	if changed {
		notes = s.collect(key)
	}
	s.mu.Unlock()

	s.notify(notes)
}

// GenerateNewID returns an unused persisted id for type t. The id is reserved
// so consecutive calls never collide.
func (s *Store) GenerateNewID(t assets.Type) string {
	info, err := assets.Describe(t)
	if err != nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for index := 1; ; index++ {
		key := assets.Key{Type: t, ID: info.IDPrefix + strconv.Itoa(index)}
		if _, taken := s.assets[key]; taken {
			continue
		}
		if _, taken := s.reserved[key]; taken {
			continue
		}
		s.reserved[key] = struct{}{}
		return key.ID
	}
}

// PushUndo seals the current change set.
func (s *Store) PushUndo() {
	s.mu.Lock()
	s.sealed = true
	s.mu.Unlock()
}

// Undo reverts the most recent change set and restores its starting revision.
func (s *Store) Undo() {
	s.mu.Lock()
	s.sealed = true
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return
	}
	cs := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, cs)
	notes := s.apply(cs, cs.before)
	s.revision = cs.revBefore
	s.logger.Debug("store.undo", "revision", s.revision)
	s.mu.Unlock()

	s.notify(notes)
}

// Redo reapplies the most recently undone change set.
func (s *Store) Redo() {
	s.mu.Lock()
	s.sealed = true
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return
	}
	cs := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, cs)
	notes := s.apply(cs, cs.after)
	s.revision = cs.revAfter
	s.logger.Debug("store.redo", "revision", s.revision)
	s.mu.Unlock()

	s.notify(notes)
}

// AddChangeListener subscribes listener to changes of asset.
func (s *Store) AddChangeListener(asset *assets.Asset, listener interfaces.ChangeListener) {
	if asset == nil || listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := asset.Key()
	if slices.Contains(s.listeners[key], listener) {
		return
	}
	s.listeners[key] = append(s.listeners[key], listener)
}

// RemoveChangeListener drops listener from every asset of type t.
func (s *Store) RemoveChangeListener(t assets.Type, listener interfaces.ChangeListener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, list := range s.listeners {
		if key.Type != t {
			continue
		}
		filtered := slices.DeleteFunc(slices.Clone(list), func(l interfaces.ChangeListener) bool { return l == listener })
		if len(filtered) == 0 {
			delete(s.listeners, key)
			continue
		}
		s.listeners[key] = filtered
	}
}

// ListenerCount reports how many listeners are subscribed to key.
func (s *Store) ListenerCount(key assets.Key) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners[key])
}

// register stores asset without touching revision or undo history. An
// asset already in the store keeps its owners and internal id, and its
// listeners hear about content that differs.
func (s *Store) register(asset *assets.Asset) {
	s.mu.Lock()
	key := asset.Key()
	existing := s.assets[key]
	stored := asset.Clone()
	if existing != nil {
		stored.Meta.BlockIDs = slices.Clone(existing.Meta.BlockIDs)
		if existing.InternalID != assets.UnregisteredInternalID {
			stored.InternalID = existing.InternalID
		}
	}
	if stored.IsPersisted() {
		if stored.InternalID == assets.UnregisteredInternalID {
			s.nextInternalID++
			stored.InternalID = s.nextInternalID
		}
		stored.Meta.DisplayName = s.availableName(key, stored.Meta.DisplayName)
	}
	changed := existing != nil && !assets.Equal(existing, stored)
	s.put(key, existing, stored)

	var notes []notification
	if changed {
		notes = s.collect(key)
	}
	s.mu.Unlock()

	s.notify(notes)
}

// availableName returns name, or name with the lowest numeric suffix from 2
// up, so no other asset of the same type shares its normalized form.
func (s *Store) availableName(key assets.Key, name string) string {
	index := s.names[key.Type]
	taken := func(candidate string) bool {
		holder, ok := index[normalizeName(candidate)]
		return ok && holder != key.ID
	}
	if !taken(name) {
		return name
	}
	for suffix := 2; ; suffix++ {
		candidate := name + strconv.Itoa(suffix)
		if !taken(candidate) {
			s.logger.Debug("store.name.renamed", "asset", key.String(), "requested", name, "assigned", candidate)
			return candidate
		}
	}
}

// record journals a content change into the open change set, opening a new
// one (and a new revision) when the previous set is sealed.
func (s *Store) record(key assets.Key, before, after *assets.Asset) {
	if s.sealed || len(s.undo) == 0 {
		s.nextRevision++
		cs := &changeSet{
			before:    make(map[assets.Key]*assets.Asset),
			after:     make(map[assets.Key]*assets.Asset),
			revBefore: s.revision,
			revAfter:  s.nextRevision,
		}
		s.undo = append(s.undo, cs)
		if len(s.undo) > s.undoLimit {
			s.undo = slices.Delete(s.undo, 0, len(s.undo)-s.undoLimit)
		}
		s.redo = nil
		s.sealed = false
		s.revision = cs.revAfter
	}
	cs := s.undo[len(s.undo)-1]
	if _, seen := cs.before[key]; !seen {
		cs.before[key] = before.Clone()
		cs.order = append(cs.order, key)
	}
	cs.after[key] = after.Clone()
}

// apply restores the per-key states in target and returns the notifications
// to deliver once the lock is released.
func (s *Store) apply(cs *changeSet, target map[assets.Key]*assets.Asset) []notification {
	notes := make([]notification, 0, len(cs.order))
	for _, key := range cs.order {
		current := s.assets[key]
		state := target[key].Clone()
		// a temporary asset its owner already dropped stays dropped
		if current == nil && state != nil && state.IsTemporary() {
			continue
		}
		// owner lists are live bookkeeping, not history
		if state != nil && current != nil {
			state.Meta.BlockIDs = slices.Clone(current.Meta.BlockIDs)
		}
		s.put(key, current, state)
		notes = append(notes, s.collect(key)...)
	}
	return notes
}

// put replaces the stored asset under key and keeps the name index in sync.
func (s *Store) put(key assets.Key, previous, next *assets.Asset) {
	if previous != nil && previous.IsPersisted() {
		name := normalizeName(previous.Meta.DisplayName)
		if index := s.names[key.Type]; index != nil && index[name] == key.ID {
			delete(index, name)
		}
	}
	if next == nil {
		delete(s.assets, key)
		return
	}
	s.assets[key] = next
	delete(s.reserved, key)
	if next.IsPersisted() {
		index := s.names[key.Type]
		if index == nil {
			index = make(map[string]string)
			s.names[key.Type] = index
		}
		name := normalizeName(next.Meta.DisplayName)
		// a name held by another live asset is never taken over
		if holder, ok := index[name]; ok && holder != key.ID {
			if _, live := s.assets[assets.Key{Type: key.Type, ID: holder}]; live {
				return
			}
		}
		index[name] = key.ID
	}
}

func (s *Store) collect(key assets.Key) []notification {
	listeners := s.listeners[key]
	if len(listeners) == 0 {
		return nil
	}
	return []notification{{
		key:       key,
		asset:     s.assets[key].Clone(),
		listeners: slices.Clone(listeners),
	}}
}

func (s *Store) notify(notes []notification) {
	for _, note := range notes {
		for _, listener := range note.listeners {
			listener.OnAssetChanged(note.key, note.asset.Clone())
		}
	}
}

func contentChanged(existing, next *assets.Asset) bool {
	if existing == nil {
		return next.IsPersisted()
	}
	return !assets.Equal(existing, next)
}

func normalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if normalized, err := slug.Normalize(trimmed); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(trimmed)
}
