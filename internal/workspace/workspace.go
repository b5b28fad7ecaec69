package workspace

import (
	"errors"
	"slices"
	"sort"

	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

var (
	ErrBlockExists   = errors.New("workspace: block already exists")
	ErrBlockNotFound = errors.New("workspace: block not found")
)

// Field is a value holder attached to a block field. Asset field bindings
// satisfy it.
type Field = interfaces.Field

// Option customises a Workspace.
type Option func(*Workspace)

// Headless marks the workspace as not rendered. Blocks in a headless
// workspace are never live.
func Headless() Option {
	return func(w *Workspace) {
		w.rendered = false
	}
}

// WithEventLog shares an event log between workspaces.
func WithEventLog(log *EventLog) Option {
	return func(w *Workspace) {
		if log != nil {
			w.events = log
		}
	}
}

// Workspace is a minimal block host: it owns blocks, answers liveness
// questions and carries the undo event log.
type Workspace struct {
	blocks   map[string]*Block
	rendered bool
	events   *EventLog
}

var _ interfaces.Workspace = (*Workspace)(nil)

// New constructs an empty rendered workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		blocks:   make(map[string]*Block),
		rendered: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.events == nil {
		w.events = NewEventLog()
	}
	return w
}

// Events returns the workspace event log.
func (w *Workspace) Events() *EventLog {
	return w.events
}

// Rendered reports whether the workspace is rendered.
func (w *Workspace) Rendered() bool {
	return w.rendered
}

// AddBlock creates a block with the given id.
func (w *Workspace) AddBlock(id string, opts ...BlockOption) (*Block, error) {
	if _, exists := w.blocks[id]; exists {
		return nil, ErrBlockExists
	}
	b := newBlock(w, id)
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	w.blocks[id] = b
	return b, nil
}

// Block returns the concrete block for id.
func (w *Workspace) Block(id string) (*Block, bool) {
	b, ok := w.blocks[id]
	return b, ok
}

// BlockByID implements interfaces.Workspace.
func (w *Workspace) BlockByID(id string) (interfaces.Block, bool) {
	b, ok := w.blocks[id]
	if !ok {
		return nil, false
	}
	return b, true
}

// IsBlockLive reports whether id names a block attached to this rendered
// workspace outside any flyout.
func (w *Workspace) IsBlockLive(id string) bool {
	b, ok := w.blocks[id]
	return ok && w.rendered && !b.inFlyout
}

// BlockIDs lists block ids in sorted order.
func (w *Workspace) BlockIDs() []string {
	ids := make([]string, 0, len(w.blocks))
	for id := range w.blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DeleteBlock detaches the block and disposes its fields. Children are
// detached from the deleted parent.
func (w *Workspace) DeleteBlock(id string) error {
	b, ok := w.blocks[id]
	if !ok {
		return ErrBlockNotFound
	}
	delete(w.blocks, id)
	for _, other := range w.blocks {
		if other.parent == b {
			other.parent = nil
		}
	}
	b.dispose()
	return nil
}

// Dispose tears the workspace down. Blocks stay registered while their
// fields are disposed, so field teardown sees them as live.
func (w *Workspace) Dispose() {
	for _, id := range w.BlockIDs() {
		w.blocks[id].dispose()
	}
	w.blocks = make(map[string]*Block)
}

// BlockOption customises a new block.
type BlockOption func(*Block)

// InFlyout places the block in a toolbox flyout.
func InFlyout() BlockOption {
	return func(b *Block) {
		b.inFlyout = true
	}
}

// WithParent attaches the block under parent.
func WithParent(parent *Block) BlockOption {
	return func(b *Block) {
		b.parent = parent
	}
}

// WithNumber seeds a numeric input on the block.
func WithNumber(input string, value float64) BlockOption {
	return func(b *Block) {
		b.numbers[input] = value
	}
}

// WithData seeds the out-of-band data for a field, as a pasted or loaded
// block would carry.
func WithData(field, value string) BlockOption {
	return func(b *Block) {
		b.data[field] = value
	}
}

// Block is a workspace block with named fields and numeric inputs.
type Block struct {
	id        string
	workspace *Workspace
	inFlyout  bool
	parent    *Block
	numbers   map[string]float64
	values    map[string]string
	data      map[string]string
	fields    map[string]Field
	order     []string
	disposed  bool
}

var (
	_ interfaces.Block     = (*Block)(nil)
	_ interfaces.FieldHost = (*Block)(nil)
)

func newBlock(w *Workspace, id string) *Block {
	return &Block{
		id:        id,
		workspace: w,
		numbers:   make(map[string]float64),
		values:    make(map[string]string),
		data:      make(map[string]string),
		fields:    make(map[string]Field),
	}
}

func (b *Block) ID() string            { return b.id }
func (b *Block) InFlyout() bool        { return b.inFlyout }
func (b *Block) Disposed() bool        { return b.disposed }
func (b *Block) Parent() *Block        { return b.parent }
func (b *Block) Workspace() *Workspace { return b.workspace }

// Data returns the out-of-band string for field.
func (b *Block) Data(field string) string {
	return b.data[field]
}

// SetData stores the out-of-band string for field. An empty value clears it.
func (b *Block) SetData(field, value string) {
	if value == "" {
		delete(b.data, field)
		return
	}
	b.data[field] = value
}

// AttachField binds f to name. The field keeps its own value from then on.
func (b *Block) AttachField(name string, f Field) {
	if _, exists := b.fields[name]; !exists {
		b.order = append(b.order, name)
	}
	b.fields[name] = f
}

// Field returns the field attached under name.
func (b *Block) Field(name string) (Field, bool) {
	f, ok := b.fields[name]
	return f, ok
}

// FieldValue returns the attached field's value or the plain stored value.
func (b *Block) FieldValue(field string) string {
	if f, ok := b.fields[field]; ok {
		return f.Value()
	}
	return b.values[field]
}

// SetFieldValue routes the value to the attached field when there is one.
func (b *Block) SetFieldValue(field, value string) {
	if f, ok := b.fields[field]; ok {
		f.SetValue(value)
		return
	}
	b.values[field] = value
}

// Number reads a numeric input on the block itself.
func (b *Block) Number(input string) (float64, bool) {
	v, ok := b.numbers[input]
	return v, ok
}

// SetNumber writes a numeric input on the block itself.
func (b *Block) SetNumber(input string, value float64) {
	b.numbers[input] = value
}

// ParentNumber reads a numeric input on the parent block.
func (b *Block) ParentNumber(input string) (float64, bool) {
	if b.parent == nil {
		return 0, false
	}
	return b.parent.Number(input)
}

// SetParentNumber writes a numeric input on the parent block when the parent
// declares that input.
func (b *Block) SetParentNumber(input string, value float64) bool {
	if b.parent == nil {
		return false
	}
	if _, ok := b.parent.numbers[input]; !ok {
		return false
	}
	b.parent.numbers[input] = value
	return true
}

func (b *Block) dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for _, name := range slices.Clone(b.order) {
		b.fields[name].Dispose()
	}
}
