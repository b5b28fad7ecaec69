package interfaces

// Block is the slice of a host editor block an asset field needs.
type Block interface {
	ID() string
	// InFlyout reports whether the block lives in a toolbox flyout.
	InFlyout() bool
	// Data returns the out-of-band string stored for the named field.
	Data(field string) string
	SetData(field, value string)
	FieldValue(field string) string
	SetFieldValue(field, value string)
	// ParentNumber reads a numeric input on the block's parent, such as an
	// animation interval.
	ParentNumber(input string) (float64, bool)
	SetParentNumber(input string, value float64) bool
}

// Workspace answers lifecycle questions about blocks.
type Workspace interface {
	// IsBlockLive reports whether the block is part of a rendered workspace.
	IsBlockLive(blockID string) bool
	BlockByID(blockID string) (Block, bool)
}

// Event is an entry in the host editor's event log.
type Event interface {
	BlockID() string
	// RecordUndo is false for events that must never enter the undo stack.
	RecordUndo() bool
	IsNull() bool
	Run(forward bool)
}

// EventSink accepts events fired by fields.
type EventSink interface {
	Enabled() bool
	Fire(ev Event)
}

// Field is a value holder attached to a block field.
type Field interface {
	Value() string
	SetValue(text string)
	Dispose()
}

// FieldHost is implemented by blocks that route field values to attached
// fields.
type FieldHost interface {
	AttachField(name string, field Field)
}
