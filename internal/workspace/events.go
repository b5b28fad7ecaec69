package workspace

import (
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// EventLog records fired events and keeps the undo and redo stacks. Events
// fired while an event is being replayed are delivered to subscribers but
// never recorded.
type EventLog struct {
	disabled  int
	replaying bool
	undo      []interfaces.Event
	redo      []interfaces.Event
	fired     []interfaces.Event
	nextSubID int
	subs      map[int]func(interfaces.Event)
	subOrder  []int
}

var _ interfaces.EventSink = (*EventLog)(nil)

// NewEventLog constructs an enabled, empty event log.
func NewEventLog() *EventLog {
	return &EventLog{subs: make(map[int]func(interfaces.Event))}
}

// Enabled reports whether events are currently accepted.
func (l *EventLog) Enabled() bool {
	return l.disabled == 0
}

// Disable suspends event delivery. Calls nest.
func (l *EventLog) Disable() {
	l.disabled++
}

// Enable undoes one Disable call.
func (l *EventLog) Enable() {
	if l.disabled > 0 {
		l.disabled--
	}
}

// Fire records ev. Events that opt out of undo, null events and events
// fired during replay stay off the undo stack.
func (l *EventLog) Fire(ev interfaces.Event) {
	if ev == nil || !l.Enabled() {
		return
	}
	l.fired = append(l.fired, ev)
	if !l.replaying && ev.RecordUndo() && !ev.IsNull() {
		l.undo = append(l.undo, ev)
		l.redo = nil
	}
	for _, id := range l.subOrder {
		if fn, ok := l.subs[id]; ok {
			fn(ev)
		}
	}
}

// Subscribe registers fn for every accepted event and returns a function
// that removes it.
func (l *EventLog) Subscribe(fn func(interfaces.Event)) func() {
	if fn == nil {
		return func() {}
	}
	l.nextSubID++
	id := l.nextSubID
	l.subs[id] = fn
	l.subOrder = append(l.subOrder, id)
	return func() {
		delete(l.subs, id)
	}
}

// Undo replays the most recent recorded event backwards.
func (l *EventLog) Undo() bool {
	if len(l.undo) == 0 {
		return false
	}
	ev := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.replay(ev, false)
	l.redo = append(l.redo, ev)
	return true
}

// Redo replays the most recently undone event forwards.
func (l *EventLog) Redo() bool {
	if len(l.redo) == 0 {
		return false
	}
	ev := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.replay(ev, true)
	l.undo = append(l.undo, ev)
	return true
}

func (l *EventLog) replay(ev interfaces.Event, forward bool) {
	l.replaying = true
	defer func() { l.replaying = false }()
	ev.Run(forward)
}

// UndoDepth reports how many events can be undone.
func (l *EventLog) UndoDepth() int {
	return len(l.undo)
}

// RedoDepth reports how many events can be redone.
func (l *EventLog) RedoDepth() int {
	return len(l.redo)
}

// Fired returns every accepted event in order.
func (l *EventLog) Fired() []interfaces.Event {
	out := make([]interfaces.Event, len(l.fired))
	copy(out, l.fired)
	return out
}
