package workspace_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-assetfield/internal/workspace"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

type stubField struct {
	value    string
	disposed int
}

func (f *stubField) Value() string        { return f.value }
func (f *stubField) SetValue(text string) { f.value = text }
func (f *stubField) Dispose()             { f.disposed++ }

type stubEvent struct {
	blockID string
	record  bool
	null    bool
	runs    []bool
	onRun   func(forward bool)
}

func (e *stubEvent) BlockID() string  { return e.blockID }
func (e *stubEvent) RecordUndo() bool { return e.record }
func (e *stubEvent) IsNull() bool     { return e.null }
func (e *stubEvent) Run(forward bool) {
	e.runs = append(e.runs, forward)
	if e.onRun != nil {
		e.onRun(forward)
	}
}

func TestBlockLiveness(t *testing.T) {
	ws := workspace.New()
	if _, err := ws.AddBlock("a"); err != nil {
		t.Fatalf("add block: %v", err)
	}
	if _, err := ws.AddBlock("flyout", workspace.InFlyout()); err != nil {
		t.Fatalf("add flyout block: %v", err)
	}
	if _, err := ws.AddBlock("a"); !errors.Is(err, workspace.ErrBlockExists) {
		t.Fatalf("expected ErrBlockExists, got %v", err)
	}

	if !ws.IsBlockLive("a") {
		t.Fatalf("expected block a to be live")
	}
	if ws.IsBlockLive("flyout") {
		t.Fatalf("flyout blocks are never live")
	}
	if ws.IsBlockLive("missing") {
		t.Fatalf("unknown blocks are never live")
	}

	headless := workspace.New(workspace.Headless())
	headless.AddBlock("a")
	if headless.IsBlockLive("a") {
		t.Fatalf("headless blocks are never live")
	}
	if _, ok := headless.BlockByID("a"); !ok {
		t.Fatalf("headless blocks are still addressable")
	}
}

func TestFieldRoutingAndDisposal(t *testing.T) {
	ws := workspace.New()
	block, _ := ws.AddBlock("a")
	field := &stubField{}
	block.AttachField("sprite", field)

	block.SetFieldValue("sprite", "img`\n.\n`")
	if field.value != "img`\n.\n`" || block.FieldValue("sprite") != field.value {
		t.Fatalf("expected value routed to the attached field")
	}
	block.SetFieldValue("plain", "x")
	if block.FieldValue("plain") != "x" {
		t.Fatalf("expected plain value stored on the block")
	}

	if err := ws.DeleteBlock("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if field.disposed != 1 || !block.Disposed() {
		t.Fatalf("expected field disposed once")
	}
	if err := ws.DeleteBlock("a"); !errors.Is(err, workspace.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestParentNumbers(t *testing.T) {
	ws := workspace.New()
	parent, _ := ws.AddBlock("parent", workspace.WithNumber("interval", 100))
	child, _ := ws.AddBlock("child", workspace.WithParent(parent))

	if v, ok := child.ParentNumber("interval"); !ok || v != 100 {
		t.Fatalf("expected parent interval 100, got %v %v", v, ok)
	}
	if !child.SetParentNumber("interval", 250) {
		t.Fatalf("expected parent interval write to succeed")
	}
	if v, _ := parent.Number("interval"); v != 250 {
		t.Fatalf("expected parent interval 250, got %v", v)
	}
	if child.SetParentNumber("missing", 1) {
		t.Fatalf("undeclared inputs must not be written")
	}

	ws.DeleteBlock("parent")
	if _, ok := child.ParentNumber("interval"); ok {
		t.Fatalf("expected child detached from deleted parent")
	}
}

func TestEventLogUndoRedo(t *testing.T) {
	log := workspace.NewEventLog()
	var seen []interfaces.Event
	unsubscribe := log.Subscribe(func(ev interfaces.Event) { seen = append(seen, ev) })

	marker := &stubEvent{blockID: "a"}
	recorded := &stubEvent{blockID: "a", record: true}
	recorded.onRun = func(bool) { log.Fire(marker) }

	log.Fire(recorded)
	log.Fire(&stubEvent{blockID: "a", record: true, null: true})
	if log.UndoDepth() != 1 {
		t.Fatalf("expected only the non-null event recorded, got %d", log.UndoDepth())
	}

	if !log.Undo() {
		t.Fatalf("expected undo to run")
	}
	if len(recorded.runs) != 1 || recorded.runs[0] {
		t.Fatalf("expected a backward run, got %v", recorded.runs)
	}
	if log.UndoDepth() != 0 || log.RedoDepth() != 1 {
		t.Fatalf("events fired during replay must not be recorded")
	}
	if !log.Redo() || !recorded.runs[1] {
		t.Fatalf("expected a forward run on redo")
	}
	if len(seen) != 4 {
		t.Fatalf("expected subscribers to see every accepted event, got %d", len(seen))
	}

	unsubscribe()
	log.Disable()
	if log.Enabled() {
		t.Fatalf("expected log disabled")
	}
	log.Fire(&stubEvent{record: true})
	log.Enable()
	if log.UndoDepth() != 1 || len(seen) != 4 {
		t.Fatalf("disabled log must drop events")
	}
}
