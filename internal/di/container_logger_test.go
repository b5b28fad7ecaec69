package di_test

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/di"
	"github.com/goliatone/go-assetfield/internal/runtimeconfig"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

func TestContainerLogsThroughInjectedProvider(t *testing.T) {
	rec := newRecordingProvider()
	h := newContainerHarness(t, runtimeconfig.DefaultConfig(), di.WithLoggerProvider(rec))

	entry := rec.find("container.configured")
	if entry == nil {
		t.Fatalf("expected container.configured log entry, got %#v", rec.entries)
	}
	if got := entry.fields["storage"]; got != "memory" {
		t.Fatalf("expected storage field to be memory, got %v", got)
	}
	if got := entry.fields["module"]; got != "assetfield.di" {
		t.Fatalf("expected module field to be assetfield.di, got %v", got)
	}

	binding := h.bind(t, "block-1", assets.TypeImage)
	h.promote(t, binding, "hero")

	commit := rec.find("field.commit")
	if commit == nil {
		t.Fatalf("expected field.commit log entry")
	}
	if got := commit.fields["module"]; got != "assetfield.fields" {
		t.Fatalf("expected module field to be assetfield.fields, got %v", got)
	}
	if got := commit.fields["field"]; got != "sprite" {
		t.Fatalf("expected field name on commit entry, got %v", got)
	}
}

// recordingProvider keeps every entry logged through any module logger.
type recordingProvider struct {
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{provider: p, fields: map[string]any{"logger": name}}
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

var _ interfaces.Logger = (*recordingLogger)(nil)
var _ interfaces.FieldsLogger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("trace", msg, args) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("error", msg, args) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("fatal", msg, args) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &recordingLogger{provider: l.provider, fields: merged}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return l
}

func (l *recordingLogger) log(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok && key != "" {
			fields[key] = args[i+1]
		}
	}
	l.provider.entries = append(l.provider.entries, recordedEntry{level: level, msg: msg, fields: fields})
}
