package gologger

import (
	"context"
	"slices"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

func TestNewProviderReusesModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	store := p.GetLogger("assetfield.store")
	if store == nil {
		t.Fatal("expected logger, got nil")
	}
	if again := p.GetLogger(" assetfield.store "); again != store {
		t.Fatalf("expected the module logger to be reused")
	}
	if p.GetLogger("assetfield.fields") == store {
		t.Fatalf("expected distinct modules to get distinct loggers")
	}
	store.Debug("store.revision", "revision", 1)
}

func TestFocusModulesExpandsShortNames(t *testing.T) {
	got := FocusModules([]string{"fields", " assetfield.store ", "", "assetfield.fields", "assetfield"})
	want := []string{"assetfield.fields", "assetfield.store", "assetfield"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAdapterForwardsLevelsFieldsAndContext(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Trace("field.resolve", "source", "literal")
	adapted.Debug("field.editor.unavailable")
	adapted.Info("field.commit")
	adapted.Warn("field.commit.aborted")
	adapted.Error("store.listener.failed")
	adapted.Fatal("container.failed")

	withFields, ok := adapted.(interfaces.FieldsLogger)
	if !ok {
		t.Fatalf("expected the adapter to carry structured fields")
	}
	fields := map[string]any{"asset": "image:player"}
	if withFields.WithFields(fields) == nil {
		t.Fatal("expected WithFields to return logger")
	}
	fields["asset"] = "image:enemy"
	if len(stub.fields) != 1 || stub.fields[0]["asset"] != "image:player" {
		t.Fatalf("expected a private copy of the fields, got %v", stub.fields)
	}
	if withFields.WithFields(nil) != adapted {
		t.Fatalf("expected empty fields to keep the logger")
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}

	want := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if !slices.Equal(stub.calls, want) {
		t.Fatalf("expected calls %v, got %v", want, stub.calls)
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	logger := p.GetLogger("assetfield.fields")
	if logger == nil {
		t.Fatal("expected no-op logger")
	}
	logger.Info("dropped")
}
