package logging_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

type captureLogger struct {
	tags []map[string]any
}

func (c *captureLogger) Trace(string, ...any) {}
func (c *captureLogger) Debug(string, ...any) {}
func (c *captureLogger) Info(string, ...any)  {}
func (c *captureLogger) Warn(string, ...any)  {}
func (c *captureLogger) Error(string, ...any) {}
func (c *captureLogger) Fatal(string, ...any) {}

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	c.tags = append(c.tags, fields)
	return c
}

func (c *captureLogger) WithContext(context.Context) interfaces.Logger { return c }

// plainLogger lacks WithFields.
type plainLogger struct{}

func (plainLogger) Trace(string, ...any)                            {}
func (plainLogger) Debug(string, ...any)                            {}
func (plainLogger) Info(string, ...any)                             {}
func (plainLogger) Warn(string, ...any)                             {}
func (plainLogger) Error(string, ...any)                            {}
func (plainLogger) Fatal(string, ...any)                            {}
func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }

type providerFunc func(string) interfaces.Logger

func (f providerFunc) GetLogger(name string) interfaces.Logger { return f(name) }

func TestModuleLoggerTagsModule(t *testing.T) {
	capture := &captureLogger{}
	var requested []string
	provider := providerFunc(func(name string) interfaces.Logger {
		requested = append(requested, name)
		return capture
	})

	logging.StoreLogger(provider)
	logging.FieldLogger(provider)
	logging.ModuleLogger(provider, "  ")

	want := []string{logging.StoreModule, logging.FieldsModule, logging.RootModule}
	if len(requested) != len(want) {
		t.Fatalf("expected %v, got %v", want, requested)
	}
	for i, name := range want {
		if requested[i] != name || capture.tags[i]["module"] != name {
			t.Fatalf("expected module %s at %d, got request %s tags %v", name, i, requested[i], capture.tags[i])
		}
	}
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	nilProvider := providerFunc(func(string) interfaces.Logger { return nil })
	for _, provider := range []interfaces.LoggerProvider{nil, nilProvider} {
		logger := logging.ModuleLogger(provider, logging.FieldsModule)
		if logger == nil {
			t.Fatalf("expected a logger")
		}
		logger.WithContext(context.Background()).Info("dropped")
	}
}

func TestWithFieldsCopiesAndSkips(t *testing.T) {
	capture := &captureLogger{}
	fields := map[string]any{"field": "sprite"}
	logging.WithFields(capture, fields)
	fields["field"] = "mutated"
	if capture.tags[0]["field"] != "sprite" {
		t.Fatalf("expected a private copy, got %v", capture.tags[0])
	}

	logging.WithFields(capture, nil)
	if len(capture.tags) != 1 {
		t.Fatalf("expected empty fields to be skipped")
	}

	plain := plainLogger{}
	if logging.WithFields(plain, fields) != interfaces.Logger(plain) {
		t.Fatalf("expected loggers without WithFields to pass through")
	}
}
