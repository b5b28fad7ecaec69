package interfaces

import "context"

// Logger is the leveled logger every package logs through. Its method set
// matches github.com/goliatone/go-logger so a glog logger fits after a thin
// adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can carry structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// LoggerProvider hands out loggers by module name.
type LoggerProvider interface {
	GetLogger(name string) Logger
}
