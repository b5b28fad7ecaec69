package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-assetfield/internal/logging"
	"github.com/goliatone/go-assetfield/pkg/interfaces"
)

// RootModule prefixes short focus names such as "fields" or "store".
const RootModule = "assetfield"

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus restricts output to the named modules. Short names are
	// expanded under RootModule.
	Focus []string
}

// Provider hands out go-logger children keyed by module name. Children are
// built once and reused.
type Provider struct {
	root *glog.BaseLogger

	mu       sync.Mutex
	children map[string]interfaces.Logger
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// NewProvider constructs a logger provider backed by go-logger. An empty
// format selects JSON output.
func NewProvider(cfg Config) (*Provider, error) {
	var options []glog.Option
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("gologger: unsupported format %q", cfg.Format)
	}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := FocusModules(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root, children: make(map[string]interfaces.Logger)}, nil
}

// FocusModules trims, expands and de-duplicates focus entries.
func FocusModules(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name != RootModule && !strings.HasPrefix(name, RootModule+".") {
			name = RootModule + "." + name
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// GetLogger returns the child logger for module name. A blank name returns
// the root logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return wrap(p.root)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if child, ok := p.children[name]; ok {
		return child
	}
	child := wrap(p.root.GetLogger(name))
	p.children[name] = child
	return child
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

// adapter narrows glog.Logger to interfaces.Logger and keeps structured
// fields working for loggers without glog.FieldsLogger.
type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	switch inner := l.inner.(type) {
	case glog.FieldsLogger:
		return wrap(inner.WithFields(maps.Clone(fields)))
	case interface{ With(...any) *glog.BaseLogger }:
		keys := slices.Sorted(maps.Keys(fields))
		args := make([]any, 0, len(keys)*2)
		for _, key := range keys {
			args = append(args, key, fields[key])
		}
		return wrap(inner.With(args...))
	default:
		return l
	}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}
