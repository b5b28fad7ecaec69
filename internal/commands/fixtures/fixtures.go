package fixtures

import (
	"github.com/goliatone/go-assetfield/internal/di"
	command "github.com/goliatone/go-command"
)

// Registry records handlers passed to di.CommandRegistry. A non-nil Err
// fails every registration.
type Registry struct {
	Handlers []any
	Err      error
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// Dispatcher records handlers passed to di.CommandDispatcher and hands
// back subscriptions that remember being released.
type Dispatcher struct {
	Subscriptions []*Subscription
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) RegisterCommand(handler any) (di.CommandSubscription, error) {
	sub := &Subscription{Handler: handler}
	d.Subscriptions = append(d.Subscriptions, sub)
	return sub, nil
}

// Released reports whether every subscription was released.
func (d *Dispatcher) Released() bool {
	for _, sub := range d.Subscriptions {
		if !sub.Unsubscribed {
			return false
		}
	}
	return true
}

type Subscription struct {
	Handler      any
	Unsubscribed bool
}

func (s *Subscription) Unsubscribe() {
	s.Unsubscribed = true
}

// Schedule is one handler registered with a cron runner.
type Schedule struct {
	Config  command.HandlerConfig
	Handler any
}

// Cron collects schedules through Registrar.
type Cron struct {
	Schedules []Schedule
}

func (c *Cron) Registrar() di.CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		c.Schedules = append(c.Schedules, Schedule{Config: cfg, Handler: handler})
		return nil
	}
}

// Find returns the first handler of type T.
func Find[T any](handlers []any) (T, bool) {
	for _, handler := range handlers {
		if typed, ok := handler.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}
