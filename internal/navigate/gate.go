// Package navigate serializes "show another album" requests.
//
// A Gate admits at most one navigation at a time. Requests arriving while
// one is in flight are dropped, not queued, so a swipe immediately followed
// by a click or key press advances exactly once.
//
// The gate never runs the navigation itself. It hands a Task to an Executor
// (the TUI turns it into a tea.Cmd), and the task releases the gate when it
// returns, whether the navigation succeeded, failed or panicked.
package navigate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

var (
	// ErrNavigationFailed wraps every error returned by the wrapped navigation.
	ErrNavigationFailed = errors.New("navigation failed")

	// ErrNavigationPanicked marks a navigation that panicked. It is always
	// reported together with ErrNavigationFailed.
	ErrNavigationPanicked = errors.New("navigation panicked")
)

// Trigger identifies what asked for a navigation.
type Trigger int

const (
	TriggerSwipe Trigger = iota
	TriggerClick
	TriggerKeyboard
	// TriggerStartup loads the first album once the catalog is available.
	TriggerStartup
)

// String implements fmt.Stringer.
func (t Trigger) String() string {
	switch t {
	case TriggerSwipe:
		return "swipe"
	case TriggerClick:
		return "click"
	case TriggerKeyboard:
		return "keyboard"
	case TriggerStartup:
		return "startup"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Navigator performs one navigation and returns what should be displayed.
type Navigator[T any] func(ctx context.Context) (T, error)

// Outcome is the result of one admitted navigation.
type Outcome[T any] struct {
	Trigger Trigger
	Value   T
	Err     error
}

// Task runs an admitted navigation. It must be called exactly once.
type Task[T any] func() Outcome[T]

// Executor schedules tasks handed over by the gate.
type Executor[T any] interface {
	Go(task Task[T])
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc[T any] func(task Task[T])

// Go implements Executor.
func (f ExecutorFunc[T]) Go(task Task[T]) { f(task) }

// Option configures a Gate.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithTimeout bounds each navigation. Zero (the default) means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for dropped and failed navigations.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Gate admits one navigation at a time.
type Gate[T any] struct {
	ctx      context.Context
	navigate Navigator[T]
	exec     Executor[T]
	opts     options

	// inFlight is released from the executor's goroutine.
	inFlight atomic.Bool
}

// NewGate creates a Gate running navigate through exec. ctx is the parent of
// every navigation context; cancelling it is how the application shuts down
// an in-flight navigation.
func NewGate[T any](ctx context.Context, navigate Navigator[T], exec Executor[T], opts ...Option) *Gate[T] {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Gate[T]{
		ctx:      ctx,
		navigate: navigate,
		exec:     exec,
		opts:     o,
	}
}

// Request asks for a navigation. It returns false when the request was
// dropped because another navigation is still in flight.
func (g *Gate[T]) Request(trigger Trigger) bool {
	if !g.inFlight.CompareAndSwap(false, true) {
		g.opts.logger.Debug("navigation dropped", "trigger", trigger, "reason", "in flight")
		return false
	}

	g.opts.logger.Debug("navigation started", "trigger", trigger)
	g.exec.Go(func() Outcome[T] {
		return g.run(trigger)
	})
	return true
}

// InFlight reports whether a navigation is currently running.
func (g *Gate[T]) InFlight() bool {
	return g.inFlight.Load()
}

func (g *Gate[T]) run(trigger Trigger) (out Outcome[T]) {
	out.Trigger = trigger
	started := time.Now()

	defer g.inFlight.Store(false)
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("%w: %w: %v", ErrNavigationFailed, ErrNavigationPanicked, r)
			g.opts.logger.Error("navigation panicked", "trigger", trigger, "panic", r)
		}
	}()

	ctx := g.ctx
	if g.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.timeout)
		defer cancel()
	}

	value, err := g.navigate(ctx)
	if err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrNavigationFailed, err)
		g.opts.logger.Warn("navigation failed", "trigger", trigger, "error", err)
		return out
	}

	out.Value = value
	g.opts.logger.Debug("navigation finished", "trigger", trigger, "elapsed", time.Since(started))
	return out
}
