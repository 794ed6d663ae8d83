// Package observer provides the passive-watcher protocol: external
// components (metrics, narration, UI refresh) react to tick-boundary state
// transitions without being able to alter simulation state, and without
// their failures reaching the engine.
package observer

import (
	"fmt"
	"log/slog"
	"time"

	"histmat/internal/config"
	"histmat/internal/world"
)

// Observer receives lifecycle notifications. Both snapshots passed to
// OnTick are shared read-only values; retaining them is safe. Returned
// errors are logged and swallowed by the notifier — an observer can never
// abort a tick.
type Observer interface {
	OnSimulationStart(initial *world.State, cfg config.Config) error
	OnTick(prev, next *world.State) error
	OnSimulationEnd(final *world.State) error
}

// Notifier fans lifecycle notifications out to registered observers in
// registration order. Every hook call is isolated: panics are recovered,
// errors are logged and discarded, and a hook that blocks longer than the
// timeout is abandoned so a slow external call (an LLM, a network sink)
// cannot stall the tick loop.
type Notifier struct {
	observers []Observer
	timeout   time.Duration
	logger    *slog.Logger

	// Strict re-panics on observer panic. For the engine's own tests
	// only; production keeps the swallow-always contract.
	Strict bool
}

// DefaultTimeout bounds a single observer hook call.
const DefaultTimeout = 5 * time.Second

// NewNotifier creates a notifier. A zero timeout falls back to
// DefaultTimeout; a nil logger to slog.Default.
func NewNotifier(timeout time.Duration, logger *slog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{timeout: timeout, logger: logger}
}

// Register appends an observer. Notification order is registration order.
func (n *Notifier) Register(o Observer) {
	n.observers = append(n.observers, o)
}

// Count returns the number of registered observers.
func (n *Notifier) Count() int { return len(n.observers) }

// NotifyStart invokes OnSimulationStart on every observer.
func (n *Notifier) NotifyStart(initial *world.State, cfg config.Config) {
	for _, o := range n.observers {
		n.call("on_simulation_start", func(o Observer) error {
			return o.OnSimulationStart(initial, cfg)
		}, o)
	}
}

// NotifyTick invokes OnTick on every observer, strictly after the new
// snapshot has been committed to history.
func (n *Notifier) NotifyTick(prev, next *world.State) {
	for _, o := range n.observers {
		n.call("on_tick", func(o Observer) error {
			return o.OnTick(prev, next)
		}, o)
	}
}

// NotifyEnd invokes OnSimulationEnd on every observer.
func (n *Notifier) NotifyEnd(final *world.State) {
	for _, o := range n.observers {
		n.call("on_simulation_end", func(o Observer) error {
			return o.OnSimulationEnd(final)
		}, o)
	}
}

// call runs one hook on its own goroutine with panic recovery and a
// deadline. An abandoned hook's goroutine finishes in the background; its
// late result is dropped.
func (n *Notifier) call(hook string, fn func(Observer) error, o Observer) {
	done := make(chan error, 1)
	panicked := make(chan any, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked <- r
			}
		}()
		done <- fn(o)
	}()

	timer := time.NewTimer(n.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			n.logger.Warn("observer hook failed", "hook", hook, "observer", observerName(o), "error", err)
		}
	case r := <-panicked:
		n.logger.Error("observer hook panicked", "hook", hook, "observer", observerName(o), "panic", r)
		if n.Strict {
			panic(r)
		}
	case <-timer.C:
		n.logger.Warn("observer hook timed out", "hook", hook, "observer", observerName(o), "timeout", n.timeout)
	}
}

func observerName(o Observer) string {
	type named interface{ Name() string }
	if n, ok := o.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", o)
}
