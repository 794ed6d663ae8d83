// Package formula provides the injected registry of named pure numeric
// functions used by systems, plus the frozen coefficient set that tunes
// them.
package formula

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Get for unknown formula names. A miss is an
// expected condition for callers probing optional formulas; systems that
// require a formula translate it into a tick-fatal configuration error.
var ErrNotFound = errors.New("formula not registered")

// Func is a pure numeric function. Argument order is documented per name;
// implementations must be deterministic and side-effect free.
type Func func(args ...float64) float64

// Registry maps formula names to functions. Each simulation run owns its
// own registry; there is no process-wide default.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds or hot-swaps a formula under the given name.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Get looks up a formula by name.
func (r *Registry) Get(name string) (Func, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return fn, nil
}

// List returns all registered names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
