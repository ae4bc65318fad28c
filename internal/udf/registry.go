package udf

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rowpost/pkg/rowbridge"
)

// RowFunc is a row-level user function: invoked once per row with the payload
// column as its sole argument, returning a typed result.
type RowFunc func(ctx context.Context, payload []byte) rowbridge.Result

// Registry stores row functions keyed by name.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]RowFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]RowFunc{}}
}

// Register adds a row function under a name. Duplicate names are rejected.
func (r *Registry) Register(name string, fn RowFunc) error {
	if name == "" {
		return fmt.Errorf("udf: function name is required")
	}
	if fn == nil {
		return fmt.Errorf("udf: function %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("udf: function %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// Lookup returns the row function for a name, if present.
func (r *Registry) Lookup(name string) (RowFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns all registered function names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HTTPPostFunc adapts a bridge into a row function.
func HTTPPostFunc(bridge *rowbridge.Bridge) RowFunc {
	return bridge.Invoke
}

// StringFunc wraps a row function into the single-textual-column contract
// used when embedding into a host that expects string in, string out.
func StringFunc(fn RowFunc) func(ctx context.Context, value string) (string, error) {
	return func(ctx context.Context, value string) (string, error) {
		result := fn(ctx, []byte(value))
		return result.Summary(), nil
	}
}
