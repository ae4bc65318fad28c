// Package slots bounds the number of simultaneously outstanding requests.
package slots

import "context"

// Release returns a reserved slot. It is safe to call once per reservation.
type Release = func(ctx context.Context) error

// Slots grants in-flight slots to row workers.
type Slots interface {
	// Reserve blocks until a slot is available or the context is done.
	Reserve(ctx context.Context) (Release, error)
	// Close releases backing resources.
	Close() error
}

// Noop grants slots unconditionally.
var Noop Slots = noopSlots{}

type noopSlots struct{}

func (noopSlots) Reserve(ctx context.Context) (Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return func(context.Context) error { return nil }, nil
}

func (noopSlots) Close() error { return nil }
