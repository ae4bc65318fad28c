package slots

import (
	"context"
	"fmt"
)

// localSlots is an in-process semaphore over a token channel.
type localSlots struct {
	tokens chan struct{}
}

// NewLocal creates an in-process slot pool with the given capacity.
func NewLocal(capacity int) (Slots, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("slot capacity must be positive, got %d", capacity)
	}
	tokens := make(chan struct{}, capacity)
	for i := 0; i < capacity; i++ {
		tokens <- struct{}{}
	}
	return &localSlots{tokens: tokens}, nil
}

func (l *localSlots) Reserve(ctx context.Context) (Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.tokens:
	}
	released := make(chan struct{}, 1)
	return func(context.Context) error {
		select {
		case released <- struct{}{}:
			l.tokens <- struct{}{}
		default:
		}
		return nil
	}, nil
}

func (l *localSlots) Close() error { return nil }
