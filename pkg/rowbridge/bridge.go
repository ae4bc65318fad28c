package rowbridge

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds an invocation when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// DefaultContentType is used when Options.ContentType is empty.
const DefaultContentType = "application/json"

// Options configures a Bridge.
type Options struct {
	Endpoint    string
	ContentType string
	Timeout     time.Duration
}

// Bridge turns one payload into one POST and blocks until a terminal outcome.
type Bridge struct {
	poster      Poster
	endpoint    string
	contentType string
	timeout     time.Duration
}

// New constructs a Bridge around an injected Poster.
func New(poster Poster, opts Options) (*Bridge, error) {
	if poster == nil {
		return nil, errors.New("rowbridge: poster is required")
	}
	if opts.Endpoint == "" {
		return nil, errors.New("rowbridge: endpoint is required")
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bridge{
		poster:      poster,
		endpoint:    opts.Endpoint,
		contentType: contentType,
		timeout:     timeout,
	}, nil
}

// Invoke posts one payload and waits for exactly one of the four outcomes.
func (b *Bridge) Invoke(ctx context.Context, payload []byte) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	postCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	gate := make(chan Result, 1)
	go func() {
		gate <- b.post(postCtx, payload)
	}()

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case result := <-gate:
		return result
	case <-ctx.Done():
		return Result{Kind: OutcomeCancelled, Detail: ctx.Err().Error()}
	case <-timer.C:
		return Result{
			Kind:   OutcomeTimedOut,
			Detail: fmt.Sprintf("no completion within %s", b.timeout),
		}
	}
}

// post performs the request and converts the response into a Result.
func (b *Bridge) post(ctx context.Context, payload []byte) Result {
	resp, err := b.poster.Post(ctx, b.endpoint, b.contentType, payload)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{Kind: OutcomeCancelled, Detail: err.Error()}
		}
		return Result{Kind: OutcomeFailure, Failure: FailureTransport, Detail: err.Error()}
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return Result{
			Kind:    OutcomeFailure,
			Failure: FailureHTTPStatus,
			Status:  resp.Status,
			Body:    resp.Body,
			Detail:  fmt.Sprintf("http %d", resp.Status),
		}
	}
	return Result{Kind: OutcomeSuccess, Status: resp.Status, Body: resp.Body}
}
