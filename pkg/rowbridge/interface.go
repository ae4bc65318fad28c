package rowbridge

import "context"

// Poster issues a single POST request and reports the response.
// Implementations must be safe for concurrent use.
type Poster interface {
	Post(ctx context.Context, endpoint, contentType string, payload []byte) (Response, error)
}
