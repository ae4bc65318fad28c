package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"rowpost/pkg/rowbridge"
)

// Client posts payloads over HTTP. A single Client is shared across
// invocations and is safe for concurrent use.
type Client struct {
	client *http.Client
}

// New constructs a client without a transport-level timeout. Callers are
// expected to bound requests through the Bridge timeout or a context.
func New() *Client {
	return &Client{client: &http.Client{}}
}

// NewWithTimeout constructs a client with a transport-level request timeout.
func NewWithTimeout(timeout time.Duration) *Client {
	return &Client{client: &http.Client{Timeout: timeout}}
}

// Post issues one POST with the payload as body.
func (c *Client) Post(ctx context.Context, endpoint, contentType string, payload []byte) (rowbridge.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return rowbridge.Response{}, err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.client.Do(req)
	if err != nil {
		return rowbridge.Response{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return rowbridge.Response{Status: resp.StatusCode}, err
	}
	return rowbridge.Response{Status: resp.StatusCode, Body: body}, nil
}

// Close releases idle connections held by the underlying client.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
