package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// EndpointConfig scripts the behavior of a test HTTP endpoint.
type EndpointConfig struct {
	Status int
	Body   string
	// Block, when non-nil, delays every response until the channel closes.
	Block <-chan struct{}
}

// Endpoint is a scripted HTTP endpoint that records received payloads.
type Endpoint struct {
	URL   string
	Close func()

	mu       sync.Mutex
	payloads [][]byte
}

// StartEndpoint launches an httptest server for bridge and runner tests.
func StartEndpoint(t *testing.T, cfg EndpointConfig) *Endpoint {
	t.Helper()
	if cfg.Status == 0 {
		cfg.Status = http.StatusOK
	}
	endpoint := &Endpoint{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		endpoint.mu.Lock()
		endpoint.payloads = append(endpoint.payloads, body)
		endpoint.mu.Unlock()
		if cfg.Block != nil {
			<-cfg.Block
		}
		w.WriteHeader(cfg.Status)
		_, _ = w.Write([]byte(cfg.Body))
	}))
	endpoint.URL = server.URL
	endpoint.Close = server.Close
	t.Cleanup(server.Close)
	return endpoint
}

// Payloads returns copies of all request bodies received so far.
func (e *Endpoint) Payloads() [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]byte, len(e.payloads))
	for i, payload := range e.payloads {
		out[i] = append([]byte(nil), payload...)
	}
	return out
}
