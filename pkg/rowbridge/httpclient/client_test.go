package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rowpost/internal/testutil"
)

// TestPostSendsBodyAndContentType ensures the request carries payload and header.
func TestPostSendsBodyAndContentType(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("accepted"))
	}))
	defer server.Close()

	client := New()
	defer client.Close()
	resp, err := client.Post(context.Background(), server.URL, "application/json", []byte(`{"name":"John"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	if string(resp.Body) != "accepted" {
		t.Fatalf("unexpected response body %q", resp.Body)
	}
	if string(gotBody) != `{"name":"John"}` {
		t.Fatalf("server saw body %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Fatalf("server saw content type %q", gotContentType)
	}
}

// TestPostReportsNon2xxStatus ensures the status is passed through untouched.
func TestPostReportsNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New()
	defer client.Close()
	resp, err := client.Post(context.Background(), server.URL, "application/json", []byte(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.Status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Status)
	}
}

// TestPostHonorsContextCancellation ensures a cancelled context aborts the call.
func TestPostHonorsContextCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	endpoint := testutil.StartEndpoint(t, testutil.EndpointConfig{Block: release})

	client := New()
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Post(ctx, endpoint.URL, "application/json", []byte(`{}`)); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
	if got := len(endpoint.Payloads()); got != 1 {
		t.Fatalf("expected the request to reach the endpoint once, got %d", got)
	}
}
