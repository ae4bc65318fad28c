package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rowpost/internal/reportserver"
)

// withServeStub replaces the report server for a test.
func withServeStub(t *testing.T, fn func(ctx context.Context, cfg reportserver.Config) error) {
	t.Helper()
	prev := serveReport
	serveReport = fn
	t.Cleanup(func() {
		serveReport = prev
	})
}

func writeServeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	config := `
version: 1
endpoint:
  url: http://localhost:9000/ingest
run:
  input: rows.jsonl
store:
  path: runs.duckdb
` + extra
	path := filepath.Join(dir, "rowpost.yml")
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestServeUsesConfiguredListenAddr passes report.listen_addr to the server.
func TestServeUsesConfiguredListenAddr(t *testing.T) {
	var captured reportserver.Config
	withServeStub(t, func(ctx context.Context, cfg reportserver.Config) error {
		captured = cfg
		return nil
	})

	path := writeServeConfig(t, `report:
  listen_addr: "127.0.0.1:8123"
`)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"serve", "-config", path}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected OK, got %d (stderr: %s)", code, stderr.String())
	}
	if captured.Addr != "127.0.0.1:8123" {
		t.Fatalf("expected configured addr, got %q", captured.Addr)
	}
	if captured.Store == nil {
		t.Fatalf("expected an opened store")
	}
	if !strings.Contains(stdout.String(), "127.0.0.1:8123") {
		t.Fatalf("expected listen message, got %q", stdout.String())
	}
}

// TestServeAddrFlagOverridesConfig prefers the -addr flag.
func TestServeAddrFlagOverridesConfig(t *testing.T) {
	var captured reportserver.Config
	withServeStub(t, func(ctx context.Context, cfg reportserver.Config) error {
		captured = cfg
		return nil
	})

	path := writeServeConfig(t, "")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"serve", "-config", path, "-addr", "127.0.0.1:9999"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected OK, got %d (stderr: %s)", code, stderr.String())
	}
	if captured.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected flag addr, got %q", captured.Addr)
	}
}

// TestServeRequiresStorePath refuses to serve without persistence.
func TestServeRequiresStorePath(t *testing.T) {
	withServeStub(t, func(ctx context.Context, cfg reportserver.Config) error {
		t.Fatalf("server should not start")
		return nil
	})

	dir := t.TempDir()
	config := `
version: 1
endpoint:
  url: http://localhost:9000/ingest
run:
  input: rows.jsonl
`
	path := filepath.Join(dir, "rowpost.yml")
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := Run([]string{"serve", "-config", path}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected error exit, got %d", code)
	}
	if !strings.Contains(stderr.String(), "store.path") {
		t.Fatalf("expected store.path error, got %q", stderr.String())
	}
}
