package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rowpost/internal/spec"
)

// TestLoadAppliesDefaults ensures a minimal config is normalized.
func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
version: 1
endpoint:
  url: http://localhost:9000/rows
run:
  input: rows.jsonl
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint.ContentType != "application/json" {
		t.Fatalf("expected default content type, got %q", cfg.Endpoint.ContentType)
	}
	if cfg.Endpoint.RequestTimeoutMs != 30000 {
		t.Fatalf("expected default timeout, got %d", cfg.Endpoint.RequestTimeoutMs)
	}
	if cfg.Run.Function != "http_post" {
		t.Fatalf("expected default function, got %q", cfg.Run.Function)
	}
	if cfg.Run.Workers != 1 {
		t.Fatalf("expected default workers, got %d", cfg.Run.Workers)
	}
	if cfg.Slots.Mode != "disabled" {
		t.Fatalf("expected slots disabled, got %q", cfg.Slots.Mode)
	}
	if cfg.Report.ListenAddr != ":8090" {
		t.Fatalf("expected default listen addr, got %q", cfg.Report.ListenAddr)
	}
}

// TestLoadRejectsMissingEndpoint ensures endpoint.url is required.
func TestLoadRejectsMissingEndpoint(t *testing.T) {
	path := writeConfig(t, "version: 1\nrun:\n  input: rows.jsonl\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "endpoint.url") {
		t.Fatalf("expected endpoint.url error, got %v", err)
	}
}

// TestLoadRejectsBadScheme ensures only http and https endpoints pass.
func TestLoadRejectsBadScheme(t *testing.T) {
	path := writeConfig(t, "version: 1\nendpoint:\n  url: ftp://host/rows\nrun:\n  input: rows.jsonl\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "http or https") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

// TestLoadRejectsMissingInput ensures run.input is required.
func TestLoadRejectsMissingInput(t *testing.T) {
	path := writeConfig(t, "version: 1\nendpoint:\n  url: http://host/rows\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "run.input") {
		t.Fatalf("expected run.input error, got %v", err)
	}
}

// TestLoadRejectsUnsupportedVersion ensures version gating.
func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	path := writeConfig(t, "version: 2\nendpoint:\n  url: http://host/rows\nrun:\n  input: rows.jsonl\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

// TestValidateSlotsModes covers slot mode validation.
func TestValidateSlotsModes(t *testing.T) {
	cases := []struct {
		name    string
		slots   spec.SlotsConfig
		wantErr string
	}{
		{name: "disabled", slots: spec.SlotsConfig{Mode: "disabled"}},
		{name: "local ok", slots: spec.SlotsConfig{Mode: "local", Capacity: 4}},
		{name: "local no capacity", slots: spec.SlotsConfig{Mode: "local"}, wantErr: "capacity"},
		{
			name: "tigerbeetle ok",
			slots: spec.SlotsConfig{
				Mode:     "tigerbeetle",
				Capacity: 4,
				TigerBeetle: spec.TigerBeetleConfig{
					ClusterID: "0",
					Addresses: []string{"127.0.0.1:3000"},
				},
			},
		},
		{
			name: "tigerbeetle no addresses",
			slots: spec.SlotsConfig{
				Mode:        "tigerbeetle",
				Capacity:    4,
				TigerBeetle: spec.TigerBeetleConfig{ClusterID: "0"},
			},
			wantErr: "addresses",
		},
		{name: "unknown mode", slots: spec.SlotsConfig{Mode: "redis"}, wantErr: "slots mode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSlots(tc.slots)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid slots, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q error, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestNormalizeTigerBeetleDefaults ensures cluster defaults are filled in.
func TestNormalizeTigerBeetleDefaults(t *testing.T) {
	cfg := spec.Config{Slots: spec.SlotsConfig{Mode: "tigerbeetle"}}
	Normalize(&cfg)
	tb := cfg.Slots.TigerBeetle
	if tb.ClusterID != "0" || tb.Sessions != 1 || tb.MaxBatchEvents != 8000 || tb.FlushIntervalMicros != 200 {
		t.Fatalf("unexpected tigerbeetle defaults %+v", tb)
	}
}

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rowpost.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
