package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestReadSkipsBlankLines ensures blank lines do not produce rows.
func TestReadSkipsBlankLines(t *testing.T) {
	input := "{\"a\":1}\n\n  \n{\"b\":2}\n"
	rows, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if string(rows[0].Payload) != `{"a":1}` {
		t.Fatalf("unexpected first payload %q", rows[0].Payload)
	}
	if rows[1].Index != 1 {
		t.Fatalf("expected index 1, got %d", rows[1].Index)
	}
}

// TestReadRejectsInvalidJSON ensures malformed lines fail with a line number.
func TestReadRejectsInvalidJSON(t *testing.T) {
	input := "{\"a\":1}\nnot json\n"
	_, err := Read(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
}

// TestReadAllowsScalarPayloads ensures any valid JSON value is accepted.
func TestReadAllowsScalarPayloads(t *testing.T) {
	rows, err := Read(strings.NewReader("42\n\"text\"\n[1,2]\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}

// TestReadFileMissingPathFails ensures a missing file returns an error.
func TestReadFileMissingPathFails(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

// TestReadFileLoadsRows ensures rows load from disk.
func TestReadFileLoadsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	if err := os.WriteFile(path, []byte("{\"id\":1}\n{\"id\":2}\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}
