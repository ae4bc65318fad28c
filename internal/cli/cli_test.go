package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestRunNoArgsPrintsUsage ensures bare invocation shows usage.
func TestRunNoArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(stdout.String(), "rowpost <command>") {
		t.Fatalf("expected usage text, got %q", stdout.String())
	}
}

// TestRunHelpListsCommands ensures help shows all commands.
func TestRunHelpListsCommands(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--help"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected OK exit, got %d", code)
	}
	for _, name := range []string{"validate", "run", "serve"} {
		if !strings.Contains(stdout.String(), name) {
			t.Fatalf("expected %q in usage, got %q", name, stdout.String())
		}
	}
}

// TestRunUnknownCommandFails ensures unknown commands exit with usage.
func TestRunUnknownCommandFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"frobnicate"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
		t.Fatalf("expected unknown command message, got %q", stderr.String())
	}
}

// TestCommandHelpShowsUsage ensures per-command help renders.
func TestCommandHelpShowsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"run", "--help"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected OK exit, got %d", code)
	}
	if !strings.Contains(stdout.String(), "rowpost run") {
		t.Fatalf("expected run usage, got %q", stdout.String())
	}
}
