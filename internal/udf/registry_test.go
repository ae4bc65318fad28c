package udf

import (
	"context"
	"testing"

	"rowpost/pkg/rowbridge"
)

// TestRegisterAndLookup ensures registered functions are retrievable by name.
func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	fn := func(context.Context, []byte) rowbridge.Result {
		return rowbridge.Result{Kind: rowbridge.OutcomeSuccess, Status: 200}
	}
	if err := reg.Register("http_post", fn); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, ok := reg.Lookup("http_post")
	if !ok {
		t.Fatalf("expected function to be registered")
	}
	result := got(context.Background(), []byte(`{}`))
	if result.Kind != rowbridge.OutcomeSuccess {
		t.Fatalf("unexpected result kind %s", result.Kind)
	}
}

// TestRegisterRejectsDuplicates ensures duplicate names fail.
func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	fn := func(context.Context, []byte) rowbridge.Result { return rowbridge.Result{} }
	if err := reg.Register("dup", fn); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("dup", fn); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

// TestRegisterRejectsEmptyNameAndNilFunc ensures invalid registrations fail.
func TestRegisterRejectsEmptyNameAndNilFunc(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("", func(context.Context, []byte) rowbridge.Result { return rowbridge.Result{} }); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("fn", nil); err == nil {
		t.Fatalf("expected error for nil function")
	}
}

// TestNamesSorted ensures Names returns sorted function names.
func TestNamesSorted(t *testing.T) {
	reg := NewRegistry()
	fn := func(context.Context, []byte) rowbridge.Result { return rowbridge.Result{} }
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(name, fn); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	names := reg.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

// TestStringFuncReturnsSummary ensures the string contract carries the outcome.
func TestStringFuncReturnsSummary(t *testing.T) {
	fn := StringFunc(func(context.Context, []byte) rowbridge.Result {
		return rowbridge.Result{Kind: rowbridge.OutcomeSuccess, Status: 201}
	})
	value, err := fn(context.Background(), `{"name":"John"}`)
	if err != nil {
		t.Fatalf("string func: %v", err)
	}
	if value != "success status=201" {
		t.Fatalf("unexpected value %q", value)
	}
}
