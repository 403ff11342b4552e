package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/fee/expr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func TestBindings_Context_Defaults(t *testing.T) {
	b := Bindings{}

	ectx, err := b.Context(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Prelude constants survive locking.
	if _, ok := ectx.Var("pi"); !ok {
		t.Error("expected pi to resolve")
	}

	// Locked by default: pointer handles are available.
	if _, ok := ectx.VarPtr("pi"); !ok {
		t.Error("expected locked resolver to issue pointer handles")
	}
}

func TestBindings_Context_Unlocked(t *testing.T) {
	b := Bindings{Unlocked: true}

	ectx, err := b.Context(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := ectx.VarPtr("pi"); ok {
		t.Error("expected unlocked resolver to refuse pointer handles")
	}
}

func TestBindings_Context_SourcesAndPrecedence(t *testing.T) {
	varsPath := writeFile(t, "vars.yaml", "rate: 1.5\nhours: 8\n")
	envPath := writeFile(t, "bindings.env", "hours=40\nLABEL=oncall\n")

	b := Bindings{
		Vars: varsPath,
		Env:  envPath,
		Set:  map[string]float64{"rate": 2},
	}

	ectx, err := b.Context(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		expected float64
		ok       bool
	}{
		{"rate", 2, true},    // --set overrides the YAML file
		{"hours", 40, true},  // dotenv overrides the YAML file
		{"LABEL", 0, false},  // non-numeric dotenv entries are skipped
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ectx.Var(tt.name)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestBindings_Context_MissingVarsFile(t *testing.T) {
	b := Bindings{Vars: filepath.Join(t.TempDir(), "absent.yaml")}

	_, err := b.Context(t.Context())
	if err == nil || !strings.Contains(err.Error(), "read variables file") {
		t.Errorf("expected a read variables error, got %v", err)
	}
}

func TestBindings_Context_EvalRoundTrip(t *testing.T) {
	b := Bindings{Set: map[string]float64{"x": 3, "y": 4}}

	ectx, err := b.Context(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	x, err := expr.Compile("sqrt(x^2 + y^2)", ectx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := x.Eval(ectx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}
