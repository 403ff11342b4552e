package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	value, err := r.Resolve(nil, nil, &kong.Flag{
		Value: &kong.Value{Name: name},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return value
}

func TestResolveYAML(t *testing.T) {
	src := `
log-level: debug
log_format: json
precision: 6
`

	r, err := resolveYAML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		flag     string
		expected any
	}{
		{"hyphen key", "log-level", "debug"},
		{"underscore key matches hyphen flag", "log-format", "json"},
		{"number as string", "precision", "6"},
		{"missing flag", "absent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFlag(t, r, tt.flag); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestResolveYAML_MalformedIsEmpty(t *testing.T) {
	r, err := resolveYAML(strings.NewReader("{ not yaml ["))
	if err != nil {
		t.Fatalf("expected malformed input to yield empty config, got %v", err)
	}

	if got := resolveFlag(t, r, "log-level"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
