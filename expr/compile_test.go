package expr

import (
	"errors"
	"testing"
)

func TestCompile_ConstantFolding(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected float64
	}{
		{"addition", "1+2", 3},
		{"precedence", "1+2*3", 7},
		{"parens", "(1+2)*3", 9},
		{"left associative subtraction", "10-4-3", 3},
		{"left associative division", "64/4/4", 4},
		{"mul and div", "3*3-3/3", 8},
		{"right associative power", "2^3^2", 512},
		{"unary binds looser than power", "-3^2 + (-3)^2", 0},
		{"double negation", "--3", 3},
		{"nested parens", "(2*21)+3-35-((5*80)+5)+10", -385},
		{"not", "!0 + !3", 1},
		{"comparison", "(1<2) + (2<=2) + (3>4)", 2},
		{"logic", "1&&2 || 0&&1", 1},
		{"bitwise", "6&3 | 8", 10},
		{"xor", "6^^3", 5},
		{"shift", "1<<10", 1024},
		{"modulo", "17%5", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := Compile(tt.src, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if x.Len() != 1 {
				t.Errorf("expected constant fold to 1 instruction, got %d (%s)",
					x.Len(), x)
			}

			got, err := x.Eval(nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCompile_PartialFolding(t *testing.T) {
	vars := NewMapResolver[float64]()
	vars.Insert("x", 5)
	ctx := NewContext(vars, EmptyResolver[Func]{})

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"fold right of variable", "x+1*2", "x 2 +"},
		{"no fold across variable", "1+x", "1 x +"},
		{"fold inside parens", "x*(2+3)", "x 5 *"},
		{"fold both sides", "(1+2)*x*(3+4)", "3 x * 7 *"},
		{"unary variable", "-x", "x -"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := Compile(tt.src, ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := x.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCompile_CallsAreNotFolded(t *testing.T) {
	ctx := NewContext(NewVarResolver(), NewFnResolver())

	x, err := Compile("max(1, 2)", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if x.Len() != 3 {
		t.Errorf("expected 3 instructions, got %d (%s)", x.Len(), x)
	}

	got, err := x.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
}

func TestCompile_LockedResolverEmbedsPointers(t *testing.T) {
	vars := NewMapResolver[float64]()
	vars.Insert("x", 5)
	locked := vars.Lock()
	ctx := NewContext(locked, EmptyResolver[Func]{})

	x, err := Compile("x*2", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := x.String(); got != "*x 2 *" {
		t.Errorf("expected pointer-form instruction, got %q", got)
	}

	got, err := x.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != 10 {
		t.Errorf("expected 10, got %v", got)
	}

	// Pointer instructions observe later writes through the handle.
	ptr, ok := locked.GetPtr("x")
	if !ok {
		t.Fatal("expected pointer handle for x")
	}

	ptr.Set(7)

	got, err = x.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != 14 {
		t.Errorf("expected 14, got %v", got)
	}
}

func TestCompile_LockedResolverRejectsUnknownNames(t *testing.T) {
	vars := NewMapResolver[float64]()
	vars.Insert("x", 1)

	funcs := NewMapResolver[Func]()
	funcs.Insert("f", func([]float64) float64 { return 0 })

	ctx := NewContext(vars.Lock(), funcs.Lock())

	if _, err := Compile("x + y", ctx); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected %v, got %v", ErrUnknownVariable, err)
	}

	if _, err := Compile("f(1) + g(1)", ctx); !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected %v, got %v", ErrUnknownFunction, err)
	}
}

func TestCompile_IndexedResolver(t *testing.T) {
	vars := NewIndexedResolver[float64]()
	vars.AddIdentifier('a', 3)
	vars.Set('a', 0, 10)
	vars.Set('a', 1, 20)
	vars.Set('a', 2, 30)
	ctx := NewContext(vars, EmptyResolver[Func]{})

	x, err := Compile("a0 + a1*a2", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := x.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != 610 {
		t.Errorf("expected 610, got %v", got)
	}
}

func TestCompile_IndexedResolverRejectsMalformedNames(t *testing.T) {
	vars := NewIndexedResolver[float64]()
	vars.AddIdentifier('a', 1)
	ctx := NewContext(vars, EmptyResolver[Func]{})

	tests := []struct {
		name string
		src  string
	}{
		{"missing index", "a + 1"},
		{"non-digit index", "ab + 1"},
		{"uppercase letter", "A0 + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.src, ctx); !errors.Is(err, ErrBadIdentifier) {
				t.Errorf("expected %v, got %v", ErrBadIdentifier, err)
			}
		})
	}
}

func TestCompile_UnmatchedParens(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed", "(1+2"},
		{"unopened", "1+2)"},
		{"nested unclosed", "((1+2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.src, nil); !errors.Is(err, ErrUnmatchedParen) {
				t.Errorf("expected %v, got %v", ErrUnmatchedParen, err)
			}
		})
	}
}

func TestCompile_EmptySourceIsMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"blank", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.src, nil); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected %v, got %v", ErrMalformed, err)
			}
		})
	}
}

func TestCompile_NameResolverDefersUnknownsToEval(t *testing.T) {
	x, err := Compile("missing + 1", EmptyContext())
	if err != nil {
		t.Fatalf("expected compile to succeed for name-form resolver, got %v", err)
	}

	if _, err := x.Eval(EmptyContext()); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected %v, got %v", ErrUnknownVariable, err)
	}
}
