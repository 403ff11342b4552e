package expr

import (
	"errors"
	"strings"
	"testing"
)

func renderTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}

	return strings.Join(parts, " ")
}

func TestLex_Renders(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"integer", "42", "42"},
		{"float", "3.14", "3.14"},
		{"leading dot", ".5", "0.5"},
		{"trailing dot", "1.", "1"},
		{"whitespace", " 1\t+\n2 ", "1 + 2"},
		{"precedence chain", "1+2*3", "1 + 2 * 3"},
		{"parens", "(1+2)*3", "( 1 + 2 ) * 3"},
		{"brackets", "[1+2]*3", "( 1 + 2 ) * 3"},
		{"unary minus", "-3", "- 3"},
		{"double negation", "--3", "- - 3"},
		{"unary after operator", "2*-3", "2 * - 3"},
		{"unary after paren", "(-3)", "( - 3 )"},
		{"logical not", "!0", "! 0"},
		{"power", "2^10", "2 ^ 10"},
		{"xor", "2^^10", "2 ^^ 10"},
		{"comparison", "1<=2", "1 <= 2"},
		{"shift", "1<<2>>3", "1 << 2 >> 3"},
		{"logic", "1&&0||1", "1 && 0 || 1"},
		{"bitwise", "6&3|8", "6 & 3 | 8"},
		{"not equal", "1!=2", "1 != 2"},
		{"identifier", "x+y", "x + y"},
		{"call", "max(1,2)", "max(1, 2)"},
		{"call no args", "f()", "f()"},
		{"call expr args", "max(1+2, 3*4)", "max(1 + 2, 3 * 4)"},
		{"nested call", "f(g(1,2),3)", "f(g(1, 2), 3)"},
		{"indexed bracket call", "a[0]+b[1]", "a(0) + b(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := renderTokens(tokens); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLex_UnaryDisambiguation(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []Op
	}{
		{"leading minus is negation", "-3", []Op{OpNeg}},
		{"minus after number is subtraction", "3-4", []Op{OpSub}},
		{"minus after operator is negation", "3--4", []Op{OpSub, OpNeg}},
		{"minus after rparen is subtraction", "(3)-4", []Op{OpSub}},
		{"not after operator", "1&&!0", []Op{OpAnd, OpNot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var ops []Op
			for _, tok := range tokens {
				if tok.Kind == TokenOp {
					ops = append(ops, tok.Op)
				}
			}

			if len(ops) != len(tt.expected) {
				t.Fatalf("expected %d operators, got %d", len(tt.expected), len(ops))
			}

			for i, op := range ops {
				if op != tt.expected[i] {
					t.Errorf("operator %d: expected %v, got %v", i, tt.expected[i], op)
				}
			}
		})
	}
}

func TestLex_CallArguments(t *testing.T) {
	tokens, err := Lex("f(g(1,2), h(), 3+4)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tokens) != 1 || tokens[0].Kind != TokenCall {
		t.Fatalf("expected a single call token, got %v", tokens)
	}

	if len(tokens[0].Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(tokens[0].Args))
	}

	inner := tokens[0].Args[0]
	if len(inner) != 1 || inner[0].Kind != TokenCall || len(inner[0].Args) != 2 {
		t.Errorf("expected nested call with 2 args, got %v", inner)
	}

	empty := tokens[0].Args[1]
	if len(empty) != 1 || empty[0].Kind != TokenCall || len(empty[0].Args) != 0 {
		t.Errorf("expected nested zero-arg call, got %v", empty)
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{"stray byte", "1 + @", ErrUnexpectedChar},
		{"bare dot", ".", ErrInvalidNumber},
		{"double dot", "1..2", ErrUnexpectedChar},
		{"lone equals", "1 = 2", ErrUnexpectedChar},
		{"lone not in operator position", "1 ! 2", ErrUnexpectedChar},
		{"unterminated call", "f(1, 2", ErrUnmatchedParen},
		{"empty argument", "f(1,,2)", ErrEmptyArgument},
		{"blank argument", "f(1, , 2)", ErrEmptyArgument},
		{"error inside argument", "f(1, @)", ErrUnexpectedChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.src)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestLex_ErrorOffsetsAreAbsolute(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		offset string
	}{
		{"top level", "12 + @", "offset=5"},
		{"inside argument", "f(1, @)", "offset=5"},
		{"inside nested argument", "f(1, g(2, @))", "offset=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.src)
			if err == nil {
				t.Fatal("expected an error")
			}

			if !strings.Contains(err.Error(), tt.offset) {
				t.Errorf("expected error to report %s, got %q", tt.offset, err)
			}
		})
	}
}

func TestLex_EmptyInput(t *testing.T) {
	tokens, err := Lex("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}
