package expr

import (
	"math"
	"testing"
)

func TestOp_Apply(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		operands []float64
		expected float64
	}{
		{"add", OpAdd, []float64{2, 3}, 5},
		{"sub", OpSub, []float64{2, 3}, -1},
		{"mod", OpMod, []float64{17, 5}, 2},
		{"mod negative", OpMod, []float64{-17, 5}, -2},
		{"pow integral", OpPow, []float64{2, 10}, 1024},
		{"pow negative exponent", OpPow, []float64{2, -2}, 0.25},
		{"pow fractional exponent", OpPow, []float64{4, 0.5}, 2},
		{"pow negative base integral", OpPow, []float64{-3, 3}, -27},
		{"neg", OpNeg, []float64{5}, -5},
		{"not truthy", OpNot, []float64{3}, 0},
		{"not zero", OpNot, []float64{0}, 1},
		{"shift count masked", OpShl, []float64{1, 64}, 1},
		{"shr", OpShr, []float64{1024, 3}, 128},
		{"bitand truncates", OpBitAnd, []float64{6.9, 3.9}, 2},
		{"eq", OpEq, []float64{2, 2}, 1},
		{"ne", OpNe, []float64{2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Apply(tt.operands); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestOp_PowIntegralIsExact(t *testing.T) {
	// Binary exponentiation keeps integral powers exact where the
	// transcendental form can round.
	if got := OpPow.Apply([]float64{10, 15}); got != 1e15 {
		t.Errorf("expected 1e15, got %v", got)
	}
}

func TestIpow(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		exp      int64
		expected float64
	}{
		{"zero exponent", 5, 0, 1},
		{"one", 5, 1, 5},
		{"even", 3, 4, 81},
		{"odd", 2, 7, 128},
		{"negative exponent", 2, -3, 0.125},
		{"negative base", -2, 3, -8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ipow(tt.base, tt.exp); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsInt(t *testing.T) {
	tests := []struct {
		name     string
		num      float64
		expected bool
	}{
		{"integer", 42, true},
		{"negative integer", -42, true},
		{"fraction", 0.5, false},
		{"too large", 1 << 40, false},
		{"nan", math.NaN(), false},
		{"inf", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isInt(tt.num); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
