package expr

import "math"

// Op identifies a built-in operator. The zero value is not a valid operator.
//
// Numbers and booleans share the float64 domain: comparison and boolean
// operators produce 0 or 1, and any nonzero operand is truthy. Bitwise and
// shift operators truncate their operands to int64 first.
type Op uint8

const (
	OpInvalid Op = iota

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow

	OpNeg
	OpNot

	OpOr
	OpAnd

	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe

	OpBitAnd
	OpBitOr
	OpBitXor

	OpShl
	OpShr
)

// opInfo holds the static properties of an operator.
type opInfo struct {
	text       string
	precedence uint8
	arity      uint8
	rightAssoc bool
}

//nolint:gochecknoglobals
var opTable = [...]opInfo{
	OpInvalid: {"<invalid>", 0, 0, false},

	OpOr:  {"||", 0, 2, false},
	OpAnd: {"&&", 1, 2, false},

	OpLt: {"<", 2, 2, false},
	OpGt: {">", 2, 2, false},
	OpLe: {"<=", 2, 2, false},
	OpGe: {">=", 2, 2, false},
	OpEq: {"==", 2, 2, false},
	OpNe: {"!=", 2, 2, false},

	OpBitAnd: {"&", 3, 2, false},
	OpBitOr:  {"|", 3, 2, false},
	OpBitXor: {"^^", 3, 2, false},

	OpShl: {"<<", 4, 2, false},
	OpShr: {">>", 4, 2, false},

	OpAdd: {"+", 5, 2, false},
	OpSub: {"-", 5, 2, false},

	OpMul: {"*", 6, 2, false},
	OpDiv: {"/", 6, 2, false},
	OpMod: {"%", 6, 2, false},

	OpNeg: {"-", 7, 1, true},
	OpNot: {"!", 7, 1, true},

	OpPow: {"^", 8, 2, true},
}

// String returns the source text of the operator.
func (op Op) String() string { return opTable[op].text }

// Precedence returns the binding strength of the operator.
// Higher values bind tighter.
func (op Op) Precedence() int { return int(opTable[op].precedence) }

// Arity returns the number of operands the operator consumes.
func (op Op) Arity() int { return int(opTable[op].arity) }

// RightAssoc reports whether the operator groups right-to-left. That is
// [OpPow] and the unary operators, which must nest under one another.
func (op Op) RightAssoc() bool { return opTable[op].rightAssoc }

// Apply evaluates the operator over its operands. The slice must hold
// exactly [Op.Arity] values; callers are responsible for the length check.
func (op Op) Apply(x []float64) float64 {
	switch op {
	case OpAdd:
		return x[0] + x[1]
	case OpSub:
		return x[0] - x[1]
	case OpMul:
		return x[0] * x[1]
	case OpDiv:
		return x[0] / x[1]
	case OpMod:
		return math.Mod(x[0], x[1])
	case OpPow:
		// Integral exponents use binary exponentiation to avoid the
		// rounding of the transcendental form.
		if isInt(x[1]) {
			return ipow(x[0], int64(x[1]))
		}

		return math.Pow(x[0], x[1])

	case OpNeg:
		return -x[0]
	case OpNot:
		return boolToFloat(x[0] == 0)

	case OpOr:
		return boolToFloat(x[0] != 0 || x[1] != 0)
	case OpAnd:
		return boolToFloat(x[0] != 0 && x[1] != 0)

	case OpLt:
		return boolToFloat(x[0] < x[1])
	case OpGt:
		return boolToFloat(x[0] > x[1])
	case OpLe:
		return boolToFloat(x[0] <= x[1])
	case OpGe:
		return boolToFloat(x[0] >= x[1])
	case OpEq:
		return boolToFloat(x[0] == x[1])
	case OpNe:
		return boolToFloat(x[0] != x[1])

	case OpBitAnd:
		return float64(int64(x[0]) & int64(x[1]))
	case OpBitOr:
		return float64(int64(x[0]) | int64(x[1]))
	case OpBitXor:
		return float64(int64(x[0]) ^ int64(x[1]))

	case OpShl:
		// Shift counts are masked to 0..63.
		return float64(int64(x[0]) << (uint64(int64(x[1])) & 63))
	case OpShr:
		return float64(int64(x[0]) >> (uint64(int64(x[1])) & 63))

	case OpInvalid:
	}

	panic("expr: apply of invalid operator")
}

// isInt reports whether num is exactly representable as an integer small
// enough for [ipow].
func isInt(num float64) bool {
	return num == math.Trunc(num) && math.Abs(num) <= 1<<31
}

// ipow raises base to an integral power by binary exponentiation.
func ipow(base float64, exp int64) float64 {
	if exp < 0 {
		return 1 / ipow(base, -exp)
	}

	result := 1.0

	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}

		base *= base
		exp >>= 1
	}

	return result
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
