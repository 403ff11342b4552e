package expr

import "math"

// NewVarResolver returns an unlocked map resolver preloaded with the
// standard mathematical constants pi, e, tau, and sqrt2.
func NewVarResolver() *MapResolver[float64] {
	r := NewMapResolver[float64]()
	r.Insert("pi", math.Pi)
	r.Insert("e", math.E)
	r.Insert("tau", 2*math.Pi)
	r.Insert("sqrt2", math.Sqrt2)

	return r
}

// NewFnResolver returns an unlocked map resolver preloaded with the
// standard mathematical functions. Every builtin returns NaN when called
// with the wrong number of arguments.
func NewFnResolver() *MapResolver[Func] {
	r := NewMapResolver[Func]()
	r.Insert("abs", unary(math.Abs))
	r.Insert("sqrt", unary(math.Sqrt))
	r.Insert("floor", unary(math.Floor))
	r.Insert("ceil", unary(math.Ceil))
	r.Insert("round", unary(math.Round))
	r.Insert("ln", unary(math.Log))
	r.Insert("log2", unary(math.Log2))
	r.Insert("log10", unary(math.Log10))
	r.Insert("sin", unary(math.Sin))
	r.Insert("cos", unary(math.Cos))
	r.Insert("tan", unary(math.Tan))
	r.Insert("min", binary(math.Min))
	r.Insert("max", binary(math.Max))
	r.Insert("pow", binary(math.Pow))

	return r
}

func unary(fn func(float64) float64) Func {
	return func(args []float64) float64 {
		if len(args) != 1 {
			return math.NaN()
		}

		return fn(args[0])
	}
}

func binary(fn func(_, _ float64) float64) Func {
	return func(args []float64) float64 {
		if len(args) != 2 {
			return math.NaN()
		}

		return fn(args[0], args[1])
	}
}
