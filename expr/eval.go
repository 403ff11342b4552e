package expr

import "log/slog"

// Eval evaluates the compiled expression against ctx with a freshly
// allocated operand stack. For repeated evaluation of the same expression
// prefer [Expr.EvalWithStack] or [Evaluator], which reuse the stack.
func (x *Expr) Eval(ctx *Context) (float64, error) {
	if num, ok := x.literal(); ok {
		return num, nil
	}

	stack := make([]float64, 0, len(x.code)/2+1)

	return x.EvalWithStack(ctx, &stack)
}

// literal reports whether the expression folded to a single literal and
// returns its value. Such expressions evaluate without a stack, a context,
// or any resolver lookup.
func (x *Expr) literal() (float64, bool) {
	if len(x.code) == 1 && x.code[0].kind == instrNum {
		return x.code[0].num, true
	}

	return 0, false
}

// EvalWithStack evaluates the compiled expression against ctx using the
// caller-provided operand stack, which is truncated before use and may be
// grown. The same stack must not be shared by concurrent evaluations.
//
// A nil ctx evaluates like an empty one; pointer-form instructions never
// consult it at all.
func (x *Expr) EvalWithStack(ctx *Context, stack *[]float64) (float64, error) {
	if num, ok := x.literal(); ok {
		return num, nil
	}

	if ctx == nil {
		ctx = EmptyContext()
	}

	s := (*stack)[:0]

	for i := range x.code {
		in := &x.code[i]

		switch in.kind {
		case instrNum:
			s = append(s, in.num)

		case instrVarName:
			num, ok := ctx.Var(in.name)
			if !ok {
				*stack = s

				return 0, ctx.unknownVariable(in.name)
			}

			s = append(s, num)

		case instrVarIdx:
			num, ok := ctx.VarByIndex(in.id, in.idx)
			if !ok {
				*stack = s

				return 0, ErrUnknownVariable.With(
					slog.String("name", indexedName(in.id, in.idx)))
			}

			s = append(s, num)

		case instrVarPtr:
			s = append(s, in.vptr.Get())

		case instrFnName:
			fn, ok := ctx.Fn(in.name)
			if !ok {
				*stack = s

				return 0, ctx.unknownFunction(in.name)
			}

			if s, ok = apply(s, fn, in.argc); !ok {
				*stack = s

				return 0, underflow(in.argc, len(s))
			}

		case instrFnIdx:
			fn, ok := ctx.FnByIndex(in.id, in.idx)
			if !ok {
				*stack = s

				return 0, ErrUnknownFunction.With(
					slog.String("name", indexedName(in.id, in.idx)))
			}

			if s, ok = apply(s, fn, in.argc); !ok {
				*stack = s

				return 0, underflow(in.argc, len(s))
			}

		case instrFnPtr:
			var ok bool
			if s, ok = apply(s, in.fptr.Get(), in.argc); !ok {
				*stack = s

				return 0, underflow(in.argc, len(s))
			}

		case instrOp:
			n := in.op.Arity()
			if len(s) < n {
				*stack = s

				return 0, underflow(n, len(s))
			}

			num := in.op.Apply(s[len(s)-n:])
			s = s[:len(s)-n]
			s = append(s, num)
		}
	}

	*stack = s

	if len(s) != 1 {
		return 0, ErrMalformed.With(slog.Int("stack", len(s)))
	}

	return s[0], nil
}

// apply pops argc operands as the argument window of fn and pushes its
// result in their place.
func apply(s []float64, fn Func, argc int) ([]float64, bool) {
	if len(s) < argc {
		return s, false
	}

	num := fn(s[len(s)-argc:])
	s = s[:len(s)-argc]

	return append(s, num), true
}

func underflow(want, have int) error {
	return ErrStackUnderflow.With(slog.Int("want", want), slog.Int("have", have))
}
