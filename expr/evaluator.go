package expr

import "github.com/tevino/abool/v2"

// Evaluator pairs a compiled expression with a reusable operand stack so
// that repeated evaluations allocate nothing. It is safe for concurrent
// use: the cached stack is guarded by a try-acquire flag, and callers that
// lose the race fall back to a private stack instead of blocking.
type Evaluator struct {
	expr  *Expr
	stack []float64
	busy  *abool.AtomicBool
}

// NewEvaluator wraps a compiled expression for repeated evaluation.
func NewEvaluator(x *Expr) *Evaluator {
	return &Evaluator{
		expr:  x,
		stack: make([]float64, 0, x.Len()/2+1),
		busy:  abool.New(),
	}
}

// Expr returns the wrapped expression.
func (ev *Evaluator) Expr() *Expr { return ev.expr }

// Eval evaluates the expression against ctx, reusing the cached stack when
// it is free.
func (ev *Evaluator) Eval(ctx *Context) (float64, error) {
	if ev.busy.SetToIf(false, true) {
		defer ev.busy.UnSet()

		return ev.expr.EvalWithStack(ctx, &ev.stack)
	}

	return ev.expr.Eval(ctx)
}
