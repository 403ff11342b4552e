package expr

import (
	"testing"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

const benchSrc = "2*a0 + 3*a1 - a2/(a3 + 1) + a4*a4"

func benchIndexedContext(b *testing.B) *Context {
	b.Helper()

	vars := NewIndexedResolver[float64]()
	vars.AddIdentifier('a', 5)

	for i := range 5 {
		vars.Set('a', i, float64(i+1))
	}

	return NewContext(vars, EmptyResolver[Func]{})
}

func BenchmarkCompile(b *testing.B) {
	ctx := benchIndexedContext(b)

	b.ResetTimer()

	for b.Loop() {
		if _, err := Compile(benchSrc, ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEval_Constant(b *testing.B) {
	x, err := Compile("(2*21)+3-35-((5*80)+5)+10", nil)
	if err != nil {
		b.Fatal(err)
	}

	stack := make([]float64, 0, 8)

	b.ResetTimer()

	for b.Loop() {
		if _, err := x.EvalWithStack(nil, &stack); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEval_NameResolver(b *testing.B) {
	vars := NewMapResolver[float64]()
	for i, name := range []string{"u", "v", "w", "x", "y"} {
		vars.Insert(name, float64(i+1))
	}

	ctx := NewContext(vars, EmptyResolver[Func]{})

	x, err := Compile("2*u + 3*v - w/(x + 1) + y*y", ctx)
	if err != nil {
		b.Fatal(err)
	}

	stack := make([]float64, 0, 8)

	b.ResetTimer()

	for b.Loop() {
		if _, err := x.EvalWithStack(ctx, &stack); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEval_IndexResolver(b *testing.B) {
	ctx := benchIndexedContext(b)

	x, err := Compile(benchSrc, ctx)
	if err != nil {
		b.Fatal(err)
	}

	stack := make([]float64, 0, 8)

	b.ResetTimer()

	for b.Loop() {
		if _, err := x.EvalWithStack(ctx, &stack); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEval_PtrResolver(b *testing.B) {
	vars := NewMapResolver[float64]()
	for i, name := range []string{"u", "v", "w", "x", "y"} {
		vars.Insert(name, float64(i+1))
	}

	ctx := NewContext(vars.Lock(), EmptyResolver[Func]{})

	x, err := Compile("2*u + 3*v - w/(x + 1) + y*y", ctx)
	if err != nil {
		b.Fatal(err)
	}

	stack := make([]float64, 0, 8)

	b.ResetTimer()

	for b.Loop() {
		if _, err := x.EvalWithStack(ctx, &stack); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEval_Evaluator(b *testing.B) {
	ctx := benchIndexedContext(b)

	x, err := Compile(benchSrc, ctx)
	if err != nil {
		b.Fatal(err)
	}

	ev := NewEvaluator(x)

	b.ResetTimer()

	for b.Loop() {
		if _, err := ev.Eval(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEval_ExprLang runs the same workload through expr-lang for a
// point of reference against a general-purpose expression engine.
func BenchmarkEval_ExprLang(b *testing.B) {
	env := map[string]any{"u": 1.0, "v": 2.0, "w": 3.0, "x": 4.0, "y": 5.0}

	program, err := exprlang.Compile("2*u + 3*v - w/(x + 1) + y*y",
		exprlang.Env(env))
	if err != nil {
		b.Fatal(err)
	}

	var machine vm.VM

	b.ResetTimer()

	for b.Loop() {
		if _, err := machine.Run(program, env); err != nil {
			b.Fatal(err)
		}
	}
}
