package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/ardnew/fee/expr"
	"github.com/ardnew/fee/log"
)

// Eval compiles and evaluates expressions against the bound variables.
// Expressions are given as arguments, or read line by line from stdin when
// no arguments are present.
type Eval struct {
	Bindings

	Precision int      `default:"-1" help:"Digits of output precision (-1 for shortest)."`
	Exprs     []string `arg:""       help:"Expressions to evaluate"                        name:"expr" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	ectx, err := e.Context(ctx)
	if err != nil {
		return err
	}

	if len(e.Exprs) > 0 {
		return e.evalAll(ctx, ectx, e.Exprs)
	}

	// No arguments: evaluate each line of stdin.
	var lines []string

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) == 0 {
		return ErrNoExpression
	}

	return e.evalAll(ctx, ectx, lines)
}

func (e *Eval) evalAll(
	ctx context.Context,
	ectx *expr.Context,
	sources []string,
) error {
	out := stdout(ctx)

	for _, src := range sources {
		x, err := expr.Compile(src, ectx)
		if err != nil {
			return expr.WrapError(err).With(slog.String("expr", src))
		}

		log.DebugContext(ctx, "compiled",
			slog.String("expr", src),
			slog.Int("instructions", x.Len()),
		)

		num, err := x.Eval(ectx)
		if err != nil {
			return expr.WrapError(err).With(slog.String("expr", src))
		}

		fmt.Fprintln(out, strconv.FormatFloat(num, 'g', e.Precision, 64))
	}

	return nil
}
