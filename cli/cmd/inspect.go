package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/fee/expr"
)

// Inspect shows how expressions lex and compile: the infix token stream,
// the postfix instruction stream after constant folding, and the
// instruction count.
type Inspect struct {
	Bindings

	Exprs []string `arg:"" help:"Expressions to inspect" name:"expr"`
}

// Run executes the inspect command.
func (c *Inspect) Run(ctx context.Context) error {
	ectx, err := c.Context(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	for _, src := range c.Exprs {
		tokens, err := expr.Lex(src)
		if err != nil {
			return err
		}

		x, err := expr.Compile(src, ectx)
		if err != nil {
			return err
		}

		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.String()
		}

		fmt.Fprintf(out, "expr:    %s\n", src)
		fmt.Fprintf(out, "tokens:  %s\n", strings.Join(parts, " "))
		fmt.Fprintf(out, "postfix: %s\n", x)
		fmt.Fprintf(out, "length:  %d\n", x.Len())
	}

	return nil
}
