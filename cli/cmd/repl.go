package cmd

import (
	"context"

	"github.com/ardnew/fee/cli/cmd/repl"
	"github.com/ardnew/fee/log"
)

// Repl starts an interactive evaluation session.
type Repl struct {
	Bindings

	History string `default:"${cache}/history" help:"History file path." type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	ectx, err := r.Context(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, ectx, r.History, log.Default())
}
