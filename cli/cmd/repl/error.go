package repl

import "errors"

// ErrNoContext is returned when the REPL is started without an evaluation
// context.
var ErrNoContext = errors.New("no evaluation context")
