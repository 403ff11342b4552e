//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version returns the semantic version of the fee module embedded at build
// time. It is printed by the CLI when users pass the --version flag.
func Version() string { return strings.TrimSpace(rawVersion) }

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "fee"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Fast expression evaluator"
)
