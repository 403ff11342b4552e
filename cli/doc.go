// Package cli contains the command line interface for fee.
//
// # Usage
//
// Evaluate expressions directly (eval is the default command):
//
//	fee '2^10 - 24'
//	fee --set x=3 --set y=4 'sqrt(x^2 + y^2)'
//	fee --vars bindings.yaml 'rate * hours'
//
// Inspect how an expression compiles:
//
//	fee inspect '2*(3+4) - x'
//
// Or start an interactive session:
//
//	fee repl --set x=1
//
// # Configuration
//
// Flag defaults are read from config.json or config.yaml in the
// per-user configuration directory, and every flag can also be given on
// the command line. Logging flags (--log-level, --log-format,
// --log-time-layout, --log-caller) and profiling flags (--pprof-mode,
// --pprof-dir) are shared by all commands.
package cli
