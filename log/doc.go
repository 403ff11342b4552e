// Package log provides a small structured logging interface based on
// [log/slog].
//
// Loggers are immutable values built with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// Attributes can be attached for all subsequent messages with
// [Logger.With], and each level has a context-aware variant
// (e.g. [Logger.InfoContext]). Context-unaware methods call their
// context-aware counterparts through [DefaultContextProvider].
//
// The package also maintains a default logger writing to stderr, used by
// the package-level functions and reconfigured with [Config].
//
// Two output formats are supported, [FormatText] (default) and
// [FormatJSON], and timestamps can be reformatted or disabled with
// [WithTimeLayout].
package log
