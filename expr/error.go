package expr

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Parse-time sentinels carry a byte offset attribute when returned from
// [Lex] or [Compile]; evaluation-time sentinels carry the offending name
// where one exists. Match with [errors.Is].
var (
	// Parse errors.
	ErrUnexpectedChar = NewError("unexpected character")
	ErrInvalidNumber  = NewError("invalid number")
	ErrUnmatchedParen = NewError("unmatched parenthesis")
	ErrEmptyArgument  = NewError("empty function argument")
	ErrBadIdentifier  = NewError("identifier is not letter+digits")

	// Evaluation errors.
	ErrUnknownVariable = NewError("unknown variable")
	ErrUnknownFunction = NewError("unknown function")
	ErrStackUnderflow  = NewError("expression stack underflow")
	ErrMalformed       = NewError("malformed expression")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	err   error
	msg   string
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	msg := strings.Join(part, ": ")

	// Render positional and name attributes inline so the bare error
	// string is useful without a structured handler.
	var b strings.Builder

	b.WriteString(msg)

	for _, attr := range e.attrs {
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString("=")
		b.WriteString(attr.Value.String())
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// With returns a new Error that wraps the receiver and carries the given
// attributes. Wrapping (rather than copying) keeps sentinel identity
// intact for errors.Is.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{err: e, attrs: attrs}
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}
