// Package expr compiles and evaluates arithmetic expressions over float64.
//
// An expression is compiled once with [Compile] into a flat postfix
// instruction stream and then evaluated any number of times against a
// [Context], which binds variable and function names through pluggable
// [Resolver] implementations. Constant sub-expressions fold at compile
// time, so a fully constant expression evaluates in a single instruction.
//
// Resolvers come in two states. An unlocked resolver accepts new bindings
// but resolves by lookup on every evaluation. Calling Lock consumes it and
// returns its locked counterpart, whose storage no longer moves: compiling
// against a locked resolver embeds direct value pointers into the
// instruction stream, and evaluation dereferences them without any lookup
// at all. Values behind a locked resolver can still be changed through the
// [Ptr] handles it issues, which is how a hot loop rebinds variables
// between evaluations for free.
package expr
