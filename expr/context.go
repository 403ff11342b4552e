package expr

import (
	"fmt"
	"log/slog"
)

// Context pairs the variable resolver and the function resolver an
// expression is compiled and evaluated against.
//
// There is no runtime polymorphism beyond the two resolver interfaces:
// [Compile] probes the concrete types once, at compile time, and emits
// the fastest instruction form the pairing supports (names, bucket
// indices, or raw pointers).
//
// A Context is safe to share across goroutines for read-only evaluation.
// Mutating a resolver while another goroutine evaluates against it is not
// synchronized by this package.
type Context struct {
	vars  Resolver[float64]
	funcs Resolver[Func]
}

// NewContext creates a context over the given resolvers.
func NewContext(vars Resolver[float64], funcs Resolver[Func]) *Context {
	return &Context{vars: vars, funcs: funcs}
}

// EmptyContext creates a context that resolves nothing.
func EmptyContext() *Context {
	return NewContext(EmptyResolver[float64]{}, EmptyResolver[Func]{})
}

// Vars returns the variable resolver.
func (c *Context) Vars() Resolver[float64] { return c.vars }

// Funcs returns the function resolver.
func (c *Context) Funcs() Resolver[Func] { return c.funcs }

// Var resolves a variable by name.
func (c *Context) Var(name string) (float64, bool) {
	return c.vars.Resolve(name)
}

// VarByIndex resolves a variable through the indexed fast path. It fails
// when the variable resolver is not of the indexed family.
func (c *Context) VarByIndex(id, idx int) (float64, bool) {
	if r, ok := c.vars.(IndexResolver[float64]); ok {
		return r.ResolveIndex(id, idx)
	}

	return 0, false
}

// Fn resolves a function by name.
func (c *Context) Fn(name string) (Func, bool) {
	fn, ok := c.funcs.Resolve(name)
	if !ok || fn == nil {
		return nil, false
	}

	return fn, true
}

// Call resolves a function by name and invokes it.
func (c *Context) Call(name string, args []float64) (float64, bool) {
	fn, ok := c.Fn(name)
	if !ok {
		return 0, false
	}

	return fn(args), true
}

// FnByIndex resolves a function through the indexed fast path. It fails
// when the function resolver is not of the indexed family.
func (c *Context) FnByIndex(id, idx int) (Func, bool) {
	r, ok := c.funcs.(IndexResolver[Func])
	if !ok {
		return nil, false
	}

	fn, ok := r.ResolveIndex(id, idx)
	if !ok || fn == nil {
		return nil, false
	}

	return fn, true
}

// CallByIndex resolves a function through the indexed fast path and
// invokes it.
func (c *Context) CallByIndex(id, idx int, args []float64) (float64, bool) {
	fn, ok := c.FnByIndex(id, idx)
	if !ok {
		return 0, false
	}

	return fn(args), true
}

// VarPtr returns a pointer handle for a variable. It fails unless the
// variable resolver is locked (see [PtrResolver]).
func (c *Context) VarPtr(name string) (Ptr[float64], bool) {
	if r, ok := c.vars.(PtrResolver[float64]); ok {
		return r.GetPtr(name)
	}

	return Ptr[float64]{}, false
}

// FnPtr returns a pointer handle for a function. It fails unless the
// function resolver is locked.
func (c *Context) FnPtr(name string) (Ptr[Func], bool) {
	if r, ok := c.funcs.(PtrResolver[Func]); ok {
		return r.GetPtr(name)
	}

	return Ptr[Func]{}, false
}

// unknownVariable builds the evaluation error for a failed variable
// resolution, with a fuzzy suggestion when the resolver can enumerate its
// names.
func (c *Context) unknownVariable(name string) error {
	return unknownName(ErrUnknownVariable, c.vars, name)
}

// unknownFunction is the function counterpart of unknownVariable.
func (c *Context) unknownFunction(name string) error {
	return unknownName(ErrUnknownFunction, c.funcs, name)
}

func unknownName[T any](sentinel *Error, r Resolver[T], name string) error {
	attrs := []slog.Attr{slog.String("name", name)}

	if lister, ok := r.(NameLister); ok {
		if hint, ok := Suggest(name, lister.Names()); ok {
			attrs = append(attrs, slog.String("did_you_mean", hint))
		}
	}

	return sentinel.With(attrs...)
}

// indexedName reconstructs the letter+digits name of an indexed slot for
// error reporting.
func indexedName(id, idx int) string {
	return fmt.Sprintf("%c%d", byte('a'+id), idx)
}
