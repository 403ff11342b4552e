package expr

// Func is the signature of every expression-callable function. It receives
// the evaluated arguments in source order and returns a single value.
type Func func(args []float64) float64

// Resolver maps a name to a value of type T. Within this package it is
// used with T = float64 for variables and T = [Func] for functions.
//
// The concrete families trade naming freedom against lookup cost:
//
//   - [MapResolver]: arbitrary names, hash lookup.
//   - [SmallResolver]: arbitrary names, linear scan; fastest for a handful
//     of entries due to cache locality.
//   - [IndexedResolver]: names restricted to letter+digits, plain array
//     indexing with no hashing at all.
//   - [ConstResolver]: every name resolves to one fixed value.
//   - [EmptyResolver]: nothing resolves.
//
// Each mutable family has a Lock method producing an address-stable locked
// counterpart; see [PtrResolver].
type Resolver[T any] interface {
	Resolve(name string) (T, bool)
}

// PtrResolver is implemented by locked resolvers, whose backing storage is
// guaranteed never to move for the remainder of its life. GetPtr performs
// one name lookup and returns a handle that bypasses resolution entirely.
//
// [Compile] probes the context for this capability: against a PtrResolver
// the compiled instructions embed the pointers themselves, so evaluation
// performs zero name lookups.
type PtrResolver[T any] interface {
	Resolver[T]

	GetPtr(name string) (Ptr[T], bool)
}

// IndexResolver is implemented by the indexed family, which stores values
// in per-letter buckets addressed by a numeric suffix. [Compile] lowers
// names to (letter, index) pairs at compile time when the context carries
// one.
type IndexResolver[T any] interface {
	Resolver[T]

	ResolveIndex(id, idx int) (T, bool)
}

// NameLister is implemented by resolvers that can enumerate their names.
// It feeds completion and "did you mean" suggestions.
type NameLister interface {
	Names() []string
}
