package expr

// Ptr is a handle into a locked resolver's backing storage. Obtaining one
// pays the usual name lookup exactly once; every Get or Set thereafter is
// a direct dereference with no resolution at all.
//
// A Ptr is valid for as long as its originating locked resolver is alive.
// Locked resolvers expose no growth operation, so the referenced storage
// never moves.
type Ptr[T any] struct {
	ref *T
}

// Get returns the current value behind the pointer.
func (p Ptr[T]) Get() T { return *p.ref }

// Set replaces the value behind the pointer in place. The new value is
// observed by every subsequent evaluation of expressions compiled against
// the owning resolver, without recompiling.
func (p Ptr[T]) Set(val T) { *p.ref = val }

// Valid reports whether the handle references storage at all. The zero
// Ptr is invalid.
func (p Ptr[T]) Valid() bool { return p.ref != nil }
