package expr

import (
	"sort"

	"github.com/segmentio/fasthash/fnv1a"
)

// MapResolver is the general-purpose resolver: arbitrary names, amortized
// O(1) lookup through a Go map. Insertion may reallocate storage, so no
// pointer into it is ever handed out; call [MapResolver.Lock] first.
type MapResolver[T any] struct {
	vars map[string]T
}

// NewMapResolver creates an empty unlocked map resolver.
func NewMapResolver[T any]() *MapResolver[T] {
	return &MapResolver[T]{vars: make(map[string]T)}
}

// Insert adds or replaces a binding.
func (r *MapResolver[T]) Insert(name string, val T) {
	if r.vars == nil {
		r.vars = make(map[string]T)
	}

	r.vars[name] = val
}

// Resolve implements [Resolver].
func (r *MapResolver[T]) Resolve(name string) (T, bool) {
	val, ok := r.vars[name]

	return val, ok
}

// Len returns the number of bindings.
func (r *MapResolver[T]) Len() int { return len(r.vars) }

// Names implements [NameLister]. The result is sorted.
func (r *MapResolver[T]) Names() []string {
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Lock consumes the resolver and returns its locked counterpart. The
// receiver is drained: subsequent Resolve calls find nothing, making
// accidental use-after-lock loud rather than subtly aliased.
//
// The locked form stores entries in one flat slice ordered by FNV-1a
// name hash; its addresses are stable because no insertion can follow.
func (r *MapResolver[T]) Lock() *LockedMapResolver[T] {
	entries := make([]mapEntry[T], 0, len(r.vars))

	for name, val := range r.vars {
		entries = append(entries, mapEntry[T]{
			hash: fnv1a.HashString64(name),
			name: name,
			val:  val,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].hash != entries[j].hash {
			return entries[i].hash < entries[j].hash
		}

		return entries[i].name < entries[j].name
	})

	r.vars = nil

	return &LockedMapResolver[T]{entries: entries}
}

type mapEntry[T any] struct {
	name string
	val  T
	hash uint64
}

// LockedMapResolver is the locked form of [MapResolver]: a flat slice of
// entries sorted by precomputed FNV-1a hash, resolved by binary search.
// Its shape is immutable; values remain mutable in place through [Ptr]
// handles.
type LockedMapResolver[T any] struct {
	entries []mapEntry[T]
}

// Resolve implements [Resolver].
func (r *LockedMapResolver[T]) Resolve(name string) (T, bool) {
	if i, ok := r.find(name); ok {
		return r.entries[i].val, true
	}

	var zero T

	return zero, false
}

// GetPtr implements [PtrResolver].
func (r *LockedMapResolver[T]) GetPtr(name string) (Ptr[T], bool) {
	if i, ok := r.find(name); ok {
		return Ptr[T]{ref: &r.entries[i].val}, true
	}

	return Ptr[T]{}, false
}

// Len returns the number of bindings.
func (r *LockedMapResolver[T]) Len() int { return len(r.entries) }

// Names implements [NameLister].
func (r *LockedMapResolver[T]) Names() []string {
	names := make([]string, len(r.entries))
	for i := range r.entries {
		names[i] = r.entries[i].name
	}

	sort.Strings(names)

	return names
}

func (r *LockedMapResolver[T]) find(name string) (int, bool) {
	hash := fnv1a.HashString64(name)

	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].hash >= hash
	})

	// Entries sharing a hash are adjacent; scan the run.
	for ; i < len(r.entries) && r.entries[i].hash == hash; i++ {
		if r.entries[i].name == name {
			return i, true
		}
	}

	return 0, false
}
