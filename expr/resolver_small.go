package expr

import "sort"

// smallCacheSize is the sweet spot for linear scanning; past roughly 30
// entries the map resolver wins.
const smallCacheSize = 10

// SmallResolver stores bindings in one compact slice scanned linearly.
// It imposes no naming restrictions and, for a handful of entries, beats
// the map resolver through cache locality alone.
type SmallResolver[T any] struct {
	cache []smallEntry[T]
}

type smallEntry[T any] struct {
	name string
	val  T
}

// NewSmallResolver creates an empty unlocked small resolver.
func NewSmallResolver[T any]() *SmallResolver[T] {
	return &SmallResolver[T]{cache: make([]smallEntry[T], 0, smallCacheSize)}
}

// Insert adds or replaces a binding.
func (r *SmallResolver[T]) Insert(name string, val T) {
	for i := range r.cache {
		if r.cache[i].name == name {
			r.cache[i].val = val

			return
		}
	}

	r.cache = append(r.cache, smallEntry[T]{name: name, val: val})
}

// Resolve implements [Resolver].
func (r *SmallResolver[T]) Resolve(name string) (T, bool) {
	for i := range r.cache {
		if r.cache[i].name == name {
			return r.cache[i].val, true
		}
	}

	var zero T

	return zero, false
}

// Len returns the number of bindings.
func (r *SmallResolver[T]) Len() int { return len(r.cache) }

// Names implements [NameLister]. The result is sorted.
func (r *SmallResolver[T]) Names() []string {
	names := make([]string, len(r.cache))
	for i := range r.cache {
		names[i] = r.cache[i].name
	}

	sort.Strings(names)

	return names
}

// Lock consumes the resolver and returns its locked counterpart, draining
// the receiver so accidental use-after-lock finds nothing.
func (r *SmallResolver[T]) Lock() *LockedSmallResolver[T] {
	entries := r.cache
	r.cache = nil

	return &LockedSmallResolver[T]{entries: entries}
}

// LockedSmallResolver is the locked form of [SmallResolver]: the same
// linear scan over a slice that can no longer grow, so entry addresses
// are stable and [Ptr] handles stay valid for its whole life.
type LockedSmallResolver[T any] struct {
	entries []smallEntry[T]
}

// Resolve implements [Resolver].
func (r *LockedSmallResolver[T]) Resolve(name string) (T, bool) {
	for i := range r.entries {
		if r.entries[i].name == name {
			return r.entries[i].val, true
		}
	}

	var zero T

	return zero, false
}

// GetPtr implements [PtrResolver].
func (r *LockedSmallResolver[T]) GetPtr(name string) (Ptr[T], bool) {
	for i := range r.entries {
		if r.entries[i].name == name {
			return Ptr[T]{ref: &r.entries[i].val}, true
		}
	}

	return Ptr[T]{}, false
}

// Len returns the number of bindings.
func (r *LockedSmallResolver[T]) Len() int { return len(r.entries) }

// Names implements [NameLister]. The result is sorted.
func (r *LockedSmallResolver[T]) Names() []string {
	names := make([]string, len(r.entries))
	for i := range r.entries {
		names[i] = r.entries[i].name
	}

	sort.Strings(names)

	return names
}
