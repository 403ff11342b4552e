package expr

import "log/slog"

const alphabetSize = 'z' - 'a' + 1

// IndexedResolver stores values in 26 per-letter buckets addressed by a
// numeric suffix, so "p19" reads bucket 'p' at offset 19: plain array
// indexing, no hashing. The trade-off is the strict naming convention — a
// single lowercase letter followed by a decimal index.
//
// Buckets must be sized up front with [IndexedResolver.AddIdentifier];
// [Compile] rejects names outside the convention with [ErrBadIdentifier].
type IndexedResolver[T any] struct {
	buckets [][]T
}

// NewIndexedResolver creates an indexed resolver with all buckets empty.
func NewIndexedResolver[T any]() *IndexedResolver[T] {
	return &IndexedResolver[T]{buckets: make([][]T, alphabetSize)}
}

// AddIdentifier allocates the bucket for the given lowercase letter with
// size zero-valued slots. Reassigning a letter replaces its bucket.
func (r *IndexedResolver[T]) AddIdentifier(letter byte, size int) {
	r.buckets[letter-'a'] = make([]T, size)
}

// Set stores a value at the given letter and offset. The bucket must have
// been allocated with [IndexedResolver.AddIdentifier].
func (r *IndexedResolver[T]) Set(letter byte, idx int, val T) {
	r.buckets[letter-'a'][idx] = val
}

// Resolve implements [Resolver] by parsing the letter+digits name.
func (r *IndexedResolver[T]) Resolve(name string) (T, bool) {
	id, idx, err := splitIndexedName(name)
	if err != nil {
		var zero T

		return zero, false
	}

	return r.ResolveIndex(id, idx)
}

// ResolveIndex implements [IndexResolver].
func (r *IndexedResolver[T]) ResolveIndex(id, idx int) (T, bool) {
	if id < 0 || id >= len(r.buckets) || idx < 0 || idx >= len(r.buckets[id]) {
		var zero T

		return zero, false
	}

	return r.buckets[id][idx], true
}

// Lock consumes the resolver and returns its locked counterpart, draining
// the receiver. Bucket addresses are stable afterwards because no
// reallocation can follow.
func (r *IndexedResolver[T]) Lock() *LockedIndexedResolver[T] {
	buckets := r.buckets
	r.buckets = nil

	return &LockedIndexedResolver[T]{buckets: buckets}
}

// LockedIndexedResolver is the locked form of [IndexedResolver]. Its shape
// is frozen; slot values remain mutable in place via Set or [Ptr] handles.
type LockedIndexedResolver[T any] struct {
	buckets [][]T
}

// Set replaces a slot value in place.
func (r *LockedIndexedResolver[T]) Set(letter byte, idx int, val T) {
	r.buckets[letter-'a'][idx] = val
}

// Resolve implements [Resolver] by parsing the letter+digits name.
func (r *LockedIndexedResolver[T]) Resolve(name string) (T, bool) {
	id, idx, err := splitIndexedName(name)
	if err != nil {
		var zero T

		return zero, false
	}

	return r.ResolveIndex(id, idx)
}

// ResolveIndex implements [IndexResolver].
func (r *LockedIndexedResolver[T]) ResolveIndex(id, idx int) (T, bool) {
	if id < 0 || id >= len(r.buckets) || idx < 0 || idx >= len(r.buckets[id]) {
		var zero T

		return zero, false
	}

	return r.buckets[id][idx], true
}

// GetPtr implements [PtrResolver].
func (r *LockedIndexedResolver[T]) GetPtr(name string) (Ptr[T], bool) {
	id, idx, err := splitIndexedName(name)
	if err != nil {
		return Ptr[T]{}, false
	}

	if id < 0 || id >= len(r.buckets) || idx < 0 || idx >= len(r.buckets[id]) {
		return Ptr[T]{}, false
	}

	return Ptr[T]{ref: &r.buckets[id][idx]}, true
}

// splitIndexedName parses a name of the form letter+digits (e.g. "p0",
// "y19") into its bucket id and offset.
func splitIndexedName(name string) (id, idx int, err error) {
	if len(name) < 2 || name[0] < 'a' || name[0] > 'z' {
		return 0, 0, ErrBadIdentifier.With(slog.String("name", name))
	}

	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isDigit(c) {
			return 0, 0, ErrBadIdentifier.With(slog.String("name", name))
		}

		idx = idx*10 + int(c-'0')
	}

	return int(name[0] - 'a'), idx, nil
}
