package expr

// ConstResolver resolves every name to one fixed value. It is the cheapest
// resolver of all: no lookup of any kind.
type ConstResolver[T any] struct {
	value T
}

// NewConstResolver creates a resolver that always resolves to value.
func NewConstResolver[T any](value T) *ConstResolver[T] {
	return &ConstResolver[T]{value: value}
}

// Resolve implements [Resolver]. It never fails.
func (r *ConstResolver[T]) Resolve(string) (T, bool) { return r.value, true }

// Set replaces the value returned for every name.
func (r *ConstResolver[T]) Set(value T) { r.value = value }

// EmptyResolver resolves nothing. Use it for the variable or function side
// of a [Context] when expressions contain none.
type EmptyResolver[T any] struct{}

// Resolve implements [Resolver]. It always fails.
func (EmptyResolver[T]) Resolve(string) (T, bool) {
	var zero T

	return zero, false
}
