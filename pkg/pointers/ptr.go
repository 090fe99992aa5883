package pointers

// Ptr lifts a value to a pointer, mostly for optional struct fields and
// literal-heavy test fixtures.
func Ptr[T any](v T) *T {
	return &v
}
