package ptr

// Of returns a pointer to a copy of value.
func Of[T any](value T) *T {
	return &value
}
