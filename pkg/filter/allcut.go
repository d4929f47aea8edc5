package filter

// AllCut is a predicate that matches nothing.
func AllCut[T any]() Predicate[T] {
	return func(T) bool { return false }
}
