package filter

// AllPass is a predicate that matches everything and is the same as no predicate.
func AllPass[T any]() Predicate[T] {
	return func(T) bool { return true }
}
