package filter

// Or is a set of predicates that should be evaluated as a logical OR. An empty set
// matches everything.
func Or[T any](predicates ...Predicate[T]) Predicate[T] {
	if len(predicates) == 0 {
		return AllPass[T]()
	}

	return func(that T) bool {
		for _, p := range predicates {
			if p(that) {
				return true
			}
		}
		return false
	}
}
