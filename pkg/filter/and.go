package filter

// And is a set of predicates that should be evaluated as a logical AND. An empty set
// matches everything.
func And[T any](predicates ...Predicate[T]) Predicate[T] {
	if len(predicates) == 0 {
		return AllPass[T]()
	}

	return func(that T) bool {
		for _, p := range predicates {
			if !p(that) {
				return false
			}
		}
		return true
	}
}
