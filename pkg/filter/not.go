package filter

import "github.com/opencost/filterkit/pkg/util/typeutil"

// Not negates the result of predicate. When predicate is nil, the returned predicate
// negates the truthiness of the value itself: false, numeric zero, NaN, the empty string,
// nil and typeutil.Undefined all produce true.
func Not[T any](predicate Predicate[T]) Predicate[T] {
	if predicate == nil {
		return func(that T) bool {
			return !typeutil.IsTruthy(that)
		}
	}

	return func(that T) bool {
		return !predicate(that)
	}
}
