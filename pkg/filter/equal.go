package filter

import "github.com/opencost/filterkit/pkg/util/typeutil"

// Equal returns a predicate testing its argument for equality against value. Comparison is
// strict by default: no coercion between types, although numbers compare by value across
// go numeric kinds. When loose is set, values are coerced before comparing, so Equal(1,
// true) matches "1".
func Equal(value any, loose bool) Predicate[any] {
	if loose {
		return func(that any) bool {
			return typeutil.LooseEqual(that, value)
		}
	}

	return func(that any) bool {
		return typeutil.StrictEqual(that, value)
	}
}

// NotEqual is Not(Equal(value, loose)).
func NotEqual(value any, loose bool) Predicate[any] {
	return Not(Equal(value, loose))
}
