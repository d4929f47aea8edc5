package filter

import (
	"github.com/opencost/filterkit/pkg/util/maputil"
	"github.com/opencost/filterkit/pkg/util/typeutil"
)

// patternKind distinguishes the two shapes a partial pattern can take.
type patternKind int

const (
	// scalarPattern is any value without children, compared by strict equality
	scalarPattern patternKind = iota

	// structuredPattern is a string keyed map, slice or array matched key by key
	structuredPattern
)

// pattern is a partial value classified once, when a matcher is constructed.
type pattern struct {
	kind  patternKind
	value any
}

func newPattern(value any) pattern {
	if typeutil.IsStructured(value) {
		return pattern{kind: structuredPattern, value: value}
	}
	return pattern{kind: scalarPattern, value: value}
}

// Contains returns a predicate testing whether a candidate shallowly matches partial. If
// partial is a map (or slice), the candidate must also be one, and for every top level key
// of partial the candidate's value at that key must be strictly equal to partial's.
// Missing keys compare as typeutil.Undefined. Any other partial is compared to the
// candidate directly with strict equality.
func Contains(partial any) Predicate[any] {
	p := newPattern(partial)
	if p.kind == scalarPattern {
		return func(that any) bool {
			return typeutil.StrictEqual(that, p.value)
		}
	}

	keys := maputil.Keys(p.value)
	expected := make([]any, len(keys))
	for i, key := range keys {
		expected[i] = maputil.Child(p.value, key)
	}

	return func(that any) bool {
		if !typeutil.IsStructured(that) {
			return false
		}

		for i, key := range keys {
			if !typeutil.StrictEqual(maputil.Child(that, key), expected[i]) {
				return false
			}
		}
		return true
	}
}

// ContainsDeep returns a predicate testing whether a candidate matches every leaf of
// partial. The leaf paths of partial are enumerated once, so partial must not change after
// construction. Intermediate nodes missing from the candidate resolve to
// typeutil.Undefined. A scalar partial never matches and neither does a non-structured
// candidate.
func ContainsDeep(partial any) Predicate[any] {
	p := newPattern(partial)
	if p.kind == scalarPattern {
		return AllCut[any]()
	}

	paths := maputil.Paths(p.value)
	expected := make([]any, len(paths))
	for i, path := range paths {
		expected[i] = maputil.Get(p.value, path)
	}

	return func(that any) bool {
		if !typeutil.IsStructured(that) {
			return false
		}

		for i, path := range paths {
			if !typeutil.StrictEqual(maputil.Get(that, path), expected[i]) {
				return false
			}
		}
		return true
	}
}

// NotContains is Not(Contains(partial)).
func NotContains(partial any) Predicate[any] {
	return Not(Contains(partial))
}

// NotContainsDeep is Not(ContainsDeep(partial)).
func NotContainsDeep(partial any) Predicate[any] {
	return Not(ContainsDeep(partial))
}
