package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencost/filterkit/pkg/filter"
)

func Test_Contains(t *testing.T) {
	shared := []any{1, 2}

	cases := []struct {
		name     string
		partial  any
		input    any
		expected bool
	}{
		{name: "subset", partial: map[string]any{"a": 1}, input: map[string]any{"a": 1, "b": 2}, expected: true},
		{name: "different value", partial: map[string]any{"a": 1}, input: map[string]any{"a": 2}, expected: false},
		{name: "scalar candidate", partial: map[string]any{"a": 1}, input: 5, expected: false},
		{name: "nil candidate", partial: map[string]any{"a": 1}, input: nil, expected: false},
		{name: "missing key", partial: map[string]any{"a": 1}, input: map[string]any{"b": 1}, expected: false},
		{name: "missing key vs nil", partial: map[string]any{"a": nil}, input: map[string]any{}, expected: false},
		{name: "explicit nil", partial: map[string]any{"a": nil}, input: map[string]any{"a": nil}, expected: true},
		{name: "typed candidate map", partial: map[string]any{"a": 1}, input: map[string]int{"a": 1}, expected: true},
		{name: "json number", partial: map[string]any{"a": 1}, input: map[string]any{"a": 1.0}, expected: true},
		{name: "nested value is compared by reference", partial: map[string]any{"a": map[string]any{"b": 1}}, input: map[string]any{"a": map[string]any{"b": 1}}, expected: false},
		{name: "same nested reference", partial: map[string]any{"a": shared}, input: map[string]any{"a": shared, "b": 3}, expected: true},
		{name: "empty partial", partial: map[string]any{}, input: map[string]any{"a": 1}, expected: true},
		{name: "slice partial", partial: []any{"x"}, input: []any{"x", "y"}, expected: true},
		{name: "scalar partial equal", partial: "abc", input: "abc", expected: true},
		{name: "scalar partial strict", partial: 1, input: "1", expected: false},
		{name: "nil partial", partial: nil, input: nil, expected: true},
		{name: "nil partial object", partial: nil, input: map[string]any{}, expected: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, filter.Contains(c.partial)(c.input))
			require.Equal(t, !c.expected, filter.NotContains(c.partial)(c.input))
		})
	}
}

func Test_ContainsDeep(t *testing.T) {
	cases := []struct {
		name     string
		partial  any
		input    any
		expected bool
	}{
		{name: "nested subset", partial: map[string]any{"a": map[string]any{"b": 1}}, input: map[string]any{"a": map[string]any{"b": 1, "c": 2}}, expected: true},
		{name: "nested mismatch", partial: map[string]any{"a": map[string]any{"b": 1}}, input: map[string]any{"a": map[string]any{"b": 2}}, expected: false},
		{name: "nil candidate", partial: map[string]any{"a": map[string]any{"b": 1}}, input: nil, expected: false},
		{name: "missing intermediate", partial: map[string]any{"a": map[string]any{"b": 1}}, input: map[string]any{"x": 1}, expected: false},
		{name: "intermediate is scalar", partial: map[string]any{"a": map[string]any{"b": 1}}, input: map[string]any{"a": 7}, expected: false},
		{name: "slices by index", partial: map[string]any{"tags": []any{"x"}}, input: map[string]any{"tags": []any{"x", "y"}}, expected: true},
		{name: "slices by index mismatch", partial: map[string]any{"tags": []any{"y"}}, input: map[string]any{"tags": []any{"x", "y"}}, expected: false},
		{name: "mixed go types", partial: map[string]any{"a": map[string]any{"n": 2}}, input: map[string]map[string]float64{"a": {"n": 2}}, expected: true},
		{name: "deep leaf nil", partial: map[string]any{"a": map[string]any{"b": nil}}, input: map[string]any{"a": map[string]any{}}, expected: false},
		{name: "scalar partial", partial: 5, input: 5, expected: false},
		{name: "scalar candidate", partial: map[string]any{"a": 1}, input: "a", expected: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, filter.ContainsDeep(c.partial)(c.input))
			require.Equal(t, !c.expected, filter.NotContainsDeep(c.partial)(c.input))
		})
	}
}

func Test_ContainsDeep_DoesNotMutate(t *testing.T) {
	partial := map[string]any{"a": map[string]any{"b": 1}}
	input := map[string]any{"a": map[string]any{"b": 1, "c": 2}}

	require.True(t, filter.ContainsDeep(partial)(input))
	require.Equal(t, map[string]any{"a": map[string]any{"b": 1, "c": 2}}, input)
	require.Equal(t, map[string]any{"a": map[string]any{"b": 1}}, partial)
}
