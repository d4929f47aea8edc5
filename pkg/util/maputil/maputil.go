package maputil

import (
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/opencost/filterkit/pkg/util/typeutil"
)

// Path is an ordered list of keys leading from the root of a nested structure to a single
// location. Slice and array indices are rendered as decimal strings.
type Path []string

// ParsePath splits a dotted path ("a.b.0") into a Path. The empty string is the root.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return strings.Split(s, ".")
}

// String joins the path with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// ForEach invokes f once per key/value pair of m, in ascending key order.
func ForEach[K constraints.Ordered, V any](m map[K]V, f func(K, V)) {
	keys := maps.Keys(m)
	slices.Sort(keys)

	for _, k := range keys {
		f(k, m[k])
	}
}

// Keys returns the child keys of a structured value: sorted map keys for string keyed maps,
// and decimal indices for slices and arrays. Non-structured values have no keys.
func Keys(v any) []string {
	if !typeutil.IsStructured(v) {
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return keys
	}

	keys := make([]string, rv.Len())
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// Child returns the value stored at key within v, or typeutil.Undefined if v is not
// structured or the key is absent.
func Child(v any, key string) any {
	if !typeutil.IsStructured(v) {
		return typeutil.Undefined
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		mk := reflect.ValueOf(key).Convert(rv.Type().Key())
		value := rv.MapIndex(mk)
		if !value.IsValid() {
			return typeutil.Undefined
		}
		return value.Interface()
	}

	index, err := strconv.Atoi(key)
	if err != nil || index < 0 || index >= rv.Len() {
		return typeutil.Undefined
	}
	return rv.Index(index).Interface()
}

// Get follows path from v and returns the value found there. Any absent intermediate
// segment yields typeutil.Undefined.
func Get(v any, path Path) any {
	current := v
	for _, key := range path {
		current = Child(current, key)
		if typeutil.IsUndefined(current) {
			return current
		}
	}
	return current
}

// Paths enumerates every path from the root of v to a non-structured leaf, depth first with
// keys in ascending order. Empty maps and slices contribute no paths, and a non-structured
// root has none.
func Paths(v any) []Path {
	var paths []Path
	walk(v, Path{}, &paths)
	return paths
}

func walk(v any, prefix Path, paths *[]Path) {
	for _, key := range Keys(v) {
		child := Child(v, key)

		path := make(Path, len(prefix), len(prefix)+1)
		copy(path, prefix)
		path = append(path, key)

		if typeutil.IsStructured(child) {
			walk(child, path, paths)
			continue
		}

		*paths = append(*paths, path)
	}
}

// Map applies a transformation function to each value within a map to get a new map containing the
// transformed values.
func Map[K comparable, V any, T any](m map[K]V, transform func(V) T) map[K]T {
	result := make(map[K]T, len(m))
	for k, v := range m {
		result[k] = transform(v)
	}
	return result
}

// Set returns a copy of m with value stored at path. Maps along the path are copied rather
// than modified, and missing intermediate maps are created. The second return is false, and
// m is returned untouched, when the path is empty or passes through a value which is not a
// map[string]any.
func Set(m map[string]any, path Path, value any) (map[string]any, bool) {
	if len(path) == 0 {
		return m, false
	}

	result := Map(m, func(v any) any { return v })
	if len(path) == 1 {
		result[path[0]] = value
		return result, true
	}

	var child map[string]any
	switch existing := m[path[0]].(type) {
	case map[string]any:
		child = existing
	case nil:
		child = map[string]any{}
	default:
		return m, false
	}

	updated, ok := Set(child, path[1:], value)
	if !ok {
		return m, false
	}

	result[path[0]] = updated
	return result, true
}
