package typeutil

import (
	"math"
	"reflect"
)

// undefined is the type of the Undefined sentinel.
type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is returned wherever a key or path is absent. It is distinct from nil, which
// represents an explicit null value.
var Undefined any = undefined{}

// IsUndefined returns true if the value is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNull returns true for nil and for typed nil pointers, maps, slices, funcs, channels and
// interfaces.
func IsNull(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsNumber returns true for any of the go integer or floating point kinds.
func IsNumber(v any) bool {
	if v == nil {
		return false
	}
	return isNumberKind(reflect.TypeOf(v).Kind())
}

// IsString returns true if the value has an underlying string kind.
func IsString(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.String
}

// IsPlainObject returns true for non-nil maps keyed by strings.
func IsPlainObject(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String && !rv.IsNil()
}

// IsStructured returns true for values that carry addressable children: string keyed maps,
// slices and arrays. A nil map or slice is not structured.
func IsStructured(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String && !rv.IsNil()
	case reflect.Slice:
		return !rv.IsNil()
	case reflect.Array:
		return true
	}
	return false
}

// IsNotEmpty returns false for null and undefined values, and for strings, maps, slices and
// arrays with no elements. Every other value is considered non-empty.
func IsNotEmpty(v any) bool {
	if IsNull(v) || IsUndefined(v) {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	}
	return true
}

// IsTruthy reports the truthiness of a value: false, numeric zero, NaN, the empty string,
// null and undefined are falsy. Everything else, including empty maps and slices, is truthy.
func IsTruthy(v any) bool {
	if IsNull(v) || IsUndefined(v) {
		return false
	}

	rv := reflect.ValueOf(v)
	switch kind := rv.Kind(); {
	case kind == reflect.Bool:
		return rv.Bool()
	case kind == reflect.String:
		return rv.Len() > 0
	case isNumberKind(kind):
		f, _ := ToFloat64(v)
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// ToFloat64 converts any numeric kind to a float64. The second return is false if the value
// is not a number.
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}
