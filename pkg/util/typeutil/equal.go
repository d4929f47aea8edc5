package typeutil

import (
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// StrictEqual compares two values without type coercion. Numbers of any go numeric kind
// compare by value, strings and bools by value, maps, slices and funcs by reference and
// structs and arrays by deep value. Null values (nil or typed nil) equal each other and
// Undefined only equals Undefined.
func StrictEqual(a, b any) bool {
	aUndef, bUndef := IsUndefined(a), IsUndefined(b)
	if aUndef || bUndef {
		return aUndef && bUndef
	}

	aNull, bNull := IsNull(a), IsNull(b)
	if aNull || bNull {
		return aNull && bNull
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	ka, kb := ra.Kind(), rb.Kind()

	if isNumberKind(ka) && isNumberKind(kb) {
		return numbersEqual(ra, rb)
	}

	switch {
	case ka == reflect.String && kb == reflect.String:
		return ra.String() == rb.String()
	case ka == reflect.Bool && kb == reflect.Bool:
		return ra.Bool() == rb.Bool()
	}

	if ra.Type() != rb.Type() {
		return false
	}

	switch ka {
	case reflect.Map, reflect.Func, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Struct, reflect.Array, reflect.Interface:
		return reflect.DeepEqual(a, b)
	}

	return false
}

// LooseEqual compares two values allowing coercion: null equals undefined, booleans compare
// as 1 and 0, and strings compare against numbers after numeric conversion.
func LooseEqual(a, b any) bool {
	aNil := IsNull(a) || IsUndefined(a)
	bNil := IsNull(b) || IsUndefined(b)
	if aNil || bNil {
		return aNil && bNil
	}

	if StrictEqual(a, b) {
		return true
	}

	if bv, ok := asBool(a); ok {
		return LooseEqual(boolToNumber(bv), b)
	}
	if bv, ok := asBool(b); ok {
		return LooseEqual(a, boolToNumber(bv))
	}

	switch {
	case IsNumber(a) && IsString(b):
		fa, _ := ToFloat64(a)
		return fa == stringToNumber(reflect.ValueOf(b).String())
	case IsString(a) && IsNumber(b):
		fb, _ := ToFloat64(b)
		return stringToNumber(reflect.ValueOf(a).String()) == fb
	}

	return false
}

func numbersEqual(ra, rb reflect.Value) bool {
	ka, kb := ra.Kind(), rb.Kind()

	switch {
	case isIntegerKind(ka) && isIntegerKind(kb):
		return ra.Int() == rb.Int()
	case isUnsignedKind(ka) && isUnsignedKind(kb):
		return ra.Uint() == rb.Uint()
	case isIntegerKind(ka) && isUnsignedKind(kb):
		return ra.Int() >= 0 && uint64(ra.Int()) == rb.Uint()
	case isUnsignedKind(ka) && isIntegerKind(kb):
		return rb.Int() >= 0 && uint64(rb.Int()) == ra.Uint()
	}

	fa, _ := ToFloat64(ra.Interface())
	fb, _ := ToFloat64(rb.Interface())
	return fa == fb
}

func asBool(v any) (bool, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return false, false
	}
	return rv.Bool(), true
}

func boolToNumber(b bool) int {
	if b {
		return 1
	}
	return 0
}

// stringToNumber converts a string to a number the way a coercive comparison does:
// surrounding whitespace is ignored, the empty string is zero and anything unparseable
// is NaN.
func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := cast.ToFloat64E(s)
	if err != nil {
		return math.NaN()
	}
	return f
}
