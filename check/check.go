package check

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/emavok/paranoia/internal/isodate"
)

// IsNil reports whether v is nil or a nil pointer, map, slice, func or interface.
// Both JSON null and a missing object key surface as nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// IsString reports whether v is a string (including named string types).
func IsString(v any) bool {
	_, ok := stringOf(v)
	return ok
}

// IsBoolean reports whether v is a bool (including named bool types).
func IsBoolean(v any) bool {
	if _, ok := v.(bool); ok {
		return true
	}
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Bool
}

// IsNumber reports whether v is any Go integer or float kind or a json.Number
// holding a parseable number. NaN and infinities are numbers.
func IsNumber(v any) bool {
	_, ok := Number(v)
	return ok
}

// IsValidNumber reports whether v is a finite number.
func IsValidNumber(v any) bool {
	f, ok := Number(v)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsInteger reports whether v is a whole, finite number.
func IsInteger(v any) bool {
	switch n := v.(type) {
	case json.Number:
		if _, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return true
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	}
	f, ok := Number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f == math.Trunc(f)
}

// IsArray reports whether v is a slice or an array.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]any); ok {
		return true
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsObject reports whether v is a map with string keys.
func IsObject(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(map[string]any); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// IsFunction reports whether v is a func value.
func IsFunction(v any) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Func
}

// IsIsoDate reports whether v is a string holding an ISO-8601 date or date-time
// that denotes a real calendar instant.
func IsIsoDate(v any) bool {
	s, ok := stringOf(v)
	return ok && isodate.Valid(s)
}

// IsEmptyString reports whether v is the empty string. It panics when v is not
// a string.
func IsEmptyString(v any) bool {
	s, ok := stringOf(v)
	if !ok {
		invalidParam("IsEmptyString", "value", v)
	}
	return s == ""
}

// IsEmptyArray reports whether v is an empty slice or array. It panics when v
// is not an array.
func IsEmptyArray(v any) bool {
	if !IsArray(v) {
		invalidParam("IsEmptyArray", "value", v)
	}
	return reflect.ValueOf(v).Len() == 0
}

// IsType reports whether v belongs to category t. It panics for an unknown t.
func IsType(v any, t Type) bool {
	switch t {
	case TypeString:
		return IsString(v)
	case TypeNumber:
		return IsNumber(v)
	case TypeInteger:
		return IsInteger(v)
	case TypeBoolean:
		return IsBoolean(v)
	case TypeArray:
		return IsArray(v)
	case TypeObject:
		return IsObject(v)
	case TypeDate:
		return IsIsoDate(v)
	case TypeFunction:
		return IsFunction(v)
	}
	invalidParam("IsType", "type", t)
	return false
}

// IsMin reports whether v is a number >= min.
func IsMin(v any, min float64) bool {
	if !finite(min) {
		invalidParam("IsMin", "min", min)
	}
	f, ok := Number(v)
	return ok && f >= min
}

// IsMax reports whether v is a number <= max.
func IsMax(v any, max float64) bool {
	if !finite(max) {
		invalidParam("IsMax", "max", max)
	}
	f, ok := Number(v)
	return ok && f <= max
}

// IsMinLength reports whether v is a string of at least minLength characters.
func IsMinLength(v any, minLength int) bool {
	if minLength < 0 {
		invalidParam("IsMinLength", "minLength", minLength)
	}
	n, ok := Length(v)
	return ok && n >= minLength
}

// IsMaxLength reports whether v is a string of at most maxLength characters.
func IsMaxLength(v any, maxLength int) bool {
	if maxLength < 0 {
		invalidParam("IsMaxLength", "maxLength", maxLength)
	}
	n, ok := Length(v)
	return ok && n <= maxLength
}

// IsMinDate reports whether v is an ISO date not before minDate. A value that
// is not an ISO date fails.
func IsMinDate(v any, minDate string) bool {
	if !isodate.Valid(minDate) {
		invalidParam("IsMinDate", "minDate", minDate)
	}
	s, ok := stringOf(v)
	if !ok {
		return false
	}
	c, ok := isodate.Compare(s, minDate)
	return ok && c >= 0
}

// IsMaxDate reports whether v is an ISO date not after maxDate. A value that is
// not an ISO date fails.
func IsMaxDate(v any, maxDate string) bool {
	if !isodate.Valid(maxDate) {
		invalidParam("IsMaxDate", "maxDate", maxDate)
	}
	s, ok := stringOf(v)
	if !ok {
		return false
	}
	c, ok := isodate.Compare(s, maxDate)
	return ok && c <= 0
}

// IsIn reports whether v strictly equals one of values. Numbers compare by value
// across Go numeric kinds; other values must have the same dynamic type and be
// equal. Maps, slices and funcs never match.
func IsIn(v any, values []any) bool {
	for _, item := range values {
		if Equal(v, item) {
			return true
		}
	}
	return false
}

// Equal is the strict equality used by IsIn.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, okA := Number(a)
	fb, okB := Number(b)
	if okA || okB {
		return okA && okB && fa == fb
	}
	if sa, ok := stringOf(a); ok {
		sb, ok := stringOf(b)
		return ok && sa == sb
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Number converts v to float64 when it is numeric.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
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

// Length returns the character count of a string value.
func Length(v any) (int, bool) {
	s, ok := stringOf(v)
	if !ok {
		return 0, false
	}
	return utf8.RuneCountInString(s), true
}

func stringOf(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return "", false
	case nil:
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
