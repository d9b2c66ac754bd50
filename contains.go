package pagecraft

import "reflect"

// ContainsRecursive reports whether needle occurs anywhere inside haystack,
// descending depth-first through nested slices, arrays, and maps. Leaves
// match under strict equality: same dynamic type and same value, so
// int(0) never matches "0" or int64(0).
//
// An empty needle or haystack (nil, false, zero number, empty string,
// empty container) returns false immediately.
func ContainsRecursive(needle, haystack any) bool {
	if isEmpty(needle) || isEmpty(haystack) {
		return false
	}
	return containsValue(needle, reflect.ValueOf(haystack))
}

func containsValue(needle any, v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return false
		}
		return containsValue(needle, v.Elem())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if containsValue(needle, v.Index(i)) {
				return true
			}
		}
		return false
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if containsValue(needle, iter.Value()) {
				return true
			}
		}
		return false
	default:
		return leafEqual(needle, v.Interface())
	}
}

func leafEqual(a, b any) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// isEmpty mirrors falsy-value semantics: nil, false, numeric zero, empty
// string, and zero-length containers all count as empty.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
