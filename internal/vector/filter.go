package vector

import "reflect"

// Filter restricts search results by metadata. Each key must be satisfied by
// the record's metadata: a scalar value requires equality, a list value
// requires membership. A key absent from the metadata fails the filter.
type Filter map[string]any

// Matches reports whether metadata satisfies every condition in the filter.
// A nil or empty filter matches everything.
func (f Filter) Matches(metadata map[string]any) bool {
	if len(f) == 0 {
		return true
	}
	for key, want := range f {
		got, ok := metadata[key]
		if !ok {
			return false
		}
		switch list := want.(type) {
		case []string:
			if !containsValue(toAnySlice(list), got) {
				return false
			}
		case []any:
			if !containsValue(list, got) {
				return false
			}
		default:
			if !equalValue(want, got) {
				return false
			}
		}
	}
	return true
}

func toAnySlice(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

func containsValue(list []any, got any) bool {
	for _, candidate := range list {
		if equalValue(candidate, got) {
			return true
		}
	}
	return false
}

// equalValue compares two metadata values. Numbers are compared as float64 so
// that values surviving a JSON round trip (where every number becomes
// float64) still match their in-memory counterparts. Uncomparable values
// (nested maps or slices out of JSON) never match; comparing them with ==
// would panic.
func equalValue(a, b any) bool {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		return af == bf
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || tb == nil {
		return ta == tb
	}
	if !ta.Comparable() || !tb.Comparable() {
		return false
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
