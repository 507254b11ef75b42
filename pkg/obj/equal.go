package obj

import "github.com/nirslab/nirspipe/pkg/cmp"

// Equal deep-compares two decoded values.
//
// Objects are equal when they hold the same keys with equal values; key
// order does not affect equality (order is a presentation concern).
func Equal(a, b any) bool {
	switch ta := a.(type) {
	case *Object:
		tb, ok := b.(*Object)
		if !ok || ta.Len() != tb.Len() {
			return false
		}
		equal := true
		ta.Iter(func(key string, va any) bool {
			vb, ok := tb.Get(key)
			if !ok || !Equal(va, vb) {
				equal = false
				return false
			}
			return true
		})
		return equal
	case []any:
		tb, ok := b.([]any)
		if !ok {
			return false
		}
		return cmp.SliceEqWith(ta, tb, Equal)
	default:
		return a == b
	}
}
