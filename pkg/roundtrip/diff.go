package roundtrip

import (
	"fmt"

	"github.com/nirslab/nirspipe/pkg/obj"
)

// Diff is one point of divergence between two step lists. Left/Right hold
// the values at Path in the respective inputs; a nil side means the value
// only exists on the other side.
type Diff struct {
	Path  string
	Left  any
	Right any
}

func (d Diff) String() string {
	return fmt.Sprintf("%s: %v != %v", d.Path, d.Left, d.Right)
}

// DeepDiff compares two step lists value by value and reports every
// divergence with a path into the structure. Object key order is not
// compared (both codecs preserve it independently); key sets and values
// are.
func DeepDiff(left, right []any) []Diff {
	var diffs []Diff
	diffValues("steps", left, right, &diffs)
	return diffs
}

func diffValues(path string, left, right any, out *[]Diff) {
	switch l := left.(type) {
	case []any:
		r, ok := right.([]any)
		if !ok {
			*out = append(*out, Diff{path, left, right})
			return
		}
		if len(l) != len(r) {
			*out = append(*out, Diff{fmt.Sprintf("%s(length)", path), len(l), len(r)})
		}
		n := len(l)
		if len(r) < n {
			n = len(r)
		}
		for i := 0; i < n; i++ {
			diffValues(fmt.Sprintf("%s[%d]", path, i), l[i], r[i], out)
		}
	case *obj.Object:
		r, ok := right.(*obj.Object)
		if !ok {
			*out = append(*out, Diff{path, left, right})
			return
		}
		l.Iter(func(key string, lv any) bool {
			rv, ok := r.Get(key)
			if !ok {
				*out = append(*out, Diff{path + "." + key, lv, nil})
				return true
			}
			diffValues(path+"."+key, lv, rv, out)
			return true
		})
		r.Iter(func(key string, rv any) bool {
			if !l.Has(key) {
				*out = append(*out, Diff{path + "." + key, nil, rv})
			}
			return true
		})
	default:
		if !obj.Equal(left, right) {
			*out = append(*out, Diff{path, left, right})
		}
	}
}
