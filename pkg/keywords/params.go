// Package keywords implements the pieces of the external keyword vocabulary
// shared by the canonical and native formats: parameter maps, generator
// cardinality options, finetune search spaces, and training parameters.
package keywords

import "github.com/nirslab/nirspipe/pkg/obj"

// CloneParams copies a params object for the editor tree, so the importer's
// input document can be discarded or mutated by its owner afterwards.
// A missing params object becomes an empty one.
func CloneParams(o *obj.Object) *obj.Object {
	if o == nil {
		return obj.New()
	}
	return obj.Clone(o).(*obj.Object)
}

// ExportParams copies params for emission, dropping keys that start with
// "_" (internal editor markers, never part of the external formats).
// Returns nil when nothing remains, so callers can collapse the wrapper.
func ExportParams(o *obj.Object) *obj.Object {
	if o == nil {
		return nil
	}
	ret := obj.New()
	o.Iter(func(key string, value any) bool {
		if len(key) > 0 && key[0] == '_' {
			return true
		}
		ret.Set(key, obj.Clone(value))
		return true
	})
	if ret.Len() == 0 {
		return nil
	}
	return ret
}
