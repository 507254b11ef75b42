package native

import (
	"strings"

	"github.com/nirslab/nirspipe/pkg/obj"
)

const (
	suffixMin = "_min"
	suffixMax = "_max"
)

// FlattenParams prepares decoded native parameters for the editor: any
// 2-element all-numeric tuple `base: [min, max]` is split into `base_min`
// and `base_max`. Detection is shape-only; no parameter metadata is
// consulted. Everything else is deep-copied unchanged.
func FlattenParams(o *obj.Object) *obj.Object {
	out := obj.New()
	o.Iter(func(key string, value any) bool {
		if min, max, ok := numericPair(value); ok {
			out.Set(key+suffixMin, min)
			out.Set(key+suffixMax, max)
			return true
		}
		out.Set(key, obj.Clone(value))
		return true
	})
	return out
}

func numericPair(v any) (float64, float64, bool) {
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return 0, 0, false
	}
	min, ok := obj.Number(list[0])
	if !ok {
		return 0, 0, false
	}
	max, ok := obj.Number(list[1])
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// NormalizeParams is the export-side inverse of FlattenParams: each
// `base_min`/`base_max` pair of numbers is recombined into `base: [min,
// max]` at the position of whichever half appears first. Keys beginning
// with an underscore are internal editor state and are dropped. Returns nil
// when nothing remains.
func NormalizeParams(o *obj.Object) *obj.Object {
	if o == nil {
		return nil
	}

	out := obj.New()
	consumed := map[string]bool{}
	o.Iter(func(key string, value any) bool {
		if strings.HasPrefix(key, "_") || consumed[key] {
			return true
		}

		if base, other, ok := pairCounterpart(key); ok {
			if ov, exists := o.Get(other); exists && !consumed[other] {
				a, aok := obj.Number(value)
				b, bok := obj.Number(ov)
				if aok && bok {
					min, max := a, b
					if strings.HasSuffix(key, suffixMax) {
						min, max = b, a
					}
					out.Set(base, []any{min, max})
					consumed[key] = true
					consumed[other] = true
					return true
				}
			}
		}

		out.Set(key, obj.Clone(value))
		return true
	})

	if out.Len() == 0 {
		return nil
	}
	return out
}

// pairCounterpart maps x_min -> (x, x_max) and x_max -> (x, x_min).
func pairCounterpart(key string) (base, other string, ok bool) {
	switch {
	case strings.HasSuffix(key, suffixMin) && len(key) > len(suffixMin):
		base = strings.TrimSuffix(key, suffixMin)
		return base, base + suffixMax, true
	case strings.HasSuffix(key, suffixMax) && len(key) > len(suffixMax):
		base = strings.TrimSuffix(key, suffixMax)
		return base, base + suffixMin, true
	}
	return "", "", false
}

// buildOperatorRef encodes an operator reference: the bare short name when
// there are no parameters, else {name: params}. An empty params object
// never gets emitted.
func buildOperatorRef(name string, params *obj.Object) any {
	if params == nil || params.Len() == 0 {
		return name
	}
	return obj.New().Set(name, params)
}
