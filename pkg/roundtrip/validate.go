// Package roundtrip checks that a pipeline document survives the trip
// through the editor model: import followed by export, plus structural
// integrity of the step tree itself.
package roundtrip

import (
	"fmt"

	"github.com/nirslab/nirspipe/pkg/canonical"
	"github.com/nirslab/nirspipe/pkg/native"
	"github.com/nirslab/nirspipe/pkg/obj"
)

// Format selects which codec the validator exercises.
type Format string

const (
	Canonical Format = "canonical"
	Native    Format = "native"
)

// Report is the result of a shallow round-trip validation. Exported holds
// the re-exported steps so callers can inspect them further.
type Report struct {
	Valid          bool
	StepCountMatch bool
	Differences    []string
	Exported       []any
}

// Validate runs import then export over the given steps and compares coarse
// structural signals: top-level step count, and branch/merge arity per
// step. It is a regression smoke test, not a semantic diff; parameter
// values and key ordering are deliberately not checked here (that is
// DeepDiff's job).
func Validate(steps []any, format Format) Report {
	var exported []any
	switch format {
	case Native:
		exported = native.Export(native.Import(steps))
	default:
		exported = canonical.Export(canonical.Import(steps))
	}

	r := Report{Exported: exported}
	r.StepCountMatch = len(exported) == len(steps)
	if !r.StepCountMatch {
		r.Differences = append(r.Differences,
			fmt.Sprintf("step count changed: %d -> %d", len(steps), len(exported)))
	}

	n := len(steps)
	if len(exported) < n {
		n = len(exported)
	}
	for i := 0; i < n; i++ {
		for _, key := range []string{"branch", "merge"} {
			before, ok := keywordArity(steps[i], key)
			if !ok {
				continue
			}
			after, ok := keywordArity(exported[i], key)
			if !ok {
				r.Differences = append(r.Differences,
					fmt.Sprintf("step[%d]: %s keyword lost", i, key))
				continue
			}
			if before != after {
				r.Differences = append(r.Differences,
					fmt.Sprintf("step[%d]: %s arity changed: %d -> %d", i, key, before, after))
			}
		}
	}

	r.Valid = len(r.Differences) == 0
	return r
}

// keywordArity reports how many branches (or merge predictions) a step's
// keyword value carries: list length, object key count, or 0 for a bare
// scalar form.
func keywordArity(step any, key string) (int, bool) {
	o, ok := step.(*obj.Object)
	if !ok {
		return 0, false
	}
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}

	switch t := v.(type) {
	case []any:
		return len(t), true
	case *obj.Object:
		if key == "merge" {
			if preds, ok := t.GetList("predictions"); ok {
				return len(preds), true
			}
			return 0, true
		}
		return t.Len(), true
	default:
		return 0, true
	}
}
