package registry

import (
	"strings"

	"github.com/nirslab/nirspipe/pkg/model"
)

// Resolved is the best-effort classification of a class path.
type Resolved struct {
	Name string
	Type model.StepType
}

// ResolveClassPath maps a fully-qualified identifier to a short name and a
// step type.
//
// Resolution never fails: an exact table hit wins; otherwise the trailing
// dotted segment becomes the name and the type is inferred from path
// substrings; otherwise preprocessing. The only symptom of a miss is reduced
// fidelity, surfaced by round-trip validation rather than an error.
func ResolveClassPath(path string) Resolved {
	if op, ok := byPath[path]; ok {
		return Resolved{Name: op.Name, Type: op.Type}
	}

	name := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		name = path[i+1:]
	}
	return Resolved{Name: name, Type: inferTypeFromPath(path)}
}

func inferTypeFromPath(path string) model.StepType {
	switch {
	case strings.Contains(path, "model_selection"), strings.Contains(path, "splitters"):
		return model.TypeSplitting
	case strings.Contains(path, "cross_decomposition"),
		strings.Contains(path, "ensemble"),
		strings.Contains(path, "linear_model"),
		strings.Contains(path, "svm"),
		strings.Contains(path, "models"):
		return model.TypeModel
	case strings.Contains(path, "preprocessing"),
		strings.Contains(path, "decomposition"),
		strings.Contains(path, "transforms"):
		return model.TypePreprocessing
	case strings.Contains(path, "augmentation"):
		return model.TypeAugmentation
	case strings.Contains(path, "filters"):
		return model.TypeFilter
	default:
		return model.TypePreprocessing
	}
}

// ResolveNameToClassPath is the reverse lookup: short name plus step type to
// a fully-qualified path.
//
// On a table miss it guesses a type-specific sklearn prefix for the types
// where that guess is usually right, and otherwise returns the name
// unchanged (the native format accepts bare names).
func ResolveNameToClassPath(t model.StepType, name string) string {
	if op, ok := byTypeName[string(t)+":"+name]; ok {
		return op.Path
	}

	switch t {
	case model.TypePreprocessing:
		return "sklearn.preprocessing." + name
	case model.TypeSplitting:
		return "sklearn.model_selection." + name
	case model.TypeModel:
		return "sklearn.linear_model." + name
	default:
		return name
	}
}

// InferStepType classifies a bare short name, for the native format which
// carries no paths. Model names are checked first, then splitters, then
// filters, then augmentations; anything unknown is preprocessing.
func InferStepType(className string) model.StepType {
	for _, t := range []model.StepType{
		model.TypeModel,
		model.TypeSplitting,
		model.TypeFilter,
		model.TypeAugmentation,
	} {
		if namesOf[t][className] {
			return t
		}
	}
	return model.TypePreprocessing
}

// LookupFunction reports whether the named operator is a factory function.
func LookupFunction(t model.StepType, name string) bool {
	op, ok := byTypeName[string(t)+":"+name]
	return ok && op.Function
}
