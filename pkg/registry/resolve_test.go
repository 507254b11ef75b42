package registry_test

import (
	"testing"

	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/registry"
)

func TestResolveClassPath(t *testing.T) {
	theory := func(path string, name string, typ model.StepType) func(*testing.T) {
		return func(t *testing.T) {
			actual := registry.ResolveClassPath(path)
			if actual.Name != name || actual.Type != typ {
				t.Errorf(
					"ResolveClassPath(%s) --> {%s %s} (expected {%s %s})",
					path, actual.Name, actual.Type, name, typ,
				)
			}
		}
	}

	t.Run("known sklearn scaler", theory(
		"sklearn.preprocessing._data.MinMaxScaler", "MinMaxScaler", model.TypePreprocessing,
	))
	t.Run("known splitter", theory(
		"sklearn.model_selection._split.KFold", "KFold", model.TypeSplitting,
	))
	t.Run("known model", theory(
		"sklearn.cross_decomposition._pls.PLSRegression", "PLSRegression", model.TypeModel,
	))
	t.Run("historical alias", theory(
		"pinard.preprocessing.SNV", "SNV", model.TypePreprocessing,
	))
	t.Run("unknown model path by heuristic", theory(
		"some.vendor.linear_model.FancyRegressor", "FancyRegressor", model.TypeModel,
	))
	t.Run("unknown splitter path by heuristic", theory(
		"vendor.splitters.TimeSeriesSplit", "TimeSeriesSplit", model.TypeSplitting,
	))
	t.Run("unknown augmentation path by heuristic", theory(
		"vendor.augmentation.Jitter", "Jitter", model.TypeAugmentation,
	))
	t.Run("unknown filter path by heuristic", theory(
		"vendor.filters.ZScoreFilter", "ZScoreFilter", model.TypeFilter,
	))
	t.Run("fully unknown path defaults to preprocessing", theory(
		"mystery.package.Thing", "Thing", model.TypePreprocessing,
	))
	t.Run("bare name without dots", theory(
		"Thing", "Thing", model.TypePreprocessing,
	))
}

func TestResolveClassPathIsPure(t *testing.T) {
	path := "sklearn.svm._classes.SVR"
	first := registry.ResolveClassPath(path)
	second := registry.ResolveClassPath(path)
	if first != second {
		t.Errorf("resolution must be referentially transparent: %v != %v", first, second)
	}
}

func TestResolveNameToClassPath(t *testing.T) {
	theory := func(typ model.StepType, name, expected string) func(*testing.T) {
		return func(t *testing.T) {
			if actual := registry.ResolveNameToClassPath(typ, name); actual != expected {
				t.Errorf(
					"ResolveNameToClassPath(%s, %s) --> %s (expected %s)",
					typ, name, actual, expected,
				)
			}
		}
	}

	t.Run("table hit", theory(
		model.TypePreprocessing, "SNV", "nirs4all.operators.transformations.SNV",
	))
	t.Run("table hit model", theory(
		model.TypeModel, "PLSRegression", "sklearn.cross_decomposition._pls.PLSRegression",
	))
	t.Run("miss preprocessing guesses sklearn prefix", theory(
		model.TypePreprocessing, "MysteryScaler", "sklearn.preprocessing.MysteryScaler",
	))
	t.Run("miss splitting guesses model_selection prefix", theory(
		model.TypeSplitting, "MysterySplit", "sklearn.model_selection.MysterySplit",
	))
	t.Run("miss augmentation returns name unchanged", theory(
		model.TypeAugmentation, "MysteryAug", "MysteryAug",
	))
}

func TestRoundTripThroughRegistry(t *testing.T) {
	// every declared operator resolves back to itself
	for _, op := range registry.Known() {
		resolved := registry.ResolveClassPath(op.Path)
		if resolved.Name != op.Name || resolved.Type != op.Type {
			t.Errorf("operator %s does not resolve to itself: %+v", op.Name, resolved)
		}
		if path := registry.ResolveNameToClassPath(op.Type, op.Name); path != op.Path {
			t.Errorf("operator %s reverse-resolves to %s", op.Name, path)
		}
	}
}

func TestInferStepType(t *testing.T) {
	theory := func(name string, expected model.StepType) func(*testing.T) {
		return func(t *testing.T) {
			if actual := registry.InferStepType(name); actual != expected {
				t.Errorf("InferStepType(%s) --> %s (expected %s)", name, actual, expected)
			}
		}
	}

	t.Run("model", theory("PLSRegression", model.TypeModel))
	t.Run("splitter", theory("KFold", model.TypeSplitting))
	t.Run("filter", theory("OutlierFilter", model.TypeFilter))
	t.Run("augmentation", theory("Rotate_Translate", model.TypeAugmentation))
	t.Run("preprocessing", theory("SNV", model.TypePreprocessing))
	t.Run("unknown defaults to preprocessing", theory("Mystery", model.TypePreprocessing))
}
