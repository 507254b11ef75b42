// Package registry maps between fully-qualified operator identifiers and the
// short names the editor displays.
//
// One declarative table drives every lookup: the class-path index (with
// historical path aliases), the reverse name-to-path index, and the
// short-name type sets used by the native format. Keeping a single source
// avoids the two-table drift the converters are otherwise prone to.
package registry

import "github.com/nirslab/nirspipe/pkg/model"

// Operator is one known pipeline operator.
type Operator struct {
	// Name is the short display name ("SNV", "PLSRegression").
	Name string

	// Type classifies the operator for the editor palette.
	Type model.StepType

	// Path is the current fully-qualified identifier.
	Path string

	// Aliases are historical or internal paths that resolve to the same
	// operator. They are accepted on import and never emitted.
	Aliases []string

	// Function marks factory-function operators (referenced by `function`
	// rather than `class` in the canonical format).
	Function bool
}

var operators = []Operator{
	// sklearn scalers and decompositions
	{Name: "MinMaxScaler", Type: model.TypePreprocessing, Path: "sklearn.preprocessing._data.MinMaxScaler",
		Aliases: []string{"sklearn.preprocessing.data.MinMaxScaler"}},
	{Name: "StandardScaler", Type: model.TypePreprocessing, Path: "sklearn.preprocessing._data.StandardScaler",
		Aliases: []string{"sklearn.preprocessing.data.StandardScaler"}},
	{Name: "RobustScaler", Type: model.TypePreprocessing, Path: "sklearn.preprocessing._data.RobustScaler"},
	{Name: "QuantileTransformer", Type: model.TypePreprocessing, Path: "sklearn.preprocessing._data.QuantileTransformer"},
	{Name: "PowerTransformer", Type: model.TypePreprocessing, Path: "sklearn.preprocessing._data.PowerTransformer"},
	{Name: "PCA", Type: model.TypePreprocessing, Path: "sklearn.decomposition._pca.PCA"},

	// NIRS spectral transformations
	{Name: "SNV", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.SNV",
		Aliases: []string{"pinard.preprocessing.SNV", "nirs4all.transformations.SNV"}},
	{Name: "MSC", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.MSC",
		Aliases: []string{"pinard.preprocessing.MSC", "nirs4all.transformations.MSC"}},
	{Name: "SavitzkyGolay", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.SavitzkyGolay",
		Aliases: []string{"pinard.preprocessing.SavitzkyGolay"}},
	{Name: "FirstDerivative", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.FirstDerivative",
		Aliases: []string{"pinard.preprocessing.Derivate"}},
	{Name: "SecondDerivative", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.SecondDerivative"},
	{Name: "Detrend", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.Detrend",
		Aliases: []string{"pinard.preprocessing.Detrend"}},
	{Name: "Gaussian", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.Gaussian"},
	{Name: "Haar", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.Haar"},
	{Name: "Wavelet", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.Wavelet"},
	{Name: "Baseline", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.Baseline",
		Aliases: []string{"pinard.preprocessing.Baseline"}},
	{Name: "CropTransformer", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.CropTransformer"},
	{Name: "ResampleTransformer", Type: model.TypePreprocessing, Path: "nirs4all.operators.transformations.ResampleTransformer"},

	// splitters
	{Name: "KFold", Type: model.TypeSplitting, Path: "sklearn.model_selection._split.KFold"},
	{Name: "ShuffleSplit", Type: model.TypeSplitting, Path: "sklearn.model_selection._split.ShuffleSplit"},
	{Name: "GroupKFold", Type: model.TypeSplitting, Path: "sklearn.model_selection._split.GroupKFold"},
	{Name: "StratifiedKFold", Type: model.TypeSplitting, Path: "sklearn.model_selection._split.StratifiedKFold"},
	{Name: "RepeatedKFold", Type: model.TypeSplitting, Path: "sklearn.model_selection._split.RepeatedKFold"},
	{Name: "LeaveOneGroupOut", Type: model.TypeSplitting, Path: "sklearn.model_selection._split.LeaveOneGroupOut"},
	{Name: "KennardStone", Type: model.TypeSplitting, Path: "nirs4all.operators.splitters.KennardStone",
		Aliases: []string{"pinard.model_selection.KennardStone"}},
	{Name: "SPXY", Type: model.TypeSplitting, Path: "nirs4all.operators.splitters.SPXY",
		Aliases: []string{"pinard.model_selection.SPXY"}},

	// models
	{Name: "PLSRegression", Type: model.TypeModel, Path: "sklearn.cross_decomposition._pls.PLSRegression",
		Aliases: []string{"sklearn.cross_decomposition.pls_.PLSRegression"}},
	{Name: "Ridge", Type: model.TypeModel, Path: "sklearn.linear_model._ridge.Ridge"},
	{Name: "Lasso", Type: model.TypeModel, Path: "sklearn.linear_model._coordinate_descent.Lasso"},
	{Name: "ElasticNet", Type: model.TypeModel, Path: "sklearn.linear_model._coordinate_descent.ElasticNet"},
	{Name: "SVR", Type: model.TypeModel, Path: "sklearn.svm._classes.SVR"},
	{Name: "SVC", Type: model.TypeModel, Path: "sklearn.svm._classes.SVC"},
	{Name: "RandomForestRegressor", Type: model.TypeModel, Path: "sklearn.ensemble._forest.RandomForestRegressor"},
	{Name: "GradientBoostingRegressor", Type: model.TypeModel, Path: "sklearn.ensemble._gb.GradientBoostingRegressor"},
	{Name: "KNeighborsRegressor", Type: model.TypeModel, Path: "sklearn.neighbors._regression.KNeighborsRegressor"},
	{Name: "MetaModel", Type: model.TypeModel, Path: "nirs4all.operators.models.MetaModel"},
	{Name: "nicon", Type: model.TypeModel, Path: "nirs4all.presets.ref_models.nicon", Function: true},
	{Name: "decon", Type: model.TypeModel, Path: "nirs4all.presets.ref_models.decon", Function: true},
	{Name: "customizable_nicon", Type: model.TypeModel, Path: "nirs4all.presets.ref_models.customizable_nicon", Function: true},

	// sample augmentations
	{Name: "Rotate_Translate", Type: model.TypeAugmentation, Path: "nirs4all.operators.augmentation.Rotate_Translate",
		Aliases: []string{"pinard.augmentation.Rotate_Translate"}},
	{Name: "Random_X_Operation", Type: model.TypeAugmentation, Path: "nirs4all.operators.augmentation.Random_X_Operation",
		Aliases: []string{"pinard.augmentation.Random_X_Operation"}},
	{Name: "Spline_X_Perturbations", Type: model.TypeAugmentation, Path: "nirs4all.operators.augmentation.Spline_X_Perturbations"},
	{Name: "Spline_Y_Perturbations", Type: model.TypeAugmentation, Path: "nirs4all.operators.augmentation.Spline_Y_Perturbations"},
	{Name: "GaussianAdditiveNoise", Type: model.TypeAugmentation, Path: "nirs4all.operators.augmentation.GaussianAdditiveNoise"},

	// sample filters
	{Name: "OutlierFilter", Type: model.TypeFilter, Path: "nirs4all.operators.filters.OutlierFilter"},
	{Name: "YRangeFilter", Type: model.TypeFilter, Path: "nirs4all.operators.filters.YRangeFilter"},
	{Name: "NaNFilter", Type: model.TypeFilter, Path: "nirs4all.operators.filters.NaNFilter"},
}

// Known returns the declarative operator table, for tooling that reconciles
// an external node registry against it. The returned slice is shared; do not
// modify it.
func Known() []Operator {
	return operators
}

var (
	byPath     = map[string]Operator{}
	byTypeName = map[string]Operator{}
	namesOf    = map[model.StepType]map[string]bool{}
)

func init() {
	for _, op := range operators {
		byPath[op.Path] = op
		for _, alias := range op.Aliases {
			byPath[alias] = op
		}
		byTypeName[string(op.Type)+":"+op.Name] = op

		set, ok := namesOf[op.Type]
		if !ok {
			set = map[string]bool{}
			namesOf[op.Type] = set
		}
		set[op.Name] = true
	}
}
