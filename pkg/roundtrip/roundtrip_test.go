package roundtrip_test

import (
	"testing"

	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/nirslab/nirspipe/pkg/roundtrip"
	"github.com/nirslab/nirspipe/pkg/utils/try"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSteps(t *testing.T, source string) []any {
	t.Helper()
	v := try.To(obj.Decode([]byte(source))).OrFatal(t)
	steps, ok := v.([]any)
	require.True(t, ok, "fixture must be a step list")
	return steps
}

func TestValidateCanonicalPipeline(t *testing.T) {
	steps := decodeSteps(t, `[
		{"class": "sklearn.preprocessing._data.MinMaxScaler", "params": {"feature_range": [0, 1]}},
		{"class": "sklearn.model_selection._split.KFold", "params": {"n_splits": 3}},
		{"branch": [["nirs4all.operators.transformations.SNV"], ["nirs4all.operators.transformations.MSC"]]},
		{"merge": {"predictions": [{"branch": 0, "select": "best"}, {"branch": 1, "select": "best"}]}},
		{"model": "nirs4all.operators.models.MetaModel"}
	]`)

	r := roundtrip.Validate(steps, roundtrip.Canonical)
	assert.True(t, r.Valid, "differences: %v", r.Differences)
	assert.True(t, r.StepCountMatch)
	assert.Len(t, r.Exported, len(steps))
}

func TestValidateNativePipeline(t *testing.T) {
	steps := decodeSteps(t, `[
		"SNV",
		{"SavitzkyGolay": {"window_length": 15}},
		{"branch": {"a": ["SNV"], "b": ["MSC"]}},
		{"merge": "predictions"},
		{"model": "PLSRegression"}
	]`)

	r := roundtrip.Validate(steps, roundtrip.Native)
	assert.True(t, r.Valid, "differences: %v", r.Differences)
	assert.Len(t, r.Exported, len(steps))
}

func TestValidateFlagsStepCountDrift(t *testing.T) {
	// a sequential wrapper splices its children on native export, so the
	// exported list is longer than the original
	steps := decodeSteps(t, `[{"sequential": ["SNV", "Detrend"]}, "KFold"]`)

	r := roundtrip.Validate(steps, roundtrip.Native)
	assert.False(t, r.Valid)
	assert.False(t, r.StepCountMatch)
	require.NotEmpty(t, r.Differences)
	assert.Contains(t, r.Differences[0], "step count changed")
	assert.Len(t, r.Exported, 3)
}

func TestDeepDiff(t *testing.T) {
	t.Run("identical lists yield nothing", func(t *testing.T) {
		a := decodeSteps(t, `[{"SNV": {"w": 1}}, "MSC"]`)
		b := decodeSteps(t, `[{"SNV": {"w": 1}}, "MSC"]`)
		assert.Empty(t, roundtrip.DeepDiff(a, b))
	})

	t.Run("value change is path-addressed", func(t *testing.T) {
		a := decodeSteps(t, `[{"model": {"class": "PLS", "params": {"n_components": 10}}}]`)
		b := decodeSteps(t, `[{"model": {"class": "PLS", "params": {"n_components": 12}}}]`)

		diffs := roundtrip.DeepDiff(a, b)
		require.Len(t, diffs, 1)
		assert.Equal(t, "steps[0].model.params.n_components", diffs[0].Path)
		assert.Equal(t, 10.0, diffs[0].Left)
		assert.Equal(t, 12.0, diffs[0].Right)
	})

	t.Run("missing and extra keys both reported", func(t *testing.T) {
		a := decodeSteps(t, `[{"SNV": {"w": 1}}]`)
		b := decodeSteps(t, `[{"SNV": {"v": 1}}]`)

		diffs := roundtrip.DeepDiff(a, b)
		require.Len(t, diffs, 2)
		assert.Equal(t, "steps[0].SNV.w", diffs[0].Path)
		assert.Equal(t, "steps[0].SNV.v", diffs[1].Path)
	})

	t.Run("length change reported once plus element diffs", func(t *testing.T) {
		a := decodeSteps(t, `["SNV", "MSC"]`)
		b := decodeSteps(t, `["SNV"]`)

		diffs := roundtrip.DeepDiff(a, b)
		require.Len(t, diffs, 1)
		assert.Equal(t, "steps(length)", diffs[0].Path)
	})

	t.Run("key order is not a difference", func(t *testing.T) {
		a := []any{obj.New().Set("a", 1.0).Set("b", 2.0)}
		b := []any{obj.New().Set("b", 2.0).Set("a", 1.0)}
		assert.Empty(t, roundtrip.DeepDiff(a, b))
	})
}

func TestCheckTree(t *testing.T) {
	t.Run("well-formed tree passes", func(t *testing.T) {
		branch := model.NewStructural(model.TypeFlow, model.SubBranch)
		branch.Content = model.Grouped([]model.Group{
			{Steps: []*model.Step{model.NewStep(model.TypePreprocessing, "SNV")}},
			{Steps: []*model.Step{model.NewStep(model.TypePreprocessing, "MSC")}},
		})
		steps := []*model.Step{
			model.NewStep(model.TypePreprocessing, "MinMaxScaler"),
			branch,
			model.NewStep(model.TypeModel, "PLSRegression"),
		}
		assert.NoError(t, roundtrip.CheckTree(steps))
	})

	t.Run("aliased subtree is rejected", func(t *testing.T) {
		shared := model.NewStep(model.TypePreprocessing, "SNV")
		container := model.NewStructural(model.TypeUtility, model.SubSampleAugmentation)
		container.Content = model.Flat([]*model.Step{shared})

		err := roundtrip.CheckTree([]*model.Step{shared, container})
		assert.ErrorIs(t, err, roundtrip.ErrDuplicateID)
	})

	t.Run("duplicated id is rejected", func(t *testing.T) {
		a := model.NewStep(model.TypePreprocessing, "SNV")
		b := model.NewStep(model.TypePreprocessing, "MSC")
		b.ID = a.ID

		err := roundtrip.CheckTree([]*model.Step{a, b})
		assert.ErrorIs(t, err, roundtrip.ErrDuplicateID)
	})

	t.Run("clone of a subtree is fine", func(t *testing.T) {
		a := model.NewStep(model.TypePreprocessing, "SNV")
		seq := model.NewStructural(model.TypeFlow, model.SubSequential)
		seq.Content = model.Flat([]*model.Step{a, a.Clone()})

		assert.NoError(t, roundtrip.CheckTree([]*model.Step{seq}))
	})
}
