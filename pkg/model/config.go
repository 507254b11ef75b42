package model

import (
	"github.com/nirslab/nirspipe/pkg/cmp"
	"github.com/nirslab/nirspipe/pkg/obj"
)

// FinetuneConfig is a model step's declared hyperparameter search space for
// the external tuning procedure.
type FinetuneConfig struct {
	Enabled  bool
	NTrials  *float64
	Timeout  *float64
	Approach string // "grouped" | "individual"
	EvalMode string // "best" | "mean"

	ModelParams []FinetuneParam
	TrainParams []FinetuneParam
}

func (f *FinetuneConfig) Equal(o *FinetuneConfig) bool {
	if f == nil || o == nil {
		return f == nil && o == nil
	}
	return f.Enabled == o.Enabled &&
		cmp.PEqEq(f.NTrials, o.NTrials) &&
		cmp.PEqEq(f.Timeout, o.Timeout) &&
		f.Approach == o.Approach &&
		f.EvalMode == o.EvalMode &&
		cmp.SliceEqWith(f.ModelParams, o.ModelParams, FinetuneParam.Equal) &&
		cmp.SliceEqWith(f.TrainParams, o.TrainParams, FinetuneParam.Equal)
}

func (f *FinetuneConfig) clone() *FinetuneConfig {
	if f == nil {
		return nil
	}
	c := *f
	c.ModelParams = append([]FinetuneParam(nil), f.ModelParams...)
	c.TrainParams = append([]FinetuneParam(nil), f.TrainParams...)
	return &c
}

// FinetuneParam is one search-space entry.
// Either Choices is set (categorical) or the range fields are.
type FinetuneParam struct {
	Name    string
	Type    string // "int" | "float" | "log_float" | "categorical"
	Low     *float64
	High    *float64
	Step    *float64
	Choices []any
}

func (p FinetuneParam) Equal(o FinetuneParam) bool {
	return p.Name == o.Name &&
		p.Type == o.Type &&
		cmp.PEqEq(p.Low, o.Low) &&
		cmp.PEqEq(p.High, o.High) &&
		cmp.PEqEq(p.Step, o.Step) &&
		cmp.SliceEqWith(p.Choices, o.Choices, obj.Equal)
}

// TrainingConfig holds fixed (non-swept) training parameters for neural
// models. Extra keeps keys this struct does not name, so unknown training
// parameters survive a round trip.
type TrainingConfig struct {
	Epochs       *float64
	BatchSize    *float64
	LearningRate *float64
	Patience     *float64
	Optimizer    string
	Verbose      *float64
	Extra        *obj.Object
}

func (tc *TrainingConfig) Equal(o *TrainingConfig) bool {
	if tc == nil || o == nil {
		return tc == nil && o == nil
	}
	return cmp.PEqEq(tc.Epochs, o.Epochs) &&
		cmp.PEqEq(tc.BatchSize, o.BatchSize) &&
		cmp.PEqEq(tc.LearningRate, o.LearningRate) &&
		cmp.PEqEq(tc.Patience, o.Patience) &&
		tc.Optimizer == o.Optimizer &&
		cmp.PEqEq(tc.Verbose, o.Verbose) &&
		obj.Equal(orEmpty(tc.Extra), orEmpty(o.Extra))
}

func (tc *TrainingConfig) clone() *TrainingConfig {
	if tc == nil {
		return nil
	}
	c := *tc
	if tc.Extra != nil {
		c.Extra = obj.Clone(tc.Extra).(*obj.Object)
	}
	return &c
}

type SelectKind string

const (
	SelectBest SelectKind = "best"
	SelectAll  SelectKind = "all"
	SelectTopK SelectKind = "top_k"
)

type SelectSpec struct {
	Kind SelectKind
	TopK int // meaningful only for SelectTopK
}

func (s SelectSpec) Equal(o SelectSpec) bool {
	return s.Kind == o.Kind && s.TopK == o.TopK
}

type MergePrediction struct {
	Branch int
	Select SelectSpec
	Metric string
}

func (m MergePrediction) Equal(o MergePrediction) bool {
	return m.Branch == o.Branch && m.Select.Equal(o.Select) && m.Metric == o.Metric
}

// MergeConfig mirrors the external `merge` keyword.
// A bare mode string imports as {Mode: mode} with no structured fields.
type MergeConfig struct {
	Mode        string // "predictions" | "features"
	Predictions []MergePrediction
	Features    []int
	OutputAs    string
	OnMissing   string
}

func (m *MergeConfig) Equal(o *MergeConfig) bool {
	if m == nil || o == nil {
		return m == nil && o == nil
	}
	return m.Mode == o.Mode &&
		cmp.SliceEqWith(m.Predictions, o.Predictions, MergePrediction.Equal) &&
		cmp.SliceEq(m.Features, o.Features) &&
		m.OutputAs == o.OutputAs &&
		m.OnMissing == o.OnMissing
}

func (m *MergeConfig) clone() *MergeConfig {
	if m == nil {
		return nil
	}
	c := *m
	c.Predictions = append([]MergePrediction(nil), m.Predictions...)
	c.Features = append([]int(nil), m.Features...)
	return &c
}

type ChartConfig struct {
	Kind   string // "chart_2d" | "chart_y"
	Params *obj.Object
}

func (cc *ChartConfig) Equal(o *ChartConfig) bool {
	if cc == nil || o == nil {
		return cc == nil && o == nil
	}
	return cc.Kind == o.Kind && obj.Equal(orEmpty(cc.Params), orEmpty(o.Params))
}

func (cc *ChartConfig) clone() *ChartConfig {
	if cc == nil {
		return nil
	}
	c := *cc
	if cc.Params != nil {
		c.Params = obj.Clone(cc.Params).(*obj.Object)
	}
	return &c
}

type SampleAugmentationConfig struct {
	Count       *float64
	Selection   string
	RandomState *float64
	Mode        string
}

func (sa *SampleAugmentationConfig) Equal(o *SampleAugmentationConfig) bool {
	if sa == nil || o == nil {
		return sa == nil && o == nil
	}
	return cmp.PEqEq(sa.Count, o.Count) &&
		sa.Selection == o.Selection &&
		cmp.PEqEq(sa.RandomState, o.RandomState) &&
		sa.Mode == o.Mode
}

func (sa *SampleAugmentationConfig) clone() *SampleAugmentationConfig {
	if sa == nil {
		return nil
	}
	c := *sa
	return &c
}

type FeatureAugmentationConfig struct {
	Action    string
	Count     *float64
	Selection string
}

func (fa *FeatureAugmentationConfig) Equal(o *FeatureAugmentationConfig) bool {
	if fa == nil || o == nil {
		return fa == nil && o == nil
	}
	return fa.Action == o.Action &&
		cmp.PEqEq(fa.Count, o.Count) &&
		fa.Selection == o.Selection
}

func (fa *FeatureAugmentationConfig) clone() *FeatureAugmentationConfig {
	if fa == nil {
		return nil
	}
	c := *fa
	return &c
}

type SampleFilterConfig struct {
	Mode   string
	Action string
	Report bool
}

func (sf *SampleFilterConfig) Equal(o *SampleFilterConfig) bool {
	if sf == nil || o == nil {
		return sf == nil && o == nil
	}
	return *sf == *o
}

func (sf *SampleFilterConfig) clone() *SampleFilterConfig {
	if sf == nil {
		return nil
	}
	c := *sf
	return &c
}

type ConcatTransformConfig struct {
	Mode string
}

func (ct *ConcatTransformConfig) Equal(o *ConcatTransformConfig) bool {
	if ct == nil || o == nil {
		return ct == nil && o == nil
	}
	return *ct == *o
}

func (ct *ConcatTransformConfig) clone() *ConcatTransformConfig {
	if ct == nil {
		return nil
	}
	c := *ct
	return &c
}

func orEmpty(o *obj.Object) *obj.Object {
	if o == nil {
		return obj.New()
	}
	return o
}
