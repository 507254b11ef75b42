// Package model defines the editor-side pipeline tree: the form the
// drag-and-drop editor mutates and both format codecs read and write.
package model

import (
	"github.com/google/uuid"
	"github.com/nirslab/nirspipe/pkg/obj"
)

type StepType string

const (
	TypePreprocessing StepType = "preprocessing"
	TypeSplitting     StepType = "splitting"
	TypeModel         StepType = "model"
	TypeYProcessing   StepType = "y_processing"
	TypeFlow          StepType = "flow"
	TypeUtility       StepType = "utility"
	TypeAugmentation  StepType = "augmentation"
	TypeFilter        StepType = "filter"
)

// SubType distinguishes the flow/utility structural steps.
//
// flow steps: branch, merge, sequential, generator.
// utility steps: the container subtypes, chart, comment.
type SubType string

const (
	SubNone                SubType = ""
	SubBranch              SubType = "branch"
	SubMerge               SubType = "merge"
	SubSampleAugmentation  SubType = "sample_augmentation"
	SubFeatureAugmentation SubType = "feature_augmentation"
	SubSampleFilter        SubType = "sample_filter"
	SubConcatTransform     SubType = "concat_transform"
	SubSequential          SubType = "sequential"
	SubGenerator           SubType = "generator"
	SubChart               SubType = "chart"
	SubComment             SubType = "comment"
)

type GeneratorKind string

const (
	GenNone      GeneratorKind = ""
	GenOr        GeneratorKind = "or"
	GenCartesian GeneratorKind = "cartesian"
	GenRange     GeneratorKind = "range"
	GenLogRange  GeneratorKind = "log_range"
	GenGrid      GeneratorKind = "grid"
)

// Step is one node of the editor tree.
//
// Each Step is owned by exactly one parent (or the document root); the tree
// is strict: no cycles, no shared subtrees. IDs are unique within a tree,
// assigned on creation and stable across edits.
type Step struct {
	ID      string
	Type    StepType
	SubType SubType

	// Name is the short operator/display name ("SNV", "PLSRegression").
	Name string

	// CustomName is a user-assigned label, distinct from Name.
	CustomName string

	// ClassPath / FunctionPath hold the fully-qualified identifier preserved
	// from import. Exporters prefer these over re-resolving from Name.
	ClassPath    string
	FunctionPath string

	// Params holds the step's concrete parameters as decoded values
	// (scalars, lists, nested objects). Keys starting with "_" are internal
	// markers and are stripped on export.
	Params *obj.Object

	// ParamSweeps declares per-parameter search spaces, in declaration order.
	// A parameter is either fixed (in Params) or swept, never both.
	ParamSweeps []SweepSpec

	// StepGenerator is a generator applied to the whole step rather than a
	// single parameter.
	StepGenerator *GeneratorSpec

	// GeneratorKind/GeneratorOptions describe a generator step
	// (SubType == SubGenerator) whose alternatives live in Content.
	GeneratorKind    GeneratorKind
	GeneratorOptions *GeneratorOptions

	Finetune *FinetuneConfig
	Training *TrainingConfig

	Merge *MergeConfig
	Chart *ChartConfig

	SampleAugmentation  *SampleAugmentationConfig
	FeatureAugmentation *FeatureAugmentationConfig
	SampleFilter        *SampleFilterConfig
	ConcatTransform     *ConcatTransformConfig

	// Comment holds the text of a comment step.
	Comment string

	// Content is the nested steps of a structural step. Each subtype uses
	// exactly one variant: containers and sequential groups are Flat, branch
	// and or/cartesian generators are Grouped.
	Content NestedContent

	// Raw preserves an external fragment the importer could not interpret.
	// It is re-emitted unchanged on export.
	Raw any
}

// NewStep creates a step with a fresh unique ID.
func NewStep(t StepType, name string) *Step {
	return &Step{
		ID:     uuid.NewString(),
		Type:   t,
		Name:   name,
		Params: obj.New(),
	}
}

// NewStructural creates a flow/utility step of the given subtype.
func NewStructural(t StepType, sub SubType) *Step {
	s := NewStep(t, string(sub))
	s.SubType = sub
	return s
}

// SweepSpec declares a search space over one parameter.
type SweepSpec struct {
	Param   string
	Kind    GeneratorKind
	Payload any
	Options *GeneratorOptions
}

// GeneratorSpec is a whole-step generator declaration.
type GeneratorSpec struct {
	Kind    GeneratorKind
	Param   string
	Payload any
	Options *GeneratorOptions
}

// GeneratorOptions carries the cardinality controls of generator keywords.
// Unset numeric fields are nil.
type GeneratorOptions struct {
	Pick        *float64
	Count       *float64
	ThenPick    *float64
	Arrange     string
	ThenArrange string
}

// Walk traverses steps in pre-order, descending into nested content.
// Traversal stops when fn returns false.
func Walk(steps []*Step, fn func(*Step) bool) bool {
	for _, s := range steps {
		if !fn(s) {
			return false
		}
		switch s.Content.Kind {
		case ContentFlat:
			if !Walk(s.Content.Steps, fn) {
				return false
			}
		case ContentGrouped:
			for _, g := range s.Content.Groups {
				if !Walk(g.Steps, fn) {
					return false
				}
			}
		}
	}
	return true
}

// Clone deep-copies the step with a fresh ID on every node.
// Used by the editor for copy/paste; exported documents never carry IDs.
func (s *Step) Clone() *Step {
	c := *s
	c.ID = uuid.NewString()

	if s.Params != nil {
		c.Params = obj.Clone(s.Params).(*obj.Object)
	}
	if s.ParamSweeps != nil {
		c.ParamSweeps = make([]SweepSpec, len(s.ParamSweeps))
		for i, sw := range s.ParamSweeps {
			sw.Payload = obj.Clone(sw.Payload)
			sw.Options = sw.Options.clone()
			c.ParamSweeps[i] = sw
		}
	}
	if s.StepGenerator != nil {
		g := *s.StepGenerator
		g.Payload = obj.Clone(g.Payload)
		g.Options = g.Options.clone()
		c.StepGenerator = &g
	}
	c.GeneratorOptions = s.GeneratorOptions.clone()
	c.Finetune = s.Finetune.clone()
	c.Training = s.Training.clone()
	c.Merge = s.Merge.clone()
	c.Chart = s.Chart.clone()
	c.SampleAugmentation = s.SampleAugmentation.clone()
	c.FeatureAugmentation = s.FeatureAugmentation.clone()
	c.SampleFilter = s.SampleFilter.clone()
	c.ConcatTransform = s.ConcatTransform.clone()
	c.Content = s.Content.clone()
	if s.Raw != nil {
		c.Raw = obj.Clone(s.Raw)
	}
	return &c
}

func (o *GeneratorOptions) clone() *GeneratorOptions {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
