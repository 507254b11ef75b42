package model

import (
	"github.com/nirslab/nirspipe/pkg/cmp"
	"github.com/nirslab/nirspipe/pkg/obj"
)

// Equal compares two steps semantically. IDs are ignored: every import
// assigns fresh ones, and equality is about what the step means, not which
// editor session created it.
func (s *Step) Equal(o *Step) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.Type == o.Type &&
		s.SubType == o.SubType &&
		s.Name == o.Name &&
		s.CustomName == o.CustomName &&
		s.ClassPath == o.ClassPath &&
		s.FunctionPath == o.FunctionPath &&
		obj.Equal(orEmpty(s.Params), orEmpty(o.Params)) &&
		cmp.SliceEqWith(s.ParamSweeps, o.ParamSweeps, SweepSpec.Equal) &&
		s.StepGenerator.Equal(o.StepGenerator) &&
		s.GeneratorKind == o.GeneratorKind &&
		s.GeneratorOptions.Equal(o.GeneratorOptions) &&
		s.Finetune.Equal(o.Finetune) &&
		s.Training.Equal(o.Training) &&
		s.Merge.Equal(o.Merge) &&
		s.Chart.Equal(o.Chart) &&
		s.SampleAugmentation.Equal(o.SampleAugmentation) &&
		s.FeatureAugmentation.Equal(o.FeatureAugmentation) &&
		s.SampleFilter.Equal(o.SampleFilter) &&
		s.ConcatTransform.Equal(o.ConcatTransform) &&
		s.Comment == o.Comment &&
		s.Content.Equal(o.Content) &&
		obj.Equal(s.Raw, o.Raw)
}

func (sw SweepSpec) Equal(o SweepSpec) bool {
	return sw.Param == o.Param &&
		sw.Kind == o.Kind &&
		obj.Equal(sw.Payload, o.Payload) &&
		sw.Options.Equal(o.Options)
}

func (g *GeneratorSpec) Equal(o *GeneratorSpec) bool {
	if g == nil || o == nil {
		return g == nil && o == nil
	}
	return g.Kind == o.Kind &&
		g.Param == o.Param &&
		obj.Equal(g.Payload, o.Payload) &&
		g.Options.Equal(o.Options)
}

func (gopt *GeneratorOptions) Equal(o *GeneratorOptions) bool {
	if gopt == nil || o == nil {
		return gopt == nil && o == nil
	}
	return cmp.PEqEq(gopt.Pick, o.Pick) &&
		cmp.PEqEq(gopt.Count, o.Count) &&
		cmp.PEqEq(gopt.ThenPick, o.ThenPick) &&
		gopt.Arrange == o.Arrange &&
		gopt.ThenArrange == o.ThenArrange
}
