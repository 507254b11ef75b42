package canonical

import (
	"github.com/nirslab/nirspipe/pkg/keywords"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/nirslab/nirspipe/pkg/registry"
	"github.com/nirslab/nirspipe/pkg/utils"
)

// Export converts editor steps back to decoded canonical steps.
//
// It is the structural inverse of Import. Exporters never mutate the tree;
// class paths preserved from import are emitted verbatim rather than
// re-resolved, so table changes between import and export cannot drift the
// document.
func Export(steps []*model.Step) []any {
	return utils.Map(steps, exportStep)
}

func exportStep(s *model.Step) any {
	if s.Raw != nil {
		return obj.Clone(s.Raw)
	}

	switch s.SubType {
	case model.SubComment:
		return obj.New().Set(keyComment, s.Comment)
	case model.SubBranch:
		return exportBranch(s)
	case model.SubMerge:
		return exportMerge(s)
	case model.SubSampleAugmentation,
		model.SubFeatureAugmentation,
		model.SubSampleFilter,
		model.SubConcatTransform:
		return exportContainer(s)
	case model.SubSequential:
		return obj.New().Set(keyPreprocessing, Export(s.Content.Steps))
	case model.SubGenerator:
		return exportGenerator(s)
	case model.SubChart:
		return exportChart(s)
	}

	switch s.Type {
	case model.TypeModel:
		return exportModel(s)
	case model.TypeYProcessing:
		return exportYProcessing(s)
	default:
		return exportOperator(s)
	}
}

// classPathOf prefers the path preserved at import time over re-resolving.
func classPathOf(s *model.Step) string {
	if s.ClassPath != "" {
		return s.ClassPath
	}
	return registry.ResolveNameToClassPath(s.Type, s.Name)
}

// exportOperator emits a plain operator: the bare class path when there are
// no parameters, else {class, params}.
func exportOperator(s *model.Step) any {
	params := keywords.ExportParams(s.Params)
	if params == nil && len(s.ParamSweeps) == 0 && s.CustomName == "" {
		return classPathOf(s)
	}

	o := obj.New().Set(keyClass, classPathOf(s))
	if params != nil {
		o.Set(keyParams, params)
	}
	if s.CustomName != "" {
		o.Set(keyName, s.CustomName)
	}
	keywords.WriteSweeps(o, s.ParamSweeps)
	return o
}

func exportYProcessing(s *model.Step) any {
	params := keywords.ExportParams(s.Params)
	if params == nil {
		return obj.New().Set(keyYProcessing, classPathOf(s))
	}
	inner := obj.New().Set(keyClass, classPathOf(s)).Set(keyParams, params)
	return obj.New().Set(keyYProcessing, inner)
}

// exportModel assembles the model step and its siblings. When nothing but
// the model reference is present, the result collapses to the minimal
// {model: ...} form.
func exportModel(s *model.Step) any {
	var inner any
	params := keywords.ExportParams(s.Params)
	switch {
	case s.FunctionPath != "":
		ref := obj.New().Set(keyFunction, s.FunctionPath)
		if params != nil {
			ref.Set(keyParams, params)
		}
		inner = ref
	case params != nil:
		inner = obj.New().Set(keyClass, classPathOf(s)).Set(keyParams, params)
	default:
		inner = classPathOf(s)
	}

	o := obj.New().Set(keyModel, inner)
	if s.CustomName != "" {
		o.Set(keyName, s.CustomName)
	}
	if s.Finetune != nil {
		o.Set(keyFinetuneParams, keywords.FinetuneToObject(s.Finetune))
	}
	if s.Training != nil {
		o.Set(keyTrainParams, keywords.TrainingToObject(s.Training))
	}
	keywords.WriteSweeps(o, s.ParamSweeps)
	return o
}

func exportBranch(s *model.Step) any {
	groups := s.Content.Groups

	named := false
	for _, g := range groups {
		if g.Named {
			named = true
			break
		}
	}

	if named {
		branches := obj.New()
		for _, g := range groups {
			branches.Set(g.Name, Export(g.Steps))
		}
		return obj.New().Set(keyBranch, branches)
	}

	branches := make([]any, len(groups))
	for i, g := range groups {
		branches[i] = Export(g.Steps)
	}
	return obj.New().Set(keyBranch, branches)
}

func exportMerge(s *model.Step) any {
	return obj.New().Set(keyMerge, keywords.MergeToObject(s.Merge))
}

func exportContainer(s *model.Step) any {
	key := string(s.SubType)
	o := obj.New().Set(key, Export(s.Content.Steps))

	for _, pk := range keywords.ContainerParamKeys[key] {
		if v, ok := s.Params.Get(pk); ok {
			o.Set(pk, obj.Clone(v))
		}
	}
	return o
}

// generatorKey picks the keyword for a generator kind. Only _or_ belongs to
// the canonical vocabulary proper, but emitting the others keeps generators
// built elsewhere from being silently rewritten into alternatives.
func generatorKey(kind model.GeneratorKind) string {
	switch kind {
	case model.GenCartesian:
		return "_cartesian_"
	case model.GenRange:
		return keywords.KeyRange
	case model.GenLogRange:
		return keywords.KeyLogRange
	case model.GenGrid:
		return keywords.KeyGrid
	default:
		return keyOr
	}
}

func exportGenerator(s *model.Step) any {
	o := obj.New()
	if g := s.StepGenerator; g != nil {
		o.Set(generatorKey(g.Kind), obj.Clone(g.Payload))
		if g.Param != "" {
			o.Set(keyParam, g.Param)
		}
		keywords.WriteGeneratorOptions(o, g.Options)
		return o
	}

	alternatives := make([]any, len(s.Content.Groups))
	for i, g := range s.Content.Groups {
		alternatives[i] = Export(g.Steps)
	}
	o.Set(generatorKey(s.GeneratorKind), alternatives)
	keywords.WriteGeneratorOptions(o, s.GeneratorOptions)
	return o
}

func exportChart(s *model.Step) any {
	cfg := s.Chart
	if cfg == nil {
		cfg = &model.ChartConfig{Kind: keyChart2D}
	}
	if cfg.Params == nil || cfg.Params.Len() == 0 {
		return cfg.Kind
	}
	return obj.New().Set(cfg.Kind, obj.Clone(cfg.Params))
}
