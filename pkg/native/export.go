package native

import (
	"github.com/nirslab/nirspipe/pkg/keywords"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
)

// Export converts editor steps back to decoded native steps.
//
// Sequential containers are the one subtype that does not export to a
// single value: their children are spliced directly into the enclosing
// list, so the output may be longer than the input.
func Export(steps []*model.Step) []any {
	out := make([]any, 0, len(steps))
	for _, s := range steps {
		if s.SubType == model.SubSequential && s.Raw == nil {
			out = append(out, Export(s.Content.Steps)...)
			continue
		}
		out = append(out, exportStep(s))
	}
	return out
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
		return obj.New().Set(keyMerge, keywords.MergeToObject(s.Merge))
	case model.SubSampleAugmentation,
		model.SubFeatureAugmentation,
		model.SubSampleFilter,
		model.SubConcatTransform:
		return exportContainer(s)
	case model.SubGenerator:
		return exportGenerator(s)
	case model.SubChart:
		return exportChart(s)
	}

	switch s.Type {
	case model.TypeModel:
		return exportModel(s)
	case model.TypeYProcessing:
		return obj.New().Set(keyYProcessing, buildOperatorRef(s.Name, NormalizeParams(s.Params)))
	default:
		return exportOperator(s)
	}
}

// exportOperator emits a plain operator: the bare short name, {name:
// params}, or the sibling-carrying form when a custom name or sweeps are
// attached.
func exportOperator(s *model.Step) any {
	params := NormalizeParams(s.Params)
	if s.CustomName == "" && len(s.ParamSweeps) == 0 {
		return buildOperatorRef(s.Name, params)
	}

	o := obj.New()
	if params != nil {
		o.Set(s.Name, params)
	} else {
		o.Set(s.Name, nil)
	}
	if s.CustomName != "" {
		o.Set(keyName, s.CustomName)
	}
	keywords.WriteSweeps(o, s.ParamSweeps)
	return o
}

func exportModel(s *model.Step) any {
	o := obj.New().Set(keyModel, buildOperatorRef(s.Name, NormalizeParams(s.Params)))
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

// exportContainer reproduces the container keyword, preferring the
// spelling the document used originally (exclude/tag for sample filters).
func exportContainer(s *model.Step) any {
	key := string(s.SubType)
	if spelling, ok := s.Params.GetString(keySpelling); ok {
		key = spelling
	}

	o := obj.New().Set(key, Export(s.Content.Steps))
	for _, pk := range keywords.ContainerParamKeys[string(s.SubType)] {
		if v, ok := s.Params.Get(pk); ok {
			o.Set(pk, obj.Clone(v))
		}
	}
	return o
}

func generatorKey(kind model.GeneratorKind) string {
	switch kind {
	case model.GenCartesian:
		return keyCartesian
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
			o.Set(keywords.KeyParam, g.Param)
		}
		keywords.WriteGeneratorOptions(o, g.Options)
		return o
	}

	stages := make([]any, len(s.Content.Groups))
	for i, g := range s.Content.Groups {
		stages[i] = Export(g.Steps)
	}
	o.Set(generatorKey(s.GeneratorKind), stages)
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
