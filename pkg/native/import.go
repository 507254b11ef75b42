package native

import (
	"github.com/nirslab/nirspipe/pkg/keywords"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/nirslab/nirspipe/pkg/registry"
	"github.com/nirslab/nirspipe/pkg/utils"
	"go.uber.org/zap"
)

type Importer struct {
	log *zap.Logger
}

type ImportOption func(*Importer)

// WithLogger routes importer diagnostics (unrecognized step shapes) to the
// given logger.
func WithLogger(l *zap.Logger) ImportOption {
	return func(im *Importer) {
		im.log = l
	}
}

func NewImporter(options ...ImportOption) *Importer {
	im := &Importer{log: zap.NewNop()}
	for _, opt := range options {
		opt(im)
	}
	return im
}

// Import converts decoded native steps into editor steps.
//
// Like the canonical importer it never fails: anything it cannot interpret
// is preserved verbatim on a raw step and reported through the logger.
func Import(steps []any, options ...ImportOption) []*model.Step {
	return NewImporter(options...).Import(steps)
}

func (im *Importer) Import(steps []any) []*model.Step {
	return utils.Map(steps, im.importStep)
}

func (im *Importer) importStep(v any) *model.Step {
	s := decodeStep(v)
	switch s.kind {
	case kindOperatorName:
		return im.importOperatorName(s.str)
	case kindChartName:
		return im.importChartName(s.str)
	case kindComment:
		return im.importComment(s.fields)
	case kindModel:
		return im.importModel(s.fields)
	case kindYProcessing:
		return im.importYProcessing(s.fields)
	case kindBranch:
		return im.importBranch(s.fields)
	case kindMerge:
		return im.importMerge(s.fields)
	case kindSampleAugmentation:
		return im.importContainer(s.fields, keySampleAugmentation, model.SubSampleAugmentation)
	case kindFeatureAugmentation:
		return im.importContainer(s.fields, keyFeatureAugmentation, model.SubFeatureAugmentation)
	case kindSampleFilter:
		return im.importContainer(s.fields, keySampleFilter, model.SubSampleFilter)
	case kindExclude:
		return im.importContainer(s.fields, keyExclude, model.SubSampleFilter)
	case kindTag:
		return im.importContainer(s.fields, keyTag, model.SubSampleFilter)
	case kindConcatTransform:
		return im.importContainer(s.fields, keyConcatTransform, model.SubConcatTransform)
	case kindSequential:
		return im.importSequential(s.fields)
	case kindChart:
		return im.importChart(s.fields, s.str)
	case kindOrGenerator:
		return im.importOr(s.fields)
	case kindCartesian:
		return im.importCartesian(s.fields)
	case kindRange:
		return im.importStandaloneSweep(s.fields, model.GenRange)
	case kindLogRange:
		return im.importStandaloneSweep(s.fields, model.GenLogRange)
	case kindGrid:
		return im.importStandaloneSweep(s.fields, model.GenGrid)
	case kindOperator:
		return im.importOperator(s.fields, s.str)
	default:
		return im.importUnknown(s.raw)
	}
}

func (im *Importer) importOperatorName(name string) *model.Step {
	t := registry.InferStepType(name)
	node := model.NewStep(t, name)
	if registry.LookupFunction(t, name) {
		node.FunctionPath = registry.ResolveNameToClassPath(t, name)
	}
	return node
}

func (im *Importer) importChartName(name string) *model.Step {
	node := model.NewStructural(model.TypeUtility, model.SubChart)
	node.Chart = &model.ChartConfig{Kind: name}
	return node
}

func (im *Importer) importComment(o *obj.Object) *model.Step {
	node := model.NewStructural(model.TypeUtility, model.SubComment)
	if text, ok := o.GetString(keyComment); ok {
		node.Comment = text
	}
	return node
}

// importOperator handles a {ShortName: {params}} step, together with any
// sweep and name siblings it may carry.
func (im *Importer) importOperator(o *obj.Object, name string) *model.Step {
	node := model.NewStep(registry.InferStepType(name), name)
	if params, ok := o.GetObject(name); ok {
		node.Params = FlattenParams(params)
	}
	if custom, ok := o.GetString(keyName); ok {
		node.CustomName = custom
	}
	node.ParamSweeps = keywords.ParseSweeps(o)
	return node
}

// importModel handles the model keyword plus its possible siblings: a
// custom name, finetune_params, train_params, and per-parameter sweeps.
func (im *Importer) importModel(o *obj.Object) *model.Step {
	node := model.NewStep(model.TypeModel, "")

	mv, _ := o.Get(keyModel)
	if !im.readOperatorRef(node, mv) {
		im.log.Warn("model value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}
	node.Type = model.TypeModel

	if name, ok := o.GetString(keyName); ok {
		node.CustomName = name
	}
	if ft, ok := o.GetObject(keyFinetuneParams); ok {
		node.Finetune = keywords.ParseFinetune(ft)
	}
	if tp, ok := o.GetObject(keyTrainParams); ok {
		node.Training = keywords.ParseTraining(tp)
	}

	node.ParamSweeps = keywords.ParseSweeps(o)
	return node
}

// readOperatorRef fills a node from a native operator reference: either a
// bare short name or a single-key {ShortName: {params}} object.
func (im *Importer) readOperatorRef(node *model.Step, v any) bool {
	switch t := v.(type) {
	case string:
		node.Name = t
		inferred := registry.InferStepType(t)
		if registry.LookupFunction(inferred, t) || registry.LookupFunction(node.Type, t) {
			node.FunctionPath = registry.ResolveNameToClassPath(inferred, t)
		}
		return true
	case *obj.Object:
		name, ok := operatorKeyOf(t)
		if !ok {
			return false
		}
		node.Name = name
		if params, pok := t.GetObject(name); pok {
			node.Params = FlattenParams(params)
		}
		return true
	}
	return false
}

func (im *Importer) importYProcessing(o *obj.Object) *model.Step {
	node := model.NewStep(model.TypeYProcessing, "")
	yv, _ := o.Get(keyYProcessing)
	if !im.readOperatorRef(node, yv) {
		im.log.Warn("y_processing value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}
	node.Type = model.TypeYProcessing
	return node
}

// importBranch disambiguates structurally: an array of arrays is indexed
// branches, an object keyed by branch name is named branches.
func (im *Importer) importBranch(o *obj.Object) *model.Step {
	node := model.NewStructural(model.TypeFlow, model.SubBranch)

	bv, _ := o.Get(keyBranch)
	switch t := bv.(type) {
	case []any:
		groups := make([]model.Group, len(t))
		for i, sub := range t {
			groups[i] = model.Group{Steps: im.importStepList(sub)}
		}
		node.Content = model.Grouped(groups)
	case *obj.Object:
		groups := make([]model.Group, 0, t.Len())
		t.Iter(func(name string, sub any) bool {
			groups = append(groups, model.Group{
				Name:  name,
				Named: true,
				Steps: im.importStepList(sub),
			})
			return true
		})
		node.Content = model.Grouped(groups)
	default:
		im.log.Warn("branch value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}
	return node
}

func (im *Importer) importStepList(v any) []*model.Step {
	if list, ok := v.([]any); ok {
		return im.Import(list)
	}
	return []*model.Step{im.importStep(v)}
}

func (im *Importer) importMerge(o *obj.Object) *model.Step {
	mv, _ := o.Get(keyMerge)
	cfg := keywords.ParseMerge(mv)
	if cfg == nil {
		im.log.Warn("merge value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}

	node := model.NewStructural(model.TypeFlow, model.SubMerge)
	node.Merge = cfg
	return node
}

// importContainer imports a nested operator container. exclude and tag are
// alternate spellings of a sample filter; the spelling is remembered so the
// exporter can reproduce it.
func (im *Importer) importContainer(o *obj.Object, key string, sub model.SubType) *model.Step {
	node := model.NewStructural(model.TypeUtility, sub)

	cv, _ := o.Get(key)
	node.Content = model.Flat(im.importStepList(cv))

	for _, pk := range keywords.ContainerParamKeys[string(sub)] {
		if v, ok := o.Get(pk); ok {
			node.Params.Set(pk, obj.Clone(v))
		}
	}
	if key != string(sub) {
		node.Params.Set(keySpelling, key)
	}
	keywords.FillContainerConfig(node)
	return node
}

func (im *Importer) importSequential(o *obj.Object) *model.Step {
	sv, _ := o.Get(keySequential)
	list, ok := sv.([]any)
	if !ok {
		im.log.Warn("sequential value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}

	node := model.NewStructural(model.TypeFlow, model.SubSequential)
	node.Content = model.Flat(im.Import(list))
	return node
}

func (im *Importer) importChart(o *obj.Object, key string) *model.Step {
	node := model.NewStructural(model.TypeUtility, model.SubChart)
	cfg := &model.ChartConfig{Kind: key}
	if params, ok := o.GetObject(key); ok {
		cfg.Params = keywords.CloneParams(params)
	}
	node.Chart = cfg
	return node
}

// importOr handles a standalone _or_ step. With a sibling `param` key it is
// a parameter generator; otherwise its alternatives are step lists.
func (im *Importer) importOr(o *obj.Object) *model.Step {
	node := model.NewStructural(model.TypeFlow, model.SubGenerator)
	node.GeneratorKind = model.GenOr
	node.GeneratorOptions = keywords.ParseGeneratorOptions(o)

	ov, _ := o.Get(keyOr)
	if param, ok := o.GetString(keywords.KeyParam); ok {
		node.StepGenerator = &model.GeneratorSpec{
			Kind:    model.GenOr,
			Param:   param,
			Payload: obj.Clone(ov),
			Options: node.GeneratorOptions,
		}
		return node
	}

	alternatives, ok := ov.([]any)
	if !ok {
		im.log.Warn("_or_ value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}
	groups := make([]model.Group, len(alternatives))
	for i, alt := range alternatives {
		groups[i] = model.Group{Steps: im.importStepList(alt)}
	}
	node.Content = model.Grouped(groups)
	return node
}

// importCartesian handles the multi-stage Cartesian product generator.
// Each stage is itself a list of alternatives; stages become groups.
func (im *Importer) importCartesian(o *obj.Object) *model.Step {
	cv, _ := o.Get(keyCartesian)
	stages, ok := cv.([]any)
	if !ok {
		im.log.Warn("_cartesian_ value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}

	node := model.NewStructural(model.TypeFlow, model.SubGenerator)
	node.GeneratorKind = model.GenCartesian
	node.GeneratorOptions = keywords.ParseGeneratorOptions(o)

	groups := make([]model.Group, len(stages))
	for i, stage := range stages {
		groups[i] = model.Group{Steps: im.importStepList(stage)}
	}
	node.Content = model.Grouped(groups)
	return node
}

// importStandaloneSweep handles a _range_/_log_range_/_grid_ keyword that
// reached top level. When an operator key rides along as a sibling the step
// is really an operator with sweeps and is imported as such.
func (im *Importer) importStandaloneSweep(o *obj.Object, kind model.GeneratorKind) *model.Step {
	if name, ok := operatorKeyOf(o); ok {
		return im.importOperator(o, name)
	}

	node := model.NewStructural(model.TypeFlow, model.SubGenerator)
	node.GeneratorKind = kind
	node.GeneratorOptions = keywords.ParseGeneratorOptions(o)

	var payload any
	switch kind {
	case model.GenRange:
		payload, _ = o.Get(keywords.KeyRange)
	case model.GenLogRange:
		payload, _ = o.Get(keywords.KeyLogRange)
	case model.GenGrid:
		payload, _ = o.Get(keywords.KeyGrid)
	}

	param, _ := o.GetString(keywords.KeyParam)
	node.StepGenerator = &model.GeneratorSpec{
		Kind:    kind,
		Param:   param,
		Payload: obj.Clone(payload),
		Options: node.GeneratorOptions,
	}
	return node
}

func (im *Importer) importUnknown(v any) *model.Step {
	im.log.Warn("unrecognized native step shape; preserving verbatim", zap.Any("step", v))
	node := model.NewStep(model.TypeUtility, "raw")
	node.Raw = obj.Clone(v)
	return node
}
