package canonical

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

// WithLogger routes importer diagnostics (unrecognized step shapes,
// degraded resolutions) to the given logger.
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

// Import converts decoded canonical steps into editor steps.
//
// It never fails: anything it cannot interpret is preserved verbatim on a
// raw step and reported through the logger, so no data is dropped silently.
func Import(steps []any, options ...ImportOption) []*model.Step {
	return NewImporter(options...).Import(steps)
}

func (im *Importer) Import(steps []any) []*model.Step {
	return utils.Map(steps, im.importStep)
}

func (im *Importer) importStep(v any) *model.Step {
	s := decodeStep(v)
	switch s.kind {
	case kindOperatorPath:
		return im.importOperatorPath(s.str)
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
		return im.importContainer(s.fields, keySampleAugmentation)
	case kindFeatureAugmentation:
		return im.importContainer(s.fields, keyFeatureAugmentation)
	case kindSampleFilter:
		return im.importContainer(s.fields, keySampleFilter)
	case kindConcatTransform:
		return im.importContainer(s.fields, keyConcatTransform)
	case kindPreprocessing:
		return im.importPreprocessing(s.fields)
	case kindChart:
		return im.importChart(s.fields, s.str)
	case kindOrGenerator:
		return im.importOr(s.fields)
	case kindClass:
		return im.importClass(s.fields)
	default:
		return im.importUnknown(s.raw)
	}
}

func (im *Importer) importOperatorPath(path string) *model.Step {
	resolved := registry.ResolveClassPath(path)
	node := model.NewStep(resolved.Type, resolved.Name)
	node.ClassPath = path
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

// importModel handles the model keyword plus its possible siblings: a custom
// name, finetune_params, train_params, and per-parameter generators (a step
// can be a model invocation and a parameter generator at the same time).
func (im *Importer) importModel(o *obj.Object) *model.Step {
	node := model.NewStep(model.TypeModel, "")

	mv, _ := o.Get(keyModel)
	switch t := mv.(type) {
	case string:
		node.ClassPath = t
		node.Name = registry.ResolveClassPath(t).Name
	case *obj.Object:
		im.readOperatorRef(node, t)
	default:
		im.log.Warn("model value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}

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

// readOperatorRef fills a node from a {class|function, params} object.
func (im *Importer) readOperatorRef(node *model.Step, o *obj.Object) {
	if path, ok := o.GetString(keyClass); ok {
		node.ClassPath = path
		node.Name = registry.ResolveClassPath(path).Name
	} else if path, ok := o.GetString(keyFunction); ok {
		node.FunctionPath = path
		node.Name = registry.ResolveClassPath(path).Name
	}
	if params, ok := o.GetObject(keyParams); ok {
		node.Params = keywords.CloneParams(params)
	}
}

func (im *Importer) importYProcessing(o *obj.Object) *model.Step {
	node := model.NewStep(model.TypeYProcessing, "")

	yv, _ := o.Get(keyYProcessing)
	switch t := yv.(type) {
	case string:
		node.ClassPath = t
		node.Name = registry.ResolveClassPath(t).Name
	case *obj.Object:
		im.readOperatorRef(node, t)
	default:
		im.log.Warn("y_processing value has unexpected shape; keeping raw", zap.Any("step", o))
		return im.importUnknown(o)
	}
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

// importStepList imports a nested step list; a single non-list value is
// treated as a one-step list.
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

func (im *Importer) importContainer(o *obj.Object, key string) *model.Step {
	sub := model.SubType(key)
	node := model.NewStructural(model.TypeUtility, sub)

	cv, _ := o.Get(key)
	node.Content = model.Flat(im.importStepList(cv))

	for _, pk := range keywords.ContainerParamKeys[key] {
		if v, ok := o.Get(pk); ok {
			node.Params.Set(pk, obj.Clone(v))
		}
	}
	keywords.FillContainerConfig(node)
	return node
}

// importPreprocessing handles the explicit preprocessing wrapper: a list
// becomes a sequential group, anything else is an operator reference forced
// to the preprocessing type.
func (im *Importer) importPreprocessing(o *obj.Object) *model.Step {
	pv, _ := o.Get(keyPreprocessing)
	if list, ok := pv.([]any); ok {
		node := model.NewStructural(model.TypeFlow, model.SubSequential)
		node.Content = model.Flat(im.Import(list))
		return node
	}

	node := im.importStep(pv)
	node.Type = model.TypePreprocessing
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
	if param, ok := o.GetString(keyParam); ok {
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

func (im *Importer) importClass(o *obj.Object) *model.Step {
	node := model.NewStep(model.TypePreprocessing, "")
	im.readOperatorRef(node, o)
	if node.ClassPath != "" {
		node.Type = registry.ResolveClassPath(node.ClassPath).Type
	}
	if name, ok := o.GetString(keyName); ok {
		node.CustomName = name
	}
	node.ParamSweeps = keywords.ParseSweeps(o)
	return node
}

func (im *Importer) importUnknown(v any) *model.Step {
	im.log.Warn("unrecognized canonical step shape; preserving verbatim", zap.Any("step", v))
	node := model.NewStep(model.TypeUtility, "raw")
	node.Raw = obj.Clone(v)
	return node
}
