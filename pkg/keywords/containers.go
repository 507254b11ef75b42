package keywords

import (
	"github.com/nirslab/nirspipe/pkg/model"
)

// ContainerParamKeys lists, per container subtype, the sibling keys that
// are mirrored into both Params and the subtype config.
var ContainerParamKeys = map[string][]string{
	string(model.SubSampleAugmentation):  {KeyCount, "selection", "random_state", "mode"},
	string(model.SubFeatureAugmentation): {"action", KeyCount, "selection"},
	string(model.SubSampleFilter):        {"mode", "action", "report"},
	string(model.SubConcatTransform):     {"mode"},
}

// FillContainerConfig mirrors container params into the subtype config.
// Params and the config are deliberately redundant so readers of either
// shape keep working.
func FillContainerConfig(node *model.Step) {
	p := node.Params
	switch node.SubType {
	case model.SubSampleAugmentation:
		cfg := &model.SampleAugmentationConfig{}
		if v, ok := p.GetNumber(KeyCount); ok {
			cfg.Count = &v
		}
		cfg.Selection, _ = p.GetString("selection")
		if v, ok := p.GetNumber("random_state"); ok {
			cfg.RandomState = &v
		}
		cfg.Mode, _ = p.GetString("mode")
		node.SampleAugmentation = cfg
	case model.SubFeatureAugmentation:
		cfg := &model.FeatureAugmentationConfig{}
		cfg.Action, _ = p.GetString("action")
		if v, ok := p.GetNumber(KeyCount); ok {
			cfg.Count = &v
		}
		cfg.Selection, _ = p.GetString("selection")
		node.FeatureAugmentation = cfg
	case model.SubSampleFilter:
		cfg := &model.SampleFilterConfig{}
		cfg.Mode, _ = p.GetString("mode")
		cfg.Action, _ = p.GetString("action")
		cfg.Report, _ = p.GetBool("report")
		node.SampleFilter = cfg
	case model.SubConcatTransform:
		cfg := &model.ConcatTransformConfig{}
		cfg.Mode, _ = p.GetString("mode")
		node.ConcatTransform = cfg
	}
}
