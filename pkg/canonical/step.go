// Package canonical converts between the editor step tree and the canonical
// pipeline format: the verbose encoding using fully-qualified class paths
// and explicit keyword wrappers.
package canonical

import "github.com/nirslab/nirspipe/pkg/obj"

// stepKind tags a decoded canonical step.
//
// decodeStep probes the incoming value once, in a fixed priority order, and
// the importer dispatches exhaustively on the resulting kind. If two keyword
// keys coexist on one object, the earlier kind in this order wins.
type stepKind int

const (
	kindOperatorPath stepKind = iota // bare string class path
	kindChartName                    // bare "chart_2d" / "chart_y" string
	kindComment
	kindModel
	kindYProcessing
	kindBranch
	kindMerge
	kindSampleAugmentation
	kindFeatureAugmentation
	kindSampleFilter
	kindConcatTransform
	kindPreprocessing
	kindChart
	kindOrGenerator
	kindClass
	kindUnknown
)

type step struct {
	kind   stepKind
	str    string      // kindOperatorPath / kindChartName
	fields *obj.Object // every object kind
	raw    any         // kindUnknown: the value exactly as decoded
}

const (
	keyComment             = "_comment"
	keyModel               = "model"
	keyYProcessing         = "y_processing"
	keyBranch              = "branch"
	keyMerge               = "merge"
	keySampleAugmentation  = "sample_augmentation"
	keyFeatureAugmentation = "feature_augmentation"
	keySampleFilter        = "sample_filter"
	keyConcatTransform     = "concat_transform"
	keyPreprocessing       = "preprocessing"
	keyChart2D             = "chart_2d"
	keyChartY              = "chart_y"
	keyOr                  = "_or_"
	keyClass               = "class"
	keyFunction            = "function"
	keyParams              = "params"
	keyName                = "name"
	keyParam               = "param"
	keyFinetuneParams      = "finetune_params"
	keyTrainParams         = "train_params"
)

// keyword probe order for object steps. Fixed: changing it changes which
// keyword wins when several coexist.
var objectKinds = []struct {
	key  string
	kind stepKind
}{
	{keyComment, kindComment},
	{keyModel, kindModel},
	{keyYProcessing, kindYProcessing},
	{keyBranch, kindBranch},
	{keyMerge, kindMerge},
	{keySampleAugmentation, kindSampleAugmentation},
	{keyFeatureAugmentation, kindFeatureAugmentation},
	{keySampleFilter, kindSampleFilter},
	{keyConcatTransform, kindConcatTransform},
	{keyPreprocessing, kindPreprocessing},
	{keyChart2D, kindChart},
	{keyChartY, kindChart},
	{keyOr, kindOrGenerator},
	{keyClass, kindClass},
}

func decodeStep(v any) step {
	switch t := v.(type) {
	case string:
		if t == keyChart2D || t == keyChartY {
			return step{kind: kindChartName, str: t}
		}
		return step{kind: kindOperatorPath, str: t}
	case *obj.Object:
		for _, probe := range objectKinds {
			if t.Has(probe.key) {
				s := step{kind: probe.kind, fields: t}
				if probe.kind == kindChart {
					s.str = probe.key
				}
				return s
			}
		}
		return step{kind: kindUnknown, fields: t, raw: t}
	default:
		return step{kind: kindUnknown, raw: v}
	}
}
