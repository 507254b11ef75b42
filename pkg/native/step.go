// Package native converts between the editor step tree and the native
// pipeline format: the compact encoding using short operator names,
// single-key operator objects and _min/_max parameter pairs.
package native

import (
	"strings"

	"github.com/nirslab/nirspipe/pkg/keywords"
	"github.com/nirslab/nirspipe/pkg/obj"
)

// stepKind tags a decoded native step.
//
// decodeStep probes the incoming value once, in a fixed priority order, and
// the importer dispatches exhaustively on the resulting kind. If two keyword
// keys coexist on one object, the earlier kind in this order wins; an
// operator key is only considered after every keyword probe has missed, so
// a generator keyword with an operator sibling still arrives as the
// generator kind (the importer recovers the operator from the fields).
type stepKind int

const (
	kindOperatorName stepKind = iota // bare short name string
	kindChartName                    // bare "chart_2d" / "chart_y" string
	kindComment
	kindModel
	kindYProcessing
	kindBranch
	kindMerge
	kindSampleAugmentation
	kindFeatureAugmentation
	kindSampleFilter
	kindExclude
	kindTag
	kindConcatTransform
	kindSequential
	kindChart
	kindOrGenerator
	kindCartesian
	kindRange
	kindLogRange
	kindGrid
	kindOperator // {ShortName: {params}} object
	kindUnknown
)

type step struct {
	kind   stepKind
	str    string      // kindOperatorName / kindChartName / kindChart key
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
	keyExclude             = "exclude"
	keyTag                 = "tag"
	keyConcatTransform     = "concat_transform"
	keySequential          = "sequential"
	keyChart2D             = "chart_2d"
	keyChartY              = "chart_y"
	keyOr                  = "_or_"
	keyCartesian           = "_cartesian_"
	keyName                = "name"
	keyFinetuneParams      = "finetune_params"
	keyTrainParams         = "train_params"

	// internal params key remembering an alternate container spelling
	// (exclude/tag for a sample filter); underscore-prefixed so it never
	// leaks into exported params.
	keySpelling = "_spelling"
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
	{keyExclude, kindExclude},
	{keyTag, kindTag},
	{keyConcatTransform, kindConcatTransform},
	{keySequential, kindSequential},
	{keyChart2D, kindChart},
	{keyChartY, kindChart},
	{keyOr, kindOrGenerator},
	{keyCartesian, kindCartesian},
	{keywords.KeyRange, kindRange},
	{keywords.KeyLogRange, kindLogRange},
	{keywords.KeyGrid, kindGrid},
}

// reservedKeys are keys that can never name an operator: the keyword
// vocabulary plus the sibling keys of operator and generator steps.
var reservedKeys = map[string]bool{
	keyName:                 true,
	keyFinetuneParams:       true,
	keyTrainParams:          true,
	keywords.KeyParam:       true,
	keywords.KeyPick:        true,
	keywords.KeyArrange:     true,
	keywords.KeyThenPick:    true,
	keywords.KeyThenArrange: true,
	keywords.KeyCount:       true,
}

func init() {
	for _, probe := range objectKinds {
		reservedKeys[probe.key] = true
	}
}

// operatorKeyOf finds the first key of o that can name an operator: not
// reserved, not underscore-prefixed, and carrying either nil or an object
// of parameters.
func operatorKeyOf(o *obj.Object) (string, bool) {
	found := ""
	o.Iter(func(key string, value any) bool {
		if reservedKeys[key] || strings.HasPrefix(key, "_") {
			return true
		}
		switch value.(type) {
		case nil, *obj.Object:
			found = key
			return false
		}
		return true
	})
	return found, found != ""
}

func decodeStep(v any) step {
	switch t := v.(type) {
	case string:
		if t == keyChart2D || t == keyChartY {
			return step{kind: kindChartName, str: t}
		}
		return step{kind: kindOperatorName, str: t}
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
		if name, ok := operatorKeyOf(t); ok {
			return step{kind: kindOperator, str: name, fields: t}
		}
		return step{kind: kindUnknown, fields: t, raw: t}
	default:
		return step{kind: kindUnknown, raw: v}
	}
}
