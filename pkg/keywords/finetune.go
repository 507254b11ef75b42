package keywords

import (
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
)

// reserved finetune_params keys; everything else is a flat-form model
// parameter (the historical encoding before model_params/train_params
// nesting existed).
const (
	keyNTrials     = "n_trials"
	keyTimeout     = "timeout"
	keyApproach    = "approach"
	keyEvalMode    = "eval_mode"
	keyModelParams = "model_params"
	keyTrainKey    = "train_params"
	keyType        = "type"
	keyLow         = "low"
	keyHigh        = "high"
	keyStep        = "step"
	keyLog         = "log"
)

// ParseFinetune decodes a finetune_params object into the editor's finetune
// config. The presence of the keyword enables finetuning.
func ParseFinetune(o *obj.Object) *model.FinetuneConfig {
	cfg := &model.FinetuneConfig{Enabled: true}
	if o == nil {
		return cfg
	}

	if v, ok := o.GetNumber(keyNTrials); ok {
		cfg.NTrials = &v
	}
	if v, ok := o.GetNumber(keyTimeout); ok {
		cfg.Timeout = &v
	}
	if v, ok := o.GetString(keyApproach); ok {
		cfg.Approach = v
	}
	if v, ok := o.GetString(keyEvalMode); ok {
		cfg.EvalMode = v
	}

	if mp, ok := o.GetObject(keyModelParams); ok {
		cfg.ModelParams = parseParamSet(mp)
	}
	if tp, ok := o.GetObject(keyTrainKey); ok {
		cfg.TrainParams = parseParamSet(tp)
	}

	// flat-form entries: any non-reserved key is a model parameter
	o.Iter(func(key string, value any) bool {
		switch key {
		case keyNTrials, keyTimeout, keyApproach, keyEvalMode, keyModelParams, keyTrainKey:
			return true
		}
		cfg.ModelParams = append(cfg.ModelParams, parseFinetuneParam(key, value))
		return true
	})

	return cfg
}

func parseParamSet(o *obj.Object) []model.FinetuneParam {
	params := []model.FinetuneParam{}
	o.Iter(func(key string, value any) bool {
		params = append(params, parseFinetuneParam(key, value))
		return true
	})
	return params
}

// parseFinetuneParam decodes one search-space entry: an array is a
// categorical choice list; an object is a numeric range, with `log: true`
// remapped to the log_float type.
func parseFinetuneParam(name string, v any) model.FinetuneParam {
	switch t := v.(type) {
	case []any:
		return model.FinetuneParam{Name: name, Type: "categorical", Choices: t}
	case *obj.Object:
		p := model.FinetuneParam{Name: name}
		if s, ok := t.GetString(keyType); ok {
			p.Type = s
		}
		if f, ok := t.GetNumber(keyLow); ok {
			p.Low = &f
		}
		if f, ok := t.GetNumber(keyHigh); ok {
			p.High = &f
		}
		if f, ok := t.GetNumber(keyStep); ok {
			p.Step = &f
		}
		if log, ok := t.GetBool(keyLog); ok && log {
			p.Type = "log_float"
		}
		return p
	default:
		// a bare scalar is a single-choice categorical
		return model.FinetuneParam{Name: name, Type: "categorical", Choices: []any{v}}
	}
}

// FinetuneToObject is the inverse of ParseFinetune.
func FinetuneToObject(cfg *model.FinetuneConfig) *obj.Object {
	o := obj.New()
	if cfg.NTrials != nil {
		o.Set(keyNTrials, *cfg.NTrials)
	}
	if cfg.Timeout != nil {
		o.Set(keyTimeout, *cfg.Timeout)
	}
	if cfg.Approach != "" {
		o.Set(keyApproach, cfg.Approach)
	}
	if cfg.EvalMode != "" {
		o.Set(keyEvalMode, cfg.EvalMode)
	}
	if len(cfg.ModelParams) > 0 {
		o.Set(keyModelParams, paramSetToObject(cfg.ModelParams))
	}
	if len(cfg.TrainParams) > 0 {
		o.Set(keyTrainKey, paramSetToObject(cfg.TrainParams))
	}
	return o
}

func paramSetToObject(params []model.FinetuneParam) *obj.Object {
	o := obj.New()
	for _, p := range params {
		o.Set(p.Name, finetuneParamToValue(p))
	}
	return o
}

func finetuneParamToValue(p model.FinetuneParam) any {
	if p.Type == "categorical" {
		return append([]any(nil), p.Choices...)
	}

	entry := obj.New()
	if p.Type == "log_float" {
		entry.Set(keyType, "float")
	} else if p.Type != "" {
		entry.Set(keyType, p.Type)
	}
	if p.Low != nil {
		entry.Set(keyLow, *p.Low)
	}
	if p.High != nil {
		entry.Set(keyHigh, *p.High)
	}
	if p.Step != nil {
		entry.Set(keyStep, *p.Step)
	}
	if p.Type == "log_float" {
		entry.Set(keyLog, true)
	}
	return entry
}
