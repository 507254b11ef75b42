package keywords

import (
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
)

// ParseMerge reads a merge keyword value: either a bare mode string or a
// structured object with predictions, feature indices and output routing.
// It returns nil when the value has neither shape.
func ParseMerge(v any) *model.MergeConfig {
	cfg := &model.MergeConfig{}

	switch t := v.(type) {
	case string:
		cfg.Mode = t
	case *obj.Object:
		if mode, ok := t.GetString("mode"); ok {
			cfg.Mode = mode
		}
		if preds, ok := t.GetList("predictions"); ok {
			for _, p := range preds {
				po, ok := p.(*obj.Object)
				if !ok {
					continue
				}
				pred := model.MergePrediction{}
				if b, ok := po.GetNumber("branch"); ok {
					pred.Branch = int(b)
				}
				pred.Select = parseSelect(po)
				if metric, ok := po.GetString("metric"); ok {
					pred.Metric = metric
				}
				cfg.Predictions = append(cfg.Predictions, pred)
			}
		}
		if feats, ok := t.GetList("features"); ok {
			for _, f := range feats {
				if n, ok := obj.Number(f); ok {
					cfg.Features = append(cfg.Features, int(n))
				}
			}
		}
		if v, ok := t.GetString("output_as"); ok {
			cfg.OutputAs = v
		}
		if v, ok := t.GetString("on_missing"); ok {
			cfg.OnMissing = v
		}
	default:
		return nil
	}
	return cfg
}

func parseSelect(po *obj.Object) model.SelectSpec {
	sv, ok := po.Get("select")
	if !ok {
		return model.SelectSpec{Kind: model.SelectBest}
	}
	switch t := sv.(type) {
	case string:
		return model.SelectSpec{Kind: model.SelectKind(t)}
	case *obj.Object:
		if k, ok := t.GetNumber("top_k"); ok {
			return model.SelectSpec{Kind: model.SelectTopK, TopK: int(k)}
		}
	}
	return model.SelectSpec{Kind: model.SelectBest}
}

// MergeToObject encodes a merge config back to its keyword value: the bare
// mode string when nothing structured is set, else the full object.
func MergeToObject(cfg *model.MergeConfig) any {
	if cfg == nil {
		cfg = &model.MergeConfig{}
	}

	structured := len(cfg.Predictions) > 0 || len(cfg.Features) > 0 ||
		cfg.OutputAs != "" || cfg.OnMissing != ""
	if !structured {
		return cfg.Mode
	}

	m := obj.New()
	if cfg.Mode != "" {
		m.Set("mode", cfg.Mode)
	}
	if len(cfg.Predictions) > 0 {
		preds := make([]any, len(cfg.Predictions))
		for i, p := range cfg.Predictions {
			po := obj.New().Set("branch", float64(p.Branch))
			po.Set("select", selectToValue(p.Select))
			if p.Metric != "" {
				po.Set("metric", p.Metric)
			}
			preds[i] = po
		}
		m.Set("predictions", preds)
	}
	if len(cfg.Features) > 0 {
		feats := make([]any, len(cfg.Features))
		for i, f := range cfg.Features {
			feats[i] = float64(f)
		}
		m.Set("features", feats)
	}
	if cfg.OutputAs != "" {
		m.Set("output_as", cfg.OutputAs)
	}
	if cfg.OnMissing != "" {
		m.Set("on_missing", cfg.OnMissing)
	}
	return m
}

func selectToValue(sel model.SelectSpec) any {
	if sel.Kind == model.SelectTopK {
		return obj.New().Set("top_k", float64(sel.TopK))
	}
	return string(sel.Kind)
}
