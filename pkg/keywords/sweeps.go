package keywords

import (
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
)

const (
	KeyRange    = "_range_"
	KeyLogRange = "_log_range_"
	KeyGrid     = "_grid_"
	KeyParam    = "param"
)

// ParseSweeps picks up per-parameter generator keywords appearing as
// siblings of a step's main key. _range_ and _log_range_ apply to the
// parameter named by the sibling `param` key; _grid_ declares one sweep per
// key of its object. Cardinality options are shared across the sweeps of
// one step.
func ParseSweeps(o *obj.Object) []model.SweepSpec {
	opts := ParseGeneratorOptions(o)
	var sweeps []model.SweepSpec

	param, _ := o.GetString(KeyParam)
	for _, probe := range []struct {
		key  string
		kind model.GeneratorKind
	}{
		{KeyRange, model.GenRange},
		{KeyLogRange, model.GenLogRange},
	} {
		if payload, ok := o.Get(probe.key); ok {
			sweeps = append(sweeps, model.SweepSpec{
				Param:   param,
				Kind:    probe.kind,
				Payload: obj.Clone(payload),
				Options: opts,
			})
		}
	}

	if grid, ok := o.GetObject(KeyGrid); ok {
		grid.Iter(func(key string, value any) bool {
			sweeps = append(sweeps, model.SweepSpec{
				Param:   key,
				Kind:    model.GenGrid,
				Payload: obj.Clone(value),
				Options: opts,
			})
			return true
		})
	}
	return sweeps
}

// WriteSweeps emits sweeps back as keyword siblings on dst: range kinds
// with a `param` key, grid kinds merged into a single _grid_ object.
func WriteSweeps(dst *obj.Object, sweeps []model.SweepSpec) {
	var grid *obj.Object
	var opts *model.GeneratorOptions

	for _, sw := range sweeps {
		if sw.Options != nil {
			opts = sw.Options
		}
		switch sw.Kind {
		case model.GenGrid:
			if grid == nil {
				grid = obj.New()
			}
			grid.Set(sw.Param, obj.Clone(sw.Payload))
		case model.GenLogRange:
			dst.Set(KeyLogRange, obj.Clone(sw.Payload))
			if sw.Param != "" {
				dst.Set(KeyParam, sw.Param)
			}
		default:
			dst.Set(KeyRange, obj.Clone(sw.Payload))
			if sw.Param != "" {
				dst.Set(KeyParam, sw.Param)
			}
		}
	}

	if grid != nil {
		dst.Set(KeyGrid, grid)
	}
	WriteGeneratorOptions(dst, opts)
}
