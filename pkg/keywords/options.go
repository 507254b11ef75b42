package keywords

import (
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
)

const (
	KeyPick        = "pick"
	KeyArrange     = "arrange"
	KeyThenPick    = "then_pick"
	KeyThenArrange = "then_arrange"
	KeyCount       = "count"
)

// ParseGeneratorOptions reads the cardinality controls that can accompany
// any generator keyword. Returns nil when none are present.
func ParseGeneratorOptions(o *obj.Object) *model.GeneratorOptions {
	if o == nil {
		return nil
	}

	opts := &model.GeneratorOptions{}
	found := false

	if v, ok := o.GetNumber(KeyPick); ok {
		opts.Pick = &v
		found = true
	}
	if v, ok := o.GetNumber(KeyCount); ok {
		opts.Count = &v
		found = true
	}
	if v, ok := o.GetNumber(KeyThenPick); ok {
		opts.ThenPick = &v
		found = true
	}
	if v, ok := o.GetString(KeyArrange); ok {
		opts.Arrange = v
		found = true
	}
	if v, ok := o.GetString(KeyThenArrange); ok {
		opts.ThenArrange = v
		found = true
	}

	if !found {
		return nil
	}
	return opts
}

// WriteGeneratorOptions emits the cardinality controls onto a step object.
func WriteGeneratorOptions(dst *obj.Object, opts *model.GeneratorOptions) {
	if opts == nil {
		return
	}
	if opts.Pick != nil {
		dst.Set(KeyPick, *opts.Pick)
	}
	if opts.Arrange != "" {
		dst.Set(KeyArrange, opts.Arrange)
	}
	if opts.ThenPick != nil {
		dst.Set(KeyThenPick, *opts.ThenPick)
	}
	if opts.ThenArrange != "" {
		dst.Set(KeyThenArrange, opts.ThenArrange)
	}
	if opts.Count != nil {
		dst.Set(KeyCount, *opts.Count)
	}
}
