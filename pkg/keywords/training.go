package keywords

import (
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
)

const (
	keyEpochs       = "epochs"
	keyBatchSize    = "batch_size"
	keyLearningRate = "learning_rate"
	keyPatience     = "patience"
	keyOptimizer    = "optimizer"
	keyVerbose      = "verbose"
)

// ParseTraining decodes a top-level train_params object (fixed, non-swept
// training parameters of neural models). Keys the config does not name are
// kept in Extra so they survive a round trip.
func ParseTraining(o *obj.Object) *model.TrainingConfig {
	cfg := &model.TrainingConfig{}
	if o == nil {
		return cfg
	}

	extra := obj.New()
	o.Iter(func(key string, value any) bool {
		switch key {
		case keyEpochs:
			if f, ok := obj.Number(value); ok {
				cfg.Epochs = &f
				return true
			}
		case keyBatchSize:
			if f, ok := obj.Number(value); ok {
				cfg.BatchSize = &f
				return true
			}
		case keyLearningRate:
			if f, ok := obj.Number(value); ok {
				cfg.LearningRate = &f
				return true
			}
		case keyPatience:
			if f, ok := obj.Number(value); ok {
				cfg.Patience = &f
				return true
			}
		case keyOptimizer:
			if s, ok := value.(string); ok {
				cfg.Optimizer = s
				return true
			}
		case keyVerbose:
			if f, ok := obj.Number(value); ok {
				cfg.Verbose = &f
				return true
			}
		}
		extra.Set(key, obj.Clone(value))
		return true
	})

	if extra.Len() > 0 {
		cfg.Extra = extra
	}
	return cfg
}

// TrainingToObject is the inverse of ParseTraining. Known keys come first in
// a fixed order, then the preserved extras in their original order.
func TrainingToObject(cfg *model.TrainingConfig) *obj.Object {
	o := obj.New()
	if cfg.Epochs != nil {
		o.Set(keyEpochs, *cfg.Epochs)
	}
	if cfg.BatchSize != nil {
		o.Set(keyBatchSize, *cfg.BatchSize)
	}
	if cfg.LearningRate != nil {
		o.Set(keyLearningRate, *cfg.LearningRate)
	}
	if cfg.Patience != nil {
		o.Set(keyPatience, *cfg.Patience)
	}
	if cfg.Optimizer != "" {
		o.Set(keyOptimizer, cfg.Optimizer)
	}
	if cfg.Verbose != nil {
		o.Set(keyVerbose, *cfg.Verbose)
	}
	if cfg.Extra != nil {
		cfg.Extra.Iter(func(key string, value any) bool {
			o.Set(key, obj.Clone(value))
			return true
		})
	}
	return o
}
