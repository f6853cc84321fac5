// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package loaders defines the boundary between dataset descriptors and the
// data-loading collaborator that turns them into batch streams.
//
// The package holds no dataset logic of its own: it declares the Factory contract,
// the Config forwarded to it, and the caller-facing Options with their defaults and
// validation. Factories return pkg/ml/train.Dataset batch producers, so anything
// they build plugs directly into GoMLX training loops.
//
// A factory must honor the descriptor's label mapping: for every sample it looks up
// the fine-grained label and drops samples that map to labelmap.Unmapped.
package loaders

import (
	"github.com/gomlx/gomlx/pkg/ml/train"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/robustsets"
	"github.com/gomlx/robustsets/labelmap"
	"github.com/gomlx/robustsets/transforms"
)

// SubsetType selects which part of the training data a subset is taken from.
type SubsetType int

const (
	// SubsetRandom picks the subset at random, reproducibly given Options.SubsetSeed.
	SubsetRandom SubsetType = iota

	// SubsetFirst takes the first Subset examples, starting at SubsetStart.
	SubsetFirst

	// SubsetLast takes the last Subset examples.
	SubsetLast
)

func (t SubsetType) String() string {
	switch t {
	case SubsetRandom:
		return "rand"
	case SubsetFirst:
		return "first"
	case SubsetLast:
		return "last"
	}
	return "invalid"
}

// Options configure the loaders produced for one descriptor. Use DefaultOptions for
// the usual defaults, or WithDefaults to fill the zero-valued fields of a manually
// built Options.
type Options struct {
	// Workers is the number of parallel data-fetching workers.
	Workers int

	// BatchSize for the training loader. Required, must be positive.
	BatchSize int

	// DataAug enables training data augmentation (the descriptor's train pipeline).
	DataAug bool

	// Subset limits the training loader to this many examples; 0 means all.
	Subset int

	// SubsetStart is the starting index when SubsetType is SubsetFirst.
	SubsetStart int

	// SubsetType selects the subset policy; only used when Subset > 0.
	SubsetType SubsetType

	// SubsetSeed fixes the random subset selection; 0 defaults to 1.
	SubsetSeed int64

	// ValBatchSize for the validation loader; 0 defaults to BatchSize.
	ValBatchSize int

	// OnlyVal suppresses the training loader: MakeLoaders returns nil in its place.
	OnlyVal bool

	// ShuffleTrain and ShuffleVal toggle shuffling of the respective loaders.
	ShuffleTrain bool
	ShuffleVal   bool

	// DType of the produced image tensors; defaults to Float32.
	DType dtypes.DType
}

// DefaultOptions returns the usual loader options for the given worker count and
// batch size: augmentation on, training data shuffled, Float32 images.
func DefaultOptions(workers, batchSize int) Options {
	return Options{
		Workers:      workers,
		BatchSize:    batchSize,
		DataAug:      true,
		SubsetSeed:   1,
		ShuffleTrain: true,
		ShuffleVal:   true,
		DType:        dtypes.Float32,
	}
}

// WithDefaults returns a copy of the options with zero-valued fields that have
// non-zero defaults filled in.
func (o Options) WithDefaults() Options {
	if o.ValBatchSize == 0 {
		o.ValBatchSize = o.BatchSize
	}
	if o.SubsetSeed == 0 {
		o.SubsetSeed = 1
	}
	if o.DType == dtypes.InvalidDType {
		o.DType = dtypes.Float32
	}
	return o
}

// Validate fails with a configuration error on nonsensical options.
func (o Options) Validate() error {
	if o.BatchSize <= 0 {
		return robustsets.Errorf("batch size must be positive, got %d", o.BatchSize)
	}
	if o.Workers < 0 {
		return robustsets.Errorf("workers must not be negative, got %d", o.Workers)
	}
	if o.Subset < 0 || o.SubsetStart < 0 {
		return robustsets.Errorf("subset selection must not be negative, got subset=%d start=%d",
			o.Subset, o.SubsetStart)
	}
	switch o.SubsetType {
	case SubsetRandom, SubsetFirst, SubsetLast:
	default:
		return robustsets.Errorf("invalid subset selection policy %d", int(o.SubsetType))
	}
	if o.ValBatchSize < 0 {
		return robustsets.Errorf("validation batch size must not be negative, got %d", o.ValBatchSize)
	}
	return nil
}

// DatasetClass builds a custom backing dataset for one partition, replacing the
// factory's default storage reader. The args come from the descriptor's
// custom_class_args attribute.
type DatasetClass func(root string, trainPartition bool, pipeline transforms.Pipeline, args map[string]any) (train.Dataset, error)

// Config is everything a Factory needs to build the loaders for one descriptor.
// It is assembled by DataSet.MakeLoaders; factories must treat it as read-only.
type Config struct {
	// Name of the dataset variant, for loader naming and debugging.
	Name string

	// DataPath is the dataset's root storage location.
	DataPath string

	// TransformTrain and TransformTest are the preprocessing pipelines. When
	// Options.DataAug is false the factory should use TransformTest for training
	// data as well.
	TransformTrain, TransformTest transforms.Pipeline

	// LabelMapping, when non-nil, remaps fine labels to coarse groups; samples with
	// unmapped labels must be excluded from the produced batches.
	LabelMapping *labelmap.Mapping

	// Mean and Std are the per-channel normalization statistics.
	Mean, Std []float32

	// CustomClass, when non-nil, replaces the factory's default storage reader;
	// CustomClassArgs carries its extra construction arguments.
	CustomClass     DatasetClass
	CustomClassArgs map[string]any

	// Options as given to MakeLoaders, already normalized and validated.
	Options Options
}

// Factory builds the train and validation batch producers for a Config.
// Implementations live outside this module (they do the actual image I/O).
type Factory interface {
	// Make returns the training and validation loaders. When
	// Config.Options.OnlyVal is set the training loader may be nil.
	Make(cfg Config) (trainDS, valDS train.Dataset, err error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(cfg Config) (trainDS, valDS train.Dataset, err error)

func (f FactoryFunc) Make(cfg Config) (trainDS, valDS train.Dataset, err error) {
	return f(cfg)
}
