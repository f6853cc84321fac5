// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package datasets holds the dataset descriptors for robust training: immutable
// bundles of class count, normalization statistics, preprocessing pipelines and an
// optional fine-to-coarse label mapping.
//
// Descriptors are created by the variant constructors (ImageNet,
// RestrictedImageNet, CustomImageNet, Places365) or looked up by name through
// FromName. Each variant merges its defaults with caller overrides via
// OverrideAttrs and validates the result in New; after that the descriptor never
// changes and may be read concurrently without synchronization.
package datasets

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/gomlx/gomlx/pkg/ml/train"
	"github.com/gomlx/robustsets"
	"github.com/gomlx/robustsets/labelmap"
	"github.com/gomlx/robustsets/loaders"
	"github.com/gomlx/robustsets/models"
	"github.com/gomlx/robustsets/transforms"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DataSet describes one dataset variant. It is immutable after construction:
// consumers read it through the accessor methods, which copy mutable values.
type DataSet struct {
	name     string
	dataPath string

	numClasses int
	mean, std  []float32

	transformTrain, transformTest transforms.Pipeline

	labelMapping    *labelmap.Mapping
	customClass     loaders.DatasetClass
	customClassArgs map[string]any

	// modelFn is installed by the variant constructors; nil on descriptors built
	// directly through New, for which GetModel returns ErrNotImplemented.
	modelFn func(arch string, pretrained bool) (*models.Model, error)
}

// New constructs a descriptor from its attribute set.
//
// Validation happens fully before any field is set: first all required attributes
// missing (or nil) are collected and reported together, then all unrecognized
// attribute names, then each attribute is checked for its expected type, and
// finally num_classes must agree with the label mapping's group count when a
// mapping is given.
func New(name, dataPath string, attrs Attrs) (*DataSet, error) {
	if name == "" {
		return nil, robustsets.Errorf("dataset name must not be empty")
	}
	if dataPath == "" {
		return nil, robustsets.Errorf("dataset %q: data path must not be empty", name)
	}

	var missing []string
	for _, key := range requiredAttrs {
		if value, found := attrs[key]; !found || value == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, robustsets.Errorf("dataset %q: missing required attributes %v", name, missing)
	}

	var extra []string
	for key := range attrs {
		if !slices.Contains(requiredAttrs, key) && !slices.Contains(optionalAttrs, key) {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, robustsets.Errorf("dataset %q: unrecognized attributes %v", name, extra)
	}

	ds := &DataSet{name: name, dataPath: dataPath}
	var err error
	if ds.numClasses, err = attrAs[int](attrs, AttrNumClasses); err != nil {
		return nil, err
	}
	if ds.numClasses <= 0 {
		return nil, robustsets.Errorf("dataset %q: %s must be positive, got %d",
			name, AttrNumClasses, ds.numClasses)
	}
	if ds.mean, err = attrAs[[]float32](attrs, AttrMean); err != nil {
		return nil, err
	}
	if ds.std, err = attrAs[[]float32](attrs, AttrStd); err != nil {
		return nil, err
	}
	if len(ds.mean) == 0 || len(ds.mean) != len(ds.std) {
		return nil, robustsets.Errorf("dataset %q: mean and std must be non-empty and of equal length, got %d and %d",
			name, len(ds.mean), len(ds.std))
	}
	if ds.transformTrain, err = attrAs[transforms.Pipeline](attrs, AttrTransformTrain); err != nil {
		return nil, err
	}
	if ds.transformTest, err = attrAs[transforms.Pipeline](attrs, AttrTransformTest); err != nil {
		return nil, err
	}
	if ds.transformTrain.IsZero() || ds.transformTest.IsZero() {
		return nil, robustsets.Errorf("dataset %q: %s and %s must not be empty pipelines",
			name, AttrTransformTrain, AttrTransformTest)
	}
	if ds.labelMapping, err = optionalAttrAs[*labelmap.Mapping](attrs, AttrLabelMapping); err != nil {
		return nil, err
	}
	if ds.customClass, err = optionalAttrAs[loaders.DatasetClass](attrs, AttrCustomClass); err != nil {
		return nil, err
	}
	if ds.customClassArgs, err = optionalAttrAs[map[string]any](attrs, AttrCustomClassArgs); err != nil {
		return nil, err
	}
	if ds.labelMapping != nil && ds.numClasses != ds.labelMapping.NumGroups() {
		return nil, robustsets.Errorf("dataset %q: %s=%d does not match the %d groups of the label mapping",
			name, AttrNumClasses, ds.numClasses, ds.labelMapping.NumGroups())
	}

	// Defensive copies, so later changes to the attrs values cannot reach the descriptor.
	ds.mean = slices.Clone(ds.mean)
	ds.std = slices.Clone(ds.std)
	ds.customClassArgs = maps.Clone(ds.customClassArgs)

	klog.V(1).Infof("datasets: constructed descriptor %q with %d classes (mapped=%v)",
		name, ds.numClasses, ds.labelMapping != nil)
	return ds, nil
}

// Name returns the variant's string identifier, e.g. "restricted_imagenet".
func (ds *DataSet) Name() string { return ds.name }

// DataPath returns the dataset's root storage location.
func (ds *DataSet) DataPath() string { return ds.dataPath }

// NumClasses returns the number of coarse labels a model trained on this
// descriptor must predict.
func (ds *DataSet) NumClasses() int { return ds.numClasses }

// Mean returns a copy of the per-channel normalization mean.
func (ds *DataSet) Mean() []float32 { return slices.Clone(ds.mean) }

// Std returns a copy of the per-channel normalization standard deviation.
func (ds *DataSet) Std() []float32 { return slices.Clone(ds.std) }

// TransformTrain returns the training preprocessing pipeline.
func (ds *DataSet) TransformTrain() transforms.Pipeline { return ds.transformTrain }

// TransformTest returns the evaluation preprocessing pipeline.
func (ds *DataSet) TransformTest() transforms.Pipeline { return ds.transformTest }

// LabelMapping returns the fine-to-coarse label mapping, or nil for identity
// (no remapping).
func (ds *DataSet) LabelMapping() *labelmap.Mapping { return ds.labelMapping }

// CustomClass returns the custom backing-dataset constructor, or nil for the
// loader factory's default storage reader.
func (ds *DataSet) CustomClass() loaders.DatasetClass { return ds.customClass }

// CustomClassArgs returns a copy of the extra construction arguments for the
// custom backing dataset.
func (ds *DataSet) CustomClassArgs() map[string]any { return maps.Clone(ds.customClassArgs) }

func (ds *DataSet) String() string {
	mapped := "identity labels"
	if ds.labelMapping != nil {
		mapped = ds.labelMapping.String()
	}
	return fmt.Sprintf("DataSet(%q, %d classes, %s)", ds.name, ds.numClasses, mapped)
}

// GetModel instantiates the named architecture with this descriptor's class count.
//
// Descriptors built directly through New have no model provider and fail with
// ErrNotImplemented. Variants with a remapped label space reject pretrained=true:
// pretrained weights target the original label space, not the coarse groups.
func (ds *DataSet) GetModel(arch string, pretrained bool) (*models.Model, error) {
	if ds.modelFn == nil {
		return nil, errors.Wrapf(robustsets.ErrNotImplemented,
			"dataset %q does not provide models", ds.name)
	}
	return ds.modelFn(arch, pretrained)
}

// MakeLoaders forwards this descriptor and the given options to the loader
// factory, returning the training and validation batch producers. When
// opts.OnlyVal is set the training loader is nil.
//
// No dataset-specific logic happens here: options are normalized and validated,
// then everything is handed to the factory.
func (ds *DataSet) MakeLoaders(factory loaders.Factory, opts loaders.Options) (trainDS, valDS train.Dataset, err error) {
	if factory == nil {
		return nil, nil, robustsets.Errorf("dataset %q: a loader factory is required", ds.name)
	}
	opts = opts.WithDefaults()
	if err = opts.Validate(); err != nil {
		return nil, nil, errors.WithMessagef(err, "dataset %q", ds.name)
	}
	cfg := loaders.Config{
		Name:            ds.name,
		DataPath:        ds.dataPath,
		TransformTrain:  ds.transformTrain,
		TransformTest:   ds.transformTest,
		LabelMapping:    ds.labelMapping,
		Mean:            ds.Mean(),
		Std:             ds.Std(),
		CustomClass:     ds.customClass,
		CustomClassArgs: ds.CustomClassArgs(),
		Options:         opts,
	}
	trainDS, valDS, err = factory.Make(cfg)
	if err != nil {
		return nil, nil, errors.WithMessagef(err, "making loaders for dataset %q", ds.name)
	}
	if opts.OnlyVal {
		trainDS = nil
	}
	return trainDS, valDS, nil
}
