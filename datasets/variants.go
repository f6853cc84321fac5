// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"github.com/gomlx/robustsets"
	"github.com/gomlx/robustsets/labelmap"
	"github.com/gomlx/robustsets/models"
	"github.com/gomlx/robustsets/transforms"
)

// ImageNetNumLabels is the size of the full ImageNet fine-grained label space.
const ImageNetNumLabels = 1000

// RestrictedImageNetGroups are the superclass groups of the restricted variant:
// half-open ranges over the 1000 ImageNet labels. Groups were chosen so that each
// superclass merges a contiguous block of semantically close fine labels.
var RestrictedImageNetGroups = []labelmap.Group{
	labelmap.Range("dog", 151, 269),
	labelmap.Range("cat", 281, 286),
	labelmap.Range("frog", 30, 33),
	labelmap.Range("turtle", 33, 38),
	labelmap.Range("bird", 80, 101),
	labelmap.Range("monkey", 365, 383),
	labelmap.Range("fish", 389, 398),
	labelmap.Range("crab", 118, 122),
	labelmap.Range("insect", 300, 320),
}

// registryModelFn is the model provider shared by all variants: it looks the
// architecture up in the models registry with the descriptor's class count.
// Descriptors with a remapped label space reject pretrained weights, which target
// the original label space.
func registryModelFn(ds *DataSet) func(arch string, pretrained bool) (*models.Model, error) {
	return func(arch string, pretrained bool) (*models.Model, error) {
		if pretrained && ds.labelMapping != nil {
			return nil, robustsets.Errorf(
				"dataset %q remaps labels to %d groups and does not support pretrained weights",
				ds.name, ds.numClasses)
		}
		return models.New(arch, ds.numClasses, pretrained)
	}
}

func newVariant(name, dataPath string, defaults, overrides Attrs) (*DataSet, error) {
	attrs, err := OverrideAttrs(defaults, overrides)
	if err != nil {
		return nil, err
	}
	ds, err := New(name, dataPath, attrs)
	if err != nil {
		return nil, err
	}
	ds.modelFn = registryModelFn(ds)
	return ds, nil
}

// ImageNet returns the full-label-space ImageNet descriptor: 1000 classes, no
// label remapping, standard ImageNet normalization and pipelines. Overrides may
// replace any attribute, subject to OverrideAttrs' type discipline.
func ImageNet(dataPath string, overrides Attrs) (*DataSet, error) {
	defaults := Attrs{
		AttrNumClasses:     ImageNetNumLabels,
		AttrMean:           []float32{0.485, 0.456, 0.406},
		AttrStd:            []float32{0.229, 0.224, 0.225},
		AttrCustomClass:    nil,
		AttrLabelMapping:   nil,
		AttrTransformTrain: transforms.TrainImageNet,
		AttrTransformTest:  transforms.TestImageNet,
	}
	return newVariant("imagenet", dataPath, defaults, overrides)
}

// Places365 returns the descriptor for the Places365 scene-recognition corpus:
// 365 classes over 256px images, no label remapping.
func Places365(dataPath string, overrides Attrs) (*DataSet, error) {
	defaults := Attrs{
		AttrNumClasses:     365,
		AttrMean:           []float32{0.485, 0.456, 0.406},
		AttrStd:            []float32{0.229, 0.224, 0.225},
		AttrCustomClass:    nil,
		AttrLabelMapping:   nil,
		AttrTransformTrain: transforms.TrainDefault(256),
		AttrTransformTest:  transforms.TestDefault(256),
	}
	return newVariant("places365", dataPath, defaults, overrides)
}

// RestrictedImageNet returns the restricted superclass descriptor: the 1000
// ImageNet labels collapsed into the 9 RestrictedImageNetGroups. The data path is
// the full ImageNet tree; samples outside the groups are dropped by the loader.
// It does not support pretrained weights.
func RestrictedImageNet(dataPath string, overrides Attrs) (*DataSet, error) {
	mapping, err := labelmap.Build(RestrictedImageNetGroups, ImageNetNumLabels)
	if err != nil {
		return nil, err
	}
	defaults := Attrs{
		AttrNumClasses:     mapping.NumGroups(),
		AttrMean:           []float32{0.4717, 0.4499, 0.3837},
		AttrStd:            []float32{0.2600, 0.2516, 0.2575},
		AttrCustomClass:    nil,
		AttrLabelMapping:   mapping,
		AttrTransformTrain: transforms.TrainImageNet,
		AttrTransformTest:  transforms.TestImageNet,
	}
	return newVariant("restricted_imagenet", dataPath, defaults, overrides)
}

// CustomImageNet is like RestrictedImageNet with a caller-supplied grouping: the
// class count is the number of groups. It does not support pretrained weights.
func CustomImageNet(dataPath string, grouping []labelmap.Group, overrides Attrs) (*DataSet, error) {
	mapping, err := labelmap.Build(grouping, ImageNetNumLabels)
	if err != nil {
		return nil, err
	}
	defaults := Attrs{
		AttrNumClasses:     mapping.NumGroups(),
		AttrMean:           []float32{0.4717, 0.4499, 0.3837},
		AttrStd:            []float32{0.2600, 0.2516, 0.2575},
		AttrCustomClass:    nil,
		AttrLabelMapping:   mapping,
		AttrTransformTrain: transforms.TrainImageNet,
		AttrTransformTest:  transforms.TestImageNet,
	}
	return newVariant("custom_imagenet", dataPath, defaults, overrides)
}
