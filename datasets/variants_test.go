// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"testing"

	"github.com/gomlx/robustsets"
	"github.com/gomlx/robustsets/labelmap"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageNetVariant(t *testing.T) {
	ds, err := ImageNet("/data/imagenet", nil)
	require.NoError(t, err)
	assert.Equal(t, "imagenet", ds.Name())
	assert.Equal(t, ImageNetNumLabels, ds.NumClasses())
	assert.Equal(t, []float32{0.485, 0.456, 0.406}, ds.Mean())
	assert.Equal(t, []float32{0.229, 0.224, 0.225}, ds.Std())
	assert.Nil(t, ds.LabelMapping())
	assert.Equal(t, "train_imagenet", ds.TransformTrain().Name())

	model, err := ds.GetModel("cnn", false)
	require.NoError(t, err)
	assert.Equal(t, ImageNetNumLabels, model.NumClasses)

	_, err = ds.GetModel("no_such_arch", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
}

func TestImageNetOverrides(t *testing.T) {
	ds, err := ImageNet("/data/imagenet", Attrs{AttrNumClasses: 100})
	require.NoError(t, err)
	assert.Equal(t, 100, ds.NumClasses())

	_, err = ImageNet("/data/imagenet", Attrs{AttrNumClasses: "many"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))

	_, err = ImageNet("/data/imagenet", Attrs{"not_an_attr": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))

	// Erasing a required default with an explicit nil fails at construction.
	_, err = ImageNet("/data/imagenet", Attrs{AttrMean: nil})
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
}

func TestRestrictedImageNetVariant(t *testing.T) {
	ds, err := RestrictedImageNet("/data/imagenet", nil)
	require.NoError(t, err)
	assert.Equal(t, "restricted_imagenet", ds.Name())

	mapping := ds.LabelMapping()
	require.NotNil(t, mapping)
	assert.Equal(t, len(RestrictedImageNetGroups), mapping.NumGroups())
	assert.Equal(t, ds.NumClasses(), mapping.NumGroups())
	assert.Equal(t, ImageNetNumLabels, mapping.DomainSize())

	// Spot-check the superclass ranges.
	assert.Equal(t, "dog", mapping.GroupName(mapping.GroupOf(151)))
	assert.Equal(t, "dog", mapping.GroupName(mapping.GroupOf(268)))
	assert.Equal(t, "cat", mapping.GroupName(mapping.GroupOf(285)))
	assert.Equal(t, "insect", mapping.GroupName(mapping.GroupOf(319)))
	assert.False(t, mapping.Contains(0))
	assert.False(t, mapping.Contains(999))

	// Distinct normalization statistics from the full-label variant.
	assert.Equal(t, []float32{0.4717, 0.4499, 0.3837}, ds.Mean())

	_, err = ds.GetModel("cnn", true)
	require.Error(t, err, "remapped label space must reject pretrained weights")
	assert.True(t, errors.Is(err, robustsets.ErrConfig))

	model := must.M1(ds.GetModel("cnn", false))
	assert.Equal(t, 9, model.NumClasses)
}

func TestCustomImageNetVariant(t *testing.T) {
	grouping := []labelmap.Group{
		labelmap.Range("living_9_to_25", 9, 25),
		labelmap.Explicit("assorted", 0, 2, 4),
	}
	ds, err := CustomImageNet("/data/imagenet", grouping, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom_imagenet", ds.Name())
	assert.Equal(t, len(grouping), ds.NumClasses())
	assert.Equal(t, 1, ds.LabelMapping().GroupOf(4))

	_, err = ds.GetModel("fnn", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))

	// Out-of-range grouping surfaces at construction.
	_, err = CustomImageNet("/data/imagenet", []labelmap.Group{
		labelmap.Explicit("bad", ImageNetNumLabels),
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
}

func TestPlaces365Variant(t *testing.T) {
	ds, err := Places365("/data/places365", nil)
	require.NoError(t, err)
	assert.Equal(t, 365, ds.NumClasses())
	assert.Nil(t, ds.LabelMapping())
	assert.Equal(t, "train_default_256", ds.TransformTrain().Name())

	model := must.M1(ds.GetModel("fnn", false))
	assert.Equal(t, 365, model.NumClasses)
}

func TestFromName(t *testing.T) {
	ds, err := FromName("restricted_imagenet", "/data/imagenet", nil)
	require.NoError(t, err)
	assert.Equal(t, "restricted_imagenet", ds.Name())

	_, err = FromName("cifar1000", "/data/nowhere", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
	assert.Contains(t, err.Error(), "cifar1000")

	// Known name, but needs an explicit grouping.
	_, err = FromName("custom_imagenet", "/data/imagenet", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
	assert.Contains(t, err.Error(), "CustomImageNet")

	assert.Equal(t, []string{"custom_imagenet", "imagenet", "places365", "restricted_imagenet"}, Names())
}

func TestMustFromName(t *testing.T) {
	assert.NotPanics(t, func() { MustFromName("imagenet", "/data/imagenet", nil) })
	assert.Panics(t, func() { MustFromName("no_such_variant", "/data/imagenet", nil) })
}
