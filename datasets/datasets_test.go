// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"testing"

	"github.com/gomlx/robustsets"
	"github.com/gomlx/robustsets/labelmap"
	"github.com/gomlx/robustsets/transforms"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validAttrs returns a minimal valid attribute set for New.
func validAttrs() Attrs {
	return Attrs{
		AttrNumClasses:     10,
		AttrMean:           []float32{0.5, 0.5, 0.5},
		AttrStd:            []float32{0.2, 0.2, 0.2},
		AttrTransformTrain: transforms.TrainDefault(32),
		AttrTransformTest:  transforms.TestDefault(32),
	}
}

func TestNewValid(t *testing.T) {
	ds, err := New("test_ds", "/data/test", validAttrs())
	require.NoError(t, err)
	assert.Equal(t, "test_ds", ds.Name())
	assert.Equal(t, "/data/test", ds.DataPath())
	assert.Equal(t, 10, ds.NumClasses())
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, ds.Mean())
	assert.Equal(t, []float32{0.2, 0.2, 0.2}, ds.Std())
	assert.Equal(t, "train_default_32", ds.TransformTrain().Name())
	assert.Equal(t, "test_default_32", ds.TransformTest().Name())
	assert.Nil(t, ds.LabelMapping())
	assert.Nil(t, ds.CustomClass())
	assert.Nil(t, ds.CustomClassArgs())
}

func TestNewMissingRequired(t *testing.T) {
	attrs := validAttrs()
	delete(attrs, AttrMean)
	delete(attrs, AttrTransformTest)
	_, err := New("test_ds", "/data/test", attrs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
	// Every missing attribute is named.
	assert.Contains(t, err.Error(), AttrMean)
	assert.Contains(t, err.Error(), AttrTransformTest)
}

func TestNewNilRequiredCountsAsMissing(t *testing.T) {
	attrs := validAttrs()
	attrs[AttrStd] = nil
	_, err := New("test_ds", "/data/test", attrs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
	assert.Contains(t, err.Error(), AttrStd)
}

func TestNewUnrecognizedAttrs(t *testing.T) {
	attrs := validAttrs()
	attrs["zzz_not_an_attr"] = 1
	attrs["another_bad_one"] = true
	_, err := New("test_ds", "/data/test", attrs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
	assert.Contains(t, err.Error(), "zzz_not_an_attr")
	assert.Contains(t, err.Error(), "another_bad_one")
}

func TestNewBadValues(t *testing.T) {
	for name, mutate := range map[string]func(Attrs){
		"wrong type num_classes": func(a Attrs) { a[AttrNumClasses] = "ten" },
		"non-positive classes":   func(a Attrs) { a[AttrNumClasses] = 0 },
		"mean/std length":        func(a Attrs) { a[AttrStd] = []float32{0.2} },
		"empty mean":             func(a Attrs) { a[AttrMean] = []float32{}; a[AttrStd] = []float32{} },
		"zero pipeline":          func(a Attrs) { a[AttrTransformTrain] = transforms.Pipeline{} },
		"wrong mapping type":     func(a Attrs) { a[AttrLabelMapping] = "not a mapping" },
	} {
		attrs := validAttrs()
		mutate(attrs)
		_, err := New("test_ds", "/data/test", attrs)
		require.Errorf(t, err, "case %q", name)
		assert.Truef(t, errors.Is(err, robustsets.ErrConfig), "case %q", name)
	}

	_, err := New("", "/data/test", validAttrs())
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
	_, err = New("test_ds", "", validAttrs())
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
}

func TestNewMappingClassCountMismatch(t *testing.T) {
	mapping := must.M1(labelmap.Build([]labelmap.Group{
		labelmap.Explicit("a", 0),
		labelmap.Explicit("b", 1),
	}, 4))
	attrs := validAttrs()
	attrs[AttrLabelMapping] = mapping // 2 groups, but num_classes is 10.
	_, err := New("test_ds", "/data/test", attrs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))

	attrs[AttrNumClasses] = 2
	ds := must.M1(New("test_ds", "/data/test", attrs))
	assert.Equal(t, 2, ds.NumClasses())
	assert.Same(t, mapping, ds.LabelMapping())
}

func TestDescriptorImmutability(t *testing.T) {
	ds := must.M1(New("test_ds", "/data/test", validAttrs()))
	mean := ds.Mean()
	mean[0] = 42
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, ds.Mean(), "Mean() must return a copy")
}

func TestGetModelNotImplemented(t *testing.T) {
	// Descriptors built directly through New have no model provider.
	ds := must.M1(New("test_ds", "/data/test", validAttrs()))
	_, err := ds.GetModel("cnn", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrNotImplemented))
	assert.False(t, errors.Is(err, robustsets.ErrConfig))
}
