// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package models

import (
	"testing"

	"github.com/gomlx/robustsets"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuiltin(t *testing.T) {
	for _, arch := range []string{"fnn", "cnn", "kan"} {
		model, err := New(arch, 9, false)
		require.NoErrorf(t, err, "architecture %q", arch)
		assert.Equal(t, arch, model.Arch)
		assert.Equal(t, 9, model.NumClasses)
		assert.False(t, model.Pretrained)
		assert.NotNil(t, model.Graph)
	}
}

func TestNewUnknownArch(t *testing.T) {
	_, err := New("resnet1000000", 10, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
	assert.Contains(t, err.Error(), "resnet1000000")
}

func TestNewInvalidClasses(t *testing.T) {
	_, err := New("fnn", 0, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, robustsets.ErrConfig))
}

func TestBuiltinRejectPretrained(t *testing.T) {
	for _, arch := range []string{"fnn", "cnn", "kan"} {
		_, err := New(arch, 10, true)
		require.Errorf(t, err, "architecture %q must reject pretrained weights", arch)
		assert.True(t, errors.Is(err, robustsets.ErrConfig))
	}
}

func TestRegisterAndNames(t *testing.T) {
	Register("test_stub", func(numClasses int, pretrained bool) (*Model, error) {
		return &Model{Arch: "test_stub", NumClasses: numClasses, Pretrained: pretrained}, nil
	})
	defer delete(registry, "test_stub")

	model, err := New("test_stub", 3, true)
	require.NoError(t, err)
	assert.True(t, model.Pretrained)
	assert.Contains(t, Names(), "test_stub")
	assert.Contains(t, Names(), "cnn")
}
