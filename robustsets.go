// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package robustsets is a thin configuration layer over the image-classification
// datasets commonly used to train and evaluate adversarially-robust models.
//
// Each dataset variant -- the full ImageNet label space, the restricted superclass
// grouping, or a user-defined regrouping -- is described by an immutable
// datasets.DataSet: class count, per-channel normalization statistics, train/test
// preprocessing pipelines, and an optional fine-to-coarse label mapping.
//
// The heavy lifting (image decoding, batching, augmentation, model execution) is
// delegated to GoMLX: loaders produce pkg/ml/train.Dataset batch streams, and the
// architecture registry in the models subpackage hands back GoMLX model graph
// functions sized for the descriptor's class count.
//
// The subpackages are:
//   - datasets: the descriptor, its validated construction, the built-in variants
//     and the variant registry.
//   - labelmap: the fine-to-coarse label mapping builder.
//   - transforms: declarative preprocessing pipeline descriptors.
//   - models: the architecture (name -> factory) registry.
//   - loaders: the boundary contract to the data-loading collaborator.
package robustsets

import "github.com/pkg/errors"

var (
	// ErrConfig is the single error kind for configuration mistakes: missing or
	// unrecognized attributes, type-mismatched overrides, out-of-range label groups,
	// unsupported pretrained requests and unknown architecture or variant names.
	// All returned errors wrap it, so callers can test with errors.Is.
	ErrConfig = errors.New("invalid dataset configuration")

	// ErrNotImplemented is returned by DataSet.GetModel on descriptors built directly
	// through datasets.New: only the variant constructors install a model provider.
	ErrNotImplemented = errors.New("not implemented by this dataset variant")
)

// Errorf returns a configuration error with a formatted message wrapping ErrConfig.
func Errorf(format string, args ...any) error {
	return errors.Wrapf(ErrConfig, format, args...)
}
