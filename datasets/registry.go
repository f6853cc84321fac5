// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/pkg/support/xslices"
	"github.com/gomlx/robustsets"
)

// Constructor builds a descriptor for one variant from a data path and overrides.
type Constructor func(dataPath string, overrides Attrs) (*DataSet, error)

// variants is populated once here and treated as read-only for the rest of the
// process lifetime.
var variants = map[string]Constructor{
	"imagenet":            ImageNet,
	"places365":           Places365,
	"restricted_imagenet": RestrictedImageNet,
	"custom_imagenet":     customImageNetByName,
}

// customImageNetByName exists so "custom_imagenet" is a known variant name, but a
// grouping cannot be expressed through overrides.
func customImageNetByName(dataPath string, overrides Attrs) (*DataSet, error) {
	return nil, robustsets.Errorf(
		"variant %q requires an explicit grouping, call CustomImageNet directly", "custom_imagenet")
}

// FromName constructs the named dataset variant. Unknown names fail with a
// configuration error listing the known variants.
func FromName(name, dataPath string, overrides Attrs) (*DataSet, error) {
	ctor, found := variants[name]
	if !found {
		return nil, robustsets.Errorf("unknown dataset variant %q, known: %v", name, Names())
	}
	return ctor(dataPath, overrides)
}

// MustFromName is like FromName but panics on error.
func MustFromName(name, dataPath string, overrides Attrs) *DataSet {
	ds, err := FromName(name, dataPath, overrides)
	if err != nil {
		exceptions.Panicf("datasets.MustFromName(%q): %+v", name, err)
	}
	return ds
}

// Names returns the sorted names of the registered dataset variants.
func Names() []string {
	return xslices.SortedKeys(variants)
}
