// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"reflect"

	"github.com/gomlx/robustsets"
)

// Attribute names accepted by New. The five required ones must be present and
// non-nil; the optional ones default to nil ("unset"). Any other key is rejected.
const (
	AttrNumClasses     = "num_classes"
	AttrMean           = "mean"
	AttrStd            = "std"
	AttrTransformTrain = "transform_train"
	AttrTransformTest  = "transform_test"

	AttrCustomClass     = "custom_class"
	AttrLabelMapping    = "label_mapping"
	AttrCustomClassArgs = "custom_class_args"
)

var (
	requiredAttrs = []string{AttrNumClasses, AttrMean, AttrStd, AttrTransformTrain, AttrTransformTest}
	optionalAttrs = []string{AttrCustomClass, AttrLabelMapping, AttrCustomClassArgs}
)

// Attrs is the loosely-typed attribute set a descriptor is constructed from,
// keyed by the Attr* constants. New validates it and decants it into the typed
// DataSet record.
type Attrs map[string]any

// OverrideAttrs merges caller overrides over variant defaults. For keys present in
// both where neither value is nil, the override's concrete type must match the
// default's exactly. An explicitly nil override erases the default. Keys absent
// from the defaults pass through untouched; New judges them later.
//
// The merge is pure: neither input map is modified.
func OverrideAttrs(defaults, overrides Attrs) (Attrs, error) {
	merged := make(Attrs, len(defaults)+len(overrides))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range overrides {
		if defaultValue, found := defaults[key]; found && defaultValue != nil && value != nil {
			want := reflect.TypeOf(defaultValue)
			got := reflect.TypeOf(value)
			if want != got {
				return nil, robustsets.Errorf("attribute %q must have type %s, got %s",
					key, want, got)
			}
		}
		merged[key] = value
	}
	return merged, nil
}

// attrAs decants a required attribute, failing with a configuration error when the
// value is not a T. Presence is checked by New before this is called.
func attrAs[T any](attrs Attrs, key string) (value T, err error) {
	v, ok := attrs[key].(T)
	if !ok {
		err = robustsets.Errorf("attribute %q must have type %T, got %T", key, value, attrs[key])
		return
	}
	return v, nil
}

// optionalAttrAs decants an optional attribute; absent or nil yields the zero value.
func optionalAttrAs[T any](attrs Attrs, key string) (value T, err error) {
	raw, found := attrs[key]
	if !found || raw == nil {
		return
	}
	v, ok := raw.(T)
	if !ok {
		err = robustsets.Errorf("attribute %q must have type %T, got %T", key, value, raw)
		return
	}
	return v, nil
}
