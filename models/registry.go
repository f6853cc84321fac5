// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package models is the architecture registry: it maps architecture names to
// factories that build a GoMLX model graph function with the requested number of
// output classes.
//
// The registry is meant to be populated at process start (init functions) and read
// for the rest of the process lifetime. Built-in architectures ("fnn", "cnn", "kan")
// are registered by this package; training frameworks can register their own.
package models

import (
	"github.com/gomlx/gomlx/pkg/ml/train"
	"github.com/gomlx/gomlx/pkg/support/xslices"
	"github.com/gomlx/robustsets"
	"k8s.io/klog/v2"
)

// Model is an instantiated architecture: a model graph function sized for
// NumClasses output logits.
type Model struct {
	// Arch is the registered architecture name this model was built from.
	Arch string

	// NumClasses is the number of output classes (logits).
	NumClasses int

	// Pretrained reports whether the model was initialized from pretrained weights.
	Pretrained bool

	// Graph is the GoMLX model function: it takes the batched images as inputs[0]
	// and returns the logits, shaped [batchSize, NumClasses].
	Graph train.ModelFn
}

// Factory instantiates an architecture for the given number of output classes,
// optionally with pretrained weights. Factories without published weights must
// reject pretrained=true with a configuration error.
type Factory func(numClasses int, pretrained bool) (*Model, error)

var registry = map[string]Factory{}

// Register adds an architecture factory under the given name. It is meant to be
// called from init functions only; the registry is read-only afterwards.
// Registering the same name twice keeps the latest factory.
func Register(name string, factory Factory) {
	if _, found := registry[name]; found {
		klog.Warningf("models: architecture %q registered more than once, keeping the latest", name)
	}
	registry[name] = factory
}

// New instantiates the named architecture with numClasses output classes.
// Unknown names and invalid class counts fail with a configuration error.
func New(name string, numClasses int, pretrained bool) (*Model, error) {
	factory, found := registry[name]
	if !found {
		return nil, robustsets.Errorf("unknown architecture %q, registered: %v", name, Names())
	}
	if numClasses <= 0 {
		return nil, robustsets.Errorf("architecture %q needs a positive number of classes, got %d",
			name, numClasses)
	}
	return factory(numClasses, pretrained)
}

// Names returns the sorted names of the registered architectures.
func Names() []string {
	return xslices.SortedKeys(registry)
}
