// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package transforms defines declarative image preprocessing pipelines.
//
// A Pipeline is an ordered sequence of named operations with their parameters.
// The package never touches pixels: pipelines are descriptors handed over to the
// data-loading collaborator (see the loaders package), which interprets them while
// producing batches.
package transforms

import (
	"fmt"
	"slices"
	"strings"
)

// OpKind enumerates the supported preprocessing operations.
type OpKind int

const (
	OpResize OpKind = iota
	OpCenterCrop
	OpRandomCrop
	OpRandomResizedCrop
	OpRandomHorizontalFlip
	OpColorJitter
	OpLighting
	OpRandomRotation
)

var opKindNames = [...]string{
	OpResize:               "Resize",
	OpCenterCrop:           "CenterCrop",
	OpRandomCrop:           "RandomCrop",
	OpRandomResizedCrop:    "RandomResizedCrop",
	OpRandomHorizontalFlip: "RandomHorizontalFlip",
	OpColorJitter:          "ColorJitter",
	OpLighting:             "Lighting",
	OpRandomRotation:       "RandomRotation",
}

func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opKindNames) {
		return fmt.Sprintf("OpKind(%d)", k)
	}
	return opKindNames[k]
}

// Op is one preprocessing step. Only the fields relevant to its Kind are set.
type Op struct {
	Kind OpKind

	// Size is the target edge size for the resize/crop kinds.
	Size int

	// Padding applied before OpRandomCrop.
	Padding int

	// Brightness, Contrast and Saturation jitter amplitudes for OpColorJitter.
	Brightness, Contrast, Saturation float64

	// AlphaStd for OpLighting (PCA-based lighting noise).
	AlphaStd float64

	// Degrees for OpRandomRotation.
	Degrees float64
}

func (op Op) String() string {
	switch op.Kind {
	case OpResize, OpCenterCrop, OpRandomResizedCrop:
		return fmt.Sprintf("%s(%d)", op.Kind, op.Size)
	case OpRandomCrop:
		return fmt.Sprintf("%s(%d, padding=%d)", op.Kind, op.Size, op.Padding)
	case OpColorJitter:
		return fmt.Sprintf("%s(%g, %g, %g)", op.Kind, op.Brightness, op.Contrast, op.Saturation)
	case OpLighting:
		return fmt.Sprintf("%s(%g)", op.Kind, op.AlphaStd)
	case OpRandomRotation:
		return fmt.Sprintf("%s(%g)", op.Kind, op.Degrees)
	}
	return op.Kind.String()
}

// Resize scales the shorter image edge to size.
func Resize(size int) Op { return Op{Kind: OpResize, Size: size} }

// CenterCrop crops the central size x size patch.
func CenterCrop(size int) Op { return Op{Kind: OpCenterCrop, Size: size} }

// RandomCrop pads by padding pixels and crops a random size x size patch.
func RandomCrop(size, padding int) Op {
	return Op{Kind: OpRandomCrop, Size: size, Padding: padding}
}

// RandomResizedCrop crops a random area and aspect ratio, then resizes to size.
func RandomResizedCrop(size int) Op { return Op{Kind: OpRandomResizedCrop, Size: size} }

// RandomHorizontalFlip mirrors the image horizontally with probability 1/2.
func RandomHorizontalFlip() Op { return Op{Kind: OpRandomHorizontalFlip} }

// ColorJitter randomly perturbs brightness, contrast and saturation.
func ColorJitter(brightness, contrast, saturation float64) Op {
	return Op{Kind: OpColorJitter, Brightness: brightness, Contrast: contrast, Saturation: saturation}
}

// Lighting adds PCA-based lighting noise with the given alpha standard deviation.
func Lighting(alphaStd float64) Op { return Op{Kind: OpLighting, AlphaStd: alphaStd} }

// RandomRotation rotates by a random angle in [-degrees, degrees].
func RandomRotation(degrees float64) Op { return Op{Kind: OpRandomRotation, Degrees: degrees} }

// Pipeline is a named, ordered, immutable sequence of preprocessing operations.
// The zero value is "no pipeline" (see IsZero).
type Pipeline struct {
	name string
	ops  []Op
}

// New returns a Pipeline with the given name and operations.
func New(name string, ops ...Op) Pipeline {
	return Pipeline{name: name, ops: ops}
}

// Name identifies the pipeline.
func (p Pipeline) Name() string { return p.name }

// Ops returns a copy of the ordered operations.
func (p Pipeline) Ops() []Op { return slices.Clone(p.ops) }

// Len returns the number of operations.
func (p Pipeline) Len() int { return len(p.ops) }

// IsZero reports whether the pipeline is unset.
func (p Pipeline) IsZero() bool { return p.name == "" && len(p.ops) == 0 }

func (p Pipeline) String() string {
	parts := make([]string, len(p.ops))
	for i, op := range p.ops {
		parts[i] = op.String()
	}
	return fmt.Sprintf("%s[%s]", p.name, strings.Join(parts, ", "))
}

// Stock pipelines for full-resolution natural images (ImageNet-like corpora).
var (
	// TrainImageNet is the standard ImageNet training augmentation.
	TrainImageNet = New("train_imagenet",
		RandomResizedCrop(224),
		RandomHorizontalFlip(),
		ColorJitter(0.1, 0.1, 0.1),
		Lighting(0.05))

	// TestImageNet is the standard ImageNet evaluation preprocessing.
	TestImageNet = New("test_imagenet",
		Resize(256),
		CenterCrop(224))
)

// TrainDefault returns the default training augmentation for images of the given size.
func TrainDefault(size int) Pipeline {
	return New(fmt.Sprintf("train_default_%d", size),
		RandomCrop(size, 4),
		RandomHorizontalFlip(),
		ColorJitter(0.25, 0.25, 0.25),
		RandomRotation(2))
}

// TestDefault returns the default evaluation preprocessing for images of the given size.
func TestDefault(size int) Pipeline {
	return New(fmt.Sprintf("test_default_%d", size),
		Resize(size),
		CenterCrop(size))
}
