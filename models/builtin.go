// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package models

import (
	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/gomlx/gomlx/pkg/ml/layers"
	"github.com/gomlx/gomlx/pkg/ml/layers/activations"
	"github.com/gomlx/gomlx/pkg/ml/layers/batchnorm"
	"github.com/gomlx/gomlx/pkg/ml/layers/fnn"
	"github.com/gomlx/gomlx/pkg/ml/layers/kan"
	"github.com/gomlx/gomlx/pkg/ml/train"
	"github.com/gomlx/robustsets"
)

func init() {
	Register("fnn", builtinFactory("fnn", plainModelGraph))
	Register("kan", builtinFactory("kan", kanModelGraph))
	Register("cnn", builtinFactory("cnn", convolutionModelGraph))
}

// builtinFactory wraps a graph builder as a Factory. None of the built-in
// architectures have published checkpoints, so pretrained=true is rejected.
func builtinFactory(arch string, build func(numClasses int) train.ModelFn) Factory {
	return func(numClasses int, pretrained bool) (*Model, error) {
		if pretrained {
			return nil, robustsets.Errorf("architecture %q has no pretrained weights available", arch)
		}
		return &Model{Arch: arch, NumClasses: numClasses, Graph: build(numClasses)}, nil
	}
}

// plainModelGraph is a basic FNN over the flattened image, configured through the
// usual context hyperparameters.
func plainModelGraph(numClasses int) train.ModelFn {
	return func(ctx *context.Context, spec any, inputs []*graph.Node) []*graph.Node {
		batchedImages := inputs[0]
		batchSize := batchedImages.Shape().Dimensions[0]
		logits := graph.Reshape(batchedImages, batchSize, -1)
		logits = fnn.New(ctx, logits, numClasses).Done()
		logits.AssertDims(batchSize, numClasses)
		return []*graph.Node{logits}
	}
}

// kanModelGraph uses a KAN layer over the flattened image, re-scaled to [-1, 1].
func kanModelGraph(numClasses int) train.ModelFn {
	return func(ctx *context.Context, spec any, inputs []*graph.Node) []*graph.Node {
		batchedImages := inputs[0]
		batchSize := batchedImages.Shape().Dimensions[0]
		logits := graph.Reshape(batchedImages, batchSize, -1)
		logits = graph.AddScalar(graph.MulScalar(logits, 2), -1)
		logits = kan.New(ctx, logits, numClasses).Done()
		logits.AssertDims(batchSize, numClasses)
		return []*graph.Node{logits}
	}
}

// convolutionModelGraph is a straightforward CNN, agnostic to the input image size:
// three conv blocks with max-pooling, then dense layers down to the logits.
func convolutionModelGraph(numClasses int) train.ModelFn {
	return func(ctx *context.Context, spec any, inputs []*graph.Node) []*graph.Node {
		batchedImages := inputs[0]
		g := batchedImages.Graph()
		dtype := batchedImages.DType()
		batchSize := batchedImages.Shape().Dimensions[0]
		logits := batchedImages

		layerIdx := 0
		nextCtx := func(name string) *context.Context {
			newCtx := ctx.Inf("%03d_%s", layerIdx, name)
			layerIdx++
			return newCtx
		}

		for _, channels := range []int{32, 64, 128} {
			logits = layers.Convolution(nextCtx("conv"), logits).
				Channels(channels).KernelSize(3).PadSame().Done()
			logits = activations.Relu(logits)
			logits = layers.Convolution(nextCtx("conv"), logits).
				Channels(channels).KernelSize(3).PadSame().Done()
			logits = activations.Relu(logits)
			logits = batchnorm.New(nextCtx("norm"), logits, -1).Done()
			logits = graph.MaxPool(logits).Window(2).Done()
			logits = layers.DropoutNormalize(nextCtx("dropout"), logits, graph.Scalar(g, dtype, 0.3), true)
		}

		logits = graph.Reshape(logits, batchSize, -1)
		logits = layers.Dense(nextCtx("dense"), logits, true, 128)
		logits = activations.Relu(logits)
		logits = layers.DropoutNormalize(nextCtx("dropout"), logits, graph.Scalar(g, dtype, 0.5), true)
		logits = layers.Dense(nextCtx("dense"), logits, true, numClasses)
		logits.AssertDims(batchSize, numClasses)
		return []*graph.Node{logits}
	}
}
