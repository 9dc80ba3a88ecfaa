// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import "github.com/cogentcore/webgpu/wgpu"

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default configuration: demo grid, dark clear color, vsync.
//	r := quad.New()
//
//	// Custom content and clear color.
//	r := quad.New(
//	    quad.WithInstances(myQuads),
//	    quad.WithClearColor(wgpu.Color{R: 0, G: 0, B: 0, A: 1}),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	clearColor      wgpu.Color
	instances       []Instance
	presentMode     wgpu.PresentMode
	maxFrameLatency int
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		clearColor:      wgpu.Color{R: 0.05, G: 0.05, B: 0.08, A: 1.0},
		instances:       DemoInstances(),
		presentMode:     wgpu.PresentModeFifo,
		maxFrameLatency: 2,
	}
}

// WithClearColor sets the color the render pass clears to before drawing.
// Components are linear RGBA in [0, 1].
//
// Example:
//
//	r := quad.New(quad.WithClearColor(wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}))
func WithClearColor(c wgpu.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithInstances sets the initial instance data. The instance buffer
// capacity is fixed to len(in) at initialization; later updates through
// UpdateInstances may shrink the drawn count but never exceed it.
//
// Passing nil or an empty slice produces a renderer that clears the
// surface and draws nothing.
//
// Example:
//
//	r := quad.New(quad.WithInstances(quad.GridInstances(4, 4, 0.2, 0.25)))
func WithInstances(in []Instance) Option {
	return func(o *options) {
		o.instances = in
	}
}

// WithPresentMode sets the presentation mode for the surface.
// The default is [wgpu.PresentModeFifo], which paces frames to the
// display refresh.
func WithPresentMode(mode wgpu.PresentMode) Option {
	return func(o *options) {
		o.presentMode = mode
	}
}

// WithMaxFrameLatency bounds the number of queued frames. The value is
// recorded in the surface configuration and must be at least 1; Fifo
// presentation already bounds frames in flight at the driver level.
func WithMaxFrameLatency(n int) Option {
	return func(o *options) {
		o.maxFrameLatency = n
	}
}
