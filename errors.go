// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import "errors"

// Initialization errors. These are fatal: construction failed and the
// renderer holds no GPU resources.
var (
	// ErrNoAdapter is returned when no compatible GPU adapter is available.
	ErrNoAdapter = errors.New("quad: no suitable GPU adapter")

	// ErrDeviceCreation is returned when the logical device request fails.
	ErrDeviceCreation = errors.New("quad: device creation failed")

	// ErrShaderCompile is returned when the quad shader fails validation
	// or compilation.
	ErrShaderCompile = errors.New("quad: shader compilation failed")

	// ErrNoSurfaceFormat is returned when the surface advertises no
	// texture formats for the selected adapter.
	ErrNoSurfaceFormat = errors.New("quad: surface reports no compatible formats")
)

// Runtime errors surfaced by frame acquisition.
var (
	// ErrOutOfMemory is returned when the driver reports GPU memory
	// exhaustion. Fatal: rendering cannot continue.
	ErrOutOfMemory = errors.New("quad: out of GPU memory")

	// ErrSurfaceLost is returned when the surface handle became invalid
	// and must be reconfigured. Transient: the frame is skipped.
	ErrSurfaceLost = errors.New("quad: surface lost")

	// ErrSurfaceOutdated is returned when the surface no longer matches
	// the window, typically mid-resize. Transient: the frame is skipped.
	ErrSurfaceOutdated = errors.New("quad: surface outdated")

	// ErrAcquireTimeout is returned when the next drawable was not
	// delivered in time. Transient: the frame is skipped.
	ErrAcquireTimeout = errors.New("quad: frame acquisition timed out")
)

// Validation and lifecycle errors.
var (
	// ErrInvalidDimensions is returned when a width or height of zero is
	// passed where a drawable size is required.
	ErrInvalidDimensions = errors.New("quad: invalid surface dimensions")

	// ErrInstanceCapacity is returned when an instance update exceeds the
	// capacity fixed at pipeline construction.
	ErrInstanceCapacity = errors.New("quad: instance data exceeds buffer capacity")

	// ErrNotReady is returned when rendering is requested before
	// initialization completed.
	ErrNotReady = errors.New("quad: renderer not initialized")

	// ErrRendererClosed is returned when operations are called after Close.
	ErrRendererClosed = errors.New("quad: renderer closed")
)
