// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package quad provides a GPU-accelerated instanced quad renderer for Go.
//
// # Overview
//
// quad owns the full presentation path for batches of colored 2D quads:
// the WebGPU device and surface connection, a shader-backed render
// pipeline, per-instance geometry upload, and a per-frame
// acquire-record-submit-present cycle paced to the display. Transient
// presentation failures (a lost or outdated surface, an acquisition
// timeout) are recovered by skipping the frame; only GPU memory
// exhaustion is fatal.
//
// # Quick Start
//
//	import (
//	    "github.com/cogentcore/webgpu/wgpuglfw"
//	    "github.com/gogpu/quad"
//	)
//
//	// Window setup (GLFW shown; any surface descriptor source works).
//	r := quad.New(quad.WithInstances(quad.DemoInstances()))
//	if err := r.Initialize(wgpuglfw.GetSurfaceDescriptor(window), 1280, 720); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for !window.ShouldClose() {
//	    glfw.PollEvents()
//	    if err := r.RenderFrame(); err != nil {
//	        log.Fatal(err) // out of GPU memory
//	    }
//	}
//
// # Architecture
//
// The package is one cohesive layer with four collaborating pieces:
//   - Context: instance, adapter, device and queue ownership
//   - Surface and Frame: drawable configuration, acquisition, present
//   - Pipeline: shader, pipeline state object, vertex and instance buffers
//   - Renderer: composition root driving the five-step frame protocol
//
// Geometry is a single shared unit quad instanced N times; each instance
// carries position, size and color (32 bytes, matching shaders/quad.wgsl).
// One draw call renders the whole batch.
//
// # Error Handling
//
// Fallible operations return errors wrapping the package sentinels, so
// callers classify with errors.Is: ErrNoAdapter, ErrDeviceCreation,
// ErrShaderCompile and ErrNoSurfaceFormat are fatal at initialization;
// ErrOutOfMemory is fatal at runtime; ErrSurfaceLost, ErrSurfaceOutdated
// and ErrAcquireTimeout are transient and already recovered inside
// RenderFrame by the time they are logged.
//
// # Logging
//
// The package is silent by default. Pass a *slog.Logger to SetLogger to
// observe lifecycle events, recovered failures and per-frame diagnostics.
package quad

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
