// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Command recording labels for driver debug output.
const (
	encoderLabel = "Render Encoder"
	passLabel    = "Render Pass"
)

// State is the renderer lifecycle state.
type State int

const (
	// StateUninitialized is the state after New: no GPU resources exist.
	StateUninitialized State = iota

	// StateReady is the state after a successful Initialize: the device,
	// surface and pipeline are live and RenderFrame may be called.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Renderer composes the context, surface and pipeline and drives the
// per-frame acquire, record, submit, present cycle. It is constructed
// cheap and inert by New; GPU resources exist only after Initialize.
//
// The renderer assumes a single render thread: one RenderFrame runs to
// completion before the next begins. The internal mutex guards lifecycle
// transitions (Close racing a late RenderFrame), not concurrent framing.
type Renderer struct {
	mu       sync.Mutex
	opts     options
	ctx      *Context
	surface  *Surface
	pipeline *Pipeline
	recorder frameRecorder

	// width and height cache the last accepted drawable size, used to
	// reconfigure the surface after a lost-surface recovery.
	width  uint32
	height uint32

	state  State
	closed bool
}

// New creates an uninitialized renderer with the given options. No GPU
// work happens here; call Initialize with a surface target to bring the
// renderer to Ready.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o}
}

// Initialize establishes the GPU connection and builds all rendering
// resources for the given surface target: instance, adapter and device
// (NewContext), configured surface (surface format and present mode
// policy), and the instanced quad pipeline compiled against the selected
// surface format.
//
// Zero dimensions are rejected before any driver call. Initialize is
// idempotent once the renderer is Ready.
func (r *Renderer) Initialize(target *wgpu.SurfaceDescriptor, width, height uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRendererClosed
	}
	if r.state == StateReady {
		return nil
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	ctx, rawSurface, err := NewContext(target)
	if err != nil {
		return err
	}

	surface, err := newSurface(ctx.adapter, ctx.device, driverSurface{s: rawSurface}, SurfaceConfig{
		Width:           width,
		Height:          height,
		PresentMode:     r.opts.presentMode,
		MaxFrameLatency: r.opts.maxFrameLatency,
	})
	if err != nil {
		rawSurface.Release()
		ctx.Close()
		return err
	}

	pipeline, err := NewPipeline(ctx.device, ctx.queue, surface.Config().Format, r.opts.instances)
	if err != nil {
		surface.Close()
		ctx.Close()
		return err
	}

	r.ctx = ctx
	r.surface = surface
	r.pipeline = pipeline
	r.recorder = &deviceRecorder{device: ctx.device, queue: ctx.queue}
	r.width = width
	r.height = height
	r.state = StateReady

	Logger().Info("renderer ready",
		"width", width,
		"height", height,
		"instances", len(r.opts.instances),
	)
	return nil
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// RenderFrame renders one frame: acquire the next drawable, record a
// render pass that clears and draws all instances, submit, present.
//
// Transient failures (lost or outdated surface, acquisition timeout,
// recording failure) skip the frame and return nil; a lost surface is
// reconfigured at the last accepted size before the skip. The caller
// schedules the next frame regardless. Only GPU memory exhaustion (and
// calling before Initialize or after Close) returns an error.
func (r *Renderer) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRendererClosed
	}
	if r.state != StateReady {
		return ErrNotReady
	}

	frame, err := r.surface.AcquireFrame()
	if err != nil {
		switch {
		case errors.Is(err, ErrOutOfMemory):
			Logger().Error("GPU memory exhausted", "err", err)
			return err
		case errors.Is(err, ErrSurfaceLost):
			Logger().Warn("surface lost, reconfiguring", "err", err)
			r.surface.Resize(r.width, r.height)
			return nil
		default:
			Logger().Warn("frame skipped", "err", err)
			return nil
		}
	}

	scope, err := r.recorder.Begin(frame.View(), r.opts.clearColor)
	if err != nil {
		frame.Discard()
		Logger().Warn("frame skipped: command recording failed", "err", err)
		return nil
	}

	r.pipeline.Draw(scope.Pass())

	if err := scope.Submit(); err != nil {
		frame.Discard()
		Logger().Warn("frame skipped: submit failed", "err", err)
		return nil
	}

	frame.Present()
	return nil
}

// Resize propagates a new drawable size to the surface and records it
// for lost-surface recovery. Zero dimensions touch neither; calls before
// Ready or after Close are ignored.
func (r *Renderer) Resize(width, height uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.state != StateReady {
		return
	}
	if width == 0 || height == 0 {
		Logger().Debug("ignoring resize to zero dimensions", "width", width, "height", height)
		return
	}

	r.width = width
	r.height = height
	r.surface.Resize(width, height)
}

// UpdateInstances re-uploads per-instance data through the pipeline. See
// Pipeline.UpdateInstances for the capacity contract.
func (r *Renderer) UpdateInstances(instances []Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRendererClosed
	}
	if r.state != StateReady {
		return ErrNotReady
	}
	return r.pipeline.UpdateInstances(instances)
}

// Close tears down all GPU resources in reverse creation order: pipeline,
// surface, then context. Safe to call multiple times. After Close the
// renderer cannot be reused.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	if r.pipeline != nil {
		r.pipeline.Close()
		r.pipeline = nil
	}
	if r.surface != nil {
		r.surface.Close()
		r.surface = nil
	}
	if r.ctx != nil {
		r.ctx.Close()
		r.ctx = nil
	}
	r.recorder = nil
	r.state = StateUninitialized
	r.closed = true

	Logger().Info("renderer closed")
	return nil
}

// recordingScope is one frame's command recording. Pass exposes the
// render pass for draw calls; Submit ends the pass and submits the
// command buffer, releasing encoder resources on every path.
type recordingScope interface {
	Pass() RenderPass
	Submit() error
}

// frameRecorder opens recording scopes. deviceRecorder is the driver
// implementation; tests substitute fakes to script recording failures.
type frameRecorder interface {
	Begin(view *wgpu.TextureView, clear wgpu.Color) (recordingScope, error)
}

// deviceRecorder records frames through a real device and queue.
type deviceRecorder struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

func (d *deviceRecorder) Begin(view *wgpu.TextureView, clear wgpu.Color) (recordingScope, error) {
	encoder, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: encoderLabel,
	})
	if err != nil {
		return nil, err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: passLabel,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clear,
		}},
	})

	return &deviceScope{queue: d.queue, encoder: encoder, pass: pass}, nil
}

// deviceScope finishes and submits one frame's commands.
type deviceScope struct {
	queue   *wgpu.Queue
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

func (s *deviceScope) Pass() RenderPass { return s.pass }

func (s *deviceScope) Submit() error {
	s.pass.End()

	commands, err := s.encoder.Finish(nil)
	if err != nil {
		s.encoder.Release()
		return err
	}

	s.queue.Submit(commands)

	commands.Release()
	s.encoder.Release()
	return nil
}
