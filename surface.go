// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceConfig records how the presentation surface is configured.
// It is applied by NewSurface and re-applied on every accepted resize.
type SurfaceConfig struct {
	// Width and Height are the drawable size in pixels. Both must be
	// greater than zero; configuration rejects zero dimensions and
	// Resize ignores them.
	Width  uint32
	Height uint32

	// Format is the surface texture format. The zero value selects the
	// first sRGB format the surface advertises, falling back to the
	// first advertised format.
	Format wgpu.TextureFormat

	// PresentMode paces frame delivery. Constructors default it to
	// wgpu.PresentModeFifo (vsync).
	PresentMode wgpu.PresentMode

	// AlphaMode controls compositing with the window system. The zero
	// value selects the first advertised mode.
	AlphaMode wgpu.CompositeAlphaMode

	// MaxFrameLatency bounds the number of frames in flight. It is
	// recorded and validated (minimum 1) but advisory: Fifo presentation
	// already bounds queued frames at the driver level.
	MaxFrameLatency int
}

// surfaceTexture is the acquired drawable as seen by the frame logic.
// *wgpu.Texture implements it.
type surfaceTexture interface {
	CreateView(descriptor *wgpu.TextureViewDescriptor) (*wgpu.TextureView, error)
	Release()
}

// surfaceHandle is the narrow driver surface contract the Surface state
// machine runs against. driverSurface adapts *wgpu.Surface to it; tests
// substitute fakes to script acquisition failures.
type surfaceHandle interface {
	GetCapabilities(adapter *wgpu.Adapter) wgpu.SurfaceCapabilities
	Configure(adapter *wgpu.Adapter, device *wgpu.Device, config *wgpu.SurfaceConfiguration)
	GetCurrentTexture() (surfaceTexture, error)
	Present()
	Release()
}

// driverSurface adapts *wgpu.Surface to surfaceHandle. The indirection
// exists because GetCurrentTexture must return the surfaceTexture
// interface rather than the concrete driver type.
type driverSurface struct {
	s *wgpu.Surface
}

func (d driverSurface) GetCapabilities(adapter *wgpu.Adapter) wgpu.SurfaceCapabilities {
	return d.s.GetCapabilities(adapter)
}

func (d driverSurface) Configure(adapter *wgpu.Adapter, device *wgpu.Device, config *wgpu.SurfaceConfiguration) {
	d.s.Configure(adapter, device, config)
}

func (d driverSurface) GetCurrentTexture() (surfaceTexture, error) {
	texture, err := d.s.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	return texture, nil
}

func (d driverSurface) Present() { d.s.Present() }

func (d driverSurface) Release() { d.s.Release() }

// Surface owns the configured drawable handle and hands out one frame at
// a time. It borrows the adapter and device for configure calls; the
// Context retains ownership of both.
type Surface struct {
	mu      sync.Mutex
	adapter *wgpu.Adapter
	device  *wgpu.Device
	handle  surfaceHandle
	config  SurfaceConfig
	closed  bool
}

// NewSurface configures the raw surface handle created by NewContext for
// presentation at the given size. Format and alpha mode follow the
// advertised capabilities (sRGB preferred, first alpha mode); presentation
// is Fifo-paced. Ownership of the handle transfers to the returned Surface.
func NewSurface(ctx *Context, handle *wgpu.Surface, width, height uint32) (*Surface, error) {
	return newSurface(ctx.adapter, ctx.device, driverSurface{s: handle}, SurfaceConfig{
		Width:           width,
		Height:          height,
		PresentMode:     wgpu.PresentModeFifo,
		MaxFrameLatency: 2,
	})
}

// newSurface validates the config, fills capability-derived fields and
// applies the initial configuration.
func newSurface(adapter *wgpu.Adapter, device *wgpu.Device, handle surfaceHandle, cfg SurfaceConfig) (*Surface, error) {
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	if cfg.MaxFrameLatency == 0 {
		cfg.MaxFrameLatency = 2
	}
	if cfg.MaxFrameLatency < 1 {
		return nil, fmt.Errorf("quad: max frame latency must be at least 1, got %d", cfg.MaxFrameLatency)
	}

	caps := handle.GetCapabilities(adapter)

	if cfg.Format == wgpu.TextureFormatUndefined {
		format, err := selectFormat(caps.Formats)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if cfg.AlphaMode == 0 && len(caps.AlphaModes) > 0 {
		cfg.AlphaMode = caps.AlphaModes[0]
	}

	s := &Surface{
		adapter: adapter,
		device:  device,
		handle:  handle,
		config:  cfg,
	}
	s.configure()

	Logger().Info("surface configured",
		"width", cfg.Width,
		"height", cfg.Height,
		"format", cfg.Format,
		"presentMode", cfg.PresentMode,
		"maxFrameLatency", cfg.MaxFrameLatency,
	)
	return s, nil
}

// configure applies the stored config to the driver surface.
// Callers must hold s.mu (or be the constructor).
func (s *Surface) configure() {
	s.handle.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.config.Format,
		Width:       s.config.Width,
		Height:      s.config.Height,
		PresentMode: s.config.PresentMode,
		AlphaMode:   s.config.AlphaMode,
	})
}

// selectFormat picks the surface texture format: the first sRGB entry if
// the capability list has one, otherwise the first advertised format.
// An empty list means the surface cannot be used with this adapter.
func selectFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, error) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, ErrNoSurfaceFormat
	}
	for _, f := range formats {
		if isSRGBFormat(f) {
			return f, nil
		}
	}
	return formats[0], nil
}

// isSRGBFormat reports whether f is one of the sRGB surface formats.
func isSRGBFormat(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// Config returns a copy of the current surface configuration.
func (s *Surface) Config() SurfaceConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Resize updates the drawable size and reconfigures the surface. A zero
// width or height (as delivered mid-minimize by some window systems)
// leaves the previous configuration untouched.
func (s *Surface) Resize(width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if width == 0 || height == 0 {
		Logger().Debug("ignoring resize to zero dimensions", "width", width, "height", height)
		return
	}

	s.config.Width = width
	s.config.Height = height
	s.configure()

	Logger().Debug("surface resized", "width", width, "height", height)
}

// AcquireFrame returns the next drawable wrapped in a Frame. Exactly one
// of Frame.Present or Frame.Discard must be called on a returned frame.
//
// Acquisition failures are classified against the package sentinels:
// errors.Is(err, ErrOutOfMemory) is fatal, everything else is transient.
func (s *Surface) AcquireFrame() (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrRendererClosed
	}

	texture, err := s.handle.GetCurrentTexture()
	if err != nil {
		return nil, classifyAcquireError(err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, classifyAcquireError(err)
	}

	return &Frame{
		presenter: s.handle,
		texture:   texture,
		view:      view,
	}, nil
}

// classifyAcquireError maps opaque driver acquisition errors onto the
// package sentinels by the stable substrings the driver emits. Errors
// that match nothing pass through unchanged and are treated as transient.
func classifyAcquireError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	case strings.Contains(msg, "outdated"), strings.Contains(msg, "suboptimal"):
		return fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %w", ErrAcquireTimeout, err)
	case strings.Contains(msg, "memory"):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	default:
		return err
	}
}

// Close releases the drawable handle. Safe to call multiple times.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.handle != nil {
		s.handle.Release()
		s.handle = nil
	}
	s.closed = true
}
