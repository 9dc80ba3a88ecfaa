// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// deviceLabel identifies the logical device in driver debug output.
const deviceLabel = "Quad Device"

// Context owns the GPU connection: instance, adapter, logical device and
// submission queue. It is created once per window surface and shared by
// the surface and pipeline for the lifetime of the renderer.
type Context struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	closed   bool
}

// NewContext establishes the GPU connection for the given surface target.
// It requests a high-performance adapter compatible with the surface and a
// logical device with default features and limits. There are no retries: a
// missing adapter or failed device request is fatal.
//
// The returned raw surface handle is created here because adapter selection
// requires it; ownership passes to NewSurface, which configures it.
func NewContext(target *wgpu.SurfaceDescriptor) (*Context, *wgpu.Surface, error) {
	if target == nil {
		return nil, nil, errors.New("quad: nil surface target")
	}

	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(target)

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
		CompatibleSurface: surface,
	})
	if err != nil {
		surface.Release()
		instance.Release()
		return nil, nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: deviceLabel,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, nil, fmt.Errorf("%w: %w", ErrDeviceCreation, err)
	}

	queue := device.GetQueue()

	Logger().Info("GPU device ready", "label", deviceLabel)

	ctx := &Context{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
	}
	return ctx, surface, nil
}

// Device returns the logical device.
func (c *Context) Device() *wgpu.Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// Queue returns the submission queue.
func (c *Context) Queue() *wgpu.Queue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue
}

// Close releases the device, adapter and instance. Safe to call multiple
// times. The queue is not released separately: its lifetime follows the
// device.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	// Release resources in reverse order of creation.
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	c.queue = nil

	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}

	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}

	c.closed = true
}
