// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command quaddemo opens a window and renders the instanced quad demo
// grid, continuously redrawing until the window closes.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/quad"
)

func main() {
	var (
		width   = flag.Int("width", 1280, "window width")
		height  = flag.Int("height", 720, "window height")
		title   = flag.String("title", "quad demo", "window title")
		verbose = flag.Bool("v", false, "enable debug logging")
		animate = flag.Bool("animate", false, "pulse the grid colors each frame")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	quad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	// Required by the GLFW threading model.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// The surface is driven by WebGPU; GLFW must not create a GL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(*width, *height, *title, nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	grid := quad.DemoInstances()
	r := quad.New(quad.WithInstances(grid))
	if err := r.Initialize(wgpuglfw.GetSurfaceDescriptor(window), uint32(*width), uint32(*height)); err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}
	defer r.Close()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		r.Resize(uint32(w), uint32(h))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()

		if *animate {
			if err := r.UpdateInstances(pulse(grid, glfw.GetTime())); err != nil {
				log.Fatalf("Failed to update instances: %v", err)
			}
		}

		if err := r.RenderFrame(); err != nil {
			log.Fatalf("Rendering failed: %v", err)
		}
	}
}

// pulse returns a copy of the instances with colors modulated by a
// per-instance phase, so the grid shimmers over time.
func pulse(base []quad.Instance, t float64) []quad.Instance {
	out := make([]quad.Instance, len(base))
	for i, in := range base {
		k := float32(0.7 + 0.3*math.Sin(2*t+float64(i)*0.25))
		in.Color[0] *= k
		in.Color[1] *= k
		in.Color[2] *= k
		out[i] = in
	}
	return out
}
