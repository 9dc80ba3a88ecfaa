// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is one acquired drawable: the surface texture and the render view
// onto it. A frame must be finalized exactly once, either by Present
// (after a successful submit) or by Discard (on any abandoned path).
// Further calls after finalization are no-ops.
type Frame struct {
	presenter interface{ Present() }
	texture   surfaceTexture
	view      *wgpu.TextureView
	finished  bool
}

// View returns the texture view the render pass draws into.
func (f *Frame) View() *wgpu.TextureView {
	return f.view
}

// Present shows the frame on the surface and releases the drawable.
func (f *Frame) Present() {
	if f.finished {
		return
	}
	f.finished = true

	f.presenter.Present()
	f.release()
}

// Discard releases the drawable without presenting. Used when the frame's
// command recording or submission failed and the frame is skipped.
func (f *Frame) Discard() {
	if f.finished {
		return
	}
	f.finished = true

	f.release()
}

func (f *Frame) release() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}
