// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	"unsafe"

	"golang.org/x/image/math/f32"
)

// Vertex is one corner of the unit quad in local space.
// Must match VertexInput in shaders/quad.wgsl.
type Vertex struct {
	// Pos is the corner position inside the [0,1] x [0,1] unit square.
	Pos f32.Vec2
}

// Instance describes one quad placement.
// Must match InstanceInput in shaders/quad.wgsl: 32 tightly packed bytes.
type Instance struct {
	// Pos is the quad origin in normalized device coordinates.
	Pos f32.Vec2

	// Size scales the unit quad along each axis.
	Size f32.Vec2

	// Color is linear RGBA with components in [0, 1].
	Color f32.Vec4
}

// Buffer layout constants shared between the Go structs and quad.wgsl.
const (
	// VertexStride is the byte size of one Vertex.
	VertexStride = uint64(unsafe.Sizeof(Vertex{}))

	// InstanceStride is the byte size of one Instance.
	InstanceStride = uint64(unsafe.Sizeof(Instance{}))

	// QuadVertexCount is the number of vertices drawn per instance:
	// two triangles covering the unit square.
	QuadVertexCount = 6
)

// UnitQuadVertices returns the six vertices of the unit quad as two
// counter-clockwise triangles covering [0,1] x [0,1]. The slice is
// freshly allocated; the pipeline uploads it once and never mutates it.
func UnitQuadVertices() []Vertex {
	return []Vertex{
		{Pos: f32.Vec2{0, 0}},
		{Pos: f32.Vec2{1, 0}},
		{Pos: f32.Vec2{1, 1}},
		{Pos: f32.Vec2{0, 0}},
		{Pos: f32.Vec2{1, 1}},
		{Pos: f32.Vec2{0, 1}},
	}
}

// GridInstances generates cols x rows quads of the given size, laid out on
// a regular grid with the given spacing and centered on the NDC origin.
// Each quad's color encodes its grid cell: red rises with the column,
// green with the row, blue balances the sum so the corners stay distinct.
func GridInstances(cols, rows int, size, spacing float32) []Instance {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	out := make([]Instance, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := float32(col) / float32(cols)
			g := float32(row) / float32(rows)
			b := 1 - (r+g)/2

			out = append(out, Instance{
				Pos: f32.Vec2{
					(float32(col) - float32(cols)/2) * spacing,
					(float32(row) - float32(rows)/2) * spacing,
				},
				Size:  f32.Vec2{size, size},
				Color: f32.Vec4{r, g, b, 1},
			})
		}
	}
	return out
}

// DemoInstances returns the canonical demo content: a 16x8 color grid of
// 128 quads. This is the default instance data when no WithInstances
// option is supplied.
func DemoInstances() []Instance {
	return GridInstances(16, 8, 0.1, 0.12)
}

// vertexBytes exposes the vertex slice as raw bytes for buffer upload.
func vertexBytes(v []Vertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), uintptr(len(v))*unsafe.Sizeof(Vertex{})) //nolint:gosec // safe struct serialization
}

// instanceBytes exposes the instance slice as raw bytes for buffer upload.
func instanceBytes(in []Instance) []byte {
	if len(in) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&in[0])), uintptr(len(in))*unsafe.Sizeof(Instance{})) //nolint:gosec // safe struct serialization
}
