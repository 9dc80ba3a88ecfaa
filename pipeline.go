// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

// GPU object labels for driver debug output.
const (
	shaderLabel         = "Quad Shader"
	pipelineLayoutLabel = "Render Pipeline Layout"
	pipelineLabel       = "Render Pipeline"
	vertexBufferLabel   = "Quad Vertex Buffer"
	instanceBufferLabel = "Quad Instance Buffer"
)

// RenderPass is the subset of the driver render pass the pipeline draws
// through. *wgpu.RenderPassEncoder implements it.
type RenderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}

// bufferWriter uploads bytes into a GPU buffer. *wgpu.Queue implements it.
type bufferWriter interface {
	WriteBuffer(buffer *wgpu.Buffer, bufferOffset uint64, data []byte) error
}

// Pipeline owns the render pipeline object and the two vertex-stage
// buffers: the static unit-quad vertex buffer (slot 0) and the
// per-instance buffer (slot 1). The instance buffer capacity is fixed at
// construction; UpdateInstances re-uploads within it.
//
// The pipeline is compiled against one surface format and is immutable
// once built. A surface format change requires building a new pipeline.
type Pipeline struct {
	mu            sync.Mutex
	pipeline      *wgpu.RenderPipeline
	vertexBuf     *wgpu.Buffer
	instanceBuf   *wgpu.Buffer
	writer        bufferWriter
	instanceCount uint32
	capacity      int
	closed        bool
}

// NewPipeline builds the instanced quad pipeline for the given surface
// format and uploads the initial instance data. The WGSL source is
// validated through naga before it reaches the driver, so a malformed
// shader surfaces as ErrShaderCompile instead of a driver fault.
//
// An empty instance slice is valid: the pipeline then clears and draws
// nothing until it is rebuilt with capacity.
func NewPipeline(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, instances []Instance) (*Pipeline, error) {
	if _, err := naga.Compile(quadShaderSource); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: shaderLabel,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: quadShaderSource,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	defer shader.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: pipelineLayoutLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("quad: create pipeline layout: %w", err)
	}
	defer layout.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  pipelineLabel,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexBufferLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("quad: create render pipeline: %w", err)
	}

	vertices := UnitQuadVertices()
	vertexBuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            vertexBufferLabel,
		Size:             uint64(len(vertices)) * VertexStride,
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		pipeline.Release()
		return nil, fmt.Errorf("quad: create vertex buffer: %w", err)
	}
	if err := queue.WriteBuffer(vertexBuf, 0, vertexBytes(vertices)); err != nil {
		vertexBuf.Release()
		pipeline.Release()
		return nil, fmt.Errorf("quad: upload vertex buffer: %w", err)
	}

	p := &Pipeline{
		pipeline:      pipeline,
		vertexBuf:     vertexBuf,
		writer:        queue,
		instanceCount: uint32(len(instances)),
		capacity:      len(instances),
	}

	if len(instances) > 0 {
		instanceBuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            instanceBufferLabel,
			Size:             uint64(len(instances)) * InstanceStride,
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			vertexBuf.Release()
			pipeline.Release()
			return nil, fmt.Errorf("quad: create instance buffer: %w", err)
		}
		if err := queue.WriteBuffer(instanceBuf, 0, instanceBytes(instances)); err != nil {
			instanceBuf.Release()
			vertexBuf.Release()
			pipeline.Release()
			return nil, fmt.Errorf("quad: upload instance buffer: %w", err)
		}
		p.instanceBuf = instanceBuf
	}

	Logger().Debug("pipeline built",
		"format", format,
		"instances", len(instances),
	)
	return p, nil
}

// vertexBufferLayouts describes the two vertex-stage buffers: slot 0
// steps per vertex over the unit quad, slot 1 steps per instance.
// Locations and offsets must match shaders/quad.wgsl.
func vertexBufferLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x2},
			},
		},
		{
			ArrayStride: InstanceStride,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{ShaderLocation: 1, Offset: 0, Format: wgpu.VertexFormatFloat32x2},
				{ShaderLocation: 2, Offset: 8, Format: wgpu.VertexFormatFloat32x2},
				{ShaderLocation: 3, Offset: 16, Format: wgpu.VertexFormatFloat32x4},
			},
		},
	}
}

// InstanceCount returns the number of instances the next draw submits.
func (p *Pipeline) InstanceCount() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.instanceCount
}

// Draw records the instanced quad draw into the render pass: bind the
// pipeline, bind slot 0 (unit quad) and slot 1 (instances), then issue a
// single draw of 6 vertices times the instance count. With zero instances
// nothing is bound to slot 1 and the draw is an empty no-op.
//
// Instances composite in buffer order; later instances blend over earlier
// ones.
func (p *Pipeline) Draw(pass RenderPass) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	pass.SetPipeline(p.pipeline)
	pass.SetVertexBuffer(0, p.vertexBuf, 0, wgpu.WholeSize)
	if p.instanceCount > 0 {
		pass.SetVertexBuffer(1, p.instanceBuf, 0, wgpu.WholeSize)
	}
	pass.Draw(QuadVertexCount, p.instanceCount, 0, 0)
}

// UpdateInstances re-uploads per-instance data into the existing buffer
// and updates the drawn count. The update may shrink the count, down to
// zero, but cannot grow past the capacity fixed at construction:
// exceeding it returns ErrInstanceCapacity and changes nothing.
func (p *Pipeline) UpdateInstances(instances []Instance) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrRendererClosed
	}
	if len(instances) > p.capacity {
		return fmt.Errorf("%w: %d instances, capacity %d", ErrInstanceCapacity, len(instances), p.capacity)
	}

	if len(instances) > 0 {
		if err := p.writer.WriteBuffer(p.instanceBuf, 0, instanceBytes(instances)); err != nil {
			return fmt.Errorf("quad: upload instance buffer: %w", err)
		}
	}
	p.instanceCount = uint32(len(instances))
	return nil
}

// Close releases the pipeline object and both buffers. Safe to call
// multiple times.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	if p.instanceBuf != nil {
		p.instanceBuf.Release()
		p.instanceBuf = nil
	}
	if p.vertexBuf != nil {
		p.vertexBuf.Release()
		p.vertexBuf = nil
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	p.closed = true
}
