// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

// TestQuadShaderSource verifies the embedded WGSL carries both entry points
// and the instance attribute locations the vertex layout binds.
func TestQuadShaderSource(t *testing.T) {
	if quadShaderSource == "" {
		t.Fatal("quad shader source is empty")
	}

	for _, marker := range []string{"vs_main", "fs_main", "@location(1)", "@location(2)", "@location(3)"} {
		if !strings.Contains(quadShaderSource, marker) {
			t.Errorf("shader source is missing %q", marker)
		}
	}
}

// TestQuadShaderCompilation tests that the WGSL shader compiles to SPIR-V.
// NewPipeline runs this same compilation as validation, so a failure here
// means every pipeline build fails.
func TestQuadShaderCompilation(t *testing.T) {
	spirvBytes, err := naga.Compile(quadShaderSource)
	if err != nil {
		t.Fatalf("failed to compile quad shader: %v", err)
	}

	if len(spirvBytes) < 4 {
		t.Fatal("SPIR-V too short")
	}

	// Verify SPIR-V magic number (0x07230203)
	magic := uint32(spirvBytes[0]) |
		uint32(spirvBytes[1])<<8 |
		uint32(spirvBytes[2])<<16 |
		uint32(spirvBytes[3])<<24
	if magic != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", magic)
	}

	t.Logf("Quad shader compiled to %d bytes of SPIR-V", len(spirvBytes))
}
