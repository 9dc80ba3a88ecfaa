// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quad

import (
	_ "embed"
)

// Embedded WGSL shader sources.
// These are compiled at build time using go:embed directives.

//go:embed shaders/quad.wgsl
var quadShaderSource string
