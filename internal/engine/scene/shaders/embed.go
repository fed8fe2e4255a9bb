// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// RoadVertexShader is the vertex shader for road surfaces.
//
//go:embed road.vert
var RoadVertexShader string

// RoadFragmentShader is the fragment shader for road surfaces.
//
//go:embed road.frag
var RoadFragmentShader string

// LineVertexShader is the vertex shader for debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug lines.
//
//go:embed line.frag
var LineFragmentShader string
