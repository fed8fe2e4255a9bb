// Package road builds the triangulated ribbon solid of a road from an
// oriented path: a textured top surface, a mirrored underside and two side
// walls, each in its own index group.
package road

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Build errors.
var (
	ErrTooFewSamples    = errors.New("road path needs at least 2 samples")
	ErrInvalidWidth     = errors.New("road width must be finite and non-zero")
	ErrInvalidThickness = errors.New("road thickness must be finite")
	ErrDegenerateFrame  = errors.New("degenerate path frame")
)

// MaxThickness is the upper bound thickness is clamped to.
const MaxThickness = 0.5

// Options controls the shape of the ribbon.
type Options struct {
	// Width is the distance from the centerline to each edge. The sign is ignored.
	Width float32
	// Thickness is the depth of the underside below the top surface,
	// clamped to [0, MaxThickness].
	Thickness float32
	// FlattenSurface keeps the top level instead of following the path's
	// banking. It only has an effect on XYZ paths.
	FlattenSurface bool
}

// DefaultOptions returns the reference road settings.
func DefaultOptions() Options {
	return Options{
		Width:     0.4,
		Thickness: 0.15,
	}
}

// Surface identifies one of the three independently textured index groups.
type Surface int

// Surfaces in material order.
const (
	SurfaceTop Surface = iota
	SurfaceBottom
	SurfaceSide
	NumSurfaces
)

// String returns the surface name.
func (s Surface) String() string {
	switch s {
	case SurfaceTop:
		return "top"
	case SurfaceBottom:
		return "bottom"
	case SurfaceSide:
		return "side"
	default:
		return "unknown"
	}
}

// Mesh is the generated road geometry. Vertices, Normals and UVs are
// parallel arrays holding VerticesPerSample entries per path sample.
type Mesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2

	Top    []uint32
	Bottom []uint32
	Side   []uint32

	Bounds      Bounds
	SampleCount int
	Closed      bool
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Vertex is an interleaved vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// SurfaceGroup is a range of a combined index buffer drawn with one material.
type SurfaceGroup struct {
	Surface    Surface
	StartIndex int32
	IndexCount int32
}
