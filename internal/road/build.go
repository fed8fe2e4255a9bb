package road

import (
	gomath "math"

	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/pkg/math"
	"github.com/Faultbox/midgard-road/pkg/spline"
)

// minFrameLength is the shortest tangent or normal accepted as a direction.
const minFrameLength = 1e-6

// Build sweeps the road cross-section along p. Triangles join every sample
// to the next; the last sample joins the first only on closed loops. On
// error no mesh is returned.
func Build(p spline.Path, opts Options) (*Mesh, error) {
	n := p.Len()
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	width, thickness, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	closed := p.IsClosedLoop()
	total := n * VerticesPerSample
	numQuads := n - 1
	if closed {
		numQuads++
	}

	m := &Mesh{
		Vertices:    make([]math.Vec3, total),
		Normals:     make([]math.Vec3, total),
		UVs:         make([]math.Vec2, total),
		Top:         make([]uint32, 0, numQuads*len(topQuad)),
		Bottom:      make([]uint32, 0, numQuads*len(bottomQuad)),
		Side:        make([]uint32, 0, numQuads*len(sideQuads)),
		SampleCount: n,
		Closed:      closed,
	}

	flatten := opts.FlattenSurface && p.Space() == spline.SpaceXYZ

	for i := 0; i < n; i++ {
		s := p.At(i)
		up, right, err := sampleFrame(s, flatten)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}

		left := s.Position.Sub(right.Scale(width))
		rightEdge := s.Position.Add(right.Scale(width))
		drop := up.Scale(thickness)

		base := i * VerticesPerSample
		v := m.Vertices[base : base+VerticesPerSample]
		v[SlotTopLeft] = left
		v[SlotTopRight] = rightEdge
		v[SlotBottomLeft] = left.Sub(drop)
		v[SlotBottomRight] = rightEdge.Sub(drop)
		v[SlotSideTopLeft] = v[SlotTopLeft]
		v[SlotSideTopRight] = v[SlotTopRight]
		v[SlotSideBottomLeft] = v[SlotBottomLeft]
		v[SlotSideBottomRight] = v[SlotBottomRight]

		for _, pos := range v {
			if !pos.IsFinite() {
				return nil, errors.Wrapf(ErrDegenerateFrame, "sample %d: non-finite vertex", i)
			}
		}

		m.UVs[base+int(SlotTopLeft)] = math.Vec2{X: 0, Y: s.Time}
		m.UVs[base+int(SlotTopRight)] = math.Vec2{X: 1, Y: s.Time}

		nrm := m.Normals[base : base+VerticesPerSample]
		nrm[SlotTopLeft] = up
		nrm[SlotTopRight] = up
		nrm[SlotBottomLeft] = up.Neg()
		nrm[SlotBottomRight] = up.Neg()
		nrm[SlotSideTopLeft] = right.Neg()
		nrm[SlotSideTopRight] = right
		nrm[SlotSideBottomLeft] = right.Neg()
		nrm[SlotSideBottomRight] = right

		if i < n-1 || closed {
			m.Top = appendQuad(m.Top, base, total, topQuad[:])
			m.Bottom = appendQuad(m.Bottom, base, total, bottomQuad[:])
			m.Side = appendQuad(m.Side, base, total, sideQuads[:])
		}
	}

	m.Bounds = computeBounds(m.Vertices)
	return m, nil
}

// appendQuad appends the corners relative to base, wrapped so the last
// block of a closed loop connects to the first.
func appendQuad(dst []uint32, base, total int, corners []corner) []uint32 {
	for _, c := range corners {
		dst = append(dst, uint32((base+c.offset())%total))
	}
	return dst
}

// sampleFrame returns the unit up and right vectors at s. A flattened
// surface uses the sample's up axis; otherwise the frame follows the path.
func sampleFrame(s spline.Sample, flatten bool) (up, right math.Vec3, err error) {
	if !s.Position.IsFinite() {
		return up, right, errors.Wrap(ErrDegenerateFrame, "non-finite position")
	}
	if s.Tangent.Length() < minFrameLength || !s.Tangent.IsFinite() {
		return up, right, errors.Wrap(ErrDegenerateFrame, "zero-length tangent")
	}

	if flatten {
		up = s.Up
		right = up.Cross(s.Tangent)
	} else {
		up = s.Tangent.Cross(s.Normal)
		right = s.Normal
	}

	if !up.IsFinite() || up.Length() < minFrameLength {
		return up, right, errors.Wrap(ErrDegenerateFrame, "zero-length up vector")
	}
	if !right.IsFinite() || right.Length() < minFrameLength {
		return up, right, errors.Wrap(ErrDegenerateFrame, "zero-length normal")
	}
	return up.Normalize(), right.Normalize(), nil
}

// resolve validates the options and returns the usable width and thickness.
func (o Options) resolve() (width, thickness float32, err error) {
	width = float32(gomath.Abs(float64(o.Width)))
	if width == 0 || !isFinite(width) {
		return 0, 0, errors.Wrapf(ErrInvalidWidth, "got %v", o.Width)
	}
	if !isFinite(o.Thickness) {
		return 0, 0, errors.Wrapf(ErrInvalidThickness, "got %v", o.Thickness)
	}
	thickness = o.Thickness
	if thickness < 0 {
		thickness = 0
	}
	if thickness > MaxThickness {
		thickness = MaxThickness
	}
	return width, thickness, nil
}

func isFinite(f float32) bool {
	return !gomath.IsNaN(float64(f)) && !gomath.IsInf(float64(f), 0)
}

func computeBounds(vertices []math.Vec3) Bounds {
	b := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
	for _, p := range vertices {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}
