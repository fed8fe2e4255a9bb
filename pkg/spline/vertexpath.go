package spline

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Sample is one resampled point on a path with its local frame.
// Normal is Up × Tangent, which points to the left of travel (+X when
// heading along +Z), so Tangent × Normal is the surface up.
type Sample struct {
	Position math.Vec3
	Tangent  math.Vec3
	Normal   math.Vec3
	Up       math.Vec3
	// Time is the normalized distance along the path in [0, 1].
	Time float32
}

// Path is read access to an ordered sequence of samples.
type Path interface {
	Len() int
	At(i int) Sample
	IsClosedLoop() bool
	Space() Space
}

// VertexOptions controls resampling of a Bezier path.
type VertexOptions struct {
	// MaxAngleError is the bend in degrees after which a vertex is placed.
	MaxAngleError float32
	// MinVertexDistance is the distance after which a vertex is placed
	// regardless of bend.
	MinVertexDistance float32
	// Accuracy is the number of evaluation steps per unit of segment length.
	Accuracy int
}

// DefaultVertexOptions returns the resampling settings of the reference road.
func DefaultVertexOptions() VertexOptions {
	return VertexOptions{
		MaxAngleError:     15,
		MinVertexDistance: 1,
		Accuracy:          10,
	}
}

// VertexPath is an immutable list of samples along a path.
type VertexPath struct {
	samples []Sample
	closed  bool
	space   Space
	length  float32
}

// NewVertexPathFromSamples wraps samples produced elsewhere.
func NewVertexPathFromSamples(samples []Sample, closed bool, space Space) (*VertexPath, error) {
	if len(samples) < 2 {
		return nil, ErrTooFewSamples
	}
	s := make([]Sample, len(samples))
	copy(s, samples)
	var length float32
	for i := 1; i < len(s); i++ {
		length += s[i].Position.Distance(s[i-1].Position)
	}
	return &VertexPath{samples: s, closed: closed, space: space, length: length}, nil
}

// NewVertexPath resamples b. A vertex is emitted whenever the curve has bent
// more than MaxAngleError since the previous vertex or MinVertexDistance has
// been travelled.
func NewVertexPath(b *BezierPath, opts VertexOptions) (*VertexPath, error) {
	if opts.MinVertexDistance <= 0 {
		return nil, ErrInvalidSpacing
	}
	if opts.Accuracy <= 0 {
		opts.Accuracy = DefaultVertexOptions().Accuracy
	}

	type dense struct {
		pos, tangent math.Vec3
	}
	var picked []dense

	first := b.Segment(0)
	prevPos := first[0]
	lastAdded := first[0]
	picked = append(picked, dense{first[0], EvaluateCubicDerivative(first, 0).Normalize()})
	var dstSinceLast float32
	maxCos := float32(gomath.Cos(float64(opts.MaxAngleError) * gomath.Pi / 180))
	lastDir := picked[0].tangent

	for s := 0; s < b.NumSegments(); s++ {
		seg := b.Segment(s)
		divisions := ceilDiv(controlNetLength(seg), opts.Accuracy)
		if divisions < 1 {
			divisions = 1
		}
		step := 1 / float32(divisions)
		for d := 1; d <= divisions; d++ {
			t := float32(d) * step
			pos := EvaluateCubic(seg, t)
			dstSinceLast += pos.Distance(prevPos)
			prevPos = pos

			dir := pos.Sub(lastAdded).Normalize()
			bent := dir.Dot(lastDir) < maxCos
			endOfPath := s == b.NumSegments()-1 && d == divisions

			if bent || dstSinceLast >= opts.MinVertexDistance || endOfPath {
				tangent := EvaluateCubicDerivative(seg, t).Normalize()
				if endOfPath && b.IsClosed() {
					// The closing point coincides with the first sample.
					break
				}
				picked = append(picked, dense{pos, tangent})
				dstSinceLast = 0
				lastDir = dir
				lastAdded = pos
			}
		}
	}

	if len(picked) < 2 {
		return nil, ErrTooFewSamples
	}

	samples := make([]Sample, len(picked))
	cumulative := make([]float32, len(picked))
	for i, p := range picked {
		samples[i].Position = p.pos
		samples[i].Tangent = p.tangent
		samples[i].Up = math.Up
		if i > 0 {
			cumulative[i] = cumulative[i-1] + p.pos.Distance(picked[i-1].pos)
		}
	}
	length := cumulative[len(cumulative)-1]
	if b.IsClosed() {
		length += picked[len(picked)-1].pos.Distance(picked[0].pos)
	}
	for i := range samples {
		if length > 0 {
			samples[i].Time = cumulative[i] / length
		}
	}

	if b.Space() == SpaceXZ {
		planarNormals(samples)
	} else {
		transportNormals(samples, b.IsClosed())
	}

	return &VertexPath{samples: samples, closed: b.IsClosed(), space: b.Space(), length: length}, nil
}

// planarNormals sets every normal to Up × Tangent, the left of travel on the ground.
func planarNormals(samples []Sample) {
	for i := range samples {
		samples[i].Normal = math.Up.Cross(samples[i].Tangent).Normalize()
	}
}

// transportNormals carries the first frame along the path with minimal
// twist. On closed loops the residual twist at the seam is spread evenly so
// the last frame meets the first.
func transportNormals(samples []Sample, closed bool) {
	n := len(samples)
	first := math.Up.Cross(samples[0].Tangent)
	if first.Length() < 1e-6 {
		first = math.Vec3{X: 1}.Cross(samples[0].Tangent)
	}
	samples[0].Normal = first.Normalize()

	for i := 1; i < n; i++ {
		q := math.QuatFromTo(samples[i-1].Tangent, samples[i].Tangent)
		samples[i].Normal = orthonormal(q.Rotate(samples[i-1].Normal), samples[i].Tangent)
	}

	if !closed {
		return
	}
	seam := math.QuatFromTo(samples[n-1].Tangent, samples[0].Tangent).Rotate(samples[n-1].Normal)
	twist := signedAngle(seam, samples[0].Normal, samples[0].Tangent)
	for i := 1; i < n; i++ {
		q := math.QuatFromAxisAngle(samples[i].Tangent, twist*float32(i)/float32(n))
		samples[i].Normal = orthonormal(q.Rotate(samples[i].Normal), samples[i].Tangent)
	}
}

func orthonormal(v, axis math.Vec3) math.Vec3 {
	return v.Sub(axis.Scale(v.Dot(axis))).Normalize()
}

// signedAngle returns the angle in radians rotating a onto b around axis.
func signedAngle(a, b, axis math.Vec3) float32 {
	return float32(gomath.Atan2(float64(axis.Dot(a.Cross(b))), float64(a.Dot(b))))
}

// Len returns the number of samples.
func (p *VertexPath) Len() int { return len(p.samples) }

// At returns sample i.
func (p *VertexPath) At(i int) Sample { return p.samples[i] }

// IsClosedLoop reports whether the last sample connects to the first.
func (p *VertexPath) IsClosedLoop() bool { return p.closed }

// Space returns the space the path was built in.
func (p *VertexPath) Space() Space { return p.space }

// Length returns the path length, including the closing edge of a loop.
func (p *VertexPath) Length() float32 { return p.length }
