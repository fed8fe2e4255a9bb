// Package spline turns a list of anchor points into a smooth Bezier path and
// resamples it into oriented path samples for mesh generation.
package spline

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Path errors.
var (
	ErrTooFewAnchors  = errors.New("bezier path needs at least 2 anchors")
	ErrTooFewSamples  = errors.New("vertex path needs at least 2 samples")
	ErrInvalidSpacing = errors.New("vertex spacing must be positive")
)

// Space selects the dimensionality of a path.
type Space int

const (
	// SpaceXYZ paths may climb and bank freely.
	SpaceXYZ Space = iota
	// SpaceXZ paths lie on the ground plane (Y = 0).
	SpaceXZ
)

// String returns the config name of the space.
func (s Space) String() string {
	switch s {
	case SpaceXYZ:
		return "xyz"
	case SpaceXZ:
		return "xz"
	default:
		return "unknown"
	}
}

// ParseSpace converts a config name to a Space. Unknown names map to XYZ.
func ParseSpace(name string) Space {
	if name == "xz" {
		return SpaceXZ
	}
	return SpaceXYZ
}

// autoControlLength scales the distance from an anchor to its handles.
const autoControlLength = 0.3

// minBisectorLength is the shortest neighbour bisector that still gives a
// usable handle direction.
const minBisectorLength = 1e-4

// BezierPath is a chain of cubic Bezier segments through a list of anchors.
// Points are stored as anchor, control, control, anchor, ... and a closed
// path carries two extra controls joining the last anchor to the first.
type BezierPath struct {
	points []math.Vec3
	closed bool
	space  Space
}

// NewBezierPath builds a path through anchors with automatically placed
// control handles.
func NewBezierPath(anchors []math.Vec3, closed bool, space Space) (*BezierPath, error) {
	if len(anchors) < 2 {
		return nil, ErrTooFewAnchors
	}

	b := &BezierPath{closed: closed, space: space}
	for i, a := range anchors {
		if space == SpaceXZ {
			a.Y = 0
		}
		if i > 0 {
			// placeholders, filled by autoSetControls
			b.points = append(b.points, math.Vec3{}, math.Vec3{})
		}
		b.points = append(b.points, a)
	}
	if closed {
		b.points = append(b.points, math.Vec3{}, math.Vec3{})
	}
	b.autoSetControls()
	return b, nil
}

// IsClosed reports whether the last anchor connects back to the first.
func (b *BezierPath) IsClosed() bool { return b.closed }

// Space returns the path space.
func (b *BezierPath) Space() Space { return b.space }

// NumAnchors returns the number of anchor points.
func (b *BezierPath) NumAnchors() int {
	if b.closed {
		return len(b.points) / 3
	}
	return (len(b.points) + 2) / 3
}

// NumSegments returns the number of cubic segments.
func (b *BezierPath) NumSegments() int {
	return len(b.points) / 3
}

// Segment returns the four control points of segment i.
func (b *BezierPath) Segment(i int) [4]math.Vec3 {
	return [4]math.Vec3{
		b.point(i * 3),
		b.point(i*3 + 1),
		b.point(i*3 + 2),
		b.point(i*3 + 3),
	}
}

func (b *BezierPath) point(i int) math.Vec3 {
	n := len(b.points)
	return b.points[((i%n)+n)%n]
}

// autoSetControls places every anchor's handles along the bisector of its
// neighbours, a third of the way to each neighbour.
func (b *BezierPath) autoSetControls() {
	n := len(b.points)
	for a := 0; a < n; a += 3 {
		anchor := b.points[a]
		var dir, ray math.Vec3
		var dists [2]float32

		if a-3 >= 0 || b.closed {
			offset := b.point(a - 3).Sub(anchor)
			dir = dir.Add(offset.Normalize())
			dists[0] = offset.Length()
			ray = offset.Normalize()
		}
		if a+3 < n || b.closed {
			offset := b.point(a + 3).Sub(anchor)
			dir = dir.Sub(offset.Normalize())
			dists[1] = -offset.Length()
			if ray == (math.Vec3{}) {
				ray = offset.Normalize()
			}
		}
		if dir.Length() < minBisectorLength {
			// Both neighbours lie on one ray: turn the path around it.
			dir = hairpin(ray)
		}
		dir = dir.Normalize()

		for i, ctrl := range [2]int{a - 1, a + 1} {
			if (ctrl >= 0 && ctrl < n) || b.closed {
				idx := ((ctrl % n) + n) % n
				b.points[idx] = anchor.Add(dir.Scale(dists[i] * autoControlLength))
			}
		}
	}

	if !b.closed {
		// Open ends point their single handle halfway to the next handle.
		b.points[1] = b.points[0].Lerp(b.points[2], 0.5)
		b.points[n-2] = b.points[n-1].Lerp(b.points[n-3], 0.5)
	}
}

// hairpin returns a handle direction across ray, on the ground plane when
// ray is not vertical.
func hairpin(ray math.Vec3) math.Vec3 {
	side := ray.Cross(math.Up)
	if side.Length() < minBisectorLength {
		side = ray.Cross(math.Vec3{X: 1})
	}
	return side.Normalize()
}

// controlNetLength approximates segment length from its control polygon.
func controlNetLength(seg [4]math.Vec3) float32 {
	net := seg[0].Distance(seg[1]) + seg[1].Distance(seg[2]) + seg[2].Distance(seg[3])
	return seg[0].Distance(seg[3]) + net/2
}

// EvaluateCubic returns the point at t on a cubic Bezier segment.
func EvaluateCubic(seg [4]math.Vec3, t float32) math.Vec3 {
	u := 1 - t
	return seg[0].Scale(u * u * u).
		Add(seg[1].Scale(3 * u * u * t)).
		Add(seg[2].Scale(3 * u * t * t)).
		Add(seg[3].Scale(t * t * t))
}

// EvaluateCubicDerivative returns the first derivative at t.
func EvaluateCubicDerivative(seg [4]math.Vec3, t float32) math.Vec3 {
	u := 1 - t
	return seg[1].Sub(seg[0]).Scale(3 * u * u).
		Add(seg[2].Sub(seg[1]).Scale(6 * u * t)).
		Add(seg[3].Sub(seg[2]).Scale(3 * t * t))
}

func ceilDiv(length float32, accuracy int) int {
	return int(gomath.Ceil(float64(length) * float64(accuracy)))
}
