// Package boundary turns a road edge into a closed ground-plane polygon and
// classifies its corners by interior angle, in preparation for simplifying
// the road footprint.
package boundary

import (
	gomath "math"

	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Analysis errors.
var (
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
	ErrDegenerateEdge = errors.New("polygon has a zero-length edge")
	ErrZeroArea       = errors.New("polygon has zero area")
	ErrNotSimple      = errors.New("polygon could not be triangulated")
)

// DefaultAngleThreshold is the angle in degrees above which a corner is
// flagged as nearly straight.
const DefaultAngleThreshold = 120

// Vertex is a polygon corner with its unsigned angle in degrees.
type Vertex struct {
	Point math.Vec2
	Angle float32
}

// Polygon is a closed cycle of vertices. The last vertex connects back to
// the first; the closing point is not repeated.
type Polygon []Vertex

// DefaultSentinels returns the two fixed corners that close a left road
// edge into a polygon.
func DefaultSentinels() []math.Vec2 {
	return []math.Vec2{{X: -100, Y: 100}, {X: -100, Y: 0}}
}

// Build assembles the polygon: the sentinel corners first, followed by the
// edge points in path order. Angles are left at zero.
func Build(edge, sentinels []math.Vec2) Polygon {
	p := make(Polygon, 0, len(sentinels)+len(edge))
	for _, s := range sentinels {
		p = append(p, Vertex{Point: s})
	}
	for _, e := range edge {
		p = append(p, Vertex{Point: e})
	}
	return p
}

// Points returns the vertex positions.
func (p Polygon) Points() []math.Vec2 {
	points := make([]math.Vec2, len(p))
	for i, v := range p {
		points[i] = v.Point
	}
	return points
}

// Wrap maps any index, negative or past the end, onto the cycle.
func (p Polygon) Wrap(i int) int {
	n := len(p)
	return ((i % n) + n) % n
}

// Neighbours returns the previous, current and following point of vertex k.
func (p Polygon) Neighbours(k int) (prev, curr, next math.Vec2) {
	return p[p.Wrap(k-1)].Point, p[p.Wrap(k)].Point, p[p.Wrap(k+1)].Point
}

// AnnotateAngles returns a copy of p with the angle of every vertex set from
// its neighbours in the cycle.
func AnnotateAngles(p Polygon) (Polygon, error) {
	if len(p) < 3 {
		return nil, errors.Wrapf(ErrTooFewVertices, "got %d", len(p))
	}
	out := make(Polygon, len(p))
	copy(out, p)
	for k := range out {
		angle, err := vertexAngle(out, k)
		if err != nil {
			return nil, err
		}
		out[k].Angle = angle
	}
	return out, nil
}

// Angle returns the unsigned angle in degrees between the edges meeting at
// curr, in [0, 180]. It reports false when either edge has zero length.
func Angle(prev, curr, next math.Vec2) (float32, bool) {
	// In float32 the dot product drifts by hundredths of a degree near 180.
	ax, ay := float64(curr.X)-float64(prev.X), float64(curr.Y)-float64(prev.Y)
	bx, by := float64(curr.X)-float64(next.X), float64(curr.Y)-float64(next.Y)
	la, lb := gomath.Hypot(ax, ay), gomath.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return 0, false
	}
	cos := (ax*bx + ay*by) / (la * lb)
	cos = gomath.Max(-1, gomath.Min(1, cos))
	return float32(gomath.Acos(cos) * 180 / gomath.Pi), true
}

func vertexAngle(p Polygon, k int) (float32, error) {
	angle, ok := Angle(p.Neighbours(k))
	if !ok {
		return 0, errors.Wrapf(ErrDegenerateEdge, "vertex %d", k)
	}
	return angle, nil
}

// Flagged returns the indices of vertices whose angle exceeds threshold,
// in polygon order.
func Flagged(p Polygon, threshold float32) []int {
	var flagged []int
	for i, v := range p {
		if v.Angle > threshold {
			flagged = append(flagged, i)
		}
	}
	return flagged
}

// Orientation returns the signed area of p: positive when the vertices run
// counterclockwise in the (X, Y) plane of the points, negative when clockwise.
func Orientation(p Polygon) float32 {
	var area float32
	for i := range p {
		a := p[i].Point
		b := p[p.Wrap(i+1)].Point
		area += a.Cross(b)
	}
	return area / 2
}

// turn is the cross product of the two edges meeting at vertex k.
func turn(p Polygon, k int) float32 {
	prev, curr, next := p.Neighbours(k)
	return curr.Sub(prev).Cross(next.Sub(curr))
}

// IsConvex reports whether vertex k turns the same way as the polygon as a
// whole. Collinear vertices are not convex.
func IsConvex(p Polygon, k int) bool {
	if len(p) < 3 {
		return false
	}
	return turn(p, k)*Orientation(p) > 0
}

// InteriorAngle returns the angle at vertex k measured inside the polygon,
// in [0, 360). Reflex corners report more than 180 degrees.
func InteriorAngle(p Polygon, k int) (float32, error) {
	if len(p) < 3 {
		return 0, errors.Wrapf(ErrTooFewVertices, "got %d", len(p))
	}
	angle, err := vertexAngle(p, k)
	if err != nil {
		return 0, err
	}
	if turn(p, k)*Orientation(p) < 0 {
		return 360 - angle, nil
	}
	return angle, nil
}
