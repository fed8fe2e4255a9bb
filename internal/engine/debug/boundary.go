package debug

import (
	"github.com/Faultbox/midgard-road/internal/boundary"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// MarkerHeightPerDegree lifts a flagged corner's marker by its angle.
const MarkerHeightPerDegree = 0.01

// Boundary draws every polygon edge on the ground plane and places a marker
// above each vertex whose angle exceeds threshold.
func Boundary(o Observer, p boundary.Polygon, threshold float32) {
	for i, v := range p {
		next := p[p.Wrap(i+1)].Point
		o.Line(ground(v.Point), ground(next), Green, DefaultLineDuration)
	}
	for _, i := range boundary.Flagged(p, threshold) {
		v := p[i]
		o.Marker(math.Vec3{X: v.Point.X, Y: v.Angle * MarkerHeightPerDegree, Z: v.Point.Y}, 1)
	}
}

// Ears outlines clipped triangles on the ground plane.
func Ears(o Observer, ears [][3]math.Vec2) {
	for _, tri := range ears {
		for i := range tri {
			o.Line(ground(tri[i]), ground(tri[(i+1)%3]), Red, DefaultLineDuration)
		}
	}
}

func ground(p math.Vec2) math.Vec3 {
	return math.Vec3{X: p.X, Z: p.Y}
}
