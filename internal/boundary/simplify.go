package boundary

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// SimplifyOptions bounds the ear-clipping walk.
type SimplifyOptions struct {
	// MaxSteps is the number of vertices inspected before stopping.
	// Zero or less means no limit.
	MaxSteps int
	// MinVertices stops the walk once this many vertices remain. Values
	// below 3 are raised to 3.
	MinVertices int
	// ConvexNeighbours also requires both neighbours of a clipped vertex
	// to be convex.
	ConvexNeighbours bool
}

// DefaultSimplifyOptions returns the step budget used by the road builder.
func DefaultSimplifyOptions() SimplifyOptions {
	return SimplifyOptions{
		MaxSteps:         15,
		MinVertices:      3,
		ConvexNeighbours: true,
	}
}

// Result is the outcome of Simplify.
type Result struct {
	// Polygon is what remains after clipping, with angles up to date.
	Polygon Polygon
	// Ears are the clipped triangles in removal order, wound like the input.
	Ears [][3]math.Vec2
	// Steps is the number of vertices inspected.
	Steps int
}

// Simplify walks the polygon with a cursor and clips ears: a convex vertex
// whose triangle with its neighbours holds no other vertex is removed, the
// cursor steps back to the previous vertex and both neighbours get their
// angles recomputed. Otherwise the cursor advances. The walk ends when the
// step budget is spent, when MinVertices remain, or after a full lap
// without a removal.
func Simplify(p Polygon, opts SimplifyOptions) (Result, error) {
	poly, err := AnnotateAngles(p)
	if err != nil {
		return Result{}, err
	}
	orientation := Orientation(poly)
	if orientation == 0 {
		return Result{}, ErrZeroArea
	}
	minVertices := max(opts.MinVertices, 3)

	var res Result
	cursor, idle := 0, 0
	for len(poly) > minVertices && idle < len(poly) {
		if opts.MaxSteps > 0 && res.Steps >= opts.MaxSteps {
			break
		}
		res.Steps++

		if !isEar(poly, cursor, orientation, opts.ConvexNeighbours) {
			cursor = poly.Wrap(cursor + 1)
			idle++
			continue
		}

		prev, curr, next := poly.Neighbours(cursor)
		res.Ears = append(res.Ears, [3]math.Vec2{prev, curr, next})
		poly = slices.Delete(poly, cursor, cursor+1)
		cursor = poly.Wrap(cursor - 1)
		idle = 0

		for _, k := range []int{cursor, poly.Wrap(cursor + 1)} {
			if poly[k].Angle, err = vertexAngle(poly, k); err != nil {
				return Result{}, err
			}
		}
	}

	res.Polygon = poly
	return res, nil
}

// Triangulate clips ears until a single triangle remains and returns all
// triangles. p must be simple.
func Triangulate(p Polygon) ([][3]math.Vec2, error) {
	res, err := Simplify(p, SimplifyOptions{MinVertices: 3})
	if err != nil {
		return nil, err
	}
	if len(res.Polygon) != 3 {
		return nil, errors.Wrapf(ErrNotSimple, "%d vertices left without an ear", len(res.Polygon))
	}
	last := [3]math.Vec2{res.Polygon[0].Point, res.Polygon[1].Point, res.Polygon[2].Point}
	return append(res.Ears, last), nil
}

// isEar reports whether vertex k can be clipped.
func isEar(p Polygon, k int, orientation float32, convexNeighbours bool) bool {
	convex := func(i int) bool { return turn(p, i)*orientation > 0 }
	if !convex(k) {
		return false
	}
	prevIdx, nextIdx := p.Wrap(k-1), p.Wrap(k+1)
	if convexNeighbours && (!convex(prevIdx) || !convex(nextIdx)) {
		return false
	}

	a, b, c := p[prevIdx].Point, p[k].Point, p[nextIdx].Point
	for i, v := range p {
		if i == prevIdx || i == k || i == nextIdx {
			continue
		}
		if v.Point == a || v.Point == b || v.Point == c {
			continue
		}
		if inTriangle(v.Point, a, b, c, orientation) {
			return false
		}
	}
	return true
}

// inTriangle reports whether q lies inside or on the border of triangle abc
// wound in the direction given by the sign of orientation.
func inTriangle(q, a, b, c math.Vec2, orientation float32) bool {
	return b.Sub(a).Cross(q.Sub(a))*orientation >= 0 &&
		c.Sub(b).Cross(q.Sub(b))*orientation >= 0 &&
		a.Sub(c).Cross(q.Sub(c))*orientation >= 0
}

// TriangleArea returns the unsigned area of a triangle.
func TriangleArea(t [3]math.Vec2) float32 {
	area := t[1].Sub(t[0]).Cross(t[2].Sub(t[0])) / 2
	if area < 0 {
		return -area
	}
	return area
}
