package boundary

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-road/pkg/math"
)

func regularPolygon(n int, radius float32) []math.Vec2 {
	points := make([]math.Vec2, n)
	for i := range points {
		a := 2 * gomath.Pi * float64(i) / float64(n)
		points[i] = math.Vec2{X: radius * float32(gomath.Cos(a)), Y: radius * float32(gomath.Sin(a))}
	}
	return points
}

// star alternates tips and inner corners, so every convex vertex sits
// between two reflex ones.
func star(tips int) []math.Vec2 {
	points := make([]math.Vec2, 2*tips)
	for i := range points {
		r := float32(10)
		if i%2 == 1 {
			r = 4
		}
		a := gomath.Pi * float64(i) / float64(tips)
		points[i] = math.Vec2{X: r * float32(gomath.Cos(a)), Y: r * float32(gomath.Sin(a))}
	}
	return points
}

func totalArea(tris [][3]math.Vec2) float32 {
	var sum float32
	for _, tri := range tris {
		sum += TriangleArea(tri)
	}
	return sum
}

func TestSimplifySquare(t *testing.T) {
	res, err := Simplify(Build(unitSquare(), nil), DefaultSimplifyOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Steps)
	require.Len(t, res.Ears, 1)
	assert.Equal(t, [3]math.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}, res.Ears[0])
	require.Len(t, res.Polygon, 3)
	assert.Equal(t, []math.Vec2{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, res.Polygon.Points())
	assert.InDelta(t, 45, res.Polygon[0].Angle, tolerance)
	assert.InDelta(t, 90, res.Polygon[1].Angle, tolerance)
	assert.InDelta(t, 45, res.Polygon[2].Angle, tolerance)
}

func TestSimplifyStepBudget(t *testing.T) {
	p := Build(regularPolygon(40, 10), nil)
	res, err := Simplify(p, DefaultSimplifyOptions())
	require.NoError(t, err)

	assert.Equal(t, 15, res.Steps)
	assert.Len(t, res.Ears, 15)
	assert.Len(t, res.Polygon, 40-15)
	assert.Len(t, p, 40, "input is not modified")
}

func TestSimplifyMinVertices(t *testing.T) {
	res, err := Simplify(Build(regularPolygon(12, 10), nil), SimplifyOptions{MinVertices: 5})
	require.NoError(t, err)
	assert.Len(t, res.Polygon, 5)
	assert.Len(t, res.Ears, 7)
}

func TestSimplifyStopsAfterIdleLap(t *testing.T) {
	p := Build(star(5), nil)
	res, err := Simplify(p, SimplifyOptions{MaxSteps: 100, ConvexNeighbours: true})
	require.NoError(t, err)

	assert.Empty(t, res.Ears)
	assert.Equal(t, len(p), res.Steps)
	assert.Len(t, res.Polygon, len(p))
}

func TestSimplifyKeepsReflexCorners(t *testing.T) {
	res, err := Simplify(Build(lShape(), nil), SimplifyOptions{})
	require.NoError(t, err)
	for _, ear := range res.Ears {
		assert.NotEqual(t, math.Vec2{X: 1, Y: 1}, ear[1], "reflex corner clipped")
	}
}

func TestSimplifyErrors(t *testing.T) {
	_, err := Simplify(Build(unitSquare()[:2], nil), DefaultSimplifyOptions())
	assert.ErrorIs(t, err, ErrTooFewVertices)

	line := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	_, err = Simplify(Build(line, nil), DefaultSimplifyOptions())
	assert.ErrorIs(t, err, ErrZeroArea)
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name   string
		points []math.Vec2
	}{
		{"square", unitSquare()},
		{"l-shape", lShape()},
		{"star", star(5)},
		{"regular", regularPolygon(17, 3)},
		{"road footprint", append(DefaultSentinels(),
			math.Vec2{X: -0.4, Y: 0}, math.Vec2{X: 3, Y: 20}, math.Vec2{X: 10, Y: 40},
			math.Vec2{X: 4, Y: 70}, math.Vec2{X: -0.4, Y: 90})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.points, nil)
			tris, err := Triangulate(p)
			require.NoError(t, err)
			assert.Len(t, tris, len(p)-2)

			area := Orientation(p)
			assert.InEpsilon(t, gomath.Abs(float64(area)), totalArea(tris), 1e-4)
			for i, tri := range tris {
				wound := Orientation(Build(tri[:], nil))
				assert.Greater(t, wound*area, float32(0), "triangle %d winding", i)
			}
		})
	}
}

func TestTriangleArea(t *testing.T) {
	tri := [3]math.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}
	assert.InDelta(t, 6, TriangleArea(tri), tolerance)
	tri[1], tri[2] = tri[2], tri[1]
	assert.InDelta(t, 6, TriangleArea(tri), tolerance)
}
