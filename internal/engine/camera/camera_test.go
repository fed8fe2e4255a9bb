package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

func TestPositionAtZeroYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.Pitch = 0
	c.Distance = 10
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}

	p := c.Position()
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 13, p.Z, 1e-5)
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.Pitch)
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestHandleMovementForward(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 100
	c.HandleMovement(1, 0, 0)
	assert.InDelta(t, 0, c.Center.X, 1e-5)
	assert.InDelta(t, -1, c.Center.Z, 1e-5)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(road.Bounds{
		Min: math.Vec3{X: -10, Y: -1, Z: 0},
		Max: math.Vec3{X: 10, Y: 1, Z: 40},
	})
	assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: 20}, c.Center)
	assert.InDelta(t, 48, c.Distance, 1e-4)
}

func TestTopDownProjectsGroundPlane(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 5, Z: 5}
	c.Distance = 20
	c.TopDown = true

	vp := c.ViewProj(1)

	center := vp.TransformPoint(c.Center)
	assert.InDelta(t, 0, center.X, 1e-4)
	assert.InDelta(t, 0, center.Y, 1e-4)

	// +X is screen right and -Z is screen up.
	right := vp.TransformPoint(c.Center.Add(math.Vec3{X: 1}))
	assert.Greater(t, right.X, float32(0))
	assert.InDelta(t, 0, right.Y, 1e-4)
	up := vp.TransformPoint(c.Center.Add(math.Vec3{Z: -1}))
	assert.Greater(t, up.Y, float32(0))

	// Orthographic: height does not change the screen position.
	raised := vp.TransformPoint(c.Center.Add(math.Vec3{X: 1, Y: 3}))
	assert.InDelta(t, right.X, raised.X, 1e-4)
}
