// Package camera provides the orbit camera of the road viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the ground plane
	Yaw      float32 // radians around the Y axis

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// TopDown looks straight down with an orthographic projection, so
	// boundary angles read true on screen.
	TopDown bool
}

// FovY is the vertical field of view of the perspective projection.
const FovY = 0.785398 // 45 degrees

// NewOrbitCamera creates an orbit camera sized for road meshes.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        30,
		Pitch:           0.6,
		MinDistance:     2,
		MaxDistance:     1000,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	offset := math.Vec3{
		X: c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		Y: c.Distance * float32(gomath.Sin(pitch)),
		Z: c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	if c.TopDown {
		eye := c.Center.Add(math.Up.Scale(c.Distance))
		return math.LookAt(eye, c.Center, math.Vec3{Z: -1})
	}
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ViewProj returns projection times view for a viewport of the given aspect.
func (c *OrbitCamera) ViewProj(aspect float32) math.Mat4 {
	far := max(c.Distance*4, 1000)
	var proj math.Mat4
	if c.TopDown {
		// Same visible height at the center as the perspective view.
		half := c.Distance * float32(gomath.Tan(FovY/2))
		proj = math.Orthographic(-half*aspect, half*aspect, -half, half, 0.1, far)
	} else {
		proj = math.Perspective(FovY, aspect, 0.1, far)
	}
	return proj.Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point relative to the current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01
	sin, cos := gomath.Sincos(float64(c.Yaw))

	// W moves into the scene, away from the camera.
	dir := math.Vec3{X: -float32(sin), Z: -float32(cos)}
	side := math.Vec3{X: float32(cos), Z: -float32(sin)}
	move := dir.Scale(forward).Add(side.Scale(right)).Add(math.Up.Scale(up))
	c.Center = c.Center.Add(move.Scale(speed))
}

// FitToBounds centers the camera on b and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b road.Bounds) {
	c.Center = b.Center()
	size := b.Size()
	c.Distance = clamp(max(size.X, size.Z)*1.2, c.MinDistance, c.MaxDistance)
	c.Pitch = clamp(0.6, c.MinPitch, c.MaxPitch)
	c.Yaw = 0
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}
