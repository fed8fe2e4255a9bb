// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Default sun placement for the road preview, in degrees.
const (
	DefaultLongitude = 60
	DefaultLatitude  = 60
)

// SunDirection converts longitude/latitude angles to a light direction.
// Longitude is rotation around the Y axis (0-360), latitude is elevation
// from the horizon (0-90). The result is normalized and points towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}

// Ambient returns a grey ambient term that keeps the unlit side of the
// road readable.
func Ambient(level float32) math.Vec3 {
	return math.Vec3{X: level, Y: level, Z: level}
}
