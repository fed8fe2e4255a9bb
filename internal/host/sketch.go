package host

import (
	"image/color"

	"github.com/Faultbox/midgard-road/internal/engine/debug"
)

var (
	footprintFill = color.RGBA{R: 48, G: 48, B: 56, A: 255}
	earFill       = color.RGBA{R: 96, G: 32, B: 32, A: 255}
)

// Sketch lays out the snapshot as a top-down drawing: the boundary polygon
// filled, clipped ears on top, then every debug line and marker.
func (s *Snapshot) Sketch() *debug.Sketch {
	sk := debug.NewSketch()
	sk.Fill(s.Boundary.Points(), footprintFill)
	if s.Simplified != nil {
		for _, ear := range s.Simplified.Ears {
			sk.Fill(ear[:], earFill)
		}
	}
	s.Debug.Replay(sk)
	return sk
}
