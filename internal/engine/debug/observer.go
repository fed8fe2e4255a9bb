// Package debug provides debug visualization utilities.
package debug

import (
	"image/color"
	"time"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// DefaultLineDuration is how long a debug line stays visible.
const DefaultLineDuration = 100 * time.Second

// Common debug colors.
var (
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Gray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Observer receives debug geometry. Implementations must not feed back into
// the geometry being built.
type Observer interface {
	// Line draws a segment that stays visible for d.
	Line(from, to math.Vec3, c color.RGBA, d time.Duration)
	// Marker places a visual marker of the given scale.
	Marker(at math.Vec3, scale float32)
}

// Nop discards everything.
type Nop struct{}

// Line implements Observer.
func (Nop) Line(math.Vec3, math.Vec3, color.RGBA, time.Duration) {}

// Marker implements Observer.
func (Nop) Marker(math.Vec3, float32) {}

// Line is a recorded debug line.
type Line struct {
	From, To math.Vec3
	Color    color.RGBA
	Duration time.Duration
}

// Marker is a recorded debug marker.
type Marker struct {
	At    math.Vec3
	Scale float32
}

// Recorder keeps everything it observes, in call order.
type Recorder struct {
	Lines   []Line
	Markers []Marker
}

// Line implements Observer.
func (r *Recorder) Line(from, to math.Vec3, c color.RGBA, d time.Duration) {
	r.Lines = append(r.Lines, Line{From: from, To: to, Color: c, Duration: d})
}

// Marker implements Observer.
func (r *Recorder) Marker(at math.Vec3, scale float32) {
	r.Markers = append(r.Markers, Marker{At: at, Scale: scale})
}

// Reset drops all recorded geometry.
func (r *Recorder) Reset() {
	r.Lines = r.Lines[:0]
	r.Markers = r.Markers[:0]
}

// Replay sends the recorded geometry to another observer.
func (r *Recorder) Replay(o Observer) {
	for _, l := range r.Lines {
		o.Line(l.From, l.To, l.Color, l.Duration)
	}
	for _, m := range r.Markers {
		o.Marker(m.At, m.Scale)
	}
}

// Tee forwards every call to all observers.
type Tee []Observer

// Line implements Observer.
func (t Tee) Line(from, to math.Vec3, c color.RGBA, d time.Duration) {
	for _, o := range t {
		o.Line(from, to, c, d)
	}
}

// Marker implements Observer.
func (t Tee) Marker(at math.Vec3, scale float32) {
	for _, o := range t {
		o.Marker(at, scale)
	}
}
