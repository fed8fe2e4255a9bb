package debug

import (
	"image/color"
	"io"
	gomath "math"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Sketch errors.
var (
	ErrEmptySketch    = errors.New("sketch has nothing to draw")
	ErrSketchTooLarge = errors.New("sketch exceeds maximum image size")
)

const (
	sketchPadding = 20
	maxSketchSize = 8192
)

// Sketch records debug geometry and rasterizes it as a top-down view of the
// ground plane: world X maps to image x, world Z to image y.
type Sketch struct {
	Recorder
	fills []fill
}

type fill struct {
	points []math.Vec2
	color  color.RGBA
}

// NewSketch returns an empty sketch.
func NewSketch() *Sketch {
	return &Sketch{}
}

// Fill adds a filled polygon given in ground-plane coordinates. It is drawn
// below all lines and markers.
func (s *Sketch) Fill(points []math.Vec2, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	s.fills = append(s.fills, fill{points: append([]math.Vec2(nil), points...), color: c})
}

// Render draws the sketch at scale pixels per world unit.
func (s *Sketch) Render(scale float64) (*gg.Context, error) {
	minX, minY := gomath.Inf(1), gomath.Inf(1)
	maxX, maxY := gomath.Inf(-1), gomath.Inf(-1)
	grow := func(p math.Vec2) {
		minX = gomath.Min(minX, float64(p.X))
		minY = gomath.Min(minY, float64(p.Y))
		maxX = gomath.Max(maxX, float64(p.X))
		maxY = gomath.Max(maxY, float64(p.Y))
	}
	for _, f := range s.fills {
		for _, p := range f.points {
			grow(p)
		}
	}
	for _, l := range s.Lines {
		grow(l.From.XZ())
		grow(l.To.XZ())
	}
	for _, m := range s.Markers {
		grow(m.At.XZ())
	}
	if gomath.IsInf(minX, 1) {
		return nil, ErrEmptySketch
	}

	width := int(scale*(maxX-minX)) + sketchPadding*2
	height := int(scale*(maxY-minY)) + sketchPadding*2
	if width > maxSketchSize || height > maxSketchSize {
		return nil, errors.Wrapf(ErrSketchTooLarge, "%dx%d", width, height)
	}

	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip so the origin is at the bottom left, then map world to pixels.
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(sketchPadding, sketchPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	for _, f := range s.fills {
		c.MoveTo(float64(f.points[0].X), float64(f.points[0].Y))
		for _, p := range f.points[1:] {
			c.LineTo(float64(p.X), float64(p.Y))
		}
		c.ClosePath()
		c.SetColor(f.color)
		c.Fill()
	}

	c.SetLineWidth(2)
	for _, l := range s.Lines {
		c.DrawLine(float64(l.From.X), float64(l.From.Z), float64(l.To.X), float64(l.To.Z))
		c.SetColor(l.Color)
		c.Stroke()
	}

	c.SetColor(Red)
	for _, m := range s.Markers {
		c.DrawCircle(float64(m.At.X), float64(m.At.Z), float64(m.Scale)/2)
		c.Fill()
	}
	return c, nil
}

// SavePNG renders the sketch to a PNG file.
func (s *Sketch) SavePNG(path string, scale float64) error {
	c, err := s.Render(scale)
	if err != nil {
		return err
	}
	return errors.Wrapf(c.SavePNG(path), "saving sketch to %s", path)
}

// EncodePNG renders the sketch as PNG into w.
func (s *Sketch) EncodePNG(w io.Writer, scale float64) error {
	c, err := s.Render(scale)
	if err != nil {
		return err
	}
	return errors.Wrap(c.EncodePNG(w), "encoding sketch")
}
