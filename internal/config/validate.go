package config

import (
	gomath "math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/spline"
)

// ErrInvalid marks every validation problem.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalid, format, args...)
}

func finite(f float32) bool {
	return !gomath.IsNaN(float64(f)) && !gomath.IsInf(float64(f), 0)
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var err error

	if c.Road.Width == 0 || !finite(c.Road.Width) {
		err = multierr.Append(err, invalid("road.width must be finite and non-zero, got %v", c.Road.Width))
	}
	if !finite(c.Road.Thickness) || c.Road.Thickness < 0 || c.Road.Thickness > road.MaxThickness {
		err = multierr.Append(err, invalid("road.thickness must be in [0, %v], got %v", road.MaxThickness, c.Road.Thickness))
	}

	if len(c.Path.ControlPoints) < 2 {
		err = multierr.Append(err, invalid("path.control_points needs at least 2 points, got %d", len(c.Path.ControlPoints)))
	}
	for i, p := range c.Path.ControlPoints {
		if !p.IsFinite() {
			err = multierr.Append(err, invalid("path.control_points[%d] is not finite", i))
		}
	}
	if c.Path.Space != spline.SpaceXYZ.String() && c.Path.Space != spline.SpaceXZ.String() {
		err = multierr.Append(err, invalid("path.space must be %q or %q, got %q", spline.SpaceXYZ, spline.SpaceXZ, c.Path.Space))
	}
	if !(c.Path.MinVertexDistance > 0) {
		err = multierr.Append(err, invalid("path.min_vertex_distance must be positive, got %v", c.Path.MinVertexDistance))
	}
	if !(c.Path.MaxAngleError > 0) {
		err = multierr.Append(err, invalid("path.max_angle_error must be positive, got %v", c.Path.MaxAngleError))
	}
	if c.Path.Accuracy <= 0 {
		err = multierr.Append(err, invalid("path.accuracy must be positive, got %d", c.Path.Accuracy))
	}

	if !(c.Material.TextureTiling > 0) || !finite(c.Material.TextureTiling) {
		err = multierr.Append(err, invalid("material.texture_tiling must be positive, got %v", c.Material.TextureTiling))
	}

	if !(c.Boundary.AngleThreshold > 0 && c.Boundary.AngleThreshold <= 180) {
		err = multierr.Append(err, invalid("boundary.angle_threshold must be in (0, 180], got %v", c.Boundary.AngleThreshold))
	}
	if c.Boundary.MaxSteps < 0 {
		err = multierr.Append(err, invalid("boundary.max_steps must not be negative, got %d", c.Boundary.MaxSteps))
	}
	if c.Boundary.Simplify && c.Boundary.MinVertices < 3 {
		err = multierr.Append(err, invalid("boundary.min_vertices must be at least 3, got %d", c.Boundary.MinVertices))
	}

	if !(c.Output.SketchScale > 0) {
		err = multierr.Append(err, invalid("output.sketch_scale must be positive, got %v", c.Output.SketchScale))
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		err = multierr.Append(err, invalid("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height))
	}

	return err
}
