// Package config handles road generator configuration loading and management.
package config

import (
	"github.com/Faultbox/midgard-road/internal/boundary"
	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
	"github.com/Faultbox/midgard-road/pkg/spline"
)

// Config holds all generator settings.
type Config struct {
	Road     RoadConfig     `yaml:"road"`
	Path     PathConfig     `yaml:"path"`
	Material MaterialConfig `yaml:"material"`
	Boundary BoundaryConfig `yaml:"boundary"`
	Output   OutputConfig   `yaml:"output"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RoadConfig holds the ribbon cross-section.
type RoadConfig struct {
	Width          float32 `yaml:"width"`
	Thickness      float32 `yaml:"thickness"`
	FlattenSurface bool    `yaml:"flatten_surface"`
}

// PathConfig holds the centerline and its resampling.
type PathConfig struct {
	ControlPoints     []math.Vec3 `yaml:"control_points"`
	ClosedLoop        bool        `yaml:"closed_loop"`
	Space             string      `yaml:"space"` // "xyz" or "xz"
	MaxAngleError     float32     `yaml:"max_angle_error"`
	MinVertexDistance float32     `yaml:"min_vertex_distance"`
	Accuracy          int         `yaml:"accuracy"`
}

// MaterialConfig holds surface textures. Materials are only applied when
// both textures are set.
type MaterialConfig struct {
	Road          string  `yaml:"road"`
	Underside     string  `yaml:"underside"`
	TextureTiling float32 `yaml:"texture_tiling"`
}

// BoundaryConfig holds boundary analysis settings.
type BoundaryConfig struct {
	Sentinels      []math.Vec2 `yaml:"sentinels"`
	AngleThreshold float32     `yaml:"angle_threshold"`
	Simplify       bool        `yaml:"simplify"`
	MaxSteps       int         `yaml:"max_steps"`
	MinVertices    int         `yaml:"min_vertices"`
}

// OutputConfig holds file outputs.
type OutputConfig struct {
	OBJPath       string  `yaml:"obj_path"`
	GeoJSONPath   string  `yaml:"geojson_path"`
	DXFPath       string  `yaml:"dxf_path"`
	SketchPath    string  `yaml:"sketch_path"`
	SketchScale   float64 `yaml:"sketch_scale"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// ViewerConfig holds display settings.
type ViewerConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	Fullscreen   bool `yaml:"fullscreen"`
	VSync        bool `yaml:"vsync"`
	ShowBoundary bool `yaml:"show_boundary"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultControlPoints is the reference road: a straight run that swings
// out to the right and back before finishing straight.
func DefaultControlPoints() []math.Vec3 {
	return []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 10},
		{X: 0, Y: 0, Z: 20},
		{X: 100, Y: 0, Z: 33},
		{X: -20, Y: 0, Z: 66},
		{X: 0, Y: 0, Z: 80},
		{X: 0, Y: 0, Z: 90},
		{X: 0, Y: 0, Z: 100},
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	ro := road.DefaultOptions()
	vo := spline.DefaultVertexOptions()
	so := boundary.DefaultSimplifyOptions()
	return &Config{
		Road: RoadConfig{
			Width:          ro.Width,
			Thickness:      ro.Thickness,
			FlattenSurface: false,
		},
		Path: PathConfig{
			ControlPoints:     DefaultControlPoints(),
			ClosedLoop:        false,
			Space:             spline.SpaceXYZ.String(),
			MaxAngleError:     vo.MaxAngleError,
			MinVertexDistance: vo.MinVertexDistance,
			Accuracy:          vo.Accuracy,
		},
		Material: MaterialConfig{
			TextureTiling: 1,
		},
		Boundary: BoundaryConfig{
			Sentinels:      boundary.DefaultSentinels(),
			AngleThreshold: boundary.DefaultAngleThreshold,
			Simplify:       false,
			MaxSteps:       so.MaxSteps,
			MinVertices:    so.MinVertices,
		},
		Output: OutputConfig{
			OBJPath:       "road.obj",
			SketchPath:    "",
			SketchScale:   4,
			ScreenshotDir: "screenshots",
		},
		Viewer: ViewerConfig{
			Width:        1280,
			Height:       720,
			VSync:        true,
			ShowBoundary: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options returns the mesh builder options.
func (c RoadConfig) Options() road.Options {
	return road.Options{
		Width:          c.Width,
		Thickness:      c.Thickness,
		FlattenSurface: c.FlattenSurface,
	}
}

// VertexOptions returns the path resampling options.
func (c PathConfig) VertexOptions() spline.VertexOptions {
	return spline.VertexOptions{
		MaxAngleError:     c.MaxAngleError,
		MinVertexDistance: c.MinVertexDistance,
		Accuracy:          c.Accuracy,
	}
}

// SimplifyOptions returns the boundary simplification options.
func (c BoundaryConfig) SimplifyOptions() boundary.SimplifyOptions {
	return boundary.SimplifyOptions{
		MaxSteps:         c.MaxSteps,
		MinVertices:      c.MinVertices,
		ConvexNeighbours: true,
	}
}
