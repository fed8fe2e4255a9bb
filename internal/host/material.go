// Package host connects the road builder to whatever displays or stores the
// result: it runs the full rebuild pipeline and hands finished meshes to a
// Target as one unit.
package host

import (
	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Material describes how one surface of the road is shaded.
type Material struct {
	Name         string
	Texture      string
	TextureScale math.Vec2
}

// Materials returns one material per surface in road.Surface order, or nil
// when either texture is missing. The road material goes on top and tiles
// along the path; the underside material covers the bottom and both walls.
func Materials(cfg config.MaterialConfig) []Material {
	if cfg.Road == "" || cfg.Underside == "" {
		return nil
	}
	mats := make([]Material, road.NumSurfaces)
	mats[road.SurfaceTop] = Material{
		Name:         "road",
		Texture:      cfg.Road,
		TextureScale: math.Vec2{X: 1, Y: cfg.TextureTiling},
	}
	under := Material{
		Name:         "underside",
		Texture:      cfg.Underside,
		TextureScale: math.Vec2{X: 1, Y: 1},
	}
	mats[road.SurfaceBottom] = under
	mats[road.SurfaceSide] = under
	return mats
}
