package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"

	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// DXF layer names.
const (
	LayerEdges    = "ROAD_EDGES"
	LayerBoundary = "BOUNDARY"
	LayerFlagged  = "FLAGGED"
	LayerEars     = "EARS"
)

// Size of the cross drawn on flagged corners and of their angle labels,
// in world units.
const (
	markerSize = 0.5
	labelSize  = 0.4
)

// Drawing lays the snapshot outline out as a DXF drawing in the XZ plane:
// both road edges, the closed boundary polygon, a labelled cross on every
// flagged corner, and the clipped ears.
func Drawing(snap *host.Snapshot) (*drawing.Drawing, error) {
	if snap == nil || len(snap.Boundary) == 0 {
		return nil, ErrNoBoundary
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	if snap.Mesh != nil {
		if err := layer(d, LayerEdges, color.White); err != nil {
			return nil, err
		}
		closed := snap.Mesh.Closed
		d.AddEntity(polyline(snap.Mesh.LeftEdge(), closed))
		d.AddEntity(polyline(snap.Mesh.RightEdge(), closed))
	}

	if err := layer(d, LayerBoundary, color.Cyan); err != nil {
		return nil, err
	}
	d.AddEntity(polyline(snap.Boundary.Points(), true))

	if len(snap.Flagged) > 0 {
		if err := layer(d, LayerFlagged, color.Red); err != nil {
			return nil, err
		}
		for _, i := range snap.Flagged {
			v := snap.Boundary[i]
			x, y := float64(v.Point.X), float64(v.Point.Y)
			if _, err := d.Line(x-markerSize, y-markerSize, 0, x+markerSize, y+markerSize, 0); err != nil {
				return nil, errors.Wrap(err, "drawing marker")
			}
			if _, err := d.Line(x-markerSize, y+markerSize, 0, x+markerSize, y-markerSize, 0); err != nil {
				return nil, errors.Wrap(err, "drawing marker")
			}
			label := fmt.Sprintf("%d: %.1f", i, v.Angle)
			if _, err := d.Text(label, x+markerSize, y+markerSize, 0, labelSize); err != nil {
				return nil, errors.Wrap(err, "drawing label")
			}
		}
	}

	if snap.Simplified != nil && len(snap.Simplified.Ears) > 0 {
		if err := layer(d, LayerEars, color.Yellow); err != nil {
			return nil, err
		}
		for _, ear := range snap.Simplified.Ears {
			d.AddEntity(polyline(ear[:], true))
		}
	}

	return d, nil
}

// SaveDXF writes the snapshot outline to path.
func SaveDXF(path string, snap *host.Snapshot) error {
	d, err := Drawing(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output dir")
	}
	return errors.Wrap(d.SaveAs(path), "writing dxf")
}

func layer(d *drawing.Drawing, name string, c color.ColorNumber) error {
	if _, err := d.AddLayer(name, c, dxf.DefaultLineType, true); err != nil {
		return errors.Wrapf(err, "adding layer %s", name)
	}
	return errors.Wrapf(d.ChangeLayer(name), "selecting layer %s", name)
}

// polyline converts pts to a lightweight polyline. Closed outlines repeat
// their first point.
func polyline(pts []math.Vec2, closed bool) *entity.LwPolyline {
	n := len(pts)
	if closed && n > 0 {
		n++
	}
	lwp := entity.NewLwPolyline(n)
	for i := 0; i < n; i++ {
		p := pts[i%len(pts)]
		lwp.Vertices[i] = []float64{float64(p.X), float64(p.Y)}
	}
	return lwp
}
