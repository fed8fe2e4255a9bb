package export

import (
	"io"
	gomath "math"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Feature kinds, stored in the "kind" property.
const (
	KindFootprint = "footprint"
	KindBoundary  = "boundary"
	KindCorner    = "corner"
	KindEars      = "ears"
)

// ErrNoBoundary is returned when a snapshot has no boundary polygon.
var ErrNoBoundary = errors.New("no boundary to export")

// Outline converts a snapshot to GeoJSON features in the XZ plane: the road
// footprint, the boundary polygon, one point per boundary corner carrying
// its angle, and the clipped ears when simplification ran. Rings follow
// RFC 7946 winding.
func Outline(snap *host.Snapshot) (*geojson.FeatureCollection, error) {
	if snap == nil || len(snap.Boundary) == 0 {
		return nil, ErrNoBoundary
	}

	fc := geojson.NewFeatureCollection()

	if snap.Mesh != nil {
		f := geojson.NewFeature(footprint(snap.Mesh.LeftEdge(), snap.Mesh.RightEdge(), snap.Mesh.Closed))
		f.Properties["kind"] = KindFootprint
		f.Properties["samples"] = snap.Mesh.SampleCount
		fc.Append(f)
	}

	poly := orb.Polygon{exterior(ring(snap.Boundary.Points()))}
	f := geojson.NewFeature(poly)
	f.Properties["kind"] = KindBoundary
	f.Properties["vertices"] = len(snap.Boundary)
	f.Properties["flagged"] = len(snap.Flagged)
	fc.Append(f)

	flagged := make(map[int]bool, len(snap.Flagged))
	for _, i := range snap.Flagged {
		flagged[i] = true
	}
	for i, v := range snap.Boundary {
		f := geojson.NewFeature(point(v.Point))
		f.Properties["kind"] = KindCorner
		f.Properties["index"] = i
		f.Properties["angle"] = v.Angle
		f.Properties["flagged"] = flagged[i]
		f.Properties["sentinel"] = i < snap.Sentinels
		fc.Append(f)
	}

	if snap.Simplified != nil && len(snap.Simplified.Ears) > 0 {
		ears := make(orb.MultiPolygon, 0, len(snap.Simplified.Ears))
		for _, ear := range snap.Simplified.Ears {
			ears = append(ears, orb.Polygon{exterior(ring(ear[:]))})
		}
		f := geojson.NewFeature(ears)
		f.Properties["kind"] = KindEars
		f.Properties["steps"] = snap.Simplified.Steps
		fc.Append(f)
	}

	return fc, nil
}

// WriteGeoJSON writes the snapshot outline as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, snap *host.Snapshot) error {
	fc, err := Outline(snap)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding geojson")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing geojson")
}

// SaveGeoJSON writes the snapshot outline to path.
func SaveGeoJSON(path string, snap *host.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output dir")
	}
	return writeFile(path, func(w io.Writer) error { return WriteGeoJSON(w, snap) })
}

func point(p math.Vec2) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

// ring closes pts into an orb ring.
func ring(pts []math.Vec2) orb.Ring {
	r := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		r = append(r, point(p))
	}
	if len(r) > 0 && !r.Closed() {
		r = append(r, r[0])
	}
	return r
}

// exterior winds r counter-clockwise.
func exterior(r orb.Ring) orb.Ring {
	if r.Orientation() == orb.CW {
		r.Reverse()
	}
	return r
}

// hole winds r clockwise.
func hole(r orb.Ring) orb.Ring {
	if r.Orientation() == orb.CCW {
		r.Reverse()
	}
	return r
}

// footprint is the area between the two road edges. An open road is one
// ring up the left edge and back down the right; a loop is the larger edge
// ring with the smaller one cut out.
func footprint(left, right []math.Vec2, closed bool) orb.Polygon {
	if closed {
		a, b := ring(left), ring(right)
		if gomath.Abs(planar.Area(a)) < gomath.Abs(planar.Area(b)) {
			a, b = b, a
		}
		return orb.Polygon{exterior(a), hole(b)}
	}

	pts := make([]math.Vec2, 0, len(left)+len(right))
	pts = append(pts, left...)
	for i := len(right) - 1; i >= 0; i-- {
		pts = append(pts, right[i])
	}
	return orb.Polygon{exterior(ring(pts))}
}
