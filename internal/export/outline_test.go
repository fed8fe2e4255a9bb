package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/pkg/math"
)

func testSnapshot(t *testing.T, simplify bool) *host.Snapshot {
	t.Helper()
	cfg := config.Default()
	cfg.Boundary.Simplify = simplify
	snap, err := host.Generate(cfg, nil)
	require.NoError(t, err)
	return snap
}

func featuresOfKind(fc *geojson.FeatureCollection, kind string) []*geojson.Feature {
	var out []*geojson.Feature
	for _, f := range fc.Features {
		if f.Properties["kind"] == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestOutline(t *testing.T) {
	snap := testSnapshot(t, false)

	fc, err := Outline(snap)
	require.NoError(t, err)

	require.Len(t, featuresOfKind(fc, KindFootprint), 1)
	require.Len(t, featuresOfKind(fc, KindBoundary), 1)
	assert.Len(t, featuresOfKind(fc, KindCorner), len(snap.Boundary))
	assert.Empty(t, featuresOfKind(fc, KindEars), "no ears without simplification")

	poly, ok := featuresOfKind(fc, KindBoundary)[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.True(t, poly[0].Closed())
	assert.Len(t, poly[0], len(snap.Boundary)+1)
	assert.Equal(t, orb.CCW, poly[0].Orientation())

	corners := featuresOfKind(fc, KindCorner)
	for i, f := range corners {
		assert.Equal(t, i < snap.Sentinels, f.Properties["sentinel"], "corner %d", i)
	}
	for _, i := range snap.Flagged {
		assert.Equal(t, true, corners[i].Properties["flagged"])
	}
}

func TestOutlineWithEars(t *testing.T) {
	snap := testSnapshot(t, true)
	require.NotNil(t, snap.Simplified)

	fc, err := Outline(snap)
	require.NoError(t, err)

	ears := featuresOfKind(fc, KindEars)
	if len(snap.Simplified.Ears) == 0 {
		assert.Empty(t, ears)
		return
	}
	require.Len(t, ears, 1)
	mp, ok := ears[0].Geometry.(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, len(snap.Simplified.Ears))
}

func TestOutlineNoBoundary(t *testing.T) {
	_, err := Outline(nil)
	assert.ErrorIs(t, err, ErrNoBoundary)
	_, err = Outline(&host.Snapshot{})
	assert.ErrorIs(t, err, ErrNoBoundary)
}

func TestFootprintLoopHasHole(t *testing.T) {
	square := func(h float32) []math.Vec2 {
		return []math.Vec2{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	}

	// Inner ring passed as the right edge: the larger ring still wins.
	poly := footprint(square(12), square(10), true)
	require.Len(t, poly, 2)
	assert.Equal(t, orb.CCW, poly[0].Orientation())
	assert.Equal(t, orb.CW, poly[1].Orientation())
	assert.InDelta(t, 12, poly[0].Bound().Max[0], 1e-9)
	assert.InDelta(t, 10, poly[1].Bound().Max[0], 1e-9)
}

func TestFootprintOpenRoad(t *testing.T) {
	left := []math.Vec2{{X: -1, Y: 0}, {X: -1, Y: 5}, {X: -1, Y: 10}}
	right := []math.Vec2{{X: 1, Y: 0}, {X: 1, Y: 5}, {X: 1, Y: 10}}

	poly := footprint(left, right, false)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 7)
	assert.Equal(t, orb.CCW, poly[0].Orientation())
}

func TestWriteGeoJSONRoundTrip(t *testing.T) {
	snap := testSnapshot(t, false)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, snap))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, featuresOfKind(fc, KindCorner), len(snap.Boundary))
}

func TestSaveDXF(t *testing.T) {
	snap := testSnapshot(t, true)
	path := filepath.Join(t.TempDir(), "out", "road.dxf")

	require.NoError(t, SaveDXF(path, snap))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "LWPOLYLINE")
	assert.Contains(t, out, LayerEdges)
	assert.Contains(t, out, LayerBoundary)
	if len(snap.Flagged) > 0 {
		assert.Contains(t, out, LayerFlagged)
	}
	if len(snap.Simplified.Ears) > 0 {
		assert.Contains(t, out, LayerEars)
	}
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "EOF"))
}

func TestSaveDXFNoBoundary(t *testing.T) {
	err := SaveDXF(filepath.Join(t.TempDir(), "x.dxf"), nil)
	assert.ErrorIs(t, err, ErrNoBoundary)
}

func TestSaveSnapshot(t *testing.T) {
	snap := testSnapshot(t, false)
	dir := t.TempDir()

	out := config.OutputConfig{OBJPath: filepath.Join(dir, "road.obj")}
	written, err := SaveSnapshot(out, snap)
	require.NoError(t, err)
	assert.Equal(t, []string{out.OBJPath}, written)

	out.GeoJSONPath = filepath.Join(dir, "road.geojson")
	out.DXFPath = filepath.Join(dir, "road.dxf")
	written, err = SaveSnapshot(out, snap)
	require.NoError(t, err)
	assert.Equal(t, []string{out.OBJPath, out.GeoJSONPath, out.DXFPath}, written)
	for _, path := range written {
		assert.FileExists(t, path)
	}

	_, err = SaveSnapshot(out, nil)
	assert.ErrorIs(t, err, ErrNoMesh)
}
