package host

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/debug"
	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

func straightConfig() *config.Config {
	cfg := config.Default()
	cfg.Path.ControlPoints = []math.Vec3{{Z: 0}, {Z: 10}, {Z: 20}}
	return cfg
}

func TestMaterials(t *testing.T) {
	assert.Nil(t, Materials(config.MaterialConfig{Road: "asphalt.png", TextureTiling: 2}))
	assert.Nil(t, Materials(config.MaterialConfig{Underside: "dirt.png", TextureTiling: 2}))

	mats := Materials(config.MaterialConfig{Road: "asphalt.png", Underside: "dirt.png", TextureTiling: 3})
	require.Len(t, mats, int(road.NumSurfaces))
	assert.Equal(t, "asphalt.png", mats[road.SurfaceTop].Texture)
	assert.Equal(t, math.Vec2{X: 1, Y: 3}, mats[road.SurfaceTop].TextureScale)
	assert.Equal(t, "dirt.png", mats[road.SurfaceBottom].Texture)
	assert.Equal(t, "dirt.png", mats[road.SurfaceSide].Texture)
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, mats[road.SurfaceSide].TextureScale)
}

func TestGenerateDefaultRoad(t *testing.T) {
	cfg := config.Default()

	snap, err := Generate(cfg, nil)
	require.NoError(t, err)

	n := snap.Path.Len()
	assert.Equal(t, n, snap.Mesh.SampleCount)
	assert.Len(t, snap.Mesh.Vertices, n*road.VerticesPerSample)
	assert.Len(t, snap.Boundary, n+len(cfg.Boundary.Sentinels))
	assert.Equal(t, cfg.Boundary.Sentinels[0], snap.Boundary[0].Point)
	assert.NotEmpty(t, snap.Flagged, "the straight runs should flag nearly flat corners")
	assert.Nil(t, snap.Materials)
	assert.Nil(t, snap.Simplified)

	// One line per boundary edge plus the twelve box edges.
	assert.Len(t, snap.Debug.Lines, len(snap.Boundary)+12)
	assert.Len(t, snap.Debug.Markers, len(snap.Flagged))
}

func TestGenerateSimplify(t *testing.T) {
	cfg := config.Default()
	cfg.Boundary.Simplify = true

	snap, err := Generate(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, snap.Simplified)
	assert.LessOrEqual(t, snap.Simplified.Steps, cfg.Boundary.MaxSteps)
	assert.Equal(t, len(snap.Boundary)-len(snap.Simplified.Ears), len(snap.Simplified.Polygon))
}

func TestGenerateDefaultClosedLoop(t *testing.T) {
	for _, space := range []string{"xyz", "xz"} {
		for _, flatten := range []bool{false, true} {
			cfg := config.Default()
			cfg.Path.ClosedLoop = true
			cfg.Path.Space = space
			cfg.Road.FlattenSurface = flatten

			snap, err := Generate(cfg, nil)
			require.NoError(t, err, "space=%s flatten=%v", space, flatten)
			assert.True(t, snap.Mesh.Closed)

			// The last quad wraps onto the first block.
			top := snap.Mesh.Top
			assert.Len(t, top, 6*snap.Mesh.SampleCount)
			assert.Equal(t, uint32(0), top[len(top)-5])
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	cfg := straightConfig()
	cfg.Road.Width = 0
	_, err := Generate(cfg, nil)
	assert.ErrorIs(t, err, road.ErrInvalidWidth)

	cfg = straightConfig()
	cfg.Path.ControlPoints = cfg.Path.ControlPoints[:1]
	_, err = Generate(cfg, nil)
	assert.Error(t, err)
}

func TestRebuildSwapsIntoTarget(t *testing.T) {
	target := &MemoryTarget{}
	rec := &debug.Recorder{}
	r := NewRebuilder(target, rec, nil)

	cfg := straightConfig()
	cfg.Material = config.MaterialConfig{Road: "asphalt.png", Underside: "dirt.png", TextureTiling: 5}

	snap, err := r.Rebuild(cfg)
	require.NoError(t, err)

	mesh, mats := target.Mesh()
	assert.Same(t, snap.Mesh, mesh)
	assert.Len(t, mats, int(road.NumSurfaces))
	assert.Equal(t, float32(5), mats[road.SurfaceTop].TextureScale.Y)
	assert.Equal(t, 1, target.Updates())
	assert.Same(t, snap, r.Last())
	assert.Len(t, rec.Lines, len(snap.Debug.Lines))
	assert.Len(t, rec.Markers, len(snap.Debug.Markers))
}

func TestRebuildFailureKeepsPreviousMesh(t *testing.T) {
	target := &MemoryTarget{}
	rec := &debug.Recorder{}
	r := NewRebuilder(target, rec, nil)

	first, err := r.Rebuild(straightConfig())
	require.NoError(t, err)
	lines := len(rec.Lines)

	bad := straightConfig()
	bad.Road.Width = 0
	_, err = r.Rebuild(bad)
	require.ErrorIs(t, err, road.ErrInvalidWidth)

	mesh, _ := target.Mesh()
	assert.Same(t, first.Mesh, mesh)
	assert.Equal(t, 1, target.Updates())
	assert.Same(t, first, r.Last())
	assert.Len(t, rec.Lines, lines, "a failed build must not draw")
}

type failingTarget struct{}

var errUpload = errors.New("upload failed")

func (failingTarget) SetMesh(*road.Mesh, []Material) error { return errUpload }

func TestRebuildTargetError(t *testing.T) {
	r := NewRebuilder(failingTarget{}, nil, nil)

	_, err := r.Rebuild(straightConfig())
	assert.ErrorIs(t, err, errUpload)
	assert.Nil(t, r.Last())
}

func TestRebuildWithoutTarget(t *testing.T) {
	r := NewRebuilder(nil, nil, nil)
	_, err := r.Rebuild(straightConfig())
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestSnapshotSketch(t *testing.T) {
	cfg := config.Default()
	cfg.Boundary.Simplify = true

	snap, err := Generate(cfg, nil)
	require.NoError(t, err)

	sk := snap.Sketch()
	assert.Len(t, sk.Lines, len(snap.Debug.Lines))
	assert.Len(t, sk.Markers, len(snap.Debug.Markers))

	c, err := sk.Render(2)
	require.NoError(t, err)
	assert.Greater(t, c.Width(), 200)
}
