package road

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-road/pkg/math"
	"github.com/Faultbox/midgard-road/pkg/spline"
)

const tolerance = 1e-5

// straightPath returns n samples one unit apart along +Z.
func straightPath(t *testing.T, n int, closed bool) *spline.VertexPath {
	t.Helper()
	samples := make([]spline.Sample, n)
	for i := range samples {
		samples[i] = spline.Sample{
			Position: math.Vec3{Z: float32(i)},
			Tangent:  math.Vec3{Z: 1},
			Normal:   math.Vec3{X: 1},
			Up:       math.Up,
			Time:     float32(i) / float32(n-1),
		}
	}
	p, err := spline.NewVertexPathFromSamples(samples, closed, spline.SpaceXYZ)
	require.NoError(t, err)
	return p
}

// ringPath returns n samples on a circle in the XZ plane, travelling
// counterclockwise seen from above.
func ringPath(t *testing.T, n int, radius float32) *spline.VertexPath {
	t.Helper()
	samples := make([]spline.Sample, n)
	for i := range samples {
		a := 2 * gomath.Pi * float64(i) / float64(n)
		s, c := gomath.Sincos(a)
		tangent := math.Vec3{X: float32(-s), Z: float32(c)}
		samples[i] = spline.Sample{
			Position: math.Vec3{X: radius * float32(c), Z: radius * float32(s)},
			Tangent:  tangent,
			Normal:   math.Up.Cross(tangent),
			Up:       math.Up,
			Time:     float32(i) / float32(n),
		}
	}
	p, err := spline.NewVertexPathFromSamples(samples, true, spline.SpaceXZ)
	require.NoError(t, err)
	return p
}

func triangleNormal(m *Mesh, tri []uint32) math.Vec3 {
	a := m.Vertices[tri[0]]
	b := m.Vertices[tri[1]]
	c := m.Vertices[tri[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

func sampleOf(index uint32) int {
	return int(index) / VerticesPerSample
}

func TestBuildVertexCount(t *testing.T) {
	for _, n := range []int{2, 3, 10, 57} {
		for _, closed := range []bool{false, true} {
			m, err := Build(straightPath(t, n, closed), DefaultOptions())
			require.NoError(t, err)
			assert.Len(t, m.Vertices, 8*n)
			assert.Len(t, m.Normals, 8*n)
			assert.Len(t, m.UVs, 8*n)
			assert.Equal(t, n, m.SampleCount)
		}
	}
}

func TestBuildStraightFlatRibbon(t *testing.T) {
	p := straightPath(t, 3, false)
	m, err := Build(p, Options{Width: 1, Thickness: 0})
	require.NoError(t, err)

	for i := 0; i < p.Len(); i++ {
		pos := p.At(i).Position
		assert.Equal(t, pos.Sub(math.Vec3{X: 1}), m.At(i, SlotTopLeft), "top-left %d", i)
		assert.Equal(t, pos.Add(math.Vec3{X: 1}), m.At(i, SlotTopRight), "top-right %d", i)
		assert.Equal(t, m.At(i, SlotTopLeft), m.At(i, SlotBottomLeft), "zero thickness")
	}
	assert.Equal(t, 4, m.TriangleCount(SurfaceTop))
	assert.Equal(t, 4, m.TriangleCount(SurfaceBottom))
	assert.Equal(t, 8, m.TriangleCount(SurfaceSide))
	assert.Equal(t, 16, m.Triangles())
}

func TestBuildIndexOffsets(t *testing.T) {
	m, err := Build(straightPath(t, 2, false), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 8, 1, 1, 8, 9}, m.Top)
	assert.Equal(t, []uint32{11, 10, 3, 3, 10, 2}, m.Bottom)
	assert.Equal(t, []uint32{4, 6, 14, 12, 4, 14, 5, 15, 7, 13, 15, 5}, m.Side)
}

func TestBuildOpenPathHasNoWraparound(t *testing.T) {
	const n = 5
	m, err := Build(straightPath(t, n, false), DefaultOptions())
	require.NoError(t, err)

	for s := SurfaceTop; s < NumSurfaces; s++ {
		idx := m.Indices(s)
		require.NotEmpty(t, idx)
		for tri := 0; tri < len(idx); tri += 3 {
			for _, v := range idx[tri : tri+3] {
				assert.Less(t, int(v), 8*n)
			}
			first, last := false, false
			for _, v := range idx[tri : tri+3] {
				first = first || sampleOf(v) == 0
				last = last || sampleOf(v) == n-1
			}
			assert.False(t, first && last, "%s triangle %d joins the ends of an open path", s, tri/3)
		}
	}
}

func TestBuildClosedLoopWraps(t *testing.T) {
	const n = 12
	m, err := Build(ringPath(t, n, 10), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, m.Closed)

	for s := SurfaceTop; s < NumSurfaces; s++ {
		idx := m.Indices(s)
		require.NotEmpty(t, idx, s.String())
		assert.Equal(t, n*len(topQuad)*map[Surface]int{SurfaceTop: 1, SurfaceBottom: 1, SurfaceSide: 2}[s], len(idx))

		wraps := false
		for tri := 0; tri < len(idx); tri += 3 {
			first, last := false, false
			for _, v := range idx[tri : tri+3] {
				assert.Less(t, int(v), 8*n)
				first = first || sampleOf(v) == 0
				last = last || sampleOf(v) == n-1
			}
			wraps = wraps || (first && last)
		}
		assert.True(t, wraps, "%s group has no segment from the last sample to the first", s)
	}
}

func TestBuildWinding(t *testing.T) {
	paths := map[string]spline.Path{
		"straight": straightPath(t, 4, false),
		"ring":     ringPath(t, 16, 5),
	}
	for name, p := range paths {
		t.Run(name, func(t *testing.T) {
			m, err := Build(p, Options{Width: 1, Thickness: 0.2})
			require.NoError(t, err)

			for tri := 0; tri < len(m.Top); tri += 3 {
				up := m.Normals[m.Top[tri]]
				assert.Greater(t, triangleNormal(m, m.Top[tri:tri+3]).Dot(up), float32(0), "top triangle %d", tri/3)
				assert.Less(t, triangleNormal(m, m.Bottom[tri:tri+3]).Dot(up), float32(0), "bottom triangle %d", tri/3)
			}
			for tri := 0; tri < len(m.Side); tri += 3 {
				outward := m.Normals[m.Side[tri]]
				assert.Greater(t, triangleNormal(m, m.Side[tri:tri+3]).Dot(outward), float32(0), "side triangle %d", tri/3)
			}
		})
	}
}

func TestBuildNormals(t *testing.T) {
	m, err := Build(straightPath(t, 3, false), DefaultOptions())
	require.NoError(t, err)

	want := map[Slot]math.Vec3{
		SlotTopLeft:         math.Up,
		SlotTopRight:        math.Up,
		SlotBottomLeft:      math.Up.Neg(),
		SlotBottomRight:     math.Up.Neg(),
		SlotSideTopLeft:     {X: -1},
		SlotSideTopRight:    {X: 1},
		SlotSideBottomLeft:  {X: -1},
		SlotSideBottomRight: {X: 1},
	}
	for i := 0; i < m.SampleCount; i++ {
		for slot, n := range want {
			assert.Equal(t, n, m.Normals[Index(i, slot)], "sample %d slot %d", i, slot)
		}
	}
}

func TestBuildUVs(t *testing.T) {
	p := straightPath(t, 6, false)
	m, err := Build(p, DefaultOptions())
	require.NoError(t, err)

	var prev float32
	for i := 0; i < p.Len(); i++ {
		left := m.UVs[8*i]
		right := m.UVs[8*i+1]
		assert.Equal(t, math.Vec2{X: 0, Y: p.At(i).Time}, left)
		assert.Equal(t, math.Vec2{X: 1, Y: p.At(i).Time}, right)
		assert.GreaterOrEqual(t, left.Y, prev)
		prev = left.Y
		for slot := SlotBottomLeft; slot <= SlotSideBottomRight; slot++ {
			assert.Equal(t, math.Vec2{}, m.UVs[Index(i, slot)])
		}
	}
}

func TestBuildThickness(t *testing.T) {
	tests := []struct {
		name      string
		thickness float32
		wantDrop  float32
	}{
		{"within range", 0.15, 0.15},
		{"negative clamps to zero", -1, 0},
		{"too thick clamps", 2, MaxThickness},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(straightPath(t, 2, false), Options{Width: 1, Thickness: tt.thickness})
			require.NoError(t, err)
			drop := m.At(0, SlotTopLeft).Y - m.At(0, SlotBottomLeft).Y
			assert.InDelta(t, tt.wantDrop, drop, tolerance)
		})
	}
}

func TestBuildNegativeWidthUsesMagnitude(t *testing.T) {
	m, err := Build(straightPath(t, 2, false), Options{Width: -2})
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: -2}, m.At(0, SlotTopLeft))
}

func TestBuildFlattenSurface(t *testing.T) {
	const bank = 0.5
	banked := spline.Sample{
		Tangent: math.Vec3{Z: 1},
		Normal:  math.Vec3{X: float32(gomath.Cos(bank)), Y: float32(gomath.Sin(bank))},
		Up:      math.Up,
	}
	second := banked
	second.Position = math.Vec3{Z: 1}
	second.Time = 1

	for _, tt := range []struct {
		name    string
		space   spline.Space
		flatten bool
		level   bool
	}{
		{"banked", spline.SpaceXYZ, false, false},
		{"flattened", spline.SpaceXYZ, true, true},
		{"planar path ignores flatten", spline.SpaceXZ, true, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p, err := spline.NewVertexPathFromSamples([]spline.Sample{banked, second}, false, tt.space)
			require.NoError(t, err)
			m, err := Build(p, Options{Width: 1, FlattenSurface: tt.flatten})
			require.NoError(t, err)

			leftY := m.At(0, SlotTopLeft).Y
			if tt.level {
				assert.InDelta(t, 0, leftY, tolerance)
				assert.Equal(t, math.Up, m.Normals[Index(0, SlotTopLeft)])
			} else {
				assert.InDelta(t, -gomath.Sin(bank), leftY, tolerance)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	nan := float32(gomath.NaN())

	still, err := spline.NewVertexPathFromSamples(make([]spline.Sample, 2), false, spline.SpaceXYZ)
	require.NoError(t, err)

	tests := []struct {
		name string
		path spline.Path
		opts Options
		want error
	}{
		{"too few samples", fakePath{samples: make([]spline.Sample, 1)}, DefaultOptions(), ErrTooFewSamples},
		{"zero width", straightPath(t, 3, false), Options{Width: 0}, ErrInvalidWidth},
		{"nan width", straightPath(t, 3, false), Options{Width: nan}, ErrInvalidWidth},
		{"nan thickness", straightPath(t, 3, false), Options{Width: 1, Thickness: nan}, ErrInvalidThickness},
		{"zero tangent", still, DefaultOptions(), ErrDegenerateFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(tt.path, tt.opts)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, m)
		})
	}
}

func TestBuildRejectsNonFiniteSample(t *testing.T) {
	samples := []spline.Sample{
		{Position: math.Vec3{}, Tangent: math.Vec3{Z: 1}, Normal: math.Vec3{X: 1}},
		{Position: math.Vec3{Z: float32(gomath.Inf(1))}, Tangent: math.Vec3{Z: 1}, Normal: math.Vec3{X: 1}},
	}
	m, err := Build(fakePath{samples: samples}, DefaultOptions())
	assert.ErrorIs(t, err, ErrDegenerateFrame)
	assert.Contains(t, err.Error(), "sample 1")
	assert.Nil(t, m)
}

func TestBuildZeroNormal(t *testing.T) {
	samples := []spline.Sample{
		{Tangent: math.Vec3{Z: 1}},
		{Position: math.Vec3{Z: 1}, Tangent: math.Vec3{Z: 1}},
	}
	_, err := Build(fakePath{samples: samples}, DefaultOptions())
	assert.ErrorIs(t, err, ErrDegenerateFrame)
}

func TestBuildBounds(t *testing.T) {
	m, err := Build(straightPath(t, 5, false), Options{Width: 2, Thickness: 0.5})
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: -2, Y: -0.5, Z: 0}, m.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 2, Y: 0, Z: 4}, m.Bounds.Max)
	assert.Equal(t, math.Vec3{X: 0, Y: -0.25, Z: 2}, m.Bounds.Center())
}

// fakePath serves raw samples without validation.
type fakePath struct {
	samples []spline.Sample
	closed  bool
}

func (f fakePath) Len() int               { return len(f.samples) }
func (f fakePath) At(i int) spline.Sample { return f.samples[i] }
func (f fakePath) IsClosedLoop() bool     { return f.closed }
func (f fakePath) Space() spline.Space    { return spline.SpaceXYZ }
