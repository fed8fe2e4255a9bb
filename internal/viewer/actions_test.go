package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/road"
)

func TestApplyEditToggles(t *testing.T) {
	cfg := config.Default()

	assert.True(t, applyEdit(cfg, ActionToggleClosed))
	assert.True(t, cfg.Path.ClosedLoop)
	assert.True(t, applyEdit(cfg, ActionToggleClosed))
	assert.False(t, cfg.Path.ClosedLoop)

	assert.True(t, applyEdit(cfg, ActionToggleFlatten))
	assert.True(t, cfg.Road.FlattenSurface)

	assert.True(t, applyEdit(cfg, ActionToggleSimplify))
	assert.True(t, cfg.Boundary.Simplify)

	assert.True(t, applyEdit(cfg, ActionToggleSpace))
	assert.Equal(t, "xz", cfg.Path.Space)
	assert.True(t, applyEdit(cfg, ActionToggleSpace))
	assert.Equal(t, "xyz", cfg.Path.Space)
}

func TestApplyEditClampsShape(t *testing.T) {
	cfg := config.Default()
	cfg.Road.Width = 0.15

	applyEdit(cfg, ActionNarrowerRoad)
	assert.InDelta(t, minWidth, cfg.Road.Width, 1e-6)
	applyEdit(cfg, ActionWiderRoad)
	assert.InDelta(t, 0.2, cfg.Road.Width, 1e-6)

	cfg.Road.Thickness = 0.48
	applyEdit(cfg, ActionThickerRoad)
	assert.Equal(t, float32(road.MaxThickness), cfg.Road.Thickness)

	cfg.Road.Thickness = 0.02
	applyEdit(cfg, ActionThinnerRoad)
	assert.Zero(t, cfg.Road.Thickness)

	assert.NoError(t, cfg.Validate())
}

func TestApplyEditIgnoresViewActions(t *testing.T) {
	cfg := config.Default()
	before := *cfg
	for _, a := range []Action{ActionNone, ActionQuit, ActionFit, ActionScreenshot, ActionToggleGrid, ActionToggleTopView} {
		assert.False(t, applyEdit(cfg, a))
	}
	assert.Equal(t, before.Road, cfg.Road)
	assert.Equal(t, before.Path.ClosedLoop, cfg.Path.ClosedLoop)
}

func TestTitle(t *testing.T) {
	cfg := config.Default()
	cfg.Path.ControlPoints = cfg.Path.ControlPoints[:3]
	cfg.Road.FlattenSurface = true

	snap, err := host.Generate(cfg, nil)
	require.NoError(t, err)

	got := title(cfg, snap)
	assert.Contains(t, got, "open, flat")
	assert.Contains(t, got, "width 0.40")
}
