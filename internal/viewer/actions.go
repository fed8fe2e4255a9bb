package viewer

import (
	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/road"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionFit
	ActionReload
	ActionScreenshot
	ActionExport
	ActionToggleGrid
	ActionToggleDebug
	ActionToggleTopView
	ActionToggleClosed
	ActionToggleFlatten
	ActionToggleSimplify
	ActionToggleSpace
	ActionWiderRoad
	ActionNarrowerRoad
	ActionThickerRoad
	ActionThinnerRoad
)

// Step sizes for the road shape keys.
const (
	widthStep     = 0.1
	thicknessStep = 0.05
	minWidth      = 0.1
)

// applyEdit changes the road settings for an editing action. It reports
// whether the road must be rebuilt.
func applyEdit(cfg *config.Config, a Action) bool {
	switch a {
	case ActionToggleClosed:
		cfg.Path.ClosedLoop = !cfg.Path.ClosedLoop
	case ActionToggleFlatten:
		cfg.Road.FlattenSurface = !cfg.Road.FlattenSurface
	case ActionToggleSimplify:
		cfg.Boundary.Simplify = !cfg.Boundary.Simplify
	case ActionToggleSpace:
		if cfg.Path.Space == "xz" {
			cfg.Path.Space = "xyz"
		} else {
			cfg.Path.Space = "xz"
		}
	case ActionWiderRoad:
		cfg.Road.Width += widthStep
	case ActionNarrowerRoad:
		cfg.Road.Width = max(cfg.Road.Width-widthStep, minWidth)
	case ActionThickerRoad:
		cfg.Road.Thickness = min(cfg.Road.Thickness+thicknessStep, road.MaxThickness)
	case ActionThinnerRoad:
		cfg.Road.Thickness = max(cfg.Road.Thickness-thicknessStep, 0)
	default:
		return false
	}
	return true
}
