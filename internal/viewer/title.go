package viewer

import (
	"fmt"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/host"
)

// title summarizes the current road for the window title.
func title(cfg *config.Config, snap *host.Snapshot) string {
	shape := "open"
	if cfg.Path.ClosedLoop {
		shape = "closed"
	}
	if cfg.Road.FlattenSurface {
		shape += ", flat"
	}
	return fmt.Sprintf("Midgard Road - %d samples, %s, %s, width %.2f, thickness %.2f, %d flagged",
		snap.Mesh.SampleCount, shape, cfg.Path.Space, cfg.Road.Width, cfg.Road.Thickness, len(snap.Flagged))
}
