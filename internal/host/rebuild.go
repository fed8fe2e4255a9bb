package host

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/boundary"
	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/debug"
	"github.com/Faultbox/midgard-road/internal/logger"
	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/spline"
)

// ErrNoTarget is returned by Rebuild when the Rebuilder has no target.
var ErrNoTarget = errors.New("rebuilder has no target")

// Snapshot is everything one rebuild produced.
type Snapshot struct {
	Path      *spline.VertexPath
	Mesh      *road.Mesh
	Materials []Material
	// Boundary is the annotated left-edge polygon. Its first Sentinels
	// vertices are the fixed corners, the rest follow the left edge.
	Boundary  boundary.Polygon
	Sentinels int
	// Flagged lists boundary vertices above the angle threshold.
	Flagged []int
	// Simplified is set when boundary simplification ran and succeeded.
	Simplified *boundary.Result
	// Debug holds the lines and markers drawn for this build.
	Debug    *debug.Recorder
	Duration time.Duration
}

// Generate runs the pipeline without touching any target: Bezier path,
// resampled vertex path, ribbon mesh, boundary polygon and its angles, and
// the optional simplification. A simplification failure is logged and
// leaves Simplified nil; any other failure aborts.
func Generate(cfg *config.Config, log *zap.Logger) (*Snapshot, error) {
	log = logger.OrNop(log)
	start := time.Now()

	bezier, err := spline.NewBezierPath(cfg.Path.ControlPoints, cfg.Path.ClosedLoop, spline.ParseSpace(cfg.Path.Space))
	if err != nil {
		return nil, errors.Wrap(err, "bezier path")
	}
	path, err := spline.NewVertexPath(bezier, cfg.Path.VertexOptions())
	if err != nil {
		return nil, errors.Wrap(err, "vertex path")
	}
	mesh, err := road.Build(path, cfg.Road.Options())
	if err != nil {
		return nil, errors.Wrap(err, "road mesh")
	}

	poly, err := boundary.AnnotateAngles(boundary.Build(mesh.LeftEdge(), cfg.Boundary.Sentinels))
	if err != nil {
		return nil, errors.Wrap(err, "boundary")
	}

	snap := &Snapshot{
		Path:      path,
		Mesh:      mesh,
		Materials: Materials(cfg.Material),
		Boundary:  poly,
		Sentinels: len(cfg.Boundary.Sentinels),
		Flagged:   boundary.Flagged(poly, cfg.Boundary.AngleThreshold),
		Debug:     &debug.Recorder{},
	}

	debug.Boundary(snap.Debug, poly, cfg.Boundary.AngleThreshold)
	debug.Bounds(snap.Debug, mesh.Bounds, 0)

	if cfg.Boundary.Simplify {
		res, err := boundary.Simplify(poly, cfg.Boundary.SimplifyOptions())
		if err != nil {
			log.Warn("boundary simplification skipped", zap.Error(err))
		} else {
			snap.Simplified = &res
			debug.Ears(snap.Debug, res.Ears)
		}
	}

	snap.Duration = time.Since(start)
	log.Debug("road generated",
		zap.Int("samples", mesh.SampleCount),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("boundary", len(poly)),
		zap.Int("flagged", len(snap.Flagged)),
		zap.Duration("took", snap.Duration),
	)
	return snap, nil
}

// Rebuilder serializes rebuilds and swaps each successful result into its
// target. A failed rebuild leaves the target and Last untouched.
type Rebuilder struct {
	mu       sync.Mutex
	target   Target
	observer debug.Observer
	log      *zap.Logger
	last     *Snapshot
}

// NewRebuilder creates a rebuilder. A nil observer discards debug output and
// a nil logger discards log output.
func NewRebuilder(target Target, observer debug.Observer, log *zap.Logger) *Rebuilder {
	if observer == nil {
		observer = debug.Nop{}
	}
	return &Rebuilder{
		target:   target,
		observer: observer,
		log:      logger.OrNop(log),
	}
}

// Rebuild regenerates the road from cfg and hands it to the target.
func (r *Rebuilder) Rebuild(cfg *config.Config) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.target == nil {
		return nil, ErrNoTarget
	}

	snap, err := Generate(cfg, r.log)
	if err != nil {
		r.log.Warn("rebuild failed, keeping previous road", zap.Error(err))
		return nil, err
	}
	if err := r.target.SetMesh(snap.Mesh, snap.Materials); err != nil {
		return nil, errors.Wrap(err, "set mesh")
	}

	snap.Debug.Replay(r.observer)
	r.last = snap
	r.log.Info("road rebuilt",
		zap.Int("samples", snap.Mesh.SampleCount),
		zap.Int("triangles", snap.Mesh.Triangles()),
		zap.Bool("materials", snap.Materials != nil),
	)
	return snap, nil
}

// Last returns the most recent successful snapshot, or nil.
func (r *Rebuilder) Last() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
