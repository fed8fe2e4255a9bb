package host

import (
	"sync"

	"github.com/Faultbox/midgard-road/internal/road"
)

// Target receives finished meshes. SetMesh replaces whatever the target
// showed before; materials is nil when the road has none assigned.
type Target interface {
	SetMesh(mesh *road.Mesh, materials []Material) error
}

// MemoryTarget keeps the latest mesh in memory.
type MemoryTarget struct {
	mu        sync.Mutex
	mesh      *road.Mesh
	materials []Material
	updates   int
}

// SetMesh implements Target.
func (t *MemoryTarget) SetMesh(mesh *road.Mesh, materials []Material) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mesh = mesh
	t.materials = materials
	t.updates++
	return nil
}

// Mesh returns the current mesh and its materials.
func (t *MemoryTarget) Mesh() (*road.Mesh, []Material) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mesh, t.materials
}

// Updates returns how many meshes the target has received.
func (t *MemoryTarget) Updates() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updates
}
