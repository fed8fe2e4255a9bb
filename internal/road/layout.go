package road

import "github.com/Faultbox/midgard-road/pkg/math"

// Slot is the position of a vertex inside a sample's block.
type Slot int

// Block layout. Slots 4-7 repeat the positions of 0-3 so the side walls can
// carry their own normals.
const (
	SlotTopLeft Slot = iota
	SlotTopRight
	SlotBottomLeft
	SlotBottomRight
	SlotSideTopLeft
	SlotSideTopRight
	SlotSideBottomLeft
	SlotSideBottomRight

	VerticesPerSample = 8
)

// corner addresses a slot in the current (next=0) or following (next=1) block.
type corner struct {
	next int
	slot Slot
}

func (c corner) offset() int {
	return c.next*VerticesPerSample + int(c.slot)
}

// topQuad spans two triangles between the top edges of consecutive samples,
// counterclockwise seen from above.
var topQuad = [6]corner{
	{0, SlotTopLeft}, {1, SlotTopLeft}, {0, SlotTopRight},
	{0, SlotTopRight}, {1, SlotTopLeft}, {1, SlotTopRight},
}

// bottomQuad is topQuad reversed on the bottom slots, so it faces down.
var bottomQuad = [6]corner{
	{1, SlotBottomRight}, {1, SlotBottomLeft}, {0, SlotBottomRight},
	{0, SlotBottomRight}, {1, SlotBottomLeft}, {0, SlotBottomLeft},
}

// sideQuads are the left then right walls, each facing outward.
var sideQuads = [12]corner{
	{0, SlotSideTopLeft}, {0, SlotSideBottomLeft}, {1, SlotSideBottomLeft},
	{1, SlotSideTopLeft}, {0, SlotSideTopLeft}, {1, SlotSideBottomLeft},
	{0, SlotSideTopRight}, {1, SlotSideBottomRight}, {0, SlotSideBottomRight},
	{1, SlotSideTopRight}, {1, SlotSideBottomRight}, {0, SlotSideTopRight},
}

// Index returns the vertex index of slot in the block of sample.
func Index(sample int, slot Slot) int {
	return sample*VerticesPerSample + int(slot)
}

// At returns the position stored in slot of sample.
func (m *Mesh) At(sample int, slot Slot) math.Vec3 {
	return m.Vertices[Index(sample, slot)]
}
