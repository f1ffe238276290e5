package tabletop

import "sort"

// TableMap is one battle map placed on the table: a rectangular textured
// surface at an elevation, rotated about Y, carrying a grid and a fog mask.
type TableMap struct {
	ID       string
	Name     string
	Position Vec3 // world position of the map center
	Rotation Vec3 // Euler angles; only Y participates in grid math
	Grid     MapGridConfig

	// Fog is nil until the first edit and then swapped wholesale on every
	// commit. FogVersion increments with each swap and keys the overlay
	// texture cache.
	Fog        FogMask
	FogVersion int
}

// SurfaceAABB returns the world axis-aligned footprint of the map surface
// on the ground plane, accounting for its Y rotation.
func (m *TableMap) SurfaceAABB() (minX, minZ, maxX, maxZ float64) {
	hw := m.Grid.CellsWide() / 2
	hh := m.Grid.CellsHigh() / 2
	corners := [4]Vec3{
		{X: -hw, Z: -hh}, {X: hw, Z: -hh}, {X: hw, Z: hh}, {X: -hw, Z: hh},
	}
	for i, c := range corners {
		w := c.RotateY(m.Rotation.Y).Add(m.Position)
		if i == 0 || w.X < minX {
			minX = w.X
		}
		if i == 0 || w.X > maxX {
			maxX = w.X
		}
		if i == 0 || w.Z < minZ {
			minZ = w.Z
		}
		if i == 0 || w.Z > maxZ {
			maxZ = w.Z
		}
	}
	return minX, minZ, maxX, maxZ
}

// Table owns the maps of a session. All access happens on the update
// thread; the copy-on-write fog discipline means a mask handed out earlier
// stays a consistent snapshot regardless of later commits.
type Table struct {
	maps []*TableMap
	byID map[string]*TableMap
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byID: make(map[string]*TableMap)}
}

// AddMap places a map on the table. Adding an ID that already exists
// replaces the previous entry.
func (t *Table) AddMap(m *TableMap) {
	if m == nil || m.ID == "" {
		return
	}
	if old, ok := t.byID[m.ID]; ok {
		for i, e := range t.maps {
			if e == old {
				t.maps[i] = m
				break
			}
		}
	} else {
		t.maps = append(t.maps, m)
	}
	t.byID[m.ID] = m
}

// RemoveMap takes a map off the table. Gestures still referencing the ID
// become no-ops at their next step.
func (t *Table) RemoveMap(id string) bool {
	m, ok := t.byID[id]
	if !ok {
		return false
	}
	delete(t.byID, id)
	for i, e := range t.maps {
		if e == m {
			t.maps = append(t.maps[:i], t.maps[i+1:]...)
			break
		}
	}
	return true
}

// Surface looks up a map by ID.
func (t *Table) Surface(id string) (*TableMap, bool) {
	m, ok := t.byID[id]
	return m, ok
}

// Maps returns the maps sorted by elevation, lowest first, stable for
// equal elevations. This is the draw order.
func (t *Table) Maps() []*TableMap {
	out := make([]*TableMap, len(t.maps))
	copy(out, t.maps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.Y < out[j].Position.Y
	})
	return out
}

// MapCount returns how many maps are on the table.
func (t *Table) MapCount() int {
	return len(t.maps)
}

// CommitFog swaps in a new fog mask for the map and bumps its version.
// Returns false when the map is gone, leaving nothing to commit.
func (t *Table) CommitFog(id string, mask FogMask) bool {
	m, ok := t.byID[id]
	if !ok {
		return false
	}
	m.Fog = mask
	m.FogVersion++
	return true
}

// Bounds returns the world AABB enclosing every map surface with a small
// margin, used to keep the camera near the action. An empty table returns
// a unit square around the origin.
func (t *Table) Bounds() (minX, minZ, maxX, maxZ float64) {
	if len(t.maps) == 0 {
		return -1, -1, 1, 1
	}
	for i, m := range t.maps {
		a, b, c, d := m.SurfaceAABB()
		if i == 0 {
			minX, minZ, maxX, maxZ = a, b, c, d
			continue
		}
		if a < minX {
			minX = a
		}
		if b < minZ {
			minZ = b
		}
		if c > maxX {
			maxX = c
		}
		if d > maxZ {
			maxZ = d
		}
	}
	const margin = 4.0
	return minX - margin, minZ - margin, maxX + margin, maxZ + margin
}

// HitTest finds the topmost map under the ray: the highest-elevation map
// whose surface contains the ray's crossing of its elevation plane. Later
// additions win ties, matching draw order. Returns the map ID and the
// world-space hit point.
func (t *Table) HitTest(r Ray) (string, Vec3, bool) {
	var (
		bestID  string
		bestPt  Vec3
		found   bool
		bestElv float64
	)
	for _, m := range t.maps {
		pt, ok := RayPlaneHit(r, m.Position.Y)
		if !ok {
			continue
		}
		if !surfaceContains(m.Grid, m.Rotation.Y, m.Position, pt) {
			continue
		}
		if !found || m.Position.Y >= bestElv {
			bestID, bestPt, bestElv = m.ID, pt, m.Position.Y
			found = true
		}
	}
	return bestID, bestPt, found
}
