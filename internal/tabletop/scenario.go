package tabletop

import (
	"fmt"
	"math"
	"math/rand"
)

// DemoTable builds the session loaded at startup: three authored maps that
// exercise the interesting grid shapes (plain, sub-cell offset, rotated at
// elevation) plus a few seeded side maps scattered around them.
func DemoTable(seed int64) *Table {
	t := NewTable()

	t.AddMap(&TableMap{
		ID:   "dungeon",
		Name: "Dungeon Level 1",
		Grid: MapGridConfig{
			CellSize:    32,
			PixelWidth:  640,
			PixelHeight: 640,
			FogWidth:    20,
			FogHeight:   20,
		},
	})
	// Quarter-cell grid offset: the rendered lines do not pass through the
	// map center, so snapping has to honor the alignment shift.
	t.AddMap(&TableMap{
		ID:       "cavern",
		Name:     "Cavern of Echoes",
		Position: Vec3{X: 26, Z: 3},
		Grid: MapGridConfig{
			CellSize:    50,
			GridOffsetX: 12.5,
			GridOffsetY: 12.5,
			PixelWidth:  800,
			PixelHeight: 600,
			FogWidth:    16,
			FogHeight:   12,
		},
	})
	// Rotated overlook floating above the table plane.
	t.AddMap(&TableMap{
		ID:       "keep",
		Name:     "Watchtower Keep",
		Position: Vec3{X: 8, Y: 1.5, Z: -18},
		Rotation: Vec3{Y: math.Pi / 4},
		Grid: MapGridConfig{
			CellSize:    64,
			PixelWidth:  768,
			PixelHeight: 768,
			FogWidth:    12,
			FogHeight:   12,
		},
	})

	scatterSideMaps(t, seed)
	return t
}

// scatterSideMaps drops small handout maps around the authored ones,
// rejecting spots that would overlap an existing surface.
func scatterSideMaps(t *Table, seed int64) {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- demo content only
	names := []string{"Crypt Annex", "Forest Clearing", "Smuggler's Cove"}

	placed := 0
	for attempt := 0; attempt < 40 && placed < len(names); attempt++ {
		cells := 6 + rng.Intn(5)
		m := &TableMap{
			ID:       fmt.Sprintf("side-%d", placed+1),
			Name:     names[placed],
			Position: Vec3{X: -40 + rng.Float64()*80, Z: -35 + rng.Float64()*70},
			Grid: MapGridConfig{
				CellSize:    40,
				PixelWidth:  cells * 40,
				PixelHeight: cells * 40,
				FogWidth:    cells,
				FogHeight:   cells,
			},
		}
		if overlapsAnyMap(t, m) {
			continue
		}
		t.AddMap(m)
		placed++
	}
}

// overlapsAnyMap tests a candidate footprint against every placed map,
// with a one-cell margin so neighboring grids stay visually separate.
func overlapsAnyMap(t *Table, cand *TableMap) bool {
	cMinX, cMinZ, cMaxX, cMaxZ := cand.SurfaceAABB()
	for _, m := range t.Maps() {
		minX, minZ, maxX, maxZ := m.SurfaceAABB()
		if cMaxX+1 < minX || cMinX-1 > maxX || cMaxZ+1 < minZ || cMinZ-1 > maxZ {
			continue
		}
		return true
	}
	return false
}
