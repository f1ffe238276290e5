package tabletop

import (
	"math"
	"strings"
	"testing"
)

func TestDemoTable_AuthoredMaps(t *testing.T) {
	tbl := DemoTable(1)

	d, ok := tbl.Surface("dungeon")
	if !ok || d.Grid.FogWidth != 20 || d.Grid.FogHeight != 20 {
		t.Fatal("expected a 20x20 dungeon")
	}
	c, ok := tbl.Surface("cavern")
	if !ok || !near(c.Grid.GridOffsetX, 12.5) || !near(c.Grid.GridOffsetY, 12.5) {
		t.Fatal("expected the cavern grid offset by a quarter cell")
	}
	k, ok := tbl.Surface("keep")
	if !ok || !near(k.Rotation.Y, math.Pi/4) || !near(k.Position.Y, 1.5) {
		t.Fatal("expected the keep rotated and elevated")
	}

	for _, m := range tbl.Maps() {
		if m.Fog != nil || m.FogVersion != 0 {
			t.Fatalf("expected %s to start untouched, got v%d", m.ID, m.FogVersion)
		}
		if !m.Grid.Valid() {
			t.Fatalf("expected a valid grid on %s", m.ID)
		}
	}
}

func TestDemoTable_UniqueIDs(t *testing.T) {
	tbl := DemoTable(1)
	seen := map[string]bool{}
	for _, m := range tbl.Maps() {
		if seen[m.ID] {
			t.Fatalf("duplicate map ID %s", m.ID)
		}
		seen[m.ID] = true
	}
	if n := tbl.MapCount(); n < 3 || n > 6 {
		t.Fatalf("expected 3 authored maps plus at most 3 side maps, got %d", n)
	}
}

func TestDemoTable_SideMapsSquareGrids(t *testing.T) {
	tbl := DemoTable(1)
	for _, m := range tbl.Maps() {
		if !strings.HasPrefix(m.ID, "side-") {
			continue
		}
		g := m.Grid
		if g.FogWidth != g.FogHeight || g.FogWidth < 6 || g.FogWidth > 10 {
			t.Fatalf("expected %s square in 6..10 cells, got %dx%d", m.ID, g.FogWidth, g.FogHeight)
		}
		if g.CellSize != 40 || g.PixelWidth != g.FogWidth*40 {
			t.Fatalf("expected %s pixel size to match its cells, got %dpx for %d cells", m.ID, g.PixelWidth, g.FogWidth)
		}
	}
}

// Side maps are rejected when their footprint comes within one unit of any
// earlier surface, so every pair involving a side map must be separated.
func TestDemoTable_SideMapsKeepTheirDistance(t *testing.T) {
	tbl := DemoTable(1)
	maps := tbl.Maps()
	for i, a := range maps {
		for _, b := range maps[i+1:] {
			if !strings.HasPrefix(a.ID, "side-") && !strings.HasPrefix(b.ID, "side-") {
				continue
			}
			aMinX, aMinZ, aMaxX, aMaxZ := a.SurfaceAABB()
			bMinX, bMinZ, bMaxX, bMaxZ := b.SurfaceAABB()
			sep := aMaxX+1 < bMinX || aMinX-1 > bMaxX || aMaxZ+1 < bMinZ || aMinZ-1 > bMaxZ
			if !sep {
				t.Fatalf("expected %s and %s separated, got AABBs (%.1f,%.1f,%.1f,%.1f) and (%.1f,%.1f,%.1f,%.1f)",
					a.ID, b.ID, aMinX, aMinZ, aMaxX, aMaxZ, bMinX, bMinZ, bMaxX, bMaxZ)
			}
		}
	}
}

func TestDemoTable_Deterministic(t *testing.T) {
	one := DemoTable(7)
	two := DemoTable(7)

	if one.MapCount() != two.MapCount() {
		t.Fatalf("expected identical layouts, got %d vs %d maps", one.MapCount(), two.MapCount())
	}
	for _, m := range one.Maps() {
		peer, ok := two.Surface(m.ID)
		if !ok {
			t.Fatalf("expected %s in both tables", m.ID)
		}
		if !near(m.Position.X, peer.Position.X) || !near(m.Position.Z, peer.Position.Z) {
			t.Fatalf("expected %s at the same spot, got (%.2f,%.2f) vs (%.2f,%.2f)",
				m.ID, m.Position.X, m.Position.Z, peer.Position.X, peer.Position.Z)
		}
		if m.Grid.FogWidth != peer.Grid.FogWidth {
			t.Fatalf("expected %s with the same grid, got %d vs %d cells",
				m.ID, m.Grid.FogWidth, peer.Grid.FogWidth)
		}
	}
}
