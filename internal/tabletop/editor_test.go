package tabletop

import (
	"math"
	"testing"
	"time"
)

func fieldMap() *TableMap {
	return &TableMap{
		ID:   "field",
		Name: "Field",
		Grid: tenByTenGrid(),
	}
}

func makeEditorTable(t *testing.T) (*Table, FogEditor) {
	t.Helper()
	tbl := NewTable()
	tbl.AddMap(fieldMap())
	return tbl, NewFogEditor(DefaultPanSettings())
}

// downRay shoots straight down onto the ground plane at (x, z).
func downRay(x, z float64) Ray {
	return Ray{Origin: Vec3{X: x, Y: 10, Z: z}, Dir: Vec3{Y: -1}}
}

func centerVP() Viewport {
	return Viewport{W: 800, H: 600}
}

func TestBeginDrag_MissKeepsIdle(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(50, 50), 100, 100)
	if e.State != EditorIdle {
		t.Fatalf("expected idle after miss, got %s", e.State)
	}
	if e.Rect.MapID != "" {
		t.Fatalf("expected empty rect after miss, got map %q", e.Rect.MapID)
	}
}

func TestBeginDrag_HitSeedsBothCorners(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(1.2, 0.8), 640, 360)
	if e.State != EditorDragging {
		t.Fatalf("expected dragging, got %s", e.State)
	}
	if e.Rect.MapID != "field" {
		t.Fatalf("expected hit on field, got %q", e.Rect.MapID)
	}
	if !near(e.Rect.WorldStart.X, 1.2) || !near(e.Rect.WorldEnd.X, 1.2) {
		t.Fatalf("expected both corners seeded at the hit point, got start %.2f end %.2f",
			e.Rect.WorldStart.X, e.Rect.WorldEnd.X)
	}
	if e.Rect.Buttons {
		t.Fatal("confirm buttons must not show while dragging")
	}
}

func TestBeginDrag_IgnoredWhileActive(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(1, 1), 640, 360)
	e = e.BeginDrag(tbl, downRay(-2, -2), 100, 100)
	if !near(e.Rect.WorldStart.X, 1) {
		t.Fatalf("expected second press ignored, start moved to %.2f", e.Rect.WorldStart.X)
	}
}

func TestDragMove_UpdatesFarCorner(t *testing.T) {
	tbl, e := makeEditorTable(t)
	now := time.Unix(0, 0)

	e = e.BeginDrag(tbl, downRay(0.5, 0.5), 400, 300)
	e = e.DragMove(tbl, downRay(3.5, 2.5), 420, 310, centerVP(), now)

	if !near(e.Rect.WorldEnd.X, 3.5) || !near(e.Rect.WorldEnd.Z, 2.5) {
		t.Fatalf("expected end (3.5,2.5), got (%.2f,%.2f)", e.Rect.WorldEnd.X, e.Rect.WorldEnd.Z)
	}
	if !near(e.Rect.WorldStart.X, 0.5) {
		t.Fatalf("expected anchored start, got %.2f", e.Rect.WorldStart.X)
	}
	if e.Rect.ScreenX != 420 || e.Rect.ScreenY != 310 {
		t.Fatalf("expected screen anchor updated, got (%.0f,%.0f)", e.Rect.ScreenX, e.Rect.ScreenY)
	}
}

func TestDragMove_PastMapEdgeStillTracks(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(4, 4), 400, 300)
	// (9,9) is off the 10x10 surface but still on its elevation plane.
	e = e.DragMove(tbl, downRay(9, 9), 410, 310, centerVP(), time.Unix(0, 0))
	if !near(e.Rect.WorldEnd.X, 9) {
		t.Fatalf("expected rectangle to extend past the edge, got %.2f", e.Rect.WorldEnd.X)
	}
}

func TestDragMove_StaleMapIsNoOp(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(1, 1), 400, 300)
	tbl.RemoveMap("field")
	e = e.DragMove(tbl, downRay(3, 3), 410, 310, centerVP(), time.Unix(0, 0))

	if !near(e.Rect.WorldEnd.X, 1) {
		t.Fatalf("expected move ignored for vanished map, end moved to %.2f", e.Rect.WorldEnd.X)
	}
	if e.State != EditorDragging {
		t.Fatalf("expected state untouched, got %s", e.State)
	}
}

func TestDragMove_ArmsAndStopsEdgePan(t *testing.T) {
	tbl, e := makeEditorTable(t)
	now := time.Unix(0, 0)

	e = e.BeginDrag(tbl, downRay(0, 0), 400, 300)
	e = e.DragMove(tbl, downRay(1, 0), 10, 300, centerVP(), now)
	if !e.PanActive() {
		t.Fatal("expected pan armed inside the left border zone")
	}
	e = e.DragMove(tbl, downRay(1, 0), 400, 300, centerVP(), now)
	if e.PanActive() {
		t.Fatal("expected pan stopped away from every edge")
	}
}

func TestEndDrag_RaisesButtonsAndStopsPan(t *testing.T) {
	tbl, e := makeEditorTable(t)
	now := time.Unix(0, 0)

	e = e.BeginDrag(tbl, downRay(0, 0), 400, 300)
	e = e.DragMove(tbl, downRay(1, 0), 795, 300, centerVP(), now)
	if !e.PanActive() {
		t.Fatal("expected pan armed at the right edge")
	}

	e = e.EndDrag()
	if e.State != EditorConfirming {
		t.Fatalf("expected confirming, got %s", e.State)
	}
	if !e.Rect.Buttons {
		t.Fatal("expected confirm buttons raised")
	}
	if e.PanActive() {
		t.Fatal("a pending rectangle must never scroll the camera")
	}
}

func TestEndDrag_OnlyFromDragging(t *testing.T) {
	_, e := makeEditorTable(t)
	if got := e.EndDrag(); got.State != EditorIdle {
		t.Fatalf("expected idle unchanged, got %s", got.State)
	}
}

func TestConfirm_CoverCommitsCells(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(-4.9, -4.9), 400, 300)
	e = e.DragMove(tbl, downRay(4.9, 4.9), 500, 400, centerVP(), time.Unix(0, 0))
	e = e.EndDrag()
	e, committed := e.Confirm(tbl, FogCover)

	if !committed {
		t.Fatal("expected commit")
	}
	if e.State != EditorIdle {
		t.Fatalf("expected idle after confirm, got %s", e.State)
	}
	m, _ := tbl.Surface("field")
	if got := m.Fog.CountRevealed(10, 10); got != 0 {
		t.Fatalf("expected whole map covered, got %d revealed", got)
	}
	if m.FogVersion != 1 {
		t.Fatalf("expected fog version 1, got %d", m.FogVersion)
	}
}

func TestConfirm_RevealAfterCover(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(-4.9, -4.9), 0, 0)
	e = e.DragMove(tbl, downRay(4.9, 4.9), 0, 0, centerVP(), time.Unix(0, 0))
	e = e.EndDrag()
	e, _ = e.Confirm(tbl, FogCover)

	e = e.BeginDrag(tbl, downRay(-2.8, -2.8), 0, 0)
	e = e.DragMove(tbl, downRay(-0.2, -0.2), 0, 0, centerVP(), time.Unix(0, 0))
	e = e.EndDrag()
	e, committed := e.Confirm(tbl, FogReveal)

	if !committed {
		t.Fatal("expected commit")
	}
	m, _ := tbl.Surface("field")
	if got := m.Fog.CountRevealed(10, 10); got != 9 {
		t.Fatalf("expected a 3x3 room revealed, got %d", got)
	}
	if m.FogVersion != 2 {
		t.Fatalf("expected fog version 2, got %d", m.FogVersion)
	}
}

func TestConfirm_OnlyFromConfirming(t *testing.T) {
	tbl, e := makeEditorTable(t)
	e, committed := e.Confirm(tbl, FogCover)
	if committed || e.State != EditorIdle {
		t.Fatalf("expected idle no-op, got committed=%t state=%s", committed, e.State)
	}
}

func TestConfirm_StaleMapSkipsAndClears(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(1, 1), 0, 0)
	e = e.EndDrag()
	tbl.RemoveMap("field")
	e, committed := e.Confirm(tbl, FogCover)

	if committed {
		t.Fatal("expected skipped commit for vanished map")
	}
	if e.State != EditorIdle {
		t.Fatalf("expected cleared tracker, got %s", e.State)
	}
	if e.Rect.MapID != "" {
		t.Fatalf("expected rect discarded, got %q", e.Rect.MapID)
	}
}

func TestConfirm_DegenerateGridSkips(t *testing.T) {
	tbl := NewTable()
	m := fieldMap()
	m.Grid.CellSize = 0
	tbl.AddMap(m)
	e := NewFogEditor(DefaultPanSettings())

	// CellSize 0 fails the surface hit, so force the gesture by hand.
	e.State = EditorConfirming
	e.Rect = DragRect{MapID: "field", WorldStart: Vec3{X: -1, Z: -1}, WorldEnd: Vec3{X: 1, Z: 1}}

	e, committed := e.Confirm(tbl, FogCover)
	if committed {
		t.Fatal("expected degenerate grid to skip the commit")
	}
	if e.State != EditorIdle {
		t.Fatalf("expected cleared tracker, got %s", e.State)
	}
	if m.Fog != nil || m.FogVersion != 0 {
		t.Fatal("expected fog untouched")
	}
}

func TestConfirm_PreservesPanSettings(t *testing.T) {
	tbl := NewTable()
	tbl.AddMap(fieldMap())
	ps := PanSettings{Border: 50, Interval: 35 * time.Millisecond, Step: 7}
	e := NewFogEditor(ps)

	e = e.BeginDrag(tbl, downRay(1, 1), 0, 0)
	e = e.EndDrag()
	e, _ = e.Confirm(tbl, FogCover)

	if e.Pan != ps {
		t.Fatalf("expected pan tuning preserved across confirm, got %+v", e.Pan)
	}
}

func TestConfirm_ToggleOnUntouchedMap(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(-2.8, -2.8), 0, 0)
	e = e.DragMove(tbl, downRay(-0.2, -0.2), 0, 0, centerVP(), time.Unix(0, 0))
	e = e.EndDrag()
	_, committed := e.Confirm(tbl, FogToggle)

	if !committed {
		t.Fatal("expected commit")
	}
	m, _ := tbl.Surface("field")
	if got := m.Fog.CountRevealed(10, 10); got != 91 {
		t.Fatalf("expected 9 cells toggled dark against the baseline, got %d revealed", got)
	}
}

func TestCancel_FromAnyActivePhase(t *testing.T) {
	tbl, e := makeEditorTable(t)

	e = e.BeginDrag(tbl, downRay(1, 1), 0, 0)
	e = e.Cancel()
	if e.State != EditorIdle || e.Rect.MapID != "" {
		t.Fatalf("expected idle with cleared rect, got %s %q", e.State, e.Rect.MapID)
	}

	e = e.BeginDrag(tbl, downRay(1, 1), 0, 0)
	e = e.EndDrag()
	e = e.Cancel()
	if e.State != EditorIdle {
		t.Fatalf("expected idle after cancelling confirmation, got %s", e.State)
	}
	m, _ := tbl.Surface("field")
	if m.Fog != nil {
		t.Fatal("cancel must never touch fog")
	}
}

func TestConfirm_RotatedMapLandsOnLocalCells(t *testing.T) {
	tbl := NewTable()
	m := fieldMap()
	m.Rotation = Vec3{Y: math.Pi / 2}
	tbl.AddMap(m)
	e := NewFogEditor(DefaultPanSettings())

	e = e.BeginDrag(tbl, downRay(0.2, 0.2), 0, 0)
	e = e.DragMove(tbl, downRay(1.8, 1.8), 0, 0, centerVP(), time.Unix(0, 0))
	e = e.EndDrag()
	_, committed := e.Confirm(tbl, FogCover)

	if !committed {
		t.Fatal("expected commit")
	}
	if got := m.Fog.CountRevealed(10, 10); got != 96 {
		t.Fatalf("expected a 2x2 block covered through the rotation, got %d revealed", got)
	}
	// World +X/+Z maps to local columns 3..4, rows 5..6 under the quarter turn.
	if m.Fog.RevealedAt(3, 5, 10, 10) || m.Fog.RevealedAt(4, 6, 10, 10) {
		t.Fatal("expected rotated block covered")
	}
	if !m.Fog.RevealedAt(5, 5, 10, 10) {
		t.Fatal("expected cells outside the rotated block untouched")
	}
}
