package tabletop

import (
	"image/color"
	"time"
)

// EditorState is the phase of the fog drag gesture machine.
type EditorState int

const (
	EditorIdle       EditorState = iota
	EditorDragging               // pointer down, rectangle growing
	EditorConfirming             // pointer released, awaiting cover/uncover/cancel
)

// String returns a short label for journals.
func (s EditorState) String() string {
	switch s {
	case EditorIdle:
		return "idle"
	case EditorDragging:
		return "dragging"
	case EditorConfirming:
		return "confirming"
	}
	return "unknown"
}

// fogDragColor tints the in-progress rectangle.
var fogDragColor = color.RGBA{R: 255, G: 196, B: 64, A: 255}

// DragRect is the transient rectangle of an in-progress fog gesture. The
// map is referenced by ID only; it can vanish mid-gesture and later steps
// must tolerate that.
type DragRect struct {
	MapID      string
	WorldStart Vec3
	WorldEnd   Vec3
	ScreenX    float64 // last pointer position, anchors the confirm buttons
	ScreenY    float64
	Color      color.RGBA
	Buttons    bool // confirm affordances showing
}

// FogStore is the slice of the table the editor needs: hit-testing for
// gesture starts, surface lookup for grid math, wholesale fog commits.
type FogStore interface {
	HitTest(r Ray) (string, Vec3, bool)
	Surface(id string) (*TableMap, bool)
	CommitFog(id string, mask FogMask) bool
}

// FogEditor is the drag-gesture state machine. It is a value object: every
// event handler takes the current value and returns the successor, so the
// owner decides where state lives and no transition hides inside a method
// side effect. Failures (hit-test miss, stale map, degenerate grid) absorb
// into no-op transitions; nothing here returns an error.
type FogEditor struct {
	State EditorState
	Rect  DragRect
	Pan   PanSettings

	pan AutoPan
}

// NewFogEditor returns an idle editor with the given edge-pan tuning.
func NewFogEditor(ps PanSettings) FogEditor {
	return FogEditor{Pan: ps}
}

// BeginDrag starts a gesture at a screen point whose pick ray hits a map.
// On a miss the gesture is ignored and the editor stays idle. The hit point
// seeds both corners of the rectangle.
func (e FogEditor) BeginDrag(store FogStore, r Ray, sx, sy float64) FogEditor {
	if e.State != EditorIdle {
		return e
	}
	id, pt, ok := store.HitTest(r)
	if !ok {
		return e
	}
	e.State = EditorDragging
	e.Rect = DragRect{
		MapID:      id,
		WorldStart: pt,
		WorldEnd:   pt,
		ScreenX:    sx,
		ScreenY:    sy,
		Color:      fogDragColor,
	}
	return e
}

// DragMove updates the rectangle's far corner by re-raycasting against the
// horizontal plane at the dragged map's elevation, so the rectangle can
// extend past the map's edge. Near a viewport edge the pan handle is armed
// or retargeted; away from every edge it is stopped. A vanished map makes
// the move a silent no-op.
func (e FogEditor) DragMove(store FogStore, r Ray, sx, sy float64, vp Viewport, now time.Time) FogEditor {
	if e.State != EditorDragging {
		return e
	}
	m, ok := store.Surface(e.Rect.MapID)
	if !ok {
		return e
	}
	pt, ok := RayPlaneHit(r, m.Position.Y)
	if !ok {
		return e
	}
	e.Rect.WorldEnd = pt
	e.Rect.ScreenX = sx
	e.Rect.ScreenY = sy

	dirX, dirY := panDirection(sx, sy, vp, e.Pan.Border)
	switch {
	case dirX == 0 && dirY == 0:
		e.pan = e.pan.Stop()
	case !e.pan.Active():
		e.pan = StartAutoPan(now, dirX, dirY, e.Pan.Interval, e.Pan.Step)
	default:
		e.pan = e.pan.Retarget(dirX, dirY)
	}
	return e
}

// Update advances the pan schedule. Call once per frame with the current
// time; requests owed since the last call come back for the camera.
func (e FogEditor) Update(now time.Time) (FogEditor, []PanRequest) {
	if e.State != EditorDragging || !e.pan.Active() {
		return e, nil
	}
	p, reqs := e.pan.Poll(now)
	e.pan = p
	return e, reqs
}

// EndDrag freezes the rectangle and raises the confirm affordances at the
// last pointer position. The pan handle is stopped here; a rectangle
// awaiting confirmation never scrolls the camera.
func (e FogEditor) EndDrag() FogEditor {
	if e.State != EditorDragging {
		return e
	}
	e.pan = e.pan.Stop()
	e.State = EditorConfirming
	e.Rect.Buttons = true
	return e
}

// Confirm resolves the pending rectangle with op: the drag corners are
// snapped to grid cells, shifted into fog coordinates, applied through
// ApplyFogEdit, and the fresh mask committed to the store. The editor
// returns to idle either way; a stale map or degenerate grid skips the
// commit. The bool reports whether a commit happened.
func (e FogEditor) Confirm(store FogStore, op FogOp) (FogEditor, bool) {
	if e.State != EditorConfirming {
		return e, false
	}
	next := FogEditor{Pan: e.Pan}

	m, ok := store.Surface(e.Rect.MapID)
	if !ok || !m.Grid.Valid() {
		return next, false
	}
	gs, ge := GridCellRect(m.Grid, m.Rotation.Y, m.Position, e.Rect.WorldStart, e.Rect.WorldEnd)
	halfW := float64(m.Grid.FogWidth) / 2
	halfH := float64(m.Grid.FogHeight) / 2
	mask := ApplyFogEdit(m.Fog, m.Grid.FogWidth, m.Grid.FogHeight,
		gs.X+halfW, gs.Z+halfH, ge.X+halfW, ge.Z+halfH, op)
	if !store.CommitFog(e.Rect.MapID, mask) {
		return next, false
	}
	return next, true
}

// Cancel discards the rectangle without touching any fog. Valid both for a
// pending confirmation and for aborting an in-flight drag.
func (e FogEditor) Cancel() FogEditor {
	if e.State == EditorIdle {
		return e
	}
	return FogEditor{Pan: e.Pan}
}

// PanActive reports whether the edge-pan handle is armed.
func (e FogEditor) PanActive() bool {
	return e.pan.Active()
}
