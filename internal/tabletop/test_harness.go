package tabletop

import (
	"fmt"
	"time"
)

// EditorSim is a headless editing harness used by tests and the fog-report
// tool. It mirrors Game.Update but has no Ebiten dependency: gestures are
// injected as screen points, and the clock only moves when Advance is
// called, so pan timing is fully deterministic.
type EditorSim struct {
	Table  *Table
	Editor FogEditor
	Camera *Camera
	Log    *EditLog

	now time.Time
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // viewport, clock, pan tuning, applied first
	simOptMap                        // map placement, applied once the table exists
)

// SimOption is a builder function applied to an EditorSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*EditorSim)
}

// WithViewport sets the screen dimensions the camera and edge-pan see.
func WithViewport(w, h int) SimOption {
	return SimOption{simOptInfra, func(s *EditorSim) {
		s.Camera = NewCamera(w, h)
	}}
}

// WithStartTime pins the harness clock's starting instant.
func WithStartTime(t time.Time) SimOption {
	return SimOption{simOptInfra, func(s *EditorSim) {
		s.now = t
	}}
}

// WithPanSettings overrides the edge-pan tuning.
func WithPanSettings(ps PanSettings) SimOption {
	return SimOption{simOptInfra, func(s *EditorSim) {
		s.Editor = NewFogEditor(ps)
	}}
}

// WithVerbose enables per-move verbose journal entries.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *EditorSim) {
		s.Log = NewEditLog(v)
	}}
}

// WithMap places a map on the table before any gestures run.
func WithMap(m *TableMap) SimOption {
	return SimOption{simOptMap, func(s *EditorSim) {
		s.Table.AddMap(m)
		s.Log.Add(m.ID, "table", "placed",
			fmt.Sprintf("%s at (%.1f,%.1f,%.1f)", m.Name, m.Position.X, m.Position.Y, m.Position.Z), 0)
	}}
}

// NewEditorSim constructs a harness from the given options in two ordered
// passes: infrastructure first (viewport, clock, pan tuning, journal), then
// map placement.
func NewEditorSim(opts ...SimOption) *EditorSim {
	s := &EditorSim{
		Table:  NewTable(),
		Editor: NewFogEditor(DefaultPanSettings()),
		Camera: NewCamera(1280, 720),
		Log:    NewEditLog(false),
		now:    time.Unix(0, 0),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}
	for _, o := range opts {
		if o.kind == simOptMap {
			o.fn(s)
		}
	}
	return s
}

// Now returns the harness clock.
func (s *EditorSim) Now() time.Time {
	return s.now
}

// PressAt begins a drag at a screen point, journaling the outcome.
func (s *EditorSim) PressAt(sx, sy float64) {
	prev := s.Editor.State
	s.Editor = s.Editor.BeginDrag(s.Table, s.Camera.ScreenRay(sx, sy), sx, sy)
	if s.Editor.State == prev {
		s.Log.Add("--", "gesture", "miss", fmt.Sprintf("(%.0f,%.0f)", sx, sy), 0)
		return
	}
	s.logState(prev)
	s.Log.Add(s.Editor.Rect.MapID, "gesture", "begin", fmt.Sprintf("(%.0f,%.0f)", sx, sy), 0)
}

// MoveTo drags the pointer to a screen point.
func (s *EditorSim) MoveTo(sx, sy float64) {
	s.Editor = s.Editor.DragMove(s.Table, s.Camera.ScreenRay(sx, sy), sx, sy, s.Camera.Viewport(), s.now)
	if s.Editor.State == EditorDragging {
		s.Log.AddVerbose(s.Editor.Rect.MapID, "gesture", "move",
			fmt.Sprintf("(%.0f,%.0f) end (%.2f,%.2f)", sx, sy, s.Editor.Rect.WorldEnd.X, s.Editor.Rect.WorldEnd.Z), 0)
	}
}

// Release ends the drag, raising the confirm affordances.
func (s *EditorSim) Release() {
	prev := s.Editor.State
	s.Editor = s.Editor.EndDrag()
	if s.Editor.State != prev {
		s.logState(prev)
		s.Log.Add(s.Editor.Rect.MapID, "gesture", "end",
			fmt.Sprintf("buttons at (%.0f,%.0f)", s.Editor.Rect.ScreenX, s.Editor.Rect.ScreenY), 0)
	}
}

// Confirm resolves the pending rectangle with op and journals the commit.
func (s *EditorSim) Confirm(op FogOp) bool {
	prev := s.Editor.State
	mapID := s.Editor.Rect.MapID

	var before int
	if m, ok := s.Table.Surface(mapID); ok {
		before = m.Fog.CountRevealed(m.Grid.FogWidth, m.Grid.FogHeight)
	}
	ed, committed := s.Editor.Confirm(s.Table, op)
	s.Editor = ed
	if prev != s.Editor.State {
		s.logState(prev)
	}
	if !committed {
		s.Log.Add(mapID, "fog", "skipped", op.String(), 0)
		return false
	}
	m, _ := s.Table.Surface(mapID)
	after := m.Fog.CountRevealed(m.Grid.FogWidth, m.Grid.FogHeight)
	s.Log.Add(mapID, "fog", "commit",
		fmt.Sprintf("%s revealed %d → %d (v%d)", op, before, after, m.FogVersion), float64(after))
	return true
}

// CancelPending discards the rectangle without touching any fog.
func (s *EditorSim) CancelPending() {
	prev := s.Editor.State
	s.Editor = s.Editor.Cancel()
	if prev != s.Editor.State {
		s.logState(prev)
		s.Log.Add("--", "gesture", "cancel", "", 0)
	}
}

// Advance moves the clock forward and applies any pan requests owed to the
// camera, like Game.Update does each frame.
func (s *EditorSim) Advance(d time.Duration) {
	s.now = s.now.Add(d)
	ed, reqs := s.Editor.Update(s.now)
	s.Editor = ed
	for _, p := range reqs {
		s.Camera.ApplyPan(p)
		s.Log.Add(s.Editor.Rect.MapID, "pan", "auto",
			fmt.Sprintf("(%+.0f,%+.0f)", p.DX, p.DY), p.DX)
	}
}

// PanRequests advances the clock like Advance but returns the requests
// instead of applying them, for tests that inspect deltas directly.
func (s *EditorSim) PanRequests(d time.Duration) []PanRequest {
	s.now = s.now.Add(d)
	ed, reqs := s.Editor.Update(s.now)
	s.Editor = ed
	return reqs
}

// RemoveMap takes a map off the table mid-session.
func (s *EditorSim) RemoveMap(id string) {
	if s.Table.RemoveMap(id) {
		s.Log.Add(id, "table", "removed", "", 0)
	}
}

// MaskOf returns the current fog mask for a map, nil when untouched.
func (s *EditorSim) MaskOf(id string) FogMask {
	m, ok := s.Table.Surface(id)
	if !ok {
		return nil
	}
	return m.Fog
}

// CoverageOf returns the fraction of a map's cells currently covered.
func (s *EditorSim) CoverageOf(id string) float64 {
	m, ok := s.Table.Surface(id)
	if !ok {
		return 0
	}
	total := m.Grid.FogWidth * m.Grid.FogHeight
	if total <= 0 {
		return 0
	}
	revealed := m.Fog.CountRevealed(m.Grid.FogWidth, m.Grid.FogHeight)
	return float64(total-revealed) / float64(total)
}

// DragCells runs a complete press-move-release-confirm gesture between two
// screen points. Returns false when nothing was committed.
func (s *EditorSim) DragCells(x0, y0, x1, y1 float64, op FogOp) bool {
	s.PressAt(x0, y0)
	s.MoveTo(x1, y1)
	s.Release()
	return s.Confirm(op)
}

// logState records a state transition as an arrow entry.
func (s *EditorSim) logState(prev EditorState) {
	mapID := s.Editor.Rect.MapID
	if mapID == "" {
		mapID = "--"
	}
	s.Log.Add(mapID, "gesture", "state",
		fmt.Sprintf("%s → %s", prev, s.Editor.State), 0)
}
