package tabletop

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"
)

// Game is the interactive ebiten shell around the fog editor: it owns the
// table, translates mouse state into gesture events, applies pan requests
// to the camera, and renders the session.
type Game struct {
	width  int
	height int

	table    *Table
	editor   FogEditor
	camera   *Camera
	textures *FogTextureCache
	log      logrus.FieldLogger

	// Display toggles.
	showGrid bool
	showFog  bool
	showHUD  bool

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool // for edge-triggered press/release detection

	buttonFace text.Face

	// Offscreen buffer for tinted quad fills (map surfaces, drag rect).
	quadBuf *ebiten.Image

	// Injectable clock so pan timing stays testable.
	now func() time.Time
}

// New builds the interactive session from config.
func New(cfg Config, log logrus.FieldLogger) (*Game, error) {
	w, h := cfg.Window.Width, cfg.Window.Height
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 720
	}
	textures, err := NewFogTextureCache(cfg.Cache.MaxCostMB)
	if err != nil {
		return nil, err
	}
	g := &Game{
		width:      w,
		height:     h,
		table:      DemoTable(cfg.Demo.Seed),
		editor:     NewFogEditor(cfg.PanSettings()),
		camera:     NewCamera(w, h),
		textures:   textures,
		log:        log,
		showGrid:   true,
		showFog:    true,
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		buttonFace: text.NewGoXFace(basicfont.Face7x13),
		quadBuf:    ebiten.NewImage(w, h),
		now:        time.Now,
	}
	// Default camera: whole table in view.
	minX, minZ, maxX, maxZ := g.table.Bounds()
	g.camera.X = (minX + maxX) / 2
	g.camera.Z = (minZ + maxZ) / 2
	g.camera.Zoom = 0.5
	return g, nil
}

func (g *Game) Update() error {
	g.handleInput()

	// Edge-pan requests owed since the last frame.
	ed, reqs := g.editor.Update(g.now())
	g.editor = ed
	for _, p := range reqs {
		g.camera.ApplyPan(p)
		g.log.WithFields(logrus.Fields{"dx": p.DX, "dy": p.DY}).Debug("auto pan")
	}

	minX, minZ, maxX, maxZ := g.table.Bounds()
	g.camera.ClampTo(minX, minZ, maxX, maxZ)
	return nil
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	edge := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// Display toggles.
	if edge(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if edge(ebiten.KeyF) {
		g.showFog = !g.showFog
	}
	if edge(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// I: copy the fog coverage report to the clipboard.
	if edge(ebiten.KeyI) {
		if err := CopyFogReport(g.table); err != nil {
			g.log.WithError(err).Warn("clipboard copy failed")
		} else {
			g.log.Info("fog report copied to clipboard")
		}
	}

	// Camera pan: WASD or arrow keys, slower when zoomed in.
	panSpeed := 0.25 / g.camera.Zoom
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Pan(0, panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Pan(panSpeed, 0)
	}

	// Camera zoom: mouse wheel or =/- keys.
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camera.ZoomBy(math.Pow(1.12, wy))
	}
	if edge(ebiten.KeyEqual) {
		g.camera.ZoomBy(1.25)
	}
	if edge(ebiten.KeyMinus) {
		g.camera.ZoomBy(1 / 1.25)
	}

	// Poll gesture keys every frame so edge detection stays in step, then
	// gate the actions on the editor phase.
	escPressed := edge(ebiten.KeyEscape)
	cPressed := edge(ebiten.KeyC)
	vPressed := edge(ebiten.KeyV)
	tPressed := edge(ebiten.KeyT)

	// Escape aborts the gesture in any phase.
	if escPressed && g.editor.State != EditorIdle {
		g.editor = g.editor.Cancel()
		g.log.Debug("fog edit cancelled")
	}

	// Keyboard resolution of a pending rectangle.
	if g.editor.State == EditorConfirming {
		switch {
		case cPressed:
			g.resolvePending(FogCover, false)
		case vPressed:
			g.resolvePending(FogReveal, false)
		case tPressed:
			g.resolvePending(FogToggle, false)
		}
	}

	g.handleMouse()
	g.prevKeys = currentKeys
}

// handleMouse turns raw mouse state into gesture events.
func (g *Game) handleMouse() {
	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)

	if mouseLeft && !g.prevMouseLeft {
		switch g.editor.State {
		case EditorConfirming:
			for _, b := range g.confirmButtons() {
				if pointInRect(fx, fy, b.x, b.y, b.w, b.h) {
					g.resolvePending(b.op, b.cancel)
					break
				}
			}
		case EditorIdle:
			g.editor = g.editor.BeginDrag(g.table, g.camera.ScreenRay(fx, fy), fx, fy)
			if g.editor.State == EditorDragging {
				g.log.WithField("map", g.editor.Rect.MapID).Debug("fog drag started")
			}
		}
	}
	if mouseLeft && g.editor.State == EditorDragging {
		g.editor = g.editor.DragMove(g.table, g.camera.ScreenRay(fx, fy), fx, fy,
			g.camera.Viewport(), g.now())
	}
	if !mouseLeft && g.prevMouseLeft && g.editor.State == EditorDragging {
		g.editor = g.editor.EndDrag()
	}
	g.prevMouseLeft = mouseLeft
}

// resolvePending finishes the awaiting rectangle with op, or discards it.
func (g *Game) resolvePending(op FogOp, cancel bool) {
	if cancel {
		g.editor = g.editor.Cancel()
		g.log.Debug("fog edit cancelled")
		return
	}
	mapID := g.editor.Rect.MapID
	ed, committed := g.editor.Confirm(g.table, op)
	g.editor = ed
	if !committed {
		g.log.WithField("map", mapID).Warn("fog edit skipped, map gone or grid unusable")
		return
	}
	m, _ := g.table.Surface(mapID)
	g.log.WithFields(logrus.Fields{
		"map":      mapID,
		"op":       op.String(),
		"version":  m.FogVersion,
		"revealed": m.Fog.CountRevealed(m.Grid.FogWidth, m.Grid.FogHeight),
	}).Info("fog committed")
}

// confirmButton is one affordance shown while a rectangle awaits
// confirmation.
type confirmButton struct {
	x, y, w, h float64
	label      string
	op         FogOp
	cancel     bool
}

// confirmButtons lays the affordances out under the frozen pointer
// position, nudged inside the viewport so they stay clickable when the
// drag ended at an edge.
func (g *Game) confirmButtons() []confirmButton {
	const (
		bw  = 64.0
		bh  = 20.0
		gap = 6.0
	)
	r := g.editor.Rect
	x := r.ScreenX - (3*bw+2*gap)/2
	y := r.ScreenY + 14
	if x < 4 {
		x = 4
	}
	if limit := float64(g.width) - (3*bw + 2*gap) - 4; x > limit {
		x = limit
	}
	if y < 4 {
		y = 4
	}
	if limit := float64(g.height) - bh - 4; y > limit {
		y = limit
	}
	return []confirmButton{
		{x: x, y: y, w: bw, h: bh, label: "Cover", op: FogCover},
		{x: x + bw + gap, y: y, w: bw, h: bh, label: "Uncover", op: FogReveal},
		{x: x + 2*(bw+gap), y: y, w: bw, h: bh, label: "Cancel", cancel: true},
	}
}

// pointInRect reports whether (px,py) lies inside the rectangle.
func pointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
