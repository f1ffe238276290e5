package tabletop

import (
	"math"
	"time"
)

// Default edge-pan parameters. The app can override them from config.
const (
	autoPanDefaultBorder   = 30.0
	autoPanDefaultInterval = 100 * time.Millisecond
	autoPanDefaultStep     = 24.0
)

// PanRequest asks the camera controller for a screen-space shift.
// Positive DX pans the view right, positive DY pans it down.
type PanRequest struct {
	DX, DY float64
}

// Viewport is the screen extent edge-pan decisions are made against.
type Viewport struct {
	W, H float64
}

// PanSettings tunes the edge-pan behavior of a drag.
type PanSettings struct {
	Border   float64       // edge zone width in screen units
	Interval time.Duration // time between pan requests
	Step     float64       // screen units per request
}

// DefaultPanSettings returns the built-in edge-pan tuning.
func DefaultPanSettings() PanSettings {
	return PanSettings{
		Border:   autoPanDefaultBorder,
		Interval: autoPanDefaultInterval,
		Step:     autoPanDefaultStep,
	}
}

// panBorder caps the configured border at a tenth of the axis extent, so a
// small viewport keeps a usable center region.
func panBorder(border, extent float64) float64 {
	return math.Min(border, extent/10)
}

// panDirection returns the edge-pan direction for a pointer position, or
// (0,0) when the pointer sits away from every edge.
func panDirection(sx, sy float64, vp Viewport, border float64) (int, int) {
	dirX, dirY := 0, 0
	bx := panBorder(border, vp.W)
	if sx < bx {
		dirX = -1
	} else if sx > vp.W-bx {
		dirX = 1
	}
	by := panBorder(border, vp.H)
	if sy < by {
		dirY = -1
	} else if sy > vp.H-by {
		dirY = 1
	}
	return dirX, dirY
}

// AutoPan is the cancellable edge-pan handle armed while a drag hugs a
// viewport edge. It is a value: arming returns a new handle, polling
// returns the successor plus any requests due, stopping returns a dead
// handle. There is no global timer anywhere; the owner polls with the
// current time every update and must stop the handle when the drag ends.
type AutoPan struct {
	active   bool
	dirX     int // -1 left, 0 none, 1 right
	dirY     int // -1 up, 0 none, 1 down
	next     time.Time
	interval time.Duration
	step     float64
}

// StartAutoPan arms a handle that owes its first request one interval from
// now. Non-positive interval or step fall back to the defaults.
func StartAutoPan(now time.Time, dirX, dirY int, interval time.Duration, step float64) AutoPan {
	if interval <= 0 {
		interval = autoPanDefaultInterval
	}
	if step <= 0 {
		step = autoPanDefaultStep
	}
	return AutoPan{
		active:   true,
		dirX:     dirX,
		dirY:     dirY,
		next:     now.Add(interval),
		interval: interval,
		step:     step,
	}
}

// Stop cancels the handle. A stopped handle never fires again.
func (a AutoPan) Stop() AutoPan {
	return AutoPan{}
}

// Active reports whether the handle is armed.
func (a AutoPan) Active() bool {
	return a.active
}

// Retarget keeps the firing schedule but changes direction, for a pointer
// sliding between edge zones mid-drag.
func (a AutoPan) Retarget(dirX, dirY int) AutoPan {
	a.dirX, a.dirY = dirX, dirY
	return a
}

// Poll returns the successor handle and one request per interval elapsed
// since the last fire. A stalled frame can owe several.
func (a AutoPan) Poll(now time.Time) (AutoPan, []PanRequest) {
	if !a.active {
		return a, nil
	}
	var reqs []PanRequest
	for !a.next.After(now) {
		reqs = append(reqs, PanRequest{
			DX: float64(a.dirX) * a.step,
			DY: float64(a.dirY) * a.step,
		})
		a.next = a.next.Add(a.interval)
	}
	return a, reqs
}
