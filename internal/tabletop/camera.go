package tabletop

// Camera frames the table in a top-down orthographic view: world X runs
// right, world Z runs down the screen, Y is flattened away.
type Camera struct {
	X, Z  float64 // world point under the viewport center
	Zoom  float64
	ViewW int
	ViewH int
}

const (
	basePixelsPerCell = 48.0
	minZoom           = 0.5
	maxZoom           = 4.0

	// Pick rays start well above any map elevation.
	cameraRayHeight = 1000.0
)

// NewCamera centers the view on the world origin at 1x zoom.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{Zoom: 1.0, ViewW: viewW, ViewH: viewH}
}

// Scale returns screen pixels per world unit at the current zoom.
func (c *Camera) Scale() float64 {
	return basePixelsPerCell * c.Zoom
}

// Viewport returns the screen extent for edge-pan decisions.
func (c *Camera) Viewport() Viewport {
	return Viewport{W: float64(c.ViewW), H: float64(c.ViewH)}
}

// WorldToScreen projects a ground-plane point to screen coordinates.
func (c *Camera) WorldToScreen(wx, wz float64) (float64, float64) {
	s := c.Scale()
	return float64(c.ViewW)/2 + (wx-c.X)*s, float64(c.ViewH)/2 + (wz-c.Z)*s
}

// ScreenToWorld unprojects a screen point onto the ground plane.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	s := c.Scale()
	return c.X + (sx-float64(c.ViewW)/2)/s, c.Z + (sy-float64(c.ViewH)/2)/s
}

// ScreenRay shoots a pick ray straight down through a screen point.
func (c *Camera) ScreenRay(sx, sy float64) Ray {
	wx, wz := c.ScreenToWorld(sx, sy)
	return Ray{
		Origin: Vec3{X: wx, Y: cameraRayHeight, Z: wz},
		Dir:    Vec3{Y: -1},
	}
}

// ApplyPan shifts the view by a screen-space pan request.
func (c *Camera) ApplyPan(p PanRequest) {
	s := c.Scale()
	c.X += p.DX / s
	c.Z += p.DY / s
}

// Pan shifts the view by world units.
func (c *Camera) Pan(dx, dz float64) {
	c.X += dx
	c.Z += dz
}

// ZoomBy multiplies the zoom, clamped to the usable range.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom *= factor
	if c.Zoom < minZoom {
		c.Zoom = minZoom
	}
	if c.Zoom > maxZoom {
		c.Zoom = maxZoom
	}
}

// ClampTo keeps the camera center inside a world rectangle.
func (c *Camera) ClampTo(minX, minZ, maxX, maxZ float64) {
	if c.X < minX {
		c.X = minX
	}
	if c.X > maxX {
		c.X = maxX
	}
	if c.Z < minZ {
		c.Z = minZ
	}
	if c.Z > maxZ {
		c.Z = maxZ
	}
}
