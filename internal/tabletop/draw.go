package tabletop

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func (g *Game) Draw(screen *ebiten.Image) {
	// Window background: dark table felt.
	screen.Fill(color.RGBA{R: 14, G: 18, B: 14, A: 255})

	g.drawTableCloth(screen)

	// Low elevation first so stacked maps layer correctly.
	for _, m := range g.table.Maps() {
		g.drawMapSurface(screen, m)
		if g.showGrid {
			g.drawMapGrid(screen, m)
		}
		if g.showFog {
			g.drawFogOverlay(screen, m)
		}
		g.drawMapLabel(screen, m)
	}

	g.drawDragRect(screen)

	if g.editor.State == EditorConfirming {
		g.drawConfirmButtons(screen)
	}

	if g.showHUD {
		g.drawHUD(screen)
	}

	// Zoom indicator.
	if g.camera.Zoom != 1.0 {
		label := fmt.Sprintf("zoom: %.1fx", g.camera.Zoom)
		ebitenutil.DebugPrintAt(screen, label, g.width-len(label)*6-10, 6)
	}
}

// drawTableCloth rules a faint reference grid across the visible felt so
// camera motion reads even where no map is in view.
func (g *Game) drawTableCloth(screen *ebiten.Image) {
	const spacing = 4.0 // world units between cloth lines
	fine := color.RGBA{R: 20, G: 27, B: 20, A: 255}
	coarse := color.RGBA{R: 27, G: 37, B: 27, A: 255}

	wx0, wz0 := g.camera.ScreenToWorld(0, 0)
	wx1, wz1 := g.camera.ScreenToWorld(float64(g.width), float64(g.height))

	for x := math.Floor(wx0/spacing) * spacing; x <= wx1; x += spacing {
		sx, _ := g.camera.WorldToScreen(x, wz0)
		c := fine
		if math.Mod(math.Abs(x), spacing*4) < spacing/2 {
			c = coarse
		}
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(g.height), 1.0, c, false)
	}
	for z := math.Floor(wz0/spacing) * spacing; z <= wz1; z += spacing {
		_, sy := g.camera.WorldToScreen(wx0, z)
		c := fine
		if math.Mod(math.Abs(z), spacing*4) < spacing/2 {
			c = coarse
		}
		vector.StrokeLine(screen, 0, float32(sy), float32(g.width), float32(sy), 1.0, c, false)
	}
}

func (g *Game) drawMapSurface(screen *ebiten.Image, m *TableMap) {
	hw := m.Grid.CellsWide() / 2
	hh := m.Grid.CellsHigh() / 2
	quad := g.localQuad(m, -hw, -hh, hw, hh)

	// Parchment surface.
	g.fillQuad(screen, quad, color.RGBA{R: 198, G: 186, B: 156, A: 255}, 1.0)

	borderCol := color.RGBA{R: 96, G: 80, B: 52, A: 255}
	g.strokeQuad(screen, quad, 2.0, borderCol)
}

// drawMapGrid rules the map's own cell grid. Lines sit exactly where drag
// snapping lands, sub-cell alignment included, so the preview never drifts
// off the rendered grid.
func (g *Game) drawMapGrid(screen *ebiten.Image, m *TableMap) {
	if !m.Grid.Valid() {
		return
	}
	hw := m.Grid.CellsWide() / 2
	hh := m.Grid.CellsHigh() / 2
	offX := frac(m.Grid.GridOffsetX/m.Grid.CellSize) + frac(m.Grid.CellsWide()/2)
	offZ := frac(m.Grid.GridOffsetY/m.Grid.CellSize) + frac(m.Grid.CellsHigh()/2)

	gridCol := color.RGBA{R: 126, G: 112, B: 84, A: 255}
	for k := math.Ceil(-hw + offX); k-offX <= hw+1e-9; k++ {
		x := k - offX
		ax, ay := g.mapToScreen(m, x, -hh)
		bx, by := g.mapToScreen(m, x, hh)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1.0, gridCol, false)
	}
	for k := math.Ceil(-hh + offZ); k-offZ <= hh+1e-9; k++ {
		z := k - offZ
		ax, ay := g.mapToScreen(m, -hw, z)
		bx, by := g.mapToScreen(m, hw, z)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1.0, gridCol, false)
	}
}

// drawFogOverlay blits the cached shroud texture over covered cells. One
// texel per fog cell; the GeoM chain maps texels through map rotation and
// the camera in a single draw.
func (g *Game) drawFogOverlay(screen *ebiten.Image, m *TableMap) {
	if m.Fog == nil || !m.Grid.Valid() {
		return
	}
	img := g.textures.Overlay(m)
	if img == nil {
		return
	}
	fw := float64(m.Grid.FogWidth)
	fh := float64(m.Grid.FogHeight)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-fw/2, -fh/2)
	op.GeoM.Scale(m.Grid.CellsWide()/fw, m.Grid.CellsHigh()/fh)
	op.GeoM.Rotate(-m.Rotation.Y)
	op.GeoM.Translate(m.Position.X-g.camera.X, m.Position.Z-g.camera.Z)
	s := g.camera.Scale()
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(float64(g.width)/2, float64(g.height)/2)
	screen.DrawImage(img, op)
}

func (g *Game) drawMapLabel(screen *ebiten.Image, m *TableMap) {
	hw := m.Grid.CellsWide() / 2
	hh := m.Grid.CellsHigh() / 2
	quad := g.localQuad(m, -hw, -hh, hw, hh)

	// Hang the label over the topmost on-screen corner.
	lx, ly := quad[0][0], quad[0][1]
	for _, p := range quad[1:] {
		if p[1] < ly {
			lx, ly = p[0], p[1]
		}
	}
	ebitenutil.DebugPrintAt(screen, m.Name, int(lx), int(ly)-16)
}

// drawDragRect previews the snapped cell rectangle of the gesture in
// progress, in the map's own frame.
func (g *Game) drawDragRect(screen *ebiten.Image) {
	if g.editor.State == EditorIdle {
		return
	}
	r := g.editor.Rect
	m, ok := g.table.Surface(r.MapID)
	if !ok || !m.Grid.Valid() {
		return
	}
	gs, ge := GridCellRect(m.Grid, m.Rotation.Y, m.Position, r.WorldStart, r.WorldEnd)
	minX := math.Min(gs.X, ge.X)
	maxX := math.Max(gs.X, ge.X)
	minZ := math.Min(gs.Z, ge.Z)
	maxZ := math.Max(gs.Z, ge.Z)
	quad := g.localQuad(m, minX, minZ, maxX, maxZ)

	g.fillQuad(screen, quad, r.Color, 0.28)
	g.strokeQuad(screen, quad, 1.5, r.Color)
}

func (g *Game) drawConfirmButtons(screen *ebiten.Image) {
	for _, b := range g.confirmButtons() {
		vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h),
			color.RGBA{R: 28, G: 32, B: 28, A: 235}, false)
		vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h),
			1.0, color.RGBA{R: 148, G: 158, B: 138, A: 255}, false)

		op := &text.DrawOptions{}
		// Face7x13 advance is 7px; center the label in the button.
		op.GeoM.Translate(b.x+(b.w-float64(len(b.label))*7)/2, b.y+3)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, b.label, g.buttonFace, op)
	}
}

// whiteSubImage is the solid source for quad fills, cut from the center of
// a larger white image so antialiased sampling never bleeds past its edge.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// fillQuad paints a convex quad through the shared offscreen buffer so tint
// and opacity apply once on composite, without additive blowout.
func (g *Game) fillQuad(screen *ebiten.Image, quad [4][2]float64, tint color.RGBA, opacity float64) {
	buf := g.quadBuf
	buf.Clear()

	var path vector.Path
	path.MoveTo(float32(quad[0][0]), float32(quad[0][1]))
	for i := 1; i < len(quad); i++ {
		path.LineTo(float32(quad[i][0]), float32(quad[i][1]))
	}
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = 1
		vs[i].ColorG = 1
		vs[i].ColorB = 1
		vs[i].ColorA = 1
	}
	buf.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleWithColor(tint)
	opts.ColorScale.ScaleAlpha(float32(opacity))
	screen.DrawImage(buf, opts)
}

func (g *Game) strokeQuad(screen *ebiten.Image, quad [4][2]float64, width float32, c color.RGBA) {
	for i := 0; i < len(quad); i++ {
		a := quad[i]
		b := quad[(i+1)%len(quad)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), width, c, false)
	}
}

// localQuad projects a map-local rectangle to its four screen corners.
func (g *Game) localQuad(m *TableMap, minX, minZ, maxX, maxZ float64) [4][2]float64 {
	locals := [4]Vec3{
		{X: minX, Z: minZ},
		{X: maxX, Z: minZ},
		{X: maxX, Z: maxZ},
		{X: minX, Z: maxZ},
	}
	var quad [4][2]float64
	for i, l := range locals {
		w := l.RotateY(m.Rotation.Y).Add(m.Position)
		sx, sy := g.camera.WorldToScreen(w.X, w.Z)
		quad[i] = [2]float64{sx, sy}
	}
	return quad
}

func (g *Game) mapToScreen(m *TableMap, x, z float64) (float64, float64) {
	w := (Vec3{X: x, Z: z}).RotateY(m.Rotation.Y).Add(m.Position)
	return g.camera.WorldToScreen(w.X, w.Z)
}
