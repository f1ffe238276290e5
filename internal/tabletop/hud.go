package tabletop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("FOG EDITOR: %s   maps: %d", g.editor.State, g.table.MapCount()),
	}
	for _, m := range g.table.Maps() {
		cov := "untouched"
		if m.Fog != nil {
			total := m.Grid.FogWidth * m.Grid.FogHeight
			hidden := total - m.Fog.CountRevealed(m.Grid.FogWidth, m.Grid.FogHeight)
			cov = fmt.Sprintf("%3d%% hidden  v%d", hidden*100/total, m.FogVersion)
		}
		lines = append(lines, fmt.Sprintf("  %-16s %s", m.Name, cov))
	}
	lines = append(lines,
		"LMB drag=fog rect  C=cover V=uncover T=toggle",
		"Esc=cancel  [G]rid [F]og [I] copy report",
		"[H] toggle HUD",
		"WASD/arrows=pan  scroll/-/= zoom",
		fmt.Sprintf("zoom: %.1fx", g.camera.Zoom),
	)

	const lineH = 12 // debug font line height
	const charW = 6  // debug font char width
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	bx := float32(4)
	by := float32(g.height) - boxH - 4

	// Panel background.
	vector.DrawFilledRect(screen, bx, by, boxW, boxH,
		color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	// Inner highlight line along top edge.
	vector.StrokeLine(screen, bx+1, by+1, bx+boxW-1, by+1,
		1.0, color.RGBA{R: 80, G: 140, B: 80, A: 80}, false)

	for i, line := range lines {
		tx := int(bx) + padX
		ty := int(by) + padY + i*lineH
		ebitenutil.DebugPrintAt(screen, line, tx, ty)
	}
}
