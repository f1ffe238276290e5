package tabletop

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// Fog rows wider than this are summarized instead of printed cell by cell.
const reportMapMaxWidth = 48

// FogReport renders a plain-text coverage report for every map on the
// table, suitable for pasting into session notes.
func FogReport(t *Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Tablefog coverage report ---\n")
	fmt.Fprintf(&b, "maps=%d\n\n", t.MapCount())

	for _, m := range t.Maps() {
		fmt.Fprintf(&b, "== %s (%s) ==\n", m.ID, m.Name)
		fmt.Fprintf(&b, "grid: %dx%d cells  cell=%.0fpx  offset=(%.1f,%.1f)  elevation=%.1f\n",
			m.Grid.FogWidth, m.Grid.FogHeight, m.Grid.CellSize,
			m.Grid.GridOffsetX, m.Grid.GridOffsetY, m.Position.Y)
		if m.Fog == nil {
			b.WriteString("fog: untouched (all revealed)\n\n")
			continue
		}
		total := m.Grid.FogWidth * m.Grid.FogHeight
		revealed := m.Fog.CountRevealed(m.Grid.FogWidth, m.Grid.FogHeight)
		pct := 0
		if total > 0 {
			pct = revealed * 100 / total
		}
		fmt.Fprintf(&b, "fog: v%d  revealed=%d/%d (%d%%)  hidden=%d\n",
			m.FogVersion, revealed, total, pct, total-revealed)
		if m.Grid.FogWidth <= reportMapMaxWidth {
			writeShroudRows(&b, m)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// writeShroudRows prints one line per fog row, '.' for revealed and '#'
// for covered, top row first.
func writeShroudRows(b *strings.Builder, m *TableMap) {
	for y := 0; y < m.Grid.FogHeight; y++ {
		b.WriteString("  ")
		for x := 0; x < m.Grid.FogWidth; x++ {
			if m.Fog.RevealedAt(x, y, m.Grid.FogWidth, m.Grid.FogHeight) {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
}

// CopyFogReport places the coverage report on the system clipboard.
func CopyFogReport(t *Table) error {
	if err := clipboard.WriteAll(FogReport(t)); err != nil {
		return fmt.Errorf("copy fog report: %w", err)
	}
	return nil
}
