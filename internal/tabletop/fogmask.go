package tabletop

import "math"

// FogOp selects how a fog edit changes the cells under its rectangle.
type FogOp int

const (
	FogReveal FogOp = iota // set bits: cells become visible
	FogCover               // clear bits: cells hidden under the shroud
	FogToggle              // flip bits
)

// String returns a short lowercase label for journals and reports.
func (op FogOp) String() string {
	switch op {
	case FogReveal:
		return "reveal"
	case FogCover:
		return "cover"
	case FogToggle:
		return "toggle"
	}
	return "unknown"
}

// FogMask is a packed per-cell visibility bitmask: bit (idx & 31) of word
// (idx >> 5), idx = x + y*fogWidth, holds cell (x,y). 1 means revealed,
// 0 means covered. A nil mask stands for a never-edited map and reads as
// fully revealed. Masks are immutable values: every edit returns a fresh
// array, so a reader holding the old mask keeps a consistent snapshot.
//
// This file owns the packing scheme. Nothing else in the package computes
// word or bit indices.
type FogMask []uint32

// maskLen is the word count backing a w×h grid: ceil(w*h/32).
func maskLen(w, h int) int {
	return (w*h + 31) / 32
}

// NewFogMask returns the baseline mask for a w×h fog grid: every word
// all-ones, every cell revealed. Degenerate dimensions return nil.
func NewFogMask(w, h int) FogMask {
	if w <= 0 || h <= 0 {
		return nil
	}
	m := make(FogMask, maskLen(w, h))
	for i := range m {
		m[i] = ^uint32(0)
	}
	return m
}

// Revealed reports the bit for flat cell index idx. Nil masks, negative
// indices, and indices past the mask read as revealed.
func (m FogMask) Revealed(idx int) bool {
	if m == nil || idx < 0 || idx>>5 >= len(m) {
		return true
	}
	return m[idx>>5]&(1<<(uint(idx)&31)) != 0
}

// RevealedAt reports cell (x,y) in a w×h grid. Out-of-range cells read as
// revealed.
func (m FogMask) RevealedAt(x, y, w, h int) bool {
	if x < 0 || y < 0 || x >= w || y >= h {
		return true
	}
	return m.Revealed(x + y*w)
}

// CountRevealed returns how many of the w×h cells are revealed. The words
// past w*h pad the last word and are not counted.
func (m FogMask) CountRevealed(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	if m == nil {
		return w * h
	}
	n := 0
	for idx := 0; idx < w*h; idx++ {
		if m.Revealed(idx) {
			n++
		}
	}
	return n
}

// ApplyFogEdit returns a new mask with op applied to every cell inside the
// rectangle spanned by (x0,y0) and (x1,y1), given in continuous fog-grid
// coordinates (map-local cells offset by half the fog dimensions, as
// produced by GridCellRect plus the fog offset). Corner ordering is
// unconstrained; coordinates are clamped to the grid before use, so
// out-of-bounds drags never index outside the array.
//
// A nil input mask is treated as the all-revealed baseline and materialized
// before the edit. The input array is never written to. Degenerate fog
// dimensions return the input unchanged.
func ApplyFogEdit(mask FogMask, fogW, fogH int, x0, y0, x1, y1 float64, op FogOp) FogMask {
	if fogW <= 0 || fogH <= 0 {
		return mask
	}

	minX := math.Min(math.Max(math.Min(x0, x1), 0), float64(fogW))
	maxX := math.Min(math.Max(math.Max(x0, x1), 0), float64(fogW))
	minY := math.Min(math.Max(math.Min(y0, y1), 0), float64(fogH))
	maxY := math.Min(math.Max(math.Max(y0, y1), 0), float64(fogH))

	// Cell bounds centered on cell midpoints, matching how cells are
	// addressed everywhere else.
	startX := clampCell(int(math.Floor(minX+0.5)), fogW)
	endX := clampCell(int(math.Floor(maxX-0.5)), fogW)
	startY := clampCell(int(math.Floor(minY+0.5)), fogH)
	endY := clampCell(int(math.Floor(maxY-0.5)), fogH)

	var out FogMask
	if mask == nil {
		out = NewFogMask(fogW, fogH)
	} else {
		out = make(FogMask, len(mask))
		copy(out, mask)
	}

	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			idx := x + y*fogW
			word := idx >> 5
			bit := uint32(1) << (uint(idx) & 31)
			switch op {
			case FogReveal:
				out[word] |= bit
			case FogCover:
				out[word] &^= bit
			case FogToggle:
				out[word] ^= bit
			}
		}
	}
	return out
}

// clampCell bounds a cell index to [0, n-1].
func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
