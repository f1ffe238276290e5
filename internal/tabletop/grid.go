package tabletop

import "math"

// MapGridConfig is the immutable grid description of a battle map. Cell size
// and grid offsets are in texture pixels; fog dimensions are cell counts.
// It is owned by the map's metadata and read-only to the editor.
type MapGridConfig struct {
	CellSize    float64 // texture pixels per grid cell
	GridOffsetX float64 // sub-cell grid alignment, texture pixels
	GridOffsetY float64
	PixelWidth  int // map texture size
	PixelHeight int
	FogWidth    int // fog bitmask dimensions
	FogHeight   int
}

// CellsWide returns the map's width in grid cells. May be fractional when
// the texture is not an exact multiple of the cell size.
func (c MapGridConfig) CellsWide() float64 {
	return float64(c.PixelWidth) / c.CellSize
}

// CellsHigh returns the map's height in grid cells.
func (c MapGridConfig) CellsHigh() float64 {
	return float64(c.PixelHeight) / c.CellSize
}

// Valid reports whether the config describes a usable grid. Degenerate
// configs make every fog edit a no-op.
func (c MapGridConfig) Valid() bool {
	return c.CellSize > 0 && c.FogWidth > 0 && c.FogHeight > 0
}

// gridSnapEpsilon pulls a drag corner sitting exactly on a grid line back
// inside its own cell, so a boundary point never claims the next cell over.
const gridSnapEpsilon = 0.01

// GridCellRect converts a world-space drag from worldStart to worldEnd into
// the map-local cell rectangle it covers. Both points are translated into
// the map's local frame (undoing its Y rotation), shifted onto the rendered
// grid using the map's sub-cell alignment, and rounded outward so the
// returned corners sit on whole-cell boundaries bracketing the drag. Point
// ordering is unconstrained on either axis. Pure function.
func GridCellRect(cfg MapGridConfig, rotY float64, mapPos, worldStart, worldEnd Vec3) (GridPoint, GridPoint) {
	ls := worldStart.Sub(mapPos).RotateY(-rotY)
	le := worldEnd.Sub(mapPos).RotateY(-rotY)

	// Grid lines sit at integer+offset positions in local space. The offset
	// folds in the sub-cell grid shift and the half-extent of odd-sized maps.
	offX := frac(cfg.GridOffsetX/cfg.CellSize) + frac(cfg.CellsWide()/2)
	offZ := frac(cfg.GridOffsetY/cfg.CellSize) + frac(cfg.CellsHigh()/2)

	sx, ex := snapSpan(ls.X+offX, le.X+offX)
	sz, ez := snapSpan(ls.Z+offZ, le.Z+offZ)

	return GridPoint{X: sx - offX, Z: sz - offZ}, GridPoint{X: ex - offX, Z: ez - offZ}
}

// snapSpan rounds a 1D span outward to integer boundaries: floor on the low
// side of the drag direction, ceil minus epsilon on the high side.
func snapSpan(a, b float64) (float64, float64) {
	if a <= b {
		return math.Floor(a), math.Ceil(b) - gridSnapEpsilon
	}
	return math.Ceil(a) - gridSnapEpsilon, math.Floor(b)
}
