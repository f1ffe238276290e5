package tabletop

import "math"

// Ray is a world-space ray. The top-down camera shoots straight down, but
// the math here works for any non-horizontal direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// rayPlaneHitT returns the ray parameter t >= 0 where the ray crosses the
// horizontal plane at elevation y. The bool is false when the ray runs
// parallel to the plane or the crossing lies behind the origin.
func rayPlaneHitT(r Ray, y float64) (float64, bool) {
	if math.Abs(r.Dir.Y) < 1e-12 {
		return 0, false
	}
	t := (y - r.Origin.Y) / r.Dir.Y
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RayPlaneHit returns the world point where the ray crosses the horizontal
// plane at elevation y, or false when it never does. Drag moves re-raycast
// against this plane so the rectangle can extend past the map's edge.
func RayPlaneHit(r Ray, y float64) (Vec3, bool) {
	t, ok := rayPlaneHitT(r, y)
	if !ok {
		return Vec3{}, false
	}
	return Vec3{
		X: r.Origin.X + r.Dir.X*t,
		Y: y,
		Z: r.Origin.Z + r.Dir.Z*t,
	}, true
}

// surfaceContains checks whether a world point on a map's elevation plane
// lands on the map surface itself: the point is carried into the map's
// local frame (undoing its Y rotation) and tested against the half-extents.
func surfaceContains(cfg MapGridConfig, rotY float64, mapPos, world Vec3) bool {
	if cfg.CellSize <= 0 {
		return false
	}
	local := world.Sub(mapPos).RotateY(-rotY)
	halfW := cfg.CellsWide() / 2
	halfH := cfg.CellsHigh() / 2
	return local.X >= -halfW && local.X <= halfW &&
		local.Z >= -halfH && local.Z <= halfH
}
