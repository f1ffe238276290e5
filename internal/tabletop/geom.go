package tabletop

import "math"

// Vec3 is a point or offset in world space. The table surface lies on the
// X/Z plane; Y is elevation. One world unit spans one grid cell.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// RotateY returns v rotated by angle radians about the Y axis.
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// GridPoint is a map-local point on the ground plane, in cell units.
type GridPoint struct {
	X, Z float64
}

// frac maps x into [0, 1), keeping the fractional part for negatives too.
func frac(x float64) float64 {
	return x - math.Floor(x)
}
