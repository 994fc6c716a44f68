package geom

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Axis returns the component along axis 0(X), 1(Y), or 2(Z).
func (v Vec3) Axis(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithAxis returns a copy with the given axis component replaced.
func (v Vec3) WithAxis(axis int, val float64) Vec3 {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

// AlmostEqual reports whether two scalars agree within eps.
func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// VecAlmostEqual reports whether two vectors agree componentwise within eps.
func VecAlmostEqual(a, b Vec3, eps float64) bool {
	return AlmostEqual(a.X, b.X, eps) &&
		AlmostEqual(a.Y, b.Y, eps) &&
		AlmostEqual(a.Z, b.Z, eps)
}
