package geom

import "fmt"

// Box3 is an axis-aligned box, Min componentwise <= Max.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// NewBox3 returns the box spanning two opposite corners in any order.
func NewBox3(a, b Vec3) Box3 {
	box := Box3{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the box length along one axis.
func (b Box3) Extent(axis int) float64 {
	return b.Max.Axis(axis) - b.Min.Axis(axis)
}

// LargestExtent returns the longest box dimension.
func (b Box3) LargestExtent() float64 {
	out := b.Extent(0)
	for axis := 1; axis < 3; axis++ {
		if e := b.Extent(axis); e > out {
			out = e
		}
	}
	return out
}

// Contains reports whether p lies inside or on the box within eps.
func (b Box3) Contains(p Vec3, eps float64) bool {
	for axis := 0; axis < 3; axis++ {
		if p.Axis(axis) < b.Min.Axis(axis)-eps || p.Axis(axis) > b.Max.Axis(axis)+eps {
			return false
		}
	}
	return true
}

// Translate returns the box shifted by d.
func (b Box3) Translate(d Vec3) Box3 {
	return Box3{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Overlap returns the signed interval overlap between the two boxes along
// one axis. Positive means interpenetration depth, zero means touching, and
// negative means clearance.
func (b Box3) Overlap(o Box3, axis int) float64 {
	lo := b.Min.Axis(axis)
	if v := o.Min.Axis(axis); v > lo {
		lo = v
	}
	hi := b.Max.Axis(axis)
	if v := o.Max.Axis(axis); v < hi {
		hi = v
	}
	return hi - lo
}

// OverlapsAllAxes reports whether the boxes interpenetrate by more than tol
// on every axis at once.
func (b Box3) OverlapsAllAxes(o Box3, tol float64) bool {
	for axis := 0; axis < 3; axis++ {
		if b.Overlap(o, axis) <= tol {
			return false
		}
	}
	return true
}

func (b Box3) String() string {
	return fmt.Sprintf("[%s - %s]", b.Min, b.Max)
}
