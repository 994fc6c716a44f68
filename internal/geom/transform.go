package geom

// Transform is an affine part-to-assembly placement: rotation/scale rows
// plus a translation column.
type Transform struct {
	Rows [3]Vec3
	T    Vec3
}

// IdentityTransform returns the no-op placement.
func IdentityTransform() Transform {
	return Transform{
		Rows: [3]Vec3{{X: 1}, {Y: 1}, {Z: 1}},
	}
}

// TranslationTransform returns a pure translation placement.
func TranslationTransform(t Vec3) Transform {
	out := IdentityTransform()
	out.T = t
	return out
}

// Apply maps a part-local point into assembly space.
func (t Transform) Apply(p Vec3) Vec3 {
	return Vec3{
		X: t.Rows[0].Dot(p) + t.T.X,
		Y: t.Rows[1].Dot(p) + t.T.Y,
		Z: t.Rows[2].Dot(p) + t.T.Z,
	}
}
