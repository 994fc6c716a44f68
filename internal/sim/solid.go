package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

// pickEps is the coordinate-pick tolerance in base units (one micrometer).
const pickEps = 1e-6

// bore is one cylindrical through-hole in a solid.
type bore struct {
	axis   int
	radius float64
	// center carries the two lateral coordinates of the bore axis line.
	center geom.Vec3
}

// solid is one axis-aligned body: a box, or a cylinder spanning the box
// when round is set.
type solid struct {
	id    string
	box   geom.Box3
	round bool
	axis  int
	bores []bore
	owner *component
}

func newSolid(box geom.Box3) *solid {
	return &solid{id: uuid.NewString(), box: box}
}

// face is a derived surface handle. Plane coordinates are read from the
// owning solid at use time so moved solids keep their handles valid.
type face struct {
	sol *solid
	// variant distinguishes the six planar sides, the round outer wall,
	// and bore walls; it keeps face IDs stable across queries.
	variant string
	surf    kernel.SurfaceKind
	dir     geom.Direction
	boreIdx int
}

var _ kernel.Face = (*face)(nil)

func (f *face) ID() string                  { return f.sol.id + ":" + f.variant }
func (f *face) Kind() kernel.EntityKind     { return kernel.KindFace }
func (f *face) Surface() kernel.SurfaceKind { return f.surf }

// planeCoord returns the face plane position along its normal axis.
func (f *face) planeCoord() float64 {
	if f.dir.Sign() > 0 {
		return f.sol.box.Max.Axis(f.dir.Axis())
	}
	return f.sol.box.Min.Axis(f.dir.Axis())
}

// faces derives the current face set of a solid.
func (s *solid) faces() []*face {
	var out []*face
	if s.round {
		for _, d := range []geom.Direction{capDir(s.axis, 1), capDir(s.axis, -1)} {
			out = append(out, &face{sol: s, variant: "cap:" + string(d), surf: kernel.SurfacePlane, dir: d})
		}
		out = append(out, &face{sol: s, variant: "wall", surf: kernel.SurfaceCylinder})
		return out
	}
	for _, d := range geom.Directions() {
		out = append(out, &face{sol: s, variant: "side:" + string(d), surf: kernel.SurfacePlane, dir: d})
	}
	for i := range s.bores {
		out = append(out, &face{
			sol:     s,
			variant: fmt.Sprintf("bore:%d", i),
			surf:    kernel.SurfaceCylinder,
			boreIdx: i,
		})
	}
	return out
}

func capDir(axis int, sign float64) geom.Direction {
	for _, d := range geom.Directions() {
		if d.Axis() == axis && d.Sign() == sign {
			return d
		}
	}
	return geom.DirTop
}

// containsPoint reports whether p lies on the face within pickEps.
func (f *face) containsPoint(p geom.Vec3) bool {
	switch f.surf {
	case kernel.SurfacePlane:
		axis := f.dir.Axis()
		if !geom.AlmostEqual(p.Axis(axis), f.planeCoord(), pickEps) {
			return false
		}
		u, v := geom.LateralAxes(axis)
		box := f.sol.box
		if p.Axis(u) < box.Min.Axis(u)-pickEps || p.Axis(u) > box.Max.Axis(u)+pickEps {
			return false
		}
		if p.Axis(v) < box.Min.Axis(v)-pickEps || p.Axis(v) > box.Max.Axis(v)+pickEps {
			return false
		}
		// points inside a bore outlet belong to the bore wall, not the side
		for _, b := range f.sol.bores {
			if b.axis == axis && lateralDistance(p, b) < b.radius-pickEps {
				return false
			}
		}
		return true
	case kernel.SurfaceCylinder:
		b, ok := f.cylinder()
		if !ok {
			return false
		}
		if p.Axis(b.axis) < f.sol.box.Min.Axis(b.axis)-pickEps || p.Axis(b.axis) > f.sol.box.Max.Axis(b.axis)+pickEps {
			return false
		}
		return geom.AlmostEqual(lateralDistance(p, b), b.radius, pickEps)
	default:
		return false
	}
}

// cylinder returns the cylindrical face's bore parameters; for the round
// outer wall a synthetic bore spanning the box is used.
func (f *face) cylinder() (bore, bool) {
	if f.surf != kernel.SurfaceCylinder {
		return bore{}, false
	}
	if f.sol.round {
		u, v := geom.LateralAxes(f.sol.axis)
		c := f.sol.box.Center()
		return bore{
			axis:   f.sol.axis,
			radius: f.sol.box.Extent(u) / 2,
			center: geom.Vec3{}.WithAxis(u, c.Axis(u)).WithAxis(v, c.Axis(v)),
		}, true
	}
	if f.boreIdx < 0 || f.boreIdx >= len(f.sol.bores) {
		return bore{}, false
	}
	return f.sol.bores[f.boreIdx], true
}

func lateralDistance(p geom.Vec3, b bore) float64 {
	u, v := geom.LateralAxes(b.axis)
	du := p.Axis(u) - b.center.Axis(u)
	dv := p.Axis(v) - b.center.Axis(v)
	return math.Hypot(du, dv)
}

// rayHit is one candidate intersection along a cast ray.
type rayHit struct {
	face *face
	t    float64
}

// castRay intersects a thickened ray with one face. The radius expands
// planar bounds and widens the cylindrical wall band, approximating the
// kernel's cylindrical pick volume. Planar faces hit from their outward
// side only.
func (f *face) castRay(origin, dir geom.Vec3, radius float64) (rayHit, bool) {
	switch f.surf {
	case kernel.SurfacePlane:
		axis := f.dir.Axis()
		d := dir.Axis(axis)
		if math.Abs(d) < 1e-12 {
			return rayHit{}, false
		}
		// reject back-face hits: two touching solids keep distinct picks
		// on their coincident faces
		if d*f.dir.Sign() > 0 {
			return rayHit{}, false
		}
		t := (f.planeCoord() - origin.Axis(axis)) / d
		if t < -pickEps {
			return rayHit{}, false
		}
		p := origin.Add(dir.Scale(t))
		u, v := geom.LateralAxes(axis)
		box := f.sol.box
		if p.Axis(u) < box.Min.Axis(u)-radius || p.Axis(u) > box.Max.Axis(u)+radius {
			return rayHit{}, false
		}
		if p.Axis(v) < box.Min.Axis(v)-radius || p.Axis(v) > box.Max.Axis(v)+radius {
			return rayHit{}, false
		}
		for _, b := range f.sol.bores {
			if b.axis == axis && lateralDistance(p, b) < b.radius-radius {
				return rayHit{}, false
			}
		}
		return rayHit{face: f, t: t}, true
	case kernel.SurfaceCylinder:
		b, ok := f.cylinder()
		if !ok {
			return rayHit{}, false
		}
		if math.Abs(dir.Axis(b.axis)) < 1-1e-9 {
			return f.castRayAcrossCylinder(origin, dir, radius, b)
		}
		if d := lateralDistance(origin, b); math.Abs(d-b.radius) > radius {
			return rayHit{}, false
		}
		t := f.sol.box.Min.Axis(b.axis) - origin.Axis(b.axis)
		if dir.Axis(b.axis) < 0 {
			t = origin.Axis(b.axis) - f.sol.box.Max.Axis(b.axis)
		}
		if t < -pickEps {
			return rayHit{}, false
		}
		return rayHit{face: f, t: t}, true
	default:
		return rayHit{}, false
	}
}

// castRayAcrossCylinder handles rays perpendicular to the cylinder axis,
// which occur when probing the flanks of a round body.
func (f *face) castRayAcrossCylinder(origin, dir geom.Vec3, radius float64, b bore) (rayHit, bool) {
	rayAxis := dominantAxis(dir)
	if rayAxis == b.axis {
		return rayHit{}, false
	}
	if origin.Axis(b.axis) < f.sol.box.Min.Axis(b.axis)-pickEps ||
		origin.Axis(b.axis) > f.sol.box.Max.Axis(b.axis)+pickEps {
		return rayHit{}, false
	}
	u, v := geom.LateralAxes(b.axis)
	// offAxis is the lateral axis the ray does not travel along
	offAxis := u
	if rayAxis == u {
		offAxis = v
	}
	off := math.Abs(origin.Axis(offAxis) - b.center.Axis(offAxis))
	if off > b.radius+radius {
		return rayHit{}, false
	}
	chord := 0.0
	if off < b.radius {
		chord = math.Sqrt(b.radius*b.radius - off*off)
	}
	surface := b.center.Axis(rayAxis) - chord
	if dir.Axis(rayAxis) < 0 {
		surface = b.center.Axis(rayAxis) + chord
	}
	t := (surface - origin.Axis(rayAxis)) / dir.Axis(rayAxis)
	if t < -pickEps {
		return rayHit{}, false
	}
	return rayHit{face: f, t: t}, true
}

func dominantAxis(v geom.Vec3) int {
	out := 0
	best := math.Abs(v.X)
	if a := math.Abs(v.Y); a > best {
		out, best = 1, a
	}
	if a := math.Abs(v.Z); a > best {
		out = 2
	}
	return out
}

var _ kernel.Body = (*solid)(nil)

func (s *solid) Box() geom.Box3 { return s.box }

func (s *solid) Faces() []kernel.Face {
	fs := s.faces()
	out := make([]kernel.Face, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

// translate moves the solid, its bore axes, and its owning component.
func (s *solid) translate(delta geom.Vec3) {
	s.box = s.box.Translate(delta)
	for i := range s.bores {
		s.bores[i].center = s.bores[i].center.Add(delta)
	}
	if s.owner != nil {
		s.owner.origin = s.owner.origin.Add(delta)
	}
}

// snapshot captures the solid's placement and bores so a deleted feature
// can put them back.
func (s *solid) snapshot() func() {
	box := s.box
	bores := append([]bore(nil), s.bores...)
	var origin geom.Vec3
	if s.owner != nil {
		origin = s.owner.origin
	}
	return func() {
		s.box = box
		s.bores = bores
		if s.owner != nil {
			s.owner.origin = origin
		}
	}
}
