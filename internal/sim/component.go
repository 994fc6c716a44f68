package sim

import (
	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

// component is one placed part instance. Placement is translation-only:
// origin records where the part's local origin sits in assembly space.
type component struct {
	name   string
	origin geom.Vec3
	sol    *solid
}

var _ kernel.Component = (*component)(nil)

func (c *component) Name() string { return c.name }

func (c *component) Transform() geom.Transform {
	return geom.TranslationTransform(c.origin)
}

func (c *component) Box() geom.Box3 { return c.sol.box }

// ComponentOption tweaks a component under construction.
type ComponentOption func(*component)

// WithBoreMM drills a cylindrical through-hole along the direction's axis.
// Radius and the lateral coordinates of at are in millimeters, part-local.
func WithBoreMM(dir geom.Direction, radiusMM float64, at geom.Vec3) ComponentOption {
	return func(c *component) {
		base := geom.MMVecToBase(at).Add(c.origin)
		c.sol.bores = append(c.sol.bores, bore{
			axis:   dir.Axis(),
			radius: geom.MMToBase(radiusMM),
			center: base,
		})
	}
}

// AddComponentMM places a part instance whose part-local box is boxMM
// (millimeters), with the part origin at originMM in assembly space.
// Scaffolding for tests and demo scripts, not part of the kernel contract.
func (d *Document) AddComponentMM(name string, boxMM geom.Box3, originMM geom.Vec3, opts ...ComponentOption) kernel.Component {
	origin := geom.MMVecToBase(originMM)
	c := &component{
		name:   name,
		origin: origin,
		sol:    newSolid(geom.MMBoxToBase(boxMM).Translate(origin)),
	}
	c.sol.owner = c
	for _, opt := range opts {
		opt(c)
	}
	d.comps = append(d.comps, c)
	return c
}
