package kernel

import "github.com/partforge/cadctl/internal/geom"

// Entity is an opaque selectable kernel object handle.
type Entity interface {
	// ID is a kernel-stable handle identifier, usable for logging and
	// equality only; it carries no geometric meaning.
	ID() string
	Kind() EntityKind
}

// Face is a bounded surface handle. Only the surface class is exposed:
// the automation layer never reasons about exact face geometry, it probes
// and verifies planarity.
type Face interface {
	Entity
	Surface() SurfaceKind
}

// Feature is one node of the document's feature tree.
type Feature interface {
	Entity
	Name() string
	SetName(name string)
	TypeName() string
	// Next returns the following tree node, or false at the terminal
	// feature.
	Next() (Feature, bool)
}

// Body is one solid body produced by feature operations.
type Body interface {
	// Box is the body bounding box in document space, base units.
	Box() geom.Box3
	Faces() []Face
}

// Component is one part instance placed in an assembly.
type Component interface {
	Name() string
	// Transform maps the part's local frame into assembly space.
	Transform() geom.Transform
	// Box is the component bounding box in assembly space, base units,
	// recomputed at call time.
	Box() geom.Box3
}
