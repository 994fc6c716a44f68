package kernel

import "github.com/partforge/cadctl/internal/geom"

// Selector is the kernel's global selection set for one document. Selection
// is shared mutable state across the whole document: every multi-step
// operation clears it before building its own pick sequence.
type Selector interface {
	ClearSelection()

	// SelectByID picks an entity by name, or by coordinate pick when name
	// is empty. Reports whether anything was selected.
	SelectByID(name string, kind EntityKind, p geom.Vec3, appendSel bool, mark int) bool

	// SelectByRay casts a thickened ray and selects the first intersected
	// entity of the requested kind.
	SelectByRay(origin, dir geom.Vec3, radius float64, kind EntityKind, appendSel bool, mark int) bool

	// SelectEntity re-selects a previously obtained handle.
	SelectEntity(e Entity, appendSel bool, mark int) bool

	// SelectedObject returns the index-th selected entity carrying the
	// given mark, index starting at 1.
	SelectedObject(mark, index int) (Entity, bool)
}

// FeatureOps covers feature-tree traversal and feature-producing commands.
type FeatureOps interface {
	// FirstFeature returns the root of the feature tree.
	FirstFeature() (Feature, bool)

	// CreateOffsetPlane creates a reference plane offset from the currently
	// selected plane. Offset in base units.
	CreateOffsetPlane(offset float64, reversed bool) (Feature, error)

	// AddMate constrains the two faces selected with MarkMate. The returned
	// status is the kernel's claim only; see MateStatus.
	AddMate(mt MateType, align MateAlignment) MateStatus

	// DeleteSelected removes the selected features and their effects.
	DeleteSelected() error

	Rebuild() error

	// FirstBody returns the document's first solid body, if any.
	FirstBody() (Body, bool)
}

// SketchOps covers 2D sketch construction on the active sketch.
type SketchOps interface {
	// InsertSketch opens a sketch on the selected plane or planar face.
	InsertSketch() error

	// ExitSketch closes the active sketch, keeping its geometry.
	ExitSketch() error

	// SketchRectangle adds four rectangle segments spanning two opposite
	// corners. The return value is the kernel's claim of success; callers
	// verify via SketchSegmentCount because the command is observed to
	// silently no-op.
	SketchRectangle(c1, c2 geom.Vec3) bool

	SketchLine(p1, p2 geom.Vec3) (Entity, error)
	SketchCircle(center geom.Vec3, radius float64) (Entity, error)
	SketchPoint(p geom.Vec3) (Entity, error)

	// SketchSegmentCount reports the segment count of the active sketch.
	SketchSegmentCount() int

	// AddRelation applies a sketch relation to the current selection.
	AddRelation(rel RelationType) error

	// FullyDefineSketch auto-constrains the active sketch with horizontal,
	// vertical, and distance relation classes.
	FullyDefineSketch() error

	// Extrude produces a boss (or cut) from the last closed sketch. Depth
	// in base units; midPlane extrudes symmetrically about the sketch.
	Extrude(depth float64, midPlane, cut bool) (Feature, error)
}

// Document is one open kernel document: a part or an assembly.
type Document interface {
	Selector
	FeatureOps
	SketchOps

	Name() string

	// Components lists placed part instances; empty for part documents.
	Components() []Component
	Component(name string) (Component, bool)

	// SaveAs persists the document at the caller-given path.
	SaveAs(path string) error
}

// Session owns kernel document lifecycle. Connect/dispose of the kernel
// process itself sits outside this layer.
type Session interface {
	NewPart(name string) (Document, error)
	NewAssembly(name string) (Document, error)
	Open(path string) (Document, error)
	Close(doc Document) error
}
