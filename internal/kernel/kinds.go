package kernel

// EntityKind names a selectable entity class, mirroring the kernel's
// select-by-id type strings.
type EntityKind string

const (
	KindFace          EntityKind = "FACE"
	KindPlane         EntityKind = "PLANE"
	KindMate          EntityKind = "MATE"
	KindComponent     EntityKind = "COMPONENT"
	KindSketchSegment EntityKind = "SKETCHSEGMENT"
	KindSketchPoint   EntityKind = "SKETCHPOINT"
)

// SurfaceKind classifies the underlying surface of a face.
type SurfaceKind string

const (
	SurfacePlane    SurfaceKind = "plane"
	SurfaceCylinder SurfaceKind = "cylinder"
	SurfaceOther    SurfaceKind = "other"
)

// MateType names a supported assembly constraint class.
type MateType string

const (
	MateCoincident MateType = "coincident"
)

// MateAlignment selects which side of the mating plane the moved body ends
// up on. The wrong choice for a pair is expected and cheap: the interference
// check rejects it after the fact.
type MateAlignment string

const (
	AlignAligned     MateAlignment = "aligned"
	AlignAntiAligned MateAlignment = "anti-aligned"
)

// MateStatus is the kernel's own claim about a mate command. Observed kernel
// behavior: the claim is sometimes wrong even when the mate was created, so
// callers corroborate against the feature tree instead of trusting it.
type MateStatus string

const (
	MateStatusOK    MateStatus = "ok"
	MateStatusError MateStatus = "error"
)

// RelationType names a sketch relation applied to the current selection.
type RelationType string

const (
	RelationHorizontal    RelationType = "horizontal"
	RelationVertical      RelationType = "vertical"
	RelationCoincident    RelationType = "coincident"
	RelationEqual         RelationType = "equal"
	RelationParallel      RelationType = "parallel"
	RelationPerpendicular RelationType = "perpendicular"
	RelationTangent       RelationType = "tangent"
	RelationConcentric    RelationType = "concentric"
	RelationMidpoint      RelationType = "midpoint"
	RelationFix           RelationType = "fix"
)

// Feature tree type names as reported by TypeName.
const (
	FeatureTypeMate      = "MateCoincident"
	FeatureTypeRefPlane  = "RefPlane"
	FeatureTypeSketch    = "ProfileFeature"
	FeatureTypeExtrusion = "Extrusion"
	FeatureTypeCut       = "CutExtrude"
)

// Selection marks group a multi-entity pick consumed by one command.
const (
	// MarkNone tags picks for commands that read the whole selection set.
	MarkNone = 0
	// MarkMate tags both faces of a mate pair.
	MarkMate = 1
)
