package mate

import (
	"errors"
	"testing"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/selector"
	"github.com/partforge/cadctl/internal/sim"
	"github.com/partforge/cadctl/internal/testutil/testlog"
)

// testAssembly is the shared fixture: a wide base slab with a plate and a
// cap floating above it, laterally clear of each other so probes stay
// unambiguous. Millimeter layout:
//
//	base  300 x 100 x 10 at the origin, top face at z=10
//	plate  80 x   8 x 20 floating at z=200 over the base's left end
//	cap    60 x   8 x 15 floating at z=150 over the base's right end
type testAssembly struct {
	sess  *sim.Session
	doc   *sim.Document
	base  kernel.Component
	plate kernel.Component
	cap   kernel.Component
}

func buildAssembly(t *testing.T) *testAssembly {
	t.Helper()
	sess := sim.NewSession()
	doc, err := sess.NewAssembly("fixture")
	if err != nil {
		t.Fatalf("new assembly: %v", err)
	}
	asm := doc.(*sim.Document)
	return &testAssembly{
		sess: sess,
		doc:  asm,
		base: asm.AddComponentMM("base",
			geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 300, Y: 100, Z: 10}),
			geom.Vec3{}),
		plate: asm.AddComponentMM("plate",
			geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 80, Y: 8, Z: 20}),
			geom.Vec3{X: 10, Y: 1, Z: 200}),
		cap: asm.AddComponentMM("cap",
			geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 60, Y: 8, Z: 15}),
			geom.Vec3{X: 220, Y: 1, Z: 150}),
	}
}

// resolve is a test shortcut through the production resolver.
func (a *testAssembly) resolve(t *testing.T, comp kernel.Component, dir geom.Direction) selector.ResolvedFace {
	t.Helper()
	rf, err := selector.NewResolver(a.doc).ResolveFace(comp, selector.ByDirection(dir))
	if err != nil {
		t.Fatalf("resolve %s of %s: %v", dir, comp.Name(), err)
	}
	return rf
}

func countFeatures(doc kernel.FeatureOps) int {
	n := 0
	f, ok := doc.FirstFeature()
	for ok {
		n++
		f, ok = f.Next()
	}
	return n
}

func TestCoincidentTrustsFeatureTreeOverStatus(t *testing.T) {
	testlog.Start(t)

	a := buildAssembly(t)
	a.sess.Faults.LieOnMateStatus = true

	top := a.resolve(t, a.base, geom.DirTop)
	bottom := a.resolve(t, a.plate, geom.DirBottom)

	outcome, err := NewCommander(a.doc).Coincident(top, bottom, false)
	if err != nil {
		t.Fatalf("coincident despite status lie: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("expected success")
	}
	if outcome.Created == nil || outcome.Created.TypeName() != kernel.FeatureTypeMate {
		t.Fatalf("unexpected created feature: %+v", outcome.Created)
	}

	// aligned mate lands the plate on the base's top face
	if !geom.AlmostEqual(a.plate.Box().Min.Z, a.base.Box().Max.Z, 1e-9) {
		t.Fatalf("plate not seated on base: plate %s base %s", a.plate.Box(), a.base.Box())
	}
}

func TestCoincidentRejectedWithoutFeatureDelta(t *testing.T) {
	testlog.Start(t)

	a := buildAssembly(t)
	before := countFeatures(a.doc)

	// top (z-normal) against right (x-normal) is a pick the kernel refuses
	top := a.resolve(t, a.base, geom.DirTop)
	right := a.resolve(t, a.plate, geom.DirRight)

	_, err := NewCommander(a.doc).Coincident(top, right, false)
	if !errors.Is(err, ErrCommandRejected) {
		t.Fatalf("expected command rejection, got %v", err)
	}
	if got := countFeatures(a.doc); got != before {
		t.Fatalf("feature count changed on rejection: %d -> %d", before, got)
	}
}

func TestCoincidentRefusesNonPlanarFace(t *testing.T) {
	testlog.Start(t)

	sess := sim.NewSession()
	doc, err := sess.NewAssembly("fixture")
	if err != nil {
		t.Fatalf("new assembly: %v", err)
	}
	asm := doc.(*sim.Document)
	bored := asm.AddComponentMM("bored",
		geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 100, Y: 50, Z: 10}),
		geom.Vec3{},
		sim.WithBoreMM(geom.DirTop, 5, geom.Vec3{X: 50, Y: 25}))
	other := asm.AddComponentMM("other",
		geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 40, Y: 40, Z: 10}),
		geom.Vec3{X: 200, Y: 100})

	// pick the bore wall directly, bypassing the resolver's planarity check
	asm.ClearSelection()
	if !asm.SelectByID("", kernel.KindFace, geom.MMVecToBase(geom.Vec3{X: 55, Y: 25, Z: 5}), false, kernel.MarkNone) {
		t.Fatalf("bore wall pick missed")
	}
	ent, ok := asm.SelectedObject(kernel.MarkNone, 1)
	if !ok {
		t.Fatalf("no selected object")
	}
	wall := ent.(kernel.Face)
	if wall.Surface() != kernel.SurfaceCylinder {
		t.Fatalf("expected cylinder wall, got %s", wall.Surface())
	}

	otherTop, err := selector.NewResolver(doc).ResolveFace(other, selector.ByDirection(geom.DirTop))
	if err != nil {
		t.Fatalf("resolve other top: %v", err)
	}

	_, err = NewCommander(doc).Coincident(
		selector.ResolvedFace{Face: wall, Component: bored}, otherTop, false)
	if !errors.Is(err, selector.ErrNonPlanarGeometry) {
		t.Fatalf("expected non-planar refusal, got %v", err)
	}
}

func TestCoincidentRefusesUnresolvedFace(t *testing.T) {
	testlog.Start(t)

	a := buildAssembly(t)
	top := a.resolve(t, a.base, geom.DirTop)

	_, err := NewCommander(a.doc).Coincident(top, selector.ResolvedFace{Component: a.plate}, false)
	if !errors.Is(err, ErrCommandRejected) {
		t.Fatalf("expected rejection of nil face, got %v", err)
	}
}

func TestSelectionBatchCommitReplacesStaleSelection(t *testing.T) {
	testlog.Start(t)

	a := buildAssembly(t)
	top := a.resolve(t, a.base, geom.DirTop)
	bottom := a.resolve(t, a.plate, geom.DirBottom)

	// pollute the global selection set with an unrelated pick
	if !a.doc.SelectByID("Front Plane", kernel.KindPlane, geom.Vec3{}, false, kernel.MarkNone) {
		t.Fatalf("select datum plane")
	}

	batch := &SelectionBatch{}
	batch.Add(top.Face, kernel.MarkMate)
	batch.Add(bottom.Face, kernel.MarkMate)
	if err := batch.Commit(a.doc); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, ok := a.doc.SelectedObject(kernel.MarkNone, 1); ok {
		t.Fatalf("stale selection survived the commit")
	}
	first, ok := a.doc.SelectedObject(kernel.MarkMate, 1)
	if !ok || first.ID() != top.Face.ID() {
		t.Fatalf("unexpected first mate pick: %v", first)
	}
	second, ok := a.doc.SelectedObject(kernel.MarkMate, 2)
	if !ok || second.ID() != bottom.Face.ID() {
		t.Fatalf("unexpected second mate pick: %v", second)
	}
}

func TestSelectionBatchCommitFailuresClearSelection(t *testing.T) {
	testlog.Start(t)

	a := buildAssembly(t)

	empty := &SelectionBatch{}
	if err := empty.Commit(a.doc); !errors.Is(err, ErrSelectionLost) {
		t.Fatalf("expected selection lost for empty batch, got %v", err)
	}

	top := a.resolve(t, a.base, geom.DirTop)
	batch := &SelectionBatch{}
	batch.Add(top.Face, kernel.MarkMate)
	batch.Add(nil, kernel.MarkMate)
	if err := batch.Commit(a.doc); !errors.Is(err, ErrSelectionLost) {
		t.Fatalf("expected selection lost for dead handle, got %v", err)
	}
	if _, ok := a.doc.SelectedObject(kernel.MarkMate, 1); ok {
		t.Fatalf("half-built selection left behind")
	}
}
