package sketch

import (
	"errors"
	"testing"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/selector"
	"github.com/partforge/cadctl/internal/sim"
	"github.com/partforge/cadctl/internal/testutil/testlog"
)

func TestRectangleCorners(t *testing.T) {
	testlog.Start(t)

	t.Run("corner mode normalizes", func(t *testing.T) {
		corners, err := RectangleCorners(RectCorner, 100, 50, 0, 0)
		if err != nil {
			t.Fatalf("corners: %v", err)
		}
		want := [4]geom.Vec3{
			{X: 0, Y: 0},
			{X: 100, Y: 0},
			{X: 100, Y: 50},
			{X: 0, Y: 50},
		}
		if corners != want {
			t.Fatalf("corners %v, want %v", corners, want)
		}
	})

	t.Run("center mode expands half extents", func(t *testing.T) {
		corners, err := RectangleCorners(RectCenter, 50, 25, 50, 25)
		if err != nil {
			t.Fatalf("corners: %v", err)
		}
		fromCorner, err := RectangleCorners(RectCorner, 0, 0, 100, 50)
		if err != nil {
			t.Fatalf("corner corners: %v", err)
		}
		if corners != fromCorner {
			t.Fatalf("center %v != corner %v", corners, fromCorner)
		}
	})

	t.Run("degenerate rectangles fail", func(t *testing.T) {
		if _, err := RectangleCorners(RectCorner, 0, 0, 0, 50); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("expected invalid geometry, got %v", err)
		}
		if _, err := RectangleCorners(RectCenter, 10, 10, 0, 5); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("expected invalid geometry, got %v", err)
		}
		if _, err := RectangleCorners("rhombus", 0, 0, 10, 10); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("expected invalid geometry, got %v", err)
		}
	})
}

// buildSlab runs one begin-rectangle-extrude pass and returns the resulting
// body box and the edge references the rectangle produced.
func buildSlab(t *testing.T, sess *sim.Session) (geom.Box3, []EntityRef) {
	t.Helper()
	doc, err := sess.NewPart("slab")
	if err != nil {
		t.Fatalf("new part: %v", err)
	}
	s := NewSession(doc, "Helper")
	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	refs, err := s.CreateRectangle(RectCorner, 0, 0, 100, 50)
	if err != nil {
		t.Fatalf("rectangle: %v", err)
	}
	if got := doc.SketchSegmentCount(); got != 4 {
		t.Fatalf("expected 4 segments, got %d", got)
	}
	if _, err := s.Extrude(10, false, false); err != nil {
		t.Fatalf("extrude: %v", err)
	}
	body, ok := doc.FirstBody()
	if !ok {
		t.Fatalf("expected a body")
	}
	return body.Box(), refs
}

func TestRectangleFallbackBuildsIdenticalGeometry(t *testing.T) {
	testlog.Start(t)

	healthy := sim.NewSession()
	wantBox, wantRefs := buildSlab(t, healthy)

	faulty := sim.NewSession()
	faulty.Faults.DropRectangles = true
	gotBox, gotRefs := buildSlab(t, faulty)

	if !geom.VecAlmostEqual(gotBox.Min, wantBox.Min, 1e-9) ||
		!geom.VecAlmostEqual(gotBox.Max, wantBox.Max, 1e-9) {
		t.Fatalf("fallback body %s, want %s", gotBox, wantBox)
	}
	if len(gotRefs) != len(wantRefs) {
		t.Fatalf("fallback refs %d, want %d", len(gotRefs), len(wantRefs))
	}
	for i := range wantRefs {
		if !geom.VecAlmostEqual(gotRefs[i].AtMM, wantRefs[i].AtMM, 1e-9) {
			t.Fatalf("ref %d at %s, want %s", i, gotRefs[i].AtMM, wantRefs[i].AtMM)
		}
	}
}

func TestRectangleRefsSurviveFallback(t *testing.T) {
	testlog.Start(t)

	sess := sim.NewSession()
	sess.Faults.DropRectangles = true
	doc, err := sess.NewPart("slab")
	if err != nil {
		t.Fatalf("new part: %v", err)
	}
	s := NewSession(doc, "Helper")
	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	refs, err := s.CreateRectangle(RectCorner, 0, 0, 100, 50)
	if err != nil {
		t.Fatalf("rectangle: %v", err)
	}

	// the returned edge references reselect the fallback lines
	if err := s.ApplyRelation(kernel.RelationHorizontal, refs[0]); err != nil {
		t.Fatalf("relation on fallback edge: %v", err)
	}
	if err := s.ApplyRelation(kernel.RelationEqual, refs[0], refs[2]); err != nil {
		t.Fatalf("two-entity relation on fallback edges: %v", err)
	}
}

func TestApplyRelationMissAbortsCleanly(t *testing.T) {
	testlog.Start(t)

	sess := sim.NewSession()
	doc, err := sess.NewPart("part")
	if err != nil {
		t.Fatalf("new part: %v", err)
	}
	s := NewSession(doc, "Helper")
	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	ref, err := s.CreateLine(0, 0, 100, 0)
	if err != nil {
		t.Fatalf("line: %v", err)
	}

	stray := EntityRef{Kind: kernel.KindSketchSegment, AtMM: geom.Vec3{X: 500, Y: 500}}
	if err := s.ApplyRelation(kernel.RelationEqual, ref, stray); !errors.Is(err, selector.ErrSelectionFailed) {
		t.Fatalf("expected selection failure, got %v", err)
	}
	asm := doc.(*sim.Document)
	if _, ok := asm.SelectedObject(kernel.MarkNone, 1); ok {
		t.Fatalf("partial selection left behind after miss")
	}

	// the session keeps working after the aborted relation
	if err := s.ApplyRelation(kernel.RelationHorizontal, ref); err != nil {
		t.Fatalf("relation after miss: %v", err)
	}
}

func TestApplyRelationValidatesRefs(t *testing.T) {
	testlog.Start(t)

	sess := sim.NewSession()
	doc, err := sess.NewPart("part")
	if err != nil {
		t.Fatalf("new part: %v", err)
	}
	s := NewSession(doc, "Helper")
	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := s.ApplyRelation(kernel.RelationHorizontal); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected invalid reference for empty refs, got %v", err)
	}
	if err := s.ApplyRelation(kernel.RelationHorizontal, EntityRef{}); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected invalid reference for missing kind, got %v", err)
	}
}

func TestCutExtrudeBoresTheBody(t *testing.T) {
	testlog.Start(t)

	sess := sim.NewSession()
	doc, err := sess.NewPart("part")
	if err != nil {
		t.Fatalf("new part: %v", err)
	}
	s := NewSession(doc, "Helper")

	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.CreateRectangle(RectCorner, 0, 0, 100, 50); err != nil {
		t.Fatalf("rectangle: %v", err)
	}
	if _, err := s.Extrude(10, false, false); err != nil {
		t.Fatalf("extrude: %v", err)
	}

	// bore a 5mm hole through the slab, sketching on its top face
	if err := s.Begin(OnFace(EntityRef{Kind: kernel.KindFace, AtMM: geom.Vec3{X: 50, Y: 25, Z: 10}})); err != nil {
		t.Fatalf("begin on face: %v", err)
	}
	if _, err := s.CreateCircle(50, 25, 5); err != nil {
		t.Fatalf("circle: %v", err)
	}
	if _, err := s.Extrude(10, false, true); err != nil {
		t.Fatalf("cut: %v", err)
	}

	if got := countFeaturesOfType(doc, kernel.FeatureTypeCut); got != 1 {
		t.Fatalf("expected one cut feature, got %d", got)
	}
	body, ok := doc.FirstBody()
	if !ok {
		t.Fatalf("expected a body")
	}
	cylindrical := false
	for _, f := range body.Faces() {
		if f.Surface() == kernel.SurfaceCylinder {
			cylindrical = true
		}
	}
	if !cylindrical {
		t.Fatalf("cut left no cylindrical wall on the body")
	}
}

func TestCreateLineRejectsZeroLength(t *testing.T) {
	testlog.Start(t)

	sess := sim.NewSession()
	doc, err := sess.NewPart("part")
	if err != nil {
		t.Fatalf("new part: %v", err)
	}
	s := NewSession(doc, "Helper")
	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.CreateLine(5, 5, 5, 5); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected invalid geometry, got %v", err)
	}
	if _, err := s.CreateCircle(0, 0, 0); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected invalid geometry for zero radius, got %v", err)
	}
}
