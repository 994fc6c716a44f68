package sketch

import (
	"errors"
	"testing"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/refplane"
	"github.com/partforge/cadctl/internal/selector"
	"github.com/partforge/cadctl/internal/sim"
	"github.com/partforge/cadctl/internal/testutil/testlog"
)

func newPart(t *testing.T) (*sim.Session, kernel.Document) {
	t.Helper()
	sess := sim.NewSession()
	doc, err := sess.NewPart("part")
	if err != nil {
		t.Fatalf("new part: %v", err)
	}
	return sess, doc
}

func countFeaturesOfType(doc kernel.FeatureOps, typeName string) int {
	n := 0
	f, ok := doc.FirstFeature()
	for ok {
		if f.TypeName() == typeName {
			n++
		}
		f, ok = f.Next()
	}
	return n
}

func TestBeginValidatesTarget(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
	s := NewSession(doc, "Helper")

	if err := s.Begin(Target{}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected invalid target, got %v", err)
	}
	if err := s.Begin(OnPlane("  ")); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected invalid target for blank plane, got %v", err)
	}
	if err := s.Begin(OnFace(EntityRef{Kind: kernel.KindSketchSegment})); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected invalid target for non-face ref, got %v", err)
	}
	if s.State() != StateClosed {
		t.Fatalf("state %s after rejected begins", s.State())
	}
}

func TestBeginAutoClosesOpenSketch(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
	s := NewSession(doc, "Helper")

	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.CreateRectangle(RectCorner, 0, 0, 100, 50); err != nil {
		t.Fatalf("rectangle: %v", err)
	}
	if err := s.Begin(OnPlane("Front Plane")); err != nil {
		t.Fatalf("second begin: %v", err)
	}
	if s.State() != StateOpen {
		t.Fatalf("state %s after second begin", s.State())
	}
	if got := countFeaturesOfType(doc, kernel.FeatureTypeSketch); got != 2 {
		t.Fatalf("expected 2 sketch features, got %d", got)
	}
	if got := doc.SketchSegmentCount(); got != 0 {
		t.Fatalf("new sketch not empty: %d segments", got)
	}
}

func TestEndNeedsOpenSketch(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
	s := NewSession(doc, "Helper")

	if err := s.End(); !errors.Is(err, ErrStateViolation) {
		t.Fatalf("expected state violation, got %v", err)
	}
}

func TestEntityCommandsNeedOpenSketch(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
	s := NewSession(doc, "Helper")

	if _, err := s.CreateRectangle(RectCorner, 0, 0, 10, 10); !errors.Is(err, ErrStateViolation) {
		t.Fatalf("rectangle: expected state violation, got %v", err)
	}
	if _, err := s.CreateCircle(0, 0, 5); !errors.Is(err, ErrStateViolation) {
		t.Fatalf("circle: expected state violation, got %v", err)
	}
	if _, err := s.CreateLine(0, 0, 10, 0); !errors.Is(err, ErrStateViolation) {
		t.Fatalf("line: expected state violation, got %v", err)
	}
	if _, err := s.CreatePoint(1, 1); !errors.Is(err, ErrStateViolation) {
		t.Fatalf("point: expected state violation, got %v", err)
	}
	if err := s.ApplyRelation(kernel.RelationHorizontal, EntityRef{Kind: kernel.KindSketchSegment}); !errors.Is(err, ErrStateViolation) {
		t.Fatalf("relation: expected state violation, got %v", err)
	}
	if err := s.FullyDefine(); !errors.Is(err, ErrStateViolation) {
		t.Fatalf("fully define: expected state violation, got %v", err)
	}
}

func TestExtrudeAutoClosesAndDerivesHelpers(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
	s := NewSession(doc, "Helper")

	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.CreateRectangle(RectCorner, 0, 0, 100, 50); err != nil {
		t.Fatalf("rectangle: %v", err)
	}
	if err := s.FullyDefine(); err != nil {
		t.Fatalf("fully define: %v", err)
	}

	// no explicit End: extrude closes the sketch itself
	feat, err := s.Extrude(10, false, false)
	if err != nil {
		t.Fatalf("extrude: %v", err)
	}
	if feat.TypeName() != kernel.FeatureTypeExtrusion {
		t.Fatalf("unexpected feature type %q", feat.TypeName())
	}
	if s.State() != StateClosed {
		t.Fatalf("state %s after extrude", s.State())
	}

	body, ok := doc.FirstBody()
	if !ok {
		t.Fatalf("expected a body")
	}
	wantMax := geom.MMVecToBase(geom.Vec3{X: 100, Y: 50, Z: 10})
	if !geom.VecAlmostEqual(body.Box().Max, wantMax, 1e-9) {
		t.Fatalf("body box %s, want max %s", body.Box(), wantMax)
	}

	// extrusion derives six helper planes over the new box
	for _, name := range []string{"HelperTop", "HelperBottom", "HelperLeft", "HelperRight", "HelperFront", "HelperBack"} {
		p, err := refplane.Resolve(doc, name, "Helper")
		if err != nil || p.Name() != name {
			t.Fatalf("helper plane %s not derived (got %v, %v)", name, p, err)
		}
	}
}

func TestExtrudeValidatesDepth(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
	s := NewSession(doc, "Helper")

	if _, err := s.Extrude(0, false, false); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected invalid geometry for zero depth, got %v", err)
	}
	if _, err := s.Extrude(-5, false, false); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected invalid geometry for negative depth, got %v", err)
	}
}

func TestBeginOnCylinderFaceFailsBeforeAnyEntity(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
	s := NewSession(doc, "Helper")

	// a 10mm radius stud, 20mm tall
	if err := s.Begin(OnPlane("Top Plane")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.CreateCircle(0, 0, 10); err != nil {
		t.Fatalf("circle: %v", err)
	}
	if _, err := s.Extrude(20, false, false); err != nil {
		t.Fatalf("extrude: %v", err)
	}
	sketches := countFeaturesOfType(doc, kernel.FeatureTypeSketch)

	// aim the sketch at the stud's curved wall
	err := s.Begin(OnFace(EntityRef{Kind: kernel.KindFace, AtMM: geom.Vec3{X: 10, Z: 10}}))
	if !errors.Is(err, selector.ErrNonPlanarGeometry) {
		t.Fatalf("expected non-planar refusal, got %v", err)
	}
	if s.State() != StateClosed {
		t.Fatalf("state %s after refused begin", s.State())
	}
	if got := countFeaturesOfType(doc, kernel.FeatureTypeSketch); got != sketches {
		t.Fatalf("refused begin still created a sketch: %d -> %d", sketches, got)
	}
	if got := doc.SketchSegmentCount(); got != 0 {
		t.Fatalf("refused begin left %d segments", got)
	}
}

func TestBeginOnPlanarFace(t *testing.T) {
	testlog.Start(t)

	_, doc := newPart(t)
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

	// sketch directly on the box's top face
	err := s.Begin(OnFace(EntityRef{Kind: kernel.KindFace, AtMM: geom.Vec3{X: 50, Y: 25, Z: 10}}))
	if err != nil {
		t.Fatalf("begin on face: %v", err)
	}
	if s.State() != StateOpen {
		t.Fatalf("state %s after begin on face", s.State())
	}
}
