package sim

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

// Sentinel errors for kernel command misuse. Callers match with errors.Is
// where the distinction matters.
var (
	ErrSketchActive    = errors.New("sim: a sketch is already active")
	ErrNoActiveSketch  = errors.New("sim: no active sketch")
	ErrNothingSelected = errors.New("sim: selection is empty")
	ErrNoPlaneSelected = errors.New("sim: selection does not hold a plane or planar face")
	ErrNoProfile       = errors.New("sim: no closed sketch profile to extrude")
)

type docKind string

const (
	docPart     docKind = "part"
	docAssembly docKind = "assembly"
)

// selEntry is one record of the document's ordered selection set.
type selEntry struct {
	ent  kernel.Entity
	mark int
}

// Document is one in-memory kernel document. All coordinates cross this
// boundary in base units.
type Document struct {
	name   string
	kind   docKind
	faults *Faults
	sess   *Session

	features []*feature
	comps    []*component
	bodies   []*solid

	selection []selEntry

	sketch     *sketchData
	lastSketch *sketchData

	counters map[string]int
	rebuilds int
}

var _ kernel.Document = (*Document)(nil)

// datumPlanes mirror the kernel's default reference planes. Axis assignment
// follows the usual modeling convention: Front is normal to Y, Top to Z,
// Right to X.
var datumPlanes = []struct {
	name string
	axis int
}{
	{"Front Plane", 1},
	{"Top Plane", 2},
	{"Right Plane", 0},
}

func newDocument(name string, kind docKind, sess *Session) *Document {
	d := &Document{
		name:     name,
		kind:     kind,
		sess:     sess,
		counters: make(map[string]int),
	}
	if sess != nil {
		d.faults = sess.Faults
	}
	for _, dp := range datumPlanes {
		d.features = append(d.features, &feature{
			id:        uuid.NewString(),
			name:      dp.name,
			typeName:  kernel.FeatureTypeRefPlane,
			doc:       d,
			planeAxis: dp.axis,
			planeSet:  true,
		})
	}
	return d
}

// nextFeatureName assigns display names the way the kernel numbers new
// features within a document.
func (d *Document) nextFeatureName(typeName string) string {
	prefix := typeName
	switch typeName {
	case kernel.FeatureTypeMate:
		prefix = "Coincident"
	case kernel.FeatureTypeRefPlane:
		prefix = "Plane"
	case kernel.FeatureTypeSketch:
		prefix = "Sketch"
	case kernel.FeatureTypeExtrusion:
		prefix = "Boss-Extrude"
	case kernel.FeatureTypeCut:
		prefix = "Cut-Extrude"
	}
	d.counters[prefix]++
	return fmt.Sprintf("%s%d", prefix, d.counters[prefix])
}

// allSolids lists component bodies first, then free bodies, in insertion
// order. Pick and ray queries scan this order.
func (d *Document) allSolids() []*solid {
	out := make([]*solid, 0, len(d.comps)+len(d.bodies))
	for _, c := range d.comps {
		out = append(out, c.sol)
	}
	return append(out, d.bodies...)
}

func (d *Document) pushSelection(e kernel.Entity, appendSel bool, mark int) {
	if !appendSel {
		d.selection = nil
	}
	d.selection = append(d.selection, selEntry{ent: e, mark: mark})
}

func (d *Document) ClearSelection() { d.selection = nil }

// SelectByID resolves features by display name and faces by coordinate pick
// when name is empty. While a sketch is active, sketch-entity kinds pick in
// sketch-plane coordinates instead of model space.
func (d *Document) SelectByID(name string, kind kernel.EntityKind, p geom.Vec3, appendSel bool, mark int) bool {
	if d.sketch != nil && (kind == kernel.KindSketchSegment || kind == kernel.KindSketchPoint) {
		e, ok := d.sketch.pick(name, kind, p)
		if !ok {
			return false
		}
		d.pushSelection(e, appendSel, mark)
		return true
	}
	if name != "" {
		for _, f := range d.features {
			if f.Kind() == kind && f.name == name {
				d.pushSelection(f, appendSel, mark)
				return true
			}
		}
	}
	if kind != kernel.KindFace {
		return false
	}
	for _, s := range d.allSolids() {
		for _, fc := range s.faces() {
			if name != "" {
				if fc.ID() == name {
					d.pushSelection(fc, appendSel, mark)
					return true
				}
				continue
			}
			if fc.containsPoint(p) {
				d.pushSelection(fc, appendSel, mark)
				return true
			}
		}
	}
	return false
}

func (d *Document) SelectByRay(origin, dir geom.Vec3, radius float64, kind kernel.EntityKind, appendSel bool, mark int) bool {
	if kind != kernel.KindFace {
		return false
	}
	var best rayHit
	found := false
	for _, s := range d.allSolids() {
		for _, fc := range s.faces() {
			hit, ok := fc.castRay(origin, dir, radius)
			if !ok {
				continue
			}
			if !found || hit.t < best.t {
				best, found = hit, true
			}
		}
	}
	if !found {
		return false
	}
	d.pushSelection(best.face, appendSel, mark)
	return true
}

func (d *Document) SelectEntity(e kernel.Entity, appendSel bool, mark int) bool {
	if e == nil {
		return false
	}
	d.pushSelection(e, appendSel, mark)
	return true
}

func (d *Document) SelectedObject(mark, index int) (kernel.Entity, bool) {
	if index < 1 {
		return nil, false
	}
	n := 0
	for _, se := range d.selection {
		if se.mark != mark {
			continue
		}
		n++
		if n == index {
			return se.ent, true
		}
	}
	return nil, false
}

func (d *Document) FirstFeature() (kernel.Feature, bool) {
	if len(d.features) == 0 {
		return nil, false
	}
	return d.features[0], true
}

// selectedPlane resolves the first selected plane feature or planar face to
// a sketchable plane.
func (d *Document) selectedPlane() (axis int, offset float64, ok bool) {
	for _, se := range d.selection {
		switch e := se.ent.(type) {
		case *feature:
			if e.planeSet {
				return e.planeAxis, e.planeOffset, true
			}
		case *face:
			if e.surf == kernel.SurfacePlane {
				return e.dir.Axis(), e.planeCoord(), true
			}
		}
	}
	return 0, 0, false
}

func (d *Document) CreateOffsetPlane(offset float64, reversed bool) (kernel.Feature, error) {
	axis, base, ok := d.selectedPlane()
	if !ok {
		return nil, ErrNoPlaneSelected
	}
	if reversed {
		offset = -offset
	}
	f := newFeature(d, kernel.FeatureTypeRefPlane)
	f.planeAxis = axis
	f.planeOffset = base + offset
	f.planeSet = true
	d.features = append(d.features, f)
	return f, nil
}

// AddMate constrains the two MarkMate faces. Placement is translation-only:
// the second face's body slides along the first face's normal axis until the
// planes coincide, landing on the outward side for aligned mates and the
// inward side for anti-aligned ones. Incompatible picks (non-planar faces,
// differently oriented planes, a body mated to itself) create no feature.
func (d *Document) AddMate(mt kernel.MateType, align kernel.MateAlignment) kernel.MateStatus {
	if mt != kernel.MateCoincident {
		return kernel.MateStatusError
	}
	ea, okA := d.SelectedObject(kernel.MarkMate, 1)
	eb, okB := d.SelectedObject(kernel.MarkMate, 2)
	if !okA || !okB {
		return kernel.MateStatusError
	}
	faceA, okA := ea.(*face)
	faceB, okB := eb.(*face)
	if !okA || !okB {
		return kernel.MateStatusError
	}
	if faceA.surf != kernel.SurfacePlane || faceB.surf != kernel.SurfacePlane {
		return kernel.MateStatusError
	}
	axis := faceA.dir.Axis()
	if faceB.dir.Axis() != axis || faceA.sol == faceB.sol {
		return kernel.MateStatusError
	}

	moved := faceB.sol
	edge := moved.box.Max.Axis(axis)
	if (align == kernel.AlignAligned) == (faceA.dir.Sign() > 0) {
		edge = moved.box.Min.Axis(axis)
	}
	restore := moved.snapshot()
	moved.translate(geom.Vec3{}.WithAxis(axis, faceA.planeCoord()-edge))

	f := newFeature(d, kernel.FeatureTypeMate)
	f.undo = restore
	d.features = append(d.features, f)

	log.Trace().
		Str("feature", f.name).
		Str("face_a", faceA.ID()).
		Str("face_b", faceB.ID()).
		Int("axis", axis).
		Msg("sim.mate placed")

	if d.faults != nil && d.faults.LieOnMateStatus {
		return kernel.MateStatusError
	}
	return kernel.MateStatusOK
}

func (d *Document) DeleteSelected() error {
	deleted := 0
	for _, se := range d.selection {
		f, ok := se.ent.(*feature)
		if !ok {
			continue
		}
		if d.removeFeature(f) {
			deleted++
		}
	}
	if deleted == 0 {
		return ErrNothingSelected
	}
	d.selection = nil
	return nil
}

func (d *Document) removeFeature(f *feature) bool {
	for i, cur := range d.features {
		if cur != f {
			continue
		}
		if f.undo != nil {
			f.undo()
		}
		d.features = append(d.features[:i], d.features[i+1:]...)
		return true
	}
	return false
}

// Rebuild is immediate in the simulator; the counter lets tests assert that
// a regeneration pass ran.
func (d *Document) Rebuild() error {
	d.rebuilds++
	return nil
}

// Rebuilds reports how many rebuild passes ran.
func (d *Document) Rebuilds() int { return d.rebuilds }

func (d *Document) FirstBody() (kernel.Body, bool) {
	all := d.allSolids()
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

func (d *Document) InsertSketch() error {
	if d.sketch != nil {
		return ErrSketchActive
	}
	axis, offset, ok := d.selectedPlane()
	if !ok {
		return ErrNoPlaneSelected
	}
	f := newFeature(d, kernel.FeatureTypeSketch)
	d.features = append(d.features, f)
	d.sketch = newSketchData(f, axis, offset)
	return nil
}

func (d *Document) ExitSketch() error {
	if d.sketch == nil {
		return ErrNoActiveSketch
	}
	d.lastSketch = d.sketch
	d.sketch = nil
	return nil
}

func (d *Document) SketchRectangle(c1, c2 geom.Vec3) bool {
	if d.sketch == nil {
		return false
	}
	if d.faults != nil && d.faults.DropRectangles {
		// claim success without adding geometry
		return true
	}
	corners := [4]geom.Vec3{
		{X: c1.X, Y: c1.Y},
		{X: c2.X, Y: c1.Y},
		{X: c2.X, Y: c2.Y},
		{X: c1.X, Y: c2.Y},
	}
	for i := range corners {
		p1, p2 := corners[i], corners[(i+1)%4]
		d.sketch.addEnt(segLine, func(e *sketchEnt) { e.p1, e.p2 = p1, p2 })
	}
	return true
}

func (d *Document) SketchLine(p1, p2 geom.Vec3) (kernel.Entity, error) {
	if d.sketch == nil {
		return nil, ErrNoActiveSketch
	}
	return d.sketch.addEnt(segLine, func(e *sketchEnt) { e.p1, e.p2 = p1, p2 }), nil
}

func (d *Document) SketchCircle(center geom.Vec3, radius float64) (kernel.Entity, error) {
	if d.sketch == nil {
		return nil, ErrNoActiveSketch
	}
	if radius <= 0 {
		return nil, fmt.Errorf("sim: circle radius %v is not positive", radius)
	}
	return d.sketch.addEnt(segCircle, func(e *sketchEnt) { e.center, e.radius = center, radius }), nil
}

func (d *Document) SketchPoint(p geom.Vec3) (kernel.Entity, error) {
	if d.sketch == nil {
		return nil, ErrNoActiveSketch
	}
	return d.sketch.addEnt(segPoint, func(e *sketchEnt) { e.p1 = p }), nil
}

func (d *Document) SketchSegmentCount() int {
	if d.sketch != nil {
		return d.sketch.segmentCount()
	}
	if d.lastSketch != nil {
		return d.lastSketch.segmentCount()
	}
	return 0
}

func (d *Document) AddRelation(rel kernel.RelationType) error {
	if d.sketch == nil {
		return ErrNoActiveSketch
	}
	var ids []string
	for _, se := range d.selection {
		if e, ok := se.ent.(*sketchEnt); ok {
			ids = append(ids, e.ID())
		}
	}
	if len(ids) == 0 {
		return ErrNothingSelected
	}
	if len(ids) < 2 {
		switch rel {
		case kernel.RelationHorizontal, kernel.RelationVertical, kernel.RelationFix:
		default:
			return fmt.Errorf("sim: relation %q needs two or more entities, got %d", rel, len(ids))
		}
	}
	d.sketch.relations = append(d.sketch.relations, relationRecord{rel: rel, entityID: ids})
	return nil
}

func (d *Document) FullyDefineSketch() error {
	if d.sketch == nil {
		return ErrNoActiveSketch
	}
	d.sketch.fullyDefined = true
	return nil
}

// Extrude realizes the last closed sketch. A lone circle becomes a round
// body, any other profile its bounding box; extrusion runs along the sketch
// normal's positive side unless midPlane splits it. Cuts are through-all
// bores on the first body.
func (d *Document) Extrude(depth float64, midPlane, cut bool) (kernel.Feature, error) {
	if d.sketch != nil {
		return nil, ErrSketchActive
	}
	s := d.lastSketch
	if s == nil {
		return nil, ErrNoProfile
	}
	if depth <= 0 {
		return nil, fmt.Errorf("sim: extrude depth %v is not positive", depth)
	}
	lo, hi := s.offset, s.offset+depth
	if midPlane {
		lo, hi = s.offset-depth/2, s.offset+depth/2
	}
	u, v := geom.LateralAxes(s.axis)
	circle, lines := s.profile()

	var f *feature
	switch {
	case cut:
		if circle == nil || lines > 0 {
			return nil, errors.New("sim: cut extrude supports a single circle profile")
		}
		all := d.allSolids()
		if len(all) == 0 {
			return nil, errors.New("sim: no body to cut")
		}
		target := all[0]
		restore := target.snapshot()
		target.bores = append(target.bores, bore{
			axis:   s.axis,
			radius: circle.radius,
			center: geom.Vec3{}.WithAxis(u, circle.center.X).WithAxis(v, circle.center.Y),
		})
		f = newFeature(d, kernel.FeatureTypeCut)
		f.undo = restore
	case circle != nil && lines == 0:
		sol := newSolid(geom.NewBox3(
			geom.Vec3{}.WithAxis(u, circle.center.X-circle.radius).WithAxis(v, circle.center.Y-circle.radius).WithAxis(s.axis, lo),
			geom.Vec3{}.WithAxis(u, circle.center.X+circle.radius).WithAxis(v, circle.center.Y+circle.radius).WithAxis(s.axis, hi),
		))
		sol.round = true
		sol.axis = s.axis
		d.bodies = append(d.bodies, sol)
		f = newFeature(d, kernel.FeatureTypeExtrusion)
		f.undo = d.removeBodyUndo(sol)
	default:
		blo, bhi, ok := s.bounds2D()
		if !ok {
			return nil, ErrNoProfile
		}
		sol := newSolid(geom.NewBox3(
			geom.Vec3{}.WithAxis(u, blo.X).WithAxis(v, blo.Y).WithAxis(s.axis, lo),
			geom.Vec3{}.WithAxis(u, bhi.X).WithAxis(v, bhi.Y).WithAxis(s.axis, hi),
		))
		d.bodies = append(d.bodies, sol)
		f = newFeature(d, kernel.FeatureTypeExtrusion)
		f.undo = d.removeBodyUndo(sol)
	}
	d.features = append(d.features, f)
	d.lastSketch = nil
	log.Trace().
		Str("feature", f.name).
		Float64("depth", depth).
		Bool("mid_plane", midPlane).
		Bool("cut", cut).
		Msg("sim.extrude realized")
	return f, nil
}

func (d *Document) removeBodyUndo(sol *solid) func() {
	return func() {
		for i, cur := range d.bodies {
			if cur == sol {
				d.bodies = append(d.bodies[:i], d.bodies[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) Name() string { return d.name }

func (d *Document) Components() []kernel.Component {
	out := make([]kernel.Component, len(d.comps))
	for i, c := range d.comps {
		out[i] = c
	}
	return out
}

func (d *Document) Component(name string) (kernel.Component, bool) {
	for _, c := range d.comps {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

func (d *Document) SaveAs(path string) error {
	if path == "" {
		return errors.New("sim: save path is empty")
	}
	if d.sess != nil {
		d.sess.saved[path] = d
	}
	return nil
}
