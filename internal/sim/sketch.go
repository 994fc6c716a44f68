package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

const (
	segLine   = "line"
	segCircle = "circle"
	segPoint  = "point"
)

// sketchEnt is one 2D entity of a sketch. Coordinates are sketch-plane
// local, base units, z always zero.
type sketchEnt struct {
	id      string
	name    string
	segKind string
	p1, p2  geom.Vec3
	center  geom.Vec3
	radius  float64
}

var _ kernel.Entity = (*sketchEnt)(nil)

func (e *sketchEnt) ID() string { return e.id }

func (e *sketchEnt) Kind() kernel.EntityKind {
	if e.segKind == segPoint {
		return kernel.KindSketchPoint
	}
	return kernel.KindSketchSegment
}

// near reports whether a 2D pick coordinate lands on the entity.
func (e *sketchEnt) near(p geom.Vec3) bool {
	switch e.segKind {
	case segLine:
		return distPointSegment(p, e.p1, e.p2) <= pickEps
	case segCircle:
		d := math.Hypot(p.X-e.center.X, p.Y-e.center.Y)
		return math.Abs(d-e.radius) <= pickEps
	default:
		return math.Hypot(p.X-e.p1.X, p.Y-e.p1.Y) <= pickEps
	}
}

func distPointSegment(p, a, b geom.Vec3) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Scale(t))).Length()
}

// relationRecord remembers one applied sketch relation for assertions.
type relationRecord struct {
	rel      kernel.RelationType
	entityID []string
}

// sketchData is the active (or last closed) sketch of a document.
type sketchData struct {
	feat         *feature
	axis         int
	offset       float64
	ents         []*sketchEnt
	relations    []relationRecord
	fullyDefined bool
	counters     map[string]int
}

func newSketchData(feat *feature, axis int, offset float64) *sketchData {
	return &sketchData{
		feat:     feat,
		axis:     axis,
		offset:   offset,
		counters: make(map[string]int),
	}
}

func (s *sketchData) segmentCount() int {
	out := 0
	for _, e := range s.ents {
		if e.segKind != segPoint {
			out++
		}
	}
	return out
}

func (s *sketchData) addEnt(segKind string, build func(*sketchEnt)) *sketchEnt {
	s.counters[segKind]++
	e := &sketchEnt{
		id:      uuid.NewString(),
		name:    fmt.Sprintf("%s%d", titleSeg(segKind), s.counters[segKind]),
		segKind: segKind,
	}
	build(e)
	s.ents = append(s.ents, e)
	return e
}

func titleSeg(segKind string) string {
	switch segKind {
	case segLine:
		return "Line"
	case segCircle:
		return "Circle"
	default:
		return "Point"
	}
}

// pick returns the first entity of the requested kind at a 2D coordinate,
// preferring a name match when one is given.
func (s *sketchData) pick(name string, kind kernel.EntityKind, p geom.Vec3) (*sketchEnt, bool) {
	for _, e := range s.ents {
		if name != "" && e.name == name && e.Kind() == kind {
			return e, true
		}
	}
	if name != "" {
		return nil, false
	}
	for _, e := range s.ents {
		if e.Kind() == kind && e.near(p) {
			return e, true
		}
	}
	return nil, false
}

// bounds2D returns the sketch extent over all segment entities.
func (s *sketchData) bounds2D() (lo, hi geom.Vec3, ok bool) {
	first := true
	grow := func(p geom.Vec3) {
		if first {
			lo, hi = p, p
			first = false
			return
		}
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	for _, e := range s.ents {
		switch e.segKind {
		case segLine:
			grow(e.p1)
			grow(e.p2)
		case segCircle:
			grow(geom.Vec3{X: e.center.X - e.radius, Y: e.center.Y - e.radius})
			grow(geom.Vec3{X: e.center.X + e.radius, Y: e.center.Y + e.radius})
		}
	}
	return lo, hi, !first
}

// profile classifies the sketch for extrusion: a lone circle extrudes to a
// round body, anything else to its bounding box.
func (s *sketchData) profile() (circle *sketchEnt, lines int) {
	for _, e := range s.ents {
		switch e.segKind {
		case segCircle:
			circle = e
		case segLine:
			lines++
		}
	}
	return circle, lines
}
