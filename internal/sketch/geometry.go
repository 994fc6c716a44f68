package sketch

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/observability"
)

var ErrInvalidGeometry = errors.New("sketch: invalid geometry")

// RectMode selects how rectangle inputs are read.
type RectMode string

const (
	// RectCorner reads (ax,ay) and (bx,by) as opposite corners.
	RectCorner RectMode = "corner"
	// RectCenter reads (ax,ay) as the center and (bx,by) as half extents.
	RectCenter RectMode = "center"
)

// RectangleCorners expands rectangle inputs into four corners ordered
// counter-clockwise from the minimum corner. Both creation paths (the
// primitive kernel command and the four-line fallback) consume exactly
// these points, so either path yields identical geometry.
func RectangleCorners(mode RectMode, ax, ay, bx, by float64) ([4]geom.Vec3, error) {
	var lo, hi geom.Vec3
	switch mode {
	case RectCenter:
		if bx <= 0 || by <= 0 {
			return [4]geom.Vec3{}, fmt.Errorf("%w: half extents %v x %v", ErrInvalidGeometry, bx, by)
		}
		lo = geom.Vec3{X: ax - bx, Y: ay - by}
		hi = geom.Vec3{X: ax + bx, Y: ay + by}
	case RectCorner:
		lo = geom.Vec3{X: min(ax, bx), Y: min(ay, by)}
		hi = geom.Vec3{X: max(ax, bx), Y: max(ay, by)}
		if lo.X == hi.X || lo.Y == hi.Y {
			return [4]geom.Vec3{}, fmt.Errorf("%w: degenerate rectangle %s to %s", ErrInvalidGeometry, lo, hi)
		}
	default:
		return [4]geom.Vec3{}, fmt.Errorf("%w: unknown rectangle mode %q", ErrInvalidGeometry, mode)
	}
	return [4]geom.Vec3{
		{X: lo.X, Y: lo.Y},
		{X: hi.X, Y: lo.Y},
		{X: hi.X, Y: hi.Y},
		{X: lo.X, Y: hi.Y},
	}, nil
}

// CreateRectangle appends a rectangle in sketch millimeters and returns one
// reference per edge. The primitive rectangle command is observed to no-op
// intermittently while claiming success, so the segment count is compared
// across the call; a count that did not grow triggers a rebuild from four
// independent line segments over the same corners.
func (s *Session) CreateRectangle(mode RectMode, ax, ay, bx, by float64) ([]EntityRef, error) {
	if err := s.requireOpen("CreateRectangle"); err != nil {
		return nil, err
	}
	corners, err := RectangleCorners(mode, ax, ay, bx, by)
	if err != nil {
		return nil, err
	}

	before := s.doc.SketchSegmentCount()
	claimed := s.doc.SketchRectangle(geom.MMVecToBase(corners[0]), geom.MMVecToBase(corners[2]))
	after := s.doc.SketchSegmentCount()

	if after <= before {
		observability.RecordRectangleFallback()
		log.Warn().
			Bool("claimed", claimed).
			Int("segments_before", before).
			Int("segments_after", after).
			Msg("sketch.rectangle primitive added nothing, rebuilding as four lines")
		for i := range corners {
			p1, p2 := corners[i], corners[(i+1)%4]
			if _, err := s.doc.SketchLine(geom.MMVecToBase(p1), geom.MMVecToBase(p2)); err != nil {
				return nil, fmt.Errorf("sketch: rectangle fallback edge %d: %w", i, err)
			}
		}
	}

	refs := make([]EntityRef, 0, 4)
	for i := range corners {
		mid := corners[i].Add(corners[(i+1)%4]).Scale(0.5)
		refs = append(refs, EntityRef{Kind: kernel.KindSketchSegment, AtMM: mid})
	}
	return refs, nil
}

// CreateCircle appends a circle at a millimeter center and radius. The
// returned reference picks the circle on its circumference.
func (s *Session) CreateCircle(cx, cy, radiusMM float64) (EntityRef, error) {
	if err := s.requireOpen("CreateCircle"); err != nil {
		return EntityRef{}, err
	}
	if radiusMM <= 0 {
		return EntityRef{}, fmt.Errorf("%w: circle radius %vmm", ErrInvalidGeometry, radiusMM)
	}
	center := geom.Vec3{X: cx, Y: cy}
	if _, err := s.doc.SketchCircle(geom.MMVecToBase(center), geom.MMToBase(radiusMM)); err != nil {
		return EntityRef{}, fmt.Errorf("sketch: circle: %w", err)
	}
	return EntityRef{Kind: kernel.KindSketchSegment, AtMM: geom.Vec3{X: cx + radiusMM, Y: cy}}, nil
}

// CreateLine appends a line segment between two millimeter points. The
// returned reference picks the segment at its midpoint.
func (s *Session) CreateLine(x1, y1, x2, y2 float64) (EntityRef, error) {
	if err := s.requireOpen("CreateLine"); err != nil {
		return EntityRef{}, err
	}
	p1 := geom.Vec3{X: x1, Y: y1}
	p2 := geom.Vec3{X: x2, Y: y2}
	if p1 == p2 {
		return EntityRef{}, fmt.Errorf("%w: zero-length line at %s", ErrInvalidGeometry, p1)
	}
	if _, err := s.doc.SketchLine(geom.MMVecToBase(p1), geom.MMVecToBase(p2)); err != nil {
		return EntityRef{}, fmt.Errorf("sketch: line: %w", err)
	}
	return EntityRef{Kind: kernel.KindSketchSegment, AtMM: p1.Add(p2).Scale(0.5)}, nil
}

// CreatePoint appends a sketch point at a millimeter coordinate.
func (s *Session) CreatePoint(x, y float64) (EntityRef, error) {
	if err := s.requireOpen("CreatePoint"); err != nil {
		return EntityRef{}, err
	}
	p := geom.Vec3{X: x, Y: y}
	if _, err := s.doc.SketchPoint(geom.MMVecToBase(p)); err != nil {
		return EntityRef{}, fmt.Errorf("sketch: point: %w", err)
	}
	return EntityRef{Kind: kernel.KindSketchPoint, AtMM: p}, nil
}
