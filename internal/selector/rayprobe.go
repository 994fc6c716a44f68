package selector

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/observability"
)

// Probe geometry scales with the target box so one set of constants works
// for bolt-scale and cabinet-scale parts alike.
const (
	// probeMarginFraction sizes ray thickness and stand-off relative to the
	// largest box dimension.
	probeMarginFraction = 0.10
	// probeFloorMM keeps rays usable on very small boxes.
	probeFloorMM = 2.0
	// lateralOffsetFraction shifts the two non-centered rays off the face
	// center, clear of edges and fillets.
	lateralOffsetFraction = 0.25
)

// Ray is one thickened probe segment, base units, cast inward from outside
// the box.
type Ray struct {
	Origin geom.Vec3
	Dir    geom.Vec3
	Radius float64
}

// probeMargin returns the shared ray radius and stand-off distance for a box.
func probeMargin(box geom.Box3) float64 {
	margin := box.LargestExtent() * probeMarginFraction
	if floor := geom.MMToBase(probeFloorMM); margin < floor {
		margin = floor
	}
	return margin
}

// CandidateRays builds the three probe rays for one named face of a box:
// centered first, then offset to either side along the first lateral axis.
// Try-order matters; the first planar hit wins.
func CandidateRays(box geom.Box3, dir geom.Direction) []Ray {
	axis := dir.Axis()
	margin := probeMargin(box)

	faceCoord := box.Max.Axis(axis)
	if dir.Sign() < 0 {
		faceCoord = box.Min.Axis(axis)
	}
	center := box.Center().WithAxis(axis, faceCoord+dir.Sign()*margin)

	u, _ := geom.LateralAxes(axis)
	offset := box.Extent(u) * lateralOffsetFraction

	inward := dir.Outward().Scale(-1)
	rays := make([]Ray, 0, 3)
	for _, shift := range []float64{0, offset, -offset} {
		origin := center.WithAxis(u, center.Axis(u)+shift)
		rays = append(rays, Ray{Origin: origin, Dir: inward, Radius: margin})
	}
	return rays
}

// Probe resolves the named face of a box by casting the candidate rays in
// order and accepting the first planar hit. Cylindrical or filleted hits are
// rejected and probing continues. Name-based plane lookup is unreliable
// across inconsistently named documents; geometry is the ground truth here.
func Probe(sel kernel.Selector, box geom.Box3, dir geom.Direction) (kernel.Face, error) {
	sel.ClearSelection()

	sawNonPlanar := false
	for i, ray := range CandidateRays(box, dir) {
		if !sel.SelectByRay(ray.Origin, ray.Dir, ray.Radius, kernel.KindFace, false, kernel.MarkNone) {
			observability.RecordProbeCast(string(dir), "miss")
			log.Debug().
				Str("direction", string(dir)).
				Int("ray", i).
				Msg("selector.probe miss")
			continue
		}
		ent, ok := sel.SelectedObject(kernel.MarkNone, 1)
		if !ok {
			observability.RecordProbeCast(string(dir), "miss")
			continue
		}
		face, ok := ent.(kernel.Face)
		if !ok {
			observability.RecordProbeCast(string(dir), "miss")
			continue
		}
		if face.Surface() != kernel.SurfacePlane {
			sawNonPlanar = true
			observability.RecordProbeCast(string(dir), "non_planar")
			log.Debug().
				Str("direction", string(dir)).
				Int("ray", i).
				Str("surface", string(face.Surface())).
				Msg("selector.probe rejected non-planar hit")
			continue
		}
		observability.RecordProbeCast(string(dir), "planar")
		log.Debug().
			Str("direction", string(dir)).
			Int("ray", i).
			Str("face", face.ID()).
			Msg("selector.probe hit")
		return face, nil
	}

	if sawNonPlanar {
		return nil, fmt.Errorf("%w: %s face of %s has no planar candidate", ErrNonPlanarGeometry, dir, box)
	}
	return nil, fmt.Errorf("%w: no face hit probing %s of %s", ErrSelectionFailed, dir, box)
}
