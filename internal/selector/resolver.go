package selector

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

// Resolver turns FaceSelectors into concrete kernel faces on one document.
type Resolver struct {
	doc kernel.Document
}

func NewResolver(doc kernel.Document) *Resolver {
	return &Resolver{doc: doc}
}

// ResolveFace maps a selector to a face of the given component. Named
// directions probe the component's assembly-space box; point selectors
// transform the part-local millimeter point through the component placement
// and pick directly. Failures come back as errors, never panics, so a batch
// caller can count them and move on.
func (r *Resolver) ResolveFace(comp kernel.Component, sel FaceSelector) (ResolvedFace, error) {
	if err := sel.Validate(); err != nil {
		return ResolvedFace{}, err
	}

	switch sel.Kind {
	case KindNamedDirection:
		face, err := Probe(r.doc, comp.Box(), sel.Direction)
		if err != nil {
			return ResolvedFace{}, fmt.Errorf("component %q: %w", comp.Name(), err)
		}
		return ResolvedFace{Face: face, Component: comp}, nil

	default:
		at := comp.Transform().Apply(geom.MMVecToBase(sel.PointMM))
		r.doc.ClearSelection()
		if !r.doc.SelectByID("", kernel.KindFace, at, false, kernel.MarkNone) {
			return ResolvedFace{}, fmt.Errorf("%w: no face of %q under point %smm",
				ErrSelectionFailed, comp.Name(), sel.PointMM)
		}
		ent, ok := r.doc.SelectedObject(kernel.MarkNone, 1)
		if !ok {
			return ResolvedFace{}, fmt.Errorf("%w: pick on %q produced no selection",
				ErrSelectionFailed, comp.Name())
		}
		face, ok := ent.(kernel.Face)
		if !ok {
			return ResolvedFace{}, fmt.Errorf("%w: pick on %q selected %s, not a face",
				ErrSelectionFailed, comp.Name(), ent.Kind())
		}
		if face.Surface() != kernel.SurfacePlane {
			return ResolvedFace{}, fmt.Errorf("%w: point %smm on %q lands on a %s surface",
				ErrNonPlanarGeometry, sel.PointMM, comp.Name(), face.Surface())
		}
		log.Debug().
			Str("component", comp.Name()).
			Str("face", face.ID()).
			Str("point", sel.PointMM.String()).
			Msg("selector.resolve point pick")
		return ResolvedFace{Face: face, Component: comp}, nil
	}
}
