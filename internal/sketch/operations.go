package sketch

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/selector"
)

// ApplyRelation constrains previously created entities. Each reference is
// re-selected in sequence, first primary and the rest appended, and then the
// relation command is issued over the whole selection. Any reselect miss
// aborts with the selection cleared: a partial constraint must never reach
// the kernel.
func (s *Session) ApplyRelation(rel kernel.RelationType, refs ...EntityRef) error {
	if err := s.requireOpen("ApplyRelation"); err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("%w: relation %q without entities", ErrInvalidReference, rel)
	}
	for _, ref := range refs {
		if err := ref.Validate(); err != nil {
			return err
		}
	}

	s.doc.ClearSelection()
	for i, ref := range refs {
		if !s.doc.SelectByID(ref.Name, ref.Kind, geom.MMVecToBase(ref.AtMM), i > 0, kernel.MarkNone) {
			s.doc.ClearSelection()
			return fmt.Errorf("reselect %s for %q: %w", ref, rel, selector.ErrSelectionFailed)
		}
	}
	if err := s.doc.AddRelation(rel); err != nil {
		return fmt.Errorf("sketch: relation %q: %w", rel, err)
	}
	log.Debug().Str("relation", string(rel)).Int("entities", len(refs)).Msg("sketch.relation applied")
	return nil
}

// FullyDefine auto-constrains the open sketch with the kernel's horizontal,
// vertical, and distance relation classes.
func (s *Session) FullyDefine() error {
	if err := s.requireOpen("FullyDefine"); err != nil {
		return err
	}
	if err := s.doc.FullyDefineSketch(); err != nil {
		return fmt.Errorf("sketch: fully define: %w", err)
	}
	return nil
}

// Extrude realizes the last sketch as a blind or mid-plane boss, or as a
// cut. An open sketch is closed first. A successful extrude derives the
// body's helper planes so later sketches and mates can pick them by name.
func (s *Session) Extrude(depthMM float64, midPlane, cut bool) (kernel.Feature, error) {
	if depthMM <= 0 {
		return nil, fmt.Errorf("%w: extrude depth %vmm", ErrInvalidGeometry, depthMM)
	}
	if s.state == StateOpen {
		log.Debug().Msg("sketch.extrude closing open sketch first")
		if err := s.End(); err != nil {
			return nil, err
		}
	}

	feat, err := s.doc.Extrude(geom.MMToBase(depthMM), midPlane, cut)
	if err != nil {
		return nil, fmt.Errorf("sketch: extrude: %w", err)
	}
	log.Info().
		Str("feature", feat.Name()).
		Float64("depth_mm", depthMM).
		Bool("mid_plane", midPlane).
		Bool("cut", cut).
		Msg("sketch.extrude committed")

	if _, err := s.deriver.Derive(); err != nil {
		return nil, fmt.Errorf("sketch: helper planes after %q: %w", feat.Name(), err)
	}
	return feat, nil
}
