package sketch

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/refplane"
	"github.com/partforge/cadctl/internal/selector"
)

var ErrStateViolation = errors.New("sketch: state violation")

// State is the session phase. Entity-creation and constraint commands are
// valid only while Open; Begin and feature-producing commands need Closed
// and force an implicit End when a sketch is still open.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// Session drives incremental 2D construction on one document. Exactly one
// sketch can be open at a time; the session serializes every command
// against the document's global selection set.
type Session struct {
	doc     kernel.Document
	state   State
	prefix  string
	deriver *refplane.Deriver
}

// NewSession starts a Closed session. helperPrefix feeds both the plane
// alias resolution in Begin and the names the post-extrude deriver assigns.
func NewSession(doc kernel.Document, helperPrefix string) *Session {
	return &Session{
		doc:     doc,
		state:   StateClosed,
		prefix:  helperPrefix,
		deriver: refplane.NewDeriver(doc, helperPrefix),
	}
}

func (s *Session) State() State { return s.state }

// Begin opens a sketch on the target. An open sketch is closed first. Face
// targets must verify planar; sketching on a cylindrical or filleted
// surface fails here, before any entity is created.
func (s *Session) Begin(target Target) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.state == StateOpen {
		log.Debug().Msg("sketch.begin closing open sketch first")
		if err := s.End(); err != nil {
			return err
		}
	}

	switch target.Kind {
	case TargetPlane:
		plane, err := refplane.Resolve(s.doc, target.Plane, s.prefix)
		if err != nil {
			return err
		}
		s.doc.ClearSelection()
		if !s.doc.SelectEntity(plane, false, kernel.MarkNone) {
			return fmt.Errorf("%w: plane %q rejected by selection", selector.ErrSelectionFailed, plane.Name())
		}

	default:
		ref := target.Face
		s.doc.ClearSelection()
		if !s.doc.SelectByID(ref.Name, ref.Kind, geom.MMVecToBase(ref.AtMM), false, kernel.MarkNone) {
			return fmt.Errorf("%w: no face under %s", selector.ErrSelectionFailed, ref)
		}
		ent, ok := s.doc.SelectedObject(kernel.MarkNone, 1)
		if !ok {
			return fmt.Errorf("%w: face pick produced no selection", selector.ErrSelectionFailed)
		}
		face, ok := ent.(kernel.Face)
		if !ok {
			return fmt.Errorf("%w: %s selected %s, not a face", selector.ErrSelectionFailed, ref, ent.Kind())
		}
		if face.Surface() != kernel.SurfacePlane {
			return fmt.Errorf("cannot sketch on %s surface %s: %w",
				face.Surface(), face.ID(), selector.ErrNonPlanarGeometry)
		}
	}

	if err := s.doc.InsertSketch(); err != nil {
		return fmt.Errorf("sketch: begin on %s: %w", target, err)
	}
	s.state = StateOpen
	log.Debug().Str("target", target.String()).Msg("sketch.begin open")
	return nil
}

// End closes the open sketch, keeping its geometry for the next feature
// command.
func (s *Session) End() error {
	if err := s.requireOpen("End"); err != nil {
		return err
	}
	if err := s.doc.ExitSketch(); err != nil {
		return fmt.Errorf("sketch: end: %w", err)
	}
	s.state = StateClosed
	log.Debug().Msg("sketch.end closed")
	return nil
}

func (s *Session) requireOpen(op string) error {
	if s.state != StateOpen {
		return fmt.Errorf("%w: %s requires an open sketch", ErrStateViolation, op)
	}
	return nil
}
