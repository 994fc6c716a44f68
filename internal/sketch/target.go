package sketch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

var (
	ErrInvalidTarget    = errors.New("sketch: invalid target")
	ErrInvalidReference = errors.New("sketch: invalid entity reference")
)

// EntityRef re-selects existing sketch geometry: an entity type tag, a pick
// coordinate in current-sketch millimeters, and an optional display name
// that takes precedence over the coordinate when set.
type EntityRef struct {
	Kind kernel.EntityKind
	AtMM geom.Vec3
	Name string
}

// Validate enforces reference fields before a reselect sequence starts.
func (r EntityRef) Validate() error {
	if strings.TrimSpace(string(r.Kind)) == "" {
		return fmt.Errorf("%w: missing entity kind", ErrInvalidReference)
	}
	return nil
}

func (r EntityRef) String() string {
	if r.Name != "" {
		return fmt.Sprintf("%s %q", r.Kind, r.Name)
	}
	return fmt.Sprintf("%s at %smm", r.Kind, r.AtMM)
}

// TargetKind tags the Begin target variant.
type TargetKind string

const (
	TargetPlane TargetKind = "plane"
	TargetFace  TargetKind = "face"
)

// Target names where a sketch opens: a reference plane resolved through the
// fallback chain, or an explicitly picked planar face.
type Target struct {
	Kind  TargetKind
	Plane string
	Face  EntityRef
}

// OnPlane targets a reference plane by name.
func OnPlane(name string) Target {
	return Target{Kind: TargetPlane, Plane: name}
}

// OnFace targets a model face picked by an entity reference. The face must
// verify planar or Begin fails before any sketch entity exists.
func OnFace(ref EntityRef) Target {
	return Target{Kind: TargetFace, Face: ref}
}

// Validate enforces the variant invariants.
func (t Target) Validate() error {
	switch t.Kind {
	case TargetPlane:
		if strings.TrimSpace(t.Plane) == "" {
			return fmt.Errorf("%w: missing plane name", ErrInvalidTarget)
		}
		return nil
	case TargetFace:
		if err := t.Face.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
		if t.Face.Kind != kernel.KindFace {
			return fmt.Errorf("%w: face target picks %s", ErrInvalidTarget, t.Face.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTarget, t.Kind)
	}
}

func (t Target) String() string {
	if t.Kind == TargetPlane {
		return fmt.Sprintf("plane %q", t.Plane)
	}
	return t.Face.String()
}
