package selector

import (
	"errors"
	"fmt"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

var (
	ErrInvalidSelector   = errors.New("selector: invalid selector")
	ErrSelectionFailed   = errors.New("selector: selection failed")
	ErrNonPlanarGeometry = errors.New("selector: non-planar geometry")
)

// Kind tags the FaceSelector variant.
type Kind string

const (
	KindNamedDirection Kind = "direction"
	KindPartPoint      Kind = "part-point"
)

// FaceSelector describes one face of a component semantically: either by a
// named direction of its bounding box, or by a part-local millimeter point
// lying on the face. A sum type with a kind tag, not a dispatch hierarchy.
type FaceSelector struct {
	Kind      Kind
	Direction geom.Direction
	PointMM   geom.Vec3
}

// ByDirection selects the face a named direction points at.
func ByDirection(d geom.Direction) FaceSelector {
	return FaceSelector{Kind: KindNamedDirection, Direction: d}
}

// ByPartPointMM selects the face under a part-local millimeter point.
func ByPartPointMM(p geom.Vec3) FaceSelector {
	return FaceSelector{Kind: KindPartPoint, PointMM: p}
}

// Validate enforces the variant invariants before resolution.
func (s FaceSelector) Validate() error {
	switch s.Kind {
	case KindNamedDirection:
		if _, err := geom.ParseDirection(string(s.Direction)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSelector, err)
		}
		return nil
	case KindPartPoint:
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSelector, s.Kind)
	}
}

func (s FaceSelector) String() string {
	if s.Kind == KindNamedDirection {
		return fmt.Sprintf("direction:%s", s.Direction)
	}
	return fmt.Sprintf("point:%smm", s.PointMM)
}

// ResolvedFace is a concrete kernel face handle plus the component it was
// resolved on. Faces are verified planar before they participate in a mate.
type ResolvedFace struct {
	Face      kernel.Face
	Component kernel.Component
}
