package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownDirection = errors.New("geom: unknown direction")

// Direction names one face of an axis-aligned body. The mapping follows the
// kernel's default datum orientation: right/left span X, front/back span Y,
// top/bottom span Z.
type Direction string

const (
	DirTop    Direction = "top"
	DirBottom Direction = "bottom"
	DirLeft   Direction = "left"
	DirRight  Direction = "right"
	DirFront  Direction = "front"
	DirBack   Direction = "back"
)

// Directions lists all named directions in helper-plane derivation order.
func Directions() []Direction {
	return []Direction{DirFront, DirBack, DirLeft, DirRight, DirTop, DirBottom}
}

// Axis returns 0(X), 1(Y), or 2(Z) for the direction's normal axis.
func (d Direction) Axis() int {
	switch d {
	case DirLeft, DirRight:
		return 0
	case DirFront, DirBack:
		return 1
	default:
		return 2
	}
}

// LateralAxes returns the two axes perpendicular to axis, ascending.
func LateralAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// Sign returns +1 for the positive-axis face and -1 for the negative one.
func (d Direction) Sign() float64 {
	switch d {
	case DirRight, DirTop, DirFront:
		return 1
	default:
		return -1
	}
}

// Outward returns the unit normal pointing out of the named face.
func (d Direction) Outward() Vec3 {
	return Vec3{}.WithAxis(d.Axis(), d.Sign())
}

func (d Direction) String() string {
	return string(d)
}

// ParseDirection maps free-form text onto a Direction. Unknown names fail
// with the closest known name attached, so batch scripts with typos surface
// a usable message instead of a bare miss.
func ParseDirection(raw string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, d := range Directions() {
		if name == string(d) {
			return d, nil
		}
	}
	if closest, ok := closestDirection(name); ok {
		return "", fmt.Errorf("%w: %q (closest %q)", ErrUnknownDirection, raw, closest)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, raw)
}

func closestDirection(name string) (Direction, bool) {
	if name == "" {
		return "", false
	}
	best := Direction("")
	bestDist := -1
	for _, d := range Directions() {
		dist := levenshtein.ComputeDistance(name, string(d))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if bestDist > len(string(best)) {
		return "", false
	}
	return best, true
}
