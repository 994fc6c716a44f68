package refplane

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/kernel"
)

var ErrPlaneNotFound = errors.New("refplane: plane not found")

// DefaultHelperPrefix names auto-generated helper planes when no prefix is
// configured.
const DefaultHelperPrefix = "Helper"

// Base datum plane names as the kernel creates them in new documents.
const (
	datumFront = "Front Plane"
	datumTop   = "Top Plane"
	datumRight = "Right Plane"
)

// baseDatumFor maps a normal axis onto its datum plane name.
func baseDatumFor(axis int) string {
	switch axis {
	case 0:
		return datumRight
	case 1:
		return datumFront
	default:
		return datumTop
	}
}

// Resolve finds a reference plane by the fixed fallback chain:
//
//  1. exact feature-name match;
//  2. helper alias (prefix+name) or name-prefix match among auto-generated
//     helper planes;
//  3. the first reference plane in the document.
//
// Only a document without any reference plane fails. The order is part of
// the contract; it decides the pick on ambiguous documents.
func Resolve(doc kernel.Document, name, helperPrefix string) (kernel.Feature, error) {
	if strings.TrimSpace(helperPrefix) == "" {
		helperPrefix = DefaultHelperPrefix
	}
	all := planes(doc)
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %q in a document without reference planes", ErrPlaneNotFound, name)
	}

	for _, p := range all {
		if p.Name() == name {
			return p, nil
		}
	}
	if closest, ok := closestPlaneName(name, all); ok {
		log.Debug().
			Str("requested", name).
			Str("closest", closest).
			Msg("refplane.resolve exact miss, trying helper alias")
	}

	if name != "" {
		alias := helperPrefix + name
		for _, p := range all {
			if !strings.HasPrefix(p.Name(), helperPrefix) {
				continue
			}
			if p.Name() == alias || strings.HasPrefix(p.Name(), name) {
				log.Debug().
					Str("requested", name).
					Str("plane", p.Name()).
					Msg("refplane.resolve helper alias match")
				return p, nil
			}
		}
	}

	log.Debug().
		Str("requested", name).
		Str("plane", all[0].Name()).
		Msg("refplane.resolve falling back to first plane")
	return all[0], nil
}

// planes lists the document's reference planes in feature-tree order.
func planes(doc kernel.FeatureOps) []kernel.Feature {
	var out []kernel.Feature
	f, ok := doc.FirstFeature()
	for ok {
		if f.TypeName() == kernel.FeatureTypeRefPlane {
			out = append(out, f)
		}
		f, ok = f.Next()
	}
	return out
}

// findPlane returns the reference plane with the exact name, if any.
func findPlane(doc kernel.FeatureOps, name string) (kernel.Feature, bool) {
	for _, p := range planes(doc) {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// closestPlaneName decorates miss logs with the nearest existing plane name.
func closestPlaneName(name string, all []kernel.Feature) (string, bool) {
	if name == "" {
		return "", false
	}
	best := ""
	bestDist := -1
	for _, p := range all {
		dist := levenshtein.ComputeDistance(name, p.Name())
		if bestDist < 0 || dist < bestDist {
			best, bestDist = p.Name(), dist
		}
	}
	return best, best != ""
}
