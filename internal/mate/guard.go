package mate

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
)

var ErrInterferenceDetected = errors.New("mate: interference detected")

// DefaultInterferenceToleranceMM is the overlap below which touching bodies
// are not treated as interpenetrating.
const DefaultInterferenceToleranceMM = 0.001

// InterferenceGuard flags mates that sank one component into the other.
// Axis-aligned box overlap is a necessary-but-not-sufficient proxy: angled
// interpenetration can slip through and near-misses inside the tolerance can
// trip it. Its job is to auto-reject the wrong alignment choice without a
// full solid-solid computation.
type InterferenceGuard struct {
	doc kernel.Document
	tol float64
}

// NewInterferenceGuard builds a guard with the given overlap tolerance in
// millimeters; zero or negative falls back to the default.
func NewInterferenceGuard(doc kernel.Document, tolMM float64) *InterferenceGuard {
	if tolMM <= 0 {
		tolMM = DefaultInterferenceToleranceMM
	}
	return &InterferenceGuard{doc: doc, tol: geom.MMToBase(tolMM)}
}

// Interferes re-reads both components' assembly-space boxes and reports
// whether they interpenetrate beyond tolerance on all three axes at once.
func (g *InterferenceGuard) Interferes(a, b kernel.Component) bool {
	boxA, boxB := a.Box(), b.Box()
	if !boxA.OverlapsAllAxes(boxB, g.tol) {
		return false
	}
	log.Debug().
		Str("a", a.Name()).
		Str("b", b.Name()).
		Str("box_a", boxA.String()).
		Str("box_b", boxB.String()).
		Msg("mate.guard overlap on all axes")
	return true
}

// Rollback deletes the just-created mate feature and rebuilds, leaving the
// document exactly as before the attempt. Runs synchronously inside the
// call that detected the interference; there is no deferred cleanup.
func (g *InterferenceGuard) Rollback(created kernel.Feature) error {
	if created == nil {
		return fmt.Errorf("mate: rollback without a created feature")
	}
	g.doc.ClearSelection()
	if !g.doc.SelectEntity(created, false, kernel.MarkNone) {
		return fmt.Errorf("mate: rollback could not select feature %q", created.Name())
	}
	if err := g.doc.DeleteSelected(); err != nil {
		return fmt.Errorf("mate: rollback delete %q: %w", created.Name(), err)
	}
	if err := g.doc.Rebuild(); err != nil {
		return fmt.Errorf("mate: rollback rebuild: %w", err)
	}
	log.Info().Str("feature", created.Name()).Msg("mate.guard rolled back interfering mate")
	return nil
}
