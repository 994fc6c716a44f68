package mate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/observability"
	"github.com/partforge/cadctl/internal/selector"
)

var ErrInvalidPair = errors.New("mate: invalid pair")

// Pair is one desired coincident mate between two named components, each
// face picked by a semantic selector. Flipped requests the anti-aligned
// variant of the constraint.
type Pair struct {
	ComponentA string
	SelectorA  selector.FaceSelector
	ComponentB string
	SelectorB  selector.FaceSelector
	Flipped    bool
}

// Validate enforces pair fields before any kernel call.
func (p Pair) Validate() error {
	if strings.TrimSpace(p.ComponentA) == "" {
		return fmt.Errorf("%w: missing component A", ErrInvalidPair)
	}
	if strings.TrimSpace(p.ComponentB) == "" {
		return fmt.Errorf("%w: missing component B", ErrInvalidPair)
	}
	if p.ComponentA == p.ComponentB {
		return fmt.Errorf("%w: %q mated to itself", ErrInvalidPair, p.ComponentA)
	}
	if err := p.SelectorA.Validate(); err != nil {
		return fmt.Errorf("%w: selector A: %v", ErrInvalidPair, err)
	}
	if err := p.SelectorB.Validate(); err != nil {
		return fmt.Errorf("%w: selector B: %v", ErrInvalidPair, err)
	}
	return nil
}

func (p Pair) String() string {
	return fmt.Sprintf("%s[%s] -> %s[%s] flipped=%t",
		p.ComponentA, p.SelectorA, p.ComponentB, p.SelectorB, p.Flipped)
}

// PairStatus classifies one pair's terminal state inside a batch.
type PairStatus string

const (
	StatusCommitted  PairStatus = "committed"
	StatusUnresolved PairStatus = "unresolved"
	StatusRejected   PairStatus = "rejected"
	StatusRolledBack PairStatus = "rolled_back"
)

// PairResult is one pair's outcome. Created is non-nil only for committed
// pairs; rolled-back features are already deleted when the result surfaces.
type PairResult struct {
	Pair    Pair
	Status  PairStatus
	Created kernel.Feature
	Err     error
}

func (r PairResult) Succeeded() bool { return r.Status == StatusCommitted }

// Tally is the batch end state: every pair lands in exactly one bucket.
type Tally struct {
	Succeeded int
	Failed    int
}

// Orchestrator drives mate pairs through resolve, command, and interference
// guard. Face mating is heuristic: a probe can miss and an alignment can be
// wrong. A pair failure never halts the batch; it is tallied and the next
// pair proceeds.
type Orchestrator struct {
	doc       kernel.Document
	resolver  *selector.Resolver
	commander *Commander
	guard     *InterferenceGuard
}

// NewOrchestrator wires the mating engine for one assembly document.
// Interference tolerance is in millimeters.
func NewOrchestrator(doc kernel.Document, tolMM float64) *Orchestrator {
	return &Orchestrator{
		doc:       doc,
		resolver:  selector.NewResolver(doc),
		commander: NewCommander(doc),
		guard:     NewInterferenceGuard(doc, tolMM),
	}
}

// MateAll attempts every pair in order and reports the tally plus per-pair
// outcomes. Resolution failures, command rejections, and interference
// rollbacks all count as failed pairs without stopping the batch.
func (o *Orchestrator) MateAll(pairs []Pair) (Tally, []PairResult) {
	tally := Tally{}
	results := make([]PairResult, 0, len(pairs))
	for i, pair := range pairs {
		start := time.Now()
		res := o.attempt(pair)
		observability.RecordMateAttempt(string(res.Status), time.Since(start))

		if res.Succeeded() {
			tally.Succeeded++
			log.Info().
				Int("pair", i).
				Str("status", string(res.Status)).
				Str("feature", res.Created.Name()).
				Msgf("mate.batch %s", pair)
		} else {
			tally.Failed++
			log.Warn().
				Int("pair", i).
				Str("status", string(res.Status)).
				Err(res.Err).
				Msgf("mate.batch %s", pair)
		}
		results = append(results, res)
	}
	log.Info().
		Int("succeeded", tally.Succeeded).
		Int("failed", tally.Failed).
		Msg("mate.batch complete")
	return tally, results
}

func (o *Orchestrator) attempt(pair Pair) PairResult {
	if err := pair.Validate(); err != nil {
		return PairResult{Pair: pair, Status: StatusUnresolved, Err: err}
	}

	compA, ok := o.doc.Component(pair.ComponentA)
	if !ok {
		return PairResult{Pair: pair, Status: StatusUnresolved,
			Err: fmt.Errorf("%w: component %q not in assembly", selector.ErrSelectionFailed, pair.ComponentA)}
	}
	compB, ok := o.doc.Component(pair.ComponentB)
	if !ok {
		return PairResult{Pair: pair, Status: StatusUnresolved,
			Err: fmt.Errorf("%w: component %q not in assembly", selector.ErrSelectionFailed, pair.ComponentB)}
	}

	faceA, err := o.resolver.ResolveFace(compA, pair.SelectorA)
	if err != nil {
		return PairResult{Pair: pair, Status: StatusUnresolved, Err: err}
	}
	faceB, err := o.resolver.ResolveFace(compB, pair.SelectorB)
	if err != nil {
		return PairResult{Pair: pair, Status: StatusUnresolved, Err: err}
	}

	outcome, err := o.commander.Coincident(faceA, faceB, pair.Flipped)
	if err != nil {
		return PairResult{Pair: pair, Status: StatusRejected, Err: err}
	}

	if o.guard.Interferes(compA, compB) {
		err := fmt.Errorf("%w: %q against %q", ErrInterferenceDetected, pair.ComponentA, pair.ComponentB)
		if rerr := o.guard.Rollback(outcome.Created); rerr != nil {
			err = fmt.Errorf("%w; rollback failed: %v", ErrInterferenceDetected, rerr)
		}
		return PairResult{Pair: pair, Status: StatusRolledBack, Err: err}
	}

	return PairResult{Pair: pair, Status: StatusCommitted, Created: outcome.Created}
}
