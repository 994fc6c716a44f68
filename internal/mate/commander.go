package mate

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/selector"
)

var ErrCommandRejected = errors.New("mate: command rejected")

// Outcome records one mate command result for rollback bookkeeping. Created
// is nil unless Success; the feature is deleted immediately if the pair is
// rolled back, never kept around.
type Outcome struct {
	Success bool
	Created kernel.Feature
}

// Commander executes the select-then-mate protocol on one document.
type Commander struct {
	doc kernel.Document
}

func NewCommander(doc kernel.Document) *Commander {
	return &Commander{doc: doc}
}

// Coincident mates two resolved faces: clear selection, pick A primary and
// B appended under the mate mark, issue the coincident command with the
// requested alignment. Success is decided by the terminal-feature delta
// across the call, not by the kernel's status code; the code is observed
// to report errors on mates that were in fact created. Only the absence of
// a new feature is a hard failure.
func (c *Commander) Coincident(a, b selector.ResolvedFace, flipped bool) (Outcome, error) {
	for _, rf := range []selector.ResolvedFace{a, b} {
		if rf.Face == nil {
			return Outcome{}, fmt.Errorf("%w: unresolved face", ErrCommandRejected)
		}
		if rf.Face.Surface() != kernel.SurfacePlane {
			return Outcome{}, fmt.Errorf("face %s of %q: %w",
				rf.Face.ID(), rf.Component.Name(), selector.ErrNonPlanarGeometry)
		}
	}

	batch := &SelectionBatch{}
	batch.Add(a.Face, kernel.MarkMate)
	batch.Add(b.Face, kernel.MarkMate)
	if err := batch.Commit(c.doc); err != nil {
		return Outcome{}, err
	}

	before := terminalFeature(c.doc)
	status := c.doc.AddMate(kernel.MateCoincident, alignment(flipped))
	after := terminalFeature(c.doc)

	if !featureAppended(before, after) {
		return Outcome{}, fmt.Errorf("%w: kernel status %q and no new feature", ErrCommandRejected, status)
	}
	if status != kernel.MateStatusOK {
		log.Debug().
			Str("status", string(status)).
			Str("feature", after.Name()).
			Msg("mate.coincident kernel status contradicted by new feature; trusting the tree")
	}
	return Outcome{Success: true, Created: after}, nil
}

func alignment(flipped bool) kernel.MateAlignment {
	if flipped {
		return kernel.AlignAntiAligned
	}
	return kernel.AlignAligned
}

// terminalFeature walks to the last node of the feature tree, nil on an
// empty document.
func terminalFeature(doc kernel.FeatureOps) kernel.Feature {
	f, ok := doc.FirstFeature()
	if !ok {
		return nil
	}
	for {
		next, ok := f.Next()
		if !ok {
			return f
		}
		f = next
	}
}

// featureAppended reports whether the terminal feature changed across a
// command, i.e. the command grew the tree.
func featureAppended(before, after kernel.Feature) bool {
	if after == nil {
		return false
	}
	return before == nil || before.ID() != after.ID()
}
