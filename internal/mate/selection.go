package mate

import (
	"errors"
	"fmt"

	"github.com/partforge/cadctl/internal/kernel"
)

var ErrSelectionLost = errors.New("mate: selection lost")

// SelectionBatch accumulates resolved handles for one multi-entity pick
// consumed by a single command. Committing clears the document's global
// selection set first, then picks the first entry primary and appends the
// rest, so no state from an earlier call can leak into the command.
type SelectionBatch struct {
	entries []batchEntry
}

type batchEntry struct {
	ent  kernel.Entity
	mark int
}

// Add stages one entity under a selection mark.
func (b *SelectionBatch) Add(e kernel.Entity, mark int) {
	b.entries = append(b.entries, batchEntry{ent: e, mark: mark})
}

func (b *SelectionBatch) Len() int { return len(b.entries) }

// Commit replays the staged picks against the document. A handle the kernel
// no longer accepts aborts the whole batch and leaves the selection empty;
// a half-built selection must never reach a command.
func (b *SelectionBatch) Commit(sel kernel.Selector) error {
	if len(b.entries) == 0 {
		return fmt.Errorf("%w: empty batch", ErrSelectionLost)
	}
	sel.ClearSelection()
	for i, entry := range b.entries {
		if !sel.SelectEntity(entry.ent, i > 0, entry.mark) {
			sel.ClearSelection()
			return fmt.Errorf("%w: entry %d of %d rejected", ErrSelectionLost, i+1, len(b.entries))
		}
	}
	return nil
}
