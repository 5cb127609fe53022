// Package projection builds local timelines from received words.
// Handles ordering and snapshots for inspection.
// Does not emit words or interact with the registry directly.
package projection

import (
	"context"
	"sync"

	"stage-lab/domain"
)

// Entry is one received word with its sender identity.
type Entry struct {
	Sender domain.Identifier
	Word   domain.Word
}

// Timeline is a stock listener that accumulates every word it receives, in
// arrival order. Useful as a ready-made listener implementation and in tests.
type Timeline struct {
	mu      sync.Mutex
	Owner   string
	entries []Entry
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{
		Owner:   owner,
		entries: nil,
	}
}

// Receive implements the contract.Listener interface.
func (t *Timeline) Receive(_ context.Context, sender domain.Identifier, w domain.Word) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{Sender: sender, Word: w})
	return nil
}

// Entries returns a snapshot of everything received so far.
func (t *Timeline) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot := make([]Entry, len(t.entries))
	copy(snapshot, t.entries)
	return snapshot
}

// Rendered returns the payloads received so far, in arrival order.
func (t *Timeline) Rendered() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	rendered := make([]string, len(t.entries))
	for i, e := range t.entries {
		rendered[i] = e.Word.Render()
	}
	return rendered
}
