package projection

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"stage-lab/domain"
)

func TestTimeline_AccumulatesInArrivalOrder(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("alice")
	sender := domain.NewIdentifier()

	// Given three words received sequentially
	for _, payload := range []string{"HELLO", "FROM", "STAGE"} {
		req.NoError(timeline.Receive(context.Background(), sender, domain.MustWord(payload)))
	}

	// Then entries and renderings preserve arrival order
	req.Equal([]string{"HELLO", "FROM", "STAGE"}, timeline.Rendered())
	entries := timeline.Entries()
	req.Len(entries, 3)
	req.Equal(sender, entries[0].Sender)
}

func TestTimeline_SnapshotIsDetached(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("bob")
	sender := domain.NewIdentifier()

	req.NoError(timeline.Receive(context.Background(), sender, domain.MustWord("FIRST")))
	snapshot := timeline.Entries()

	// When more words arrive after the snapshot
	req.NoError(timeline.Receive(context.Background(), sender, domain.MustWord("SECOND")))

	// Then the snapshot does not grow
	req.Len(snapshot, 1)
	req.Len(timeline.Entries(), 2)
}

func TestTimeline_ConcurrentReceives(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("carol")
	word := domain.MustWord("NOISE")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = timeline.Receive(context.Background(), domain.NewIdentifier(), word)
		}()
	}
	wg.Wait()

	req.Len(timeline.Entries(), 50)
}
