// Package participant provides the concrete speaker and listener roles of the
// pattern. Participants hold identifiers, never listener references; all
// resolution goes through the registry at delivery time.
package participant

import (
	"context"
	"sync"

	"stage-lab/contract"
	"stage-lab/domain"
)

// Speaker originates words to a set of recipient identifiers it holds but
// does not resolve itself. It owns its recipient set; the registry does not
// track speakers.
//
// Speaker is safe for concurrent use by multiple goroutines, but the
// per-sender dispatch-initiation ordering guarantee only covers sequential
// Say calls from a single goroutine.
type Speaker struct {
	mu         sync.Mutex
	id         domain.Identifier
	recipients map[domain.Identifier]struct{}
	deliverer  contract.IDeliverer
}

func NewSpeaker(deliverer contract.IDeliverer) *Speaker {
	return &Speaker{
		id:         domain.NewIdentifier(),
		recipients: make(map[domain.Identifier]struct{}),
		deliverer:  deliverer,
	}
}

func (s *Speaker) ID() domain.Identifier {
	return s.id
}

// Address adds recipients to the set. Duplicates collapse.
func (s *Speaker) Address(ids ...domain.Identifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.recipients[id] = struct{}{}
	}
}

// Forget removes a recipient from the set. Unknown identifiers are ignored;
// the speaker cannot know liveness anyway.
func (s *Speaker) Forget(id domain.Identifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recipients, id)
}

// Recipients returns a snapshot of the current recipient set.
func (s *Speaker) Recipients() []domain.Identifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]domain.Identifier, 0, len(s.recipients))
	for id := range s.recipients {
		ids = append(ids, id)
	}
	return ids
}

// Say delivers the word to every current recipient and blocks until the join
// of all per-recipient outcomes. Recipients that departed are silently absent
// from the result.
func (s *Speaker) Say(ctx context.Context, w domain.Word) []domain.Outcome {
	return s.deliverer.Deliver(ctx, s.id, s.Recipients(), w)
}
