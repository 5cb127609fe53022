// Package screening rejects words whose payload contains a blocklisted term.
// It sits between dispatch and delivery; listeners never see a blocked word.
package screening

import (
	"fmt"

	goahocorasick "github.com/anknown/ahocorasick"

	"stage-lab/errors"
)

// Screener matches validated payloads against a blocklist using an
// Aho-Corasick automaton, so screening cost stays linear in payload length
// regardless of the blocklist size.
type Screener struct {
	matcher *goahocorasick.Machine
}

// NewScreener initializes the automaton from the provided blocked words.
// Payloads are uppercase by construction, so patterns must be uppercase too;
// the blocklist loader guarantees that.
func NewScreener(blockedWords []string) (*Screener, error) {
	patterns := make([][]rune, len(blockedWords))
	for i, word := range blockedWords {
		patterns[i] = []rune(word)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Screener{matcher: m}, nil
}

// Screen returns ErrBlockedContent when the payload contains any blocklisted
// term, nil otherwise.
func (s *Screener) Screen(payload string) error {
	spans := s.matcher.MultiPatternSearch([]rune(payload), false)
	if len(spans) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %q", errors.ErrBlockedContent, string(spans[0].Word))
}
