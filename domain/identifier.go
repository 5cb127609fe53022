// Package domain contains core concepts of the speaker/listener system.
// This file defines participant Identifiers.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"github.com/google/uuid"
)

// Identifier is a process-unique token naming a participant.
// It is a 128-bit random value, immutable once assigned. Participants hold
// identifiers of their recipients, never direct references.
type Identifier struct {
	value uuid.UUID
}

// NewIdentifier assigns a fresh random Identifier.
func NewIdentifier() Identifier {
	return Identifier{value: uuid.New()}
}

// IsZero reports whether the identifier was never assigned.
func (id Identifier) IsZero() bool {
	return id.value == uuid.Nil
}

func (id Identifier) String() string {
	return id.value.String()
}
