// Package domain contains core concepts of the speaker/listener system.
// This file defines the Word message unit and its validation rules.
// Words are immutable and validated by the domain.
package domain

import (
	"fmt"

	"stage-lab/errors"
)

// Word is an immutable, validated message unit exchanged between participants.
// The payload is guaranteed non-empty and composed solely of uppercase
// alphabetic characters. The zero value is not a valid Word; always go
// through NewWord or Combine.
type Word struct {
	payload string
}

// NewWord validates the payload and returns an immutable Word.
// An empty payload or any character outside [A-Z] fails with ErrInvalidPayload.
func NewWord(payload string) (Word, error) {
	if err := validatePayload(payload); err != nil {
		return Word{}, err
	}
	return Word{payload: payload}, nil
}

// MustWord is a helper for tests and static declarations where the payload
// is known to be valid. It panics on an invalid payload.
func MustWord(payload string) Word {
	w, err := NewWord(payload)
	if err != nil {
		panic(err)
	}
	return w
}

// Combine returns a new Word whose payload is the concatenation of a and b.
// Both inputs already satisfy the character constraint, but the result is
// re-validated defensively before being returned.
func Combine(a, b Word) (Word, error) {
	return NewWord(a.payload + b.payload)
}

// Render returns the payload as a displayable string. Pure, no side effects.
func (w Word) Render() string {
	return w.payload
}

func validatePayload(payload string) error {
	if payload == "" {
		return fmt.Errorf("%w: empty payload", errors.ErrInvalidPayload)
	}
	for _, r := range payload {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: character %q outside [A-Z]", errors.ErrInvalidPayload, r)
		}
	}
	return nil
}
