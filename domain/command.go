package domain

import (
	"time"
)

// SpeakCommand asks the runtime to deliver a Word from a sender to a set of
// recipient identifiers. Recipients are resolved at delivery time; a recipient
// that has since departed is skipped, never an error.
type SpeakCommand struct {
	Sender     Identifier   `validate:"required"`
	Recipients []Identifier `validate:"required,max=1024"`
	Word       Word
	CreatedAt  time.Time
}
