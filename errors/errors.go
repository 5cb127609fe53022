package errors

import "fmt"

var (
	ErrInvalidPayload    = fmt.Errorf("invalid payload")
	ErrAlreadyRegistered = fmt.Errorf("identifier already registered")
	ErrNotRegistered     = fmt.Errorf("identifier not registered")
	ErrBlockedContent    = fmt.Errorf("payload contains blocked content")
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrEmptyWords        = fmt.Errorf("no words have been found")
)
