package services

import (
	"errors"
	"fmt"
)

// Validation failures on the synchronous create/update path.
var (
	ErrEmptyContent  = errors.New("diary content must not be empty")
	ErrDuplicateDate = errors.New("a diary entry already exists for this date")
)

// Analysis failures, raised only inside the background analysis task.
var (
	ErrInvalidAPIKey   = errors.New("analysis API key rejected")
	ErrInvalidResponse = errors.New("invalid analysis response")
)

// NetworkError wraps a transport-level failure of the analysis call.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("analysis network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
