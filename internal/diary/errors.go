package diary

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned by Update when strict mode is enabled and
// no record carries the given id.
var ErrRecordNotFound = errors.New("diary record not found")

// StorageError wraps an I/O or serialization failure of the blob store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
