package board

import "errors"

var (
	// ErrEmptyInput is returned by Add when the task text is empty.
	ErrEmptyInput = errors.New("invalid input: task text is empty")
	// ErrNotFound means the id is not on the board. Callers usually ignore it.
	ErrNotFound = errors.New("task not found")
	// ErrStorageUnavailable wraps persistence failures. The in-memory board
	// still reflects the mutation when a save fails.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return e.op + ": " + ErrStorageUnavailable.Error() + ": " + e.err.Error()
}

func (e *storageError) Is(target error) bool { return target == ErrStorageUnavailable }

func (e *storageError) Unwrap() error { return e.err }
