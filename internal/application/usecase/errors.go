package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamCancelled marks a stream aborted because its call context ended
	// (caller disconnect, deadline or server shutdown).
	ErrStreamCancelled = errors.New("risk update stream cancelled")

	// ErrInternal marks an unexpected fault while computing a verdict or building a message.
	ErrInternal = errors.New("internal assessment fault")
)

// guard runs fn and converts a panic into an ErrInternal error.
func guard[T any](fn func() T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	return fn(), nil
}
