package asyncresult

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrConsumed is the panic value raised when an AsyncResult is chained or extracted after ToFuture or Await.
	ErrConsumed = errors.New("async result already consumed")
	// ErrNilAsyncResult is reported when a producer or callback hands back a nil AsyncResult.
	ErrNilAsyncResult = errors.New("nil async result")
	// ErrMalformedSettlement is reported when a producer settles to the zero Settlement.
	ErrMalformedSettlement = errors.New("malformed settlement")
	// ErrUnconvertibleRejection is reported when a producer failure cannot be converted to the failure type.
	ErrUnconvertibleRejection = errors.New("rejection cannot be converted to the failure type")
)

// Rejection carries an arbitrary payload through a producer's error channel. When it is the producer's error
// itself, normalization turns it into Err(Payload) regardless of the converter in use. A wrapped Rejection is
// treated like any other error.
type Rejection[E any] struct {
	Payload E
}

// Reject returns an error a producer can fail with to settle its AsyncResult to Err(payload).
func Reject[E any](payload E) error {
	return &Rejection[E]{Payload: payload}
}

func (r *Rejection[E]) Error() string {
	return fmt.Sprintf("rejected: %v", r.Payload)
}

func (r *Rejection[E]) Unwrap() error {
	err, _ := any(r.Payload).(error)
	return err
}

// FatalError is an unrecoverable failure of a chain: a panic inside a callback or a structurally invalid value.
// It bypasses the Result channel entirely.
type FatalError struct {
	// Cause is the recovered panic value or the structural error.
	Cause any
	// Stack is the stack of the panicking goroutine, empty for structural errors.
	Stack []byte
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal failure in async result chain: %v", e.Cause)
}

func (e *FatalError) Unwrap() error {
	err, _ := e.Cause.(error)
	return err
}

func structural(err error) *FatalError {
	return &FatalError{Cause: err}
}

// protect runs f and turns a panic into a *FatalError.
func protect(f func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &FatalError{Cause: rec, Stack: debug.Stack()}
		}
	}()

	f()
	return nil
}
