// Package futures provides an implementation of a Future which represents an asynchronous computation.
// A Future can be created and then passed around and read by multiple consumers.  This is the key difference
// between a Future and using a channel for an asynchronous computation as a channel value can only be read once.
package futures

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrCanceled is the error reported when a future is completed by calling Cancel
	ErrCanceled = errors.New("future canceled")
)

// FutureFunc is the function signature required to create a Future via FromFunc
type FutureFunc[T any] func() (T, error)

// CompleteFunc is invoked with the settled value of a Future. See OnComplete.
type CompleteFunc[T any] func(value T, err error)

// Future is a structure that represents an asynchronous computation.
// A Future should be created by calling New() or using the FromFunc convience function.
// Once a future has been created it can be completed exactly once.  The first completion value
// wins and all other completions are silently ignored.
//
// The functions Complete, Cancel and Fail will all complete a future.
// Complete is used in the success case
// Fail is used for signaling that the Future failed with an error
// Cancel is used to signal that the asynchronous computation was canceled
//
// Get is used to extract the value and an error from the Future.  If the future has not been
// completed calling Get will block until the future completes or until the context is canceled.
// Get can be called by multiple go routines simultaneously and they will all receive the same value.
type Future[T any] struct {
	m           sync.Mutex
	isCompleted bool
	completed   chan struct{}
	callbacks   []CompleteFunc[T]

	value T
	err   error
}

// New creates a new uncompleted Future that will eventually contain a value of type T which can be anything.
// This future must be manually completed by calling Complete, Fail, or Cancel
func New[T any]() *Future[T] {
	return &Future[T]{
		completed: make(chan struct{}),
	}
}

// FromFunc creates a new uncompleted Future that will eventually contain the return value of the provided function.
// The provided function is run asynchronously when this function is invoked.
func FromFunc[T any](do FutureFunc[T]) *Future[T] {
	f := New[T]()

	go func() {
		t, err := do()
		if err != nil {
			f.Fail(err)
			return
		}
		f.Complete(t)
	}()

	return f
}

// Resolved creates a Future that is already completed with value.
func Resolved[T any](value T) *Future[T] {
	f := New[T]()
	f.Complete(value)
	return f
}

// Rejected creates a Future that has already failed with err.
func Rejected[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Complete completes this Future with the provided value.  If the future has already been completed this call is ignored.
func (f *Future[T]) Complete(value T) {
	f.internalComplete(value, nil)
}

// Cancel completes this Future with the ErrCanceled error.  If the future has already been completed this call is ignored.
func (f *Future[T]) Cancel() {
	f.Fail(ErrCanceled)
}

// Fail completes this Future with the provided error.  If the future has already been completed this call is ignored.
func (f *Future[T]) Fail(err error) {
	f.internalComplete(*new(T), err)
}

func (f *Future[T]) internalComplete(val T, err error) {
	f.m.Lock()
	if f.isCompleted {
		f.m.Unlock()
		return
	}
	f.isCompleted = true
	f.value = val
	f.err = err
	cbs := f.callbacks
	f.callbacks = nil
	close(f.completed)
	f.m.Unlock()

	for _, cb := range cbs {
		cb(val, err)
	}
}

// OnComplete registers cb to be invoked exactly once with the value and error of this Future.
// If the future is already completed cb runs immediately on the calling goroutine, otherwise it runs on
// the goroutine that completes the future. Callbacks registered before completion run in registration order.
// Callbacks should hand off any real work rather than block the completing goroutine.
func (f *Future[T]) OnComplete(cb CompleteFunc[T]) {
	f.m.Lock()
	if !f.isCompleted {
		f.callbacks = append(f.callbacks, cb)
		f.m.Unlock()
		return
	}
	f.m.Unlock()

	cb(f.value, f.err)
}

// Done returns a channel that is closed once this Future is completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.completed
}

// IsCompleted reports whether this Future has been completed.
func (f *Future[T]) IsCompleted() bool {
	select {
	case <-f.completed:
		return true
	default:
		return false
	}
}

// Get retrieves the value of this Future.  If the future is not yet completed this call will block until the future is
// completed or until the provided context is done, in which case the context's error is returned.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.completed:
		return f.value, f.err
	case <-ctx.Done():
		return *new(T), ctx.Err()
	}
}
