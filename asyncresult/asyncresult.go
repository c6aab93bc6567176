package asyncresult

import (
	"context"
	"fmt"
	"sync"

	"github.com/abevier/outcome/executor"
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
)

// AsyncResult is a pending computation that settles to exactly one results.Result[T, E].
//
// Combinators return a new AsyncResult, except Tap, TapError and TapAny which replace the receiver's pending
// outcome in place and return the receiver. ToFuture and Await consume the AsyncResult; using it afterwards
// panics with ErrConsumed.
type AsyncResult[T any, E any] struct {
	m        sync.Mutex
	outcome  *futures.Future[results.Result[T, E]]
	exec     executor.Executor
	consumed bool
}

// Option configures an AsyncResult at construction.
type Option func(*options)

type options struct {
	exec executor.Executor
}

// WithExecutor schedules the normalization and every continuation of the chain on e instead of a new
// goroutine per stage. Results derived from this one inherit e.
func WithExecutor(e executor.Executor) Option {
	return func(o *options) {
		if e != nil {
			o.exec = e
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{exec: executor.Go()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New wraps producer. Once it settles the settlement is normalized: Nested is joined, Settled is adopted and
// Value becomes Ok. A producer failure becomes Err: a *Rejection[E] that is the error itself yields its
// payload, otherwise convert(err) is used, so an error wrapping a Rejection is kept whole. With a nil convert
// an error that is itself an E is used directly, and any other error is a fatal failure of the chain.
// Only a *FatalError that is the error itself is fatal; an error wrapping one is ordinary failure data.
func New[T any, E any](producer *futures.Future[Settlement[T, E]], convert func(error) E, opts ...Option) *AsyncResult[T, E] {
	o := buildOptions(opts)
	return newAsync(producer, convert, o.exec)
}

// FromFuture wraps a plain future: its value becomes Ok and its error becomes Err.
func FromFuture[T any](f *futures.Future[T], opts ...Option) *AsyncResult[T, error] {
	producer := futures.New[Settlement[T, error]]()
	f.OnComplete(func(v T, err error) {
		if err != nil {
			producer.Fail(err)
			return
		}
		producer.Complete(Value[T, error](v))
	})

	return New(producer, identity, opts...)
}

// FromFunc runs do on the executor and wraps its return values. A panic in do is a fatal failure of the chain.
func FromFunc[T any](do futures.FutureFunc[T], opts ...Option) *AsyncResult[T, error] {
	o := buildOptions(opts)
	producer := futures.New[Settlement[T, error]]()

	o.exec.Execute(func() {
		var (
			v   T
			err error
		)
		if fatal := protect(func() { v, err = do() }); fatal != nil {
			producer.Fail(fatal)
			return
		}
		if err != nil {
			producer.Fail(err)
			return
		}
		producer.Complete(Value[T, error](v))
	})

	return newAsync(producer, identity, o.exec)
}

// Ok returns an AsyncResult that settles to Ok(v).
func Ok[T any, E any](v T, opts ...Option) *AsyncResult[T, E] {
	return New[T, E](futures.Resolved(Value[T, E](v)), nil, opts...)
}

// Error returns an AsyncResult whose producer has already failed with e, so it settles to Err(e).
func Error[T any, E any](e E, opts ...Option) *AsyncResult[T, E] {
	return New[T, E](futures.Rejected[Settlement[T, E]](Reject(e)), nil, opts...)
}

func identity(err error) error {
	return err
}

func newAsync[T any, E any](producer *futures.Future[Settlement[T, E]], convert func(error) E, exec executor.Executor) *AsyncResult[T, E] {
	ar := newPending[T, E](exec)
	out := ar.outcome

	producer.OnComplete(func(s Settlement[T, E], err error) {
		exec.Execute(func() {
			settle(out, s, err, convert)
		})
	})

	return ar
}

func newPending[T any, E any](exec executor.Executor) *AsyncResult[T, E] {
	return &AsyncResult[T, E]{
		outcome: futures.New[results.Result[T, E]](),
		exec:    exec,
	}
}

// settle normalizes a producer's settlement into out. out is only ever failed with a *FatalError.
func settle[T any, E any](out *futures.Future[results.Result[T, E]], s Settlement[T, E], err error, convert func(error) E) {
	if err != nil {
		if rejection, ok := err.(*Rejection[E]); ok {
			out.Complete(results.Error[T](rejection.Payload))
			return
		}

		if fatal, ok := err.(*FatalError); ok {
			out.Fail(fatal)
			return
		}

		payload, ok := toPayload(err, convert)
		if !ok {
			out.Fail(structural(fmt.Errorf("%w: %w", ErrUnconvertibleRejection, err)))
			return
		}
		out.Complete(results.Error[T](payload))
		return
	}

	switch s.kind {
	case valueSettlement:
		out.Complete(results.Ok[T, E](s.value))
	case resultSettlement:
		if s.result.IsMalformed() {
			out.Fail(structural(results.ErrMalformedResult))
			return
		}
		out.Complete(s.result)
	case nestedSettlement:
		if s.nested == nil {
			out.Fail(structural(ErrNilAsyncResult))
			return
		}
		s.nested.current().OnComplete(func(r results.Result[T, E], err error) {
			if err != nil {
				out.Fail(err)
				return
			}
			out.Complete(r)
		})
	default:
		out.Fail(structural(ErrMalformedSettlement))
	}
}

func toPayload[E any](err error, convert func(error) E) (E, bool) {
	if convert != nil {
		return convert(err), true
	}

	if e, ok := any(err).(E); ok {
		return e, true
	}

	return *new(E), false
}

// current returns the pending outcome without consuming the receiver.
func (r *AsyncResult[T, E]) current() *futures.Future[results.Result[T, E]] {
	r.m.Lock()
	defer r.m.Unlock()

	return r.outcome
}

// source returns the pending outcome and executor for a new stage, panicking if r was consumed.
func (r *AsyncResult[T, E]) source() (*futures.Future[results.Result[T, E]], executor.Executor) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.consumed {
		panic(ErrConsumed)
	}
	return r.outcome, r.exec
}

// ToFuture consumes r and returns the future of its outcome. The future completes with a Result for every
// domain failure or producer rejection; its error is only ever a *FatalError.
func (r *AsyncResult[T, E]) ToFuture() *futures.Future[results.Result[T, E]] {
	r.m.Lock()
	defer r.m.Unlock()

	if r.consumed {
		panic(ErrConsumed)
	}
	r.consumed = true
	return r.outcome
}

// Await consumes r and blocks until its outcome settles or ctx is done. The returned error is only ever the
// context's error. A fatal failure of the chain is re-raised as a panic with its *FatalError.
func (r *AsyncResult[T, E]) Await(ctx context.Context) (results.Result[T, E], error) {
	res, err := r.ToFuture().Get(ctx)

	if fatal, ok := err.(*FatalError); ok {
		panic(fatal)
	}

	return res, err
}
