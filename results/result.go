// Package results provides Result, a closed two-variant value that holds either a success value of type T or a
// failure value of type E. A Result is immutable once constructed.
//
// The zero Result is malformed: it holds neither variant. Ok and Error never produce it.
package results

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResult is the panic value raised by Unwrap on a Result that holds neither variant.
	ErrMalformedResult = errors.New("malformed result")
)

type kind uint8

const (
	malformed kind = iota
	okKind
	errKind
)

// Result represents the outcome of a computation: Ok(value) or Err(error).
type Result[T any, E any] struct {
	kind kind
	val  T
	err  E
}

// Ok creates the success variant.
func Ok[T any, E any](val T) Result[T, E] {
	return Result[T, E]{kind: okKind, val: val}
}

// Error creates the failure variant. Building it never fails; it only describes a failure.
func Error[T any, E any](err E) Result[T, E] {
	return Result[T, E]{kind: errKind, err: err}
}

// FromPair converts the conventional (value, error) return pair into a Result.
func FromPair[T any](val T, err error) Result[T, error] {
	if err != nil {
		return Error[T](err)
	}
	return Ok[T, error](val)
}

// Pair converts an error-typed Result back into a (value, error) pair. A malformed Result panics with
// ErrMalformedResult, as Unwrap does.
func Pair[T any](r Result[T, error]) (T, error) {
	if r.IsMalformed() {
		panic(ErrMalformedResult)
	}
	return r.val, r.err
}

func (r Result[T, E]) IsOk() bool {
	return r.kind == okKind
}

func (r Result[T, E]) IsError() bool {
	return r.kind == errKind
}

// IsMalformed reports whether r holds neither variant, which is only true of the zero Result.
func (r Result[T, E]) IsMalformed() bool {
	return r.kind != okKind && r.kind != errKind
}

// Value returns the success value and true, or the zero T and false.
func (r Result[T, E]) Value() (T, bool) {
	return r.val, r.kind == okKind
}

// Err returns the failure value and true, or the zero E and false.
func (r Result[T, E]) Err() (E, bool) {
	return r.err, r.kind == errKind
}

// Get returns both slots. Only the one matching the variant is meaningful.
func (r Result[T, E]) Get() (T, E) {
	return r.val, r.err
}

// Unwrap returns the success value. It is meant for trust boundaries where a failure is unrecoverable:
// on Err it panics with an *UnwrapError carrying the failure, and on a malformed Result it panics with
// ErrMalformedResult.
func (r Result[T, E]) Unwrap() T {
	switch r.kind {
	case okKind:
		return r.val
	case errKind:
		panic(&UnwrapError{Payload: r.err})
	default:
		panic(ErrMalformedResult)
	}
}

// UnwrapOr returns the success value, or def for any other Result.
func (r Result[T, E]) UnwrapOr(def T) T {
	if r.kind == okKind {
		return r.val
	}
	return def
}

// Match calls exactly one of onOk or onErr. A malformed Result calls neither.
func (r Result[T, E]) Match(onOk func(T), onErr func(E)) {
	switch r.kind {
	case okKind:
		onOk(r.val)
	case errKind:
		onErr(r.err)
	}
}

func (r Result[T, E]) String() string {
	switch r.kind {
	case okKind:
		return fmt.Sprintf("Ok(%v)", r.val)
	case errKind:
		return fmt.Sprintf("Err(%v)", r.err)
	default:
		return "Malformed"
	}
}

// UnwrapError is the panic value raised when unwrapping a failed Result.
type UnwrapError struct {
	Payload any
}

func (e *UnwrapError) Error() string {
	return fmt.Sprintf("unwrap called on failed result: %v", e.Payload)
}

// Unwrap exposes the payload when it is itself an error.
func (e *UnwrapError) Unwrap() error {
	err, _ := e.Payload.(error)
	return err
}
