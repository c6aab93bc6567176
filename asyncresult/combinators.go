package asyncresult

import (
	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
)

// derive schedules step on r's executor once r settles and normalizes whatever step returns into a new
// AsyncResult. A fatal outcome of r skips step.
func derive[T, E, T2, E2 any](r *AsyncResult[T, E], step func(results.Result[T, E]) Settlement[T2, E2]) *AsyncResult[T2, E2] {
	src, exec := r.source()

	next := newPending[T2, E2](exec)
	out := next.outcome

	src.OnComplete(func(res results.Result[T, E], err error) {
		if err != nil {
			out.Fail(err)
			return
		}

		exec.Execute(func() {
			var s Settlement[T2, E2]
			fatal := protect(func() { s = step(res) })
			settle(out, s, fatal, nil)
		})
	})

	return next
}

// AndThen invokes f with the success value and adopts the outcome of the AsyncResult it returns.
// A failure of r passes through without invoking f.
func AndThen[T, T2, E any](r *AsyncResult[T, E], f func(T) *AsyncResult[T2, E]) *AsyncResult[T2, E] {
	return derive(r, func(res results.Result[T, E]) Settlement[T2, E] {
		if v, ok := res.Value(); ok {
			return Nested(f(v))
		}
		e, _ := res.Err()
		return Settled(results.Error[T2](e))
	})
}

// OrElse invokes f with the failure value and adopts the outcome of the AsyncResult it returns.
// A success of r passes through without invoking f.
func OrElse[T, E, E2 any](r *AsyncResult[T, E], f func(E) *AsyncResult[T, E2]) *AsyncResult[T, E2] {
	return derive(r, func(res results.Result[T, E]) Settlement[T, E2] {
		if e, ok := res.Err(); ok {
			return Nested(f(e))
		}
		v, _ := res.Value()
		return Value[T, E2](v)
	})
}

// Map replaces a success value with f(value). f is not expected to fail; a panic in f is fatal to the chain.
func Map[T, T2, E any](r *AsyncResult[T, E], f func(T) T2) *AsyncResult[T2, E] {
	return derive(r, func(res results.Result[T, E]) Settlement[T2, E] {
		return Settled(results.Map(res, f))
	})
}

// MapError replaces a failure value with f(error).
func MapError[T, E, E2 any](r *AsyncResult[T, E], f func(E) E2) *AsyncResult[T, E2] {
	return derive(r, func(res results.Result[T, E]) Settlement[T, E2] {
		return Settled(results.MapError(res, f))
	})
}

// AndThen is the type preserving form of the package level AndThen.
func (r *AsyncResult[T, E]) AndThen(f func(T) *AsyncResult[T, E]) *AsyncResult[T, E] {
	return AndThen(r, f)
}

// OrElse is the type preserving form of the package level OrElse. It is typically used to provide a
// fallback value.
func (r *AsyncResult[T, E]) OrElse(f func(E) *AsyncResult[T, E]) *AsyncResult[T, E] {
	return OrElse(r, f)
}

// Map is the type preserving form of the package level Map.
func (r *AsyncResult[T, E]) Map(f func(T) T) *AsyncResult[T, E] {
	return Map(r, f)
}

// MapError is the type preserving form of the package level MapError.
func (r *AsyncResult[T, E]) MapError(f func(E) E) *AsyncResult[T, E] {
	return MapError(r, f)
}

// Filter keeps a success value for which pred holds and turns any other success into Err(errIfFalse).
func (r *AsyncResult[T, E]) Filter(pred func(T) bool, errIfFalse E) *AsyncResult[T, E] {
	_, exec := r.source()

	return AndThen(r, func(v T) *AsyncResult[T, E] {
		if pred(v) {
			return Ok[T, E](v, WithExecutor(exec))
		}
		return Error[T](errIfFalse, WithExecutor(exec))
	})
}

// TapAny calls f with the outcome once it settles. The outcome is forwarded unchanged.
// The receiver's pending outcome is replaced in place and the receiver is returned.
func (r *AsyncResult[T, E]) TapAny(f func(results.Result[T, E])) *AsyncResult[T, E] {
	r.m.Lock()
	defer r.m.Unlock()

	if r.consumed {
		panic(ErrConsumed)
	}

	src := r.outcome
	exec := r.exec
	tapped := futures.New[results.Result[T, E]]()

	src.OnComplete(func(res results.Result[T, E], err error) {
		if err != nil {
			tapped.Fail(err)
			return
		}

		exec.Execute(func() {
			if fatal := protect(func() { f(res) }); fatal != nil {
				tapped.Fail(fatal)
				return
			}
			tapped.Complete(res)
		})
	})

	r.outcome = tapped
	return r
}

// Tap calls f with the success value. Failures are forwarded without calling f.
func (r *AsyncResult[T, E]) Tap(f func(T)) *AsyncResult[T, E] {
	return r.TapAny(func(res results.Result[T, E]) {
		if v, ok := res.Value(); ok {
			f(v)
		}
	})
}

// TapError calls f with the failure value. Successes are forwarded without calling f.
func (r *AsyncResult[T, E]) TapError(f func(E)) *AsyncResult[T, E] {
	return r.TapAny(func(res results.Result[T, E]) {
		if e, ok := res.Err(); ok {
			f(e)
		}
	})
}
