package results

// Map applies f to the success value. Failures and malformed results pass through.
func Map[T, T2, E any](r Result[T, E], f func(T) T2) Result[T2, E] {
	switch r.kind {
	case okKind:
		return Ok[T2, E](f(r.val))
	case errKind:
		return Error[T2](r.err)
	default:
		return Result[T2, E]{}
	}
}

// MapError applies f to the failure value. Successes and malformed results pass through.
func MapError[T, E, E2 any](r Result[T, E], f func(E) E2) Result[T, E2] {
	switch r.kind {
	case okKind:
		return Ok[T, E2](r.val)
	case errKind:
		return Error[T](f(r.err))
	default:
		return Result[T, E2]{}
	}
}

// AndThen returns f(value) for a success and passes failures through without invoking f.
func AndThen[T, T2, E any](r Result[T, E], f func(T) Result[T2, E]) Result[T2, E] {
	switch r.kind {
	case okKind:
		return f(r.val)
	case errKind:
		return Error[T2](r.err)
	default:
		return Result[T2, E]{}
	}
}

// OrElse returns f(error) for a failure and passes successes through without invoking f.
func OrElse[T, E, E2 any](r Result[T, E], f func(E) Result[T, E2]) Result[T, E2] {
	switch r.kind {
	case okKind:
		return Ok[T, E2](r.val)
	case errKind:
		return f(r.err)
	default:
		return Result[T, E2]{}
	}
}
