// Package asyncresult provides AsyncResult, an asynchronous computation whose outcome is always a
// results.Result. Failures travel through a chain as data, so dependent asynchronous steps can be composed
// without checking an error after every call.
//
// An AsyncResult is built from a producer future. Whatever the producer settles to is normalized once:
// a nested AsyncResult is joined, a Result is adopted as is, a raw value becomes Ok, and a producer failure
// becomes Err. After that the outcome of the AsyncResult can only settle to exactly one Result.
//
//	r := asyncresult.AndThen(asyncresult.FromFunc(fetchUser), func(u User) *asyncresult.AsyncResult[Session, error] {
//		return asyncresult.FromFunc(func() (Session, error) { return login(u) })
//	}).
//		TapError(func(err error) { log.Printf("login failed: %v", err) }).
//		OrElse(func(error) *asyncresult.AsyncResult[Session, error] {
//			return asyncresult.Ok[Session, error](anonymous)
//		})
//
//	res, err := r.Await(ctx) // err is only ever the context's error
//
// Stages of one chain run strictly one after another, each scheduled on the chain's executor.Executor once
// the previous stage has settled. Distinct chains share no state.
//
// Panics raised by callbacks, and structurally invalid values such as a nil AsyncResult returned from an
// AndThen callback, are not folded into Err. They are carried to the end of the chain as a *FatalError,
// skipping every later stage, and Await panics with it on the consuming goroutine.
package asyncresult
