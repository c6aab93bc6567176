package asyncresult

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abevier/outcome/results"
	"github.com/stretchr/testify/require"
)

func TestAndThen(t *testing.T) {
	req := require.New(t)

	r := AndThen(Ok[int, error](4), func(n int) *AsyncResult[string, error] {
		return Ok[string, error](strconv.Itoa(n * 2))
	})
	req.Equal(results.Ok[string, error]("8"), await(t, r))

	r = AndThen(Ok[int, error](4), func(n int) *AsyncResult[string, error] {
		return Error[string](ErrTest)
	})
	req.Equal(results.Error[string](ErrTest), await(t, r))
}

func TestAndThenShortCircuit(t *testing.T) {
	req := require.New(t)

	var calls uint32
	r := AndThen(Error[int]("first"), func(int) *AsyncResult[int, string] {
		atomic.AddUint32(&calls, 1)
		panic("must not run")
	}).AndThen(func(int) *AsyncResult[int, string] {
		atomic.AddUint32(&calls, 1)
		select {}
	})

	req.Equal(results.Error[int]("first"), await(t, r))
	req.Zero(atomic.LoadUint32(&calls))
}

func TestAndThenAsyncStep(t *testing.T) {
	req := require.New(t)

	r := Ok[string, error]("id-1").AndThen(func(id string) *AsyncResult[string, error] {
		return FromFunc(func() (string, error) {
			time.Sleep(10 * time.Millisecond)
			return id + ":loaded", nil
		})
	})

	req.Equal(results.Ok[string, error]("id-1:loaded"), await(t, r))
}

func TestOrElse(t *testing.T) {
	req := require.New(t)

	r := OrElse(Error[int]("oops"), func(e string) *AsyncResult[int, error] {
		return Ok[int, error](len(e))
	})
	req.Equal(results.Ok[int, error](4), await(t, r))

	called := false
	r = OrElse(Ok[int, string](1), func(string) *AsyncResult[int, error] {
		called = true
		return Ok[int, error](0)
	})
	req.Equal(results.Ok[int, error](1), await(t, r))
	req.False(called)
}

func TestOrElseResumesChain(t *testing.T) {
	req := require.New(t)

	var stages []string
	r := Error[int](ErrTest).
		AndThen(func(n int) *AsyncResult[int, error] {
			stages = append(stages, "skipped")
			return Ok[int, error](n)
		}).
		OrElse(func(error) *AsyncResult[int, error] {
			stages = append(stages, "recovered")
			return Ok[int, error](1)
		}).
		AndThen(func(n int) *AsyncResult[int, error] {
			stages = append(stages, "resumed")
			return Ok[int, error](n + 1)
		})

	req.Equal(results.Ok[int, error](2), await(t, r))
	req.Equal([]string{"recovered", "resumed"}, stages)
}

func TestMap(t *testing.T) {
	req := require.New(t)

	r := Map(Ok[int, error](3), strconv.Itoa)
	req.Equal(results.Ok[string, error]("3"), await(t, r))

	called := false
	r = Map(Error[int](ErrTest), func(n int) string {
		called = true
		return ""
	})
	req.Equal(results.Error[string](ErrTest), await(t, r))
	req.False(called)

	double := Ok[int, error](3).Map(func(n int) int { return n * 2 })
	req.Equal(results.Ok[int, error](6), await(t, double))
}

func TestMapError(t *testing.T) {
	req := require.New(t)

	r := MapError(Error[int](ErrTest), func(err error) string { return "wrapped: " + err.Error() })
	req.Equal(results.Error[int]("wrapped: test error"), await(t, r))

	called := false
	r = MapError(Ok[int, error](9), func(error) string {
		called = true
		return ""
	})
	req.Equal(results.Ok[int, string](9), await(t, r))
	req.False(called)

	wrapped := Error[int](ErrTest).MapError(func(err error) error { return errors.Join(errors.New("ctx"), err) })
	res := await(t, wrapped)
	e, ok := res.Err()
	req.True(ok)
	req.ErrorIs(e, ErrTest)
}

func TestFilter(t *testing.T) {
	req := require.New(t)

	req.Equal(results.Error[int]("too small"), await(t, Ok[int, string](5).Filter(func(x int) bool { return x > 10 }, "too small")))
	req.Equal(results.Ok[int, string](20), await(t, Ok[int, string](20).Filter(func(x int) bool { return x > 10 }, "too small")))

	called := false
	r := Error[int]("earlier").Filter(func(int) bool {
		called = true
		return true
	}, "too small")
	req.Equal(results.Error[int]("earlier"), await(t, r))
	req.False(called)
}

func TestTap(t *testing.T) {
	req := require.New(t)

	var seen []int
	r := Ok[int, string](7)
	tapped := r.Tap(func(v int) { seen = append(seen, v) })

	req.Same(r, tapped)
	req.Equal(results.Ok[int, string](7), await(t, tapped))
	req.Equal([]int{7}, seen)

	called := false
	e := Error[int]("nope").Tap(func(int) { called = true })
	req.Equal(results.Error[int]("nope"), await(t, e))
	req.False(called)
}

func TestTapError(t *testing.T) {
	req := require.New(t)

	var seen []string
	r := Error[int]("bad").TapError(func(e string) { seen = append(seen, e) })
	req.Equal(results.Error[int]("bad"), await(t, r))
	req.Equal([]string{"bad"}, seen)

	called := false
	ok := Ok[int, string](1).TapError(func(string) { called = true })
	req.Equal(results.Ok[int, string](1), await(t, ok))
	req.False(called)
}

func TestTapAny(t *testing.T) {
	req := require.New(t)

	var seen []string
	r := Ok[int, string](1).TapAny(func(res results.Result[int, string]) { seen = append(seen, res.String()) })
	req.Equal(results.Ok[int, string](1), await(t, r))

	e := Error[int]("x").TapAny(func(res results.Result[int, string]) { seen = append(seen, res.String()) })
	req.Equal(results.Error[int]("x"), await(t, e))

	req.Equal([]string{"Ok(1)", "Err(x)"}, seen)
}

func TestTapOrdering(t *testing.T) {
	req := require.New(t)

	var m sync.Mutex
	var order []string
	record := func(s string) {
		m.Lock()
		defer m.Unlock()
		order = append(order, s)
	}

	r := Ok[int, error](1).
		Tap(func(int) {
			time.Sleep(10 * time.Millisecond)
			record("tap 1")
		}).
		Tap(func(int) { record("tap 2") }).
		AndThen(func(n int) *AsyncResult[int, error] {
			record("and then")
			return Ok[int, error](n)
		}).
		TapAny(func(results.Result[int, error]) { record("tap any") })

	req.Equal(results.Ok[int, error](1), await(t, r))
	req.Equal([]string{"tap 1", "tap 2", "and then", "tap any"}, order)
}

func TestCallbackPanicIsFatal(t *testing.T) {
	req := require.New(t)

	later := false
	r := Map(Ok[int, error](1), func(int) int { panic(ErrTest) }).
		AndThen(func(n int) *AsyncResult[int, error] {
			later = true
			return Ok[int, error](n)
		}).
		OrElse(func(error) *AsyncResult[int, error] {
			later = true
			return Ok[int, error](0)
		}).
		TapAny(func(results.Result[int, error]) { later = true })

	fatal := awaitFatal(t, r)
	req.ErrorIs(fatal, ErrTest)
	req.NotEmpty(fatal.Stack)
	req.False(later)
}

func TestUnwrapInsideCallbackIsFatal(t *testing.T) {
	req := require.New(t)

	r := Ok[int, string](1).Tap(func(int) {
		results.Error[int]("escape").Unwrap()
	})

	fatal := awaitFatal(t, r)
	ue, ok := fatal.Cause.(*results.UnwrapError)
	req.True(ok)
	req.Equal("escape", ue.Payload)
}

func TestNilFromAndThenIsFatal(t *testing.T) {
	req := require.New(t)

	r := Ok[int, error](1).AndThen(func(int) *AsyncResult[int, error] { return nil })

	fatal := awaitFatal(t, r)
	req.ErrorIs(fatal, ErrNilAsyncResult)
}

func TestIndependentChains(t *testing.T) {
	req := require.New(t)

	chains := 100
	res := make([]results.Result[int, error], chains)
	errs := make([]error, chains)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	wg := sync.WaitGroup{}

	for i := 0; i < chains; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			r := Map(Ok[int, error](n), func(v int) int { return v * 2 }).
				Filter(func(v int) bool { return v%4 == 0 }, ErrTest)

			res[n], errs[n] = r.Await(ctx)
		}(i)
	}

	wg.Wait()

	for n := 0; n < chains; n++ {
		req.NoError(errs[n])
		if n%2 == 0 {
			req.Equal(results.Ok[int, error](n*2), res[n])
		} else {
			req.Equal(results.Error[int](ErrTest), res[n])
		}
	}
}
