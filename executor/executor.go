// Package executor provides the schedulers that asynchronous continuations run on.
//
// Every Executor accepts work without blocking the caller and never drops a task. Go is the default and
// starts one goroutine per task. Pool bounds the number of goroutines running tasks, and RateLimited
// throttles how quickly tasks are started.
package executor

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Executor schedules a task to run asynchronously.
type Executor interface {
	Execute(task func())
}

// Func adapts a plain function to the Executor interface.
type Func func(task func())

func (f Func) Execute(task func()) {
	f(task)
}

type goExecutor struct{}

func (goExecutor) Execute(task func()) {
	go task()
}

// Go returns an Executor that runs every task on its own goroutine.
func Go() Executor {
	return goExecutor{}
}

// A rate limit expressed as N tasks per second
type Limit = rate.Limit

// Inf is the infinite rate limit; it allows all tasks through immediately.
const Inf = rate.Inf

// Every converts the provided duration into a number of tasks per second
// for instance Every(100 * time.Milliseconds) will yield 10 tasks per second
func Every(interval time.Duration) Limit {
	return rate.Every(interval)
}

func defaultName(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func defaultLogger(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
