package executor

import (
	"context"
	"log"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimited admits tasks through a token bucket and hands them to another Executor to run.
// Admission happens in submission order on a single dispatcher goroutine.
type RateLimited struct {
	name    string
	logger  *log.Logger
	limiter *rate.Limiter
	tasks   *taskQueue
	next    Executor

	stopped  chan struct{}
	stopOnce *sync.Once
}

// NewRateLimited starts the dispatcher. Close must be called to release it.
func NewRateLimited(opts RateLimitOpts) *RateLimited {
	opts.validate()

	name := opts.Name
	if name == "" {
		name = defaultName("ratelimiter")
	}

	next := opts.Next
	if next == nil {
		next = Go()
	}

	rl := &RateLimited{
		name:     name,
		logger:   defaultLogger(opts.Logger),
		limiter:  rate.NewLimiter(opts.Limit, opts.Burst),
		tasks:    newTaskQueue(),
		next:     next,
		stopped:  make(chan struct{}),
		stopOnce: &sync.Once{},
	}

	go rl.dispatch()

	return rl
}

// Name returns the name the executor logs under.
func (rl *RateLimited) Name() string {
	return rl.name
}

// Execute queues task for admission. After Close the task is handed to the next executor without throttling.
func (rl *RateLimited) Execute(task func()) {
	if rl.tasks.push(task) {
		return
	}

	rl.logger.Printf("executor %s: task submitted after close, running it without rate limiting", rl.name)
	rl.next.Execute(task)
}

func (rl *RateLimited) dispatch() {
	defer close(rl.stopped)

	for {
		task, ok := rl.tasks.pop()
		if !ok {
			return
		}

		if err := rl.limiter.Wait(context.Background()); err != nil {
			rl.logger.Printf("executor %s: rate limiter wait failed, running task anyway: %v", rl.name, err)
		}

		rl.next.Execute(task)
	}
}

// Close stops accepting tasks and blocks until every queued task has been admitted.
func (rl *RateLimited) Close() {
	rl.stopOnce.Do(rl.tasks.close)
	<-rl.stopped
}
