package executor

import "log"

// PoolOpts is used to configure a Pool via the NewPool function.
type PoolOpts struct {
	// Name identifies the pool in log output. A unique name is generated when empty.
	Name string
	// MaxWorkers is the number of goroutines running tasks.
	MaxWorkers int
	// Logger receives operational warnings. Defaults to log.Default().
	Logger *log.Logger
}

func (o PoolOpts) validate() {
	if o.MaxWorkers < 1 {
		panic("pool max workers must be 1 or greater")
	}
}

// RateLimitOpts is used to configure a RateLimited executor via the NewRateLimited function.
type RateLimitOpts struct {
	// Name identifies the executor in log output. A unique name is generated when empty.
	Name string
	// Limit is the rate limit expressed in tasks per second. Use Inf for no limit.
	Limit Limit
	// Burst is the size of the Token Bucket
	Burst int
	// Next runs the tasks once they are admitted. Defaults to Go().
	Next Executor
	// Logger receives operational warnings. Defaults to log.Default().
	Logger *log.Logger
}

func (o RateLimitOpts) validate() {
	if o.Limit <= 0 {
		panic("rate limiter limit must be greater than 0")
	}

	if o.Burst < 1 {
		panic("rate limiter burst must be 1 or greater")
	}
}
