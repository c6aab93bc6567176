package executor

import (
	"log"
	"sync"
)

// Pool runs tasks on a fixed number of worker goroutines. Tasks wait in an unbounded FIFO queue so
// Execute never blocks, even when called from inside a running task.
type Pool struct {
	name   string
	logger *log.Logger
	tasks  *taskQueue

	waitStop *sync.WaitGroup
	stopOnce *sync.Once
}

// NewPool starts opts.MaxWorkers workers. Close must be called to release them.
func NewPool(opts PoolOpts) *Pool {
	opts.validate()

	name := opts.Name
	if name == "" {
		name = defaultName("pool")
	}

	p := &Pool{
		name:     name,
		logger:   defaultLogger(opts.Logger),
		tasks:    newTaskQueue(),
		waitStop: &sync.WaitGroup{},
		stopOnce: &sync.Once{},
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		p.waitStop.Add(1)
		go p.worker()
	}

	return p
}

// Name returns the name the pool logs under.
func (p *Pool) Name() string {
	return p.name
}

// Pending returns the number of tasks waiting for a worker.
func (p *Pool) Pending() int {
	return p.tasks.pending()
}

// Execute queues task for the next free worker. After Close the task runs on its own goroutine instead.
func (p *Pool) Execute(task func()) {
	if p.tasks.push(task) {
		return
	}

	p.logger.Printf("executor %s: task submitted after close, running it on a new goroutine", p.name)
	go task()
}

func (p *Pool) worker() {
	defer p.waitStop.Done()

	for {
		task, ok := p.tasks.pop()
		if !ok {
			return
		}
		task()
	}
}

// Close stops accepting tasks, lets the workers drain the queue and waits for them to exit.
// It is safe to call Close more than once, but not from inside a task run by this pool.
func (p *Pool) Close() {
	p.stopOnce.Do(p.tasks.close)
	p.waitStop.Wait()
}
