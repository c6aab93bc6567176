package executor

import (
	"sync"

	"github.com/eapache/queue"
)

// taskQueue is an unbounded FIFO of tasks. Once closed it rejects new tasks and hands out the
// remaining ones until it is empty.
type taskQueue struct {
	m      sync.Mutex
	cond   *sync.Cond
	tasks  *queue.Queue
	closed bool
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{tasks: queue.New()}
	q.cond = sync.NewCond(&q.m)
	return q
}

// push appends task and reports false if the queue has been closed.
func (q *taskQueue) push(task func()) bool {
	q.m.Lock()
	defer q.m.Unlock()

	if q.closed {
		return false
	}

	q.tasks.Add(task)
	q.cond.Signal()
	return true
}

// pop blocks until a task is available. It returns false once the queue is closed and drained.
func (q *taskQueue) pop() (func(), bool) {
	q.m.Lock()
	defer q.m.Unlock()

	for q.tasks.Length() == 0 {
		if q.closed {
			return nil, false
		}
		q.cond.Wait()
	}

	return q.tasks.Remove().(func()), true
}

func (q *taskQueue) close() {
	q.m.Lock()
	defer q.m.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

func (q *taskQueue) pending() int {
	q.m.Lock()
	defer q.m.Unlock()

	return q.tasks.Length()
}
