package executor

import (
	"log/slog"
	"sync"
)

// Pool is a fixed-size worker pool. Submitted tasks are queued on a channel
// and picked up by the next free worker.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPool starts a pool with the given number of workers. A non-positive
// count falls back to a single worker.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{tasks: make(chan func(), workers)}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

// worker is the processing loop for a single concurrent worker.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	slog.Debug("Worker started.", "workerID", id)

	for task := range p.tasks {
		task()
	}

	slog.Debug("Worker finished.", "workerID", id)
}

// Submit queues a task for execution. It blocks while all workers are busy
// and the queue is full. Tasks submitted after Close are dropped; abandoned
// branches of a failed execution may still try to schedule work during
// shutdown.
func (p *Pool) Submit(task func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.tasks <- task
}

// Close stops accepting work, runs the queued tasks and waits for the
// workers to finish. It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
