package keyqueue

import (
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Queue runs jobs on a shared worker pool while serializing jobs that share
// a key: per key, jobs run one at a time in submit order; across keys they
// run in parallel up to the pool size.
type Queue struct {
	pool    *ants.Pool
	onPanic func(recovered any)

	mu      sync.Mutex
	pending map[string][]func()
	running map[string]bool
}

// New builds a queue over a pool of size workers. onPanic, when non-nil, is
// called with the recovered value of a panicking job; the key's lane keeps
// draining either way.
func New(workers int, onPanic func(recovered any)) (*Queue, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	return &Queue{
		pool:    pool,
		onPanic: onPanic,
		pending: make(map[string][]func()),
		running: make(map[string]bool),
	}, nil
}

// Submit appends job to the key's lane and starts a drain pass if none is
// in flight for that key.
func (q *Queue) Submit(key string, job func()) error {
	q.mu.Lock()
	q.pending[key] = append(q.pending[key], job)
	if q.running[key] {
		q.mu.Unlock()
		return nil
	}
	q.running[key] = true
	q.mu.Unlock()

	if err := q.pool.Submit(func() { q.drain(key) }); err != nil {
		q.mu.Lock()
		q.running[key] = false
		q.mu.Unlock()
		return err
	}

	return nil
}

// drain holds the key's lane until no jobs remain, then releases it. A new
// Submit for the key while draining lands in pending and is picked up by
// the same pass.
func (q *Queue) drain(key string) {
	for {
		q.mu.Lock()
		jobs := q.pending[key]
		if len(jobs) == 0 {
			delete(q.pending, key)
			q.running[key] = false
			q.mu.Unlock()
			return
		}
		job := jobs[0]
		q.pending[key] = jobs[1:]
		q.mu.Unlock()

		q.runJob(job)
	}
}

func (q *Queue) runJob(job func()) {
	defer func() {
		if r := recover(); r != nil && q.onPanic != nil {
			q.onPanic(r)
		}
	}()

	job()
}

// Release shuts the pool down. Jobs already pending may not run.
func (q *Queue) Release() {
	q.pool.Release()
}
