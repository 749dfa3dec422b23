package pipeline

import (
	"context"
	"sync"
	"time"

	"log/slog"
)

// Job is one document to process.
type Job struct {
	Path string
}

// ResultFunc receives the outcome of each processed job. It is called
// from worker goroutines and must be safe for concurrent use.
type ResultFunc func(job Job, res *Result, err error)

// Queue fans jobs out to a fixed pool of pipeline workers. Each job
// gets its own timeout so one pathological document cannot stall the
// batch.
type Queue struct {
	pipe    *Pipeline
	onDone  ResultFunc
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type QueueOption func(*Queue)

func WithWorkers(n int) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithJobTimeout(d time.Duration) QueueOption {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// NewQueue builds and starts the worker pool.
func NewQueue(pipe *Pipeline, onDone ResultFunc, logger *slog.Logger, opts ...QueueOption) *Queue {
	q := &Queue{
		pipe:    pipe,
		onDone:  onDone,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("queue.worker_started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					res, err := q.pipe.Run(ctx, job.Path)
					cancel()

					if err != nil {
						q.logger.Error("queue.job_failed",
							"worker_id", workerID, "path", job.Path,
							"kind", string(KindOf(err)), "error", err)
					} else {
						q.logger.Info("queue.job_done",
							"worker_id", workerID, "path", job.Path,
							"elapsed", res.Duration)
					}
					if q.onDone != nil {
						q.onDone(job, res, err)
					}
				}

				q.logger.Info("queue.worker_stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Enqueue submits a job, blocking when the buffer is full. Jobs
// submitted after shutdown has begun are dropped with a warning.
func (q *Queue) Enqueue(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("queue.enqueue_after_shutdown", "path", job.Path)
		return
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue.backpressure", "path", job.Path)
		q.ch <- job
	}
}

// Shutdown stops intake and waits for in-flight jobs to finish, or
// for ctx to expire.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("queue.shutdown_interrupted")
	case <-done:
		q.logger.Info("queue.drained")
	}
}
