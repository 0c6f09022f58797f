package worker

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/metrics"
)

// ErrQueueFull is returned by SubmitJob when the queue has no room.
var ErrQueueFull = errors.New("worker: job queue full")

// ErrStopped is returned by SubmitJob after Stop.
var ErrStopped = errors.New("worker: dispatcher stopped")

// Job represents a unit of work to be executed.
type Job interface {
	Execute(ctx context.Context) error
	ID() string
}

// Worker pulls jobs from its own channel after registering it with the pool.
type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	log        *logrus.Entry
}

// NewWorker creates a new Worker.
func NewWorker(id int, workerPool chan chan Job, log *logrus.Entry) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		log:        log.WithField("worker_id", id),
	}
}

// Start makes the Worker listen for jobs until ctx is done.
func (w Worker) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			// Register the current worker's JobChannel to the worker pool.
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-ctx.Done():
				return
			}

			select {
			case job := <-w.JobChannel:
				w.run(ctx, job)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (w Worker) run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithFields(logrus.Fields{"job_id": job.ID(), "panic": r}).Error("Job panicked")
		}
	}()
	if err := job.Execute(ctx); err != nil {
		w.log.WithFields(logrus.Fields{"job_id": job.ID(), "error": err}).Warn("Job failed")
		return
	}
	w.log.WithField("job_id", job.ID()).Debug("Job finished")
}

// Dispatcher manages a pool of workers and dispatches jobs to them.
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Job
	JobQueue   chan Job
	Workers    []Worker

	log     *logrus.Entry
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(maxWorkers int, jobQueueSize int, logger *logrus.Logger) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if jobQueueSize < 0 {
		jobQueueSize = 0
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Job, maxWorkers),
		JobQueue:   make(chan Job, jobQueueSize),
		Workers:    make([]Worker, 0, maxWorkers),
		log:        logger.WithField("component", "dispatcher"),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the dispatcher and its workers.
func (d *Dispatcher) Run() {
	d.log.WithField("workers", d.MaxWorkers).Info("Dispatcher starting")
	for i := 1; i <= d.MaxWorkers; i++ {
		worker := NewWorker(i, d.WorkerPool, d.log)
		d.Workers = append(d.Workers, worker)
		worker.Start(d.ctx, &d.wg)
	}

	d.wg.Add(1)
	go d.dispatch()
}

// dispatch hands queued jobs to the next free worker.
func (d *Dispatcher) dispatch() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.JobQueue:
			metrics.WorkerQueueDepth.Set(float64(len(d.JobQueue)))
			select {
			case jobChannel := <-d.WorkerPool:
				select {
				case jobChannel <- job:
				case <-d.ctx.Done():
					return
				}
			case <-d.ctx.Done():
				return
			}
		case <-d.ctx.Done():
			return
		}
	}
}

// SubmitJob queues a job without blocking.
func (d *Dispatcher) SubmitJob(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.JobQueue <- job:
		metrics.WorkerQueueDepth.Set(float64(len(d.JobQueue)))
		return nil
	default:
		d.log.WithField("job_id", job.ID()).Warn("Job queue full")
		return ErrQueueFull
	}
}

// Stop cancels running jobs and waits for every worker to exit. Jobs still
// queued are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
	d.log.Info("Dispatcher stopped")
}
