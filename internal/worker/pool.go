// Package worker runs queued background jobs: conversation titles and artifact metadata.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/queue"
	obsworker "github.com/janhq/camus/pkg/observability/worker"
)

// Handler runs one job for subjectID.
type Handler func(ctx context.Context, subjectID string) error

// Handlers maps a task kind to the function that runs it.
type Handlers map[queue.Kind]Handler

// Pool manages multiple background workers.
type Pool struct {
	workers     []*Worker
	queue       queue.TaskQueue
	handlers    Handlers
	workerCount int
	taskTimeout time.Duration
	jobs        *obsworker.JobInstrumenter
	log         zerolog.Logger
	wg          sync.WaitGroup
}

// Config contains worker pool configuration.
type Config struct {
	WorkerCount int
	TaskTimeout time.Duration
	// Jobs records OTEL job metrics. Optional.
	Jobs *obsworker.JobInstrumenter
}

// NewPool creates a new worker pool.
func NewPool(
	queue queue.TaskQueue,
	handlers Handlers,
	cfg Config,
	log zerolog.Logger,
) *Pool {
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
	}
	taskTimeout := cfg.TaskTimeout
	if taskTimeout <= 0 {
		taskTimeout = 30 * time.Second
	}
	return &Pool{
		queue:       queue,
		handlers:    handlers,
		workerCount: workerCount,
		taskTimeout: taskTimeout,
		jobs:        cfg.Jobs,
		log:         log.With().Str("component", "worker-pool").Logger(),
	}
}

// Start initializes and starts all workers.
func (p *Pool) Start(ctx context.Context) error {
	p.log.Info().Int("worker_count", p.workerCount).Msg("starting worker pool")

	p.workers = make([]*Worker, p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		worker := NewWorker(i+1, p.queue, p.handlers, p.taskTimeout, p.jobs, p.log)
		p.workers[i] = worker

		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Start(ctx)
		}(worker)
	}

	p.log.Info().Msg("worker pool started")
	return nil
}

// Stop gracefully shuts down all workers.
func (p *Pool) Stop() {
	p.log.Info().Msg("stopping worker pool")

	for _, worker := range p.workers {
		worker.Stop()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info().Msg("all workers stopped gracefully")
	case <-time.After(30 * time.Second):
		p.log.Warn().Msg("worker pool shutdown timed out")
	}
}

// GetQueueDepth returns the current queue depth.
func (p *Pool) GetQueueDepth(ctx context.Context) (int64, error) {
	depth, err := p.queue.GetQueueDepth(ctx)
	if err == nil {
		metrics.SetQueueDepth(int(depth))
	}
	return depth, err
}
