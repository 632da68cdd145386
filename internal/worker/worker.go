package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/observability"
	"github.com/janhq/camus/internal/infrastructure/queue"
	obsworker "github.com/janhq/camus/pkg/observability/worker"
)

// Worker processes background tasks from the queue.
type Worker struct {
	id          int
	queue       queue.TaskQueue
	handlers    Handlers
	taskTimeout time.Duration
	jobs        *obsworker.JobInstrumenter
	log         zerolog.Logger
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// NewWorker creates a new background worker.
func NewWorker(
	id int,
	queue queue.TaskQueue,
	handlers Handlers,
	taskTimeout time.Duration,
	jobs *obsworker.JobInstrumenter,
	log zerolog.Logger,
) *Worker {
	return &Worker{
		id:          id,
		queue:       queue,
		handlers:    handlers,
		taskTimeout: taskTimeout,
		jobs:        jobs,
		log:         log.With().Int("worker_id", id).Str("component", "worker").Logger(),
		stopChan:    make(chan struct{}),
	}
}

// Start processes tasks until ctx ends, Stop is called or the queue is closed and drained.
func (w *Worker) Start(ctx context.Context) {
	w.log.Debug().Msg("worker started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		task, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				w.log.Debug().Msg("worker stopped")
				return
			}
			w.log.Error().Err(err).Msg("failed to dequeue task")
			continue
		}
		if task == nil {
			w.log.Debug().Msg("queue closed, worker exiting")
			return
		}

		w.process(ctx, task)
	}
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
}

func (w *Worker) process(ctx context.Context, task *queue.Task) {
	log := w.log.With().Str("kind", string(task.Kind)).Str("subject_id", task.SubjectID).Logger()

	handler, ok := w.handlers[task.Kind]
	if !ok {
		log.Warn().Msg("no handler for task kind")
		metrics.RecordBackgroundJob(string(task.Kind), "unhandled")
		return
	}

	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.taskTimeout)
	defer cancel()
	taskCtx, span := observability.StartTaskSpan(taskCtx, string(task.Kind), task.SubjectID)
	defer span.End()

	err := w.jobs.Track(taskCtx, string(task.Kind), func(ctx context.Context) error {
		return w.run(ctx, handler, task.SubjectID)
	})
	if err != nil {
		observability.RecordError(span, err, "low")
		metrics.RecordBackgroundJob(string(task.Kind), "failed")
		log.Warn().Err(err).Dur("queued_for", time.Since(task.QueuedAt)).Msg("background task failed")
		return
	}

	metrics.RecordBackgroundJob(string(task.Kind), "completed")
	log.Debug().Msg("background task completed")
}

// run keeps a panicking handler from taking the worker down with it.
func (w *Worker) run(ctx context.Context, handler Handler, subjectID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return handler(ctx, subjectID)
}
