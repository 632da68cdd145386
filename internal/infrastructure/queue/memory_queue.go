package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue implements TaskQueue on a buffered channel. Tasks do not survive a
// restart; the title backfill job picks up whatever was lost.
type MemoryQueue struct {
	mu     sync.RWMutex
	tasks  chan *Task
	closed bool
}

// NewMemoryQueue creates a queue holding at most size tasks.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 1
	}
	return &MemoryQueue{tasks: make(chan *Task, size)}
}

// Enqueue adds a task to the queue
func (q *MemoryQueue) Enqueue(_ context.Context, task *Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	if task.QueuedAt.IsZero() {
		task.QueuedAt = time.Now().UTC()
	}
	select {
	case q.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue fetches the next available task
func (q *MemoryQueue) Dequeue(ctx context.Context) (*Task, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case task, ok := <-q.tasks:
		if !ok {
			return nil, nil
		}
		return task, nil
	}
}

// GetQueueDepth returns the number of queued tasks
func (q *MemoryQueue) GetQueueDepth(context.Context) (int64, error) {
	return int64(len(q.tasks)), nil
}

// Close stops accepting tasks.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.tasks)
}
