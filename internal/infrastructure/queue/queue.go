package queue

import (
	"context"
	"errors"
	"time"
)

// Kind names the job a task runs.
type Kind string

const (
	// KindTitle generates a conversation title. SubjectID is the conversation id.
	KindTitle Kind = "title"
	// KindArtifactMetadata fills artifact display metadata. SubjectID is the artifact id.
	KindArtifactMetadata Kind = "artifact_metadata"
)

// ErrQueueFull is returned by Enqueue when the queue cannot accept more tasks.
var ErrQueueFull = errors.New("task queue is full")

// ErrQueueClosed is returned by Enqueue after Close.
var ErrQueueClosed = errors.New("task queue is closed")

// Task represents a background task to be processed.
type Task struct {
	Kind      Kind
	SubjectID string
	QueuedAt  time.Time
}

// TaskQueue defines the interface for task queue operations.
type TaskQueue interface {
	// Enqueue adds a task without blocking. A full queue returns ErrQueueFull.
	Enqueue(ctx context.Context, task *Task) error

	// Dequeue blocks until a task is available, ctx ends or the queue is closed.
	// A closed, drained queue returns (nil, nil).
	Dequeue(ctx context.Context) (*Task, error)

	// GetQueueDepth returns the number of queued tasks
	GetQueueDepth(ctx context.Context) (int64, error)

	// Close stops accepting tasks. Queued tasks can still be dequeued.
	Close()
}
