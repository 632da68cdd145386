package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_FIFOAndDepth(t *testing.T) {
	q := NewMemoryQueue(4)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, &Task{Kind: KindTitle, SubjectID: "a"}))
	require.NoError(t, q.Enqueue(ctx, &Task{Kind: KindArtifactMetadata, SubjectID: "b"}))

	depth, err := q.GetQueueDepth(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), depth)

	first, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first.SubjectID)
	assert.False(t, first.QueuedAt.IsZero())

	second, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, KindArtifactMetadata, second.Kind)
}

func TestMemoryQueue_FullDoesNotBlock(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, &Task{Kind: KindTitle, SubjectID: "a"}))
	assert.ErrorIs(t, q.Enqueue(ctx, &Task{Kind: KindTitle, SubjectID: "b"}), ErrQueueFull)
}

func TestMemoryQueue_DequeueHonorsContext(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	task, err := q.Dequeue(ctx)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_CloseDrainsThenReturnsNil(t *testing.T) {
	q := NewMemoryQueue(2)
	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, &Task{Kind: KindTitle, SubjectID: "a"}))
	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Enqueue(ctx, &Task{Kind: KindTitle, SubjectID: "b"}), ErrQueueClosed)

	task, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", task.SubjectID)

	task, err = q.Dequeue(ctx)
	assert.NoError(t, err)
	assert.Nil(t, task)
}
