package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/janhq/camus/internal/infrastructure/queue"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu   sync.Mutex
	seen map[queue.Kind][]string
	done chan struct{}
	want int
}

func newRecorder(want int) *recorder {
	return &recorder{seen: map[queue.Kind][]string{}, done: make(chan struct{}), want: want}
}

func (r *recorder) handler(kind queue.Kind, err error) Handler {
	return func(_ context.Context, subjectID string) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.seen[kind] = append(r.seen[kind], subjectID)
		r.want--
		if r.want == 0 {
			close(r.done)
		}
		return err
	}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for tasks")
	}
}

func TestPoolDispatchesByKind(t *testing.T) {
	q := queue.NewMemoryQueue(16)
	rec := newRecorder(4)
	pool := NewPool(q, Handlers{
		queue.KindTitle:            rec.handler(queue.KindTitle, nil),
		queue.KindArtifactMetadata: rec.handler(queue.KindArtifactMetadata, errors.New("llm down")),
	}, Config{WorkerCount: 2, TaskTimeout: time.Second}, zerolog.Nop())

	ctx := context.Background()
	require.NoError(t, pool.Start(ctx))
	defer pool.Stop()

	scheduler := NewScheduler(q, zerolog.Nop())
	scheduler.ScheduleTitle(ctx, "conv_1")
	scheduler.ScheduleTitle(ctx, "conv_2")
	scheduler.ScheduleMetadata(ctx, "art_1")
	scheduler.ScheduleMetadata(ctx, "art_2")

	waitFor(t, rec.done)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.ElementsMatch(t, []string{"conv_1", "conv_2"}, rec.seen[queue.KindTitle])
	assert.ElementsMatch(t, []string{"art_1", "art_2"}, rec.seen[queue.KindArtifactMetadata])
}

func TestWorkerSurvivesPanicsAndUnknownKinds(t *testing.T) {
	q := queue.NewMemoryQueue(8)
	rec := newRecorder(1)
	pool := NewPool(q, Handlers{
		queue.KindArtifactMetadata: func(context.Context, string) error { panic("boom") },
		queue.KindTitle:            rec.handler(queue.KindTitle, nil),
	}, Config{WorkerCount: 1, TaskTimeout: time.Second}, zerolog.Nop())

	ctx := context.Background()
	require.NoError(t, pool.Start(ctx))
	defer pool.Stop()

	require.NoError(t, q.Enqueue(ctx, &queue.Task{Kind: "unknown", SubjectID: "x"}))
	require.NoError(t, q.Enqueue(ctx, &queue.Task{Kind: queue.KindArtifactMetadata, SubjectID: "art_1"}))
	require.NoError(t, q.Enqueue(ctx, &queue.Task{Kind: queue.KindTitle, SubjectID: "conv_1"}))

	waitFor(t, rec.done)
}

func TestWorkerAppliesTaskTimeout(t *testing.T) {
	q := queue.NewMemoryQueue(4)
	done := make(chan error, 1)
	pool := NewPool(q, Handlers{
		queue.KindTitle: func(ctx context.Context, _ string) error {
			<-ctx.Done()
			done <- ctx.Err()
			return ctx.Err()
		},
	}, Config{WorkerCount: 1, TaskTimeout: 20 * time.Millisecond}, zerolog.Nop())

	require.NoError(t, pool.Start(context.Background()))
	defer pool.Stop()

	NewScheduler(q, zerolog.Nop()).ScheduleTitle(context.Background(), "conv_1")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("handler never timed out")
	}
}

func TestPoolStopsOnContextCancel(t *testing.T) {
	q := queue.NewMemoryQueue(4)
	pool := NewPool(q, Handlers{}, Config{WorkerCount: 3}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, pool.Start(ctx))
	cancel()
	pool.Stop()

	depth, err := pool.GetQueueDepth(context.Background())
	require.NoError(t, err)
	assert.Zero(t, depth)
}

func TestSchedulerDropsWhenQueueFull(t *testing.T) {
	q := queue.NewMemoryQueue(1)
	s := NewScheduler(q, zerolog.Nop())
	ctx := context.Background()

	s.ScheduleTitle(ctx, "conv_1")
	s.ScheduleTitle(ctx, "conv_2")
	s.ScheduleTitle(ctx, "")

	depth, err := q.GetQueueDepth(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), depth)

	q.Close()
	s.ScheduleMetadata(ctx, "art_1")
}
