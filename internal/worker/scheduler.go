package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/queue"
)

// Scheduler enqueues background jobs without waiting for them. A job that cannot
// be queued is dropped with a warning; the backfill job recovers missed titles.
type Scheduler struct {
	queue queue.TaskQueue
	log   zerolog.Logger
}

// NewScheduler creates a scheduler on top of q.
func NewScheduler(q queue.TaskQueue, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		queue: q,
		log:   log.With().Str("component", "task-scheduler").Logger(),
	}
}

// ScheduleTitle queues title generation for a conversation.
func (s *Scheduler) ScheduleTitle(ctx context.Context, conversationID string) {
	s.enqueue(ctx, queue.KindTitle, conversationID)
}

// ScheduleMetadata queues the metadata pass for an artifact.
func (s *Scheduler) ScheduleMetadata(ctx context.Context, artifactID string) {
	s.enqueue(ctx, queue.KindArtifactMetadata, artifactID)
}

func (s *Scheduler) enqueue(ctx context.Context, kind queue.Kind, subjectID string) {
	if s == nil || s.queue == nil || subjectID == "" {
		return
	}
	if err := s.queue.Enqueue(ctx, &queue.Task{Kind: kind, SubjectID: subjectID}); err != nil {
		metrics.RecordBackgroundJob(string(kind), "dropped")
		s.log.Warn().Err(err).Str("kind", string(kind)).Str("subject_id", subjectID).Msg("failed to schedule background task")
		return
	}
	if depth, err := s.queue.GetQueueDepth(ctx); err == nil {
		metrics.SetQueueDepth(int(depth))
	}
}
