package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "camus/conversation-store"
)

// GetTracer returns the tracer for the conversation store.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartConversationSpan starts a span for a conversation level operation.
func StartConversationSpan(ctx context.Context, operation, conversationID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "conversation."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("conversation.id", conversationID)),
	)
}

// StartMessageSpan starts a span for a message write.
func StartMessageSpan(ctx context.Context, operation, conversationID, messageID, role string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "message."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("conversation.id", conversationID),
			attribute.String("message.id", messageID),
			attribute.String("message.role", role),
		),
	)
}

// StartArtifactSpan starts a new span for artifact operations.
func StartArtifactSpan(ctx context.Context, operation, artifactID, artifactType string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "artifact."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("artifact.id", artifactID),
			attribute.String("artifact.type", artifactType),
		),
	)
}

// StartTaskSpan starts a span for a background task.
func StartTaskSpan(ctx context.Context, kind, subjectID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "task."+kind,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("task.kind", kind),
			attribute.String("task.subject_id", subjectID),
		),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error, severity string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.severity", severity))
}

// AddBestEffortFailure notes a swallowed secondary step failure on the span.
func AddBestEffortFailure(span trace.Span, step string, err error) {
	span.AddEvent("best_effort.failed",
		trace.WithAttributes(
			attribute.String("step", step),
			attribute.String("error", err.Error()),
		),
	)
}

// AddCacheEvent notes a view cache hit or miss on the span.
func AddCacheEvent(span trace.Span, hit bool) {
	span.AddEvent("cache.lookup", trace.WithAttributes(attribute.Bool("cache.hit", hit)))
}

// SpanFromContext returns the active span. It is a no-op span when none is recording.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
