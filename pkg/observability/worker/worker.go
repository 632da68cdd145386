// Package worker records OpenTelemetry metrics for background jobs.
package worker

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// JobInstrumenter counts background jobs and how long they ran. A nil
// *JobInstrumenter is valid and only runs the job.
type JobInstrumenter struct {
	jobsActive  metric.Int64UpDownCounter
	jobDuration metric.Float64Histogram
	jobsTotal   metric.Int64Counter
}

// NewJobInstrumenter creates the instruments on meter, prefixed with serviceName.
func NewJobInstrumenter(meter metric.Meter, serviceName string) (*JobInstrumenter, error) {
	jobsActive, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_jobs_active", serviceName),
		metric.WithDescription("Number of background jobs running"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_job_duration_seconds", serviceName),
		metric.WithDescription("Background job duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	jobsTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_jobs_total", serviceName),
		metric.WithDescription("Total background jobs processed"),
	)
	if err != nil {
		return nil, err
	}

	return &JobInstrumenter{
		jobsActive:  jobsActive,
		jobDuration: jobDuration,
		jobsTotal:   jobsTotal,
	}, nil
}

// Track runs fn and records its outcome under jobType.
func (j *JobInstrumenter) Track(ctx context.Context, jobType string, fn func(context.Context) error) error {
	if j == nil {
		return fn(ctx)
	}

	kind := metric.WithAttributes(attribute.String("job.type", jobType))
	j.jobsActive.Add(ctx, 1, kind)
	defer j.jobsActive.Add(ctx, -1, kind)

	start := time.Now()
	err := fn(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("job.type", jobType),
		attribute.String("status", status),
	)
	j.jobDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	j.jobsTotal.Add(ctx, 1, attrs)

	return err
}
