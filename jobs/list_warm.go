package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/bizdesk/internal/jobs"
)

// ListWarmer loads resources through the list cache.
type ListWarmer interface {
	Names() []string
	Warm(ctx context.Context, name string) (int, error)
}

// ListWarmJob refills list caches after mutations and on a schedule.
type ListWarmJob struct {
	Lists   ListWarmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewListWarmJob wires dependencies for the list warm handler.
func NewListWarmJob(lists ListWarmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *ListWarmJob {
	return &ListWarmJob{Lists: lists, Logger: logger, Metrics: metrics}
}

// Handle processes TaskListWarm tasks.
func (j *ListWarmJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Lists == nil {
		return errors.New("list warm: handler not configured")
	}
	var payload ListWarmPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	metrics := metricsOrDefault(j.Metrics)
	tracker := metrics.Track(TaskListWarm)
	defer func() { err = tracker.End(err) }()

	logger := loggerOrDefault(j.Logger).With(slog.String("job", TaskListWarm))
	names := j.Lists.Names()
	if payload.Resource != "" {
		if !slices.Contains(names, payload.Resource) {
			logger.Warn("unknown list resource", slog.String("resource", payload.Resource))
			return asynq.SkipRetry
		}
		names = []string{payload.Resource}
	}
	start := time.Now()
	var errs []error
	for _, name := range names {
		count, err := j.Lists.Warm(ctx, name)
		if err != nil {
			logger.Error("warm list", slog.String("resource", name), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		metrics.AddWarmedRows(name, count)
	}
	logger.Info("list warm finished", slog.Int("resources", len(names)), slog.Duration("duration", time.Since(start)))
	return errors.Join(errs...)
}
