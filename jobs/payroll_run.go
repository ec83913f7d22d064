package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/bizdesk/internal/jobs"
	"github.com/odyssey-erp/bizdesk/internal/payroll"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// PayrollExecutor performs a payroll run.
type PayrollExecutor interface {
	Execute(ctx context.Context, scheduleID int64) (payroll.Run, error)
}

// CacheBumper invalidates the cached rows of a resource.
type CacheBumper interface {
	Bump(ctx context.Context, resource string) error
}

// PayrollRunJob records a payroll run and refreshes the schedule list.
type PayrollRunJob struct {
	Payroll PayrollExecutor
	Cache   CacheBumper
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewPayrollRunJob wires dependencies for the payroll run handler.
func NewPayrollRunJob(exec PayrollExecutor, cache CacheBumper, logger *slog.Logger, metrics *jobmetrics.Metrics) *PayrollRunJob {
	return &PayrollRunJob{Payroll: exec, Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle processes TaskPayrollRun tasks.
func (j *PayrollRunJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Payroll == nil {
		return errors.New("payroll run: handler not configured")
	}
	var payload PayrollRunPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || payload.ScheduleID <= 0 {
		return asynq.SkipRetry
	}

	tracker := metricsOrDefault(j.Metrics).Track(TaskPayrollRun)
	defer func() { err = tracker.End(err) }()

	logger := loggerOrDefault(j.Logger).With(slog.String("job", TaskPayrollRun), slog.Int64("schedule_id", payload.ScheduleID))
	run, err := j.Payroll.Execute(ctx, payload.ScheduleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrInvalidState) {
			logger.Warn("payroll run skipped", slog.Any("error", err))
			return nil
		}
		logger.Error("payroll run", slog.Any("error", err))
		return err
	}
	logger.Info("payroll run recorded", slog.Int64("run_id", run.ID), slog.Int("employees", run.Employees), slog.Float64("total", run.Total))

	if j.Cache != nil {
		if err := j.Cache.Bump(ctx, payroll.SchedulesName); err != nil {
			logger.Warn("bump payroll list cache", slog.Any("error", err))
		}
	}
	return nil
}

func metricsOrDefault(m *jobmetrics.Metrics) *jobmetrics.Metrics {
	if m != nil {
		return m
	}
	return defaultJobMetrics
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
