package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

// RunQueue hands payroll runs to the background worker.
type RunQueue interface {
	EnqueuePayrollRun(ctx context.Context, scheduleID int64) error
}

type Service struct {
	repo  Repository
	queue RunQueue
	now   func() time.Time
}

func NewService(repo Repository, queue RunQueue) *Service {
	return &Service{repo: repo, queue: queue, now: func() time.Time { return time.Now().UTC() }}
}

// RequestRun queues a run for an active schedule.
func (s *Service) RequestRun(ctx context.Context, scheduleID int64) error {
	status, err := s.repo.ScheduleStatus(ctx, scheduleID)
	if err != nil {
		return err
	}
	if status != "active" {
		return fmt.Errorf("schedule %d is %s: %w", scheduleID, status, shared.ErrInvalidState)
	}
	if s.queue == nil {
		return fmt.Errorf("payroll: no run queue configured")
	}
	return s.queue.EnqueuePayrollRun(ctx, scheduleID)
}

// Execute performs a queued run. Called by the worker.
func (s *Service) Execute(ctx context.Context, scheduleID int64) (Run, error) {
	return s.repo.RecordRun(ctx, scheduleID, s.now())
}
