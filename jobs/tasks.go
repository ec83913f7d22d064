package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPayrollRun executes one payroll schedule.
	TaskPayrollRun = "payroll:run"
	// TaskListWarm refills the list cache of a resource.
	TaskListWarm = "list:warm"
	// TaskIdempotencyCleanup prunes expired action idempotency keys.
	TaskIdempotencyCleanup = "idempotency:cleanup"
)

// PayrollRunPayload names the schedule to run.
type PayrollRunPayload struct {
	ScheduleID int64 `json:"schedule_id"`
}

// ListWarmPayload names the resource to warm. Empty means every resource.
type ListWarmPayload struct {
	Resource string `json:"resource,omitempty"`
}

// IdempotencyCleanupPayload sets the retention window in hours.
type IdempotencyCleanupPayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewPayrollRunTask constructs a payroll run task.
func NewPayrollRunTask(scheduleID int64) (*asynq.Task, error) {
	if scheduleID <= 0 {
		return nil, fmt.Errorf("payroll run: invalid schedule %d", scheduleID)
	}
	data, err := json.Marshal(PayrollRunPayload{ScheduleID: scheduleID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPayrollRun, data), nil
}

// NewListWarmTask constructs a list warm task.
func NewListWarmTask(resource string) (*asynq.Task, error) {
	data, err := json.Marshal(ListWarmPayload{Resource: resource})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskListWarm, data), nil
}

// NewIdempotencyCleanupTask constructs a cleanup task keeping keys for retention.
func NewIdempotencyCleanupTask(retention time.Duration) (*asynq.Task, error) {
	hours := int(retention / time.Hour)
	if hours <= 0 {
		return nil, fmt.Errorf("idempotency cleanup: retention %s below one hour", retention)
	}
	data, err := json.Marshal(IdempotencyCleanupPayload{RetentionHours: hours})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIdempotencyCleanup, data), nil
}
