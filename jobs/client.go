package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

// Client enqueues bizdesk tasks.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	return &Client{client: asynq.NewClient(redisOpts)}, nil
}

// EnqueuePayrollRun queues a run of the schedule. A run already queued for
// the same schedule reports shared.ErrDuplicate.
func (c *Client) EnqueuePayrollRun(ctx context.Context, scheduleID int64) error {
	task, err := NewPayrollRunTask(scheduleID)
	if err != nil {
		return err
	}
	err = c.enqueue(ctx, task, asynq.MaxRetry(3), asynq.Unique(10*time.Minute))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return shared.ErrDuplicate
	}
	return err
}

// EnqueueListWarm queues a cache refill of resource. Refills already queued
// are coalesced.
func (c *Client) EnqueueListWarm(ctx context.Context, resource string) error {
	task, err := NewListWarmTask(resource)
	if err != nil {
		return err
	}
	err = c.enqueue(ctx, task, asynq.MaxRetry(1), asynq.Unique(30*time.Second))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	_, err := c.client.EnqueueContext(ctx, task, append([]asynq.Option{asynq.Queue(QueueDefault)}, opts...)...)
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
