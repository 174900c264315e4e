package jobs

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/finken/finken_backend/internal/core/domain"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
)

// Client submits jobs to the queue. It implements the audit recorder and
// notifier collaborator ports by enqueueing the matching tasks.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// Ensure Client satisfies the collaborator ports
var (
	_ portssvc.AuditRecorder = (*Client)(nil)
	_ portssvc.Notifier      = (*Client)(nil)
)

// Record enqueues an audit event for asynchronous persistence.
// Implements portssvc.AuditRecorder
func (c *Client) Record(ctx context.Context, event domain.AuditEvent) error {
	task, err := NewRecordAuditTask(event)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// NotifyEntrySubmitted enqueues a pending entry notice for approvers.
// Implements portssvc.Notifier
func (c *Client) NotifyEntrySubmitted(ctx context.Context, notice domain.PendingEntryNotice) error {
	task, err := NewEntrySubmittedTask(notice)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
