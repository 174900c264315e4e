package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/finken/finken_backend/internal/core/domain"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeRecordAudit is the task type for persisting audit trail events.
	TaskTypeRecordAudit = "audit:record"
	// TaskTypeEntrySubmitted is the task type for alerting approvers about a
	// freshly submitted journal entry.
	TaskTypeEntrySubmitted = "journal:pending_created"
	// TaskTypeReconcileLedger is the scheduled task type for balance reconciliation.
	TaskTypeReconcileLedger = "ledger:reconcile"
)

// NewRecordAuditTask constructs an Asynq task carrying one audit event.
func NewRecordAuditTask(event domain.AuditEvent) (*asynq.Task, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRecordAudit, data), nil
}

// NewEntrySubmittedTask constructs an Asynq task for a pending entry notice.
func NewEntrySubmittedTask(notice domain.PendingEntryNotice) (*asynq.Task, error) {
	data, err := json.Marshal(notice)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeEntrySubmitted, data), nil
}

// NewReconcileLedgerTask constructs the periodic reconciliation task. It has
// no payload; the handler replays everything.
func NewReconcileLedgerTask() *asynq.Task {
	return asynq.NewTask(TaskTypeReconcileLedger, nil)
}

// HandleRecordAuditTask processes TaskTypeRecordAudit tasks. The audit trail
// is written to the structured log; a durable store can subscribe to the same
// queue later.
func HandleRecordAuditTask(ctx context.Context, t *asynq.Task) error {
	var event domain.AuditEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return asynq.SkipRetry
	}
	slog.InfoContext(ctx, "audit event",
		slog.String("actor_id", event.ActorID),
		slog.String("action", string(event.Action)),
		slog.String("table", event.TableName),
		slog.String("record_id", event.RecordID),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}

// HandleEntrySubmittedTask processes TaskTypeEntrySubmitted tasks. Delivery
// to approvers (email or similar) hangs off this handler.
func HandleEntrySubmittedTask(ctx context.Context, t *asynq.Task) error {
	var notice domain.PendingEntryNotice
	if err := json.Unmarshal(t.Payload(), &notice); err != nil {
		return asynq.SkipRetry
	}
	slog.InfoContext(ctx, "journal entry awaiting approval",
		slog.String("entry_id", notice.EntryID),
		slog.String("submitted_by", notice.SubmittedBy),
		slog.String("total_amount", notice.TotalAmount.String()))
	return nil
}
