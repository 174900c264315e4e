package services

import (
	"context"

	"github.com/finken/finken_backend/internal/core/domain"
)

// AuditRecorder records who did what to which row. Delivery is asynchronous;
// a failed enqueue must never fail the business operation that produced it.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// Notifier tells approvers that there is work waiting for them.
type Notifier interface {
	NotifyEntrySubmitted(ctx context.Context, notice domain.PendingEntryNotice) error
}
