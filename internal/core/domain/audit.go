package domain

import (
	"encoding/json"
	"time"
)

// AuditAction classifies an audit trail event.
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditApprove AuditAction = "APPROVE"
	AuditReject  AuditAction = "REJECT"
	AuditUpdate  AuditAction = "UPDATE"
	AuditDelete  AuditAction = "DELETE"
)

// AuditEvent is the structured record the core emits for every state change.
// Delivery and storage belong to the audit collaborator.
type AuditEvent struct {
	ActorID    string          `json:"actorID"`
	Action     AuditAction     `json:"action"`
	TableName  string          `json:"tableName"`
	RecordID   string          `json:"recordID"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}
