package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// InvoiceEvent describes one state change of an invoice for downstream
// consumers (dashboards, SSE fan-out). Events are named by invoice number
// plus the new status.
type InvoiceEvent struct {
	InvoiceID  kernel.UUID `json:"invoice_id"`
	InvoiceNo  string      `json:"invoice_no"`
	Status     string      `json:"status"`
	Kind       string      `json:"kind"`
	Stage      string      `json:"stage,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// EventNotifier publishes invoice state changes to the event transport.
// Notification is best-effort and fire-and-forget relative to the state
// transition: handlers publish after commit, and a publish failure is
// logged, never propagated, and never rolls back the transition.
type EventNotifier interface {
	Notify(ctx context.Context, event InvoiceEvent) error
}
