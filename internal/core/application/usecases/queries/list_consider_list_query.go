package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListConsiderListQueryIsNotConstructed = errors.New(
		"ListConsiderListQuery must be created via NewListConsiderListQuery constructor",
	)
)

// ListConsiderListQuery retrieves the consider list: every delivery session
// that has been dispatched but not yet confirmed delivered or cancelled.
// This is the dispatcher's worklist and the input of the sweep job.
type ListConsiderListQuery struct {
	guard guard.ConstructorGuard
}

// NewListConsiderListQuery creates a query for the open delivery sessions.
// This is a parameterless query that fetches the complete consider list.
func NewListConsiderListQuery() ListConsiderListQuery {
	return ListConsiderListQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListConsiderListQueryIsNotConstructed if validation fails.
func (q ListConsiderListQuery) Validate() error {
	return q.guard.Validate(ErrListConsiderListQueryIsNotConstructed)
}

// ListConsiderListQueryResponse represents one pending delivery session.
type ListConsiderListQueryResponse struct {
	SessionID     kernel.UUID
	InvoiceID     kernel.UUID
	InvoiceNo     string
	InvoiceStatus string
	DeliveryType  string
	TrackingNo    string
	StartedAt     time.Time
}
