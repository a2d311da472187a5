package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListConsiderListQueryHandler retrieves the consider list from the
// delivery session ledger, oldest dispatch first so stale sessions surface
// at the top.
type ListConsiderListQueryHandler struct {
	db *gorm.DB
}

// NewListConsiderListQueryHandler creates a handler for consider list
// queries. Requires a GORM database connection for query execution.
func NewListConsiderListQueryHandler(db *gorm.DB) ListConsiderListQueryHandler {
	return ListConsiderListQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending delivery sessions.
func (h ListConsiderListQueryHandler) Handle(
	ctx context.Context,
	query ListConsiderListQuery,
) ([]ListConsiderListQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]ListConsiderListQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.invoice_id,
			i.invoice_no,
			i.status,
			d.type,
			d.tracking_no,
			d.started_at
		FROM delivery_sessions d
		JOIN invoices i ON i.id = d.invoice_id
		WHERE d.state = ?
		ORDER BY d.started_at
	`, int(delivery.StateToConsider)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view          ListConsiderListQueryResponse
			id            uuid.UUID
			invoiceID     uuid.UUID
			invoiceStatus int
			deliveryType  int
		)

		err = rows.Scan(
			&id, &invoiceID, &view.InvoiceNo, &invoiceStatus, &deliveryType, &view.TrackingNo, &view.StartedAt)
		if err != nil {
			return nil, err
		}

		if view.SessionID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.InvoiceID, err = kernel.UUIDFromBytes(invoiceID[:]); err != nil {
			return nil, err
		}
		view.InvoiceStatus = invoice.Status(invoiceStatus).String()
		view.DeliveryType = delivery.Type(deliveryType).String()

		pending = append(pending, view)
	}

	return pending, rows.Err()
}
