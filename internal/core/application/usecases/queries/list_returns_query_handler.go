package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListReturnsQueryHandler retrieves the return history of an invoice. An
// unknown invoice number yields an empty list rather than an error; the
// detail query is the place to distinguish the two.
type ListReturnsQueryHandler struct {
	db *gorm.DB
}

// NewListReturnsQueryHandler creates a handler for return history queries.
// Requires a GORM database connection for query execution.
func NewListReturnsQueryHandler(db *gorm.DB) ListReturnsQueryHandler {
	return ListReturnsQueryHandler{db: db}
}

// Handle executes the query to retrieve the return history, oldest first.
func (h ListReturnsQueryHandler) Handle(
	ctx context.Context,
	query ListReturnsQuery,
) ([]ReturnView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]ReturnView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.stage,
			r.actor_id,
			r.reason,
			r.raised_at
		FROM invoice_returns r
		JOIN invoices i ON i.id = r.invoice_id
		WHERE i.invoice_no = ?
		ORDER BY r.raised_at
	`, query.InvoiceNo()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view    ReturnView
			id      uuid.UUID
			stage   int
			actorID uuid.UUID
		)

		err = rows.Scan(&id, &stage, &actorID, &view.Reason, &view.RaisedAt)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		view.Stage = kernel.Stage(stage).String()

		records = append(records, view)
	}

	return records, rows.Err()
}
