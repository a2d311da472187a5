package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetInvoiceQueryHandler assembles the invoice read model from the invoice
// row, the line items, the stage session ledger and the return history.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetInvoiceQueryHandler struct {
	db *gorm.DB
}

// NewGetInvoiceQueryHandler creates a handler for invoice detail queries.
// Requires a GORM database connection for query execution.
func NewGetInvoiceQueryHandler(db *gorm.DB) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// invoice number is unknown.
func (h GetInvoiceQueryHandler) Handle(
	ctx context.Context,
	query GetInvoiceQuery,
) (GetInvoiceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	response, err := h.loadInvoice(ctx, query.InvoiceNo())
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	if response.LineItems, err = h.loadLineItems(ctx, response.ID); err != nil {
		return GetInvoiceQueryResponse{}, err
	}
	if response.Sessions, err = h.loadSessions(ctx, response.ID); err != nil {
		return GetInvoiceQueryResponse{}, err
	}
	if response.Returns, err = h.loadReturns(ctx, response.ID); err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	return response, nil
}

func (h GetInvoiceQueryHandler) loadInvoice(ctx context.Context, invoiceNo string) (
	GetInvoiceQueryResponse, error) {
	var (
		response      GetInvoiceQueryResponse
		id            uuid.UUID
		priority      int
		status        int
		billingStatus int
		totalOverride sql.Null[decimal.Decimal]
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			invoice_no,
			invoice_date,
			priority,
			remarks,
			status,
			billing_status,
			total_override
		FROM invoices
		WHERE invoice_no = ?
	`, invoiceNo).Row()

	err := row.Scan(
		&id,
		&response.InvoiceNo,
		&response.InvoiceDate,
		&priority,
		&response.Remarks,
		&status,
		&billingStatus,
		&totalOverride,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetInvoiceQueryResponse{}, errs.NewObjectNotFoundError("invoice", invoiceNo)
		}
		return GetInvoiceQueryResponse{}, err
	}

	invoiceID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	response.ID = invoiceID
	response.Priority = invoice.Priority(priority).String()
	response.Status = invoice.Status(status).String()
	response.BillingStatus = invoice.BillingStatus(billingStatus).String()
	if totalOverride.Valid {
		response.TotalOverride = &totalOverride.V
	}

	return response, nil
}

func (h GetInvoiceQueryHandler) loadLineItems(ctx context.Context, invoiceID kernel.UUID) (
	[]InvoiceLineView, error) {
	items := make([]InvoiceLineView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			code,
			quantity,
			unit_price,
			batch_no,
			shelf_location
		FROM invoice_line_items
		WHERE invoice_id = ?
		ORDER BY id
	`, invoiceID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item InvoiceLineView
		err = rows.Scan(
			&item.Name,
			&item.Code,
			&item.Quantity,
			&item.UnitPrice,
			&item.BatchNo,
			&item.ShelfLocation,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetInvoiceQueryHandler) loadSessions(ctx context.Context, invoiceID kernel.UUID) (
	[]StageSessionView, error) {
	sessions := make([]StageSessionView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			stage,
			assigned_to,
			state,
			started_at,
			ended_at,
			notes
		FROM stage_sessions
		WHERE invoice_id = ?
		ORDER BY started_at
	`, invoiceID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view       StageSessionView
			id         uuid.UUID
			stage      int
			assignedTo uuid.UUID
			state      int
			endedAt    sql.Null[time.Time]
		)

		err = rows.Scan(&id, &stage, &assignedTo, &state, &view.StartedAt, &endedAt, &view.Notes)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.AssignedTo, err = kernel.UUIDFromBytes(assignedTo[:]); err != nil {
			return nil, err
		}
		view.Stage = kernel.Stage(stage).String()
		view.State = session.State(state).String()
		if endedAt.Valid {
			view.EndedAt = &endedAt.V
		}

		sessions = append(sessions, view)
	}

	return sessions, rows.Err()
}

func (h GetInvoiceQueryHandler) loadReturns(ctx context.Context, invoiceID kernel.UUID) (
	[]ReturnView, error) {
	records := make([]ReturnView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			stage,
			actor_id,
			reason,
			raised_at
		FROM invoice_returns
		WHERE invoice_id = ?
		ORDER BY raised_at
	`, invoiceID.Bytes()).Rows()
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
