package returnrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GORM return repository.
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Add appends a return record to the invoice history.
func (r *GormReturnRepository) Add(ctx context.Context, record invoice.Return) error {
	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByInvoice retrieves the full return history of an invoice, oldest
// first.
func (r *GormReturnRepository) ListByInvoice(ctx context.Context, invoiceID kernel.UUID) (
	[]invoice.Return, error) {
	if err := invoiceID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnDTO
	err := r.db.WithContext(ctx).
		Order("raised_at ASC").
		Find(&dtos, "invoice_id = ?", invoiceID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]invoice.Return, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}
