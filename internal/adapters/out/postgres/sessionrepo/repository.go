package sessionrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations, raised when a concurrent claim loses the race on
// idx_stage_sessions_active.
const uniqueViolation = "23505"

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stage session. The loser of a concurrent claim on the
// same invoice and stage receives session.ErrDuplicateActiveSession.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice %s, stage %s",
				session.ErrDuplicateActiveSession, aggregate.InvoiceID(), aggregate.Stage())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the completion or cancellation of a session.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("id = ?", dto.ID).
		Select("CompletedBy", "State", "EndedAt", "Notes").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActive retrieves the active session for an invoice and stage.
func (r *GormSessionRepository) GetActive(ctx context.Context, invoiceID kernel.UUID, stage kernel.Stage) (
	*session.Session, error) {
	if err := errors.Join(invoiceID.Validate(), stage.Validate()); err != nil {
		return nil, err
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).First(&dto,
		"invoice_id = ? AND stage = ? AND state = ?",
		invoiceID.Bytes(), int(stage), int(session.StateActive)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active session", invoiceID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every active worker-stage session of an invoice.
func (r *GormSessionRepository) GetAllActive(ctx context.Context, invoiceID kernel.UUID) (
	[]*session.Session, error) {
	if err := invoiceID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SessionDTO
	err := r.db.WithContext(ctx).Find(&dtos,
		"invoice_id = ? AND state = ?", invoiceID.Bytes(), int(session.StateActive)).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*session.Session, 0, len(dtos))
	for _, dto := range dtos {
		sess, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		sessions = append(sessions, sess)
	}

	return sessions, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
