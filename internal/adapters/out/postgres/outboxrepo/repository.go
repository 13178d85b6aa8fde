package outboxrepo

import (
	"context"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append saves a new event to the outbox.
func (r *GormOutboxRepository) Append(ctx context.Context, event *notification.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FetchUndispatched retrieves the oldest events that have not been delivered
// yet, up to the given limit.
func (r *GormOutboxRepository) FetchUndispatched(ctx context.Context, limit int) ([]*notification.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*notification.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, eventErr := toDomain(dto)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return events, nil
}

// MarkDispatched stamps the event as delivered. Returns
// errs.ErrObjectNotFound when the event does not exist.
func (r *GormOutboxRepository) MarkDispatched(ctx context.Context, eventID kernel.UUID) error {
	if err := eventID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ?", eventID.Bytes()).
		Update("dispatched_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("eventId", eventID.String())
	}

	return nil
}
