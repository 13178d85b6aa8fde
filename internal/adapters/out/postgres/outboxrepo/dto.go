// Package outboxrepo persists notification events in a transactional outbox
// table. Events are appended in the same transaction as the state change they
// announce and relayed to the notification system afterwards.
package outboxrepo

import (
	"strings"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// EventDTO represents one notification outbox row.
type EventDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind         string
	ProposalID   uuid.UUID `gorm:"type:uuid;index"`
	ResultURL    string
	Locations    string
	CreatedAt    time.Time
	DispatchedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox events.
func (EventDTO) TableName() string {
	return "notification_outbox"
}

// locationSeparator joins the location list into a single column. Location
// references never contain newlines.
const locationSeparator = "\n"

func fromDomain(event *notification.Event) EventDTO {
	return EventDTO{
		ID:           event.ID().Bytes(),
		Kind:         string(event.Kind()),
		ProposalID:   event.ProposalID().Bytes(),
		ResultURL:    event.ResultURL(),
		Locations:    strings.Join(event.Locations(), locationSeparator),
		CreatedAt:    event.CreatedAt(),
		DispatchedAt: event.DispatchedAt(),
	}
}

func toDomain(dto EventDTO) (*notification.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	proposalID, err := kernel.UUIDFromBytes(dto.ProposalID[:])
	if err != nil {
		return nil, err
	}

	var locations []string
	if dto.Locations != "" {
		locations = strings.Split(dto.Locations, locationSeparator)
	}

	return notification.RestoreEvent(
		id,
		notification.Kind(dto.Kind),
		proposalID,
		dto.ResultURL,
		locations,
		dto.CreatedAt,
		dto.DispatchedAt,
	)
}
