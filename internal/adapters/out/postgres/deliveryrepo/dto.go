// Package deliveryrepo provides data transfer objects and mapping functions
// for data delivery persistence. Implements the repository pattern for the
// DataDelivery aggregate over three normalized tables, so sub-delivery and
// delivery-round updates can target single rows.
package deliveryrepo

import (
	"time"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DataDeliveryDTO represents the proposal-level delivery container row.
// The proposal ID doubles as the primary key: one container per proposal.
type DataDeliveryDTO struct {
	ProposalID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ManagementSiteID string
	Acceptance       int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Infos []DeliveryInfoDTO `gorm:"foreignKey:ProposalID;references:ProposalID"`
}

// TableName specifies the database table name for delivery containers.
func (DataDeliveryDTO) TableName() string {
	return "data_deliveries"
}

// DeliveryInfoDTO represents one delivery round row.
type DeliveryInfoDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProposalID       uuid.UUID `gorm:"type:uuid;index"`
	Name             string
	DeliveryDate     time.Time
	Status           int `gorm:"index"`
	ManagementSiteID string
	ManualEntry      bool
	ResultURL        string
	ForwardedAt      *time.Time
	FetchedAt        *time.Time
	LastSyncedAt     *time.Time
	TaskID           string
	BusinessKey      string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	SubDeliveries []SubDeliveryDTO `gorm:"foreignKey:DeliveryInfoID"`
}

// TableName specifies the database table name for delivery rounds.
func (DeliveryInfoDTO) TableName() string {
	return "delivery_infos"
}

// SubDeliveryDTO represents one sub-delivery row.
type SubDeliveryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryInfoID uuid.UUID `gorm:"type:uuid;index"`
	LocationID     string
	Status         int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for sub-deliveries.
func (SubDeliveryDTO) TableName() string {
	return "sub_deliveries"
}

func fromDomain(aggregate *delivery.DataDelivery) DataDeliveryDTO {
	infos := make([]DeliveryInfoDTO, 0, len(aggregate.Infos()))
	for _, info := range aggregate.Infos() {
		infos = append(infos, infoFromDomain(aggregate.ProposalID(), info))
	}

	return DataDeliveryDTO{
		ProposalID:       aggregate.ProposalID().Bytes(),
		ManagementSiteID: aggregate.ManagementSiteID(),
		Acceptance:       int(aggregate.Acceptance()),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
		Infos:            infos,
	}
}

func infoFromDomain(proposalID kernel.UUID, info *delivery.DeliveryInfo) DeliveryInfoDTO {
	subs := make([]SubDeliveryDTO, 0, len(info.SubDeliveries()))
	for _, sub := range info.SubDeliveries() {
		subs = append(subs, subFromDomain(info.ID(), sub))
	}

	return DeliveryInfoDTO{
		ID:               info.ID().Bytes(),
		ProposalID:       proposalID.Bytes(),
		Name:             info.Name(),
		DeliveryDate:     info.DeliveryDate(),
		Status:           int(info.Status()),
		ManagementSiteID: info.ManagementSiteID(),
		ManualEntry:      info.ManualEntry(),
		ResultURL:        info.ResultURL(),
		ForwardedAt:      info.ForwardedAt(),
		FetchedAt:        info.FetchedAt(),
		LastSyncedAt:     info.LastSyncedAt(),
		TaskID:           info.TaskID(),
		BusinessKey:      info.BusinessKey(),
		CreatedAt:        info.CreatedAt(),
		UpdatedAt:        info.UpdatedAt(),
		SubDeliveries:    subs,
	}
}

func subFromDomain(deliveryInfoID kernel.UUID, sub *delivery.SubDelivery) SubDeliveryDTO {
	return SubDeliveryDTO{
		ID:             sub.ID().Bytes(),
		DeliveryInfoID: deliveryInfoID.Bytes(),
		LocationID:     sub.LocationID(),
		Status:         int(sub.Status()),
		CreatedAt:      sub.CreatedAt(),
		UpdatedAt:      sub.UpdatedAt(),
	}
}

func toDomain(dto DataDeliveryDTO) (*delivery.DataDelivery, error) {
	proposalID, err := kernel.UUIDFromBytes(dto.ProposalID[:])
	if err != nil {
		return nil, err
	}

	infos := make([]*delivery.DeliveryInfo, 0, len(dto.Infos))
	for _, infoDTO := range dto.Infos {
		info, infoErr := infoToDomain(infoDTO)
		if infoErr != nil {
			return nil, infoErr
		}
		infos = append(infos, info)
	}

	return delivery.RestoreDataDelivery(
		proposalID,
		dto.ManagementSiteID,
		delivery.AcceptanceStatus(dto.Acceptance),
		infos,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func infoToDomain(dto DeliveryInfoDTO) (*delivery.DeliveryInfo, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	subs := make([]*delivery.SubDelivery, 0, len(dto.SubDeliveries))
	for _, subDTO := range dto.SubDeliveries {
		sub, subErr := subToDomain(subDTO)
		if subErr != nil {
			return nil, subErr
		}
		subs = append(subs, sub)
	}

	return delivery.RestoreDeliveryInfo(
		id,
		dto.Name,
		dto.DeliveryDate,
		delivery.Status(dto.Status),
		dto.ManagementSiteID,
		dto.ManualEntry,
		dto.ResultURL,
		dto.ForwardedAt,
		dto.FetchedAt,
		subs,
		dto.LastSyncedAt,
		dto.TaskID,
		dto.BusinessKey,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func subToDomain(dto SubDeliveryDTO) (*delivery.SubDelivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreSubDelivery(
		id,
		dto.LocationID,
		delivery.SubStatus(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
