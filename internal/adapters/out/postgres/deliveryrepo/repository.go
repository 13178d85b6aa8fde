package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/ports"
	"datadelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
// Interactive whole-aggregate writes and targeted single-row updates live
// side by side: the targeted paths keep concurrent batch syncs from clobbering
// sibling rows of the same proposal.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add saves a new delivery container. Returns errs.ErrObjectAlreadyExists
// when the proposal already has one.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.DataDelivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DataDeliveryDTO{}).
		Where("proposal_id = ?", aggregate.ProposalID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewObjectAlreadyExistsError("proposalId", aggregate.ProposalID().String())
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves the delivery container of a proposal with every delivery
// round and sub-delivery.
func (r *GormDeliveryRepository) Get(ctx context.Context, proposalID kernel.UUID) (*delivery.DataDelivery, error) {
	if err := proposalID.Validate(); err != nil {
		return nil, err
	}

	var dto DataDeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Infos.SubDeliveries").
		Preload("Infos").
		First(&dto, "proposal_id = ?", proposalID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proposalId", proposalID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update saves proposal-level state and upserts every delivery round.
// The original creation timestamp is preserved; returns errs.ErrObjectNotFound
// when the container does not exist.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.DataDelivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DataDeliveryDTO{}).
		Where("proposal_id = ?", aggregate.ProposalID().Bytes()).
		Updates(map[string]any{
			"management_site_id": aggregate.ManagementSiteID(),
			"acceptance":         int(aggregate.Acceptance()),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("proposalId", aggregate.ProposalID().String())
	}

	for _, info := range aggregate.Infos() {
		if err := r.upsertInfo(ctx, aggregate.ProposalID(), info); err != nil {
			return err
		}
	}

	return nil
}

// AddDeliveryInfo appends one delivery round to an existing container.
func (r *GormDeliveryRepository) AddDeliveryInfo(
	ctx context.Context, proposalID kernel.UUID, info *delivery.DeliveryInfo,
) error {
	if err := info.Validate(); err != nil {
		return err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DataDeliveryDTO{}).
		Where("proposal_id = ?", proposalID.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("proposalId", proposalID.String())
	}

	dto := infoFromDomain(proposalID, info)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateDeliveryInfo updates one delivery round matched by (proposal, round)
// and upserts its sub-deliveries. Sibling rounds are untouched. Returns
// errs.ErrObjectNotFound when the pair does not resolve.
func (r *GormDeliveryRepository) UpdateDeliveryInfo(
	ctx context.Context, proposalID kernel.UUID, info *delivery.DeliveryInfo,
) error {
	if err := info.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryInfoDTO{}).
		Where("id = ? AND proposal_id = ?", info.ID().Bytes(), proposalID.Bytes()).
		Updates(map[string]any{
			"name":           info.Name(),
			"delivery_date":  info.DeliveryDate(),
			"status":         int(info.Status()),
			"result_url":     info.ResultURL(),
			"forwarded_at":   info.ForwardedAt(),
			"fetched_at":     info.FetchedAt(),
			"last_synced_at": info.LastSyncedAt(),
			"task_id":        info.TaskID(),
			"business_key":   info.BusinessKey(),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryInfoId", info.ID().String())
	}

	for _, sub := range info.SubDeliveries() {
		subDTO := subFromDomain(info.ID(), sub)
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&subDTO).Error; err != nil {
			return err
		}
	}

	return nil
}

// UpdateSubDeliveryStatus updates exactly one sub-delivery row addressed by
// the full (proposal, round, sub-delivery) path. Returns
// errs.ErrObjectNotFound when the path does not resolve.
func (r *GormDeliveryRepository) UpdateSubDeliveryStatus(
	ctx context.Context,
	proposalID kernel.UUID,
	deliveryInfoID kernel.UUID,
	subDeliveryID kernel.UUID,
	status delivery.SubStatus,
) error {
	if err := status.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&SubDeliveryDTO{}).
		Where("id = ? AND delivery_info_id = ?", subDeliveryID.Bytes(), deliveryInfoID.Bytes()).
		Where(
			"delivery_info_id IN (SELECT id FROM delivery_infos WHERE proposal_id = ?)",
			proposalID.Bytes(),
		).
		Updates(map[string]any{
			"status":     int(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("subDeliveryId", subDeliveryID.String())
	}

	return nil
}

// FindDeliveryInfosByProposal retrieves every delivery round of a proposal.
func (r *GormDeliveryRepository) FindDeliveryInfosByProposal(
	ctx context.Context, proposalID kernel.UUID,
) ([]*delivery.DeliveryInfo, error) {
	if err := proposalID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryInfoDTO
	err := r.db.WithContext(ctx).
		Preload("SubDeliveries").
		Order("created_at, id").
		Find(&dtos, "proposal_id = ?", proposalID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	infos := make([]*delivery.DeliveryInfo, 0, len(dtos))
	for _, dto := range dtos {
		info, infoErr := infoToDomain(dto)
		if infoErr != nil {
			return nil, infoErr
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// FindProposalsWithInfoStatus retrieves, for every proposal with at least one
// delivery round in the given status, all of that proposal's rounds. Batch
// jobs apply their own per-round filtering on top.
func (r *GormDeliveryRepository) FindProposalsWithInfoStatus(
	ctx context.Context, status delivery.Status,
) ([]ports.ProposalDeliveries, error) {
	var dtos []DeliveryInfoDTO
	err := r.db.WithContext(ctx).
		Preload("SubDeliveries").
		Where(
			"proposal_id IN (SELECT DISTINCT proposal_id FROM delivery_infos WHERE status = ?)",
			int(status),
		).
		Order("proposal_id, created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	var candidates []ports.ProposalDeliveries
	for _, dto := range dtos {
		proposalID, idErr := kernel.UUIDFromBytes(dto.ProposalID[:])
		if idErr != nil {
			return nil, idErr
		}

		info, infoErr := infoToDomain(dto)
		if infoErr != nil {
			return nil, infoErr
		}

		if n := len(candidates); n > 0 && candidates[n-1].ProposalID.IsEqual(proposalID) {
			candidates[n-1].Infos = append(candidates[n-1].Infos, info)
			continue
		}

		candidates = append(candidates, ports.ProposalDeliveries{
			ProposalID: proposalID,
			Infos:      []*delivery.DeliveryInfo{info},
		})
	}

	return candidates, nil
}

// upsertInfo writes one delivery round and its sub-deliveries as part of a
// whole-aggregate save.
func (r *GormDeliveryRepository) upsertInfo(
	ctx context.Context, proposalID kernel.UUID, info *delivery.DeliveryInfo,
) error {
	dto := infoFromDomain(proposalID, info)
	subs := dto.SubDeliveries
	dto.SubDeliveries = nil

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error; err != nil {
		return err
	}

	for _, sub := range subs {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&sub).Error; err != nil {
			return err
		}
	}

	return nil
}
