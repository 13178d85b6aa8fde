package queries

import (
	"context"
	"time"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDataDeliveryQueryHandler projects a proposal's delivery state straight
// from the database, skipping aggregate reconstruction.
//
// Example:
//
//	handler := NewGetDataDeliveryQueryHandler(db)
//	query, _ := NewGetDataDeliveryQuery(proposalID)
//
//	projection, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to project delivery: %v", err)
//	    return err
//	}
type GetDataDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDataDeliveryQueryHandler creates a handler for delivery projections.
// Requires a GORM database connection for query execution.
func NewGetDataDeliveryQueryHandler(db *gorm.DB) GetDataDeliveryQueryHandler {
	return GetDataDeliveryQueryHandler{db: db}
}

// Handle executes the projection query.
// Returns errs.ErrObjectNotFound when the proposal has no delivery container.
func (h GetDataDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDataDeliveryQuery,
) (GetDataDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDataDeliveryQueryResponse{}, err
	}

	response, err := h.projectDelivery(ctx, query.ProposalID())
	if err != nil {
		return GetDataDeliveryQueryResponse{}, err
	}

	infos, err := h.projectInfos(ctx, query.ProposalID())
	if err != nil {
		return GetDataDeliveryQueryResponse{}, err
	}
	response.Infos = infos

	return response, nil
}

func (h GetDataDeliveryQueryHandler) projectDelivery(
	ctx context.Context, proposalID kernel.UUID,
) (GetDataDeliveryQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			proposal_id,
			management_site_id,
			acceptance
		FROM data_deliveries
		WHERE proposal_id = ?
	`, proposalID.String()).Rows()
	if err != nil {
		return GetDataDeliveryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return GetDataDeliveryQueryResponse{}, err
		}
		return GetDataDeliveryQueryResponse{}, errs.NewObjectNotFoundError("proposalId", proposalID.String())
	}

	var response GetDataDeliveryQueryResponse
	var id uuid.UUID
	var acceptance int

	if err := rows.Scan(&id, &response.ManagementSiteID, &acceptance); err != nil {
		return GetDataDeliveryQueryResponse{}, err
	}

	response.ProposalID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDataDeliveryQueryResponse{}, err
	}
	response.Acceptance = delivery.AcceptanceStatus(acceptance).String()

	return response, rows.Err()
}

func (h GetDataDeliveryQueryHandler) projectInfos(
	ctx context.Context, proposalID kernel.UUID,
) ([]DeliveryInfoProjection, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			delivery_date,
			status,
			manual_entry,
			result_url,
			forwarded_at,
			fetched_at,
			last_synced_at
		FROM delivery_infos
		WHERE proposal_id = ?
		ORDER BY created_at, id
	`, proposalID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infos := make([]DeliveryInfoProjection, 0)
	for rows.Next() {
		var info DeliveryInfoProjection
		var id uuid.UUID
		var status int
		var deliveryDate time.Time

		err = rows.Scan(
			&id,
			&info.Name,
			&deliveryDate,
			&status,
			&info.ManualEntry,
			&info.ResultURL,
			&info.ForwardedAt,
			&info.FetchedAt,
			&info.LastSyncedAt,
		)
		if err != nil {
			return nil, err
		}

		info.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		info.DeliveryDate = deliveryDate
		info.Status = delivery.Status(status).String()

		info.SubDeliveries, err = h.projectSubDeliveries(ctx, info.ID)
		if err != nil {
			return nil, err
		}

		infos = append(infos, info)
	}

	return infos, rows.Err()
}

func (h GetDataDeliveryQueryHandler) projectSubDeliveries(
	ctx context.Context, deliveryInfoID kernel.UUID,
) ([]SubDeliveryProjection, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			location_id,
			status
		FROM sub_deliveries
		WHERE delivery_info_id = ?
		ORDER BY created_at, id
	`, deliveryInfoID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]SubDeliveryProjection, 0)
	for rows.Next() {
		var sub SubDeliveryProjection
		var id uuid.UUID
		var status int

		if err := rows.Scan(&id, &sub.LocationID, &status); err != nil {
			return nil, err
		}

		sub.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		sub.Status = delivery.SubStatus(status).String()

		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
