package ports

import (
	"context"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
)

// ProposalDeliveries pairs a proposal with the delivery infos a batch job has
// to reconcile for it.
type ProposalDeliveries struct {
	ProposalID kernel.UUID
	Infos      []*delivery.DeliveryInfo
}

// DeliveryRepository defines the persistence contract for data delivery
// aggregates and their nested children.
//
// Child mutations are targeted: they address a single delivery info or
// sub-delivery by its stable id instead of rewriting the whole aggregate.
// This keeps the lost-update window between a concurrent batch-job sync and an
// interactive user action small. Whole-aggregate Update is reserved for
// interactive transitions that must change aggregate-level fields atomically
// together.
type DeliveryRepository interface {
	// Add persists a new data delivery aggregate.
	// Returns an already-exists error when the proposal already has one.
	Add(ctx context.Context, aggregate *delivery.DataDelivery) error

	// Get retrieves the data delivery of a proposal with all children.
	// Returns a not-found error when the proposal has none.
	Get(ctx context.Context, proposalID kernel.UUID) (*delivery.DataDelivery, error)

	// Update persists aggregate-level changes and all children.
	// Returns a not-found error when the aggregate is absent.
	// The original creation timestamp is preserved.
	Update(ctx context.Context, aggregate *delivery.DataDelivery) error

	// AddDeliveryInfo appends one delivery info (and its sub-deliveries) to an
	// existing data delivery without touching its siblings.
	AddDeliveryInfo(ctx context.Context, proposalID kernel.UUID, info *delivery.DeliveryInfo) error

	// UpdateDeliveryInfo replaces one delivery info (and its sub-deliveries)
	// addressed by (proposalID, info.ID()). Returns a not-found error when no
	// matching row exists.
	UpdateDeliveryInfo(ctx context.Context, proposalID kernel.UUID, info *delivery.DeliveryInfo) error

	// UpdateSubDeliveryStatus performs a targeted status update of exactly the
	// (deliveryInfoID, subDeliveryID) pair. Returns a not-found error when the
	// path does not resolve.
	UpdateSubDeliveryStatus(
		ctx context.Context,
		proposalID kernel.UUID,
		deliveryInfoID kernel.UUID,
		subDeliveryID kernel.UUID,
		status delivery.SubStatus,
	) error

	// FindDeliveryInfosByProposal retrieves all delivery infos of a proposal.
	FindDeliveryInfosByProposal(ctx context.Context, proposalID kernel.UUID) ([]*delivery.DeliveryInfo, error)

	// FindProposalsWithInfoStatus retrieves, for the batch jobs, every proposal
	// holding at least one delivery info in the given status, together with
	// those infos.
	FindProposalsWithInfoStatus(ctx context.Context, status delivery.Status) ([]ProposalDeliveries, error)
}
