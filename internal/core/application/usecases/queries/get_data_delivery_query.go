// Package queries contains read-only projections for the CQRS read side.
// Query handlers bypass the domain model and read the database directly.
package queries

import (
	"errors"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var ErrGetDataDeliveryQueryIsNotConstructed = errors.New(
	"GetDataDeliveryQuery must be created via NewGetDataDeliveryQuery constructor",
)

// GetDataDeliveryQuery retrieves the full delivery projection of a proposal:
// the acceptance vote plus every delivery round with its sub-deliveries.
//
// Example:
//
//	query, err := NewGetDataDeliveryQuery(proposalID)
//	if err != nil {
//	    return fmt.Errorf("invalid query: %w", err)
//	}
//
//	projection, err := handler.Handle(ctx, query)
type GetDataDeliveryQuery struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDataDeliveryQuery creates a query for one proposal's delivery state.
func NewGetDataDeliveryQuery(proposalID kernel.UUID) (GetDataDeliveryQuery, error) {
	query := GetDataDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setProposalID(proposalID); err != nil {
		return GetDataDeliveryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDataDeliveryQueryIsNotConstructed if validation fails.
func (q GetDataDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDataDeliveryQueryIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (q GetDataDeliveryQuery) ProposalID() kernel.UUID {
	return q.proposalID
}

func (q *GetDataDeliveryQuery) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	q.proposalID = proposalID
	return nil
}

// GetDataDeliveryQueryResponse is the read-side projection of one proposal's
// delivery lifecycle.
type GetDataDeliveryQueryResponse struct {
	ProposalID       kernel.UUID
	ManagementSiteID string
	Acceptance       string
	Infos            []DeliveryInfoProjection
}

// DeliveryInfoProjection is one delivery round inside the projection.
type DeliveryInfoProjection struct {
	ID            kernel.UUID
	Name          string
	DeliveryDate  time.Time
	Status        string
	ManualEntry   bool
	ResultURL     string
	ForwardedAt   *time.Time
	FetchedAt     *time.Time
	LastSyncedAt  *time.Time
	SubDeliveries []SubDeliveryProjection
}

// SubDeliveryProjection is one sub-delivery inside the projection.
type SubDeliveryProjection struct {
	ID         kernel.UUID
	LocationID string
	Status     string
}
