package delivery

import (
	"errors"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"
)

// ErrDataDeliveryIsNotConstructed is returned when a DataDelivery instance was
// not created through NewDataDelivery or RestoreDataDelivery.
var ErrDataDeliveryIsNotConstructed = errors.New("DataDelivery must be created via NewDataDelivery or RestoreDataDelivery")

// DataDelivery is the aggregate root tracking all delivery activity of one
// research-data proposal. At most one exists per proposal.
//
// It carries the assigned management site, the site's acceptance vote, and the
// ordered list of delivery requests.
type DataDelivery struct {
	// proposalID identifies the owning proposal; it is the aggregate identity
	proposalID kernel.UUID

	// managementSiteID references the location consolidating datasets
	managementSiteID string

	// acceptance is the management site's vote on the delivery duty
	acceptance AcceptanceStatus

	// infos is the ordered list of delivery requests
	infos []*DeliveryInfo

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDataDelivery creates the data delivery of a proposal with a pending
// acceptance vote and no delivery requests yet.
func NewDataDelivery(proposalID kernel.UUID, managementSiteID string) (*DataDelivery, error) {
	dd := &DataDelivery{
		acceptance:    AcceptancePending,
		createdAt:     time.Now(),
		updatedAt:     time.Now(),
		isConstructed: true,
	}

	if err := errors.Join(
		dd.setProposalID(proposalID),
		dd.setManagementSiteID(managementSiteID),
	); err != nil {
		return nil, err
	}

	return dd, nil
}

// RestoreDataDelivery reconstructs a data delivery from persistence.
func RestoreDataDelivery(
	proposalID kernel.UUID,
	managementSiteID string,
	acceptance AcceptanceStatus,
	infos []*DeliveryInfo,
	createdAt time.Time,
	updatedAt time.Time,
) (*DataDelivery, error) {
	dd := &DataDelivery{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		dd.setProposalID(proposalID),
		dd.setManagementSiteID(managementSiteID),
		acceptance.Validate(),
		dd.setInfos(infos),
	); err != nil {
		return nil, err
	}

	dd.acceptance = acceptance
	return dd, nil
}

// Validate ensures the DataDelivery instance was properly constructed.
func (d *DataDelivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDataDeliveryIsNotConstructed
	}

	return nil
}

// ProposalID returns the owning proposal's identifier.
func (d *DataDelivery) ProposalID() kernel.UUID {
	return d.proposalID
}

// ManagementSiteID returns the assigned management site reference.
func (d *DataDelivery) ManagementSiteID() string {
	return d.managementSiteID
}

// Acceptance returns the management site's vote.
func (d *DataDelivery) Acceptance() AcceptanceStatus {
	return d.acceptance
}

// Infos returns the live delivery request entities of this aggregate.
func (d *DataDelivery) Infos() []*DeliveryInfo {
	return d.infos
}

// CreatedAt returns the creation timestamp.
func (d *DataDelivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (d *DataDelivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// Vote records the management site's acceptance decision.
// Only Accepted and Denied are valid votes.
func (d *DataDelivery) Vote(vote AcceptanceStatus) error {
	if err := vote.ValidateVote(); err != nil {
		return err
	}

	d.acceptance = vote
	d.updatedAt = time.Now()
	return nil
}

// AppendInfo adds a delivery request to the aggregate.
func (d *DataDelivery) AppendInfo(info *DeliveryInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	d.infos = append(d.infos, info)
	d.updatedAt = time.Now()
	return nil
}

// FindInfo returns the delivery request with the given id.
func (d *DataDelivery) FindInfo(infoID kernel.UUID) (*DeliveryInfo, error) {
	for _, info := range d.infos {
		if info.ID().IsEqual(infoID) {
			return info, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("deliveryInfoId", infoID.String())
}

func (d *DataDelivery) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}
	d.proposalID = proposalID
	return nil
}

func (d *DataDelivery) setManagementSiteID(managementSiteID string) error {
	if managementSiteID == "" {
		return errs.NewValueIsRequiredError("managementSiteID")
	}
	d.managementSiteID = managementSiteID
	return nil
}

func (d *DataDelivery) setInfos(infos []*DeliveryInfo) error {
	for _, info := range infos {
		if err := info.Validate(); err != nil {
			return err
		}
	}
	d.infos = infos
	return nil
}
