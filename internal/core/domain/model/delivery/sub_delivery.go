package delivery

import (
	"errors"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"
)

// ErrSubDeliveryIsNotConstructed is returned when a SubDelivery instance was not
// created through NewSubDelivery or RestoreSubDelivery.
var ErrSubDeliveryIsNotConstructed = errors.New("SubDelivery must be created via NewSubDelivery or RestoreSubDelivery")

// SubDelivery is the portion of a delivery sourced from one specific
// integration center.
//
// SubDelivery follows these invariants:
//   - Must have a valid unique identifier
//   - Must reference a supplying location
//   - Accepted status is sticky: neither synchronization nor forward/cancel
//     bulk transitions downgrade it
//   - Ratings are restricted to Accepted and Repeated
type SubDelivery struct {
	// id is the stable identifier used for targeted child updates
	id kernel.UUID

	// locationID references the supplying integration center
	locationID string

	// status is the current sub-delivery state
	status SubStatus

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewSubDelivery creates a sub-delivery in Pending status for the given
// supplying location.
func NewSubDelivery(id kernel.UUID, locationID string) (*SubDelivery, error) {
	sub := &SubDelivery{
		status:        SubStatusPending,
		createdAt:     time.Now(),
		updatedAt:     time.Now(),
		isConstructed: true,
	}

	if err := errors.Join(
		sub.setID(id),
		sub.setLocationID(locationID),
	); err != nil {
		return nil, err
	}

	return sub, nil
}

// RestoreSubDelivery reconstructs a sub-delivery from persistence.
func RestoreSubDelivery(
	id kernel.UUID,
	locationID string,
	status SubStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*SubDelivery, error) {
	sub := &SubDelivery{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		sub.setID(id),
		sub.setLocationID(locationID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	sub.status = status
	return sub, nil
}

// Validate ensures the SubDelivery instance was properly constructed.
func (s *SubDelivery) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubDeliveryIsNotConstructed
	}

	return nil
}

// ID returns the sub-delivery's unique identifier.
func (s *SubDelivery) ID() kernel.UUID {
	return s.id
}

// LocationID returns the supplying integration center reference.
func (s *SubDelivery) LocationID() string {
	return s.locationID
}

// Status returns the current sub-delivery status.
func (s *SubDelivery) Status() SubStatus {
	return s.status
}

// CreatedAt returns the creation timestamp.
func (s *SubDelivery) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (s *SubDelivery) UpdatedAt() time.Time {
	return s.updatedAt
}

// MarkDelivered records that the supplying location's dataset was received.
// An Accepted sub-delivery is left untouched.
func (s *SubDelivery) MarkDelivered() {
	if s.status == SubStatusAccepted {
		return
	}

	s.status = SubStatusDelivered
	s.updatedAt = time.Now()
}

// Accept records that the management site accepted the dataset.
// Used directly by the manual-entry creation path.
func (s *SubDelivery) Accept() {
	s.status = SubStatusAccepted
	s.updatedAt = time.Now()
}

// Close cancels the sub-delivery unless it was already accepted.
// Invoked by the forward and cancel transitions of the owning delivery info.
func (s *SubDelivery) Close() {
	if s.status == SubStatusAccepted {
		return
	}

	s.status = SubStatusCanceled
	s.updatedAt = time.Now()
}

// Rate applies a human rating. Only Accepted and Repeated are allowed.
func (s *SubDelivery) Rate(rating SubStatus) error {
	if err := rating.ValidateRating(); err != nil {
		return err
	}

	s.status = rating
	s.updatedAt = time.Now()
	return nil
}

func (s *SubDelivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *SubDelivery) setLocationID(locationID string) error {
	if locationID == "" {
		return errs.NewValueIsRequiredError("locationID")
	}
	s.locationID = locationID
	return nil
}
