// Package notification models the domain events the delivery engine emits on
// state transitions. Events are appended to a transactional outbox and
// delivered best-effort by the external notification dispatcher; a dispatch
// failure never unwinds the state transition that produced the event.
package notification

import (
	"errors"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through one of its constructors.
var ErrEventIsNotConstructed = errors.New("Event must be created via its constructor")

// Kind classifies a notification event.
type Kind string

const (
	// KindDeliveryInitiated signals that an automated delivery was created.
	KindDeliveryInitiated Kind = "DeliveryInitiated"

	// KindDataReady signals that a delivery was forwarded and the dataset is
	// on its way to the management site.
	KindDataReady Kind = "DataReady"

	// KindDataReturn signals that a sub-delivery was rated Repeated and the
	// supplying location has to deliver again.
	KindDataReturn Kind = "DataReturn"
)

// Validate checks if the Kind is one of the defined event kinds.
func (k Kind) Validate() error {
	switch k {
	case KindDeliveryInitiated, KindDataReady, KindDataReturn:
		return nil
	default:
		return errs.NewValueIsInvalidError("event kind " + string(k))
	}
}

// Event is one notification waiting in the outbox.
type Event struct {
	id           kernel.UUID
	kind         Kind
	proposalID   kernel.UUID
	resultURL    string
	locations    []string
	createdAt    time.Time
	dispatchedAt *time.Time

	isConstructed bool
}

// NewDeliveryInitiatedEvent creates the event raised when an automated
// delivery is created, carrying the involved locations.
func NewDeliveryInitiatedEvent(proposalID kernel.UUID, locations []string) (*Event, error) {
	return newEvent(KindDeliveryInitiated, proposalID, "", locations)
}

// NewDataReadyEvent creates the event raised when a delivery is forwarded.
func NewDataReadyEvent(proposalID kernel.UUID, resultURL string, locations []string) (*Event, error) {
	return newEvent(KindDataReady, proposalID, resultURL, locations)
}

// NewDataReturnEvent creates the event raised when a sub-delivery rating asks
// a supplying location to deliver again.
func NewDataReturnEvent(proposalID kernel.UUID, resultURL string) (*Event, error) {
	return newEvent(KindDataReturn, proposalID, resultURL, nil)
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id kernel.UUID,
	kind Kind,
	proposalID kernel.UUID,
	resultURL string,
	locations []string,
	createdAt time.Time,
	dispatchedAt *time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), kind.Validate(), proposalID.Validate()); err != nil {
		return nil, err
	}

	return &Event{
		id:            id,
		kind:          kind,
		proposalID:    proposalID,
		resultURL:     resultURL,
		locations:     locations,
		createdAt:     createdAt,
		dispatchedAt:  dispatchedAt,
		isConstructed: true,
	}, nil
}

func newEvent(kind Kind, proposalID kernel.UUID, resultURL string, locations []string) (*Event, error) {
	if err := proposalID.Validate(); err != nil {
		return nil, err
	}

	return &Event{
		id:            kernel.NewUUID(),
		kind:          kind,
		proposalID:    proposalID,
		resultURL:     resultURL,
		locations:     locations,
		createdAt:     time.Now(),
		isConstructed: true,
	}, nil
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// Kind returns the event kind.
func (e *Event) Kind() Kind {
	return e.kind
}

// ProposalID returns the proposal the event belongs to.
func (e *Event) ProposalID() kernel.UUID {
	return e.proposalID
}

// ResultURL returns the result URL carried by the event, empty if none.
func (e *Event) ResultURL() string {
	return e.resultURL
}

// Locations returns the location references carried by the event.
func (e *Event) Locations() []string {
	return e.locations
}

// CreatedAt returns the creation timestamp.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// DispatchedAt returns the dispatch timestamp, nil while the event waits in
// the outbox.
func (e *Event) DispatchedAt() *time.Time {
	return e.dispatchedAt
}

// MarkDispatched records a successful delivery to the dispatcher.
func (e *Event) MarkDispatched() {
	now := time.Now()
	e.dispatchedAt = &now
}
