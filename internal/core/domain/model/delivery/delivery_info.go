package delivery

import (
	"errors"
	"fmt"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"
)

// ErrDeliveryInfoIsNotConstructed is returned when a DeliveryInfo instance was
// not created through one of its constructors.
var ErrDeliveryInfoIsNotConstructed = errors.New("DeliveryInfo must be created via NewDeliveryInfo, NewManualDeliveryInfo, or RestoreDeliveryInfo")

// DeliveryInfo represents one delivery request within a data delivery.
// It tracks the journey of an approved dataset from the supplying integration
// centers through the management site to the requesting researcher.
//
// DeliveryInfo follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - A manual-entry delivery is created directly in Finished with every
//     sub-delivery Accepted and never talks to the external coordination system
//   - An automated delivery requires a coordination task id and business key
//     before any synchronization call
//   - Records are never physically deleted; they only transition to Canceled
//     or Finished
type DeliveryInfo struct {
	// id is the stable identifier used for targeted child updates
	id kernel.UUID

	// name is the human-readable label of the delivery request
	name string

	// deliveryDate is the requested release date
	deliveryDate time.Time

	// status is the current state in the delivery lifecycle
	status Status

	// managementSiteID references the location consolidating the dataset
	managementSiteID string

	// manualEntry marks deliveries tracked by staff without coordination
	manualEntry bool

	// resultURL is set once the coordination system publishes a result
	resultURL string

	forwardedAt *time.Time
	fetchedAt   *time.Time

	// subDeliveries holds one entry per supplying integration center
	subDeliveries []*SubDelivery

	// lastSyncedAt is the lower bound of the next coordination poll
	lastSyncedAt *time.Time

	// taskID and businessKey correlate the delivery with its coordination task
	taskID      string
	businessKey string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDeliveryInfo creates an automated delivery request in Pending status.
// The coordination task reference is assigned separately via
// AssignCoordinationTask once the external system created the task.
func NewDeliveryInfo(
	id kernel.UUID,
	name string,
	deliveryDate time.Time,
	managementSiteID string,
	subDeliveries []*SubDelivery,
) (*DeliveryInfo, error) {
	info := &DeliveryInfo{
		status:        StatusPending,
		createdAt:     time.Now(),
		updatedAt:     time.Now(),
		isConstructed: true,
	}

	if err := errors.Join(
		info.setID(id),
		info.setName(name),
		info.setDeliveryDate(deliveryDate),
		info.setManagementSiteID(managementSiteID),
		info.setSubDeliveries(subDeliveries),
	); err != nil {
		return nil, err
	}

	return info, nil
}

// NewManualDeliveryInfo creates a manual-entry delivery request.
// The record lands directly in Finished with forwarded-on stamped to the given
// time and every sub-delivery Accepted. No coordination task is involved.
func NewManualDeliveryInfo(
	id kernel.UUID,
	name string,
	deliveryDate time.Time,
	managementSiteID string,
	subDeliveries []*SubDelivery,
	forwardedOn time.Time,
) (*DeliveryInfo, error) {
	info, err := NewDeliveryInfo(id, name, deliveryDate, managementSiteID, subDeliveries)
	if err != nil {
		return nil, err
	}

	info.manualEntry = true
	info.status = StatusFinished
	info.forwardedAt = &forwardedOn
	for _, sub := range info.subDeliveries {
		sub.Accept()
	}

	return info, nil
}

// RestoreDeliveryInfo reconstructs a delivery info from persistence.
func RestoreDeliveryInfo(
	id kernel.UUID,
	name string,
	deliveryDate time.Time,
	status Status,
	managementSiteID string,
	manualEntry bool,
	resultURL string,
	forwardedAt *time.Time,
	fetchedAt *time.Time,
	subDeliveries []*SubDelivery,
	lastSyncedAt *time.Time,
	taskID string,
	businessKey string,
	createdAt time.Time,
	updatedAt time.Time,
) (*DeliveryInfo, error) {
	info := &DeliveryInfo{
		manualEntry:   manualEntry,
		resultURL:     resultURL,
		forwardedAt:   forwardedAt,
		fetchedAt:     fetchedAt,
		lastSyncedAt:  lastSyncedAt,
		taskID:        taskID,
		businessKey:   businessKey,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		info.setID(id),
		info.setName(name),
		info.setDeliveryDate(deliveryDate),
		info.setManagementSiteID(managementSiteID),
		info.setSubDeliveries(subDeliveries),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	info.status = status
	return info, nil
}

// Validate ensures the DeliveryInfo instance was properly constructed.
func (d *DeliveryInfo) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryInfoIsNotConstructed
	}

	return nil
}

// ID returns the delivery info's unique identifier.
func (d *DeliveryInfo) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable label of the delivery request.
func (d *DeliveryInfo) Name() string {
	return d.name
}

// DeliveryDate returns the requested release date.
func (d *DeliveryInfo) DeliveryDate() time.Time {
	return d.deliveryDate
}

// Status returns the current delivery status.
func (d *DeliveryInfo) Status() Status {
	return d.status
}

// ManagementSiteID returns the consolidating location reference.
func (d *DeliveryInfo) ManagementSiteID() string {
	return d.managementSiteID
}

// ManualEntry reports whether the delivery is tracked by staff without the
// external coordination system.
func (d *DeliveryInfo) ManualEntry() bool {
	return d.manualEntry
}

// ResultURL returns the published result URL, or an empty string if none.
func (d *DeliveryInfo) ResultURL() string {
	return d.resultURL
}

// ForwardedAt returns the forward timestamp, nil if never forwarded.
func (d *DeliveryInfo) ForwardedAt() *time.Time {
	return d.forwardedAt
}

// FetchedAt returns the researcher pickup timestamp, nil if not fetched.
func (d *DeliveryInfo) FetchedAt() *time.Time {
	return d.fetchedAt
}

// SubDeliveries returns the live sub-delivery entities of this delivery.
// Mutations through the returned pointers are part of the aggregate's state.
func (d *DeliveryInfo) SubDeliveries() []*SubDelivery {
	return d.subDeliveries
}

// LastSyncedAt returns the last reconciliation timestamp, nil if never synced.
func (d *DeliveryInfo) LastSyncedAt() *time.Time {
	return d.lastSyncedAt
}

// TaskID returns the coordination task id, empty if not assigned.
func (d *DeliveryInfo) TaskID() string {
	return d.taskID
}

// BusinessKey returns the coordination business key, empty if not assigned.
func (d *DeliveryInfo) BusinessKey() string {
	return d.businessKey
}

// CreatedAt returns the creation timestamp.
func (d *DeliveryInfo) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (d *DeliveryInfo) UpdatedAt() time.Time {
	return d.updatedAt
}

// RequiresCoordination reports whether the delivery talks to the external
// coordination system. Manual entries never do.
func (d *DeliveryInfo) RequiresCoordination() bool {
	return !d.manualEntry
}

// AssignCoordinationTask stores the external task reference. Both the task id
// and the business key are required before any synchronization call.
func (d *DeliveryInfo) AssignCoordinationTask(taskID, businessKey string) error {
	if err := errors.Join(
		requireValue("taskID", taskID),
		requireValue("businessKey", businessKey),
	); err != nil {
		return err
	}

	d.taskID = taskID
	d.businessKey = businessKey
	d.updatedAt = time.Now()
	return nil
}

// Forward moves the delivery to WaitingForDataSet, stamps forwarded-on, and
// closes every sub-delivery that was not accepted.
func (d *DeliveryInfo) Forward() error {
	newStatus, err := d.status.Forward()
	if err != nil {
		return err
	}

	d.applyClosingTransition(newStatus)
	return nil
}

// Cancel moves the delivery to Canceled, stamps forwarded-on, and closes every
// sub-delivery that was not accepted.
func (d *DeliveryInfo) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.applyClosingTransition(newStatus)
	return nil
}

// MarkFetched records that the researcher picked up the published result.
func (d *DeliveryInfo) MarkFetched() error {
	newStatus, err := d.status.Fetch()
	if err != nil {
		return err
	}

	now := time.Now()
	d.status = newStatus
	d.fetchedAt = &now
	d.updatedAt = now
	return nil
}

// ExtendDate moves the requested release date forward.
// The new date must be strictly after the current one; the check happens before
// any external call is made by the caller.
func (d *DeliveryInfo) ExtendDate(newDate time.Time) error {
	if !newDate.After(d.deliveryDate) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryDate",
			fmt.Errorf("%s is not after the current delivery date %s",
				newDate.Format(time.RFC3339), d.deliveryDate.Format(time.RFC3339)))
	}

	d.deliveryDate = newDate
	d.updatedAt = time.Now()
	return nil
}

// MarkResultsAvailable stores the published result URL and moves the delivery
// to ResultsAvailable. Only valid while waiting for the dataset.
func (d *DeliveryInfo) MarkResultsAvailable(resultURL string) error {
	if d.status != StatusWaitingForDataSet {
		return errs.NewInvalidStateError("deliveryInfo "+d.id.String(), d.status.String())
	}
	if err := requireValue("resultURL", resultURL); err != nil {
		return err
	}

	d.status = StatusResultsAvailable
	d.resultURL = resultURL
	d.updatedAt = time.Now()
	return nil
}

// SyncLowerBound returns the timestamp from which the next coordination poll
// should pick up received datasets: the last sync time, or the creation time
// when the delivery was never synced.
func (d *DeliveryInfo) SyncLowerBound() time.Time {
	if d.lastSyncedAt != nil {
		return *d.lastSyncedAt
	}
	return d.createdAt
}

// StampSynced records a completed reconciliation attempt.
func (d *DeliveryInfo) StampSynced() {
	now := time.Now()
	d.lastSyncedAt = &now
	d.updatedAt = now
}

// FindSubDelivery returns the sub-delivery with the given id.
func (d *DeliveryInfo) FindSubDelivery(subID kernel.UUID) (*SubDelivery, error) {
	for _, sub := range d.subDeliveries {
		if sub.ID().IsEqual(subID) {
			return sub, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("subDeliveryId", subID.String())
}

// applyClosingTransition applies a forward or cancel transition: the new
// status, the forwarded-on stamp, and the sub-delivery downgrade rule.
func (d *DeliveryInfo) applyClosingTransition(newStatus Status) {
	now := time.Now()
	d.status = newStatus
	d.forwardedAt = &now
	d.updatedAt = now

	for _, sub := range d.subDeliveries {
		sub.Close()
	}
}

func (d *DeliveryInfo) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DeliveryInfo) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *DeliveryInfo) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}
	d.deliveryDate = deliveryDate
	return nil
}

func (d *DeliveryInfo) setManagementSiteID(managementSiteID string) error {
	if managementSiteID == "" {
		return errs.NewValueIsRequiredError("managementSiteID")
	}
	d.managementSiteID = managementSiteID
	return nil
}

func (d *DeliveryInfo) setSubDeliveries(subDeliveries []*SubDelivery) error {
	for _, sub := range subDeliveries {
		if err := sub.Validate(); err != nil {
			return err
		}
	}
	d.subDeliveries = subDeliveries
	return nil
}

func requireValue(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
