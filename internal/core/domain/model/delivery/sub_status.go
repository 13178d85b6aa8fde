package delivery

import (
	"fmt"

	"datadelivery/internal/pkg/errs"
)

// SubStatus represents the state of a sub-delivery, the portion of a delivery
// sourced from one specific integration center.
//
// Pending sub-deliveries become Delivered when the external coordination system
// reports the supplying location's dataset as received. A human rating then
// moves them to Accepted or Repeated. Accepted is sticky: no synchronization or
// bulk transition ever downgrades it.
type SubStatus int

const (
	// SubStatusUnknown represents an invalid or undefined sub-delivery status.
	SubStatusUnknown SubStatus = iota

	// SubStatusPending is the initial status: the supplying location has not
	// delivered its dataset yet.
	SubStatusPending

	// SubStatusDelivered indicates the supplying location's dataset arrived at
	// the management site.
	SubStatusDelivered

	// SubStatusAccepted indicates the management site accepted the dataset.
	// Sticky: never downgraded by sync or bulk transitions.
	SubStatusAccepted

	// SubStatusCanceled indicates the sub-delivery was closed without an
	// accepted dataset.
	SubStatusCanceled

	// SubStatusRepeated indicates the management site rejected the dataset and
	// asked the supplying location to deliver again.
	SubStatusRepeated
)

func getSubStatusStrings() map[SubStatus]string {
	return map[SubStatus]string{
		SubStatusUnknown:   "Unknown",
		SubStatusPending:   "Pending",
		SubStatusDelivered: "Delivered",
		SubStatusAccepted:  "Accepted",
		SubStatusCanceled:  "Canceled",
		SubStatusRepeated:  "Repeated",
	}
}

func getValidSubStatusStrings() map[SubStatus]string {
	//nolint:exhaustive // SubStatusUnknown is intentionally excluded as it's invalid
	return map[SubStatus]string{
		SubStatusPending:   "Pending",
		SubStatusDelivered: "Delivered",
		SubStatusAccepted:  "Accepted",
		SubStatusCanceled:  "Canceled",
		SubStatusRepeated:  "Repeated",
	}
}

// Validate checks if the SubStatus value is one of the defined statuses.
func (s SubStatus) Validate() error {
	if _, ok := getValidSubStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("sub-delivery status is invalid",
			fmt.Errorf("%d is not a valid sub-delivery status", s))
	}
	return nil
}

// String returns the human-readable name of the sub-delivery status.
func (s SubStatus) String() string {
	if str, ok := getSubStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// SubStatusFromString parses a sub-delivery status from its string
// representation.
func SubStatusFromString(s string) (SubStatus, error) {
	for status, str := range getValidSubStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return SubStatusUnknown, errs.NewValueIsInvalidErrorWithCause("sub-delivery status is invalid",
		fmt.Errorf("%q is not a valid sub-delivery status", s))
}

// ValidateRating checks whether the value is an acceptable human rating.
// Only Accepted and Repeated are valid ratings; everything else is rejected
// before any store mutation is attempted.
func (s SubStatus) ValidateRating() error {
	if s != SubStatusAccepted && s != SubStatusRepeated {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			fmt.Errorf("%s is not a valid rating, only Accepted and Repeated are", s.String()))
	}
	return nil
}
