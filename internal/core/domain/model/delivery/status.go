package delivery

import (
	"fmt"

	"datadelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery info.
// It implements a state machine with defined transitions to ensure deliveries
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──forward──> WaitingForDataSet ──result sync──> ResultsAvailable ──fetch──> FetchedByResearcher
//	   │                        │                                │
//	   └────────────────────────┴──────────cancel───────────────┴──> Canceled
//
// Manual-entry deliveries bypass the machine entirely and are created directly
// in Finished. FetchedByResearcher, Canceled, and Finished are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of an automated delivery.
	// The coordination task exists but the dataset has not been forwarded yet.
	StatusPending

	// StatusWaitingForDataSet indicates the delivery was forwarded and the
	// management site is waiting for the consolidated dataset.
	StatusWaitingForDataSet

	// StatusResultsAvailable indicates the external coordination system
	// published a result URL for the delivery.
	StatusResultsAvailable

	// StatusFetchedByResearcher indicates the researcher picked up the result.
	// Terminal.
	StatusFetchedByResearcher

	// StatusCanceled indicates the delivery was canceled. Terminal.
	StatusCanceled

	// StatusFinished indicates the delivery is concluded. Manual-entry
	// deliveries are created directly in this status. Terminal.
	StatusFinished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:             "Unknown",
		StatusPending:             "Pending",
		StatusWaitingForDataSet:   "WaitingForDataSet",
		StatusResultsAvailable:    "ResultsAvailable",
		StatusFetchedByResearcher: "FetchedByResearcher",
		StatusCanceled:            "Canceled",
		StatusFinished:            "Finished",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:             "Pending",
		StatusWaitingForDataSet:   "WaitingForDataSet",
		StatusResultsAvailable:    "ResultsAvailable",
		StatusFetchedByResearcher: "FetchedByResearcher",
		StatusCanceled:            "Canceled",
		StatusFinished:            "Finished",
	}
}

// Validate checks if the Status value is one of the defined statuses.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status permits no further transitions.
// Delivery infos are never physically deleted; they end up in a terminal status.
func (s Status) IsTerminal() bool {
	return s == StatusFetchedByResearcher || s == StatusCanceled || s == StatusFinished
}

// AllowsSubDeliverySync reports whether sub-delivery reconciliation against the
// external coordination system is permitted in this status.
func (s Status) AllowsSubDeliverySync() bool {
	return s == StatusPending || s == StatusWaitingForDataSet
}

// Forward transitions the status to WaitingForDataSet.
//
// Valid transitions:
//   - Pending -> WaitingForDataSet (dataset release requested)
//   - WaitingForDataSet -> WaitingForDataSet (repeated forward is harmless)
//
// Returns (0, error) with an invalid-state error for every other status.
func (s Status) Forward() (Status, error) {
	if s != StatusPending && s != StatusWaitingForDataSet {
		return 0, errs.NewInvalidStateErrorWithCause(
			"status",
			s.String(),
			fmt.Errorf("%s is not a valid status to forward", s.String()),
		)
	}

	return StatusWaitingForDataSet, nil
}

// Cancel transitions the status to Canceled.
//
// Valid transitions: any non-terminal status -> Canceled.
// Terminal statuses cannot be canceled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateErrorWithCause(
			"status",
			s.String(),
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return StatusCanceled, nil
}

// Fetch transitions the status to FetchedByResearcher.
//
// Valid transitions:
//   - ResultsAvailable -> FetchedByResearcher
func (s Status) Fetch() (Status, error) {
	if s != StatusResultsAvailable {
		return 0, errs.NewInvalidStateErrorWithCause(
			"status",
			s.String(),
			fmt.Errorf("%s is not a valid status to fetch", s.String()),
		)
	}

	return StatusFetchedByResearcher, nil
}
