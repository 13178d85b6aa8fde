package delivery

import (
	"fmt"

	"datadelivery/internal/pkg/errs"
)

// AcceptanceStatus represents the management site's vote on a data delivery.
type AcceptanceStatus int

const (
	// AcceptancePending is the initial status before the management site voted.
	AcceptancePending AcceptanceStatus = iota

	// AcceptanceAccepted indicates the management site accepted the delivery duty.
	AcceptanceAccepted

	// AcceptanceDenied indicates the management site declined the delivery duty.
	AcceptanceDenied
)

func getAcceptanceStatusStrings() map[AcceptanceStatus]string {
	return map[AcceptanceStatus]string{
		AcceptancePending:  "Pending",
		AcceptanceAccepted: "Accepted",
		AcceptanceDenied:   "Denied",
	}
}

// String returns the human-readable name of the acceptance status.
func (s AcceptanceStatus) String() string {
	if str, ok := getAcceptanceStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the AcceptanceStatus value is one of the defined statuses.
func (s AcceptanceStatus) Validate() error {
	if _, ok := getAcceptanceStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("acceptance status is invalid",
			fmt.Errorf("%d is not a valid acceptance status", s))
	}
	return nil
}

// AcceptanceStatusFromString parses an acceptance status from its string
// representation.
func AcceptanceStatusFromString(s string) (AcceptanceStatus, error) {
	for status, str := range getAcceptanceStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return AcceptancePending, errs.NewValueIsInvalidErrorWithCause("acceptance status is invalid",
		fmt.Errorf("%q is not a valid acceptance status", s))
}

// ValidateVote checks whether the value is an acceptable vote.
// A vote must decide: only Accepted and Denied are valid.
func (s AcceptanceStatus) ValidateVote() error {
	if s != AcceptanceAccepted && s != AcceptanceDenied {
		return errs.NewValueIsInvalidErrorWithCause("vote",
			fmt.Errorf("%s is not a valid vote, only Accepted and Denied are", s.String()))
	}
	return nil
}
