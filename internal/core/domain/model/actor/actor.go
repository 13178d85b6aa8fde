// Package actor identifies the authenticated user performing an interactive
// operation. Authentication itself happens upstream; the delivery engine only
// consumes the resulting identity.
package actor

import (
	"errors"
	"fmt"

	"datadelivery/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor")

// Role classifies the acting user for the delivery policy checks.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleResearcher is a requesting researcher.
	RoleResearcher

	// RoleStaff is administrative portal staff.
	RoleStaff

	// RoleReviewBoard is a member of the reviewing body steering deliveries.
	RoleReviewBoard
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:     "Unknown",
		RoleResearcher:  "Researcher",
		RoleStaff:       "Staff",
		RoleReviewBoard: "ReviewBoard",
	}
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	if r != RoleResearcher && r != RoleStaff && r != RoleReviewBoard {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// RoleFromString parses a role from its header representation.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Actor is the authenticated user behind an interactive request.
type Actor struct {
	id         string
	role       Role
	locationID string

	isConstructed bool
}

// NewActor creates an actor identity. The location id may be empty for users
// not assigned to a site; location-gated operations fail for them.
func NewActor(id string, role Role, locationID string) (Actor, error) {
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actorID")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		role:          role,
		locationID:    locationID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor instance was properly constructed.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the user identifier.
func (a Actor) ID() string {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// LocationID returns the actor's assigned site, empty if unassigned.
func (a Actor) LocationID() string {
	return a.locationID
}
