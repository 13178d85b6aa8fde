// Package location holds the read model of a participating location as served
// by the external location directory.
package location

import (
	"errors"

	"datadelivery/internal/pkg/errs"
)

// ErrLocationIsNotConstructed is returned when a Location instance was not
// created through NewLocation.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation")

// Location describes one site of the research network: its directory id, its
// resolvable delivery address, and the roles it is flagged for.
//
// A delivery's management site must be flagged as a management center; every
// supplying location must be flagged as an integration center.
type Location struct {
	id                string
	address           string
	managementCenter  bool
	integrationCenter bool

	isConstructed bool
}

// NewLocation creates a location read model. The address may be empty for
// locations the directory cannot resolve; callers requiring a resolvable
// address must check HasAddress.
func NewLocation(id, address string, managementCenter, integrationCenter bool) (*Location, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("locationID")
	}

	return &Location{
		id:                id,
		address:           address,
		managementCenter:  managementCenter,
		integrationCenter: integrationCenter,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Location instance was properly constructed.
func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

// ID returns the directory identifier of the location.
func (l *Location) ID() string {
	return l.id
}

// Address returns the delivery address of the location, empty if unresolved.
func (l *Location) Address() string {
	return l.address
}

// HasAddress reports whether the directory resolved a delivery address.
func (l *Location) HasAddress() bool {
	return l.address != ""
}

// IsManagementCenter reports whether the location may consolidate datasets.
func (l *Location) IsManagementCenter() bool {
	return l.managementCenter
}

// IsIntegrationCenter reports whether the location may supply datasets.
func (l *Location) IsIntegrationCenter() bool {
	return l.integrationCenter
}
