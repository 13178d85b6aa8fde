package services

import (
	"fmt"

	"datadelivery/internal/core/domain/model/actor"
	"datadelivery/internal/pkg/errs"
)

// EntryMode distinguishes how a delivery request is tracked.
type EntryMode int

const (
	// EntryAutomated deliveries are coordinated through the external delivery
	// coordination system.
	EntryAutomated EntryMode = iota

	// EntryManual deliveries are tracked by staff without automation.
	EntryManual
)

// String returns the human-readable name of the entry mode.
func (m EntryMode) String() string {
	if m == EntryManual {
		return "Manual"
	}
	return "Automated"
}

type policyKey struct {
	mode EntryMode
	role actor.Role
}

// EntryPolicy is a domain service deciding which actor roles may create a
// delivery request in which entry mode. The decision is a plain table lookup
// evaluated before any side effect occurs.
//
// Current policy:
//   - Automated entry: reviewing body only
//   - Manual entry: administrative staff or reviewing body
type EntryPolicy struct {
	allowed map[policyKey]bool
}

// NewEntryPolicy creates the entry policy with the standard table.
func NewEntryPolicy() EntryPolicy {
	return EntryPolicy{
		allowed: map[policyKey]bool{
			{mode: EntryAutomated, role: actor.RoleReviewBoard}: true,
			{mode: EntryManual, role: actor.RoleStaff}:          true,
			{mode: EntryManual, role: actor.RoleReviewBoard}:    true,
		},
	}
}

// Authorize returns nil when the acting role may create a delivery in the
// given entry mode, and an access-forbidden error otherwise.
func (p EntryPolicy) Authorize(mode EntryMode, role actor.Role) error {
	if p.allowed[policyKey{mode: mode, role: role}] {
		return nil
	}

	return errs.NewAccessForbiddenError(
		fmt.Sprintf("role %s may not create a %s delivery entry", role.String(), mode.String()))
}
