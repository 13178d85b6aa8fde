// Package services provides domain services that implement business rules
// spanning multiple domain entities of the data delivery system.
//
// The package includes:
//   - EntryPolicy: the role policy deciding who may create which kind of delivery
//
// Domain services hold logic that doesn't naturally belong to a single
// aggregate root, following Domain-Driven Design principles.
package services
