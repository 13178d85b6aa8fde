// Package delivery contains the data delivery aggregate of a research-data
// proposal: the DataDelivery root, its DeliveryInfo requests, and their
// SubDelivery children.
//
// A DataDelivery exists at most once per proposal. Each DeliveryInfo tracks
// one delivery of approved datasets from the supplying integration centers to
// the management site and onward to the researcher, driven by a state machine:
//
//	Pending -> WaitingForDataSet -> ResultsAvailable -> FetchedByResearcher
//
// plus Canceled from any open state and Finished for manual entries. Each
// SubDelivery tracks the dataset of one supplying location, with the Accepted
// status being sticky against all automated transitions.
//
// The package enforces its invariants through private fields, constructor
// functions, and validated transition methods, following the Domain-Driven
// Design conventions used across the codebase.
package delivery
