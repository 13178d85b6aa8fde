// Package dsfsync synchronizes delivery state with the external
// delivery-coordination system. The engine pulls received-dataset lists and
// published result URLs and applies them to a DeliveryInfo in memory; callers
// own the surrounding transaction and persistence.
package dsfsync

import (
	"context"
	"log/slog"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/ports"
	"datadelivery/internal/pkg/errs"
)

// Engine applies coordination-system state to delivery aggregates.
// It never writes to storage itself: callers persist the mutated
// DeliveryInfo after a successful sync.
type Engine struct {
	coordination ports.CoordinationClient
	locations    ports.LocationDirectory
	logger       *slog.Logger
}

// NewEngine creates a synchronization engine. All dependencies are required.
func NewEngine(
	coordination ports.CoordinationClient,
	locations ports.LocationDirectory,
	logger *slog.Logger,
) (*Engine, error) {
	if coordination == nil {
		return nil, errs.NewValueIsRequiredError("coordination")
	}
	if locations == nil {
		return nil, errs.NewValueIsRequiredError("locations")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Engine{
		coordination: coordination,
		locations:    locations,
		logger:       logger,
	}, nil
}

// SyncSubDeliveryStatuses pulls the datasets received since the last sync and
// marks the matching sub-deliveries as delivered. Accepted sub-deliveries are
// never downgraded. The sync window starts at the last successful sync, or at
// the creation time for a first sync.
//
// Returns an InvalidStateError when the delivery is past the point where
// sub-delivery updates make sense, and an ObjectNotFoundError when the
// delivery has no coordination business key to poll with.
func (e *Engine) SyncSubDeliveryStatuses(ctx context.Context, info *delivery.DeliveryInfo) error {
	if !info.Status().AllowsSubDeliverySync() {
		err := errs.NewInvalidStateError(deliveryInfoParam, info.Status().String())
		e.logger.Warn("sub-delivery sync rejected",
			slog.String("deliveryInfoId", info.ID().String()),
			slog.String("status", info.Status().String()))
		return err
	}

	if info.BusinessKey() == "" {
		return errs.NewObjectNotFoundError("businessKey", info.ID())
	}

	received, err := e.coordination.FetchReceivedDatasets(ctx, info.BusinessKey(), info.SyncLowerBound())
	if err != nil {
		return err
	}

	receivedSet := make(map[string]struct{}, len(received))
	for _, address := range received {
		receivedSet[address] = struct{}{}
	}

	for _, sub := range info.SubDeliveries() {
		if sub.Status() == delivery.SubStatusAccepted {
			continue
		}

		loc, err := e.locations.ResolveLocation(ctx, sub.LocationID())
		if err != nil {
			return err
		}

		if _, ok := receivedSet[loc.Address()]; ok {
			sub.MarkDelivered()
		}
	}

	info.StampSynced()

	return nil
}

// SyncDeliveryInfoResult checks the coordination system for a published result
// URL and, when one exists, moves the delivery to results-available. The last
// synced timestamp advances whether or not a result was found, so the next
// poll does not re-cover the same window.
//
// Returns an InvalidStateError when the delivery is not waiting for its
// dataset, and an ObjectNotFoundError when no coordination task is attached.
func (e *Engine) SyncDeliveryInfoResult(ctx context.Context, info *delivery.DeliveryInfo) error {
	if info.Status() != delivery.StatusWaitingForDataSet {
		err := errs.NewInvalidStateError(deliveryInfoParam, info.Status().String())
		e.logger.Warn("result sync rejected",
			slog.String("deliveryInfoId", info.ID().String()),
			slog.String("status", info.Status().String()))
		return err
	}

	if info.TaskID() == "" || info.BusinessKey() == "" {
		return errs.NewObjectNotFoundError("coordinationTask", info.ID())
	}

	resultURL, err := e.coordination.FetchResultURL(ctx, info.TaskID())
	if err != nil {
		return err
	}

	if resultURL != "" {
		if err := info.MarkResultsAvailable(resultURL); err != nil {
			return err
		}
	}

	info.StampSynced()

	return nil
}

const deliveryInfoParam = "deliveryInfo"
