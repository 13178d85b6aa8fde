package commands

import (
	"context"

	"datadelivery/internal/core/domain/model/delivery"
)

// Synchronizer applies external coordination-system state to a delivery round
// in memory. Satisfied by dsfsync.Engine; handlers persist the mutated record
// afterwards.
type Synchronizer interface {
	SyncSubDeliveryStatuses(ctx context.Context, info *delivery.DeliveryInfo) error
	SyncDeliveryInfoResult(ctx context.Context, info *delivery.DeliveryInfo) error
}
