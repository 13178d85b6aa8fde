package commands

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/ports"
)

const (
	// batchSyncLease bounds a batch run across replicas. The lock is not
	// renewed; the nightly batches are idempotent, so a run outliving its
	// lease overlaps a successor harmlessly.
	batchSyncLease = 5 * time.Minute

	// batchSyncConcurrency caps in-flight coordination-system calls per run.
	batchSyncConcurrency = 8
)

type syncItem struct {
	proposalID kernel.UUID
	info       *delivery.DeliveryInfo
}

// batchSyncRunner is the shared machinery of the nightly reconciliation
// handlers: take the distributed lock, collect the work list, sync every item
// concurrently with per-item failure isolation, and log an aggregate result.
type batchSyncRunner struct {
	uowFactory UoWFactory
	locks      ports.LockService
	logger     *slog.Logger
}

func (r batchSyncRunner) run(
	ctx context.Context,
	lockName string,
	candidateStatus delivery.Status,
	exactStatusOnly bool,
	syncFn func(ctx context.Context, info *delivery.DeliveryInfo) error,
) error {
	acquired, err := r.locks.AcquireLock(ctx, lockName, batchSyncLease)
	if err != nil {
		return err
	}
	if !acquired {
		r.logger.Info("batch sync already running elsewhere", slog.String("lock", lockName))
		return nil
	}

	defer func() {
		if err := r.locks.ReleaseLock(ctx, lockName); err != nil {
			r.logger.Error("failed to release batch lock",
				slog.String("lock", lockName),
				slog.Any("error", err))
		}
	}()

	items, err := r.collectItems(ctx, candidateStatus, exactStatusOnly)
	if err != nil {
		r.logger.Error("failed to collect sync candidates",
			slog.String("lock", lockName),
			slog.Any("error", err))
		return err
	}

	var succeeded, failed atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(batchSyncConcurrency)
	for _, item := range items {
		group.Go(func() error {
			if err := r.syncOne(groupCtx, item, syncFn); err != nil {
				failed.Add(1)
				r.logger.Error("delivery sync failed",
					slog.String("proposalId", item.proposalID.String()),
					slog.String("deliveryInfoId", item.info.ID().String()),
					slog.Any("error", err))
				return nil
			}

			succeeded.Add(1)
			return nil
		})
	}
	_ = group.Wait()

	r.logger.Info("batch sync finished",
		slog.String("lock", lockName),
		slog.Int64("succeeded", succeeded.Load()),
		slog.Int64("failed", failed.Load()))

	return nil
}

func (r batchSyncRunner) collectItems(
	ctx context.Context, candidateStatus delivery.Status, exactStatusOnly bool,
) ([]syncItem, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidates, err := uow.DeliveryRepository().FindProposalsWithInfoStatus(ctx, candidateStatus)
	if err != nil {
		return nil, err
	}

	var items []syncItem
	for _, candidate := range candidates {
		for _, info := range candidate.Infos {
			if info.ManualEntry() {
				continue
			}
			if exactStatusOnly && info.Status() != candidateStatus {
				continue
			}

			items = append(items, syncItem{proposalID: candidate.ProposalID, info: info})
		}
	}

	return items, nil
}

func (r batchSyncRunner) syncOne(
	ctx context.Context,
	item syncItem,
	syncFn func(ctx context.Context, info *delivery.DeliveryInfo) error,
) error {
	if err := syncFn(ctx, item.info); err != nil {
		return err
	}

	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().UpdateDeliveryInfo(ctx, item.proposalID, item.info); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
