package delivery_test

import (
	"testing"
	"time"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubDeliveries(t *testing.T, locationIDs ...string) []*delivery.SubDelivery {
	t.Helper()

	subs := make([]*delivery.SubDelivery, 0, len(locationIDs))
	for _, locationID := range locationIDs {
		sub, err := delivery.NewSubDelivery(kernel.NewUUID(), locationID)
		require.NoError(t, err)
		subs = append(subs, sub)
	}
	return subs
}

func newTestDeliveryInfo(t *testing.T, locationIDs ...string) *delivery.DeliveryInfo {
	t.Helper()

	info, err := delivery.NewDeliveryInfo(
		kernel.NewUUID(),
		"delivery for project alpha",
		time.Now().AddDate(0, 1, 0),
		"DMS-01",
		newTestSubDeliveries(t, locationIDs...),
	)
	require.NoError(t, err)
	return info
}

func TestNewDeliveryInfo(t *testing.T) {
	t.Run("creates automated delivery in pending status", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01", "DIC-02")

		assert.Equal(t, delivery.StatusPending, info.Status())
		assert.False(t, info.ManualEntry())
		assert.True(t, info.RequiresCoordination())
		assert.Empty(t, info.TaskID())
		assert.Empty(t, info.BusinessKey())
		assert.Nil(t, info.ForwardedAt())
		assert.Nil(t, info.LastSyncedAt())
		assert.Len(t, info.SubDeliveries(), 2)
		for _, sub := range info.SubDeliveries() {
			assert.Equal(t, delivery.SubStatusPending, sub.Status())
		}
	})

	t.Run("requires name, date, and management site", func(t *testing.T) {
		_, err := delivery.NewDeliveryInfo(kernel.NewUUID(), "", time.Now(), "DMS-01", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = delivery.NewDeliveryInfo(kernel.NewUUID(), "x", time.Time{}, "DMS-01", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = delivery.NewDeliveryInfo(kernel.NewUUID(), "x", time.Now(), "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a constructed id", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := delivery.NewDeliveryInfo(zeroID, "x", time.Now(), "DMS-01", nil)
		require.Error(t, err)
	})
}

func TestNewManualDeliveryInfo(t *testing.T) {
	t.Run("lands directly in finished with accepted sub-deliveries", func(t *testing.T) {
		forwardedOn := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		info, err := delivery.NewManualDeliveryInfo(
			kernel.NewUUID(),
			"manual delivery",
			time.Now().AddDate(0, 1, 0),
			"DMS-01",
			newTestSubDeliveries(t, "DIC-01", "DIC-02"),
			forwardedOn,
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusFinished, info.Status())
		assert.True(t, info.ManualEntry())
		assert.False(t, info.RequiresCoordination())
		require.NotNil(t, info.ForwardedAt())
		assert.Equal(t, forwardedOn, *info.ForwardedAt())
		for _, sub := range info.SubDeliveries() {
			assert.Equal(t, delivery.SubStatusAccepted, sub.Status())
		}
	})
}

func TestDeliveryInfoAssignCoordinationTask(t *testing.T) {
	t.Run("stores task id and business key", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")

		require.NoError(t, info.AssignCoordinationTask("task-7", "bk-7"))

		assert.Equal(t, "task-7", info.TaskID())
		assert.Equal(t, "bk-7", info.BusinessKey())
	})

	t.Run("requires both identifiers", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")

		require.ErrorIs(t, info.AssignCoordinationTask("", "bk-7"), errs.ErrValueIsRequired)
		require.ErrorIs(t, info.AssignCoordinationTask("task-7", ""), errs.ErrValueIsRequired)
	})
}

func TestDeliveryInfoForward(t *testing.T) {
	t.Run("moves to waiting, stamps forwarded-on, closes open sub-deliveries", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01", "DIC-02", "DIC-03")
		info.SubDeliveries()[0].Accept()
		info.SubDeliveries()[1].MarkDelivered()

		require.NoError(t, info.Forward())

		assert.Equal(t, delivery.StatusWaitingForDataSet, info.Status())
		require.NotNil(t, info.ForwardedAt())
		assert.WithinDuration(t, time.Now(), *info.ForwardedAt(), time.Second)

		// Accepted stays, everything else is canceled.
		assert.Equal(t, delivery.SubStatusAccepted, info.SubDeliveries()[0].Status())
		assert.Equal(t, delivery.SubStatusCanceled, info.SubDeliveries()[1].Status())
		assert.Equal(t, delivery.SubStatusCanceled, info.SubDeliveries()[2].Status())
	})

	t.Run("fails from a terminal status", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")
		require.NoError(t, info.Cancel())

		require.ErrorIs(t, info.Forward(), errs.ErrInvalidState)
	})
}

func TestDeliveryInfoCancel(t *testing.T) {
	t.Run("moves to canceled and applies the same sub-delivery rule", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01", "DIC-02")
		info.SubDeliveries()[0].Accept()

		require.NoError(t, info.Cancel())

		assert.Equal(t, delivery.StatusCanceled, info.Status())
		require.NotNil(t, info.ForwardedAt())
		assert.Equal(t, delivery.SubStatusAccepted, info.SubDeliveries()[0].Status())
		assert.Equal(t, delivery.SubStatusCanceled, info.SubDeliveries()[1].Status())
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")
		require.NoError(t, info.Cancel())

		require.ErrorIs(t, info.Cancel(), errs.ErrInvalidState)
	})
}

func TestDeliveryInfoMarkResultsAvailable(t *testing.T) {
	t.Run("stores url while waiting for the dataset", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")
		require.NoError(t, info.Forward())

		require.NoError(t, info.MarkResultsAvailable("https://results.example.org/42"))

		assert.Equal(t, delivery.StatusResultsAvailable, info.Status())
		assert.Equal(t, "https://results.example.org/42", info.ResultURL())
	})

	t.Run("rejected outside waiting status", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")

		require.ErrorIs(t, info.MarkResultsAvailable("https://results.example.org/42"), errs.ErrInvalidState)
	})
}

func TestDeliveryInfoMarkFetched(t *testing.T) {
	t.Run("stamps fetched-on from results available", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")
		require.NoError(t, info.Forward())
		require.NoError(t, info.MarkResultsAvailable("https://results.example.org/42"))

		require.NoError(t, info.MarkFetched())

		assert.Equal(t, delivery.StatusFetchedByResearcher, info.Status())
		require.NotNil(t, info.FetchedAt())
		assert.WithinDuration(t, time.Now(), *info.FetchedAt(), time.Second)
	})

	t.Run("rejected before results are available", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")

		require.ErrorIs(t, info.MarkFetched(), errs.ErrInvalidState)
	})
}

func TestDeliveryInfoExtendDate(t *testing.T) {
	t.Run("accepts a later date", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")
		newDate := info.DeliveryDate().AddDate(0, 2, 0)

		require.NoError(t, info.ExtendDate(newDate))

		assert.Equal(t, newDate, info.DeliveryDate())
	})

	t.Run("rejects the current date and earlier dates", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")
		current := info.DeliveryDate()

		require.ErrorIs(t, info.ExtendDate(current), errs.ErrValueIsInvalid)
		require.ErrorIs(t, info.ExtendDate(current.AddDate(0, -1, 0)), errs.ErrValueIsInvalid)
		assert.Equal(t, current, info.DeliveryDate())
	})
}

func TestDeliveryInfoSyncLowerBound(t *testing.T) {
	t.Run("uses creation time when never synced", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")

		assert.Equal(t, info.CreatedAt(), info.SyncLowerBound())
	})

	t.Run("uses last sync time afterwards", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")

		info.StampSynced()

		require.NotNil(t, info.LastSyncedAt())
		assert.Equal(t, *info.LastSyncedAt(), info.SyncLowerBound())
	})
}

func TestDeliveryInfoFindSubDelivery(t *testing.T) {
	t.Run("finds by id", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01", "DIC-02")
		wanted := info.SubDeliveries()[1]

		found, err := info.FindSubDelivery(wanted.ID())

		require.NoError(t, err)
		assert.Same(t, wanted, found)
	})

	t.Run("not found for unknown id", func(t *testing.T) {
		info := newTestDeliveryInfo(t, "DIC-01")

		_, err := info.FindSubDelivery(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestSubDeliveryStickyAcceptance(t *testing.T) {
	t.Run("mark delivered never downgrades accepted", func(t *testing.T) {
		sub, err := delivery.NewSubDelivery(kernel.NewUUID(), "DIC-01")
		require.NoError(t, err)
		sub.Accept()

		sub.MarkDelivered()

		assert.Equal(t, delivery.SubStatusAccepted, sub.Status())
	})

	t.Run("close never downgrades accepted", func(t *testing.T) {
		sub, err := delivery.NewSubDelivery(kernel.NewUUID(), "DIC-01")
		require.NoError(t, err)
		sub.Accept()

		sub.Close()

		assert.Equal(t, delivery.SubStatusAccepted, sub.Status())
	})

	t.Run("pending becomes delivered", func(t *testing.T) {
		sub, err := delivery.NewSubDelivery(kernel.NewUUID(), "DIC-01")
		require.NoError(t, err)

		sub.MarkDelivered()

		assert.Equal(t, delivery.SubStatusDelivered, sub.Status())
	})
}

func TestSubDeliveryRate(t *testing.T) {
	t.Run("accepts valid ratings", func(t *testing.T) {
		sub, err := delivery.NewSubDelivery(kernel.NewUUID(), "DIC-01")
		require.NoError(t, err)
		sub.MarkDelivered()

		require.NoError(t, sub.Rate(delivery.SubStatusRepeated))
		assert.Equal(t, delivery.SubStatusRepeated, sub.Status())
	})

	t.Run("rejects invalid ratings without mutation", func(t *testing.T) {
		sub, err := delivery.NewSubDelivery(kernel.NewUUID(), "DIC-01")
		require.NoError(t, err)

		require.ErrorIs(t, sub.Rate(delivery.SubStatusDelivered), errs.ErrValueIsInvalid)
		assert.Equal(t, delivery.SubStatusPending, sub.Status())
	})
}
