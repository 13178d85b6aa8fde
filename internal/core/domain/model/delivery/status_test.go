package delivery_test

import (
	"testing"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.StatusPending,
			delivery.StatusWaitingForDataSet,
			delivery.StatusResultsAvailable,
			delivery.StatusFetchedByResearcher,
			delivery.StatusCanceled,
			delivery.StatusFinished,
		} {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown status fails", func(t *testing.T) {
		require.Error(t, delivery.StatusUnknown.Validate())
		require.Error(t, delivery.Status(42).Validate())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Pending", delivery.StatusPending.String())
	assert.Equal(t, "WaitingForDataSet", delivery.StatusWaitingForDataSet.String())
	assert.Equal(t, "ResultsAvailable", delivery.StatusResultsAvailable.String())
	assert.Equal(t, "FetchedByResearcher", delivery.StatusFetchedByResearcher.String())
	assert.Equal(t, "Canceled", delivery.StatusCanceled.String())
	assert.Equal(t, "Finished", delivery.StatusFinished.String())
	assert.Equal(t, "Unknown", delivery.Status(42).String())
}

func TestStatusForward(t *testing.T) {
	t.Run("pending forwards to waiting", func(t *testing.T) {
		newStatus, err := delivery.StatusPending.Forward()

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusWaitingForDataSet, newStatus)
	})

	t.Run("repeated forward is allowed", func(t *testing.T) {
		newStatus, err := delivery.StatusWaitingForDataSet.Forward()

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusWaitingForDataSet, newStatus)
	})

	t.Run("terminal statuses cannot forward", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.StatusResultsAvailable,
			delivery.StatusFetchedByResearcher,
			delivery.StatusCanceled,
			delivery.StatusFinished,
		} {
			_, err := s.Forward()
			require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
		}
	})
}

func TestStatusCancel(t *testing.T) {
	t.Run("open statuses can cancel", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.StatusPending,
			delivery.StatusWaitingForDataSet,
			delivery.StatusResultsAvailable,
		} {
			newStatus, err := s.Cancel()
			require.NoError(t, err, s.String())
			assert.Equal(t, delivery.StatusCanceled, newStatus)
		}
	})

	t.Run("terminal statuses cannot cancel", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.StatusFetchedByResearcher,
			delivery.StatusCanceled,
			delivery.StatusFinished,
		} {
			_, err := s.Cancel()
			require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
		}
	})
}

func TestStatusFetch(t *testing.T) {
	t.Run("results available can be fetched", func(t *testing.T) {
		newStatus, err := delivery.StatusResultsAvailable.Fetch()

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusFetchedByResearcher, newStatus)
	})

	t.Run("other statuses cannot be fetched", func(t *testing.T) {
		_, err := delivery.StatusPending.Fetch()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStatusAllowsSubDeliverySync(t *testing.T) {
	assert.True(t, delivery.StatusPending.AllowsSubDeliverySync())
	assert.True(t, delivery.StatusWaitingForDataSet.AllowsSubDeliverySync())
	assert.False(t, delivery.StatusResultsAvailable.AllowsSubDeliverySync())
	assert.False(t, delivery.StatusCanceled.AllowsSubDeliverySync())
	assert.False(t, delivery.StatusFinished.AllowsSubDeliverySync())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, delivery.StatusPending.IsTerminal())
	assert.False(t, delivery.StatusWaitingForDataSet.IsTerminal())
	assert.False(t, delivery.StatusResultsAvailable.IsTerminal())
	assert.True(t, delivery.StatusFetchedByResearcher.IsTerminal())
	assert.True(t, delivery.StatusCanceled.IsTerminal())
	assert.True(t, delivery.StatusFinished.IsTerminal())
}

func TestSubStatusValidateRating(t *testing.T) {
	t.Run("accepted and repeated are valid ratings", func(t *testing.T) {
		require.NoError(t, delivery.SubStatusAccepted.ValidateRating())
		require.NoError(t, delivery.SubStatusRepeated.ValidateRating())
	})

	t.Run("all other values are rejected", func(t *testing.T) {
		for _, s := range []delivery.SubStatus{
			delivery.SubStatusUnknown,
			delivery.SubStatusPending,
			delivery.SubStatusDelivered,
			delivery.SubStatusCanceled,
		} {
			require.ErrorIs(t, s.ValidateRating(), errs.ErrValueIsInvalid, s.String())
		}
	})
}

func TestAcceptanceStatusValidateVote(t *testing.T) {
	t.Run("accepted and denied are valid votes", func(t *testing.T) {
		require.NoError(t, delivery.AcceptanceAccepted.ValidateVote())
		require.NoError(t, delivery.AcceptanceDenied.ValidateVote())
	})

	t.Run("pending is not a vote", func(t *testing.T) {
		require.ErrorIs(t, delivery.AcceptancePending.ValidateVote(), errs.ErrValueIsInvalid)
	})
}
