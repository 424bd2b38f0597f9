package version_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewEntry(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		crID := kernel.NewUUID()
		snapshot := order.Snapshot{Items: []order.LineItem{{SKU: "X1", Qty: 2}}}

		entry, err := version.NewEntry(
			kernel.NewUUID(), 1, testTime, kernel.NewUUID(), snapshot, &crID, "applied")

		require.NoError(t, err)
		assert.Equal(t, 1, entry.Version())
		assert.Equal(t, "applied", entry.Comment())
		require.NotNil(t, entry.ChangeRequestID())
		assert.True(t, entry.ChangeRequestID().IsEqual(crID))
	})

	t.Run("rejects negative version", func(t *testing.T) {
		_, err := version.NewEntry(
			kernel.NewUUID(), -1, testTime, kernel.NewUUID(), order.Snapshot{}, nil, "")

		require.Error(t, err)
	})

	t.Run("rejects zero ids", func(t *testing.T) {
		_, err := version.NewEntry(
			kernel.UUID{}, 0, testTime, kernel.NewUUID(), order.Snapshot{}, nil, "")
		require.Error(t, err)

		_, err = version.NewEntry(
			kernel.NewUUID(), 0, testTime, kernel.UUID{}, order.Snapshot{}, nil, "")
		require.Error(t, err)
	})
}

func TestEntry_SnapshotIsImmutable(t *testing.T) {
	snapshot := order.Snapshot{Items: []order.LineItem{{SKU: "X1", Qty: 2}}}
	entry, err := version.NewEntry(
		kernel.NewUUID(), 0, testTime, kernel.NewUUID(), snapshot, nil, "")
	require.NoError(t, err)

	leaked := entry.Snapshot()
	leaked.Items[0].Qty = 99

	assert.Equal(t, 2, entry.Snapshot().Items[0].Qty)
}

func TestEntry_Next(t *testing.T) {
	entry, err := version.NewEntry(
		kernel.NewUUID(), 4, testTime, kernel.NewUUID(), order.Snapshot{}, nil, "")
	require.NoError(t, err)

	next, err := entry.Next(testTime.Add(time.Minute), kernel.NewUUID(), order.Snapshot{Note: "n"}, nil, "rolled back")

	require.NoError(t, err)
	assert.Equal(t, 5, next.Version())
	assert.True(t, next.OrderID().IsEqual(entry.OrderID()))
	assert.Equal(t, "rolled back", next.Comment())
}
