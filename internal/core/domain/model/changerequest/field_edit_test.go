package changerequest_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/changerequest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldEdit_Validate(t *testing.T) {
	t.Run("address needs street or city", func(t *testing.T) {
		require.Error(t, changerequest.AddressEdit{}.Validate())
		require.NoError(t, changerequest.AddressEdit{Street: "Main St 2"}.Validate())
		require.NoError(t, changerequest.AddressEdit{City: "Samarkand"}.Validate())
	})

	t.Run("date needs a day", func(t *testing.T) {
		require.Error(t, changerequest.DateEdit{}.Validate())
		require.NoError(t, changerequest.DateEdit{PromisedDay: "2025-06-10"}.Validate())
	})

	t.Run("total needs a known currency and non-negative amount", func(t *testing.T) {
		require.Error(t, changerequest.TotalEdit{AmountMinor: 100}.Validate())
		require.Error(t, changerequest.TotalEdit{AmountMinor: 100, Currency: "ZZZ"}.Validate())
		require.Error(t, changerequest.TotalEdit{AmountMinor: -1, Currency: "USD"}.Validate())
		require.NoError(t, changerequest.TotalEdit{AmountMinor: 100, Currency: "USD"}.Validate())
	})

	t.Run("item add needs sku and positive qty", func(t *testing.T) {
		require.Error(t, changerequest.ItemAddEdit{Qty: 1}.Validate())
		require.Error(t, changerequest.ItemAddEdit{SKU: "X1"}.Validate())
		require.NoError(t, changerequest.ItemAddEdit{SKU: "X1", Qty: 1}.Validate())
	})

	t.Run("item remove needs sku, qty optional", func(t *testing.T) {
		require.Error(t, changerequest.ItemRemoveEdit{}.Validate())
		require.Error(t, changerequest.ItemRemoveEdit{SKU: "X1", Qty: -1}.Validate())
		require.NoError(t, changerequest.ItemRemoveEdit{SKU: "X1"}.Validate())
		require.NoError(t, changerequest.ItemRemoveEdit{SKU: "X1", Qty: 2}.Validate())
	})

	t.Run("note is always valid", func(t *testing.T) {
		require.NoError(t, changerequest.NoteEdit{}.Validate())
	})
}

func TestTotalEdit_Money(t *testing.T) {
	m := changerequest.TotalEdit{AmountMinor: 250_00, Currency: "EUR"}.Money()

	assert.Equal(t, int64(250_00), m.Amount())
	assert.Equal(t, "EUR", m.Currency().Code)
}

func TestMarshalUnmarshalEdits(t *testing.T) {
	edits := []changerequest.FieldEdit{
		changerequest.AddressEdit{Street: "Main St 2", City: "Bukhara"},
		changerequest.TotalEdit{AmountMinor: 99_00, Currency: "USD"},
		changerequest.ItemAddEdit{SKU: "X1", Qty: 2},
		changerequest.ItemRemoveEdit{SKU: "X0"},
		changerequest.NoteEdit{Note: "leave at door"},
	}

	data, err := changerequest.MarshalEdits(edits)
	require.NoError(t, err)

	decoded, err := changerequest.UnmarshalEdits(data)
	require.NoError(t, err)

	require.Len(t, decoded, len(edits))
	assert.Equal(t, edits, decoded)
}

func TestUnmarshalEdits_Rejects(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		_, err := changerequest.UnmarshalEdits(
			[]byte(`[{"kind":"teleport","edit":{"to":"mars"}}]`))

		require.ErrorIs(t, err, changerequest.ErrUnknownEditKind)
	})

	t.Run("invalid payload for known kind", func(t *testing.T) {
		_, err := changerequest.UnmarshalEdits(
			[]byte(`[{"kind":"item_add","edit":{"sku":"X1","qty":0}}]`))

		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := changerequest.UnmarshalEdits([]byte(`{`))

		require.Error(t, err)
	})
}
