package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/order"
)

// DiffApplier turns a base snapshot plus an ordered edit list into a new
// snapshot. It is pure and deterministic: the base is never mutated, and the
// same inputs always yield the same output. Edits are applied in declaration
// order because they are not commutative in general (two edits may touch the
// same field).
type DiffApplier struct{}

// NewDiffApplier creates a DiffApplier.
func NewDiffApplier() DiffApplier {
	return DiffApplier{}
}

// Apply computes the snapshot resulting from the edits. Unknown edit kinds
// were already rejected when the change request was validated; seeing one
// here is a programming error and is reported, never silently skipped.
func (a DiffApplier) Apply(base order.Snapshot, edits []changerequest.FieldEdit) (order.Snapshot, error) {
	result := base.Clone()

	for _, edit := range edits {
		switch e := edit.(type) {
		case changerequest.AddressEdit:
			if e.Street != "" {
				result.Delivery.Street = e.Street
			}
			if e.City != "" {
				result.Delivery.City = e.City
			}
		case changerequest.DateEdit:
			result.Delivery.PromisedDay = e.PromisedDay
		case changerequest.TotalEdit:
			// Total and currency always move together.
			result.Pricing = order.Pricing{AmountMinor: e.AmountMinor, Currency: e.Currency}
		case changerequest.ItemAddEdit:
			result.Items = append(result.Items, order.LineItem{SKU: e.SKU, Qty: e.Qty})
		case changerequest.ItemRemoveEdit:
			result.Items = removeItems(result.Items, e)
		case changerequest.NoteEdit:
			result.Note = e.Note
		default:
			return order.Snapshot{}, fmt.Errorf("%w: %T", changerequest.ErrUnknownEditKind, edit)
		}
	}

	return result, nil
}

// removeItems filters out lines matching the edit's SKU; a non-zero Qty
// narrows the match to that exact quantity. Removing nothing is a no-op.
func removeItems(items []order.LineItem, e changerequest.ItemRemoveEdit) []order.LineItem {
	kept := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		if item.SKU == e.SKU && (e.Qty == 0 || item.Qty == e.Qty) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
