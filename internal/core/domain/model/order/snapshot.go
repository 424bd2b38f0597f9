package order

import (
	"github.com/Rhymond/go-money"
)

// Snapshot is the full structured content of an order at a single ledger
// version: delivery details, pricing, line items, note, and free-form
// metadata. Snapshots are immutable once appended to the ledger; the diff
// applier produces a new Snapshot rather than mutating one in place.
//
// Fields are exported because Snapshot is a pure value document serialized
// as-is by the persistence adapters.
type Snapshot struct {
	Delivery DeliveryInfo      `json:"delivery"`
	Pricing  Pricing           `json:"pricing"`
	Items    []LineItem        `json:"items"`
	Note     string            `json:"note"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DeliveryInfo carries the destination address and the promised delivery date
// in ISO 8601 date form.
type DeliveryInfo struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	PromisedDay string `json:"promisedDay,omitempty"`
}

// Pricing is the order total in minor units together with its ISO 4217
// currency code. The two always change together; a total without a currency
// is not representable through any field edit.
type Pricing struct {
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency,omitempty"`
}

// Total returns the pricing as a money value, or nil when no currency is set.
func (p Pricing) Total() *money.Money {
	if p.Currency == "" {
		return nil
	}
	return money.New(p.AmountMinor, p.Currency)
}

// LineItem is one article line of the order.
type LineItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// Clone returns a deep copy of the snapshot. The diff applier always works on
// a clone so the base snapshot stays untouched.
func (s Snapshot) Clone() Snapshot {
	out := s

	if s.Items != nil {
		out.Items = make([]LineItem, len(s.Items))
		copy(out.Items, s.Items)
	}

	if s.Metadata != nil {
		out.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}

	return out
}

// Equal reports whether two snapshots carry identical content.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Delivery != other.Delivery || s.Pricing != other.Pricing || s.Note != other.Note {
		return false
	}

	if len(s.Items) != len(other.Items) {
		return false
	}
	for i := range s.Items {
		if s.Items[i] != other.Items[i] {
			return false
		}
	}

	if len(s.Metadata) != len(other.Metadata) {
		return false
	}
	for k, v := range s.Metadata {
		if other.Metadata[k] != v {
			return false
		}
	}

	return true
}
