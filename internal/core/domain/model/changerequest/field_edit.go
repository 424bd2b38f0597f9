package changerequest

import (
	"encoding/json"
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/Rhymond/go-money"
)

// ErrUnknownEditKind is returned when decoding an edit whose kind is not part
// of the closed set. Unknown kinds fail at the boundary; they are never
// silently dropped.
var ErrUnknownEditKind = errors.New("unknown field edit kind")

// EditKind discriminates the closed set of field edit variants.
type EditKind string

const (
	EditAddress    EditKind = "address"
	EditDate       EditKind = "date"
	EditTotal      EditKind = "total"
	EditItemAdd    EditKind = "item_add"
	EditItemRemove EditKind = "item_remove"
	EditNote       EditKind = "note"
)

// FieldEdit is one element of a change request's ordered edit list. The set
// of implementations is closed; the diff applier handles each kind
// exhaustively and treats anything else as a programming error.
type FieldEdit interface {
	Kind() EditKind
	Validate() error
}

// AddressEdit replaces the delivery street and city.
type AddressEdit struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

func (e AddressEdit) Kind() EditKind { return EditAddress }

func (e AddressEdit) Validate() error {
	if e.Street == "" && e.City == "" {
		return errs.NewValueIsRequiredError("address edit needs a street or a city")
	}
	return nil
}

// DateEdit replaces the promised delivery day (ISO 8601 date, e.g. "2025-06-10").
type DateEdit struct {
	PromisedDay string `json:"promisedDay"`
}

func (e DateEdit) Kind() EditKind { return EditDate }

func (e DateEdit) Validate() error {
	if e.PromisedDay == "" {
		return errs.NewValueIsRequiredError("promisedDay")
	}
	return nil
}

// TotalEdit replaces the order total and its currency together. A total
// without a currency is not representable, which rules out silently mixing
// currencies across edits.
type TotalEdit struct {
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
}

func (e TotalEdit) Kind() EditKind { return EditTotal }

func (e TotalEdit) Validate() error {
	if e.Currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if money.GetCurrency(e.Currency) == nil {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a known ISO 4217 code", e.Currency))
	}
	if e.AmountMinor < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amountMinor",
			fmt.Errorf("%d is negative", e.AmountMinor))
	}
	return nil
}

// Money returns the edit's value as a money amount.
func (e TotalEdit) Money() *money.Money {
	return money.New(e.AmountMinor, e.Currency)
}

// ItemAddEdit appends one line item.
type ItemAddEdit struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

func (e ItemAddEdit) Kind() EditKind { return EditItemAdd }

func (e ItemAddEdit) Validate() error {
	if e.SKU == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if e.Qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is not greater than 0", e.Qty))
	}
	return nil
}

// ItemRemoveEdit removes line items matching the SKU; when Qty is non-zero
// only lines with that exact quantity are removed. Removing a line that does
// not exist is a no-op, which keeps the edit idempotent under retries.
type ItemRemoveEdit struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty,omitempty"`
}

func (e ItemRemoveEdit) Kind() EditKind { return EditItemRemove }

func (e ItemRemoveEdit) Validate() error {
	if e.SKU == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if e.Qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is negative", e.Qty))
	}
	return nil
}

// NoteEdit replaces the free-form order note. An empty note clears it.
type NoteEdit struct {
	Note string `json:"note"`
}

func (e NoteEdit) Kind() EditKind { return EditNote }

func (e NoteEdit) Validate() error { return nil }

// editEnvelope is the wire/storage form of a single edit.
type editEnvelope struct {
	Kind EditKind        `json:"kind"`
	Edit json.RawMessage `json:"edit"`
}

// MarshalEdits encodes an ordered edit list for storage or transport.
func MarshalEdits(edits []FieldEdit) ([]byte, error) {
	envelopes := make([]editEnvelope, 0, len(edits))
	for _, e := range edits {
		raw, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, editEnvelope{Kind: e.Kind(), Edit: raw})
	}
	return json.Marshal(envelopes)
}

// UnmarshalEdits decodes an ordered edit list, validating each edit. A kind
// outside the closed set yields ErrUnknownEditKind.
func UnmarshalEdits(data []byte) ([]FieldEdit, error) {
	var envelopes []editEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("edits", err)
	}

	edits := make([]FieldEdit, 0, len(envelopes))
	for _, env := range envelopes {
		edit, err := decodeEdit(env)
		if err != nil {
			return nil, err
		}
		if err = edit.Validate(); err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

func decodeEdit(env editEnvelope) (FieldEdit, error) {
	var (
		edit FieldEdit
		err  error
	)

	switch env.Kind {
	case EditAddress:
		var e AddressEdit
		err = json.Unmarshal(env.Edit, &e)
		edit = e
	case EditDate:
		var e DateEdit
		err = json.Unmarshal(env.Edit, &e)
		edit = e
	case EditTotal:
		var e TotalEdit
		err = json.Unmarshal(env.Edit, &e)
		edit = e
	case EditItemAdd:
		var e ItemAddEdit
		err = json.Unmarshal(env.Edit, &e)
		edit = e
	case EditItemRemove:
		var e ItemRemoveEdit
		err = json.Unmarshal(env.Edit, &e)
		edit = e
	case EditNote:
		var e NoteEdit
		err = json.Unmarshal(env.Edit, &e)
		edit = e
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEditKind, env.Kind)
	}

	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(string(env.Kind), err)
	}
	return edit, nil
}
