// Package changerequest contains the ChangeRequest aggregate: a proposed,
// approvable bundle of field-level edits against a specific ledger version of
// an order.
//
// A change request moves through
//
//	Draft ──> Pending ──(approve)──> Approved ──> Applied
//	             └─────(reject)───> Rejected
//
// Draft is an optional entry state; creation normally goes straight to
// Pending. Applied and Rejected are terminal: once applied, a change request
// is immutable forever — rolling back the order later is a ledger operation
// and never touches the change request that produced the reverted version.
//
// Field edits are a closed, discriminated set (address, date, total, item
// add/remove, note). Unknown kinds are rejected when decoding, never silently
// ignored.
package changerequest
