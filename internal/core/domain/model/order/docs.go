// Package order contains the Order aggregate and its supporting value objects:
// the lifecycle Status enumeration, the actor Role enumeration, and the
// Snapshot document describing the full order content at a point in time.
//
// An order moves through the fulfillment pipeline
//
//	Request ──> Receive ──> Pack ──> Transit ──> Delivery ──> Archive
//
// with Cancelled reachable from every non-terminal state. The aggregate never
// changes its own status on a whim: every change goes through the transition
// guard in the services package, which consults the static rule tables.
//
// Snapshots are owned by the version ledger; the aggregate itself only carries
// the live status and bookkeeping timestamps.
package order
