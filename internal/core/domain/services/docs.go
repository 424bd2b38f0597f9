// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the fulfillment system. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - The static lifecycle rule tables: transitions, RACI role mapping, and
//     SLA stages. They are immutable configuration, never mutated at runtime.
//   - TransitionGuard: the pure allow/deny decision for a requested transition
//   - GateEvaluator: fail-closed resolution of external business gates
//   - DiffApplier: the pure function turning a base snapshot plus an ordered
//     edit list into a new snapshot
//
// Domain services here are deterministic and side-effect free; everything
// that touches storage or the network lives behind ports.
package services
