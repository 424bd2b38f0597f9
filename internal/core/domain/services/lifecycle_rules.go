package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// TransitionKey names a rule in the transition table.
type TransitionKey string

const (
	TransitionRequestAccept   TransitionKey = "REQUEST_ACCEPT"
	TransitionReceiveFinish   TransitionKey = "RECEIVE_FINISH"
	TransitionPackFinish      TransitionKey = "PACK_FINISH"
	TransitionTransitDeliver  TransitionKey = "TRANSIT_DELIVER"
	TransitionDeliveryArchive TransitionKey = "DELIVERY_ARCHIVE"
	TransitionCancel          TransitionKey = "CANCEL"
)

// GateName names an external boolean precondition.
type GateName string

const (
	// GatePaymentOK holds when the payment ledger reports the order as paid.
	GatePaymentOK GateName = "PAYMENT_OK"

	// GateReconcileOK holds when the reconciliation subsystem reports the
	// received goods as matching the order.
	GateReconcileOK GateName = "RECONCILE_OK"

	// GateNoDebt holds when the debt ledger reports no outstanding balance.
	GateNoDebt GateName = "NO_DEBT"
)

// TransitionRule is a single allowed edge in the lifecycle state machine:
// which states it leaves, where it lands, who may trigger it, and which gates
// must hold first. Auto marks rules the scheduler may trigger without a human
// actor.
type TransitionRule struct {
	Key           TransitionKey
	FromStates    []order.Status
	ToState       order.Status
	AllowedRoles  order.RoleSet
	RequiredGates []GateName
	Auto          bool
}

// appliesFrom reports whether the rule can leave the given state.
func (r TransitionRule) appliesFrom(from order.Status) bool {
	for _, s := range r.FromStates {
		if s == from {
			return true
		}
	}
	return false
}

// nonTerminalStatuses are every state CANCEL can leave.
var nonTerminalStatuses = []order.Status{
	order.Request, order.Receive, order.Pack, order.Transit, order.Delivery,
}

// transitionTable declares every legal transition. It is immutable
// configuration; tenant-specific policy would be a new table, never a
// mutation of this one.
var transitionTable = []TransitionRule{
	{
		Key:          TransitionRequestAccept,
		FromStates:   []order.Status{order.Request},
		ToState:      order.Receive,
		AllowedRoles: order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin},
	},
	{
		Key:           TransitionReceiveFinish,
		FromStates:    []order.Status{order.Receive},
		ToState:       order.Pack,
		AllowedRoles:  order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin},
		RequiredGates: []GateName{GateReconcileOK},
	},
	{
		Key:           TransitionPackFinish,
		FromStates:    []order.Status{order.Pack},
		ToState:       order.Transit,
		AllowedRoles:  order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin},
		RequiredGates: []GateName{GatePaymentOK},
	},
	{
		Key:          TransitionTransitDeliver,
		FromStates:   []order.Status{order.Transit},
		ToState:      order.Delivery,
		AllowedRoles: order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin, order.RoleSystem},
		Auto:         true,
	},
	{
		Key:           TransitionDeliveryArchive,
		FromStates:    []order.Status{order.Delivery},
		ToState:       order.Archive,
		AllowedRoles:  order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin},
		RequiredGates: []GateName{GatePaymentOK, GateNoDebt},
	},
	{
		Key:          TransitionCancel,
		FromStates:   nonTerminalStatuses,
		ToState:      order.Cancelled,
		AllowedRoles: order.RoleSet{order.RoleCustomer, order.RoleAdmin, order.RoleSuperAdmin},
	},
}

// TransitionRules returns a copy of the full transition table, for read
// models that enumerate the state machine.
func TransitionRules() []TransitionRule {
	out := make([]TransitionRule, len(transitionTable))
	copy(out, transitionTable)
	return out
}

// RuleFor returns the unique rule matching the key whose from-states include
// the given state.
func RuleFor(key TransitionKey, from order.Status) (TransitionRule, bool) {
	for _, rule := range transitionTable {
		if rule.Key == key && rule.appliesFrom(from) {
			return rule, true
		}
	}
	return TransitionRule{}, false
}

// RACIEntry maps one lifecycle state to the roles that are Responsible,
// Accountable, Consulted, and Informed while the order sits in that state.
type RACIEntry struct {
	Responsible order.RoleSet
	Accountable order.RoleSet
	Consulted   order.RoleSet
	Informed    order.RoleSet
}

// raciTable is the static per-state role mapping. The accountable set drives
// change-request approval authority for orders currently in that state.
var raciTable = map[order.Status]RACIEntry{
	order.Request: {
		Responsible: order.RoleSet{order.RoleCustomer},
		Accountable: order.RoleSet{order.RoleAdmin},
		Informed:    order.RoleSet{order.RoleCustomer},
	},
	order.Receive: {
		Responsible: order.RoleSet{order.RoleAdmin},
		Accountable: order.RoleSet{order.RoleAdmin},
		Consulted:   order.RoleSet{order.RoleCustomer},
		Informed:    order.RoleSet{order.RoleCustomer},
	},
	order.Pack: {
		Responsible: order.RoleSet{order.RoleAdmin},
		Accountable: order.RoleSet{order.RoleAdmin},
		Informed:    order.RoleSet{order.RoleCustomer},
	},
	order.Transit: {
		Responsible: order.RoleSet{order.RoleSystem},
		Accountable: order.RoleSet{order.RoleSuperAdmin},
		Informed:    order.RoleSet{order.RoleCustomer, order.RoleAdmin},
	},
	order.Delivery: {
		Responsible: order.RoleSet{order.RoleAdmin},
		Accountable: order.RoleSet{order.RoleAdmin},
		Consulted:   order.RoleSet{order.RoleSuperAdmin},
		Informed:    order.RoleSet{order.RoleCustomer},
	},
	order.Archive: {
		Accountable: order.RoleSet{order.RoleSuperAdmin},
		Informed:    order.RoleSet{order.RoleCustomer, order.RoleAdmin},
	},
	order.Cancelled: {
		Accountable: order.RoleSet{order.RoleSuperAdmin},
		Informed:    order.RoleSet{order.RoleCustomer, order.RoleAdmin},
	},
}

// RACIFor returns the role mapping for a state.
func RACIFor(status order.Status) (RACIEntry, bool) {
	entry, ok := raciTable[status]
	return entry, ok
}

// ApproversFor returns the set of roles eligible to decide a change request
// on an order currently in the given state: the state's accountable roles
// plus the super-admin. Approval authority tracks present accountability, not
// the state the order was in when the request was created.
func ApproversFor(status order.Status) order.RoleSet {
	approvers := order.RoleSet{order.RoleSuperAdmin}
	entry, ok := raciTable[status]
	if !ok {
		return approvers
	}

	for _, role := range entry.Accountable {
		if !approvers.Contains(role) {
			approvers = append(approvers, role)
		}
	}
	return approvers
}

// SLAStage declares the time budget for one lifecycle state: the target
// duration, an optional hard limit (zero means none), and the roles to
// escalate to on breach.
type SLAStage struct {
	Key        string
	Status     order.Status
	Target     time.Duration
	HardLimit  time.Duration
	EscalateTo order.RoleSet
}

// Breached reports whether an order that has spent elapsed time in the
// stage's status is over budget: past the hard limit, or past the target when
// no hard limit is declared.
func (s SLAStage) Breached(elapsed time.Duration) bool {
	if s.HardLimit > 0 {
		return elapsed >= s.HardLimit
	}
	return elapsed >= s.Target
}

// slaTable is the static stage-duration configuration.
var slaTable = []SLAStage{
	{
		Key:        "SLA_REQUEST",
		Status:     order.Request,
		Target:     24 * time.Hour,
		HardLimit:  48 * time.Hour,
		EscalateTo: order.RoleSet{order.RoleAdmin},
	},
	{
		Key:        "SLA_RECEIVE",
		Status:     order.Receive,
		Target:     48 * time.Hour,
		HardLimit:  96 * time.Hour,
		EscalateTo: order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin},
	},
	{
		Key:        "SLA_PACK",
		Status:     order.Pack,
		Target:     24 * time.Hour,
		HardLimit:  72 * time.Hour,
		EscalateTo: order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin},
	},
	{
		Key:        "SLA_TRANSIT",
		Status:     order.Transit,
		Target:     7 * 24 * time.Hour,
		EscalateTo: order.RoleSet{order.RoleSuperAdmin},
	},
	{
		Key:        "SLA_DELIVERY",
		Status:     order.Delivery,
		Target:     48 * time.Hour,
		HardLimit:  120 * time.Hour,
		EscalateTo: order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin},
	},
}

// SLAStages returns a copy of the full stage table.
func SLAStages() []SLAStage {
	out := make([]SLAStage, len(slaTable))
	copy(out, slaTable)
	return out
}

// SLAStageFor returns the stage measuring the given status, if any.
func SLAStageFor(status order.Status) (SLAStage, bool) {
	for _, stage := range slaTable {
		if stage.Status == status {
			return stage, true
		}
	}
	return SLAStage{}, false
}
