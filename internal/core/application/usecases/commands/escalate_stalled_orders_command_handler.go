package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// EscalateStalledOrdersCommandHandler sweeps active orders for stage-budget
// breaches and escalates them to the roles the breached stage names. The
// sweep is read-only towards orders; escalation happens through the notifier
// port and the journal. A per-order cooldown keeps repeated sweeps from
// re-escalating the same stall on every run; a zero cooldown escalates on
// every sweep. A notifier failure for one order never aborts the sweep.
type EscalateStalledOrdersCommandHandler struct {
	uowFactory      OrderUoWFactory
	notifier        ports.EscalationNotifier
	journal         ports.JournalPublisher
	reescalateEvery time.Duration
	logger          *slog.Logger

	mu            sync.Mutex
	lastEscalated map[kernel.UUID]time.Time
}

// NewEscalateStalledOrdersCommandHandler creates a handler for stall sweeps.
func NewEscalateStalledOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.EscalationNotifier,
	journal ports.JournalPublisher,
	reescalateEvery time.Duration,
	logger *slog.Logger,
) *EscalateStalledOrdersCommandHandler {
	return &EscalateStalledOrdersCommandHandler{
		uowFactory:      uowFactory,
		notifier:        notifier,
		journal:         journal,
		reescalateEvery: reescalateEvery,
		logger:          logger.With("component", "stall_sweep"),
		lastEscalated:   make(map[kernel.UUID]time.Time),
	}
}

// Handle processes one sweep over all active orders.
func (h *EscalateStalledOrdersCommandHandler) Handle(ctx context.Context, cmd EscalateStalledOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.OrderRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, aggregate := range active {
		stage, ok := services.SLAStageFor(aggregate.Status())
		if !ok {
			continue
		}
		if !stage.Breached(aggregate.TimeInStatus(now)) {
			h.clearCooldown(aggregate.ID())
			continue
		}
		if h.onCooldown(aggregate.ID(), now) {
			continue
		}

		h.escalate(ctx, aggregate, stage, now)
	}

	return uow.Commit(ctx)
}

func (h *EscalateStalledOrdersCommandHandler) escalate(
	ctx context.Context,
	aggregate *order.Order,
	stage services.SLAStage,
	now time.Time,
) {
	if err := h.notifier.NotifyStalled(ctx, aggregate, stage.Key, stage.EscalateTo); err != nil {
		h.logger.WarnContext(ctx, "escalation notification failed",
			"order_id", aggregate.ID().String(), "stage", stage.Key, "error", err)
		return
	}

	h.markEscalated(aggregate.ID(), now)

	roles := make([]string, 0, len(stage.EscalateTo))
	for _, role := range stage.EscalateTo {
		roles = append(roles, role.String())
	}

	h.journal.Publish(journal.NewEvent(journal.EventSLA, aggregate.ID(), nil,
		map[string]any{
			"stage":         stage.Key,
			"status":        aggregate.Status().String(),
			"in_status_for": aggregate.TimeInStatus(now).String(),
			"escalated_to":  roles,
		}, now))
}

func (h *EscalateStalledOrdersCommandHandler) onCooldown(id kernel.UUID, now time.Time) bool {
	if h.reescalateEvery <= 0 {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	last, ok := h.lastEscalated[id]
	return ok && now.Sub(last) < h.reescalateEvery
}

func (h *EscalateStalledOrdersCommandHandler) markEscalated(id kernel.UUID, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastEscalated[id] = now
}

// clearCooldown forgets an order that is back within budget, typically after
// a transition reset its stage clock.
func (h *EscalateStalledOrdersCommandHandler) clearCooldown(id kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.lastEscalated, id)
}
