// Package notify delivers stall escalations. The log-based notifier is the
// default channel; swapping in email or a messenger bot only means another
// implementation of the same port.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
)

// LogNotifier writes escalations to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-based escalation notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "escalation_notifier")}
}

// NotifyStalled reports a stalled order to the roles named by the breached
// stage.
func (n *LogNotifier) NotifyStalled(
	ctx context.Context,
	aggregate *order.Order,
	stageKey string,
	escalateTo order.RoleSet,
) error {
	roles := make([]string, 0, len(escalateTo))
	for _, role := range escalateTo {
		roles = append(roles, role.String())
	}

	n.logger.WarnContext(ctx, "order stalled past stage budget",
		"order_id", aggregate.ID().String(),
		"order_number", aggregate.Number(),
		"status", aggregate.Status().String(),
		"stage", stageKey,
		"escalate_to", roles,
	)

	return nil
}
