package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EscalationNotifier delivers stall escalations to the roles named by the
// breached stage. Implementations decide the channel; the domain only decides
// who hears about it.
type EscalationNotifier interface {
	NotifyStalled(ctx context.Context, aggregate *order.Order, stageKey string, escalateTo order.RoleSet) error
}
