package gates

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormPaymentSource answers PAYMENT_OK from the payment_statuses table.
type GormPaymentSource struct {
	db *gorm.DB
}

// NewGormPaymentSource creates a payment source over the given connection.
func NewGormPaymentSource(db *gorm.DB) *GormPaymentSource {
	return &GormPaymentSource{db: db}
}

// IsPaid reports whether the order is settled. An order without a payment
// record is unpaid.
func (s *GormPaymentSource) IsPaid(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var dto PaymentStatusDTO
	err := s.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return dto.Paid, nil
}

// GormReconciliationSource answers RECONCILE_OK from the
// reconciliation_statuses table.
type GormReconciliationSource struct {
	db *gorm.DB
}

// NewGormReconciliationSource creates a reconciliation source over the given connection.
func NewGormReconciliationSource(db *gorm.DB) *GormReconciliationSource {
	return &GormReconciliationSource{db: db}
}

// IsReconciled reports whether received goods matched the order. An order
// without a reconciliation record is unreconciled.
func (s *GormReconciliationSource) IsReconciled(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var dto ReconciliationStatusDTO
	err := s.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return dto.Reconciled, nil
}

// GormDebtSource answers NO_DEBT (inverted) from the debt_records table.
type GormDebtSource struct {
	db *gorm.DB
}

// NewGormDebtSource creates a debt source over the given connection.
func NewGormDebtSource(db *gorm.DB) *GormDebtSource {
	return &GormDebtSource{db: db}
}

// HasOutstandingDebt reports whether the ordering party owes anything. An
// order without a debt record carries no debt.
func (s *GormDebtSource) HasOutstandingDebt(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var dto DebtRecordDTO
	err := s.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return dto.Outstanding, nil
}
