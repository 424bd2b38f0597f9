// Package gates implements the gate source ports against database tables
// maintained by the finance-side integrations. A missing row is a valid
// answer (not yet paid, not yet reconciled, no recorded debt), never an error.
package gates

import (
	"github.com/google/uuid"
)

// PaymentStatusDTO mirrors the payment ledger's per-order settlement flag.
type PaymentStatusDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Paid    bool
}

func (PaymentStatusDTO) TableName() string {
	return "payment_statuses"
}

// ReconciliationStatusDTO mirrors the goods-in reconciliation result.
type ReconciliationStatusDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reconciled bool
}

func (ReconciliationStatusDTO) TableName() string {
	return "reconciliation_statuses"
}

// DebtRecordDTO mirrors the debt ledger's per-order outstanding flag.
type DebtRecordDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Outstanding bool
}

func (DebtRecordDTO) TableName() string {
	return "debt_records"
}
