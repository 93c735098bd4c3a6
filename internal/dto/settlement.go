package dto

import "orderdesk/internal/domain"

type SettlementStatus string

const (
	// SettlementCompleted: the charge settled and the order was persisted.
	SettlementCompleted SettlementStatus = "COMPLETED"
	// SettlementPendingReconciliation: the charge settled but the order could
	// not be persisted. Money has moved; the payment id is recorded for
	// manual follow-up and the customer must not be asked to pay again.
	SettlementPendingReconciliation SettlementStatus = "PENDING_RECONCILIATION"
)

// SettlementResult is the orchestrator's success-side output. Declines,
// gateway outages and invalid requests are returned as typed errors instead.
type SettlementResult struct {
	Status           SettlementStatus
	Order            *domain.Order // nil when pending reconciliation
	OrderNumber      string        // empty when pending reconciliation
	PaymentID        string
	ReceiptReference string
	AmountMinorUnits int64
	CurrencyCode     string
}
