package dto

import "time"

type CheckoutResponse struct {
	TraceID               string    `json:"traceId"`
	Status                string    `json:"status"`
	OrderNumber           string    `json:"orderNumber,omitempty"`
	PaymentID             string    `json:"paymentId"`
	ReceiptReference      string    `json:"receiptReference,omitempty"`
	TotalAmountMinorUnits int64     `json:"totalAmountMinorUnits"`
	CurrencyCode          string    `json:"currencyCode"`
	Timestamp             time.Time `json:"timestamp"`
}

type CheckoutErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
