package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest is the orchestrator's input: a client-held payment source
// token plus the order draft it should settle. Amounts are major-unit
// decimals; TaxAmount and DeliveryFee are optional and fall back to the
// store's configured defaults when absent.
type CheckoutRequest struct {
	SourceToken     string              `json:"sourceToken"`
	Amount          decimal.Decimal     `json:"amount"`
	CurrencyCode    string              `json:"currencyCode,omitempty"`
	TaxAmount       *decimal.Decimal    `json:"taxAmount,omitempty"`
	DeliveryFee     *decimal.Decimal    `json:"deliveryFee,omitempty"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   *string             `json:"customerPhone,omitempty"`
	OrderType       string              `json:"orderType"`
	DeliveryAddress *string             `json:"deliveryAddress,omitempty"`
	DeliveryTime    *time.Time          `json:"deliveryTime,omitempty"`
	Instructions    *string             `json:"instructions,omitempty"`
	PaymentMethod   string              `json:"paymentMethod,omitempty"`
	LineItems       []CheckoutLineItem  `json:"lineItems"`
}

type CheckoutLineItem struct {
	MenuItemID     int             `json:"menuItemId"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	SpecialRequest *string         `json:"specialRequest,omitempty"`
}
