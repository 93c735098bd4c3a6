package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              uint
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	OrderType       string
	DeliveryAddress *string
	DeliveryTime    *time.Time
	Instructions    *string
	TotalAmount     decimal.Decimal
	TaxAmount       decimal.Decimal
	DeliveryFee     decimal.Decimal
	Status          string
	PaymentMethod   string
	PaymentProvider string
	PaymentID       *string
	PaymentStatus   string
	PaidAt          *time.Time
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	OrderTypeDelivery = "DELIVERY"
	OrderTypePickup   = "PICKUP"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusRefunded  = "REFUNDED"
)

// orderStatusTransitions is the linear kitchen workflow, with CANCELLED
// reachable from every non-terminal state.
var orderStatusTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// paymentStatusTransitions is tracked independently of the order status: a
// charge completes before the kitchen workflow starts, and a cancelled order
// may still need its completed payment recorded as REFUNDED.
var paymentStatusTransitions = map[string][]string{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusCompleted: {PaymentStatusRefunded},
	PaymentStatusFailed:    {},
	PaymentStatusRefunded:  {},
}

func CanTransitionOrderStatus(from, to string) bool {
	for _, s := range orderStatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func CanTransitionPaymentStatus(from, to string) bool {
	for _, s := range paymentStatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsValidOrderStatus(status string) bool {
	_, ok := orderStatusTransitions[status]
	return ok
}

func IsValidPaymentStatus(status string) bool {
	_, ok := paymentStatusTransitions[status]
	return ok
}

// Subtotal sums quantity times unit price over the line items.
func (o Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}
